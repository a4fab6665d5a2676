// Package bigcmplx implements arbitrary-precision complex numbers whose
// components are bigfloat scalars with independent precisions, together with
// the correctly-rounded operations the calculator exposes. The flagship
// operation is Sqr, which guarantees that each returned component is the
// exact mathematical result rounded exactly once to that component's
// precision, across the full exponent range of the Context.
package bigcmplx

import (
	"fmt"
	"strings"

	"github.com/agbru/cmplxcalc/internal/bigfloat"
)

// Complex is an ordered pair of bigfloat scalars. The two components carry
// their own precisions; there is no cross-component invariant beyond
// independent validity.
type Complex struct {
	re, im bigfloat.Float
}

// New returns a complex zero (+0 + 0i) with both components at the given
// precision in bits.
func New(prec uint) *Complex {
	z := new(Complex)
	z.re.SetPrec(prec)
	z.im.SetPrec(prec)
	return z
}

// New2 returns a complex zero with independent component precisions.
func New2(precRe, precIm uint) *Complex {
	z := new(Complex)
	z.re.SetPrec(precRe)
	z.im.SetPrec(precIm)
	return z
}

// Real returns the real component of x. The returned pointer shares storage
// with x.
func (x *Complex) Real() *bigfloat.Float { return &x.re }

// Imag returns the imaginary component of x. The returned pointer shares
// storage with x.
func (x *Complex) Imag() *bigfloat.Float { return &x.im }

// IsFinite reports whether both components are finite (zeros included).
func (x *Complex) IsFinite() bool {
	return x.re.IsFinite() && x.im.IsFinite()
}

// MaxPrec returns the larger of the two component precisions.
func (x *Complex) MaxPrec() uint {
	if p := x.im.Prec(); p > x.re.Prec() {
		return p
	}
	return x.re.Prec()
}

// Rounding is an independent rounding mode per component.
type Rounding struct {
	Re, Im bigfloat.Mode
}

// Nearest returns the (nearest, nearest) rounding pair.
func Nearest() Rounding {
	return Rounding{Re: bigfloat.ToNearestEven, Im: bigfloat.ToNearestEven}
}

// Inexact is the per-component ternary inexactness pair returned by every
// operation: for each component, -1 if the stored value is below the exact
// result, +1 if above, 0 if exact.
type Inexact struct {
	Re, Im int
}

// Set sets z to x with each component rounded to z's component precision.
func (z *Complex) Set(c *bigfloat.Context, x *Complex, rnd Rounding) Inexact {
	return Inexact{
		Re: c.Set(&z.re, &x.re, rnd.Re),
		Im: c.Set(&z.im, &x.im, rnd.Im),
	}
}

// Conj sets z to the conjugate of x: the real component is copied, the
// imaginary component negated. Negation is exact when the precisions match,
// so conjugation preserves signed zeros bit-for-bit.
func (z *Complex) Conj(c *bigfloat.Context, x *Complex, rnd Rounding) Inexact {
	return Inexact{
		Re: c.Set(&z.re, &x.re, rnd.Re),
		Im: c.Neg(&z.im, &x.im, rnd.Im),
	}
}

// Neg sets z to -x.
func (z *Complex) Neg(c *bigfloat.Context, x *Complex, rnd Rounding) Inexact {
	return Inexact{
		Re: c.Neg(&z.re, &x.re, rnd.Re),
		Im: c.Neg(&z.im, &x.im, rnd.Im),
	}
}

// SetString sets z from a string of the form "a", "bi" or "a+bi" (also with
// "-"), where a and b are anything bigfloat.SetString accepts. A bare "i" or
// sign followed by "i" denotes a unit imaginary part. The returned Inexact
// reflects the component roundings.
func (z *Complex) SetString(c *bigfloat.Context, s string, rnd Rounding) (Inexact, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Inexact{}, fmt.Errorf("empty complex number")
	}
	reStr, imStr := splitComplex(s)
	var inex Inexact
	var err error
	if inex.Re, err = c.SetString(&z.re, reStr, rnd.Re); err != nil {
		return Inexact{}, fmt.Errorf("real part: %w", err)
	}
	if inex.Im, err = c.SetString(&z.im, imStr, rnd.Im); err != nil {
		return Inexact{}, fmt.Errorf("imaginary part: %w", err)
	}
	return inex, nil
}

// splitComplex splits "a+bi" into its component strings. Signs that belong
// to an exponent (directly after e, E, p or P) do not split.
func splitComplex(s string) (reStr, imStr string) {
	if !strings.HasSuffix(s, "i") && !strings.HasSuffix(s, "I") {
		return s, "0"
	}
	body := s[:len(s)-1]
	split := -1
	for i := len(body) - 1; i > 0; i-- {
		if body[i] != '+' && body[i] != '-' {
			continue
		}
		switch body[i-1] {
		case 'e', 'E', 'p', 'P':
			continue
		}
		split = i
		break
	}
	if split < 0 {
		return "0", unitImag(body)
	}
	return body[:split], unitImag(body[split:])
}

// unitImag normalizes a bare sign or empty imaginary coefficient to ±1.
func unitImag(s string) string {
	switch s {
	case "", "+":
		return "1"
	case "-":
		return "-1"
	}
	return s
}

// Text formats x as "a+bi" using bigfloat.Text for each component.
func (x *Complex) Text(format byte, digits int) string {
	reStr := x.re.Text(format, digits)
	imStr := x.im.Text(format, digits)
	if !strings.HasPrefix(imStr, "-") && !strings.HasPrefix(imStr, "+") {
		imStr = "+" + imStr
	}
	return reStr + imStr + "i"
}

// String formats x in shortest round-trip decimal form.
func (x *Complex) String() string {
	return x.Text('g', -1)
}
