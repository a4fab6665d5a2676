package bigfloat

import "math/big"

// Exponent range limits. The defaults match MPFR's on 32-bit exponent
// builds. MaxEmax is chosen so that the sum of two in-range exponents (as
// produced by an exact double-width product) still fits the big.Float
// exponent without saturating.
const (
	MaxEmax = 1<<30 - 1
	MinEmin = -(1 << 30) + 1

	DefaultEmax = MaxEmax
	DefaultEmin = MinEmin
)

// Flags is a snapshot of the sticky exception flags of a Context.
type Flags struct {
	Overflow  bool
	Underflow bool
}

// A Context carries the exponent range and the sticky overflow/underflow
// flags shared by a sequence of operations. Flags are sticky: once an
// operation overflows or underflows the corresponding flag stays set until
// explicitly cleared.
//
// A Context is not safe for concurrent use; callers sharing one across
// goroutines must serialize access.
type Context struct {
	emin, emax int
	overflow   bool
	underflow  bool
}

// NewContext returns a Context with the default exponent range and clear
// flags.
func NewContext() *Context {
	return &Context{emin: DefaultEmin, emax: DefaultEmax}
}

// Emin returns the smallest allowed exponent.
func (c *Context) Emin() int { return c.emin }

// Emax returns the largest allowed exponent.
func (c *Context) Emax() int { return c.emax }

// SetEmin sets the smallest allowed exponent. Values outside
// [MinEmin, -2] are clamped.
func (c *Context) SetEmin(e int) {
	if e < MinEmin {
		e = MinEmin
	}
	if e > -2 {
		e = -2
	}
	c.emin = e
}

// SetEmax sets the largest allowed exponent. Values outside [2, MaxEmax]
// are clamped.
func (c *Context) SetEmax(e int) {
	if e > MaxEmax {
		e = MaxEmax
	}
	if e < 2 {
		e = 2
	}
	c.emax = e
}

// Overflow reports the sticky overflow flag.
func (c *Context) Overflow() bool { return c.overflow }

// Underflow reports the sticky underflow flag.
func (c *Context) Underflow() bool { return c.underflow }

// SetOverflow raises the sticky overflow flag.
func (c *Context) SetOverflow() { c.overflow = true }

// SetUnderflow raises the sticky underflow flag.
func (c *Context) SetUnderflow() { c.underflow = true }

// ClearOverflow lowers the sticky overflow flag.
func (c *Context) ClearOverflow() { c.overflow = false }

// ClearUnderflow lowers the sticky underflow flag.
func (c *Context) ClearUnderflow() { c.underflow = false }

// ClearFlags lowers both sticky flags.
func (c *Context) ClearFlags() {
	c.overflow = false
	c.underflow = false
}

// SaveFlags returns a snapshot of the sticky flags.
func (c *Context) SaveFlags() Flags {
	return Flags{Overflow: c.overflow, Underflow: c.underflow}
}

// RestoreFlags resets the sticky flags to a previously saved snapshot,
// discarding any events recorded since.
func (c *Context) RestoreFlags(f Flags) {
	c.overflow = f.Overflow
	c.underflow = f.Underflow
}

// accTernary converts the accuracy of the last big.Float operation on t into
// the ternary inexactness convention: -1 if the stored value is below the
// exact result, +1 if above, 0 if exact.
func accTernary(t *big.Float) int {
	switch t.Acc() {
	case big.Below:
		return -1
	case big.Above:
		return +1
	}
	return 0
}

// round stores the finite nonzero big.Float t into z, applying the exponent
// range checks. t must already be rounded to z's precision under mode with
// its accuracy intact; round only decides between storing it, overflowing
// or underflowing.
func (c *Context) round(z *Float, t *big.Float, mode Mode) int {
	neg := t.Signbit()
	e := t.MantExp(nil)
	if e > c.emax {
		return c.overflowResult(z, neg, mode)
	}
	if e < c.emin {
		return c.underflowResult(z, t, neg, mode)
	}
	inex := accTernary(t)
	z.form = finite
	z.neg = neg
	z.mant.Copy(t)
	return inex
}

// overflowResult finalizes z as a correctly rounded overflow of the given
// sign: infinity for modes that round the magnitude up, the largest finite
// value for modes that round it down. The sticky overflow flag is raised.
func (c *Context) overflowResult(z *Float, neg bool, mode Mode) int {
	c.overflow = true
	toInf := false
	switch mode {
	case ToNearestEven, AwayFromZero:
		toInf = true
	case ToPositiveInf:
		toInf = !neg
	case ToNegativeInf:
		toInf = neg
	}
	if toInf {
		z.setInf(neg)
		if neg {
			return -1
		}
		return +1
	}
	c.setLargest(z, neg)
	if neg {
		return +1
	}
	return -1
}

// underflowResult finalizes z after the rounded value t fell below the
// exponent range: either a signed zero or the smallest representable
// magnitude, depending on the mode. For rounding to nearest the cut is at
// half the smallest magnitude, ties flushing to zero. The sticky underflow
// flag is raised.
func (c *Context) underflowResult(z *Float, t *big.Float, neg bool, mode Mode) int {
	c.underflow = true
	toZero := false
	switch mode {
	case ToZero:
		toZero = true
	case ToPositiveInf:
		toZero = neg
	case ToNegativeInf:
		toZero = !neg
	case AwayFromZero:
		toZero = false
	case ToNearestEven:
		// smallest magnitude is 2^(emin-1); flush when |t| <= 2^(emin-2)
		var m big.Float
		e := t.MantExp(&m)
		if e < c.emin-1 {
			toZero = true
		} else { // e == emin-1, |t| in [2^(emin-2), 2^(emin-1))
			var am, half big.Float
			am.Abs(&m)
			half.SetFloat64(0.5)
			toZero = am.Cmp(&half) == 0
		}
	}
	if toZero {
		z.setZero(neg)
		if neg {
			return +1
		}
		return -1
	}
	c.setSmallest(z, neg)
	if neg {
		return -1
	}
	return +1
}

// setLargest sets z to the largest finite value of z's precision,
// (1 - 2^-prec) × 2^emax, with the given sign.
func (c *Context) setLargest(z *Float, neg bool) {
	prec := uint(z.prec)
	var one, eps, m big.Float
	one.SetInt64(1)
	eps.SetMantExp(&one, -int(prec)) // 2^-prec
	m.SetPrec(prec).Sub(&one, &eps)  // exact: prec one-bits
	if neg {
		m.Neg(&m)
	}
	z.mant.SetPrec(prec)
	z.mant.SetMantExp(&m, c.emax)
	z.form = finite
	z.neg = neg
}

// setSmallest sets z to the smallest nonzero magnitude 2^(emin-1) with the
// given sign.
func (c *Context) setSmallest(z *Float, neg bool) {
	var one big.Float
	one.SetInt64(1)
	if neg {
		one.Neg(&one)
	}
	z.mant.SetPrec(uint(z.prec))
	z.mant.SetMantExp(&one, c.emin-1)
	z.form = finite
	z.neg = neg
}
