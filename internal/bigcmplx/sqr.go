package bigcmplx

import (
	"math/bits"

	"github.com/agbru/cmplxcalc/internal/bigfloat"
)

// Sqr sets z to op², with each component correctly rounded to z's component
// precision under the corresponding mode in rnd, and returns the
// per-component ternary inexactness. z and op may be the same value.
//
// The real part is x²-y² and the imaginary part 2xy, for op = x+iy. Both are
// the exact mathematical results rounded exactly once, honoring the exponent
// range and sticky flags of the Context. The real part goes through Karatsuba
// squaring (x+y)(x-y) with an adaptive-precision loop, except when the
// component exponents are so far apart that cancellation is impossible and
// the difference of exact products is cheaper.
func (z *Complex) Sqr(eng *bigfloat.Context, op *Complex, rnd Rounding) Inexact {
	if !op.IsFinite() {
		return z.sqrSpecial(op)
	}

	// a real or purely imaginary operand squares on one axis; the other
	// component is a signed zero carrying the sign product of the inputs
	if op.im.IsZero() {
		imNeg := op.re.Signbit() != op.im.Signbit()
		inexRe := eng.Sqr(&z.re, &op.re, rnd.Re)
		z.im.SetZero(imNeg)
		return Inexact{Re: inexRe}
	}
	if op.re.IsZero() {
		imNeg := op.re.Signbit() != op.im.Signbit()
		inexRe := -eng.Sqr(&z.re, &op.im, rnd.Re.Inverse())
		eng.Neg(&z.re, &z.re, bigfloat.ToNearestEven) // exact
		z.im.SetZero(imNeg)
		return Inexact{Re: inexRe}
	}

	// snapshot the real component when z aliases op, so that writing z's
	// real part does not destroy an input of the imaginary part
	x := &op.re
	if z == op {
		x = new(bigfloat.Float).Copy(&op.re)
	}
	y := &op.im

	var inexRe int
	gap := x.Exp() - y.Exp()
	if gap < 0 {
		gap = -gap
	}
	if uint(gap) > op.MaxPrec()/2 {
		// With very different component exponents Karatsuba gains
		// nothing: x+y and x-y cannot cancel, and the working
		// precision needed to see y² next to x² is the gap itself.
		// The difference of exact double-width products costs one more
		// multiplication and handles over- and underflow directly.
		inexRe = fmma(eng, &z.re, x, x, y, y, -1, rnd.Re)
	} else {
		inexRe = karatsubaSqr(eng, &z.re, x, y, rnd.Re, z.MaxPrec())
	}

	// imaginary part: 2xy, as x*y rounded then doubled. The doubling must
	// be skipped when the multiplication already underflowed to the
	// smallest magnitude, and it must not disturb an underflow flag raised
	// by the real part.
	savedUnderflow := eng.Underflow()
	eng.ClearUnderflow()
	inexIm := eng.Mul(&z.im, x, y, rnd.Im)
	if !eng.Underflow() {
		if t := eng.Mul2Exp(&z.im, &z.im, 1, rnd.Im); t != 0 {
			inexIm = t
		}
	}
	if savedUnderflow {
		eng.SetUnderflow()
	}

	return Inexact{Re: inexRe, Im: inexIm}
}

// karatsubaSqr computes dest = x²-y² correctly rounded under mode, as the
// product (x+y)(x-y). x and y are finite and nonzero and dest is distinct
// from both.
//
// Each iteration computes u = x+y and v = x-y rounded away from zero, then
// their product rounded one-sidedly away from the exact result, so that the
// approximation brackets x²-y² from a known direction with error below
// 2^(Exp-(prec-3)). When that is not enough to round unambiguously to dest's
// precision, the working precision grows and the iteration repeats.
func karatsubaSqr(eng *bigfloat.Context, dest, x, y *bigfloat.Float, mode bigfloat.Mode, startPrec uint) int {
	emin := eng.Emin()
	emax := eng.Emax()

	u := new(bigfloat.Float)
	v := new(bigfloat.Float)

	prec := startPrec
	for {
		prec += ceilLog2(prec) + 5
		u.SetPrec(prec)
		v.SetPrec(prec)

		// |u| >= |x+y| and |v| >= |x-y|, each within 1 ulp
		inexact := eng.Add(u, x, y, bigfloat.AwayFromZero) != 0
		inexact = eng.Sub(v, x, y, bigfloat.AwayFromZero) != 0 || inexact

		// a zero factor is exact despite the directed rounding, and
		// forces the exact product zero
		if u.IsZero() || v.IsZero() {
			dest.SetZero(false)
			return 0
		}

		if u.Sign() == v.Sign() {
			if eng.Mul(u, u, v, bigfloat.ToPositiveInf) != 0 {
				inexact = true
			}
			if u.IsInf() {
				dest.SetInt64(1)
				return eng.Mul2Exp(dest, dest, int64(emax), mode)
			}
			// rounding up a positive product lands on the smallest
			// magnitude when it underflows; the true value then
			// underflows as well
			if u.Exp() == emin {
				switch mode {
				case bigfloat.ToZero, bigfloat.ToNearestEven, bigfloat.ToNegativeInf:
					dest.SetZero(false)
					return -1
				default: // toward +infinity or away from zero
					eng.Set(dest, u, mode)
					return +1
				}
			}
			if !inexact || eng.CanRound(u, prec-3, bigfloat.ToPositiveInf, mode, dest.Prec()) {
				inexRe := eng.Set(dest, u, mode)
				if inexRe == 0 && inexact {
					inexRe = +1 // u itself was rounded up
				}
				return inexRe
			}
		} else {
			if eng.Mul(u, u, v, bigfloat.ToNegativeInf) != 0 {
				inexact = true
			}
			if u.IsInf() {
				dest.SetInt64(-1)
				return eng.Mul2Exp(dest, dest, int64(emax), mode)
			}
			// rounding down a negative product lands on the
			// negative smallest magnitude when it underflows; the
			// true value then underflows as well
			if u.Exp() == emin {
				switch mode {
				case bigfloat.ToZero, bigfloat.ToNearestEven, bigfloat.ToPositiveInf:
					dest.SetZero(false)
					return +1
				default: // toward -infinity or away from zero
					eng.Set(dest, u, mode)
					return -1
				}
			}
			if !inexact || eng.CanRound(u, prec-3, bigfloat.ToNegativeInf, mode, dest.Prec()) {
				inexRe := eng.Set(dest, u, mode)
				if inexRe == 0 && inexact {
					inexRe = -1 // u itself was rounded down
				}
				return inexRe
			}
		}
	}
}

// ceilLog2 returns ⌈log₂ n⌉ for n > 0.
func ceilLog2(n uint) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(n - 1))
}
