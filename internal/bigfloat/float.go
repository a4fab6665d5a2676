// Package bigfloat implements an arbitrary-precision binary floating-point
// scalar with IEEE-754-style special values and a bounded exponent range.
//
// The package builds on math/big.Float for mantissa arithmetic and rounding,
// and adds the pieces math/big deliberately leaves out: NaN, a configurable
// exponent range [emin, emax] with sticky overflow/underflow flags, and
// operations that return a ternary inexactness value. Every finite nonzero
// value is normalized as m × 2^exp with 0.5 <= |m| < 1 (the big.Float MantExp
// convention, identical to MPFR's).
//
// All arithmetic goes through a Context, which carries the exponent bounds
// and the sticky flags. A Context is an explicit object rather than process
// state so that independent computations stay isolated and testable;
// concurrent use of a single Context requires external serialization.
package bigfloat

import (
	"math"
	"math/big"
)

// form describes the structural state of a Float.
type form uint8

const (
	zero form = iota
	finite
	inf
	nan
)

// Float is a signed arbitrary-precision floating-point value. The zero value
// is a +0 with zero precision; call SetPrec before storing a result into it.
//
// The mant field is only meaningful when the form is finite; NaN, infinities
// and signed zeros are tracked structurally so that no big.Float panics or
// silent saturation can leak through.
type Float struct {
	form form
	neg  bool
	prec uint32
	mant big.Float
}

// NewFloat returns a +0 Float with the given precision in bits.
func NewFloat(prec uint) *Float {
	z := new(Float)
	z.SetPrec(prec)
	return z
}

// Prec returns the precision of x in bits.
func (x *Float) Prec() uint { return uint(x.prec) }

// SetPrec sets the precision of z to prec bits and returns z. If z holds a
// finite nonzero value it is rounded to the new precision to nearest; the
// intended use is configuring a destination or scratch value before an
// operation stores into it.
func (z *Float) SetPrec(prec uint) *Float {
	if prec < 1 {
		prec = 1
	}
	z.prec = uint32(prec)
	if z.form == finite {
		z.mant.SetMode(big.ToNearestEven).SetPrec(prec)
	}
	return z
}

// setZero sets z to a signed zero.
func (z *Float) setZero(neg bool) {
	z.form = zero
	z.neg = neg
}

// setInf sets z to a signed infinity.
func (z *Float) setInf(neg bool) {
	z.form = inf
	z.neg = neg
}

// SetNaN sets z to NaN and returns z.
func (z *Float) SetNaN() *Float {
	z.form = nan
	z.neg = false
	return z
}

// SetInf sets z to +Inf, or -Inf if neg is true, and returns z.
func (z *Float) SetInf(neg bool) *Float {
	z.setInf(neg)
	return z
}

// SetZero sets z to +0, or -0 if neg is true, and returns z.
func (z *Float) SetZero(neg bool) *Float {
	z.setZero(neg)
	return z
}

// SetInt64 sets z to v, rounded to z's precision to nearest, and returns z.
func (z *Float) SetInt64(v int64) *Float {
	if v == 0 {
		z.setZero(false)
		return z
	}
	z.mant.SetMode(big.ToNearestEven).SetPrec(uint(z.prec))
	z.mant.SetInt64(v)
	z.form = finite
	z.neg = v < 0
	return z
}

// SetUint64 sets z to v, rounded to z's precision to nearest, and returns z.
func (z *Float) SetUint64(v uint64) *Float {
	if v == 0 {
		z.setZero(false)
		return z
	}
	z.mant.SetMode(big.ToNearestEven).SetPrec(uint(z.prec))
	z.mant.SetUint64(v)
	z.form = finite
	z.neg = false
	return z
}

// SetFloat64 sets z to v, rounded to z's precision to nearest, and returns z.
// NaN, infinities and the sign of zero are preserved.
func (z *Float) SetFloat64(v float64) *Float {
	switch {
	case math.IsNaN(v):
		z.form = nan
		z.neg = false
	case math.IsInf(v, 0):
		z.setInf(v < 0)
	case v == 0:
		z.setZero(math.Signbit(v))
	default:
		z.mant.SetMode(big.ToNearestEven).SetPrec(uint(z.prec))
		z.mant.SetFloat64(v)
		z.form = finite
		z.neg = v < 0
	}
	return z
}

// Copy sets z to an exact copy of x, including x's precision, and returns z.
func (z *Float) Copy(x *Float) *Float {
	if z == x {
		return z
	}
	z.form = x.form
	z.neg = x.neg
	z.prec = x.prec
	if x.form == finite {
		z.mant.Copy(&x.mant)
	}
	return z
}

// IsNaN reports whether x is NaN.
func (x *Float) IsNaN() bool { return x.form == nan }

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool { return x.form == inf }

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool { return x.form == zero }

// IsFinite reports whether x is neither NaN nor infinite (zeros are finite).
func (x *Float) IsFinite() bool { return x.form == zero || x.form == finite }

// Signbit reports whether x's sign bit is set. It is meaningful for zeros
// and infinities; for NaN it is always false.
func (x *Float) Signbit() bool { return x.neg }

// Sign returns -1, 0, or +1 depending on whether x is negative, zero (or
// NaN), or positive.
func (x *Float) Sign() int {
	switch x.form {
	case finite, inf:
		if x.neg {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Exp returns the exponent of x, with x = m × 2^exp and 0.5 <= |m| < 1.
// The result is only meaningful for finite nonzero values; for other forms
// Exp returns 0.
func (x *Float) Exp() int {
	if x.form != finite {
		return 0
	}
	return x.mant.MantExp(nil)
}

// SetExp replaces the exponent of x with e, keeping the mantissa unchanged.
// This is an exact renormalization used for temporary exponent bookkeeping;
// x must be finite and nonzero, and e must lie within the big.Float exponent
// range.
func (x *Float) SetExp(e int) {
	if x.form != finite {
		return
	}
	var m big.Float
	x.mant.MantExp(&m)
	x.mant.SetMantExp(&m, e)
}

// Cmp compares x and y and returns -1, 0 or +1. Signed zeros compare equal.
// Cmp panics if either operand is NaN.
func (x *Float) Cmp(y *Float) int {
	return x.bigView().Cmp(y.bigView())
}

// CmpAbs compares |x| and |y| and returns -1, 0 or +1. It panics if either
// operand is NaN.
func (x *Float) CmpAbs(y *Float) int {
	var a, b big.Float
	a.Abs(x.bigView())
	b.Abs(y.bigView())
	return a.Cmp(&b)
}

// bigView returns a big.Float carrying x's numeric value. Zeros and
// infinities are materialized; NaN panics.
func (x *Float) bigView() *big.Float {
	switch x.form {
	case finite:
		return &x.mant
	case zero:
		return new(big.Float)
	case inf:
		return new(big.Float).SetInf(x.neg)
	}
	panic("bigfloat: comparison with NaN")
}

// Text formats x like big.Float.Text. NaN is rendered as "NaN", infinities
// as "+Inf"/"-Inf", and zeros as "0"/"-0".
func (x *Float) Text(format byte, digits int) string {
	switch x.form {
	case nan:
		return "NaN"
	case inf:
		if x.neg {
			return "-Inf"
		}
		return "+Inf"
	case zero:
		if x.neg {
			return "-0"
		}
		return "0"
	}
	return x.mant.Text(format, digits)
}

// String formats x in shortest decimal form that round-trips at x's
// precision.
func (x *Float) String() string {
	return x.Text('g', -1)
}
