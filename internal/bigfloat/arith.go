package bigfloat

import "math/big"

// Arithmetic operations. Every operation rounds its result to the
// destination's precision under the given mode, range-checks the exponent
// against the Context, and returns the ternary inexactness: -1 if the stored
// result is below the exact mathematical value, +1 if above, 0 if exact.
//
// Destinations may alias operands; operands are fully read before the
// destination is written.

// Set sets z to x rounded to z's precision under mode.
func (c *Context) Set(z, x *Float, mode Mode) int {
	switch x.form {
	case nan:
		z.SetNaN()
		return 0
	case inf:
		z.setInf(x.neg)
		return 0
	case zero:
		z.setZero(x.neg)
		return 0
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Set(&x.mant)
	return c.round(z, &t, mode)
}

// Neg sets z to -x rounded to z's precision under mode.
func (c *Context) Neg(z, x *Float, mode Mode) int {
	switch x.form {
	case nan:
		z.SetNaN()
		return 0
	case inf:
		z.setInf(!x.neg)
		return 0
	case zero:
		z.setZero(!x.neg)
		return 0
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Neg(&x.mant)
	return c.round(z, &t, mode)
}

// Add sets z to x+y rounded to z's precision under mode. Infinities of
// opposite sign produce NaN. An exact cancellation yields +0, or -0 when
// rounding toward -infinity.
func (c *Context) Add(z, x, y *Float, mode Mode) int {
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return 0
	}
	if x.form == inf || y.form == inf {
		if x.form == inf && y.form == inf && x.neg != y.neg {
			z.SetNaN()
			return 0
		}
		if x.form == inf {
			z.setInf(x.neg)
		} else {
			z.setInf(y.neg)
		}
		return 0
	}
	if x.form == zero && y.form == zero {
		if x.neg == y.neg {
			z.setZero(x.neg)
		} else {
			z.setZero(mode == ToNegativeInf)
		}
		return 0
	}
	if x.form == zero {
		return c.Set(z, y, mode)
	}
	if y.form == zero {
		return c.Set(z, x, mode)
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Add(&x.mant, &y.mant)
	if t.Sign() == 0 {
		z.setZero(mode == ToNegativeInf)
		return 0
	}
	return c.round(z, &t, mode)
}

// Sub sets z to x-y rounded to z's precision under mode.
func (c *Context) Sub(z, x, y *Float, mode Mode) int {
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return 0
	}
	if x.form == inf || y.form == inf {
		if x.form == inf && y.form == inf && x.neg == y.neg {
			z.SetNaN()
			return 0
		}
		if x.form == inf {
			z.setInf(x.neg)
		} else {
			z.setInf(!y.neg)
		}
		return 0
	}
	if x.form == zero && y.form == zero {
		if x.neg != y.neg {
			z.setZero(x.neg)
		} else {
			z.setZero(mode == ToNegativeInf)
		}
		return 0
	}
	if y.form == zero {
		return c.Set(z, x, mode)
	}
	if x.form == zero {
		return c.Neg(z, y, mode)
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Sub(&x.mant, &y.mant)
	if t.Sign() == 0 {
		z.setZero(mode == ToNegativeInf)
		return 0
	}
	return c.round(z, &t, mode)
}

// Mul sets z to x*y rounded to z's precision under mode. Zero times
// infinity produces NaN; the sign of a zero or infinite result is the
// exclusive or of the operand signs.
func (c *Context) Mul(z, x, y *Float, mode Mode) int {
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return 0
	}
	neg := x.neg != y.neg
	if x.form == inf || y.form == inf {
		if x.form == zero || y.form == zero {
			z.SetNaN()
			return 0
		}
		z.setInf(neg)
		return 0
	}
	if x.form == zero || y.form == zero {
		z.setZero(neg)
		return 0
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Mul(&x.mant, &y.mant)
	return c.round(z, &t, mode)
}

// Sqr sets z to x² rounded to z's precision under mode.
func (c *Context) Sqr(z, x *Float, mode Mode) int {
	return c.Mul(z, x, x, mode)
}

// Div sets z to x/y rounded to z's precision under mode. 0/0 and Inf/Inf
// produce NaN; division of a finite nonzero value by zero produces a signed
// infinity.
func (c *Context) Div(z, x, y *Float, mode Mode) int {
	if x.form == nan || y.form == nan {
		z.SetNaN()
		return 0
	}
	neg := x.neg != y.neg
	switch {
	case x.form == inf:
		if y.form == inf {
			z.SetNaN()
		} else {
			z.setInf(neg)
		}
		return 0
	case y.form == inf:
		z.setZero(neg)
		return 0
	case x.form == zero:
		if y.form == zero {
			z.SetNaN()
		} else {
			z.setZero(neg)
		}
		return 0
	case y.form == zero:
		z.setInf(neg)
		return 0
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Quo(&x.mant, &y.mant)
	return c.round(z, &t, mode)
}

// Mul2Exp sets z to x × 2^k rounded to z's precision under mode. The scaling
// itself is exact; rounding only occurs when z's precision is below x's, and
// the shifted exponent is range-checked without ever materializing an
// out-of-range big.Float exponent (k may come from unbounded exponent
// bookkeeping).
func (c *Context) Mul2Exp(z, x *Float, k int64, mode Mode) int {
	switch x.form {
	case nan:
		z.SetNaN()
		return 0
	case inf:
		z.setInf(x.neg)
		return 0
	case zero:
		z.setZero(x.neg)
		return 0
	}
	var t big.Float
	t.SetMode(mode.big()).SetPrec(uint(z.prec))
	t.Set(&x.mant)
	inex := accTernary(&t)
	neg := t.Signbit()
	var m big.Float
	e := int64(t.MantExp(&m)) + k
	if e > int64(c.emax) {
		return c.overflowResult(z, neg, mode)
	}
	if e < int64(c.emin) {
		return c.scaledUnderflow(z, &m, e, neg, mode)
	}
	z.form = finite
	z.neg = neg
	z.mant.SetPrec(uint(z.prec))
	z.mant.SetMantExp(&m, int(e))
	return inex
}

// Div2Exp sets z to x × 2^-k rounded to z's precision under mode.
func (c *Context) Div2Exp(z, x *Float, k int64, mode Mode) int {
	return c.Mul2Exp(z, x, -k, mode)
}

// scaledUnderflow resolves an underflow whose magnitude is known only as
// m × 2^e with e held as an int64 (possibly far outside the big.Float
// exponent range). Mirrors underflowResult without constructing the value.
func (c *Context) scaledUnderflow(z *Float, m *big.Float, e int64, neg bool, mode Mode) int {
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
		if e < int64(c.emin)-1 {
			toZero = true
		} else { // e == emin-1
			var am, half big.Float
			am.Abs(m)
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
