package bigfloat

import "math/big"

// CanRound implements Ziv's roundability test. Given an approximation u of
// some exact value, computed with directed rounding dir and an absolute error
// below 2^(Exp(u)-err), it reports whether rounding to prec bits under mode
// is unambiguous: every value the exact result could be rounds to the same
// prec-bit value.
//
// dir describes how u relates to the exact value:
//
//	ToPositiveInf             u >= exact
//	ToNegativeInf             u <= exact
//	AwayFromZero              |u| >= |exact|
//	ToZero                    |u| <= |exact|
//	ToNearestEven             |u - exact| < 2^(Exp(u)-err)
//
// The test is conservative: a false result only forces another iteration at
// higher working precision, never a wrong answer. Rounding is monotone, so
// it suffices to round both interval endpoints and compare. The probe works
// on raw big.Float copies and touches neither the destination nor the
// Context flags.
func (c *Context) CanRound(u *Float, err uint, dir Mode, mode Mode, prec uint) bool {
	if u.form != finite {
		return false
	}
	e := u.mant.MantExp(nil)
	var one, delta big.Float
	one.SetInt64(1)
	delta.SetMantExp(&one, e-int(err)) // error bound 2^(Exp(u)-err)

	wide := uint(u.mant.Prec()) + err + 2
	var lo, hi big.Float
	lo.SetPrec(wide)
	hi.SetPrec(wide)

	upper := false // u is an upper bound for the exact value
	lower := false
	switch dir {
	case ToPositiveInf:
		upper = true
	case ToNegativeInf:
		lower = true
	case AwayFromZero:
		upper = !u.neg
		lower = u.neg
	case ToZero:
		upper = u.neg
		lower = !u.neg
	}
	switch {
	case upper:
		lo.Sub(&u.mant, &delta)
		hi.Set(&u.mant)
	case lower:
		lo.Set(&u.mant)
		hi.Add(&u.mant, &delta)
	default: // two-sided bound
		lo.Sub(&u.mant, &delta)
		hi.Add(&u.mant, &delta)
	}

	// A sign change or a zero endpoint means the exact value could be on
	// either side of zero; no rounding decision is possible.
	if lo.Sign() == 0 || hi.Sign() == 0 || lo.Signbit() != hi.Signbit() {
		return false
	}

	var rlo, rhi big.Float
	rlo.SetMode(mode.big()).SetPrec(prec).Set(&lo)
	rhi.SetMode(mode.big()).SetPrec(prec).Set(&hi)
	return rlo.Cmp(&rhi) == 0
}
