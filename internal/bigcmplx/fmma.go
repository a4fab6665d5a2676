package bigcmplx

import "github.com/agbru/cmplxcalc/internal/bigfloat"

// fmma sets rop to a*b + c*d if sign >= 0, or a*b - c*d if sign < 0,
// correctly rounded under mode, and returns the ternary inexactness.
//
// The operands must be finite and nonzero, and rop must be distinct from all
// four of them. Operands may alias one another; their exponents are
// temporarily normalized to zero in the renormalization branch and restored
// before returning.
//
// The two products are first formed at the sum of their operand precisions,
// which makes them exact, and tentatively added. Near the exponent-range
// boundary a product can overflow to infinity or flush to zero even though
// the final sum is representable; in that case the computation is redone
// with the true product exponents tracked in arbitrary-precision integers so
// that no secondary overflow can corrupt the bookkeeping.
func fmma(eng *bigfloat.Context, rop, a, b, c, d *bigfloat.Float, sign int, mode bigfloat.Mode) int {
	u := bigfloat.NewFloat(a.Prec() + b.Prec())
	v := bigfloat.NewFloat(c.Prec() + d.Prec())

	// The tentative phase may raise flags for product over/underflows that
	// the renormalization phase recovers from; only events from the final
	// computation may stick.
	saved := eng.SaveFlags()

	// u = a*b and v = sign*c*d, exact at double width
	eng.Mul(u, a, b, bigfloat.ToNearestEven)
	eng.Mul(v, c, d, bigfloat.ToNearestEven)
	if sign < 0 {
		eng.Neg(v, v, bigfloat.ToNearestEven)
	}

	inex := eng.Add(rop, u, v, mode)

	if rop.IsInf() {
		// replace by a correctly rounded overflow
		eng.RestoreFlags(saved)
		if rop.Signbit() {
			rop.SetInt64(-1)
		} else {
			rop.SetInt64(1)
		}
		return eng.Mul2Exp(rop, rop, int64(eng.Emax()), mode)
	}

	if !u.IsInf() && !v.IsInf() && !u.IsZero() && !v.IsZero() {
		return inex
	}

	// At least one product over- or underflowed. Redo the computation with
	// the inputs normalized to exponent zero and the true combined
	// exponents of u and v carried in expInts.
	overflowed := rop.IsNaN() // suppressed Inf-Inf from the tentative add
	eng.RestoreFlags(saved)

	ea, eb, ec, ed := a.Exp(), b.Exp(), c.Exp(), d.Exp()
	a.SetExp(0)
	b.SetExp(0)
	c.SetExp(0)
	d.SetExp(0)

	eu := newExpInt(int64(ea) + int64(eb))
	ev := newExpInt(int64(ec) + int64(ed))

	// recompute u and v and move their exponents into eu and ev;
	// with operand exponents at zero the products cannot over- or
	// underflow and their exponents are non-positive
	eng.Mul(u, a, b, bigfloat.ToNearestEven)
	eu.Add(eu, newExpInt(int64(u.Exp())))
	u.SetExp(0)
	eng.Mul(v, c, d, bigfloat.ToNearestEven)
	if sign < 0 {
		eng.Neg(v, v, bigfloat.ToNearestEven)
	}
	ev.Add(ev, newExpInt(int64(v.Exp())))
	v.SetExp(0)

	if overflowed {
		// Both eu and ev exceed emax (each operand exponent is at most
		// emax and an overflow occurred). Shift u and v so that the
		// larger has exponent emax and the other keeps the integer
		// difference; the remaining common offset stays in eu. The
		// shifted addition cannot underflow.
		emax := int64(eng.Emax())
		if eu.Cmp(ev) >= 0 {
			u.SetExp(int(emax))
			eu.Sub(eu, newExpInt(emax))
			ev.Sub(ev, eu)
			v.SetExp(int(ev.Int64()))
		} else {
			v.SetExp(int(emax))
			ev.Sub(ev, newExpInt(emax))
			eu.Sub(eu, ev)
			u.SetExp(int(eu.Int64()))
			eu.Set(ev)
		}
		inex = eng.Add(rop, u, v, mode) // finite: u and v have opposite signs
		if t := eng.Mul2Exp(rop, rop, eu.Int64(), mode); t != 0 {
			// a secondary overflow here is the final, correctly
			// rounded result
			inex = t
		}
	} else {
		// Both products flushed toward zero: eu and ev lie below emin.
		// Align the smaller to emin, shift the other by the integer
		// difference, add, then scale back down.
		emin := int64(eng.Emin())
		if eu.Cmp(ev) <= 0 {
			u.SetExp(int(emin))
			eu.Add(eu, newExpInt(-emin))
			ev.Sub(ev, eu)
			v.SetExp(int(ev.Int64()))
		} else {
			v.SetExp(int(emin))
			ev.Add(ev, newExpInt(-emin))
			eu.Sub(eu, ev)
			u.SetExp(int(eu.Int64()))
			eu.Set(ev)
		}
		inex = eng.Add(rop, u, v, mode)
		eu.Neg(eu)
		if t := eng.Div2Exp(rop, rop, eu.Int64(), mode); t != 0 {
			// a secondary underflow here is final
			inex = t
		}
	}

	// restore the operand exponents; correct even when some of a, b, c, d
	// alias one another
	a.SetExp(ea)
	b.SetExp(eb)
	c.SetExp(ec)
	d.SetExp(ed)

	return inex
}
