package bigcmplx

// sqrSpecial resolves the square of an operand with at least one NaN or
// infinite component. No arithmetic is performed and the result is always
// exact.
//
// The sign placed on an infinite imaginary part is the sign product of the
// operand components. This table is a fixed library convention modeling
// (a+bi)² on the extended real plane; it is preserved exactly and must not
// be "corrected".
func (z *Complex) sqrSpecial(op *Complex) Inexact {
	switch {
	case op.re.IsNaN() || op.im.IsNaN():
		z.re.SetNaN()
		z.im.SetNaN()

	case op.re.IsInf():
		if op.im.IsInf() {
			z.im.SetInf(op.re.Sign()*op.im.Sign() < 0)
			z.re.SetNaN()
		} else {
			if op.im.IsZero() {
				z.im.SetNaN()
			} else {
				z.im.SetInf(op.re.Sign()*op.im.Sign() < 0)
			}
			z.re.SetInf(false)
		}

	default: // imaginary part infinite, real part finite
		if op.re.IsZero() {
			z.im.SetNaN()
		} else {
			z.im.SetInf(op.re.Sign()*op.im.Sign() < 0)
		}
		z.re.SetInf(true)
	}
	return Inexact{}
}
