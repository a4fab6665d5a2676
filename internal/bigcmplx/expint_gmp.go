//go:build gmp

// GMP-backed exponent bookkeeping, conditionally compiled with the "gmp"
// build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// github.com/ncw/gmp mirrors the math/big.Int API, so the two files differ
// only in the underlying type.

package bigcmplx

import "github.com/ncw/gmp"

// expInt is the arbitrary-precision integer used for exponent bookkeeping in
// the renormalization branch of fmma.
type expInt = gmp.Int

// newExpInt returns a new exponent integer holding v.
func newExpInt(v int64) *expInt {
	return new(gmp.Int).SetInt64(v)
}
