//go:build !gmp

package bigcmplx

import "math/big"

// expInt is the arbitrary-precision integer used for exponent bookkeeping in
// the renormalization branch of fmma. Fixed-width integers would reintroduce
// the possibility of a secondary overflow corrupting the bookkeeping itself;
// an arbitrary-precision type removes it regardless of the configured
// exponent-range extremes.
//
// The default build uses math/big.Int. Building with -tags=gmp swaps in the
// GMP-backed implementation (see expint_gmp.go).
type expInt = big.Int

// newExpInt returns a new exponent integer holding v.
func newExpInt(v int64) *expInt {
	return new(big.Int).SetInt64(v)
}
