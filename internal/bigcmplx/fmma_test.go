package bigcmplx

import (
	"testing"

	"github.com/agbru/cmplxcalc/internal/bigfloat"
)

// parseFloat builds a bigfloat scalar for fmma tests.
func parseFloat(t *testing.T, eng *bigfloat.Context, s string, prec uint) *bigfloat.Float {
	t.Helper()
	z := bigfloat.NewFloat(prec)
	if _, err := eng.SetString(z, s, bigfloat.ToNearestEven); err != nil {
		t.Fatalf("SetString(%q): %v", s, err)
	}
	return z
}

func TestFmmaInRange(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()

	// 3*4 - 5*2 = 2, exact
	a := parseFloat(t, eng, "3", 8)
	b := parseFloat(t, eng, "4", 8)
	c := parseFloat(t, eng, "5", 8)
	d := parseFloat(t, eng, "2", 8)
	rop := bigfloat.NewFloat(8)
	inex := fmma(eng, rop, a, b, c, d, -1, bigfloat.ToNearestEven)
	if rop.String() != "2" || inex != 0 {
		t.Errorf("3*4-5*2 = %s ternary %d, want 2 exact", rop, inex)
	}

	// sign >= 0 adds the second product
	inex = fmma(eng, rop, a, b, c, d, +1, bigfloat.ToNearestEven)
	if rop.String() != "22" || inex != 0 {
		t.Errorf("3*4+5*2 = %s ternary %d, want 22 exact", rop, inex)
	}
}

// a²-a² with a² overflowing: both products blow past the range, the
// renormalized computation cancels them exactly.
func TestFmmaTotalCancellationAboveRange(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()
	eng.SetEmax(40)

	a := parseFloat(t, eng, "0x1p39", 8)
	before := new(bigfloat.Float).Copy(a)

	rop := bigfloat.NewFloat(8)
	inex := fmma(eng, rop, a, a, a, a, -1, bigfloat.ToNearestEven)
	if !rop.IsZero() || rop.Signbit() || inex != 0 {
		t.Errorf("a²-a² = %s ternary %d, want +0 exact", rop, inex)
	}
	if eng.Overflow() || eng.Underflow() {
		t.Error("flags raised for an exact in-range result")
	}
	if a.Cmp(before) != 0 {
		t.Errorf("operand changed: %s, was %s", a, before)
	}
}

// Both products overflow but their difference is representable; the exact
// value -(2^34+2^26) rounds to -2^34 at 8 bits.
func TestFmmaPartialCancellationAboveRange(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()
	eng.SetEmax(40)

	a := parseFloat(t, eng, "0x1p20", 8)
	c := parseFloat(t, eng, "1056768", 8) // 2^20 + 2^13
	aBefore := new(bigfloat.Float).Copy(a)
	cBefore := new(bigfloat.Float).Copy(c)

	rop := bigfloat.NewFloat(8)
	inex := fmma(eng, rop, a, a, c, c, -1, bigfloat.ToNearestEven)

	want := parseFloat(t, eng, "-0x1p34", 8)
	if rop.Cmp(want) != 0 || inex != +1 {
		t.Errorf("a²-c² = %s ternary %d, want -2^34 ternary +1", rop, inex)
	}
	if eng.Overflow() {
		t.Error("overflow flag raised for an in-range result")
	}
	if a.Cmp(aBefore) != 0 || c.Cmp(cBefore) != 0 {
		t.Error("operand exponents not restored")
	}
}

// Both products flush below the range and the true difference underflows as
// well: 2^-60 - 2^-50 is far under half the smallest magnitude 2^-41.
func TestFmmaBothBelowRange(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()
	eng.SetEmin(-40)

	a := parseFloat(t, eng, "0x1p-30", 8)
	c := parseFloat(t, eng, "0x1p-25", 8)

	rop := bigfloat.NewFloat(8)
	inex := fmma(eng, rop, a, a, c, c, -1, bigfloat.ToNearestEven)
	if !rop.IsZero() || !rop.Signbit() || inex != +1 {
		t.Errorf("2^-60-2^-50 = %s ternary %d, want -0 ternary +1", rop, inex)
	}
	if !eng.Underflow() {
		t.Error("underflow flag not raised")
	}
	if eng.Overflow() {
		t.Error("overflow flag raised spuriously")
	}
}

// One product in range, the other flushed to zero: the result is the
// surviving product and the transient underflow must not stick.
func TestFmmaMixedFlush(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()
	eng.SetEmin(-40)

	a := parseFloat(t, eng, "0x1p-10", 8)
	c := parseFloat(t, eng, "0x1p-30", 8)

	rop := bigfloat.NewFloat(8)
	inex := fmma(eng, rop, a, a, c, c, -1, bigfloat.ToNearestEven)

	want := parseFloat(t, eng, "0x1p-20", 8)
	if rop.Cmp(want) != 0 || inex != +1 {
		t.Errorf("2^-20-2^-60 = %s ternary %d, want 2^-20 ternary +1", rop, inex)
	}
	if eng.Underflow() || eng.Overflow() {
		t.Error("transient product flush left a sticky flag")
	}
}

// A genuine overflow: the tentative sum is infinite and stays a correctly
// rounded overflow under every mode.
func TestFmmaOverflow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode bigfloat.Mode
		inf  bool
		inex int
	}{
		{bigfloat.ToNearestEven, true, +1},
		{bigfloat.AwayFromZero, true, +1},
		{bigfloat.ToPositiveInf, true, +1},
		{bigfloat.ToZero, false, -1},
		{bigfloat.ToNegativeInf, false, -1},
	}
	for _, tc := range cases {
		eng := bigfloat.NewContext()
		eng.SetEmax(40)

		// 2^78 - 2^-2: hugely positive
		a := parseFloat(t, eng, "0x1p39", 8)
		c := parseFloat(t, eng, "0.5", 8)
		rop := bigfloat.NewFloat(8)
		inex := fmma(eng, rop, a, a, c, c, -1, tc.mode)
		if rop.IsInf() != tc.inf || inex != tc.inex {
			t.Errorf("mode %s: got %s ternary %d, want inf=%v ternary %d",
				tc.mode, rop, inex, tc.inf, tc.inex)
		}
		if !tc.inf {
			// largest finite value (1-2^-8) × 2^40
			want := parseFloat(t, eng, "0x0.ffp40", 8)
			if rop.Cmp(want) != 0 {
				t.Errorf("mode %s: got %s, want largest finite", tc.mode, rop)
			}
		}
		if !eng.Overflow() {
			t.Errorf("mode %s: overflow flag not raised", tc.mode)
		}
	}
}
