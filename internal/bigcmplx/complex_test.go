package bigcmplx

import (
	"testing"

	"github.com/agbru/cmplxcalc/internal/bigfloat"
)

func TestSetStringForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in             string
		wantRe, wantIm string
	}{
		{"3+4i", "3", "4"},
		{"3-4i", "3", "-4"},
		{"-3+4i", "-3", "4"},
		{"2.5", "2.5", "0"},
		{"-2.5", "-2.5", "0"},
		{"1.5i", "0", "1.5"},
		{"-2.5e-1i", "0", "-0.25"},
		{"i", "0", "1"},
		{"-i", "0", "-1"},
		{"1+i", "1", "1"},
		{"1-i", "1", "-1"},
		{"1e2+1e-2i", "100", "0.01"},
		{"3.5e+2i", "0", "350"},
		{"0x1p-2+0x1p3i", "0.25", "8"},
		{"nan+infi", "NaN", "+Inf"},
		{"-inf-nani", "-Inf", "NaN"},
		{" 3+4i ", "3", "4"},
	}
	for _, tc := range cases {
		eng := bigfloat.NewContext()
		z := New(53)
		if _, err := z.SetString(eng, tc.in, Nearest()); err != nil {
			t.Errorf("SetString(%q) error: %v", tc.in, err)
			continue
		}
		gotRe, gotIm := z.Real().String(), z.Imag().String()
		if gotRe != tc.wantRe || gotIm != tc.wantIm {
			t.Errorf("SetString(%q) = (%s, %s), want (%s, %s)",
				tc.in, gotRe, gotIm, tc.wantRe, tc.wantIm)
		}
	}
}

func TestSetStringErrors(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()

	for _, in := range []string{"", "1+2", "abc+1i", "1+abci", "++i", "1i2"} {
		z := New(53)
		if _, err := z.SetString(eng, in, Nearest()); err == nil {
			t.Errorf("SetString(%q) should fail", in)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()

	for _, in := range []string{"3+4i", "-7+24i", "1.5-2.25i", "0+1i"} {
		z := New(53)
		if _, err := z.SetString(eng, in, Nearest()); err != nil {
			t.Fatalf("SetString(%q): %v", in, err)
		}
		if got := z.String(); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestConjAndNeg(t *testing.T) {
	t.Parallel()
	eng := bigfloat.NewContext()

	z := New(24)
	if _, err := z.SetString(eng, "3+4i", Nearest()); err != nil {
		t.Fatal(err)
	}

	conj := New(24)
	conj.Conj(eng, z, Nearest())
	if got := conj.String(); got != "3-4i" {
		t.Errorf("Conj(3+4i) = %s", got)
	}

	neg := New(24)
	neg.Neg(eng, z, Nearest())
	if got := neg.String(); got != "-3-4i" {
		t.Errorf("Neg(3+4i) = %s", got)
	}

	// conjugation flips the sign of a zero imaginary part
	if _, err := z.SetString(eng, "5", Nearest()); err != nil {
		t.Fatal(err)
	}
	conj.Conj(eng, z, Nearest())
	if !conj.Imag().IsZero() || !conj.Imag().Signbit() {
		t.Errorf("Conj(5+0i) imag = %s, want -0", conj.Imag())
	}
}

func TestMaxPrec(t *testing.T) {
	t.Parallel()

	z := New2(24, 53)
	if z.MaxPrec() != 53 {
		t.Errorf("MaxPrec = %d, want 53", z.MaxPrec())
	}
	if z.Real().Prec() != 24 || z.Imag().Prec() != 53 {
		t.Errorf("component precisions = (%d, %d)", z.Real().Prec(), z.Imag().Prec())
	}
}
