package bigfloat

import "testing"

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"nearest", "zero", "up", "down", "away"} {
		m, ok := ParseMode(name)
		if !ok {
			t.Errorf("ParseMode(%q) not recognized", name)
			continue
		}
		if m.String() != name {
			t.Errorf("ParseMode(%q).String() = %q", name, m.String())
		}
	}

	if _, ok := ParseMode("sideways"); ok {
		t.Error("ParseMode should reject unknown names")
	}
}

func TestModeNames(t *testing.T) {
	t.Parallel()

	names := ModeNames()
	want := []string{"nearest", "zero", "up", "down", "away"}
	if len(names) != len(want) {
		t.Fatalf("ModeNames() has %d entries, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("ModeNames()[%d] = %q, want %q", i, names[i], name)
		}
	}

	// The slice is a copy; mutating it must not corrupt the mode table.
	names[0] = "mangled"
	if m, ok := ParseMode("nearest"); !ok || m != ToNearestEven {
		t.Error("mutating the returned slice changed the mode table")
	}
}

func TestModeInverse(t *testing.T) {
	t.Parallel()

	cases := map[Mode]Mode{
		ToNearestEven: ToNearestEven,
		ToZero:        ToZero,
		AwayFromZero:  AwayFromZero,
		ToPositiveInf: ToNegativeInf,
		ToNegativeInf: ToPositiveInf,
	}
	for m, want := range cases {
		if got := m.Inverse(); got != want {
			t.Errorf("Inverse(%s) = %s, want %s", m, got, want)
		}
	}
}

// Rounding -x under the inverse mode must equal the negation of rounding x.
func TestInverseConsistency(t *testing.T) {
	t.Parallel()
	c := NewContext()

	x := mustParse(t, c, "17", 8)
	nx := mustParse(t, c, "-17", 8)
	for m := ToNearestEven; m <= AwayFromZero; m++ {
		a := NewFloat(4)
		b := NewFloat(4)
		inexA := c.Set(a, x, m)
		inexB := c.Set(b, nx, m.Inverse())
		neg := NewFloat(4)
		c.Neg(neg, b, ToNearestEven)
		if a.Cmp(neg) != 0 || inexA != -inexB {
			t.Errorf("mode %s: round(17)=%s (%d), -round(-17)=%s (%d)",
				m, a, inexA, neg, -inexB)
		}
	}
}
