package bigfloat

import "math/big"

// Mode is a rounding mode for scalar operations. The five modes mirror the
// IEEE-754 directed and nearest modes and map one-to-one onto
// big.RoundingMode.
type Mode uint8

const (
	// ToNearestEven rounds to the nearest representable value; ties go to
	// the value with an even mantissa.
	ToNearestEven Mode = iota
	// ToZero rounds toward zero (truncation).
	ToZero
	// ToPositiveInf rounds toward +infinity.
	ToPositiveInf
	// ToNegativeInf rounds toward -infinity.
	ToNegativeInf
	// AwayFromZero rounds away from zero.
	AwayFromZero
)

// modeNames maps Mode values to their CLI spelling.
var modeNames = [...]string{
	ToNearestEven: "nearest",
	ToZero:        "zero",
	ToPositiveInf: "up",
	ToNegativeInf: "down",
	AwayFromZero:  "away",
}

// String returns the CLI spelling of the mode ("nearest", "zero", "up",
// "down" or "away").
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a CLI spelling into a Mode. The second return value is
// false if the name is not recognized.
func ParseMode(name string) (Mode, bool) {
	for m, s := range modeNames {
		if s == name {
			return Mode(m), true
		}
	}
	return ToNearestEven, false
}

// ModeNames returns the CLI spellings of all rounding modes in declaration
// order.
func ModeNames() []string {
	names := make([]string, len(modeNames))
	copy(names, modeNames[:])
	return names
}

// Inverse returns the mode m' such that rounding -x under m' gives the
// negation of rounding x under m. Only the two directed infinity modes swap;
// nearest, toward-zero and away-from-zero are symmetric.
func (m Mode) Inverse() Mode {
	switch m {
	case ToPositiveInf:
		return ToNegativeInf
	case ToNegativeInf:
		return ToPositiveInf
	default:
		return m
	}
}

// big returns the equivalent big.RoundingMode.
func (m Mode) big() big.RoundingMode {
	switch m {
	case ToZero:
		return big.ToZero
	case ToPositiveInf:
		return big.ToPositiveInf
	case ToNegativeInf:
		return big.ToNegativeInf
	case AwayFromZero:
		return big.AwayFromZero
	default:
		return big.ToNearestEven
	}
}
