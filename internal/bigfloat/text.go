package bigfloat

import (
	"fmt"
	"math/big"
	"strings"
)

// SetString sets z to the value of s rounded to z's precision under mode and
// returns the ternary inexactness. Accepted forms are those of
// big.ParseFloat plus "nan", "inf" and their signed variants
// (case-insensitive); NaN carries no sign.
// The parsed value is range-checked like any arithmetic result.
func (c *Context) SetString(z *Float, s string, mode Mode) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan", "+nan", "-nan":
		z.SetNaN()
		return 0, nil
	case "inf", "+inf":
		z.setInf(false)
		return 0, nil
	case "-inf":
		z.setInf(true)
		return 0, nil
	}
	t, _, err := big.ParseFloat(strings.TrimSpace(s), 0, uint(z.prec), mode.big())
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if t.Sign() == 0 {
		z.setZero(strings.HasPrefix(strings.TrimSpace(s), "-"))
		return 0, nil
	}
	return c.round(z, t, mode), nil
}
