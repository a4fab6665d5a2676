package format

import "strings"

// FormatNumberString inserts thousand separators into a decimal integer
// string, e.g. "1234567" becomes "1,234,567". A leading sign is preserved.
//
// Parameters:
//   - s: The decimal digit string to format.
//
// Returns:
//   - string: The formatted string.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign = s[:1]
		s = s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + len(s) + (len(s)-1)/3)
	b.WriteString(sign)

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
