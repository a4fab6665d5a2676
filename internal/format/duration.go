package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an elapsed duration at a resolution suited
// to its magnitude: whole microseconds below a millisecond, whole
// milliseconds below a second, and time.Duration's own representation above
// that.
//
// Parameters:
//   - d: The elapsed duration to render.
//
// Returns:
//   - string: The rendered duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
