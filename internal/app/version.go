package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. It is overridable at build time:
//
//	go build -ldflags "-X github.com/agbru/cmplxcalc/internal/app.Version=1.2.3"
var Version = "dev"

// HasVersionFlag reports whether the argument list asks for the version.
//
// Parameters:
//   - args: The command-line arguments (without the program name).
//
// Returns:
//   - bool: true if a version flag is present.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
//
// Parameters:
//   - out: The writer for the banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "cmplxcalc %s (%s, %s/%s)\n",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
