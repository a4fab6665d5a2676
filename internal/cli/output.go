// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatComponent].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/bigfloat"
	"github.com/agbru/cmplxcalc/internal/format"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value without truncation.
	Verbose bool
	// Format selects the notation: "dec", "hex" or "sci".
	Format string
	// Digits is the number of significant decimal digits (0 = shortest
	// exact form).
	Digits int
}

// FormatComponent renders one component of a result in the configured
// notation.
//
// Parameters:
//   - x: The component to render.
//   - config: Output configuration.
//
// Returns:
//   - string: The rendered component.
func FormatComponent(x *bigfloat.Float, config OutputConfig) string {
	digits := config.Digits
	if digits == 0 {
		digits = -1
	}
	switch config.Format {
	case "hex":
		return x.Text('p', 0)
	case "sci":
		return x.Text('e', digits)
	default:
		return x.Text('g', digits)
	}
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line "re+imi" form suitable for scripting.
//
// Parameters:
//   - z: The computed square.
//   - config: Output configuration.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(z *bigcmplx.Complex, config OutputConfig) string {
	imStr := FormatComponent(z.Imag(), config)
	if !strings.HasPrefix(imStr, "-") && !strings.HasPrefix(imStr, "+") {
		imStr = "+" + imStr
	}
	return FormatComponent(z.Real(), config) + imStr + "i"
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - z: The computed square.
//   - config: Output configuration.
func DisplayQuietResult(out io.Writer, z *bigcmplx.Complex, config OutputConfig) {
	fmt.Fprintln(out, FormatQuietResult(z, config))
}

// ternaryWord describes a rounding ternary in one word.
func ternaryWord(t int) string {
	switch {
	case t < 0:
		return "rounded down"
	case t > 0:
		return "rounded up"
	default:
		return "exact"
	}
}

// truncateValue shortens a long component string, keeping both edges and
// reporting the full length.
func truncateValue(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (truncated, %s chars)",
		s[:DisplayEdges], s[len(s)-DisplayEdges:],
		format.FormatNumberString(fmt.Sprint(len(s))))
}

// DisplayResult displays a squaring result with timing, precision, and
// per-component rounding information.
//
// Parameters:
//   - out: The output writer.
//   - z: The computed square.
//   - inex: The per-component rounding ternaries.
//   - input: The original textual operand.
//   - duration: The calculation duration.
//   - config: Output configuration.
func DisplayResult(out io.Writer, z *bigcmplx.Complex, inex bigcmplx.Inexact, input string, duration time.Duration, config OutputConfig) {
	fullRe := FormatComponent(z.Real(), config)
	fullIm := FormatComponent(z.Imag(), config)

	fmt.Fprintf(out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Time:      %s%s%s\n",
		ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "  Precision: %s%d%s bits (re), %s%d%s bits (im)\n",
		ui.ColorCyan(), z.Real().Prec(), ui.ColorReset(),
		ui.ColorCyan(), z.Imag().Prec(), ui.ColorReset())
	fmt.Fprintf(out, "  Rounding:  real %s%s%s, imaginary %s%s%s\n",
		ui.ColorYellow(), ternaryWord(inex.Re), ui.ColorReset(),
		ui.ColorYellow(), ternaryWord(inex.Im), ui.ColorReset())

	reStr, imStr := fullRe, fullIm
	if !config.Verbose {
		reStr = truncateValue(reStr)
		imStr = truncateValue(imStr)
	}
	fmt.Fprintf(out, "  (%s)² =\n", input)
	fmt.Fprintf(out, "    re: %s%s%s\n", ui.ColorGreen(), reStr, ui.ColorReset())
	fmt.Fprintf(out, "    im: %s%s%s\n", ui.ColorGreen(), imStr, ui.ColorReset())
	if reStr != fullRe || imStr != fullIm {
		fmt.Fprintf(out, "  Tip: use %s-v%s to display the full value.\n",
			ui.ColorYellow(), ui.ColorReset())
	}
}

// WriteResultToFile writes a squaring result to a file.
//
// Parameters:
//   - z: The computed square.
//   - inex: The per-component rounding ternaries.
//   - input: The original textual operand.
//   - duration: The calculation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(z *bigcmplx.Complex, inex bigcmplx.Inexact, input string, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Complex Square Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Precision: %d bits (re), %d bits (im)\n", z.Real().Prec(), z.Imag().Prec())
	fmt.Fprintf(file, "# Rounding: real %s, imaginary %s\n", ternaryWord(inex.Re), ternaryWord(inex.Im))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "(%s)² =\n%s\n", input, FormatQuietResult(z, config))

	return nil
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - z: The computed square.
//   - inex: The per-component rounding ternaries.
//   - input: The original textual operand.
//   - duration: The calculation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, z *bigcmplx.Complex, inex bigcmplx.Inexact, input string, duration time.Duration, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, z, config)
	} else {
		DisplayResult(out, z, inex, input, duration, config)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(z, inex, input, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
