package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/cmplxcalc/internal/batch"
	apperrors "github.com/agbru/cmplxcalc/internal/errors"
	"github.com/agbru/cmplxcalc/internal/format"
	"github.com/agbru/cmplxcalc/internal/progress"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// CLIProgressReporter implements batch.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during batch runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements batch.ProgressReporter.
var _ batch.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing work.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter implements batch.ResultPresenter for CLI output.
// It provides formatted, colorized output for batch results in the
// command-line interface.
type CLIResultPresenter struct {
	// Output controls how each successful value is rendered.
	Output OutputConfig
}

// Verify interface compliance.
var (
	_ batch.ResultPresenter   = CLIResultPresenter{}
	_ batch.DurationFormatter = CLIResultPresenter{}
	_ batch.ErrorHandler      = CLIResultPresenter{}
)

// PresentSummary displays the batch summary table with inputs, durations,
// values, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (p CLIResultPresenter) PresentSummary(results []batch.Result, out io.Writer) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	// Find the maximum input and duration width for proper alignment
	maxInputLen := 5 // "Input" header length
	maxDurationLen := 8
	for _, res := range results {
		if len(res.Input) > maxInputLen {
			maxInputLen = len(res.Input)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sInput%s%s   %sDuration%s%s   %sResult%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxInputLen-5),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ %v%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			value := truncateValue(FormatQuietResult(res.Value, p.Output))
			status = fmt.Sprintf("%s%s%s", ui.ColorGreen(), value, ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Input, ui.ColorReset(), padRight("", maxInputLen-len(res.Input)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// FormatDuration formats a duration for display using the standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports a run error and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return HandleCalculationError(err, duration, out)
}

// HandleCalculationError prints a colorized description of a failed run and
// maps the error to an exit code.
//
// Parameters:
//   - err: The error to report.
//   - duration: How long the run had been going when it failed.
//   - out: The writer for the error report.
//
// Returns:
//   - int: The exit code for the error.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if apperrors.IsContextError(err) {
		fmt.Fprintf(out, "\n%sCalculation interrupted after %s: %v%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), err, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "\n%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return apperrors.ExitCode(err)
}
