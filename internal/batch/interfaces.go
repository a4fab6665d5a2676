package batch

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/progress"
)

// Result encapsulates the outcome of squaring a single input.
// It serves as the shared domain type between the batch runner and the
// presentation layers.
type Result struct {
	// Index is the position of the input in the batch (0-based).
	Index int
	// Input is the original textual form of the operand.
	Input string
	// Value is the computed square. It is nil if an error occurred.
	Value *bigcmplx.Complex
	// Inexact carries the per-component ternary of the rounding.
	Inexact bigcmplx.Inexact
	// Overflow reports whether a component overflowed the exponent range.
	Overflow bool
	// Underflow reports whether a component underflowed the exponent range.
	Underflow bool
	// Duration is the time taken to parse and square the input.
	Duration time.Duration
	// Err contains any error that occurred.
	Err error
}

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the batch runner from the presentation layer,
// so the runner coordinates workers without depending on UI concerns.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from workers.
	//   - numWorkers: The number of progress streams being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting batch results.
// This allows different output formats (CLI, JSON, etc.) without modifying
// the batch runner.
type ResultPresenter interface {
	// PresentSummary displays the batch summary table.
	PresentSummary(results []Result, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
