// Package batch runs the squaring pipeline over a list of inputs with a
// bounded pool of concurrent workers.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/bigfloat"
	apperrors "github.com/agbru/cmplxcalc/internal/errors"
	"github.com/agbru/cmplxcalc/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking worker
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// Options configures a batch run.
type Options struct {
	// Prec is the result precision in bits for the real component.
	Prec uint
	// PrecIm is the result precision in bits for the imaginary component
	// (0 = same as Prec).
	PrecIm uint
	// Rounding holds the per-component rounding modes.
	Rounding bigcmplx.Rounding
	// Emin and Emax bound the exponent range. Both zero selects the
	// default range.
	Emin int
	// Emax is the maximum representable exponent.
	Emax int
	// Workers is the maximum number of concurrent workers (<=0 = NumCPU).
	Workers int
}

// workers resolves the effective worker count.
func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// precIm resolves the effective imaginary-component precision.
func (o Options) precIm() uint {
	if o.PrecIm != 0 {
		return o.PrecIm
	}
	return o.Prec
}

// newEngine builds a rounding context for one worker. Contexts carry sticky
// flags, so each job gets its own.
func newEngine(o Options) *bigfloat.Context {
	eng := bigfloat.NewContext()
	if o.Emin != 0 || o.Emax != 0 {
		eng.SetEmin(o.Emin)
		eng.SetEmax(o.Emax)
	}
	return eng
}

// SquareOne parses one input at the result precision and squares it.
// The returned Result has Index and Duration left for the caller to fill.
//
// Parameters:
//   - input: The textual operand, e.g. "1.5-0x1p-3i".
//   - o: The run options.
//
// Returns:
//   - Result: The outcome, with Err set on parse failure.
func SquareOne(input string, o Options) Result {
	eng := newEngine(o)

	op := bigcmplx.New2(o.Prec, o.precIm())
	if _, err := op.SetString(eng, input, o.Rounding); err != nil {
		return Result{Input: input, Err: apperrors.ParseError{Input: input, Cause: err}}
	}

	z := bigcmplx.New2(o.Prec, o.precIm())
	inex := z.Sqr(eng, op, o.Rounding)

	return Result{
		Input:     input,
		Value:     z,
		Inexact:   inex,
		Overflow:  eng.Overflow(),
		Underflow: eng.Underflow(),
	}
}

// Run squares every input concurrently and returns the results in input
// order.
//
// It manages the lifecycle of the worker goroutines, collects their results,
// and coordinates the display of progress updates. Workers that start after
// the context is canceled record the cancellation error instead of running.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - inputs: The textual operands to square.
//   - o: The run options.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress updates.
//
// Returns:
//   - []Result: One result per input, in input order.
func Run(ctx context.Context, inputs []string, o Options, reporter ProgressReporter, out io.Writer) []Result {
	g := new(errgroup.Group)
	g.SetLimit(o.workers())

	results := make([]Result, len(inputs))
	progressChan := make(chan progress.ProgressUpdate, o.workers()*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, 1, out)

	var completed atomic.Int64
	total := float64(len(inputs))

	for i, in := range inputs {
		idx, input := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[idx] = Result{Index: idx, Input: input, Err: err}
				return nil
			}
			startTime := time.Now()
			res := SquareOne(input, o)
			res.Index = idx
			res.Duration = time.Since(startTime)
			results[idx] = res

			done := completed.Add(1)
			progressChan <- progress.ProgressUpdate{WorkerIndex: 0, Value: float64(done) / total}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// ReadInputs reads one operand per line, skipping blank lines and lines
// starting with '#'.
//
// Parameters:
//   - r: The source of input lines.
//
// Returns:
//   - []string: The operands in file order.
//   - error: A read error, if any.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading batch inputs")
	}
	return inputs, nil
}

// Summarize reports the batch outcome and determines the exit code.
//
// It counts successes and failures, displays the summary through the
// presenter, and maps the first error to an exit code.
//
// Parameters:
//   - results: The batch results to analyze.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func Summarize(results []Result, presenter ResultPresenter, out io.Writer) int {
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
		}
	}

	presenter.PresentSummary(results, out)

	if firstError == nil {
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "\n%d of %d inputs failed.\n", len(results)-successCount, len(results))
	switch {
	case apperrors.IsContextError(firstError):
		if errors.Is(firstError, context.DeadlineExceeded) {
			return apperrors.ExitErrorTimeout
		}
		return apperrors.ExitErrorCanceled
	case errors.As(firstError, new(apperrors.ParseError)):
		return apperrors.ExitErrorParse
	default:
		return apperrors.ExitErrorGeneric
	}
}
