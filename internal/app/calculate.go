package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/cmplxcalc/internal/batch"
	"github.com/agbru/cmplxcalc/internal/cli"
	apperrors "github.com/agbru/cmplxcalc/internal/errors"
)

// notifySignals derives a context that is canceled on SIGINT or SIGTERM.
func notifySignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// runCalculate squares the single configured operand.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.Input == "" {
		fmt.Fprintf(a.ErrWriter, "Error: no input provided. Use -in \"1.5+2i\", a positional argument, -batch, -repl or -serve.\n")
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := notifySignals(ctx)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(0, out)
	}

	// The squaring itself does not block on the context, so run it in a
	// goroutine and race it against cancellation.
	done := make(chan batch.Result, 1)
	go func() {
		done <- batch.SquareOne(a.Config.Input, a.options())
	}()

	var res batch.Result
	select {
	case <-ctx.Done():
		return cli.HandleCalculationError(ctx.Err(), a.Config.Timeout, out)
	case res = <-done:
	}

	if res.Err != nil {
		return cli.HandleCalculationError(res.Err, res.Duration, out)
	}

	if err := cli.DisplayResultWithConfig(out, res.Value, res.Inexact, a.Config.Input, res.Duration, a.outputConfig()); err != nil {
		return apperrors.ExitErrorGeneric
	}
	a.printRangeNotes(res, out)

	return apperrors.ExitSuccess
}

// printRangeNotes reports exponent-range flags after a successful squaring.
func (a *Application) printRangeNotes(res batch.Result, out io.Writer) {
	if a.Config.Quiet {
		return
	}
	if res.Overflow {
		fmt.Fprintf(out, "Note: the result overflowed the exponent range.\n")
	}
	if res.Underflow {
		fmt.Fprintf(out, "Note: the result underflowed the exponent range.\n")
	}
}

// runBatch squares every input listed in the batch file concurrently.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	inputs, err := a.readBatchInputs()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading batch inputs: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if len(inputs) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: the batch input is empty.\n")
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := notifySignals(ctx)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(len(inputs), out)
	}

	// Choose progress reporter based on quiet mode
	var reporter batch.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		reporter = batch.NullProgressReporter{}
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	results := batch.Run(ctx, inputs, a.options(), reporter, progressOut)

	if a.Config.Quiet {
		return a.printQuietBatch(results, out)
	}

	presenter := cli.CLIResultPresenter{Output: a.outputConfig()}
	return batch.Summarize(results, presenter, out)
}

// printQuietBatch emits one bare result (or error) line per input, in input
// order, and returns the batch exit code.
func (a *Application) printQuietBatch(results []batch.Result, out io.Writer) int {
	outputCfg := a.outputConfig()
	code := apperrors.ExitSuccess
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "error: %v\n", res.Err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitCode(res.Err)
			}
			continue
		}
		cli.DisplayQuietResult(out, res.Value, outputCfg)
	}
	return code
}

// readBatchInputs loads the batch operand list from the configured source.
// "-" reads from the application input stream.
func (a *Application) readBatchInputs() ([]string, error) {
	if a.Config.BatchFile == "-" {
		return batch.ReadInputs(a.In)
	}
	f, err := os.Open(a.Config.BatchFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return batch.ReadInputs(f)
}
