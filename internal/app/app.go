// Package app wires configuration, the squaring engine and the output layer
// into the runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/cmplxcalc/internal/batch"
	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/bigfloat"
	"github.com/agbru/cmplxcalc/internal/cli"
	"github.com/agbru/cmplxcalc/internal/config"
	apperrors "github.com/agbru/cmplxcalc/internal/errors"
	"github.com/agbru/cmplxcalc/internal/logging"
	"github.com/agbru/cmplxcalc/internal/server"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// Application represents the cmplxcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is the reader used for stdin batch input and the REPL.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets a custom input reader for batch ("-") and REPL modes.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument vector, os.Args shaped.
//   - errWriter: Destination for parse errors and usage output.
//   - opts: Optional construction overrides.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp if help was requested, or a ConfigError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The root context for the run.
//   - out: Destination for result output.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	ui.InitTheme(false)

	switch {
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.BatchFile != "":
		return a.runBatch(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, bigfloat.ModeNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServe starts the HTTP squaring service and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := notifySignals(ctx)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.New(server.DefaultServerConfig(a.Config.Addr), logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Options: a.options(),
		Output:  a.outputConfig(),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// options converts the parsed configuration into squaring options. The
// rounding names were validated during config parsing.
func (a *Application) options() batch.Options {
	rnd := bigcmplx.Nearest()
	if m, ok := bigfloat.ParseMode(a.Config.RoundRe); ok {
		rnd.Re = m
	}
	if m, ok := bigfloat.ParseMode(a.Config.RoundIm); ok {
		rnd.Im = m
	}
	return batch.Options{
		Prec:     a.Config.Prec,
		PrecIm:   a.Config.PrecIm,
		Rounding: rnd,
		Emin:     int(a.Config.Emin),
		Emax:     int(a.Config.Emax),
		Workers:  a.Config.Workers,
	}
}

// outputConfig converts the parsed configuration into output options.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Format:     a.Config.Format,
		Digits:     a.Config.Digits,
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
