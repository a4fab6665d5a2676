// Package config handles application configuration from command-line flags
// and environment variables, with the priority: CLI flags > environment
// variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/cmplxcalc/internal/bigfloat"
	apperrors "github.com/agbru/cmplxcalc/internal/errors"
)

// EnvPrefix is the prefix for all environment variables recognized by the
// application (e.g. CMPLXCALC_PREC).
const EnvPrefix = "CMPLXCALC_"

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultPrec is the default working precision in bits for both
	// components of the result.
	DefaultPrec = 53
	// DefaultRound is the default rounding mode name.
	DefaultRound = "nearest"
	// DefaultTimeout is the default maximum duration for a calculation.
	DefaultTimeout = 1 * time.Minute
	// DefaultWorkers selects automatic worker sizing for batch mode.
	DefaultWorkers = 0
	// DefaultAddr is the default listen address for server mode.
	DefaultAddr = ":8080"
	// MinPrec is the smallest accepted precision in bits.
	MinPrec = 2
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// Input is the complex number to square, in the textual form
	// "re", "imi" or "re+imi" (e.g. "1.5-0x1p-3i").
	Input string
	// Prec is the result precision in bits for the real component, and for
	// the imaginary component unless PrecIm is set.
	Prec uint
	// PrecIm is the result precision in bits for the imaginary component.
	// Zero means "same as Prec".
	PrecIm uint
	// RoundRe names the rounding mode for the real component.
	RoundRe string
	// RoundIm names the rounding mode for the imaginary component.
	RoundIm string
	// Emin is the minimum representable exponent. Zero means the default
	// range.
	Emin int64
	// Emax is the maximum representable exponent. Zero means the default
	// range.
	Emax int64
	// Digits is the number of significant decimal digits used when
	// displaying results (0 = shortest exact form).
	Digits int
	// Format selects the output notation: "dec", "hex" or "sci".
	Format string
	// Timeout is the maximum duration for the whole run.
	Timeout time.Duration
	// Workers is the number of concurrent workers in batch mode
	// (0 = number of CPUs).
	Workers int
	// OutputFile is the path to save the result (empty = no file output).
	OutputFile string
	// BatchFile is a file of inputs to square, one per line
	// ("-" = stdin). Empty disables batch mode.
	BatchFile string
	// Verbose enables detailed output.
	Verbose bool
	// Quiet reduces output to the bare result (for scripting).
	Quiet bool
	// REPL starts the interactive read-eval-print loop.
	REPL bool
	// Serve starts the HTTP squaring service instead of a one-shot run.
	Serve bool
	// Addr is the listen address for server mode.
	Addr string
	// Completion names a shell to emit a completion script for
	// (bash, zsh, fish or powershell). Empty disables completion mode.
	Completion string
}

// DefaultConfig returns an AppConfig populated with the default values.
//
// Returns:
//   - AppConfig: The default configuration.
func DefaultConfig() AppConfig {
	return AppConfig{
		Prec:    DefaultPrec,
		RoundRe: DefaultRound,
		RoundIm: DefaultRound,
		Format:  "dec",
		Timeout: DefaultTimeout,
		Workers: DefaultWorkers,
		Addr:    DefaultAddr,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Flag Parsing
// ─────────────────────────────────────────────────────────────────────────────

// registerFlags declares all command-line flags on the given FlagSet, bound
// to the fields of config. Aliased flags (short and long forms) share the
// same destination.
func registerFlags(fs *flag.FlagSet, config *AppConfig, round *string) {
	fs.StringVar(&config.Input, "in", config.Input, "Complex number to square, e.g. \"1.5+2i\" or \"0x1p10-3i\"")
	fs.UintVar(&config.Prec, "prec", config.Prec, "Result precision in bits (both components unless -prec-im is set)")
	fs.UintVar(&config.PrecIm, "prec-im", config.PrecIm, "Result precision in bits for the imaginary component")
	fs.StringVar(round, "round", "", "Rounding mode for both components (nearest, zero, up, down, away)")
	fs.StringVar(&config.RoundRe, "round-re", config.RoundRe, "Rounding mode for the real component")
	fs.StringVar(&config.RoundIm, "round-im", config.RoundIm, "Rounding mode for the imaginary component")
	fs.Int64Var(&config.Emin, "emin", config.Emin, "Minimum representable exponent (0 = default range)")
	fs.Int64Var(&config.Emax, "emax", config.Emax, "Maximum representable exponent (0 = default range)")
	fs.IntVar(&config.Digits, "digits", config.Digits, "Significant decimal digits in output (0 = shortest exact)")
	fs.StringVar(&config.Format, "format", config.Format, "Output notation: dec, hex or sci")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum duration for the run")
	fs.IntVar(&config.Workers, "workers", config.Workers, "Concurrent workers in batch mode (0 = NumCPU)")
	fs.StringVar(&config.OutputFile, "output", config.OutputFile, "File to save the result to")
	fs.StringVar(&config.OutputFile, "o", config.OutputFile, "File to save the result to (shorthand)")
	fs.StringVar(&config.BatchFile, "batch", config.BatchFile, "File of inputs to square, one per line (\"-\" = stdin)")
	fs.BoolVar(&config.Verbose, "verbose", config.Verbose, "Enable detailed output")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "Enable detailed output (shorthand)")
	fs.BoolVar(&config.Quiet, "quiet", config.Quiet, "Reduce output to the bare result")
	fs.BoolVar(&config.Quiet, "q", config.Quiet, "Reduce output to the bare result (shorthand)")
	fs.BoolVar(&config.REPL, "repl", config.REPL, "Start the interactive session")
	fs.BoolVar(&config.Serve, "serve", config.Serve, "Start the HTTP squaring service")
	fs.StringVar(&config.Addr, "addr", config.Addr, "Listen address for server mode")
	fs.StringVar(&config.Completion, "completion", config.Completion, "Generate a completion script (bash, zsh, fish, powershell)")
}

// ParseConfig parses the command-line arguments and environment variables
// into an AppConfig.
//
// The priority order is: CLI flags > environment variables > defaults.
// The -round flag applies the same mode to both components; -round-re and
// -round-im override it individually.
//
// Parameters:
//   - args: The command-line arguments (without the program name).
//   - errWriter: Destination for flag parsing error and usage output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp if help was requested, or a ConfigError.
func ParseConfig(args []string, errWriter io.Writer) (AppConfig, error) {
	config := DefaultConfig()

	fs := flag.NewFlagSet("cmplxcalc", flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var round string
	registerFlags(fs, &config, &round)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return config, err
		}
		return config, apperrors.NewConfigError("invalid command line: %v", err)
	}

	applyEnvOverrides(&config, fs)

	// -round sets both components unless the per-component flag was given.
	if round != "" {
		if !isFlagSet(fs, "round-re") {
			config.RoundRe = round
		}
		if !isFlagSet(fs, "round-im") {
			config.RoundIm = round
		}
	}

	// A bare positional argument is accepted as the input.
	if rest := fs.Args(); len(rest) > 0 && config.Input == "" {
		config.Input = strings.Join(rest, " ")
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate checks the configuration for consistency.
//
// Returns:
//   - error: A ValidationError describing the first problem found, or nil.
func (c *AppConfig) Validate() error {
	if c.Prec < MinPrec {
		return apperrors.ValidationError{
			Field:   "prec",
			Message: fmt.Sprintf("must be at least %d bits", MinPrec),
		}
	}
	if c.PrecIm != 0 && c.PrecIm < MinPrec {
		return apperrors.ValidationError{
			Field:   "prec-im",
			Message: fmt.Sprintf("must be at least %d bits", MinPrec),
		}
	}
	if _, ok := bigfloat.ParseMode(c.RoundRe); !ok {
		return apperrors.ValidationError{
			Field:   "round-re",
			Message: fmt.Sprintf("unknown rounding mode %q (want nearest, zero, up, down or away)", c.RoundRe),
		}
	}
	if _, ok := bigfloat.ParseMode(c.RoundIm); !ok {
		return apperrors.ValidationError{
			Field:   "round-im",
			Message: fmt.Sprintf("unknown rounding mode %q (want nearest, zero, up, down or away)", c.RoundIm),
		}
	}
	if (c.Emin != 0 || c.Emax != 0) && c.Emin >= c.Emax {
		return apperrors.ValidationError{
			Field:   "emax",
			Message: "must be greater than emin",
		}
	}
	if c.Emin > 0 {
		return apperrors.ValidationError{Field: "emin", Message: "must be negative"}
	}
	if c.Emax < 0 {
		return apperrors.ValidationError{Field: "emax", Message: "must be positive"}
	}
	if c.Digits < 0 {
		return apperrors.ValidationError{Field: "digits", Message: "must not be negative"}
	}
	switch c.Format {
	case "dec", "hex", "sci":
	default:
		return apperrors.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (want dec, hex or sci)", c.Format),
		}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if c.Quiet && c.Verbose {
		return apperrors.ValidationError{
			Field:   "quiet",
			Message: "cannot be combined with verbose",
		}
	}
	return nil
}

// PrecImEffective returns the imaginary-component precision, falling back to
// Prec when PrecIm is unset.
func (c *AppConfig) PrecImEffective() uint {
	if c.PrecIm != 0 {
		return c.PrecIm
	}
	return c.Prec
}
