package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/cmplxcalc/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	c := DefaultConfig()

	if c.Prec != DefaultPrec {
		t.Errorf("Prec = %d, want %d", c.Prec, DefaultPrec)
	}
	if c.RoundRe != DefaultRound || c.RoundIm != DefaultRound {
		t.Errorf("rounding defaults = %q/%q, want %q", c.RoundRe, c.RoundIm, DefaultRound)
	}
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.Timeout, DefaultTimeout)
	}
	if c.Format != "dec" {
		t.Errorf("Format = %q, want \"dec\"", c.Format)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{
			name: "input flag",
			args: []string{"-in", "3+4i"},
			check: func(t *testing.T, c AppConfig) {
				if c.Input != "3+4i" {
					t.Errorf("Input = %q, want \"3+4i\"", c.Input)
				}
			},
		},
		{
			name: "positional input",
			args: []string{"1.5-2i"},
			check: func(t *testing.T, c AppConfig) {
				if c.Input != "1.5-2i" {
					t.Errorf("Input = %q, want \"1.5-2i\"", c.Input)
				}
			},
		},
		{
			name: "precision and per-component precision",
			args: []string{"-prec", "128", "-prec-im", "64", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.Prec != 128 || c.PrecIm != 64 {
					t.Errorf("Prec/PrecIm = %d/%d, want 128/64", c.Prec, c.PrecIm)
				}
				if c.PrecImEffective() != 64 {
					t.Errorf("PrecImEffective = %d, want 64", c.PrecImEffective())
				}
			},
		},
		{
			name: "prec-im falls back to prec",
			args: []string{"-prec", "100", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.PrecImEffective() != 100 {
					t.Errorf("PrecImEffective = %d, want 100", c.PrecImEffective())
				}
			},
		},
		{
			name: "round applies to both components",
			args: []string{"-round", "zero", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.RoundRe != "zero" || c.RoundIm != "zero" {
					t.Errorf("rounding = %q/%q, want zero/zero", c.RoundRe, c.RoundIm)
				}
			},
		},
		{
			name: "per-component round wins over round",
			args: []string{"-round", "zero", "-round-im", "up", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.RoundRe != "zero" || c.RoundIm != "up" {
					t.Errorf("rounding = %q/%q, want zero/up", c.RoundRe, c.RoundIm)
				}
			},
		},
		{
			name: "exponent range",
			args: []string{"-emin", "-100", "-emax", "100", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.Emin != -100 || c.Emax != 100 {
					t.Errorf("Emin/Emax = %d/%d, want -100/100", c.Emin, c.Emax)
				}
			},
		},
		{
			name: "batch and workers",
			args: []string{"-batch", "inputs.txt", "-workers", "4"},
			check: func(t *testing.T, c AppConfig) {
				if c.BatchFile != "inputs.txt" || c.Workers != 4 {
					t.Errorf("BatchFile/Workers = %q/%d", c.BatchFile, c.Workers)
				}
			},
		},
		{
			name: "timeout",
			args: []string{"-timeout", "90s", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if c.Timeout != 90*time.Second {
					t.Errorf("Timeout = %v, want 90s", c.Timeout)
				}
			},
		},
		{
			name: "shorthand flags",
			args: []string{"-q", "-o", "out.txt", "-in", "1"},
			check: func(t *testing.T, c AppConfig) {
				if !c.Quiet || c.OutputFile != "out.txt" {
					t.Errorf("Quiet/OutputFile = %v/%q", c.Quiet, c.OutputFile)
				}
			},
		},
		{
			name: "server mode",
			args: []string{"-serve", "-addr", ":9090"},
			check: func(t *testing.T, c AppConfig) {
				if !c.Serve || c.Addr != ":9090" {
					t.Errorf("Serve/Addr = %v/%q", c.Serve, c.Addr)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConfig(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseConfig(%v) error: %v", tt.args, err)
			}
			tt.check(t, c)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"precision too small", []string{"-prec", "1", "-in", "1"}, "prec"},
		{"prec-im too small", []string{"-prec-im", "1", "-in", "1"}, "prec-im"},
		{"unknown rounding mode", []string{"-round", "stochastic", "-in", "1"}, "round-re"},
		{"unknown per-component mode", []string{"-round-im", "banker", "-in", "1"}, "round-im"},
		{"inverted exponent range", []string{"-emin", "-5", "-emax", "-10", "-in", "1"}, "emax"},
		{"positive emin", []string{"-emin", "5", "-emax", "10", "-in", "1"}, "emin"},
		{"negative digits", []string{"-digits", "-3", "-in", "1"}, "digits"},
		{"unknown format", []string{"-format", "roman", "-in", "1"}, "format"},
		{"zero timeout", []string{"-timeout", "0s", "-in", "1"}, "timeout"},
		{"negative workers", []string{"-workers", "-1", "-in", "1"}, "workers"},
		{"quiet with verbose", []string{"-q", "-v", "-in", "1"}, "quiet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.args, io.Discard)
			if err == nil {
				t.Fatalf("ParseConfig(%v) should fail", tt.args)
			}
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	var buf strings.Builder
	_, err := ParseConfig([]string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "-prec") {
		t.Error("usage output should mention -prec")
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	_, err := ParseConfig([]string{"-frobnicate"}, io.Discard)
	if err == nil {
		t.Fatal("unknown flag should fail")
	}
	var cerr apperrors.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"PREC", "256")
	t.Setenv(EnvPrefix+"ROUND", "away")
	t.Setenv(EnvPrefix+"TIMEOUT", "5m")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	c, err := ParseConfig([]string{"-in", "2+2i"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if c.Prec != 256 {
		t.Errorf("Prec = %d, want 256 (from env)", c.Prec)
	}
	if c.RoundRe != "away" || c.RoundIm != "away" {
		t.Errorf("rounding = %q/%q, want away/away (from env)", c.RoundRe, c.RoundIm)
	}
	if c.Timeout != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m (from env)", c.Timeout)
	}
	if !c.Quiet {
		t.Error("Quiet should be true (from env)")
	}
}

func TestEnvOverridesFlagPriority(t *testing.T) {
	t.Setenv(EnvPrefix+"PREC", "256")
	t.Setenv(EnvPrefix+"ROUND", "away")

	c, err := ParseConfig([]string{"-prec", "64", "-round-re", "zero", "-in", "1"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if c.Prec != 64 {
		t.Errorf("Prec = %d, want 64 (CLI wins over env)", c.Prec)
	}
	// ROUND is skipped entirely once any round flag is set on the CLI.
	if c.RoundRe != "zero" {
		t.Errorf("RoundRe = %q, want \"zero\"", c.RoundRe)
	}
	if c.RoundIm != DefaultRound {
		t.Errorf("RoundIm = %q, want default %q", c.RoundIm, DefaultRound)
	}
}

func TestEnvOverridesInvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"PREC", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")
	t.Setenv(EnvPrefix+"VERBOSE", "maybe")

	c, err := ParseConfig([]string{"-in", "1"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if c.Prec != DefaultPrec {
		t.Errorf("Prec = %d, want default %d", c.Prec, DefaultPrec)
	}
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", c.Timeout, DefaultTimeout)
	}
	if c.Verbose {
		t.Error("Verbose should stay false for unrecognized value")
	}
}
