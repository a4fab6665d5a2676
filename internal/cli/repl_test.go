package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/cmplxcalc/internal/batch"
	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// runREPL feeds a script to a fresh REPL session and returns everything it
// printed. Colors are disabled so assertions can match plain text.
func runREPL(t *testing.T, script string) string {
	t.Helper()
	ui.InitTheme(true)

	r := NewREPL(REPLConfig{
		Options: batch.Options{
			Prec:     53,
			Rounding: bigcmplx.Nearest(),
		},
		Output: OutputConfig{Format: "dec"},
	})

	var buf bytes.Buffer
	r.SetInput(strings.NewReader(script))
	r.SetOutput(&buf)
	r.Start()
	return buf.String()
}

func TestREPLExit(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"short form", "q\n"},
		{"end of input", "status\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			if !strings.Contains(output, "Goodbye!") {
				t.Errorf("expected farewell message, got:\n%s", output)
			}
		})
	}
}

func TestREPLBanner(t *testing.T) {
	output := runREPL(t, "exit\n")
	if !strings.Contains(output, "Complex Squaring Calculator - Interactive Mode") {
		t.Error("expected welcome banner")
	}
	if !strings.Contains(output, "Available commands:") {
		t.Error("expected command help on startup")
	}
}

func TestREPLSquare(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{
			name:     "sq command",
			script:   "sq 3+4i\nexit\n",
			contains: []string{"re: -7", "im: 24"},
		},
		{
			name:     "bare operand",
			script:   "1+1i\nexit\n",
			contains: []string{"re: 0", "im: 2"},
		},
		{
			name:     "pure imaginary operand",
			script:   "2i\nexit\n",
			contains: []string{"re: -4", "im: 0"},
		},
		{
			name:     "sq with spaces in operand",
			script:   "sq 3 + 4i\nexit\n",
			contains: []string{"re: -7", "im: 24"},
		},
		{
			name:     "sq without operand",
			script:   "sq\nexit\n",
			contains: []string{"Usage: sq <z>"},
		},
		{
			name:     "malformed operand",
			script:   "sq 3+4j\nexit\n",
			contains: []string{"Error:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLOverflowNote(t *testing.T) {
	ui.InitTheme(true)

	r := NewREPL(REPLConfig{
		Options: batch.Options{
			Prec:     53,
			Rounding: bigcmplx.Nearest(),
			Emin:     -20,
			Emax:     20,
		},
		Output: OutputConfig{Format: "dec"},
	})

	var buf bytes.Buffer
	r.SetInput(strings.NewReader("0x1p15\nexit\n"))
	r.SetOutput(&buf)
	r.Start()

	if !strings.Contains(buf.String(), "overflowed the exponent range") {
		t.Errorf("expected overflow note, got:\n%s", buf.String())
	}
}

func TestREPLPrec(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{
			name:     "single precision",
			script:   "prec 128\nexit\n",
			contains: []string{"Precision changed to: 128 bits (re), 128 bits (im)"},
		},
		{
			name:     "split precision",
			script:   "prec 64 32\nexit\n",
			contains: []string{"Precision changed to: 64 bits (re), 32 bits (im)"},
		},
		{
			name:     "below minimum",
			script:   "prec 1\nexit\n",
			contains: []string{"Invalid precision: 1"},
		},
		{
			name:     "not a number",
			script:   "prec many\nexit\n",
			contains: []string{"Invalid precision: many"},
		},
		{
			name:     "missing argument",
			script:   "prec\nexit\n",
			contains: []string{"Usage: prec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLRound(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{
			name:     "both components",
			script:   "round away\nexit\n",
			contains: []string{"Rounding changed to: away (both)"},
		},
		{
			name:     "imaginary only",
			script:   "round zero im\nstatus\nexit\n",
			contains: []string{"Rounding changed to: zero (im)", "nearest (re), zero (im)"},
		},
		{
			name:     "real only",
			script:   "round up re\nexit\n",
			contains: []string{"Rounding changed to: up (re)"},
		},
		{
			name:     "unknown mode",
			script:   "round sideways\nexit\n",
			contains: []string{"Unknown rounding mode: sideways", "Available modes:"},
		},
		{
			name:     "unknown component",
			script:   "round zero quaternion\nexit\n",
			contains: []string{"Unknown component: quaternion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLFormatAndDigits(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{
			name:     "switch to hex",
			script:   "format hex\n4+8i\nexit\n",
			contains: []string{"Notation changed to: hex", "0x.8p+3"},
		},
		{
			name:     "unknown notation",
			script:   "format roman\nexit\n",
			contains: []string{"Unknown notation: roman"},
		},
		{
			name:     "set digits",
			script:   "digits 12\nexit\n",
			contains: []string{"Digits changed to: 12"},
		},
		{
			name:     "shortest form",
			script:   "digits 0\nexit\n",
			contains: []string{"Digits changed to: shortest exact form"},
		},
		{
			name:     "negative digits",
			script:   "digits -3\nexit\n",
			contains: []string{"Invalid digit count: -3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLRange(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains []string
	}{
		{
			name:     "valid range",
			script:   "range -100 100\nstatus\nexit\n",
			contains: []string{"Exponent range changed to: [-100, 100]", "Exponents:  [-100, 100]"},
		},
		{
			name:     "reset to default",
			script:   "range -10 10\nrange 0 0\nstatus\nexit\n",
			contains: []string{"Exponent range reset to the default.", "Exponents:  default range"},
		},
		{
			name:     "inverted bounds",
			script:   "range 10 -10\nexit\n",
			contains: []string{"Invalid range: need emin < 0 < emax"},
		},
		{
			name:     "non-numeric bounds",
			script:   "range low high\nexit\n",
			contains: []string{"Invalid exponent bounds"},
		},
		{
			name:     "missing argument",
			script:   "range -10\nexit\n",
			contains: []string{"Usage: range <emin> <emax>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runREPL(t, tt.script)
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLStatus(t *testing.T) {
	output := runREPL(t, "status\nexit\n")
	for _, s := range []string{
		"Current configuration:",
		"Precision:  53 bits (re), 53 bits (im)",
		"Rounding:   nearest (re), nearest (im)",
		"Exponents:  default range",
		"Notation:   dec",
		"Digits:     shortest exact",
	} {
		if !strings.Contains(output, s) {
			t.Errorf("expected status to contain %q, got:\n%s", s, output)
		}
	}
}

func TestREPLHelp(t *testing.T) {
	output := runREPL(t, "help\nexit\n")
	// Banner prints the help once; the command prints it again.
	if strings.Count(output, "Available commands:") != 2 {
		t.Errorf("expected help to be printed twice, got:\n%s", output)
	}
}

func TestNewREPLEnforcesMinPrec(t *testing.T) {
	r := NewREPL(REPLConfig{Options: batch.Options{Prec: 1}})
	if r.config.Options.Prec != r.config.MinPrec() {
		t.Errorf("Prec = %d, want minimum %d", r.config.Options.Prec, r.config.MinPrec())
	}
}
