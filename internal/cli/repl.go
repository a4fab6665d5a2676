// Package cli provides the REPL (Read-Eval-Print Loop) functionality
// for interactive complex squaring.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/cmplxcalc/internal/batch"
	"github.com/agbru/cmplxcalc/internal/bigfloat"
	"github.com/agbru/cmplxcalc/internal/config"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Options are the squaring parameters (precision, rounding, range).
	Options batch.Options
	// Output controls how results are rendered.
	Output OutputConfig
}

// REPL represents an interactive complex squaring session.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance reading from stdin and writing to
// stdout.
//
// Parameters:
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if config.Options.Prec < config.MinPrec() {
		config.Options.Prec = config.MinPrec()
	}
	return &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// MinPrec returns the smallest precision the session accepts.
func (REPLConfig) MinPrec() uint { return config.MinPrec }

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"z> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sComplex Squaring Calculator - Interactive Mode%s       %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssq <z>%s           - Square z, e.g. sq 1.5+2i (or just type the number)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sprec <re> [im]%s   - Change the result precision in bits\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sround <m> [part]%s - Change rounding (nearest, zero, up, down, away)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sformat <f>%s       - Change notation (dec, hex, sci)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdigits <n>%s       - Significant digits shown (0 = shortest)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srange <min> <max>%s- Change the exponent range (0 0 = default)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "sq", "square", "calc":
		r.cmdSquare(args)
	case "prec", "p":
		r.cmdPrec(args)
	case "round", "rnd":
		r.cmdRound(args)
	case "format", "fmt":
		r.cmdFormat(args)
	case "digits":
		r.cmdDigits(args)
	case "range":
		r.cmdRange(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Anything else is treated as a complex number to square.
		r.square(input)
	}

	return true
}

// cmdSquare handles the "sq" command.
func (r *REPL) cmdSquare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: sq <z>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.square(strings.Join(args, ""))
}

// square parses and squares one operand with the session parameters.
func (r *REPL) square(input string) {
	start := time.Now()
	res := batch.SquareOne(input, r.config.Options)
	duration := time.Since(start)

	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	DisplayResult(r.out, res.Value, res.Inexact, input, duration, r.config.Output)
	if res.Overflow {
		fmt.Fprintf(r.out, "  %sNote: the result overflowed the exponent range.%s\n",
			ui.ColorYellow(), ui.ColorReset())
	}
	if res.Underflow {
		fmt.Fprintf(r.out, "  %sNote: the result underflowed the exponent range.%s\n",
			ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdPrec handles the "prec" command.
func (r *REPL) cmdPrec(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: prec <re-bits> [im-bits]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	parse := func(s string) (uint, bool) {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil || v < uint64(r.config.MinPrec()) {
			fmt.Fprintf(r.out, "%sInvalid precision: %s (minimum %d bits)%s\n",
				ui.ColorRed(), s, r.config.MinPrec(), ui.ColorReset())
			return 0, false
		}
		return uint(v), true
	}

	re, ok := parse(args[0])
	if !ok {
		return
	}
	im := uint(0)
	if len(args) > 1 {
		if im, ok = parse(args[1]); !ok {
			return
		}
	}

	r.config.Options.Prec = re
	r.config.Options.PrecIm = im
	fmt.Fprintf(r.out, "Precision changed to: %s%d%s bits (re), %s%d%s bits (im)\n",
		ui.ColorGreen(), re, ui.ColorReset(), ui.ColorGreen(), r.effectivePrecIm(), ui.ColorReset())
}

// effectivePrecIm resolves the imaginary-component precision.
func (r *REPL) effectivePrecIm() uint {
	if r.config.Options.PrecIm != 0 {
		return r.config.Options.PrecIm
	}
	return r.config.Options.Prec
}

// cmdRound handles the "round" command.
func (r *REPL) cmdRound(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: round <mode> [re|im]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	mode, ok := bigfloat.ParseMode(strings.ToLower(args[0]))
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown rounding mode: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available modes: nearest, zero, up, down, away\n")
		return
	}

	part := "both"
	if len(args) > 1 {
		part = strings.ToLower(args[1])
	}
	switch part {
	case "re", "real":
		r.config.Options.Rounding.Re = mode
	case "im", "imag":
		r.config.Options.Rounding.Im = mode
	case "both":
		r.config.Options.Rounding.Re = mode
		r.config.Options.Rounding.Im = mode
	default:
		fmt.Fprintf(r.out, "%sUnknown component: %s (want re or im)%s\n", ui.ColorRed(), part, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Rounding changed to: %s%s%s (%s)\n",
		ui.ColorGreen(), mode, ui.ColorReset(), part)
}

// cmdFormat handles the "format" command.
func (r *REPL) cmdFormat(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: format <dec|hex|sci>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	f := strings.ToLower(args[0])
	switch f {
	case "dec", "hex", "sci":
		r.config.Output.Format = f
		fmt.Fprintf(r.out, "Notation changed to: %s%s%s\n", ui.ColorGreen(), f, ui.ColorReset())
	default:
		fmt.Fprintf(r.out, "%sUnknown notation: %s (want dec, hex or sci)%s\n", ui.ColorRed(), f, ui.ColorReset())
	}
}

// cmdDigits handles the "digits" command.
func (r *REPL) cmdDigits(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: digits <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid digit count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Output.Digits = n
	if n == 0 {
		fmt.Fprintf(r.out, "Digits changed to: %sshortest exact form%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "Digits changed to: %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
	}
}

// cmdRange handles the "range" command.
func (r *REPL) cmdRange(args []string) {
	if len(args) < 2 {
		fmt.Fprintf(r.out, "%sUsage: range <emin> <emax>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	emin, err1 := strconv.Atoi(args[0])
	emax, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintf(r.out, "%sInvalid exponent bounds%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	if (emin != 0 || emax != 0) && (emin >= emax || emin > 0 || emax < 0) {
		fmt.Fprintf(r.out, "%sInvalid range: need emin < 0 < emax (or 0 0 for default)%s\n",
			ui.ColorRed(), ui.ColorReset())
		return
	}
	r.config.Options.Emin = emin
	r.config.Options.Emax = emax
	if emin == 0 && emax == 0 {
		fmt.Fprintf(r.out, "Exponent range reset to the default.\n")
	} else {
		fmt.Fprintf(r.out, "Exponent range changed to: %s[%d, %d]%s\n",
			ui.ColorGreen(), emin, emax, ui.ColorReset())
	}
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	o := r.config.Options
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Precision:  %s%d%s bits (re), %s%d%s bits (im)\n",
		ui.ColorCyan(), o.Prec, ui.ColorReset(), ui.ColorCyan(), r.effectivePrecIm(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Rounding:   %s%s%s (re), %s%s%s (im)\n",
		ui.ColorCyan(), o.Rounding.Re, ui.ColorReset(), ui.ColorCyan(), o.Rounding.Im, ui.ColorReset())
	if o.Emin == 0 && o.Emax == 0 {
		fmt.Fprintf(r.out, "  Exponents:  %sdefault range%s\n", ui.ColorCyan(), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  Exponents:  %s[%d, %d]%s\n", ui.ColorCyan(), o.Emin, o.Emax, ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  Notation:   %s%s%s\n", ui.ColorCyan(), r.config.Output.Format, ui.ColorReset())
	if r.config.Output.Digits == 0 {
		fmt.Fprintf(r.out, "  Digits:     %sshortest exact%s\n", ui.ColorCyan(), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  Digits:     %s%d%s\n", ui.ColorCyan(), r.config.Output.Digits, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}
