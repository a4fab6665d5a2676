package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/cmplxcalc/internal/config"
	"github.com/agbru/cmplxcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the operand, precision, rounding modes, exponent range, and
// environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Squaring %s(%s)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Input, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Precision: %s%d%s bits (re), %s%d%s bits (im); rounding %s%s%s/%s%s%s.\n",
		ui.ColorCyan(), cfg.Prec, ui.ColorReset(),
		ui.ColorCyan(), cfg.PrecImEffective(), ui.ColorReset(),
		ui.ColorCyan(), cfg.RoundRe, ui.ColorReset(),
		ui.ColorCyan(), cfg.RoundIm, ui.ColorReset())
	if cfg.Emin != 0 || cfg.Emax != 0 {
		fmt.Fprintf(out, "Exponent range: %s[%d, %d]%s.\n",
			ui.ColorCyan(), cfg.Emin, cfg.Emax, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single operand vs batch).
//
// Parameters:
//   - batchSize: The number of batch inputs (0 for a single operand).
//   - out: The writer for standard output.
func PrintExecutionMode(batchSize int, out io.Writer) {
	var modeDesc string
	if batchSize > 0 {
		modeDesc = fmt.Sprintf("Batch run over %s%d%s inputs", ui.ColorGreen(), batchSize, ui.ColorReset())
	} else {
		modeDesc = "Single squaring"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
