package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bincross/internal/config"
	"github.com/agbru/bincross/internal/ui"
)

// PrintExecutionConfig displays the sweep about to run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Sweeping n = 1..%s%d%s against threshold %s2^128%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.MaxN, ui.ColorReset(),
		ui.ColorMagenta(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	dest := cfg.OutputFile
	if cfg.PrintOnly {
		dest = "standard output"
	}
	fmt.Fprintf(out, "Output: %s%s%s.\n", ui.ColorCyan(), dest, ui.ColorReset())
}

// PrintExecutionMode displays the factorial backend and the worker layout.
func PrintExecutionMode(backend string, workers int, out io.Writer) {
	mode := "Sequential sweep"
	if workers > 1 {
		mode = fmt.Sprintf("Parallel sweep with %s%d%s workers", ui.ColorGreen(), workers, ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s using the %s%s%s factorial backend.\n", mode, ui.ColorGreen(), backend, ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
