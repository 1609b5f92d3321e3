// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Open* functions acquire a resource that the caller must close.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/report"
	"github.com/agbru/bincross/internal/ui"
)

// OutputConfig selects where the records of a sweep go.
type OutputConfig struct {
	// OutputFile is the CSV destination; ignored in print-only mode.
	OutputFile string
	// PrintOnly prints each record to the terminal instead of a file.
	PrintOnly bool
	// Verbose echoes each record to the terminal in addition to the file.
	Verbose bool
}

// OpenSink builds the record sink of a run. The returned close function
// flushes and releases the sink and must be called once the sweep is over.
// Records are echoed to out in print-only and verbose modes.
func OpenSink(cfg OutputConfig, out io.Writer) (report.Sink, func() error, error) {
	if cfg.PrintOnly {
		return report.NewLinePrinter(out), func() error { return nil }, nil
	}
	file, err := report.CreateFile(cfg.OutputFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		return report.MultiSink{file, report.NewLinePrinter(out)}, file.Close, nil
	}
	return file, file.Close, nil
}

// FormatRecordLine renders a record as one CSV line.
func FormatRecordLine(rec combinatorics.AnalysisRecord) string {
	return strings.Join(report.FormatRow(rec), ",")
}

// DisplayOutputSummary reports where the records were written.
func DisplayOutputSummary(path string, count int, out io.Writer) {
	kind := "CSV"
	if report.IsCompressed(path) {
		kind = "zstd-compressed CSV"
	}
	fmt.Fprintf(out, "%s%s%s row(s) written to %s%s%s (%s).\n",
		ui.ColorGreen(), format.FormatNumberString(fmt.Sprint(count)), ui.ColorReset(),
		ui.ColorCyan(), path, ui.ColorReset(), kind)
}
