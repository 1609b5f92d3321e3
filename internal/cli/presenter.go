package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bincross/internal/combinatorics"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/metrics"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/progress"
	"github.com/agbru/bincross/internal/report"
	"github.com/agbru/bincross/internal/sysmon"
	"github.com/agbru/bincross/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLISweepPresenter prints the outcome of a sweep to the terminal.
type CLISweepPresenter struct {
	// MemoryBefore is the snapshot taken before the sweep; details mode
	// reports the activity since then.
	MemoryBefore metrics.MemorySnapshot
}

var (
	_ orchestration.SweepPresenter    = CLISweepPresenter{}
	_ orchestration.DurationFormatter = CLISweepPresenter{}
	_ orchestration.ErrorHandler      = CLISweepPresenter{}
)

// PresentSweep prints the sweep summary, then the optional table and
// details sections.
func (p CLISweepPresenter) PresentSweep(result orchestration.SweepResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Sweep Summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Analyzed n = 1..%s%d%s (%s records) in %s%s%s with %d worker(s).\n",
		ui.ColorMagenta(), opts.MaxN, ui.ColorReset(),
		format.FormatNumberString(fmt.Sprint(len(result.Records))),
		ui.ColorGreen(), p.FormatDuration(result.Duration), ui.ColorReset(),
		opts.Workers)

	if n := len(result.Records); n > 0 {
		DisplayRecord(result.Records[n-1], out)
	}
	if opts.Table {
		fmt.Fprintln(out)
		report.RenderTable(out, result.Records, opts.TableEdge)
	}
	if opts.Details {
		p.displayDetails(result, out)
	}
}

// FormatDuration formats d for display.
func (CLISweepPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports err and returns its exit code.
func (CLISweepPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ErrorColors{})
}

func (p CLISweepPresenter) displayDetails(result orchestration.SweepResult, out io.Writer) {
	snap := metrics.NewMemoryCollector().Snapshot()
	DisplayMemoryStats(snap.Since(p.MemoryBefore), out)
	fmt.Fprintf(out, "Factorial cache        : %s%s%s entries\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.CacheEntries)), ui.ColorReset())
	DisplaySystemStats(sysmon.HostInfo(), sysmon.Sample(), out)
	DisplaySummary(Summarize(result.Records), out)
	if result.RunID != "" {
		fmt.Fprintf(out, "Run ID                 : %s\n", result.RunID)
	}
}

// DisplayRecord prints a one-line view of a record.
func DisplayRecord(rec combinatorics.AnalysisRecord, out io.Writer) {
	crossing := "no single term above 2^128"
	if rec.CrossingFound {
		crossing = fmt.Sprintf("C(n,%d) is the first term above 2^128", rec.MaxK)
	}
	fmt.Fprintf(out, "Last record: n=%s%d%s k*=%s%d%s (log2 sum %s), min_k=%d, max_k=%d, %s.\n",
		ui.ColorMagenta(), rec.N, ui.ColorReset(),
		ui.ColorCyan(), rec.MinKAggregated, ui.ColorReset(),
		format.FormatLog2(rec.Log2SumAtMinKAggregated),
		rec.MinK, rec.MaxK, crossing)
}

// DisplayMemoryStats prints the memory activity of the sweep.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Details ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Heap in use            : %s%s%s\n", ui.ColorCyan(), format.FormatBytes(d.HeapAlloc), ui.ColorReset())
	fmt.Fprintf(out, "Allocated during sweep : %s%s%s in %s objects\n",
		ui.ColorCyan(), format.FormatBytes(d.Allocated), ui.ColorReset(), format.FormatNumberString(fmt.Sprint(d.Mallocs)))
	fmt.Fprintf(out, "GC cycles              : %d (pause %s)\n", d.NumGC, format.FormatExecutionDuration(time.Duration(d.PauseNs)))
}

// DisplaySystemStats prints host facts and the current resource usage.
func DisplaySystemStats(h sysmon.Host, s sysmon.Stats, out io.Writer) {
	cpu := h.CPUModel
	if cpu == "" {
		cpu = "unknown CPU"
	}
	fmt.Fprintf(out, "Host                   : %s, %d logical CPU(s), %s RAM\n", cpu, h.LogicalCPUs, format.FormatBytes(h.TotalMemory))
	fmt.Fprintf(out, "System load            : CPU %.1f%%, memory %.1f%%, process RSS %s\n",
		s.CPUPercent, s.MemPercent, format.FormatBytes(s.ProcessRSS))
}
