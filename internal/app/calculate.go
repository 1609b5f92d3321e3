package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/bincross/internal/cli"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/logging"
	"github.com/agbru/bincross/internal/metrics"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/plot"
)

// runSweep runs the sweep, streams the records to the output file (or to
// out in print-only mode) and optionally draws the chart from the written
// file.
func (a *Application) runSweep(ctx context.Context, out io.Writer, logger logging.Logger, runID string) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()

	analyzer, code := a.analyzer()
	if analyzer == nil {
		return code
	}

	// In print-only mode stdout carries the rows alone; banners and the
	// summary move to the error writer.
	infoOut := out
	if a.Config.PrintOnly {
		infoOut = a.ErrWriter
	}
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, infoOut)
		cli.PrintExecutionMode(a.Config.Backend, a.Config.Workers, infoOut)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := infoOut
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	sink, closeSink, err := cli.OpenSink(cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		PrintOnly:  a.Config.PrintOnly,
		Verbose:    a.Config.Verbose,
	}, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	sweepMetrics := a.newSweepMetrics()
	presenter := cli.CLISweepPresenter{MemoryBefore: metrics.NewMemoryCollector().Snapshot()}
	result := orchestration.ExecuteSweep(ctx, analyzer, orchestration.SweepOptions{
		MaxN:     a.Config.MaxN,
		Workers:  a.Config.Workers,
		LogEvery: a.Config.LogEvery,
		RunID:    runID,
		Sink:     sink,
		Logger:   logger,
		Metrics:  sweepMetrics,
	}, reporter, progressOut)
	if cerr := closeSink(); cerr != nil && result.Err == nil {
		result.Err = cerr
	}
	a.writeMetrics(sweepMetrics, logger)

	presOpts := orchestration.PresentationOptions{
		MaxN:      a.Config.MaxN,
		Workers:   a.Config.Workers,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		Table:     a.Config.Table,
		TableEdge: a.Config.TableEdge,
	}
	var sp orchestration.SweepPresenter = presenter
	if a.Config.Quiet {
		sp = quietPresenter{}
	}
	if code := orchestration.AnalyzeSweepResult(result, presOpts, sp, presenter, infoOut); code != apperrors.ExitSuccess {
		return code
	}
	if a.Config.PrintOnly {
		return apperrors.ExitSuccess
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out)
		cli.DisplayOutputSummary(a.Config.OutputFile, len(result.Records), out)
	}
	if a.Config.Plot {
		return a.renderPlot(out)
	}
	return apperrors.ExitSuccess
}

// renderPlot draws the k* chart from the written report.
func (a *Application) renderPlot(out io.Writer) int {
	series, err := plot.LoadSeries(a.Config.OutputFile, a.Config.PlotLimit)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	opts := plot.DefaultChartOptions()
	opts.Width = a.Config.PlotWidth
	opts.Height = a.Config.PlotHeight
	fmt.Fprintln(out)
	fmt.Fprint(out, plot.RenderLineChart(series, opts))
	return apperrors.ExitSuccess
}

// newSweepMetrics returns the collectors of the run, or nil when no metrics
// file was requested.
func (a *Application) newSweepMetrics() *metrics.SweepMetrics {
	if a.Config.MetricsFile == "" {
		return nil
	}
	return metrics.NewSweepMetrics()
}

// writeMetrics exports m to the configured textfile. A failure is logged
// but does not change the exit code.
func (a *Application) writeMetrics(m *metrics.SweepMetrics, logger logging.Logger) {
	if m == nil {
		return
	}
	if err := m.WriteTextfile(a.Config.MetricsFile); err != nil {
		logger.Error("writing metrics textfile", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
}

// quietPresenter suppresses the summary of a successful sweep.
type quietPresenter struct{}

func (quietPresenter) PresentSweep(orchestration.SweepResult, orchestration.PresentationOptions, io.Writer) {
}
