package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/progress"
)

// RecordAnalyzer produces the record of a single n. *combinatorics.Analyzer
// is the production implementation.
type RecordAnalyzer interface {
	Analyze(ctx context.Context, n uint64) (combinatorics.AnalysisRecord, error)
	// Warm prepares shared state up to n before a parallel fan-out.
	Warm(n uint64)
	// CacheLen reports the size of the shared factorial cache.
	CacheLen() int
}

// SweepResult is the outcome of a sweep.
type SweepResult struct {
	// RunID identifies the sweep in logs and metrics.
	RunID string
	// Records holds the records completed in increasing n order. On failure
	// it holds the contiguous prefix completed before the error.
	Records []combinatorics.AnalysisRecord
	// Duration is the wall-clock time of the sweep.
	Duration time.Duration
	// CacheEntries is the factorial cache frontier at the end of the sweep.
	CacheEntries int
	// Err is the first error encountered, if any.
	Err error
}

// PresentationOptions configures how a sweep is presented to the user.
type PresentationOptions struct {
	MaxN      uint64
	Workers   int
	Verbose   bool
	Details   bool
	Table     bool
	TableEdge int
}

// ProgressReporter displays sweep progress. DisplayProgress runs in its own
// goroutine until progressChan is closed and then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the progress channel without output. It is
// used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// SweepPresenter presents a successful sweep.
type SweepPresenter interface {
	PresentSweep(result SweepResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler maps a sweep error to an exit code after reporting it.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
