package orchestration

import (
	"time"

	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/progress"
)

// ProgressAggregator turns per-worker progress updates into an overall
// fraction and ETA. Both the CLI and the TUI consume updates through it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numWorkers int
	lastN      uint64
	completed  uint64
}

// NewProgressAggregator creates an aggregator for numWorkers workers, or
// returns nil when numWorkers <= 0.
func NewProgressAggregator(numWorkers int) *ProgressAggregator {
	if numWorkers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numWorkers),
		numWorkers: numWorkers,
	}
}

// AggregatedProgress is the view of the sweep after one update.
type AggregatedProgress struct {
	// WorkerIndex is the worker that sent the update.
	WorkerIndex int
	// N is the index the worker just completed.
	N uint64
	// MinKAggregated is the crossing point found for N.
	MinKAggregated uint64
	// Completed is the number of updates received so far.
	Completed uint64
	// AverageProgress is the mean completion across workers.
	AverageProgress float64
	// ETA is the smoothed estimate of the remaining time.
	ETA time.Duration
}

// Update processes one update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.WorkerIndex, update.Value)
	a.completed++
	if update.N > a.lastN {
		a.lastN = update.N
	}
	return AggregatedProgress{
		WorkerIndex:     update.WorkerIndex,
		N:               update.N,
		MinKAggregated:  update.MinKAggregated,
		Completed:       a.completed,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current mean completion.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without recording progress.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Completed returns the number of updates received.
func (a *ProgressAggregator) Completed() uint64 {
	return a.completed
}

// LastN returns the highest n reported so far.
func (a *ProgressAggregator) LastN() uint64 {
	return a.lastN
}

// NumWorkers returns the number of workers tracked.
func (a *ProgressAggregator) NumWorkers() int {
	return a.numWorkers
}

// IsMultiWorker reports whether more than one worker is tracked.
func (a *ProgressAggregator) IsMultiWorker() bool {
	return a.numWorkers > 1
}

// DrainChannel discards every update until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
