// Package progress defines the progress messages exchanged between the sweep
// orchestrator and the presentation layer, and the work model used to turn
// completed indices into a completion fraction.
package progress

// ProgressUpdate reports that a sweep worker finished analyzing one n.
type ProgressUpdate struct {
	// WorkerIndex identifies the worker (0 in sequential mode).
	WorkerIndex int
	// Value is the completed fraction of the worker's share of work, in [0, 1].
	Value float64
	// N is the index that was just analyzed.
	N uint64
	// MinKAggregated is the aggregated crossing point found for N.
	MinKAggregated uint64
}

// ProgressCallback receives a completion fraction in [0, 1].
type ProgressCallback func(value float64)

// Weight returns the estimated relative cost of analyzing n. The factorials
// involved have O(n log n) bits and the aggregated scan of small n visits
// O(n) coefficients, so cost is modeled as n².
func Weight(n uint64) float64 {
	f := float64(n)
	return f * f
}

// StripeWork returns the total weight of the indices assigned to worker w
// when 1..maxN is striped across workers: w+1, w+1+workers, w+1+2*workers...
func StripeWork(maxN uint64, workers, w int) float64 {
	if workers <= 0 || w < 0 || w >= workers {
		return 0
	}
	var total float64
	for n := uint64(w) + 1; n <= maxN; n += uint64(workers) {
		total += Weight(n)
	}
	return total
}

// Tracker accumulates completed weight against a fixed total. It is used by
// a single worker and is not safe for concurrent use.
type Tracker struct {
	total float64
	done  float64
}

// NewTracker creates a tracker for the given total weight.
func NewTracker(total float64) *Tracker {
	return &Tracker{total: total}
}

// Advance records n as completed and returns the completed fraction.
func (t *Tracker) Advance(n uint64) float64 {
	t.done += Weight(n)
	return t.Fraction()
}

// Fraction returns the completed fraction, clamped to [0, 1]. An empty
// tracker is considered complete.
func (t *Tracker) Fraction() float64 {
	if t.total <= 0 {
		return 1
	}
	if f := t.done / t.total; f < 1 {
		return f
	}
	return 1
}
