package tui

// sparklineChars are the eight block heights, lowest first.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent samples of a percentage metric, oldest
// first.
type History struct {
	samples []float64
	limit   int
}

// NewHistory creates a history holding at most limit samples.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{samples: make([]float64, 0, limit), limit: limit}
}

// Push appends a sample and drops the oldest one when the history is full.
func (h *History) Push(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Values returns a copy of the samples.
func (h *History) Values() []float64 {
	return append([]float64(nil), h.samples...)
}

// Reset drops every sample.
func (h *History) Reset() { h.samples = h.samples[:0] }

// RenderSparkline renders percentages (0..100) as a row of block elements,
// keeping only the last width samples. A non-positive width keeps them all.
func RenderSparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100*7), 7)]
	}
	return string(runes)
}
