package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bincross/internal/format"
)

// MetricsModel shows sweep progress and runtime memory figures.
type MetricsModel struct {
	maxN      uint64
	progress  float64
	eta       time.Duration
	lastN     uint64
	lastK     uint64
	completed uint64
	rate      float64 // records per second, smoothed
	lastTick  time.Time
	lastCount uint64
	done      bool

	alloc        uint64
	heapSys      uint64
	numGC        uint32
	numGoroutine int

	width  int
	height int
}

// NewMetricsModel creates the panel for a sweep of n = 1..maxN.
func NewMetricsModel(maxN uint64) MetricsModel {
	return MetricsModel{maxN: maxN, lastTick: time.Now()}
}

// SetSize updates dimensions, borders included.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateProgress folds an aggregated progress update into the panel.
func (m *MetricsModel) UpdateProgress(msg ProgressMsg) {
	m.progress = msg.AverageProgress
	m.eta = msg.ETA
	m.completed = msg.Completed
	if msg.N >= m.lastN {
		m.lastN = msg.N
		m.lastK = msg.MinKAggregated
	}

	now := time.Now()
	if dt := now.Sub(m.lastTick).Seconds(); dt >= 0.25 {
		instant := float64(m.completed-m.lastCount) / dt
		if m.rate > 0 {
			m.rate = 0.7*m.rate + 0.3*instant
		} else {
			m.rate = instant
		}
		m.lastTick = now
		m.lastCount = m.completed
	}
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// SetDone marks the sweep complete.
func (m *MetricsModel) SetDone(completed uint64) {
	m.done = true
	m.progress = 1
	m.eta = 0
	m.completed = completed
}

// Progress returns the last known completion fraction.
func (m MetricsModel) Progress() float64 { return m.progress }

// View renders the panel.
func (m MetricsModel) View() string {
	inner := max(m.width-4, 20)
	barWidth := max(inner-16, 10)

	eta := "ETA: " + format.FormatETA(m.eta)
	if m.done {
		eta = "done"
	}
	colWidth := inner / 2
	lines := []string{
		panelTitleStyle.Render("Sweep"),
		barStyle.Render(format.ProgressBar(m.progress, barWidth)) + fmt.Sprintf(" %6.2f%%", m.progress*100),
		metricCol("n", format.FormatNumberString(fmt.Sprint(m.lastN)), colWidth) +
			metricCol("k*", fmt.Sprint(m.lastK), colWidth),
		metricCol("records", fmt.Sprintf("%s/%s", format.FormatNumberString(fmt.Sprint(m.completed)), format.FormatNumberString(fmt.Sprint(m.maxN))), colWidth) +
			metricCol("rate", fmt.Sprintf("%.0f/s", m.rate), colWidth),
		metricCol("heap", format.FormatBytes(m.alloc), colWidth) +
			metricCol("GC", fmt.Sprint(m.numGC), colWidth),
		metricCol("goroutines", fmt.Sprint(m.numGoroutine), colWidth) + metricValueStyle.Render(eta),
	}
	return panelStyle.Width(max(m.width-2, 0)).Render(strings.Join(lines, "\n"))
}

func metricCol(label, value string, width int) string {
	text := metricLabelStyle.Render(label+": ") + metricValueStyle.Render(value)
	pad := width - len(label) - 2 - len(value)
	if pad < 1 {
		pad = 1
	}
	return text + strings.Repeat(" ", pad)
}
