package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bincross/internal/format"
)

// HeaderModel renders the top bar: title, version, sweep range, elapsed
// time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	maxN      uint64
	width     int
}

// NewHeaderModel creates a header for a sweep of n = 1..maxN.
func NewHeaderModel(version string, maxN uint64) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		maxN:      maxN,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the sweep started, or its total duration
// once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "bincross monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")
	sweep := versionStyle.Render(fmt.Sprintf("n = 1..%s, T = 2^128", format.FormatNumberString(fmt.Sprint(h.maxN))))
	elapsed := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed()))

	row := titleStyle.Render(titleText) + pipe + sweep + pipe + elapsed
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}
