package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/orchestration"
)

// MaxRecordEntries bounds the records panel history.
const MaxRecordEntries = 1000

type entryKind int

const (
	entryRecord entryKind = iota
	entryInfo
	entrySuccess
	entryError
)

type recordEntry struct {
	at   time.Time
	kind entryKind
	text string
}

// RecordsModel is the scrollable list of the latest records and sweep
// events. Offset 0 follows the newest entry; scrolling up moves back in
// time.
type RecordsModel struct {
	entries []recordEntry
	offset  int
	width   int
	height  int
}

// NewRecordsModel creates an empty records panel.
func NewRecordsModel() RecordsModel {
	return RecordsModel{}
}

// SetSize updates dimensions, borders included.
func (r *RecordsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *RecordsModel) add(kind entryKind, text string) {
	r.entries = append(r.entries, recordEntry{at: time.Now(), kind: kind, text: text})
	if over := len(r.entries) - MaxRecordEntries; over > 0 {
		r.entries = append(r.entries[:0], r.entries[over:]...)
	}
	if r.offset > 0 {
		r.offset = min(r.offset+1, r.maxOffset())
	}
}

// AddInfo appends a neutral message.
func (r *RecordsModel) AddInfo(text string) { r.add(entryInfo, text) }

// AddProgress appends the record announced by a progress update.
func (r *RecordsModel) AddProgress(msg ProgressMsg) {
	r.add(entryRecord, fmt.Sprintf("n=%-6d k*=%-4d %5.1f%%", msg.N, msg.MinKAggregated, msg.AverageProgress*100))
}

// AddResult appends the summary of a finished sweep.
func (r *RecordsModel) AddResult(result orchestration.SweepResult) {
	r.add(entrySuccess, fmt.Sprintf("sweep complete: %s records in %s",
		format.FormatNumberString(fmt.Sprint(len(result.Records))), format.FormatExecutionDuration(result.Duration)))
	if n := len(result.Records); n > 0 {
		last := result.Records[n-1]
		crossing := "no single term above 2^128"
		if last.CrossingFound {
			crossing = fmt.Sprintf("C(n,%d) first above 2^128", last.MaxK)
		}
		r.add(entrySuccess, fmt.Sprintf("last: n=%d k*=%d min_k=%d max_k=%d, %s", last.N, last.MinKAggregated, last.MinK, last.MaxK, crossing))
	}
}

// AddError appends a failure.
func (r *RecordsModel) AddError(msg ErrorMsg) {
	r.add(entryError, fmt.Sprintf("sweep failed after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err))
}

// Len returns the number of entries held.
func (r RecordsModel) Len() int { return len(r.entries) }

// Offset returns the scroll offset from the newest entry.
func (r RecordsModel) Offset() int { return r.offset }

// Reset clears the panel.
func (r *RecordsModel) Reset() {
	r.entries = nil
	r.offset = 0
}

func (r RecordsModel) visibleLines() int {
	return max(r.height-3, 1)
}

func (r RecordsModel) maxOffset() int {
	return max(len(r.entries)-r.visibleLines(), 0)
}

// ScrollUp moves the view back by lines entries.
func (r *RecordsModel) ScrollUp(lines int) {
	r.offset = min(r.offset+lines, r.maxOffset())
}

// ScrollDown moves the view forward by lines entries.
func (r *RecordsModel) ScrollDown(lines int) {
	r.offset = max(r.offset-lines, 0)
}

// PageSize returns the number of entries shown at once.
func (r RecordsModel) PageSize() int { return r.visibleLines() }

// View renders the panel.
func (r RecordsModel) View() string {
	return r.renderToHeight(r.height)
}

func (r RecordsModel) renderToHeight(h int) string {
	visible := max(h-3, 1)
	end := len(r.entries) - r.offset
	start := max(end-visible, 0)
	innerWidth := max(r.width-4, 10)

	lines := make([]string, 0, visible+1)
	title := "Records"
	if r.offset > 0 {
		title += fmt.Sprintf(" (+%d newer)", r.offset)
	}
	lines = append(lines, panelTitleStyle.Render(title))
	for _, e := range r.entries[start:end] {
		text := e.text
		if lipgloss.Width(text) > innerWidth-9 {
			text = truncate(text, innerWidth-9)
		}
		lines = append(lines, recordTimeStyle.Render(e.at.Format("15:04:05"))+" "+entryStyle(e.kind).Render(text))
	}
	for len(lines) < visible+1 {
		lines = append(lines, "")
	}
	return panelStyle.Width(max(r.width-2, 0)).Render(strings.Join(lines, "\n"))
}

func entryStyle(kind entryKind) lipgloss.Style {
	switch kind {
	case entrySuccess:
		return recordSuccessStyle
	case entryError:
		return recordErrorStyle
	case entryInfo:
		return metricLabelStyle
	default:
		return recordStyle
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
