package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the status indicator and key hints.
type FooterModel struct {
	keys   []key.Binding
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a footer listing the given bindings.
func NewFooterModel(keys []key.Binding) FooterModel {
	return FooterModel{keys: keys}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the done indicator.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError toggles the error indicator.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// Status returns the current status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("ERROR")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	hints := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		h := k.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + status + "  " + strings.Join(hints, "  ")
}
