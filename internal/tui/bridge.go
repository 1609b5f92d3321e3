package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/progress"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so sweep goroutines reach the program through this
// pointer.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

type sender interface {
	Send(msg tea.Msg)
}

// TUIProgressReporter forwards sweep progress to the dashboard.
type TUIProgressReporter struct {
	ref        sender
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends a ProgressMsg per
// update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			N:               ap.N,
			MinKAggregated:  ap.MinKAggregated,
			Completed:       ap.Completed,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.generation,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// TUISweepPresenter sends sweep outcomes to the dashboard instead of writing
// them.
type TUISweepPresenter struct {
	ref        sender
	generation uint64
}

var (
	_ orchestration.SweepPresenter    = (*TUISweepPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUISweepPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUISweepPresenter)(nil)
)

// PresentSweep sends the result.
func (t *TUISweepPresenter) PresentSweep(result orchestration.SweepResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(SweepResultMsg{Result: result, Generation: t.generation})
}

// FormatDuration formats d like the CLI.
func (t *TUISweepPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends the failure and returns its exit code.
func (t *TUISweepPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
