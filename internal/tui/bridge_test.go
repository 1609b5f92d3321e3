package tui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/config"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/progress"
	"github.com/agbru/bincross/internal/report"
)

// recordingSender collects messages instead of sending them to a program.
type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recordingSender) messages() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func TestProgramRef_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressDoneMsg{}) // must not panic
}

func TestTUIProgressReporter_ForwardsUpdates(t *testing.T) {
	rec := &recordingSender{}
	reporter := &TUIProgressReporter{ref: rec, generation: 3}

	ch := make(chan progress.ProgressUpdate, 4)
	ch <- progress.ProgressUpdate{WorkerIndex: 0, Value: 0.5, N: 1, MinKAggregated: 1}
	ch <- progress.ProgressUpdate{WorkerIndex: 0, Value: 1, N: 2, MinKAggregated: 2}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()

	msgs := rec.messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	last, ok := msgs[1].(ProgressMsg)
	if !ok {
		t.Fatalf("second message is %T", msgs[1])
	}
	if last.N != 2 || last.MinKAggregated != 2 || last.Completed != 2 || last.AverageProgress != 1 || last.Generation != 3 {
		t.Errorf("unexpected progress message: %+v", last)
	}
	if done, ok := msgs[2].(ProgressDoneMsg); !ok || done.Generation != 3 {
		t.Errorf("last message = %#v, want ProgressDoneMsg{3}", msgs[2])
	}
}

func TestTUIProgressReporter_ZeroWorkers(t *testing.T) {
	rec := &recordingSender{}
	reporter := &TUIProgressReporter{ref: rec}

	ch := make(chan progress.ProgressUpdate, 1)
	ch <- progress.ProgressUpdate{Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()

	if n := len(rec.messages()); n != 0 {
		t.Errorf("zero workers should only drain, got %d messages", n)
	}
}

func TestTUISweepPresenter(t *testing.T) {
	rec := &recordingSender{}
	p := &TUISweepPresenter{ref: rec, generation: 1}

	p.PresentSweep(orchestration.SweepResult{RunID: "r"}, orchestration.PresentationOptions{}, nil)
	code := p.HandleError(context.DeadlineExceeded, time.Second, nil)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("HandleError(timeout) = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if got := p.FormatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Errorf("FormatDuration = %q", got)
	}

	msgs := rec.messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if r, ok := msgs[0].(SweepResultMsg); !ok || r.Result.RunID != "r" || r.Generation != 1 {
		t.Errorf("first message = %#v", msgs[0])
	}
	if e, ok := msgs[1].(ErrorMsg); !ok || !errors.Is(e.Err, context.DeadlineExceeded) {
		t.Errorf("second message = %#v", msgs[1])
	}
}

func TestStartSweepCmd(t *testing.T) {
	rec := &recordingSender{}
	path := filepath.Join(t.TempDir(), "sweep.csv")
	cfg := config.AppConfig{MaxN: 20, Workers: 2, OutputFile: path}

	msg := startSweepCmd(rec, context.Background(), combinatorics.NewAnalyzer(), cfg, Options{RunID: "run"}, 0)()
	done, ok := msg.(SweepCompleteMsg)
	if !ok {
		t.Fatalf("command returned %T", msg)
	}
	if done.ExitCode != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", done.ExitCode)
	}

	var result *orchestration.SweepResult
	progressCount := 0
	for _, m := range rec.messages() {
		switch m := m.(type) {
		case SweepResultMsg:
			result = &m.Result
		case ProgressMsg:
			progressCount++
		}
	}
	if result == nil || len(result.Records) != 20 {
		t.Fatalf("missing or short sweep result: %+v", result)
	}
	if progressCount != 20 {
		t.Errorf("got %d progress messages, want 20", progressCount)
	}

	recs, err := report.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(recs) != 20 || recs[19].N != 20 {
		t.Errorf("file holds %d records", len(recs))
	}
}

func TestStartSweepCmd_Canceled(t *testing.T) {
	rec := &recordingSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.AppConfig{MaxN: 50, Workers: 1, PrintOnly: true}

	msg := startSweepCmd(rec, ctx, combinatorics.NewAnalyzer(), cfg, Options{}, 2)()
	done := msg.(SweepCompleteMsg)
	if done.ExitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", done.ExitCode, apperrors.ExitErrorCanceled)
	}
	found := false
	for _, m := range rec.messages() {
		if e, ok := m.(ErrorMsg); ok && e.Generation == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected an ErrorMsg for the canceled sweep")
	}
}
