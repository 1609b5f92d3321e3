//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/progress"
)

const (
	// ProgressRefreshRate is the spinner redraw interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation and clears its line.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the sweep's progress bar, the last
// analyzed n and its k*, and an ETA, until progressChan is closed. It then
// prints the final state on its own line and calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last orchestration.AggregatedProgress
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				avg := agg.CalculateAverage()
				fmt.Fprintf(out, "Sweep: %6.2f%% [%s] %d record(s)\n",
					avg*100, format.ProgressBar(avg, ProgressBarWidth), agg.Completed())
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(last, agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

// progressSuffix renders the text shown next to the spinner.
func progressSuffix(last orchestration.AggregatedProgress, avg float64, eta time.Duration) string {
	return fmt.Sprintf(" Sweep: %6.2f%% [%s] n=%s k*=%d ETA: %s",
		avg*100, format.ProgressBar(avg, ProgressBarWidth),
		format.FormatNumberString(fmt.Sprint(last.N)), last.MinKAggregated, format.FormatETA(eta))
}
