package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bincross/internal/combinatorics"
	apperrors "github.com/agbru/bincross/internal/errors"
	"github.com/agbru/bincross/internal/metrics"
	"github.com/agbru/bincross/internal/orchestration"
	"github.com/agbru/bincross/internal/ui"
)

func withoutColors(t *testing.T) {
	t.Helper()
	previous := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(previous) })
}

func sweepRecords(t *testing.T, maxN uint64) []combinatorics.AnalysisRecord {
	t.Helper()
	a := combinatorics.NewAnalyzer()
	recs := make([]combinatorics.AnalysisRecord, 0, maxN)
	for n := uint64(1); n <= maxN; n++ {
		rec, err := a.Analyze(context.Background(), n)
		if err != nil {
			t.Fatalf("Analyze(%d): %v", n, err)
		}
		recs = append(recs, rec)
	}
	return recs
}

func TestCLISweepPresenter_PresentSweep(t *testing.T) {
	withoutColors(t)
	p := CLISweepPresenter{MemoryBefore: metrics.NewMemoryCollector().Snapshot()}
	result := orchestration.SweepResult{
		RunID:        "run-1",
		Records:      sweepRecords(t, 5),
		Duration:     1500 * time.Millisecond,
		CacheEntries: 6,
	}
	opts := orchestration.PresentationOptions{MaxN: 5, Workers: 2, Table: true, TableEdge: 8, Details: true}

	var buf bytes.Buffer
	p.PresentSweep(result, opts, &buf)
	out := buf.String()
	for _, want := range []string{
		"--- Sweep Summary ---",
		"Analyzed n = 1..5 (5 records) in 1.5s with 2 worker(s).",
		"Last record: n=5 k*=5",
		"no single term above 2^128",
		"k* agg",
		"--- Details ---",
		"Factorial cache        : 6 entries",
		"--- k* statistics ---",
		"Run ID                 : run-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCLISweepPresenter_Minimal(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	CLISweepPresenter{}.PresentSweep(orchestration.SweepResult{}, orchestration.PresentationOptions{MaxN: 3, Workers: 1}, &buf)
	out := buf.String()
	if strings.Contains(out, "Last record") || strings.Contains(out, "Details") {
		t.Errorf("empty result without options should print only the summary:\n%s", out)
	}
}

func TestDisplayRecord_Crossing(t *testing.T) {
	withoutColors(t)
	recs := sweepRecords(t, 200)
	var buf bytes.Buffer
	DisplayRecord(recs[199], &buf)
	rec := recs[199]
	if !rec.CrossingFound {
		t.Fatal("n=200 should cross the threshold")
	}
	want := fmt.Sprintf("C(n,%d) is the first term above 2^128", rec.MaxK)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("crossing record output = %q", buf.String())
	}
}

func TestCLISweepPresenter_HandleError(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	p := CLISweepPresenter{}
	if code := p.HandleError(context.DeadlineExceeded, time.Second, &buf); code != apperrors.ExitErrorTimeout {
		t.Errorf("timeout exit code = %d", code)
	}
	if code := p.HandleError(errors.New("boom"), 0, &buf); code != apperrors.ExitErrorGeneric {
		t.Errorf("generic exit code = %d", code)
	}
	if got := p.FormatDuration(1500 * time.Microsecond); got != "1ms" {
		t.Errorf("FormatDuration = %q", got)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	recs := []combinatorics.AnalysisRecord{
		{N: 1, MinKAggregated: 1},
		{N: 2, MinKAggregated: 2},
		{N: 3, MinKAggregated: 3, CrossingFound: true},
		{N: 4, MinKAggregated: 4, CrossingFound: true},
	}
	s := Summarize(recs)
	if s.Count != 4 || s.MeanK != 2.5 {
		t.Errorf("Count/MeanK = %d/%f", s.Count, s.MeanK)
	}
	if math.Abs(s.Slope-1) > 1e-12 || math.Abs(s.Intercept) > 1e-12 || math.Abs(s.RSquared-1) > 1e-12 {
		t.Errorf("fit = %f + %f n (R2 %f), want exact line", s.Intercept, s.Slope, s.RSquared)
	}
	if s.Crossings != 2 || s.FirstCrossingN != 3 {
		t.Errorf("Crossings/FirstCrossingN = %d/%d", s.Crossings, s.FirstCrossingN)
	}
}

func TestSummarize_Small(t *testing.T) {
	t.Parallel()
	if s := Summarize(nil); s.Count != 0 || !math.IsNaN(s.MeanK) {
		t.Errorf("empty summary = %+v", s)
	}
	s := Summarize([]combinatorics.AnalysisRecord{{N: 1, MinKAggregated: 1}})
	if s.MeanK != 1 || !math.IsNaN(s.Slope) {
		t.Errorf("single-record summary = %+v", s)
	}
}

func TestDisplaySummary(t *testing.T) {
	withoutColors(t)
	var buf bytes.Buffer
	DisplaySummary(Summarize(sweepRecords(t, 10)), &buf)
	out := buf.String()
	for _, want := range []string{"Mean k*", "Linear fit", "Single-term crossings  : none"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	DisplaySummary(Summarize(nil), &buf)
	if !strings.Contains(buf.String(), "No records.") {
		t.Errorf("empty summary = %q", buf.String())
	}
}
