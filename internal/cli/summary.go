package cli

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/ui"
)

// SweepSummary describes how k* evolves over a sweep.
type SweepSummary struct {
	Count int
	// MeanK and StdDevK are the mean and sample standard deviation of k*.
	MeanK   float64
	StdDevK float64
	// Intercept, Slope and RSquared fit k* ≈ Intercept + Slope*n. They are
	// NaN with fewer than two records.
	Intercept float64
	Slope     float64
	RSquared  float64
	// Crossings counts records where a single C(n,k) exceeds the threshold.
	Crossings int
	// FirstCrossingN is the smallest such n, 0 when there is none.
	FirstCrossingN uint64
}

// Summarize computes the statistics of k* over recs.
func Summarize(recs []combinatorics.AnalysisRecord) SweepSummary {
	s := SweepSummary{
		Count:     len(recs),
		Intercept: math.NaN(),
		Slope:     math.NaN(),
		RSquared:  math.NaN(),
	}
	if len(recs) == 0 {
		s.MeanK, s.StdDevK = math.NaN(), math.NaN()
		return s
	}

	xs := make([]float64, len(recs))
	ks := make([]float64, len(recs))
	for i, r := range recs {
		xs[i] = float64(r.N)
		ks[i] = float64(r.MinKAggregated)
		if r.CrossingFound {
			s.Crossings++
			if s.FirstCrossingN == 0 || r.N < s.FirstCrossingN {
				s.FirstCrossingN = r.N
			}
		}
	}
	s.MeanK, s.StdDevK = stat.MeanStdDev(ks, nil)
	if len(recs) >= 2 {
		s.Intercept, s.Slope = stat.LinearRegression(xs, ks, nil, false)
		s.RSquared = stat.RSquared(xs, ks, nil, s.Intercept, s.Slope)
	}
	return s
}

// DisplaySummary prints a SweepSummary.
func DisplaySummary(s SweepSummary, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- k* statistics ---%s\n", ui.ColorBold(), ui.ColorReset())
	if s.Count == 0 {
		fmt.Fprintln(out, "No records.")
		return
	}
	fmt.Fprintf(out, "Mean k*                : %s%.3f%s (std dev %.3f)\n", ui.ColorCyan(), s.MeanK, ui.ColorReset(), s.StdDevK)
	if !math.IsNaN(s.Slope) {
		fmt.Fprintf(out, "Linear fit             : k* ≈ %s%.4f + %.6f·n%s (R² = %.4f)\n",
			ui.ColorCyan(), s.Intercept, s.Slope, ui.ColorReset(), s.RSquared)
	}
	if s.Crossings == 0 {
		fmt.Fprintf(out, "Single-term crossings  : none\n")
		return
	}
	fmt.Fprintf(out, "Single-term crossings  : %s%d%s record(s), first at n=%d\n",
		ui.ColorCyan(), s.Crossings, ui.ColorReset(), s.FirstCrossingN)
}
