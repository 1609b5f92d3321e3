package plot

import (
	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/report"
)

// Point is one plotted sample: the largest aggregation size k* for n.
type Point struct {
	N uint64
	K uint64
}

// Series is a list of points ordered by increasing N.
type Series []Point

// FromRecords extracts (n, MinKAggregated) for every record with n <= limit.
// A zero limit keeps every record.
func FromRecords(recs []combinatorics.AnalysisRecord, limit uint64) Series {
	s := make(Series, 0, len(recs))
	for _, r := range recs {
		if limit > 0 && r.N > limit {
			continue
		}
		s = append(s, Point{N: r.N, K: r.MinKAggregated})
	}
	return s
}

// LoadSeries reads a CSV report (plain or .zst) and returns its series
// restricted to n <= limit.
func LoadSeries(path string, limit uint64) (Series, error) {
	recs, err := report.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromRecords(recs, limit), nil
}

// bounds returns the smallest and largest N and the largest K.
func (s Series) bounds() (minN, maxN, maxK uint64) {
	minN = s[0].N
	for _, p := range s {
		minN = min(minN, p.N)
		maxN = max(maxN, p.N)
		maxK = max(maxK, p.K)
	}
	return minN, maxN, maxK
}
