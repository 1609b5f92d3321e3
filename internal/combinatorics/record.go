package combinatorics

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// AnalysisRecord holds the threshold-crossing statistics of a single n.
// A record is immutable once returned by the analyzer: the big integers it
// references may be shared with other records and must not be modified.
type AnalysisRecord struct {
	// N is the analyzed index (N >= 1).
	N uint64

	// MinKAggregated is the largest k such that C(n,1)+...+C(n,k) does not
	// exceed the threshold, or N when the full aggregate never does.
	MinKAggregated uint64
	// SumAtMinKAggregated is C(n,1)+...+C(n,MinKAggregated).
	SumAtMinKAggregated *big.Int
	// Log2SumAtMinKAggregated is log2(SumAtMinKAggregated).
	Log2SumAtMinKAggregated float64

	// MinK is MaxK-1 when a crossing was found, MaxK otherwise.
	MinK uint64
	// CombinationsAtMinK is C(n,MinK).
	CombinationsAtMinK *big.Int
	// Log2CombinationsAtMinK is log2(CombinationsAtMinK).
	Log2CombinationsAtMinK float64

	// MaxK is the first k >= MinKAggregated with C(n,k) above the threshold,
	// or N when no such k exists.
	MaxK uint64
	// CombinationsAtMaxK is C(n,MaxK).
	CombinationsAtMaxK *big.Int
	// Log2CombinationsAtMaxK is log2(CombinationsAtMaxK).
	Log2CombinationsAtMaxK float64

	// CrossingFound reports whether some single C(n,k) exceeded the threshold.
	CrossingFound bool
}

// Validate checks the ordering MinKAggregated <= MinK <= MaxK <= N together
// with the presence of every integer field.
func (r AnalysisRecord) Validate() error {
	if r.N < 1 {
		return apperrors.InvariantError{Invariant: "n >= 1", Detail: fmt.Sprintf("n=%d", r.N)}
	}
	if r.SumAtMinKAggregated == nil || r.CombinationsAtMinK == nil || r.CombinationsAtMaxK == nil {
		return apperrors.InvariantError{Invariant: "record integers are set", Detail: fmt.Sprintf("n=%d", r.N)}
	}
	if r.MinKAggregated > r.MinK || r.MinK > r.MaxK || r.MaxK > r.N {
		return apperrors.InvariantError{
			Invariant: "min_k_agg <= min_k <= max_k <= n",
			Detail: fmt.Sprintf("n=%d min_k_agg=%d min_k=%d max_k=%d",
				r.N, r.MinKAggregated, r.MinK, r.MaxK),
		}
	}
	return nil
}
