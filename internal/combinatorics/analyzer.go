package combinatorics

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// Analyzer locates, for a given n, where the binomial row C(n,·) and its
// prefix sums cross the threshold. An Analyzer is safe for concurrent use
// provided its factorial provider is.
type Analyzer struct {
	factorials FactorialProvider
	eval       *Evaluator
	threshold  *big.Int
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithThreshold replaces the default 2^128 threshold. The value is copied.
func WithThreshold(t *big.Int) AnalyzerOption {
	return func(a *Analyzer) {
		a.threshold = new(big.Int).Set(t)
	}
}

// WithFactorialProvider replaces the default math/big factorial cache.
func WithFactorialProvider(p FactorialProvider) AnalyzerOption {
	return func(a *Analyzer) {
		a.factorials = p
	}
}

// NewAnalyzer creates an analyzer using a fresh FactorialCache and the
// default threshold unless overridden by options.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.factorials == nil {
		a.factorials = NewFactorialCache()
	}
	if a.threshold == nil {
		a.threshold = DefaultThreshold()
	}
	a.eval = NewEvaluator(a.factorials)
	return a
}

// Threshold returns a copy of the analyzer's threshold.
func (a *Analyzer) Threshold() *big.Int {
	return new(big.Int).Set(a.threshold)
}

// Evaluator returns the binomial evaluator bound to the analyzer's provider.
func (a *Analyzer) Evaluator() *Evaluator {
	return a.eval
}

// Warm pre-extends the factorial cache up to n when the provider supports it.
func (a *Analyzer) Warm(n uint64) {
	if c, ok := a.factorials.(CachedProvider); ok {
		c.Warm(n)
	}
}

// CacheLen returns the factorial cache frontier, or 0 when the provider does
// not cache.
func (a *Analyzer) CacheLen() int {
	if c, ok := a.factorials.(CachedProvider); ok {
		return c.Len()
	}
	return 0
}

// Analyze computes the AnalysisRecord of n in three steps:
//
//  1. Aggregated scan: accumulate C(n,1), C(n,2), ... and stop at the first k
//     whose running sum exceeds the threshold. MinKAggregated is k-1 and the
//     reported sum excludes C(n,k). C(n,0) is not part of the sum.
//  2. Crossing scan: from k = MinKAggregated upward, MaxK is the first k with
//     C(n,k) above the threshold, or n when none is.
//  3. MinK is MaxK-1 when a crossing was found and MaxK otherwise.
//
// n = 0 is rejected with a DomainError. The context is polled between scan
// steps; on cancellation no partial record is returned.
func (a *Analyzer) Analyze(ctx context.Context, n uint64) (AnalysisRecord, error) {
	if n < 1 {
		return AnalysisRecord{}, apperrors.DomainError{Field: "n", Value: n, Reason: "must be >= 1"}
	}

	minKAgg, sum, err := a.scanAggregated(ctx, n)
	if err != nil {
		return AnalysisRecord{}, err
	}
	maxK, atMax, err := a.scanCrossing(ctx, n, minKAgg)
	if err != nil {
		return AnalysisRecord{}, err
	}

	crossing := atMax.Cmp(a.threshold) > 0
	minK, atMin := maxK, atMax
	if crossing {
		minK = maxK - 1
		if atMin, err = a.eval.Combinations(n, minK); err != nil {
			return AnalysisRecord{}, err
		}
	}

	rec := AnalysisRecord{
		N:                   n,
		MinKAggregated:      minKAgg,
		SumAtMinKAggregated: sum,
		MinK:                minK,
		CombinationsAtMinK:  atMin,
		MaxK:                maxK,
		CombinationsAtMaxK:  atMax,
		CrossingFound:       crossing,
	}
	if rec.Log2SumAtMinKAggregated, err = Log2(sum); err != nil {
		return AnalysisRecord{}, apperrors.CalculationError{N: n, Cause: err}
	}
	if rec.Log2CombinationsAtMinK, err = Log2(atMin); err != nil {
		return AnalysisRecord{}, apperrors.CalculationError{N: n, Cause: err}
	}
	if rec.Log2CombinationsAtMaxK, err = Log2(atMax); err != nil {
		return AnalysisRecord{}, apperrors.CalculationError{N: n, Cause: err}
	}
	return rec, nil
}

// scanAggregated returns the last k whose prefix sum stays within the
// threshold, together with that prefix sum.
func (a *Analyzer) scanAggregated(ctx context.Context, n uint64) (uint64, *big.Int, error) {
	sum := new(big.Int)
	for k := uint64(1); k <= n; k++ {
		if k%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, nil, err
			}
		}
		c, err := a.eval.Combinations(n, k)
		if err != nil {
			return 0, nil, err
		}
		sum.Add(sum, c)
		if sum.Cmp(a.threshold) > 0 {
			return k - 1, sum.Sub(sum, c), nil
		}
	}
	return n, sum, nil
}

// scanCrossing returns the first k >= from with C(n,k) above the threshold.
// When there is none it returns n and the last value computed.
func (a *Analyzer) scanCrossing(ctx context.Context, n, from uint64) (uint64, *big.Int, error) {
	last := new(big.Int)
	for k := from; k <= n; k++ {
		if k%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, nil, err
			}
		}
		c, err := a.eval.Combinations(n, k)
		if err != nil {
			return 0, nil, err
		}
		last = c
		if c.Cmp(a.threshold) > 0 {
			return k, c, nil
		}
	}
	return n, last, nil
}
