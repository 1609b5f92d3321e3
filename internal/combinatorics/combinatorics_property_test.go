package combinatorics

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sharedAnalyzer is reused by the property tests so the factorial cache is
// only extended once.
var sharedAnalyzer = NewAnalyzer()

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	return parameters
}

// TestBinomialSymmetry_PropertyBased verifies C(n,k) == C(n,n-k).
func TestBinomialSymmetry_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())
	eval := sharedAnalyzer.Evaluator()

	properties.Property("C(n,k) equals C(n,n-k)", prop.ForAll(
		func(n, k uint64) bool {
			k %= n + 1
			left, err := eval.Combinations(n, k)
			if err != nil {
				return false
			}
			right, err := eval.Combinations(n, n-k)
			if err != nil {
				return false
			}
			return left.Cmp(right) == 0
		},
		gen.UInt64Range(0, 1500),
		gen.UInt64Range(0, 1500),
	))

	properties.TestingRun(t)
}

// TestRecordOrdering_PropertyBased verifies that every record satisfies
// MinKAggregated <= MinK <= MaxK <= n.
func TestRecordOrdering_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("min_k_agg <= min_k <= max_k <= n", prop.ForAll(
		func(n uint64) bool {
			rec, err := sharedAnalyzer.Analyze(context.Background(), n)
			if err != nil {
				t.Logf("Analyze(%d) error: %v", n, err)
				return false
			}
			return rec.MinKAggregated <= rec.MinK && rec.MinK <= rec.MaxK && rec.MaxK <= n
		},
		gen.UInt64Range(1, 1500),
	))

	properties.TestingRun(t)
}

// TestAggregatedSum_PropertyBased verifies that the reported sum equals
// C(n,1)+...+C(n,k*) recomputed with the standard library.
func TestAggregatedSum_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("sum equals the prefix sum up to min_k_agg", prop.ForAll(
		func(n uint64) bool {
			rec, err := sharedAnalyzer.Analyze(context.Background(), n)
			if err != nil {
				return false
			}
			want := new(big.Int)
			for k := uint64(1); k <= rec.MinKAggregated; k++ {
				want.Add(want, new(big.Int).Binomial(int64(n), int64(k)))
			}
			return rec.SumAtMinKAggregated.Cmp(want) == 0 &&
				rec.SumAtMinKAggregated.Cmp(DefaultThreshold()) <= 0
		},
		gen.UInt64Range(1, 800),
	))

	properties.TestingRun(t)
}

// TestCrossingBoundary_PropertyBased verifies that when a crossing is found
// C(n,MaxK) exceeds the threshold while C(n,MaxK-1) does not.
func TestCrossingBoundary_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())
	threshold := DefaultThreshold()

	properties.Property("crossing sits exactly at max_k", prop.ForAll(
		func(n uint64) bool {
			rec, err := sharedAnalyzer.Analyze(context.Background(), n)
			if err != nil {
				return false
			}
			if rec.MaxK == n && !rec.CrossingFound {
				return rec.MinK == rec.MaxK
			}
			above := new(big.Int).Binomial(int64(n), int64(rec.MaxK))
			below := new(big.Int).Binomial(int64(n), int64(rec.MaxK-1))
			return rec.CrossingFound &&
				rec.MinK == rec.MaxK-1 &&
				above.Cmp(threshold) > 0 &&
				below.Cmp(threshold) <= 0
		},
		gen.UInt64Range(1, 1500),
	))

	properties.TestingRun(t)
}
