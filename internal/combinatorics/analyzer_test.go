package combinatorics

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// referenceRecord derives the expected integers of a record with the
// standard library's Binomial, independently of the factorial cache.
func referenceRecord(n uint64, threshold *big.Int) (minKAgg uint64, sum *big.Int, minK, maxK uint64) {
	binom := func(k uint64) *big.Int { return new(big.Int).Binomial(int64(n), int64(k)) }

	sum = new(big.Int)
	minKAgg = n
	for k := uint64(1); k <= n; k++ {
		next := new(big.Int).Add(sum, binom(k))
		if next.Cmp(threshold) > 0 {
			minKAgg = k - 1
			break
		}
		sum = next
	}

	maxK = n
	crossed := false
	for k := minKAgg; k <= n; k++ {
		if binom(k).Cmp(threshold) > 0 {
			maxK, crossed = k, true
			break
		}
	}
	minK = maxK
	if crossed {
		minK = maxK - 1
	}
	return minKAgg, sum, minK, maxK
}

func TestAnalyzer_SmallN(t *testing.T) {
	t.Parallel()
	a := NewAnalyzer()

	testCases := []struct {
		n       uint64
		sum     int64
		log2Sum float64
	}{
		{1, 1, 0},
		{2, 3, math.Log2(3)},
		{3, 7, math.Log2(7)},
		{4, 15, math.Log2(15)},
	}

	for _, tc := range testCases {
		rec, err := a.Analyze(context.Background(), tc.n)
		if err != nil {
			t.Fatalf("Analyze(%d) error: %v", tc.n, err)
		}
		if rec.N != tc.n || rec.MinKAggregated != tc.n || rec.MinK != tc.n || rec.MaxK != tc.n {
			t.Errorf("Analyze(%d) ks = (%d, %d, %d), want all %d",
				tc.n, rec.MinKAggregated, rec.MinK, rec.MaxK, tc.n)
		}
		if rec.SumAtMinKAggregated.Cmp(big.NewInt(tc.sum)) != 0 {
			t.Errorf("Analyze(%d) sum = %s, want %d", tc.n, rec.SumAtMinKAggregated, tc.sum)
		}
		if rec.CombinationsAtMinK.Int64() != 1 || rec.CombinationsAtMaxK.Int64() != 1 {
			t.Errorf("Analyze(%d) combinations = (%s, %s), want (1, 1)",
				tc.n, rec.CombinationsAtMinK, rec.CombinationsAtMaxK)
		}
		if rec.Log2SumAtMinKAggregated != tc.log2Sum {
			t.Errorf("Analyze(%d) log2 sum = %f, want %f", tc.n, rec.Log2SumAtMinKAggregated, tc.log2Sum)
		}
		if rec.Log2CombinationsAtMinK != 0 || rec.Log2CombinationsAtMaxK != 0 {
			t.Errorf("Analyze(%d) log2 combinations should be 0", tc.n)
		}
		if rec.CrossingFound {
			t.Errorf("Analyze(%d) should not find a crossing", tc.n)
		}
	}
}

// TestAnalyzer_AggregateOverflowWithoutCrossing covers n = 129: the full
// aggregate 2^129-1 exceeds 2^128 but the central coefficient does not.
func TestAnalyzer_AggregateOverflowWithoutCrossing(t *testing.T) {
	t.Parallel()
	rec, err := NewAnalyzer().Analyze(context.Background(), 129)
	if err != nil {
		t.Fatal(err)
	}

	wantSum := new(big.Int).Sub(DefaultThreshold(), big.NewInt(1))
	if rec.MinKAggregated != 64 {
		t.Errorf("MinKAggregated = %d, want 64", rec.MinKAggregated)
	}
	if rec.SumAtMinKAggregated.Cmp(wantSum) != 0 {
		t.Errorf("SumAtMinKAggregated = %s, want 2^128-1", rec.SumAtMinKAggregated)
	}
	if rec.CrossingFound || rec.MaxK != 129 || rec.MinK != 129 {
		t.Errorf("got crossing=%v max_k=%d min_k=%d, want false 129 129",
			rec.CrossingFound, rec.MaxK, rec.MinK)
	}
	if rec.CombinationsAtMaxK.Int64() != 1 {
		t.Errorf("CombinationsAtMaxK = %s, want 1", rec.CombinationsAtMaxK)
	}
}

func TestAnalyzer_AgainstReference(t *testing.T) {
	t.Parallel()
	a := NewAnalyzer()
	threshold := DefaultThreshold()

	for _, n := range []uint64{5, 64, 128, 129, 130, 131, 200, 500} {
		rec, err := a.Analyze(context.Background(), n)
		if err != nil {
			t.Fatalf("Analyze(%d) error: %v", n, err)
		}
		minKAgg, sum, minK, maxK := referenceRecord(n, threshold)
		if rec.MinKAggregated != minKAgg || rec.MinK != minK || rec.MaxK != maxK {
			t.Errorf("Analyze(%d) ks = (%d, %d, %d), want (%d, %d, %d)",
				n, rec.MinKAggregated, rec.MinK, rec.MaxK, minKAgg, minK, maxK)
		}
		if rec.SumAtMinKAggregated.Cmp(sum) != 0 {
			t.Errorf("Analyze(%d) sum mismatch", n)
		}
		if rec.CombinationsAtMinK.Cmp(new(big.Int).Binomial(int64(n), int64(minK))) != 0 {
			t.Errorf("Analyze(%d) C(n, min_k) mismatch", n)
		}
		if rec.CombinationsAtMaxK.Cmp(new(big.Int).Binomial(int64(n), int64(maxK))) != 0 {
			t.Errorf("Analyze(%d) C(n, max_k) mismatch", n)
		}
		if err := rec.Validate(); err != nil {
			t.Errorf("Analyze(%d) produced an invalid record: %v", n, err)
		}
	}
}

func TestAnalyzer_CustomThreshold(t *testing.T) {
	t.Parallel()
	a := NewAnalyzer(WithThreshold(big.NewInt(10)))

	testCases := []struct {
		n              uint64
		minKAgg        uint64
		sum            int64
		minK, maxK     uint64
		atMinK, atMaxK int64
		crossing       bool
	}{
		// C(5,k) = 5 10 10 5 1: no single term exceeds 10.
		{n: 5, minKAgg: 1, sum: 5, minK: 5, maxK: 5, atMinK: 1, atMaxK: 1},
		// C(6,k) = 6 15 20 15 6 1: crossing at k=2.
		{n: 6, minKAgg: 1, sum: 6, minK: 1, maxK: 2, atMinK: 6, atMaxK: 15, crossing: true},
		// C(11,1) = 11 exceeds 10 immediately in the crossing scan.
		{n: 11, minKAgg: 0, sum: 0, minK: 0, maxK: 1, atMinK: 1, atMaxK: 11, crossing: true},
	}

	for _, tc := range testCases {
		rec, err := a.Analyze(context.Background(), tc.n)
		if tc.sum == 0 {
			// log2(0) is undefined: the analyzer must refuse the record.
			var invErr apperrors.InvariantError
			if !errors.As(err, &invErr) {
				t.Errorf("Analyze(%d) error = %v, want InvariantError", tc.n, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Analyze(%d) error: %v", tc.n, err)
		}
		if rec.MinKAggregated != tc.minKAgg || rec.MinK != tc.minK || rec.MaxK != tc.maxK {
			t.Errorf("Analyze(%d) ks = (%d, %d, %d), want (%d, %d, %d)",
				tc.n, rec.MinKAggregated, rec.MinK, rec.MaxK, tc.minKAgg, tc.minK, tc.maxK)
		}
		if rec.SumAtMinKAggregated.Int64() != tc.sum {
			t.Errorf("Analyze(%d) sum = %s, want %d", tc.n, rec.SumAtMinKAggregated, tc.sum)
		}
		if rec.CombinationsAtMinK.Int64() != tc.atMinK || rec.CombinationsAtMaxK.Int64() != tc.atMaxK {
			t.Errorf("Analyze(%d) combinations = (%s, %s), want (%d, %d)",
				tc.n, rec.CombinationsAtMinK, rec.CombinationsAtMaxK, tc.atMinK, tc.atMaxK)
		}
		if rec.CrossingFound != tc.crossing {
			t.Errorf("Analyze(%d) crossing = %v, want %v", tc.n, rec.CrossingFound, tc.crossing)
		}
	}
}

func TestAnalyzer_ZeroN(t *testing.T) {
	t.Parallel()
	_, err := NewAnalyzer().Analyze(context.Background(), 0)
	var domErr apperrors.DomainError
	if !errors.As(err, &domErr) {
		t.Fatalf("Analyze(0) error = %v, want DomainError", err)
	}
	if domErr.Field != "n" {
		t.Errorf("DomainError.Field = %q, want n", domErr.Field)
	}
}

func TestAnalyzer_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// n = 129 runs the aggregated scan past the first context check.
	_, err := NewAnalyzer().Analyze(ctx, 129)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze with canceled context error = %v, want context.Canceled", err)
	}
}

func TestAnalyzer_WarmAndCacheLen(t *testing.T) {
	t.Parallel()
	a := NewAnalyzer()
	a.Warm(300)
	if got := a.CacheLen(); got != 301 {
		t.Errorf("CacheLen() after Warm(300) = %d, want 301", got)
	}

	threshold := a.Threshold()
	threshold.SetInt64(1)
	if a.Threshold().Cmp(DefaultThreshold()) != 0 {
		t.Error("Threshold() must return a copy")
	}
}

func TestAnalysisRecord_Validate(t *testing.T) {
	t.Parallel()
	one := big.NewInt(1)
	valid := AnalysisRecord{
		N: 10, MinKAggregated: 3, MinK: 4, MaxK: 5,
		SumAtMinKAggregated: one, CombinationsAtMinK: one, CombinationsAtMaxK: one,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on a valid record: %v", err)
	}

	broken := []AnalysisRecord{
		{},
		{N: 10, MinKAggregated: 5, MinK: 4, MaxK: 5, SumAtMinKAggregated: one, CombinationsAtMinK: one, CombinationsAtMaxK: one},
		{N: 10, MinKAggregated: 3, MinK: 6, MaxK: 5, SumAtMinKAggregated: one, CombinationsAtMinK: one, CombinationsAtMaxK: one},
		{N: 4, MinKAggregated: 3, MinK: 4, MaxK: 5, SumAtMinKAggregated: one, CombinationsAtMinK: one, CombinationsAtMaxK: one},
		{N: 10, MinKAggregated: 3, MinK: 4, MaxK: 5},
	}
	for i, rec := range broken {
		var invErr apperrors.InvariantError
		if err := rec.Validate(); !errors.As(err, &invErr) {
			t.Errorf("case %d: Validate() = %v, want InvariantError", i, err)
		}
	}
}
