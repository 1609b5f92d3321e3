package combinatorics

import (
	"context"
	"fmt"
	"math/big"
)

// ExampleEvaluator_Combinations computes a few binomial coefficients from a
// shared factorial cache.
func ExampleEvaluator_Combinations() {
	eval := NewEvaluator(NewFactorialCache())

	for _, k := range []uint64{0, 3, 5} {
		c, err := eval.Combinations(10, k)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("C(10,%d) = %s\n", k, c)
	}
	// Output:
	// C(10,0) = 1
	// C(10,3) = 120
	// C(10,5) = 252
}

// ExampleAnalyzer_Analyze analyzes a small n whose whole binomial row stays
// below 2^128.
func ExampleAnalyzer_Analyze() {
	rec, err := NewAnalyzer().Analyze(context.Background(), 4)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("n=%d min_k_agg=%d sum=%s min_k=%d max_k=%d\n",
		rec.N, rec.MinKAggregated, rec.SumAtMinKAggregated, rec.MinK, rec.MaxK)
	// Output:
	// n=4 min_k_agg=4 sum=15 min_k=4 max_k=4
}

// ExampleWithThreshold shows a crossing with a small threshold.
func ExampleWithThreshold() {
	a := NewAnalyzer(WithThreshold(big.NewInt(10)))
	rec, err := a.Analyze(context.Background(), 6)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("crossing=%v C(6,%d)=%s C(6,%d)=%s\n",
		rec.CrossingFound, rec.MinK, rec.CombinationsAtMinK, rec.MaxK, rec.CombinationsAtMaxK)
	// Output:
	// crossing=true C(6,1)=6 C(6,2)=15
}

// ExampleLog2 prints the base-2 logarithm of the default threshold.
func ExampleLog2() {
	v, _ := Log2(DefaultThreshold())
	fmt.Printf("%.6f\n", v)
	// Output:
	// 128.000000
}
