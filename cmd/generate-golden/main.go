// Command generate-golden writes a reference sweep computed with an oracle
// that shares no code with the factorial cache: every C(n,k) comes from
// big.Int.Binomial. The output is a CSV in the report format and is used to
// cross-check the engine over large ranges.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"

	"github.com/agbru/bincross/internal/combinatorics"
	"github.com/agbru/bincross/internal/report"
)

func main() {
	maxN := flag.Uint64("n", 300, "Largest n of the reference sweep.")
	out := flag.String("o", "testdata/oracle.csv", "Output path; a .zst suffix compresses it.")
	flag.Parse()

	recs := make([]combinatorics.AnalysisRecord, 0, *maxN)
	for n := uint64(1); n <= *maxN; n++ {
		recs = append(recs, oracleRecord(n))
	}
	if err := report.WriteFile(*out, recs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d records to %s\n", len(recs), *out)
}

func threshold() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 128)
}

func binomial(n, k uint64) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

// oracleRecord recomputes the record of n with the same three scans as the
// engine, from big.Int.Binomial.
func oracleRecord(n uint64) combinatorics.AnalysisRecord {
	t := threshold()

	k := n
	sum := new(big.Int)
	for j := uint64(1); j <= n; j++ {
		next := new(big.Int).Add(sum, binomial(n, j))
		if next.Cmp(t) > 0 {
			k = j - 1
			break
		}
		sum = next
	}

	maxK := n
	atMax := new(big.Int)
	found := false
	for j := k; j <= n; j++ {
		atMax = binomial(n, j)
		if atMax.Cmp(t) > 0 {
			maxK = j
			found = true
			break
		}
	}

	minK, atMin := maxK, atMax
	if found {
		minK = maxK - 1
		atMin = binomial(n, minK)
	}

	return combinatorics.AnalysisRecord{
		N:                       n,
		MinKAggregated:          k,
		SumAtMinKAggregated:     sum,
		Log2SumAtMinKAggregated: log2(sum),
		MinK:                    minK,
		CombinationsAtMinK:      atMin,
		Log2CombinationsAtMinK:  log2(atMin),
		MaxK:                    maxK,
		CombinationsAtMaxK:      atMax,
		Log2CombinationsAtMaxK:  log2(atMax),
		CrossingFound:           found,
	}
}

// log2 goes through big.Float so that it does not depend on the engine's
// implementation.
func log2(x *big.Int) float64 {
	if x.Sign() <= 0 {
		return math.Inf(-1)
	}
	mant := new(big.Float).SetInt(x)
	exp := mant.MantExp(mant)
	m, _ := mant.Float64()
	return float64(exp) + math.Log2(m)
}
