// Package combinatorics implements the exact combinatorial engine: a
// memoized factorial provider, a binomial evaluator built on it, and the
// threshold-crossing analyzer that, for a given n, locates where the
// sequence C(n,k) and its prefix sums cross a fixed bound (2^128 by default).
//
// All arithmetic is exact (math/big). Floating point only appears in the
// base-2 logarithms attached to records for display purposes.
package combinatorics
