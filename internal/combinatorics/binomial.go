package combinatorics

import (
	"fmt"
	"math/big"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// Evaluator computes binomial coefficients exactly from a factorial provider.
// It holds no state of its own.
type Evaluator struct {
	factorials FactorialProvider
}

// NewEvaluator creates an evaluator on top of the given provider.
func NewEvaluator(factorials FactorialProvider) *Evaluator {
	return &Evaluator{factorials: factorials}
}

// Combinations returns C(n,k) = n! / (k! (n-k)!). The division is exact for
// every 0 <= k <= n. A k greater than n is rejected with a DomainError.
//
// The result is a fresh value owned by the caller.
func (e *Evaluator) Combinations(n, k uint64) (*big.Int, error) {
	if k > n {
		return nil, apperrors.DomainError{
			Field:  "k",
			Value:  k,
			Reason: fmt.Sprintf("must be in [0, %d]", n),
		}
	}
	den := new(big.Int).Mul(e.factorials.Factorial(k), e.factorials.Factorial(n-k))
	return new(big.Int).Quo(e.factorials.Factorial(n), den), nil
}
