package orchestration

import (
	"github.com/agbru/bincross/internal/combinatorics"
	apperrors "github.com/agbru/bincross/internal/errors"
)

// NewAnalyzerForBackend builds an analyzer on the named factorial backend
// ("big", or "gmp" in binaries built with the gmp tag). An unknown name is a
// configuration error.
func NewAnalyzerForBackend(backend string) (*combinatorics.Analyzer, error) {
	if backend == "" {
		backend = combinatorics.DefaultBackend
	}
	provider, err := combinatorics.NewBackend(backend)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return combinatorics.NewAnalyzer(combinatorics.WithFactorialProvider(provider)), nil
}
