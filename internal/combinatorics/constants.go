package combinatorics

import "math/big"

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// ThresholdBits is the exponent of the default crossing threshold 2^128,
	// a security-parameter-scale bound.
	ThresholdBits = 128

	// cancelCheckInterval is the number of scan iterations between two
	// context checks inside a single analysis.
	cancelCheckInterval = 64
)

// DefaultThreshold returns a fresh copy of 2^ThresholdBits.
func DefaultThreshold() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), ThresholdBits)
}
