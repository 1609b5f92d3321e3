package combinatorics

import (
	"math"
	"math/big"

	apperrors "github.com/agbru/bincross/internal/errors"
)

// Log2 returns the base-2 logarithm of a strictly positive integer of any
// size. Only the top 64 bits take part in the floating-point step, so the
// result keeps full float64 precision however large x is.
//
// A nil, zero or negative x is an internal invariant violation.
func Log2(x *big.Int) (float64, error) {
	if x == nil || x.Sign() <= 0 {
		detail := "value=nil"
		if x != nil {
			detail = "value=" + x.String()
		}
		return 0, apperrors.InvariantError{Invariant: "log2 argument must be positive", Detail: detail}
	}
	bits := x.BitLen()
	if bits <= 64 {
		return math.Log2(float64(x.Uint64())), nil
	}
	shift := bits - 64
	top := new(big.Int).Rsh(x, uint(shift)).Uint64()
	return float64(shift) + math.Log2(float64(top)), nil
}
