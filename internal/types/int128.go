package types

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrArithmeticOverflow is returned when a signed 128-bit addition would
// leave the representable range. There is no third-party fixed-width int128
// type anywhere in the example pack (see DESIGN.md); math/big with an
// explicit range check is the standard-library fallback used here.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

var (
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// CheckedAddI128 adds b to a, returning ErrArithmeticOverflow if the result
// falls outside the signed 128-bit range [-2^127, 2^127-1].
func CheckedAddI128(a, b *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(a, b)
	if sum.Cmp(maxI128) > 0 || sum.Cmp(minI128) < 0 {
		return nil, fmt.Errorf("%w: %s + %s overflows i128", ErrArithmeticOverflow, a, b)
	}
	return sum, nil
}
