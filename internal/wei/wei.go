package wei

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals is the number of base-unit digits in one native token.
const Decimals = 18

// ToNative converts a base-unit ("wei") amount to its native denomination.
// The result is exact and intended for diagnostics and reports; sizing
// arithmetic never goes through this conversion.
func ToNative(w *big.Int) decimal.Decimal {
	if w == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(w, -Decimals)
}

// FromNative converts a native-denominated amount to base units, truncating
// any precision below one wei.
func FromNative(n decimal.Decimal) *big.Int {
	return n.Shift(Decimals).BigInt()
}
