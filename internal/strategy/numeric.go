package strategy

import "math/big"

// Numeric policy: token amounts cross the strategy boundary as *big.Int wei,
// intermediate arithmetic runs in double precision, and final amounts are
// truncated toward zero. The conversions below are correctly rounded so the
// float intermediates lose no more precision than IEEE 754 demands.

// bigToFloat returns the nearest float64 to b.
func bigToFloat(b *big.Int) float64 {
	f, _ := new(big.Float).SetInt(b).Float64()
	return f
}

// bigQuo returns the correctly rounded float64 quotient num/den.
func bigQuo(num, den *big.Int) float64 {
	q := new(big.Float).Quo(new(big.Float).SetInt(num), new(big.Float).SetInt(den))
	f, _ := q.Float64()
	return f
}

// truncToBig converts f to an integer amount, truncating toward zero.
func truncToBig(f float64) *big.Int {
	b, _ := big.NewFloat(f).Int(nil)
	return b
}
