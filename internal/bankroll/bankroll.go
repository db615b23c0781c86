package bankroll

import "math/big"

// Adjust returns the spendable bankroll in base units: the balance minus the
// floor that must stay unspent, capped at maxBet. A nil maxBet means no cap.
// The result can be negative or zero, in which case the caller should decline
// to bet rather than treat it as a failure.
func Adjust(balance, floor, maxBet *big.Int) *big.Int {
	adj := new(big.Int).Set(balance)
	if floor != nil {
		adj.Sub(adj, floor)
	}
	if maxBet != nil && adj.Cmp(maxBet) > 0 {
		adj.Set(maxBet)
	}
	return adj
}
