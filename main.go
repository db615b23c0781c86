package main

import (
	"fmt"
	"math/big"

	"symplectic/internal/config"
	"symplectic/internal/strategy"
)

// Quick demo: size a Kelly bet and a market-moving bet against a sample
// pool. See cmd/symplectic for the real CLI.
func main() {
	cfg := config.DefaultConfig().Strategy

	kelly := strategy.NewKelly(cfg.Kelly)
	res := strategy.Run(kelly, strategy.Params{
		"bet_kelly_fraction":           0.5,
		"bankroll":                     big.NewInt(4_000_000_000_000_000_000),
		"win_probability":              0.7,
		"confidence":                   0.8,
		"selected_type_tokens_in_pool": big.NewInt(2_000_000_000_000_000_000),
		"other_tokens_in_pool":         big.NewInt(1_000_000_000_000_000_000),
		"bet_fee":                      big.NewInt(20_000_000_000_000_000),
		"floor_balance":                big.NewInt(500_000_000_000_000_000),
	})
	fmt.Println("kelly bet:", res.BetAmount)
	for _, line := range res.Info {
		fmt.Println(" ", line)
	}

	mover := strategy.NewMarketMover(cfg.Mover)
	res = strategy.Run(mover, strategy.Params{
		"amounts":      []*big.Int{big.NewInt(1_000_000_000_000_000_000), big.NewInt(2_000_000_000_000_000_000)},
		"target_p_yes": 0.8,
	})
	fmt.Println("moving bet:", res.BetAmount, "on outcome", *res.OutcomeIndex)
}
