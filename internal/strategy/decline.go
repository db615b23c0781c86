package strategy

import (
	"math/big"

	"symplectic/internal/config"
)

// AlwaysDecline never wagers. It is the sentinel used to disable betting
// while keeping the rest of the pipeline exercised: the result carries a
// fixed error so callers treat it as "do not place a bet" rather than a
// computed zero.
type AlwaysDecline struct {
	cfg config.DeclineConfig
}

func NewAlwaysDecline(cfg config.DeclineConfig) *AlwaysDecline { return &AlwaysDecline{cfg: cfg} }

func (a *AlwaysDecline) Name() string { return "always_decline" }

func (a *AlwaysDecline) Enabled() bool { return a.cfg.Enabled }

func (a *AlwaysDecline) Schema() Schema {
	return Schema{Optional: []string{"max_bet"}}
}

func (a *AlwaysDecline) Compute(Params) Result {
	return Result{
		BetAmount: new(big.Int),
		Info:      []string{"betting is disabled"},
		Error:     []string{"betting disabled by strategy selection"},
	}
}
