package strategy

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"

	"symplectic/internal/config"
)

// weiUnit is one native token in base units.
var weiUnit = big.NewInt(1_000_000_000_000_000_000)

// invariantRelTol is the relative tolerance for the constant-product check
// after each simulated trade. This is a correctness check on the candidate
// derivation, not a tunable.
const invariantRelTol = 1e-5

// MarketMover finds the wager that moves a binary market's implied
// probability to a target value. For a constant-product pool the implied
// p_yes equals the marginal price, so the solver binary-searches the bet
// amount, simulating each candidate trade against the pool and verifying the
// invariant at every step.
//
// The search interval upper bound is boundMultiplier times the total
// reserves; within maxIters iterations the search either converges to within
// tolerance of the target or returns its last candidate flagged as
// best-effort.
type MarketMover struct {
	cfg config.MoverConfig
}

func NewMarketMover(cfg config.MoverConfig) *MarketMover {
	return &MarketMover{cfg: cfg}
}

func (m *MarketMover) Name() string { return "market_moving_bet" }

func (m *MarketMover) Enabled() bool { return m.cfg.Enabled }

func (m *MarketMover) Schema() Schema {
	return Schema{
		Required: []string{"amounts", "target_p_yes"},
		Optional: []string{"max_iters", "market_fee", "verbose"},
	}
}

func (m *MarketMover) Compute(p Params) Result {
	amounts, err := bigIntSliceParam(p, "amounts")
	if err != nil {
		return errorResult("%v", err)
	}
	if len(amounts) != 2 {
		return errorResult("only binary markets are supported")
	}
	target, err := floatParam(p, "target_p_yes")
	if err != nil {
		return errorResult("%v", err)
	}
	maxIters, err := optionalIntParam(p, "max_iters", m.maxIters())
	if err != nil {
		return errorResult("%v", err)
	}
	marketFee, err := optionalBigIntParam(p, "market_fee", new(big.Int))
	if err != nil {
		return errorResult("%v", err)
	}
	verbose, err := optionalBoolParam(p, "verbose")
	if err != nil {
		return errorResult("%v", err)
	}
	if maxIters <= 0 {
		maxIters = m.maxIters()
	}

	yes, no := amounts[0], amounts[1]
	total := new(big.Int).Add(yes, no)

	// Index 0 holds Yes tokens, but scarcity drives price: the fewer Yes
	// tokens remain in the pool, the higher the implied p_yes.
	currentP := 1 - bigQuo(yes, total)
	fixedProduct := bigToFloat(new(big.Int).Mul(yes, no))

	outcome := 1
	if target > currentP {
		outcome = 0
	}

	// Fee-adjusted fraction of each candidate that actually enters the pool.
	feeScale := new(big.Int).Sub(weiUnit, marketFee)
	feeFactor := bigToFloat(feeScale) / 1e18

	minBet := new(big.Int)
	maxBet := new(big.Int).Mul(total, big.NewInt(m.boundMultiplier()))
	tolerance := m.tolerance()

	var (
		bet       = new(big.Int)
		converged bool
	)
	for i := 0; i < maxIters; i++ {
		// Midpoint, floor-divided: candidate amounts stay exact integers.
		bet.Add(minBet, maxBet).Rsh(bet, 1)
		effective := bigToFloat(bet) * feeFactor

		// Simulate a symmetric deposit of the effective amount, then remove
		// from the chosen side the quantity that restores the product.
		pool := [2]float64{
			bigToFloat(yes) + effective,
			bigToFloat(no) + effective,
		}
		newProduct := pool[0] * pool[1]
		dx := (newProduct - fixedProduct) / pool[1-outcome]
		pool[outcome] -= dx

		if !withinRelTol(pool[0]*pool[1], fixedProduct, invariantRelTol) {
			return errorResult(
				"constant-product invariant violated while simulating a bet of %s on outcome %d",
				bet, outcome)
		}

		newP := pool[1] / (pool[0] + pool[1])
		if verbose {
			slog.Debug("market mover iteration",
				"iter", i,
				"bet_amount", bet.String(),
				"outcome", outcome,
				"new_p_yes", newP,
				"target_p_yes", target,
			)
		}

		if math.Abs(target-newP) < tolerance {
			converged = true
			break
		}

		// Buying outcome 0 pushes p_yes up as the bet grows; buying outcome
		// 1 pushes it down, so the interval moves the other way.
		if newP > target {
			if outcome == 0 {
				maxBet.Set(bet)
			} else {
				minBet.Set(bet)
			}
		} else {
			if outcome == 0 {
				minBet.Set(bet)
			} else {
				maxBet.Set(bet)
			}
		}
	}

	var info []string
	info = append(info, fmt.Sprintf("current p_yes: %.4f, target p_yes: %.4f", currentP, target))
	if !converged {
		info = append(info, fmt.Sprintf(
			"did not converge within %d iterations; returning the last candidate as a best-effort bet", maxIters))
	}

	idx := outcome
	return Result{BetAmount: bet, OutcomeIndex: &idx, Info: info}
}

func (m *MarketMover) maxIters() int {
	if m.cfg.MaxIters > 0 {
		return m.cfg.MaxIters
	}
	return 100
}

func (m *MarketMover) tolerance() float64 {
	if m.cfg.Tolerance > 0 {
		return m.cfg.Tolerance
	}
	return 0.01
}

func (m *MarketMover) boundMultiplier() int64 {
	if m.cfg.BoundMultiplier > 0 {
		return m.cfg.BoundMultiplier
	}
	return 100
}

func withinRelTol(a, b, rtol float64) bool {
	return math.Abs(a-b) <= rtol*math.Abs(b)+1e-8
}
