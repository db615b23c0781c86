package strategy

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"symplectic/internal/bankroll"
	"symplectic/internal/config"
	"symplectic/internal/wei"
)

// Kelly computes the Kelly-optimal wager against a fee-bearing
// constant-product AMM, scaled by the caller's confidence in the probability
// estimate and by a partial-Kelly fraction.
type Kelly struct {
	cfg           config.KellyConfig
	defaultMaxBet *big.Int
}

func NewKelly(cfg config.KellyConfig) *Kelly {
	return &Kelly{cfg: cfg, defaultMaxBet: maxBetFromConfig(cfg)}
}

func maxBetFromConfig(cfg config.KellyConfig) *big.Int {
	if cfg.MaxBet > 0 {
		return wei.FromNative(decimal.NewFromFloat(cfg.MaxBet))
	}
	// 0.8 native tokens, the engine's historical cap.
	return big.NewInt(800_000_000_000_000_000)
}

func (k *Kelly) Name() string { return "kelly" }

func (k *Kelly) Enabled() bool { return k.cfg.Enabled }

func (k *Kelly) Schema() Schema {
	return Schema{
		Required: []string{
			"bet_kelly_fraction",
			"bankroll",
			"win_probability",
			"confidence",
			"selected_type_tokens_in_pool",
			"other_tokens_in_pool",
			"bet_fee",
			"floor_balance",
		},
		Optional: []string{"max_bet"},
	}
}

func (k *Kelly) Compute(p Params) Result {
	in, errRes, ok := readKellyInputs(p, k.defaultMaxBet)
	if !ok {
		return errRes
	}
	confidence, err := floatParam(p, "confidence")
	if err != nil {
		return errorResult("%v", err)
	}

	adj := bankroll.Adjust(in.bankroll, in.floor, in.maxBet)
	info := []string{fmt.Sprintf("adjusted bankroll: %s", wei.ToNative(adj))}

	if adj.Sign() <= 0 {
		info = append(info,
			fmt.Sprintf("bankroll (%s) does not clear the floor balance (%s)", in.bankroll, in.floor),
			"bet amount set to 0",
			"top up the account or wait for positions to redeem",
		)
		return Result{BetAmount: new(big.Int), Info: info}
	}

	feeFraction := 1 - wei.ToNative(in.fee).InexactFloat64()
	info = append(info, fmt.Sprintf("fee fraction: %v", feeFraction))

	raw, ok := kellyBetAmount(
		bigToFloat(in.poolSelected),
		bigToFloat(in.poolOther),
		in.winProb,
		confidence,
		bigToFloat(adj),
		feeFraction,
	)
	if !ok {
		info = append(info,
			"cannot size bet: negative discriminant for the given reserves, probability and fee",
			"bet amount set to 0",
		)
		return Result{BetAmount: new(big.Int), Info: info}
	}

	rawWei := truncToBig(raw)
	if rawWei.Sign() < 0 {
		info = append(info, fmt.Sprintf("invalid kelly bet amount %s; bet amount set to 0", rawWei))
		return Result{BetAmount: new(big.Int), Info: info}
	}
	info = append(info, fmt.Sprintf("kelly bet amount: %s", wei.ToNative(rawWei)))
	info = append(info, fmt.Sprintf("kelly fraction: %v", in.fraction))

	adjusted := truncToBig(bigToFloat(rawWei) * in.fraction)
	info = append(info, fmt.Sprintf("adjusted kelly bet amount: %s", wei.ToNative(adjusted)))

	slog.Debug("kelly bet sized",
		"strategy", k.Name(),
		"bet_amount", adjusted.String(),
		"win_probability", in.winProb,
		"confidence", confidence,
	)
	return Result{BetAmount: adjusted, Info: info}
}

// kellyInputs are the fields shared by both Kelly variants.
type kellyInputs struct {
	fraction     float64
	bankroll     *big.Int
	winProb      float64
	poolSelected *big.Int
	poolOther    *big.Int
	fee          *big.Int
	floor        *big.Int
	maxBet       *big.Int
}

func readKellyInputs(p Params, defaultMaxBet *big.Int) (kellyInputs, Result, bool) {
	var in kellyInputs
	var err error

	if in.fraction, err = floatParam(p, "bet_kelly_fraction"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.bankroll, err = bigIntParam(p, "bankroll"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.winProb, err = floatParam(p, "win_probability"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.poolSelected, err = bigIntParam(p, "selected_type_tokens_in_pool"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.poolOther, err = bigIntParam(p, "other_tokens_in_pool"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.fee, err = bigIntParam(p, "bet_fee"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.floor, err = bigIntParam(p, "floor_balance"); err != nil {
		return in, errorResult("%v", err), false
	}
	if in.maxBet, err = optionalBigIntParam(p, "max_bet", defaultMaxBet); err != nil {
		return in, errorResult("%v", err), false
	}
	return in, Result{}, true
}

// kellyBetAmount solves the closed-form quadratic for the wager that
// maximizes expected logarithmic bankroll growth against a constant-product
// pool with reserves (x, y), win probability p, confidence c, bankroll b and
// fee-adjusted fraction f.
//
// Returns ok=false when the discriminant is negative, which means the input
// combination has no real solution; callers downgrade that to a decline. A
// balanced pool (x²f = y²f) would divide by zero, so it sizes to 0 instead.
func kellyBetAmount(x, y, p, c, b, f float64) (amount float64, ok bool) {
	if b == 0 {
		return 0, true
	}
	denominator := 2 * (x*x*f - y*y*f)
	if denominator == 0 {
		return 0, true
	}

	negated := 4*x*x*y -
		b*y*y*p*c*f -
		2*b*x*y*p*c*f -
		b*x*x*p*c*f +
		2*b*y*y*f +
		2*b*x*y*f
	discriminant := negated*negated -
		4*(x*x*f-y*y*f)*(-4*b*x*y*y*p*c-4*b*x*x*y*p*c+4*b*x*y*y)
	if discriminant < 0 {
		return 0, false
	}

	return (-negated + math.Sqrt(discriminant)) / denominator, true
}
