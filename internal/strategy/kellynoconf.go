package strategy

import (
	"fmt"
	"log/slog"
	"math/big"

	"symplectic/internal/bankroll"
	"symplectic/internal/config"
	"symplectic/internal/wei"
)

// KellyNoConf is the Kelly sizer without the confidence scalar in the
// formula. Instead of confidence it scales the partial-Kelly fraction by the
// historical weighted accuracy of the signal source: a proven source raises
// the effective fraction, possibly above 1.
type KellyNoConf struct {
	cfg           config.KellyConfig
	defaultMaxBet *big.Int
}

func NewKellyNoConf(cfg config.KellyConfig) *KellyNoConf {
	return &KellyNoConf{cfg: cfg, defaultMaxBet: maxBetFromConfig(cfg)}
}

func (k *KellyNoConf) Name() string { return "kelly_no_conf" }

func (k *KellyNoConf) Enabled() bool { return k.cfg.Enabled }

func (k *KellyNoConf) Schema() Schema {
	return Schema{
		Required: []string{
			"bet_kelly_fraction",
			"bankroll",
			"win_probability",
			"selected_type_tokens_in_pool",
			"other_tokens_in_pool",
			"bet_fee",
			"floor_balance",
		},
		Optional: []string{"max_bet", "weighted_accuracy"},
	}
}

func (k *KellyNoConf) Compute(p Params) Result {
	in, errRes, ok := readKellyInputs(p, k.defaultMaxBet)
	if !ok {
		return errRes
	}
	accuracy, haveAccuracy, err := optionalFloatParam(p, "weighted_accuracy")
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

	// The confidence term is fixed at 1: this variant trusts the probability
	// estimate as given.
	raw, ok := kellyBetAmount(
		bigToFloat(in.poolSelected),
		bigToFloat(in.poolOther),
		in.winProb,
		1,
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
	info = append(info, fmt.Sprintf("static kelly fraction: %v", in.fraction))

	fraction := in.fraction
	switch {
	case !haveAccuracy:
		info = append(info, "no weighted accuracy available for the signal source; using the static kelly fraction")
	case accuracy < 0 || accuracy > 1:
		info = append(info, fmt.Sprintf(
			"weighted accuracy %v is outside [0, 1]; using the static kelly fraction", accuracy))
	default:
		// Dynamic fraction: static fraction plus accuracy, deliberately
		// allowed to exceed 1 for consistently accurate sources.
		fraction = in.fraction + accuracy
		info = append(info, fmt.Sprintf(
			"weighted accuracy %v raises the effective kelly fraction to %v", accuracy, fraction))
	}

	adjusted := truncToBig(bigToFloat(rawWei) * fraction)
	info = append(info, fmt.Sprintf("adjusted kelly bet amount: %s", wei.ToNative(adjusted)))

	slog.Debug("kelly bet sized",
		"strategy", k.Name(),
		"bet_amount", adjusted.String(),
		"win_probability", in.winProb,
		"effective_fraction", fraction,
	)
	return Result{BetAmount: adjusted, Info: info}
}
