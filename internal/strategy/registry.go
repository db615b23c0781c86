package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"symplectic/internal/config"
	"symplectic/internal/wei"
)

// All constructs every strategy the engine knows about. The set is closed:
// selection happens by name against this list, never by dynamic dispatch.
// Disabled strategies are included so callers can report on them.
func All(cfg config.StrategyConfig) []Strategy {
	return []Strategy{
		NewKelly(cfg.Kelly),
		NewKellyNoConf(cfg.Kelly),
		NewMarketMover(cfg.Mover),
		NewThreshold(cfg.Threshold),
		NewAlwaysDecline(cfg.Decline),
	}
}

// ByName returns the named strategy from the closed set. Strategies switched
// off in config are not selectable.
func ByName(cfg config.StrategyConfig, name string) (Strategy, error) {
	for _, s := range All(cfg) {
		if s.Name() != name {
			continue
		}
		if !s.Enabled() {
			return nil, fmt.Errorf("strategy %q is disabled", name)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Defaults returns a copy of p with config-backed fallbacks filled in for
// fields the caller omitted. Supplied values always win; monetary config
// values are in native units and convert to wei here.
func Defaults(cfg config.StrategyConfig, s Strategy, p Params) Params {
	out := make(Params, len(p)+3)
	for k, v := range p {
		out[k] = v
	}
	fill := func(name string, value any) {
		if v, ok := out[name]; !ok || v == nil {
			out[name] = value
		}
	}

	switch s.Name() {
	case "kelly", "kelly_no_conf":
		if cfg.Kelly.Fraction > 0 {
			fill("bet_kelly_fraction", cfg.Kelly.Fraction)
		}
		if cfg.Kelly.FloorBalance > 0 {
			fill("floor_balance", wei.FromNative(decimal.NewFromFloat(cfg.Kelly.FloorBalance)))
		}
		if cfg.Kelly.DefaultFee > 0 {
			fill("bet_fee", wei.FromNative(decimal.NewFromFloat(cfg.Kelly.DefaultFee)))
		}
	case "bet_amount_per_threshold":
		if len(cfg.Threshold.AmountPerThreshold) > 0 {
			mapping := make(map[string]any, len(cfg.Threshold.AmountPerThreshold))
			for bucket, amount := range cfg.Threshold.AmountPerThreshold {
				mapping[bucket] = wei.FromNative(decimal.NewFromFloat(amount))
			}
			fill("bet_amount_per_threshold", mapping)
		}
	}
	return out
}
