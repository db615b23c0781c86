package strategy

import (
	"math/big"
	"testing"

	"symplectic/internal/config"
)

func TestSchema_ValidateReportsMissing(t *testing.T) {
	s := Schema{Required: []string{"a", "b", "c"}}
	missing := s.Validate(Params{"a": 1, "c": nil})

	if len(missing) != 2 || missing[0] != "b" || missing[1] != "c" {
		t.Errorf("missing = %v, want [b c]", missing)
	}
}

func TestSchema_ValidateEmptyWhenComplete(t *testing.T) {
	s := Schema{Required: []string{"a"}, Optional: []string{"b"}}
	if missing := s.Validate(Params{"a": 1}); len(missing) != 0 {
		t.Errorf("unexpected missing fields: %v", missing)
	}
}

func TestSchema_SanitizeDropsUndeclaredKeys(t *testing.T) {
	s := Schema{Required: []string{"a"}, Optional: []string{"b"}}
	out := s.Sanitize(Params{"a": 1, "b": 2, "junk": 3})

	if len(out) != 2 {
		t.Errorf("sanitized record has %d keys, want 2: %v", len(out), out)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Error("declared values must pass through untouched")
	}
	if _, ok := out["junk"]; ok {
		t.Error("undeclared key survived sanitization")
	}
}

func TestAlwaysDecline_FixedSentinel(t *testing.T) {
	a := NewAlwaysDecline(config.DeclineConfig{Enabled: true})
	r := Run(a, Params{"anything": 1})

	if r.BetAmount == nil || r.BetAmount.Sign() != 0 {
		t.Errorf("bet amount = %v, want 0", r.BetAmount)
	}
	if len(r.Info) == 0 || len(r.Error) == 0 {
		t.Error("the sentinel must carry its fixed info and error pair")
	}
}

func TestRegistry_KnowsEveryStrategy(t *testing.T) {
	cfg := config.DefaultConfig().Strategy
	names := []string{
		"kelly",
		"kelly_no_conf",
		"market_moving_bet",
		"bet_amount_per_threshold",
		"always_decline",
	}
	for _, name := range names {
		s, err := ByName(cfg, name)
		if err != nil {
			t.Errorf("ByName(%q): %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("ByName(%q) returned %q", name, s.Name())
		}
	}

	if _, err := ByName(cfg, "martingale"); err == nil {
		t.Error("expected an error for an unknown strategy")
	}
}

func TestByName_RejectsDisabledStrategy(t *testing.T) {
	cfg := config.DefaultConfig().Strategy
	cfg.Kelly.Enabled = false

	for _, name := range []string{"kelly", "kelly_no_conf"} {
		if _, err := ByName(cfg, name); err == nil {
			t.Errorf("ByName(%q) selected a disabled strategy", name)
		}
	}

	// The flag is per-section: the mover stays selectable.
	if _, err := ByName(cfg, "market_moving_bet"); err != nil {
		t.Errorf("ByName(market_moving_bet): %v", err)
	}
}

func TestDefaults_FillsKellyFieldsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Strategy
	cfg.Kelly.Fraction = 0.25
	cfg.Kelly.FloorBalance = 0.5
	cfg.Kelly.DefaultFee = 0.02

	p := strategyDefaults(t, cfg, "kelly", Params{"bankroll": big.NewInt(1)})

	if p["bet_kelly_fraction"] != 0.25 {
		t.Errorf("bet_kelly_fraction = %v, want 0.25", p["bet_kelly_fraction"])
	}
	if got := p["floor_balance"].(*big.Int); got.String() != "500000000000000000" {
		t.Errorf("floor_balance = %s", got)
	}
	if got := p["bet_fee"].(*big.Int); got.String() != "20000000000000000" {
		t.Errorf("bet_fee = %s", got)
	}
	if p["bankroll"].(*big.Int).Int64() != 1 {
		t.Error("caller-supplied values must pass through")
	}
}

func TestDefaults_SuppliedValuesWin(t *testing.T) {
	cfg := config.DefaultConfig().Strategy
	cfg.Kelly.Fraction = 0.25

	p := strategyDefaults(t, cfg, "kelly", Params{"bet_kelly_fraction": 1.0})
	if p["bet_kelly_fraction"] != 1.0 {
		t.Errorf("bet_kelly_fraction = %v, want the caller's 1.0", p["bet_kelly_fraction"])
	}
}

func TestDefaults_ThresholdMappingFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Strategy
	cfg.Threshold.AmountPerThreshold = map[string]float64{
		"0.6": 1,
		"0.7": 2.5,
	}

	s, err := ByName(cfg, "bet_amount_per_threshold")
	if err != nil {
		t.Fatal(err)
	}
	p := Defaults(cfg, s, Params{"confidence": 0.68})

	r := Run(s, p)
	wantAmount(t, r, "2500000000000000000")
}

func strategyDefaults(t *testing.T, cfg config.StrategyConfig, name string, p Params) Params {
	t.Helper()
	s, err := ByName(cfg, name)
	if err != nil {
		t.Fatal(err)
	}
	return Defaults(cfg, s, p)
}

func TestResult_Predicates(t *testing.T) {
	declined := Run(NewKelly(newKellyConfig()), func() Params {
		p := kellyParams()
		p["floor_balance"] = p["bankroll"]
		return p
	}())
	if !declined.Declined() || declined.Failed() {
		t.Error("floor-level bankroll should be a decline")
	}

	failed := Run(NewKelly(newKellyConfig()), Params{})
	if failed.Declined() || !failed.Failed() {
		t.Error("an empty record should be a failure")
	}
}
