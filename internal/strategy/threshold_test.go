package strategy

import (
	"testing"

	"symplectic/internal/config"
)

func newThresholdStrategy() *Threshold {
	return NewThreshold(config.ThresholdConfig{Enabled: true})
}

func TestThreshold_RoundsConfidenceToBucket(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence": 0.73,
		"bet_amount_per_threshold": map[float64]int64{
			0.6: 100,
			0.7: 200,
		},
	})

	wantAmount(t, r, "200")
}

func TestThreshold_OffBucketFloatKeyStaysDistinct(t *testing.T) {
	th := newThresholdStrategy()

	// 0.65 is not a one-decimal bucket, so no rounded confidence may reach
	// it, and it must not shadow the 0.7 bucket.
	r := Run(th, Params{
		"confidence": 0.68,
		"bet_amount_per_threshold": map[float64]int64{
			0.65: 100,
			0.7:  200,
		},
	})
	wantAmount(t, r, "200")

	r = Run(th, Params{
		"confidence":               0.63,
		"bet_amount_per_threshold": map[float64]int64{0.65: 100},
	})
	if !r.Failed() || !containsSubstring(r.Error, "no amount was found") {
		t.Errorf("expected a missing-bucket error, got %v", r.Error)
	}
}

func TestThreshold_StringKeys(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence": 0.68,
		"bet_amount_per_threshold": map[string]any{
			"0.6": int64(100),
			"0.7": int64(200),
		},
	})

	wantAmount(t, r, "200")
}

func TestThreshold_IntKeys(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence": 0.73,
		"bet_amount_per_threshold": map[int]int64{
			0: 50,
			1: 500,
		},
	})

	// int(0.7) truncates to 0.
	wantAmount(t, r, "50")
}

func TestThreshold_Idempotent(t *testing.T) {
	th := newThresholdStrategy()
	p := Params{
		"confidence":               0.73,
		"bet_amount_per_threshold": map[float64]int64{0.7: 200},
	}
	first := Run(th, p)
	second := Run(th, p)
	if first.BetAmount.Cmp(second.BetAmount) != 0 {
		t.Errorf("repeated lookups disagree: %s vs %s", first.BetAmount, second.BetAmount)
	}
}

func TestThreshold_EmptyMapping(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence":               0.5,
		"bet_amount_per_threshold": map[float64]int64{},
	})

	if !r.Failed() || !containsSubstring(r.Error, "No keys") && !containsSubstring(r.Error, "no keys") {
		t.Errorf("expected an empty-mapping error, got %v", r.Error)
	}
}

func TestThreshold_MixedKeyTypes(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence": 0.5,
		"bet_amount_per_threshold": map[any]any{
			0.5:   int64(100),
			"0.6": int64(200),
		},
	})

	if !r.Failed() || !containsSubstring(r.Error, "same type") {
		t.Errorf("expected a mixed-key error, got %v", r.Error)
	}
}

func TestThreshold_UnsupportedKeyType(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence": 0.5,
		"bet_amount_per_threshold": map[any]any{
			true: int64(100),
		},
	})

	if !r.Failed() || !containsSubstring(r.Error, "unsupported key type") {
		t.Errorf("expected an unsupported-key error, got %v", r.Error)
	}
}

func TestThreshold_NoEntryForBucket(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{
		"confidence":               0.93,
		"bet_amount_per_threshold": map[float64]int64{0.6: 100, 0.7: 200},
	})

	if !r.Failed() || !containsSubstring(r.Error, "no amount was found") {
		t.Errorf("expected a missing-bucket error, got %v", r.Error)
	}
}

func TestThreshold_MissingMapping(t *testing.T) {
	th := newThresholdStrategy()
	r := Run(th, Params{"confidence": 0.5})

	if !r.Failed() || !containsSubstring(r.Error, "bet_amount_per_threshold") {
		t.Errorf("expected a missing-field error, got %v", r.Error)
	}
}
