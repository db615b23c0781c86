package strategy

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"symplectic/internal/config"
)

// Threshold returns a bet amount from a static confidence→amount mapping:
// the confidence is rounded to one decimal place, cast to the mapping's key
// type and looked up. All keys must share one type (int, float or string).
// Useful as a deliberately dumb baseline next to the Kelly sizers.
type Threshold struct {
	cfg config.ThresholdConfig
}

func NewThreshold(cfg config.ThresholdConfig) *Threshold { return &Threshold{cfg: cfg} }

func (t *Threshold) Name() string { return "bet_amount_per_threshold" }

func (t *Threshold) Enabled() bool { return t.cfg.Enabled }

func (t *Threshold) Schema() Schema {
	return Schema{
		Required: []string{"confidence", "bet_amount_per_threshold"},
	}
}

func (t *Threshold) Compute(p Params) Result {
	confidence, err := floatParam(p, "confidence")
	if err != nil {
		return errorResult("%v", err)
	}

	entries, kind, err := thresholdEntries(p["bet_amount_per_threshold"])
	if err != nil {
		return errorResult("%v", err)
	}

	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return errorResult("could not convert confidence %v to a %s threshold key", confidence, kind)
	}
	rounded := math.Round(confidence*10) / 10

	var wanted string
	switch kind {
	case keyKindInt:
		wanted = strconv.Itoa(int(rounded))
	case keyKindFloat:
		// Shortest form, so off-bucket keys like 0.65 keep their own
		// rendering instead of collapsing into the 0.7 bucket.
		wanted = strconv.FormatFloat(rounded, 'g', -1, 64)
	case keyKindString:
		wanted = strconv.FormatFloat(rounded, 'f', 1, 64)
	}

	for _, e := range entries {
		if e.key == wanted {
			amount, err := toBigInt(e.amount)
			if err != nil {
				return errorResult("amount for threshold %v is not an integer: %v", e.key, err)
			}
			return Result{BetAmount: amount}
		}
	}
	return errorResult("no amount was found in the threshold mapping for confidence %v (threshold %s)", confidence, wanted)
}

type keyKind string

const (
	keyKindInt    keyKind = "int"
	keyKindFloat  keyKind = "float"
	keyKindString keyKind = "string"
)

type thresholdEntry struct {
	key    string // normalized rendering of the original key
	amount any
}

// thresholdEntries normalizes the supported mapping shapes into a flat entry
// list with a single detected key kind. Mixed or unsupported key types are
// reported as errors rather than coerced.
func thresholdEntries(v any) ([]thresholdEntry, keyKind, error) {
	if v == nil {
		return nil, "", fmt.Errorf("bet_amount_per_threshold mapping is missing")
	}

	switch m := v.(type) {
	case map[string]any:
		return stringKeyEntries(keysOf(m), func(k string) any { return m[k] })
	case map[string]int64:
		return stringKeyEntries(keysOf(m), func(k string) any { return m[k] })
	case map[string]float64:
		return stringKeyEntries(keysOf(m), func(k string) any { return m[k] })
	case map[float64]int64:
		var entries []thresholdEntry
		for k, amount := range m {
			entries = append(entries, thresholdEntry{key: strconv.FormatFloat(k, 'g', -1, 64), amount: amount})
		}
		if len(entries) == 0 {
			return nil, "", errEmptyMapping
		}
		sortEntries(entries)
		return entries, keyKindFloat, nil
	case map[int]int64:
		var entries []thresholdEntry
		for k, amount := range m {
			entries = append(entries, thresholdEntry{key: strconv.Itoa(k), amount: amount})
		}
		if len(entries) == 0 {
			return nil, "", errEmptyMapping
		}
		sortEntries(entries)
		return entries, keyKindInt, nil
	case map[any]any:
		return anyKeyEntries(m)
	default:
		return nil, "", fmt.Errorf("unsupported mapping type %T for bet_amount_per_threshold", v)
	}
}

var errEmptyMapping = fmt.Errorf("no keys were found in the bet_amount_per_threshold mapping")

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringKeyEntries(keys []string, get func(string) any) ([]thresholdEntry, keyKind, error) {
	if len(keys) == 0 {
		return nil, "", errEmptyMapping
	}
	entries := make([]thresholdEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, thresholdEntry{key: k, amount: get(k)})
	}
	return entries, keyKindString, nil
}

// anyKeyEntries handles loosely-typed mappings, where mixed and unsupported
// key types are possible.
func anyKeyEntries(m map[any]any) ([]thresholdEntry, keyKind, error) {
	if len(m) == 0 {
		return nil, "", errEmptyMapping
	}

	var kind keyKind
	entries := make([]thresholdEntry, 0, len(m))
	for k, amount := range m {
		var (
			kk  keyKind
			key string
		)
		switch key0 := k.(type) {
		case int:
			kk, key = keyKindInt, strconv.Itoa(key0)
		case int64:
			kk, key = keyKindInt, strconv.FormatInt(key0, 10)
		case float64:
			kk, key = keyKindFloat, strconv.FormatFloat(key0, 'g', -1, 64)
		case string:
			kk, key = keyKindString, key0
		default:
			return nil, "", fmt.Errorf("unsupported key type %T in the bet_amount_per_threshold mapping", k)
		}
		if kind == "" {
			kind = kk
		} else if kind != kk {
			return nil, "", fmt.Errorf("all keys in the bet_amount_per_threshold mapping should have the same type")
		}
		entries = append(entries, thresholdEntry{key: key, amount: amount})
	}
	sortEntries(entries)
	return entries, kind, nil
}

func sortEntries(entries []thresholdEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
}
