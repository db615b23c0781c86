package strategy

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Conversion helpers for reading caller-supplied primitives out of a Params
// record. Callers hand us whatever their transport produced — Go numerics,
// *big.Int for wei amounts, json.Number or strings for values too large for
// float64 — and each helper normalizes to the type the formulas need.

func bigIntParam(p Params, name string) (*big.Int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("param %q is missing", name)
	}
	b, err := toBigInt(v)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", name, err)
	}
	return b, nil
}

func optionalBigIntParam(p Params, name string, fallback *big.Int) (*big.Int, error) {
	if v, ok := p[name]; !ok || v == nil {
		return fallback, nil
	}
	return bigIntParam(p, name)
}

func floatParam(p Params, name string) (float64, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("param %q is missing", name)
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", name, err)
	}
	return f, nil
}

// optionalFloatParam distinguishes absence from zero: ok is false when the
// param was not supplied at all.
func optionalFloatParam(p Params, name string) (f float64, ok bool, err error) {
	v, present := p[name]
	if !present || v == nil {
		return 0, false, nil
	}
	f, err = toFloat(v)
	if err != nil {
		return 0, false, fmt.Errorf("param %q: %w", name, err)
	}
	return f, true, nil
}

func optionalIntParam(p Params, name string, fallback int) (int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return fallback, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", name, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("param %q: %v is not an integer", name, v)
	}
	return int(f), nil
}

func optionalBoolParam(p Params, name string) (bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("param %q: cannot interpret %T as bool", name, v)
	}
	return b, nil
}

// bigIntSliceParam reads an ordered list of token amounts.
func bigIntSliceParam(p Params, name string) ([]*big.Int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("param %q is missing", name)
	}

	var raw []any
	switch vv := v.(type) {
	case []any:
		raw = vv
	case []*big.Int:
		out := make([]*big.Int, len(vv))
		copy(out, vv)
		return out, nil
	case []int64:
		out := make([]*big.Int, len(vv))
		for i, n := range vv {
			out[i] = big.NewInt(n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("param %q: cannot interpret %T as an amount list", name, v)
	}

	out := make([]*big.Int, len(raw))
	for i, item := range raw {
		b, err := toBigInt(item)
		if err != nil {
			return nil, fmt.Errorf("param %q[%d]: %w", name, i, err)
		}
		out[i] = b
	}
	return out, nil
}

func toBigInt(v any) (*big.Int, error) {
	switch vv := v.(type) {
	case *big.Int:
		return new(big.Int).Set(vv), nil
	case big.Int:
		return new(big.Int).Set(&vv), nil
	case int:
		return big.NewInt(int64(vv)), nil
	case int64:
		return big.NewInt(vv), nil
	case uint64:
		return new(big.Int).SetUint64(vv), nil
	case float64:
		if vv != math.Trunc(vv) {
			return nil, fmt.Errorf("%v is not an integer amount", vv)
		}
		b, _ := big.NewFloat(vv).Int(nil)
		return b, nil
	case json.Number:
		return parseBigInt(vv.String())
	case string:
		return parseBigInt(vv)
	default:
		return nil, fmt.Errorf("cannot interpret %T as an integer amount", v)
	}
}

func parseBigInt(s string) (*big.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as an integer amount", s)
	}
	return b, nil
}

func toFloat(v any) (float64, error) {
	switch vv := v.(type) {
	case float64:
		return vv, nil
	case float32:
		return float64(vv), nil
	case int:
		return float64(vv), nil
	case int64:
		return float64(vv), nil
	case json.Number:
		return vv.Float64()
	case string:
		return strconv.ParseFloat(vv, 64)
	case *big.Int:
		f, _ := new(big.Float).SetInt(vv).Float64()
		return f, nil
	default:
		return 0, fmt.Errorf("cannot interpret %T as a number", v)
	}
}
