package strategy

import (
	"fmt"
	"math/big"
)

// Params is the caller-assembled input record for one sizing computation.
// Values arrive as whatever primitives the caller has on hand (Go numerics,
// *big.Int, json.Number, strings); each strategy interprets the fields it
// declares and ignores nothing else, because Run strips undeclared keys
// before dispatch.
type Params map[string]any

// Schema declares the named parameters a strategy understands.
type Schema struct {
	Required []string
	Optional []string
}

// Validate returns the names of required parameters that are missing from p.
// A nil value counts as missing.
func (s Schema) Validate(p Params) []string {
	var missing []string
	for _, name := range s.Required {
		if v, ok := p[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// Sanitize returns a copy of p containing only keys the schema declares.
// Declared values pass through untouched.
func (s Schema) Sanitize(p Params) Params {
	known := make(map[string]struct{}, len(s.Required)+len(s.Optional))
	for _, name := range s.Required {
		known[name] = struct{}{}
	}
	for _, name := range s.Optional {
		known[name] = struct{}{}
	}

	out := make(Params, len(known))
	for key, value := range p {
		if _, ok := known[key]; ok {
			out[key] = value
		}
	}
	return out
}

// Result is the outcome of one sizing computation.
//
// A non-empty Error with a nil BetAmount means the computation could not run
// (missing or malformed input); the caller must not bet. A zero BetAmount
// with an empty Error is a deliberate decline, with Info explaining why.
// OutcomeIndex is set only by strategies that choose a side themselves.
type Result struct {
	BetAmount    *big.Int
	OutcomeIndex *int
	Info         []string
	Error        []string
}

// Declined reports whether the strategy computed successfully but chose not
// to bet.
func (r Result) Declined() bool {
	return len(r.Error) == 0 && r.BetAmount != nil && r.BetAmount.Sign() == 0
}

// Failed reports whether the computation aborted before producing a bet.
func (r Result) Failed() bool {
	return len(r.Error) > 0
}

func errorResult(format string, args ...any) Result {
	return Result{Error: []string{fmt.Sprintf(format, args...)}}
}

// Strategy is the interface all bet-sizing strategies implement. Compute is
// pure and stateless: it reads the supplied record, allocates local values
// and returns; any number of calls may run concurrently. Enabled reflects
// the strategy's config flag; disabled strategies stay constructible for
// reporting but are not selectable.
type Strategy interface {
	Name() string
	Enabled() bool
	Schema() Schema
	Compute(p Params) Result
}

// Run validates p against s's schema, strips undeclared keys and dispatches.
// This is the single entry point callers should use; Compute assumes a
// validated, sanitized record.
func Run(s Strategy, p Params) Result {
	if missing := s.Schema().Validate(p); len(missing) > 0 {
		return errorResult("required params %v were not provided", missing)
	}
	return s.Compute(s.Schema().Sanitize(p))
}
