package accuracy

import (
	"fmt"

	"symplectic/internal/db"
	"symplectic/internal/wei"
)

// Tracker computes per-source accuracy metrics from the decision journal.
// The weighted accuracy it produces is the `weighted_accuracy` input the
// no-confidence Kelly sizer consumes.
type Tracker struct {
	store *db.Store
}

func NewTracker(store *db.Store) *Tracker {
	return &Tracker{store: store}
}

// Weighted returns the bet-amount-weighted historical accuracy of the given
// signal source, in [0, 1]. ok is false when the source has no resolved
// decisions yet, in which case the sizer should fall back to its static
// fraction.
func (t *Tracker) Weighted(source string) (accuracy float64, ok bool, err error) {
	resolved, err := t.store.ResolvedBySource(source)
	if err != nil {
		return 0, false, fmt.Errorf("loading resolved decisions for %q: %w", source, err)
	}

	var wagered, correct float64
	for _, d := range resolved {
		amount := wei.ToNative(d.BetAmount).InexactFloat64()
		wagered += amount
		if d.Correct {
			correct += amount
		}
	}
	if wagered <= 0 {
		return 0, false, nil
	}
	return correct / wagered, true, nil
}

// SourceStats is one signal source's row in the accuracy report.
type SourceStats struct {
	Source    string
	Decisions int
	Resolved  int
	Correct   int
	HitRate   float64 // unweighted share of correct resolutions
	Weighted  float64 // bet-amount-weighted accuracy
}

// Report aggregates accuracy stats across all signal sources.
type Report struct {
	Sources []SourceStats
}

// Generate builds the full accuracy report.
func (t *Tracker) Generate() (*Report, error) {
	sources, err := t.store.Sources()
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	r := &Report{}
	for _, src := range sources {
		stats, err := t.sourceStats(src)
		if err != nil {
			return nil, err
		}
		r.Sources = append(r.Sources, stats)
	}
	return r, nil
}

func (t *Tracker) sourceStats(source string) (SourceStats, error) {
	stats := SourceStats{Source: source}

	counts, err := t.store.SourceCounts(source)
	if err != nil {
		return stats, fmt.Errorf("counting decisions for %q: %w", source, err)
	}
	stats.Decisions = counts.Decisions
	stats.Resolved = counts.Resolved
	stats.Correct = counts.Correct
	if counts.Resolved > 0 {
		stats.HitRate = float64(counts.Correct) / float64(counts.Resolved)
	}

	weighted, ok, err := t.Weighted(source)
	if err != nil {
		return stats, err
	}
	if ok {
		stats.Weighted = weighted
	}
	return stats, nil
}
