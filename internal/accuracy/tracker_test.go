package accuracy

import (
	"bytes"
	"math"
	"math/big"
	"strings"
	"testing"

	"symplectic/internal/db"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	conn, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return db.NewStore(conn)
}

// record inserts a decision on outcome `idx` and resolves the market with
// winner `winner`.
func record(t *testing.T, store *db.Store, source string, amount int64, idx, winner int) {
	t.Helper()
	id, err := store.Record(db.Decision{
		MarketID: "m", Strategy: "kelly", Source: source,
		BetAmount: big.NewInt(amount), OutcomeIndex: &idx,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Resolve(id, winner); err != nil {
		t.Fatal(err)
	}
}

func TestTracker_WeightedFavorsLargerBets(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)

	// 3 wei correct, 1 wei wrong: weighted accuracy 0.75 even though the
	// unweighted hit rate is 0.5.
	record(t, store, "s", 3, 0, 0)
	record(t, store, "s", 1, 0, 1)

	got, ok, err := tracker.Weighted("s")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a weighted accuracy")
	}
	if math.Abs(got-0.75) > 1e-12 {
		t.Errorf("weighted accuracy = %v, want 0.75", got)
	}
}

func TestTracker_WeightedNoResolvedDecisions(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)

	idx := 0
	if _, err := store.Record(db.Decision{
		MarketID: "m", Strategy: "kelly", Source: "s",
		BetAmount: big.NewInt(100), OutcomeIndex: &idx,
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := tracker.Weighted("s"); err != nil || ok {
		t.Errorf("ok = %v, err = %v; want no accuracy for unresolved source", ok, err)
	}
	if _, ok, err := tracker.Weighted("never-seen"); err != nil || ok {
		t.Errorf("ok = %v, err = %v; want no accuracy for unknown source", ok, err)
	}
}

func TestTracker_Generate(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)

	record(t, store, "alpha", 2, 0, 0)
	record(t, store, "alpha", 2, 1, 0)
	record(t, store, "beta", 5, 1, 1)

	idx := 0
	if _, err := store.Record(db.Decision{
		MarketID: "m", Strategy: "kelly", Source: "alpha",
		BetAmount: big.NewInt(9), OutcomeIndex: &idx,
	}); err != nil {
		t.Fatal(err)
	}

	report, err := tracker.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Sources) != 2 {
		t.Fatalf("report has %d sources, want 2", len(report.Sources))
	}

	alpha := report.Sources[0]
	if alpha.Source != "alpha" || alpha.Decisions != 3 || alpha.Resolved != 2 || alpha.Correct != 1 {
		t.Errorf("alpha stats = %+v", alpha)
	}
	if alpha.HitRate != 0.5 || alpha.Weighted != 0.5 {
		t.Errorf("alpha rates = %v / %v, want 0.5 / 0.5", alpha.HitRate, alpha.Weighted)
	}

	beta := report.Sources[1]
	if beta.Source != "beta" || beta.HitRate != 1 || beta.Weighted != 1 {
		t.Errorf("beta stats = %+v", beta)
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, &Report{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no recorded decisions yet") {
		t.Errorf("empty report output = %q", buf.String())
	}

	buf.Reset()
	r := &Report{Sources: []SourceStats{
		{Source: "alpha", Decisions: 3, Resolved: 2, Correct: 1, HitRate: 0.5, Weighted: 0.75},
	}}
	if err := RenderReport(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"alpha", "0.5", "0.75"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}
