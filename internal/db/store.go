package db

import (
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// Decision is one recorded sizing computation. BetAmount and OutcomeIndex
// are nil when the strategy failed before producing a bet.
type Decision struct {
	ID             string
	MarketID       string
	Strategy       string
	Source         string // signal source the probability estimate came from
	WinProbability float64
	Confidence     float64
	BetAmount      *big.Int
	OutcomeIndex   *int
	Info           []string
	Error          []string
}

// Store persists sizing decisions and their eventual resolutions.
type Store struct {
	conn *sql.DB
}

func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Record inserts a decision, assigning an ID when the caller left it empty,
// and returns the ID.
func (s *Store) Record(d Decision) (string, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	var amount any
	if d.BetAmount != nil {
		amount = d.BetAmount.String()
	}
	var outcome any
	if d.OutcomeIndex != nil {
		outcome = *d.OutcomeIndex
	}

	_, err := s.conn.Exec(`
		INSERT INTO sizing_decisions
			(id, market_id, strategy, source, win_probability, confidence,
			 bet_amount, outcome_index, info, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.MarketID, d.Strategy, d.Source, d.WinProbability, d.Confidence,
		amount, outcome, strings.Join(d.Info, "\n"), strings.Join(d.Error, "\n"),
	)
	if err != nil {
		return "", fmt.Errorf("recording decision: %w", err)
	}
	return d.ID, nil
}

// Resolve marks a decision with the market's winning outcome index. A
// decision is correct when the side it bet on won; decisions without an
// explicit outcome index are judged by their probability estimate
// (win_probability ≥ 0.5 predicts outcome 0).
func (s *Store) Resolve(id string, winningIndex int) error {
	res, err := s.conn.Exec(`
		UPDATE sizing_decisions
		SET resolved = 1,
		    winning_index = ?,
		    correct = CASE
		        WHEN outcome_index IS NOT NULL THEN outcome_index = ?
		        WHEN win_probability >= 0.5 THEN ? = 0
		        ELSE ? = 1
		    END,
		    resolved_at = datetime('now')
		WHERE id = ? AND resolved = 0`,
		winningIndex, winningIndex, winningIndex, winningIndex, id,
	)
	if err != nil {
		return fmt.Errorf("resolving decision: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no unresolved decision with id %q", id)
	}
	return nil
}

// ResolvedBySource returns each resolved decision's bet amount and
// correctness for one signal source, oldest first.
func (s *Store) ResolvedBySource(source string) ([]ResolvedDecision, error) {
	rows, err := s.conn.Query(`
		SELECT bet_amount, correct FROM sizing_decisions
		WHERE source = ? AND resolved = 1 AND bet_amount IS NOT NULL
		ORDER BY decided_at ASC, rowid ASC`, source)
	if err != nil {
		return nil, fmt.Errorf("querying resolved decisions: %w", err)
	}
	defer rows.Close()

	var out []ResolvedDecision
	for rows.Next() {
		var amount string
		var correct bool
		if err := rows.Scan(&amount, &correct); err != nil {
			return nil, err
		}
		bet, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, fmt.Errorf("corrupt bet amount %q for source %q", amount, source)
		}
		out = append(out, ResolvedDecision{BetAmount: bet, Correct: correct})
	}
	return out, rows.Err()
}

// ResolvedDecision is the slice of a decision the accuracy tracker needs.
type ResolvedDecision struct {
	BetAmount *big.Int
	Correct   bool
}

// Sources lists the distinct signal sources with at least one decision.
func (s *Store) Sources() ([]string, error) {
	rows, err := s.conn.Query(`
		SELECT DISTINCT source FROM sizing_decisions
		WHERE source != '' ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

// SourceCounts holds the raw decision counts for one signal source.
type SourceCounts struct {
	Decisions int
	Resolved  int
	Correct   int
}

func (s *Store) SourceCounts(source string) (SourceCounts, error) {
	var c SourceCounts
	row := s.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(resolved), 0),
		       COALESCE(SUM(CASE WHEN resolved = 1 AND correct = 1 THEN 1 ELSE 0 END), 0)
		FROM sizing_decisions WHERE source = ?`, source)
	if err := row.Scan(&c.Decisions, &c.Resolved, &c.Correct); err != nil {
		return c, fmt.Errorf("scanning source counts: %w", err)
	}
	return c, nil
}
