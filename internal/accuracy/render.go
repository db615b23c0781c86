package accuracy

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/olekukonko/tablewriter"
)

// RenderReport writes the accuracy report as a console table.
func RenderReport(w io.Writer, r *Report) error {
	if len(r.Sources) == 0 {
		_, err := fmt.Fprintln(w, "no recorded decisions yet")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Source", "Decisions", "Resolved", "Correct", "Hit rate", "Weighted accuracy")

	for _, s := range r.Sources {
		if err := table.Append(
			s.Source,
			fmt.Sprintf("%d", s.Decisions),
			fmt.Sprintf("%d", s.Resolved),
			fmt.Sprintf("%d", s.Correct),
			fmt.Sprintf("%.2f", s.HitRate),
			fmt.Sprintf("%.2f", s.Weighted),
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// LogReport logs the report as structured JSON, one line per source.
func LogReport(r *Report) {
	for _, s := range r.Sources {
		slog.Info("source accuracy",
			"source", s.Source,
			"decisions", s.Decisions,
			"resolved", s.Resolved,
			"correct", s.Correct,
			"hit_rate", s.HitRate,
			"weighted_accuracy", s.Weighted,
		)
	}
}
