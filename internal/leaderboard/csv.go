package leaderboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"jamjudge/internal/judge"
)

// WriteCSV writes the ranked view as CSV: one header row, one data row per
// entry. Percentage is formatted to two decimals, missing criterion scores
// render as 0, and compliance renders as Yes/No.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	header := []string{"Rank", "Game", "Team", "Total Score", "Percentage", "Compliant"}
	for _, id := range judge.Criteria {
		header = append(header, judge.CriterionLabel(id))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		r := &e.Saved.Result
		compliant := "No"
		if r.RuleCompliance.Compliant {
			compliant = "Yes"
		}
		row := []string{
			fmt.Sprintf("%d", e.Rank),
			r.GameName,
			r.TeamName,
			fmt.Sprintf("%.2f", r.WeightedScore),
			fmt.Sprintf("%.2f", r.PercentageScore),
			compliant,
		}
		for _, id := range judge.Criteria {
			score := 0.0
			if b := r.BreakdownFor(id); b != nil {
				score = b.Score
			}
			row = append(row, fmt.Sprintf("%g", score))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename returns the export file name for the given time,
// embedding the ISO date portion only.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("leaderboard-%s.csv", now.Format("2006-01-02"))
}

// Export writes the ranked view to dir under the dated filename and
// returns the full path.
func Export(dir string, entries []Entry) (string, error) {
	path := filepath.Join(dir, ExportFilename(time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, entries); err != nil {
		return "", err
	}
	return path, nil
}
