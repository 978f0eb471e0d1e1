package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jamjudge/internal/judge"
	"jamjudge/internal/leaderboard"
)

// LeaderboardPage shows the ranked view with sort/filter controls and CSV
// export.
type LeaderboardPage struct {
	sortIndex int   // 0 = total, 1.. = criterion index + 1
	filter    *bool // nil = all, true/false = compliance filter
	status    string
}

// NewLeaderboardPage creates the leaderboard page.
func NewLeaderboardPage() LeaderboardPage {
	return LeaderboardPage{}
}

// sortKey maps the sort index onto the engine's key space.
func (p LeaderboardPage) sortKey() string {
	if p.sortIndex == 0 {
		return leaderboard.SortTotal
	}
	return judge.Criteria[p.sortIndex-1]
}

// Update handles messages while this page is active.
func (p LeaderboardPage) Update(msg tea.Msg, evals []judge.SavedEvaluation) (LeaderboardPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "s":
		p.sortIndex = (p.sortIndex + 1) % (len(judge.Criteria) + 1)
		p.status = ""
	case "f":
		// Cycle all -> compliant only -> non-compliant only.
		switch {
		case p.filter == nil:
			v := true
			p.filter = &v
		case *p.filter:
			v := false
			p.filter = &v
		default:
			p.filter = nil
		}
		p.status = ""
	case "e":
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		entries := leaderboard.Rank(evals, p.sortKey(), p.filter)
		path, err := leaderboard.Export(dir, entries)
		if err != nil {
			p.status = "Export failed: " + err.Error()
		} else {
			p.status = "Exported " + path
		}
	}
	return p, nil
}

// View renders the ranked table.
func (p LeaderboardPage) View(styles Styles, evals []judge.SavedEvaluation, width int) string {
	var sb strings.Builder

	sortLabel := "Total"
	if p.sortIndex > 0 {
		sortLabel = judge.CriterionLabel(p.sortKey())
	}
	filterLabel := "all"
	if p.filter != nil {
		if *p.filter {
			filterLabel = "compliant only"
		} else {
			filterLabel = "non-compliant only"
		}
	}

	sb.WriteString(styles.Title.Render("Leaderboard"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("sort: %s · filter: %s", sortLabel, filterLabel)))
	sb.WriteString("\n\n")

	entries := leaderboard.Rank(evals, p.sortKey(), p.filter)
	if len(entries) == 0 {
		sb.WriteString(styles.Muted.Render("Nothing to rank yet."))
		return sb.String()
	}

	table := NewSimpleTable("", []string{"#", "Game", "Team", "%", "Compliant", sortLabel})
	for _, e := range entries {
		r := &e.Saved.Result
		compliant := "No"
		if r.RuleCompliance.Compliant {
			compliant = "Yes"
		}
		sortCol := fmt.Sprintf("%.2f", r.PercentageScore)
		if p.sortIndex > 0 {
			v := 0.0
			if b := r.BreakdownFor(p.sortKey()); b != nil {
				v = b.WeightedScore
			}
			sortCol = fmt.Sprintf("%.2f", v)
		}
		table.AddRow(
			fmt.Sprintf("%d", e.Rank),
			r.GameName,
			r.TeamName,
			fmt.Sprintf("%.2f", r.PercentageScore),
			compliant,
			sortCol,
		)
	}
	sb.WriteString(table.View(styles))

	if p.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Success.Render(p.status))
	}
	return sb.String()
}
