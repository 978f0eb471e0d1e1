package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"jamjudge/internal/judge"
	"jamjudge/internal/leaderboard"
)

// DashboardPage shows event info and aggregates over saved evaluations.
type DashboardPage struct{}

// NewDashboardPage creates the dashboard page.
func NewDashboardPage() DashboardPage {
	return DashboardPage{}
}

// View renders the dashboard.
func (p DashboardPage) View(styles Styles, settings judge.EventSettings, evals []judge.SavedEvaluation, width int) string {
	summary := leaderboard.Summarize(evals)

	event := styles.Card.Render(
		styles.Title.Render(settings.EventName) + "\n" +
			styles.Subtitle.Render(settings.Theme) + "\n" +
			styles.Muted.Render(fmt.Sprintf("%d event rules", len(settings.Rules))),
	)

	stats := styles.Card.Render(
		styles.Bold.Render("Judging progress") + "\n" +
			styles.Body.Render(fmt.Sprintf("Evaluated:  %d", summary.Total)) + "\n" +
			styles.Body.Render(fmt.Sprintf("Compliant:  %d", summary.Compliant)) + "\n" +
			styles.Body.Render(fmt.Sprintf("Average:    %.2f%%", summary.AveragePct)),
	)

	top := ""
	if summary.Total > 0 {
		top = styles.Card.Render(
			styles.Bold.Render("Current leader") + "\n" +
				styles.Body.Render(summary.TopGame) + "\n" +
				styles.Muted.Render(summary.TopTeam) + "\n" +
				styles.Success.Render(fmt.Sprintf("%.2f%%", summary.TopPct)),
		)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top, event, " ", stats)
	if top != "" {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, cards, " ", top)
	}

	recent := p.recentTable(evals)
	if recent == nil {
		return cards + "\n\n" + styles.Muted.Render("No evaluations saved yet. Press 2 to evaluate a submission.")
	}
	return cards + "\n\n" + recent.View(styles)
}

// recentTable lists the five most recently saved evaluations, newest
// first. Returns nil when there is nothing to show.
func (p DashboardPage) recentTable(evals []judge.SavedEvaluation) *SimpleTable {
	if len(evals) == 0 {
		return nil
	}

	table := NewSimpleTable("Recent evaluations", []string{"Game", "Team", "Score", "Saved"})
	start := len(evals) - 5
	if start < 0 {
		start = 0
	}
	for i := len(evals) - 1; i >= start; i-- {
		ev := evals[i]
		table.AddRow(
			ev.Result.GameName,
			ev.Result.TeamName,
			fmt.Sprintf("%.2f%%", ev.Result.PercentageScore),
			ev.SavedAt.Local().Format("Jan 2 15:04"),
		)
	}
	return table
}
