package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"jamjudge/internal/agent"
	"jamjudge/internal/judge"
)

// renderVerdict renders the agent's verdict panel: headline scores, the
// per-criterion breakdown, compliance, and the qualitative feedback as
// markdown.
func renderVerdict(styles Styles, verdict *agent.Verdict, width int) string {
	r := &verdict.Result
	var sb strings.Builder

	headline := fmt.Sprintf("%s — %s", r.GameName, r.TeamName)
	sb.WriteString(styles.Title.Render(headline))
	sb.WriteString("\n")
	sb.WriteString(styles.Success.Render(fmt.Sprintf("%.2f%%", r.PercentageScore)))
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("  (weighted %.2f)", r.WeightedScore)))
	if r.RankRecommendation != "" {
		sb.WriteString("  ")
		sb.WriteString(styles.Badge.Render(r.RankRecommendation))
	}
	sb.WriteString("\n\n")

	table := NewSimpleTable("", []string{"Criterion", "Score", "Weight", "Weighted"})
	for _, id := range judge.Criteria {
		b := r.BreakdownFor(id)
		if b == nil {
			table.AddRow(judge.CriterionLabel(id), "-", "-", "-")
			continue
		}
		table.AddRow(
			judge.CriterionLabel(id),
			fmt.Sprintf("%g", b.Score),
			fmt.Sprintf("%g%%", b.Weight),
			fmt.Sprintf("%.2f", b.WeightedScore),
		)
	}
	sb.WriteString(table.View(styles))
	sb.WriteString("\n")

	if r.RuleCompliance.Compliant {
		sb.WriteString(styles.Success.Render("✓ Rule compliant"))
	} else {
		sb.WriteString(styles.Error.Render("✗ Not rule compliant"))
	}
	sb.WriteString("\n")
	if r.RuleCompliance.ThemeAdherence != "" {
		sb.WriteString(styles.Body.Render("Theme: " + r.RuleCompliance.ThemeAdherence))
		sb.WriteString("\n")
	}
	if r.RuleCompliance.RuleAssessment != "" {
		sb.WriteString(styles.Body.Render("Rules: " + r.RuleCompliance.RuleAssessment))
		sb.WriteString("\n")
	}

	sb.WriteString(renderFeedback(styles, r, width))
	return sb.String()
}

// renderFeedback formats the feedback bundle as markdown and renders it
// through glamour, falling back to the raw markdown when rendering fails.
func renderFeedback(styles Styles, r *judge.EvaluationResult, width int) string {
	md := feedbackMarkdown(r)
	if md == "" {
		return ""
	}

	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func feedbackMarkdown(r *judge.EvaluationResult) string {
	var sb strings.Builder

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("## " + title + "\n")
		for _, item := range items {
			sb.WriteString("- " + item + "\n")
		}
		sb.WriteString("\n")
	}

	section("Strengths", r.Feedback.Strengths)
	section("Growth areas", r.Feedback.GrowthAreas)
	section("Creative insights", r.Feedback.CreativeInsights)
	section("Learning opportunities", r.Feedback.LearningOpportunities)

	if r.Summary != "" {
		sb.WriteString("## Summary\n" + r.Summary + "\n")
	}
	return sb.String()
}
