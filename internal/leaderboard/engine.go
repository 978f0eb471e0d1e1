// Package leaderboard derives ranked, filtered views from the set of
// saved evaluations and exports them as CSV.
package leaderboard

import (
	"sort"

	"jamjudge/internal/judge"
)

// SortTotal sorts by the agent's percentage score. Any criterion id is
// also a valid sort key, ranking by that criterion's weighted score.
const SortTotal = "total"

// Entry is one row of the ranked view. Rank is the 1-based position after
// sorting and filtering, independent of submission order.
type Entry struct {
	Rank  int
	Saved judge.SavedEvaluation
}

// sortValue returns the value an entry is ranked by under the given key.
// A missing breakdown entry counts as zero.
func sortValue(ev *judge.SavedEvaluation, key string) float64 {
	if key == SortTotal || key == "" {
		return ev.Result.PercentageScore
	}
	if b := ev.Result.BreakdownFor(key); b != nil {
		return b.WeightedScore
	}
	return 0
}

// Rank produces the ordered, filtered view. compliance nil means no
// filtering; otherwise only evaluations whose rule-compliance flag matches
// are kept. The sort is stable, so ties keep their input order.
func Rank(evals []judge.SavedEvaluation, sortKey string, compliance *bool) []Entry {
	filtered := make([]judge.SavedEvaluation, 0, len(evals))
	for _, ev := range evals {
		if compliance != nil && ev.Result.RuleCompliance.Compliant != *compliance {
			continue
		}
		filtered = append(filtered, ev)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return sortValue(&filtered[i], sortKey) > sortValue(&filtered[j], sortKey)
	})

	entries := make([]Entry, len(filtered))
	for i, ev := range filtered {
		entries[i] = Entry{Rank: i + 1, Saved: ev}
	}
	return entries
}

// Summary aggregates the saved evaluations for the dashboard.
type Summary struct {
	Total      int
	Compliant  int
	AveragePct float64
	TopGame    string
	TopTeam    string
	TopPct     float64
}

// Summarize computes dashboard aggregates over all saved evaluations.
func Summarize(evals []judge.SavedEvaluation) Summary {
	s := Summary{Total: len(evals)}
	if len(evals) == 0 {
		return s
	}

	sum := 0.0
	for _, ev := range evals {
		sum += ev.Result.PercentageScore
		if ev.Result.RuleCompliance.Compliant {
			s.Compliant++
		}
		if ev.Result.PercentageScore > s.TopPct || s.TopGame == "" {
			s.TopPct = ev.Result.PercentageScore
			s.TopGame = ev.Result.GameName
			s.TopTeam = ev.Result.TeamName
		}
	}
	s.AveragePct = sum / float64(len(evals))
	return s
}
