package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamjudge/internal/judge"
)

func eval(id, game string, pct float64, compliant bool, breakdown ...judge.CriterionBreakdown) judge.SavedEvaluation {
	return judge.SavedEvaluation{
		ID: id,
		Result: judge.EvaluationResult{
			GameName:        game,
			TeamName:        game + " team",
			WeightedScore:   pct,
			PercentageScore: pct,
			Breakdown:       breakdown,
			RuleCompliance:  judge.RuleCompliance{Compliant: compliant},
		},
	}
}

func sampleEvals() []judge.SavedEvaluation {
	return []judge.SavedEvaluation{
		eval("a", "Alpha", 55.5, true,
			judge.CriterionBreakdown{Criterion: judge.CriterionPlayability, Score: 5, Weight: 15, WeightedScore: 7.5}),
		eval("b", "Beta", 91.0, false,
			judge.CriterionBreakdown{Criterion: judge.CriterionPlayability, Score: 9, Weight: 15, WeightedScore: 13.5}),
		eval("c", "Gamma", 72.25, true), // no breakdown at all
	}
}

func TestRankByTotalDescending(t *testing.T) {
	entries := Rank(sampleEvals(), SortTotal, nil)
	require.Len(t, entries, 3)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t,
			entries[i-1].Saved.Result.PercentageScore,
			entries[i].Saved.Result.PercentageScore,
			"percentage must be non-increasing")
	}
	assert.Equal(t, "Beta", entries[0].Saved.Result.GameName)
}

func TestRankByCriterionMissingBreakdownCountsAsZero(t *testing.T) {
	entries := Rank(sampleEvals(), judge.CriterionPlayability, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, "Beta", entries[0].Saved.Result.GameName)
	assert.Equal(t, "Alpha", entries[1].Saved.Result.GameName)
	// Gamma has no breakdown entry, so it sorts as zero, last.
	assert.Equal(t, "Gamma", entries[2].Saved.Result.GameName)
}

func TestRankNumberingIsFilteredPosition(t *testing.T) {
	compliant := true
	entries := Rank(sampleEvals(), SortTotal, &compliant)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Gamma", entries[0].Saved.Result.GameName)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Alpha", entries[1].Saved.Result.GameName)
}

func TestFilterPartitionsTheInput(t *testing.T) {
	evals := sampleEvals()
	yes, no := true, false

	all := Rank(evals, SortTotal, nil)
	compliant := Rank(evals, SortTotal, &yes)
	nonCompliant := Rank(evals, SortTotal, &no)

	assert.Equal(t, len(all), len(compliant)+len(nonCompliant))
	for _, e := range compliant {
		assert.True(t, e.Saved.Result.RuleCompliance.Compliant)
	}
	for _, e := range nonCompliant {
		assert.False(t, e.Saved.Result.RuleCompliance.Compliant)
	}
}

func TestRankStableOnTies(t *testing.T) {
	evals := []judge.SavedEvaluation{
		eval("first", "First", 50, true),
		eval("second", "Second", 50, true),
	}
	entries := Rank(evals, SortTotal, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "First", entries[0].Saved.Result.GameName)
	assert.Equal(t, "Second", entries[1].Saved.Result.GameName)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleEvals())
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Compliant)
	assert.InDelta(t, (55.5+91.0+72.25)/3, s.AveragePct, 0.0001)
	assert.Equal(t, "Beta", s.TopGame)
	assert.Equal(t, 91.0, s.TopPct)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.AveragePct)
	assert.Empty(t, s.TopGame)
}
