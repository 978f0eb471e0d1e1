package store

import (
	"jamjudge/internal/judge"
	"jamjudge/internal/logging"
)

// Persisted keys. Absence of a key yields the built-in default.
const (
	KeyEvaluations     = "evaluations"
	KeyEventSettings   = "eventSettings"
	KeyCriteriaWeights = "criteriaWeights"
)

// Evaluations returns all saved evaluations, oldest first. A missing or
// corrupt list reads as empty.
func (s *Store) Evaluations() []judge.SavedEvaluation {
	var evals []judge.SavedEvaluation
	s.Get(KeyEvaluations, &evals)
	return evals
}

// AppendEvaluation appends one saved evaluation to the persisted list. The
// list is re-read fresh here rather than taken from the caller's view
// state, so a stale in-memory cache cannot clobber evaluations saved by
// another jamjudge instance on the same database. The append lands as a
// single write; there is no compare-and-swap, so two concurrent saves can
// still lose one update (last write wins).
func (s *Store) AppendEvaluation(ev judge.SavedEvaluation) {
	evals := s.Evaluations()
	evals = append(evals, ev)
	s.Set(KeyEvaluations, evals)
	logging.Store("Saved evaluation %s (%d total)", ev.ID, len(evals))
}

// Settings returns the persisted event settings, or the built-in default.
func (s *Store) Settings() judge.EventSettings {
	settings := judge.DefaultSettings()
	s.Get(KeyEventSettings, &settings)
	return settings
}

// SaveSettings persists the event settings.
func (s *Store) SaveSettings(settings judge.EventSettings) {
	s.Set(KeyEventSettings, settings)
}

// Weights returns the persisted criteria weights, or the built-in default.
func (s *Store) Weights() judge.CriteriaWeights {
	weights := judge.DefaultWeights()
	s.Get(KeyCriteriaWeights, &weights)
	return weights
}

// SaveWeights persists the criteria weights.
func (s *Store) SaveWeights(weights judge.CriteriaWeights) {
	s.Set(KeyCriteriaWeights, weights)
}
