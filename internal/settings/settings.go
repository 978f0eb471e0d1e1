// Package settings edits the event configuration and criteria weights as
// a staged draft, committed to the store only on an explicit, validated
// save.
package settings

import (
	"fmt"
	"strings"

	"jamjudge/internal/judge"
	"jamjudge/internal/store"
)

// Draft holds staged copies of the event settings and weights. Edits never
// touch the shared configuration until Save succeeds.
type Draft struct {
	Settings judge.EventSettings
	Weights  judge.CriteriaWeights
}

// NewDraft stages copies of the current configuration.
func NewDraft(settings judge.EventSettings, weights judge.CriteriaWeights) *Draft {
	return &Draft{
		Settings: settings.Clone(),
		Weights:  weights.Clone(),
	}
}

// AddRule appends a trimmed rule. Empty rules are dropped; duplicates are
// allowed.
func (d *Draft) AddRule(rule string) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return
	}
	d.Settings.Rules = append(d.Settings.Rules, rule)
}

// RemoveRule removes the rule at index. Out-of-range indexes are ignored.
func (d *Draft) RemoveRule(index int) {
	if index < 0 || index >= len(d.Settings.Rules) {
		return
	}
	d.Settings.Rules = append(d.Settings.Rules[:index], d.Settings.Rules[index+1:]...)
}

// SetWeight sets a criterion weight, clamped to [0,100].
func (d *Draft) SetWeight(id string, value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	d.Weights[id] = value
}

// Validate checks the one save precondition: the weights must sum to
// exactly 100. The error reports the current total and its direction.
func (d *Draft) Validate() error {
	total := d.Weights.Total()
	switch {
	case total < 100:
		return fmt.Errorf("weights sum to %d, %d under 100", total, 100-total)
	case total > 100:
		return fmt.Errorf("weights sum to %d, %d over 100", total, total-100)
	}
	return nil
}

// Save validates the draft and, on success, persists both the settings and
// the weights and returns the accepted copies for the shell to adopt as
// the shared configuration. On failure nothing is persisted or
// propagated.
func (d *Draft) Save(st *store.Store) (judge.EventSettings, judge.CriteriaWeights, error) {
	if err := d.Validate(); err != nil {
		return judge.EventSettings{}, nil, err
	}

	accepted := d.Settings.Clone()
	weights := d.Weights.Clone()
	st.SaveSettings(accepted)
	st.SaveWeights(weights)
	return accepted, weights, nil
}
