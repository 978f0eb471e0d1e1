package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"

	"jamjudge/internal/judge"
)

// Payload is the judging request sent to the agent: the trimmed
// submission fields, the raw scores, the active weight configuration, the
// event rules joined into a single string, and the judge's compliance
// notes.
type Payload struct {
	GameName        string                `json:"game_name"`
	TeamName        string                `json:"team_name"`
	Description     string                `json:"description"`
	Scores          judge.CriteriaScores  `json:"scores"`
	Weights         judge.CriteriaWeights `json:"weights"`
	EventName       string                `json:"event_name"`
	Theme           string                `json:"theme"`
	EventRules      string                `json:"event_rules"`
	ComplianceNotes string                `json:"compliance_notes"`
}

// BuildPayload assembles and serializes the agent request from a validated
// form and the shared configuration.
func BuildPayload(form Form, weights judge.CriteriaWeights, settings judge.EventSettings) (string, error) {
	p := Payload{
		GameName:        strings.TrimSpace(form.GameName),
		TeamName:        strings.TrimSpace(form.TeamName),
		Description:     strings.TrimSpace(form.Description),
		Scores:          form.Scores,
		Weights:         weights,
		EventName:       settings.EventName,
		Theme:           settings.Theme,
		EventRules:      strings.Join(settings.Rules, "\n"),
		ComplianceNotes: strings.TrimSpace(form.ComplianceNotes),
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to serialize judging payload: %w", err)
	}
	return string(data), nil
}
