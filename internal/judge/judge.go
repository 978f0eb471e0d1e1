// Package judge defines the judging domain for jamjudge: the fixed
// nine-criterion rubric, event settings, and the verdict shapes returned by
// the evaluation agent.
package judge

import "time"

// Criterion identifiers. The ids double as JSON keys in score/weight maps
// and in the agent's breakdown entries, so they must never change.
const (
	CriterionOriginality         = "originality"
	CriterionAITool              = "aiToolUsage"
	CriterionPlayability         = "playability"
	CriterionPolish              = "polish"
	CriterionCompleteness        = "completeness"
	CriterionPresentation        = "presentation"
	CriterionTechnicalComplexity = "technicalComplexity"
	CriterionAccessibility       = "accessibility"
	CriterionRuleRelevance       = "ruleRelevance"
)

// Criteria is the canonical criterion order. Leaderboard CSV columns and
// validation messages follow this order.
var Criteria = []string{
	CriterionOriginality,
	CriterionAITool,
	CriterionPlayability,
	CriterionPolish,
	CriterionCompleteness,
	CriterionPresentation,
	CriterionTechnicalComplexity,
	CriterionAccessibility,
	CriterionRuleRelevance,
}

var criterionLabels = map[string]string{
	CriterionOriginality:         "Originality",
	CriterionAITool:              "AI Tool Usage",
	CriterionPlayability:         "Playability",
	CriterionPolish:              "Polish",
	CriterionCompleteness:        "Completeness",
	CriterionPresentation:        "Presentation",
	CriterionTechnicalComplexity: "Technical Complexity",
	CriterionAccessibility:       "Accessibility",
	CriterionRuleRelevance:       "Rule Relevance",
}

// CriterionLabel returns the display name for a criterion id. Unknown ids
// are returned unchanged so they stay visible instead of vanishing.
func CriterionLabel(id string) string {
	if label, ok := criterionLabels[id]; ok {
		return label
	}
	return id
}

// CriteriaWeights maps criterion id -> percentage weight. Intended to sum
// to 100; the settings manager is the only enforcement point.
type CriteriaWeights map[string]int

// CriteriaScores maps criterion id -> judge rating in [0,10].
// 0 means "unset", not "scored zero".
type CriteriaScores map[string]int

// Total returns the sum of all weight values.
func (w CriteriaWeights) Total() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// Clone returns an independent copy so staged edits cannot leak into the
// shared configuration before an explicit save.
func (w CriteriaWeights) Clone() CriteriaWeights {
	out := make(CriteriaWeights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// NewScores returns a score map with every criterion at the unset sentinel.
func NewScores() CriteriaScores {
	scores := make(CriteriaScores, len(Criteria))
	for _, id := range Criteria {
		scores[id] = 0
	}
	return scores
}

// EventSettings holds the jam's name, theme and rule list. Rules are free
// text with no uniqueness constraint.
type EventSettings struct {
	EventName string   `json:"eventName"`
	Theme     string   `json:"theme"`
	Rules     []string `json:"rules"`
}

// Clone returns an independent copy of the settings.
func (s EventSettings) Clone() EventSettings {
	out := s
	out.Rules = append([]string(nil), s.Rules...)
	return out
}

// DefaultWeights returns the built-in weight distribution (sums to 100).
func DefaultWeights() CriteriaWeights {
	return CriteriaWeights{
		CriterionOriginality:         15,
		CriterionAITool:              20,
		CriterionPlayability:         15,
		CriterionPolish:              10,
		CriterionCompleteness:        10,
		CriterionPresentation:        10,
		CriterionTechnicalComplexity: 5,
		CriterionAccessibility:       5,
		CriterionRuleRelevance:       10,
	}
}

// DefaultSettings returns the built-in event configuration.
func DefaultSettings() EventSettings {
	return EventSettings{
		EventName: "AI Game Jam",
		Theme:     "Build a game with AI tools in 48 hours.",
		Rules: []string{
			"All game code must be written during the jam window.",
			"At least one AI tool must be used in the development process.",
			"Submissions must run in a browser or provide a playable build.",
			"Teams of up to four people.",
		},
	}
}

// CriterionBreakdown is one per-criterion entry in the agent's verdict.
type CriterionBreakdown struct {
	Criterion     string  `json:"criterion"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
}

// RuleCompliance is the agent's judgment of rule/theme adherence.
type RuleCompliance struct {
	Compliant      bool   `json:"compliant"`
	ThemeAdherence string `json:"theme_adherence"`
	RuleAssessment string `json:"rule_assessment"`
}

// Feedback bundles the agent's qualitative notes.
type Feedback struct {
	Strengths             []string `json:"strengths"`
	GrowthAreas           []string `json:"growth_areas"`
	CreativeInsights      []string `json:"creative_insights"`
	LearningOpportunities []string `json:"learning_opportunities"`
}

// EvaluationResult is the agent's verdict for one submission. It is
// produced only by the agent; nothing in jamjudge recomputes it.
type EvaluationResult struct {
	GameName           string               `json:"game_name"`
	TeamName           string               `json:"team_name"`
	WeightedScore      float64              `json:"weighted_score"`
	PercentageScore    float64              `json:"percentage_score"`
	Breakdown          []CriterionBreakdown `json:"breakdown"`
	RuleCompliance     RuleCompliance       `json:"rule_compliance"`
	Feedback           Feedback             `json:"feedback"`
	RankRecommendation string               `json:"rank_recommendation"`
	Summary            string               `json:"summary"`
}

// BreakdownFor returns the breakdown entry for a criterion id, or nil.
func (r *EvaluationResult) BreakdownFor(id string) *CriterionBreakdown {
	for i := range r.Breakdown {
		if r.Breakdown[i].Criterion == id {
			return &r.Breakdown[i]
		}
	}
	return nil
}

// EvaluationMetadata describes the agent response envelope.
type EvaluationMetadata struct {
	AgentName         string `json:"agent_name"`
	Timestamp         string `json:"timestamp"`
	EvaluationVersion string `json:"evaluation_version"`
}

// SavedEvaluation is the persisted envelope around one verdict. Created
// once per successful save and immutable afterwards; there is no delete
// surface short of editing the database by hand.
type SavedEvaluation struct {
	ID       string             `json:"id"`
	SavedAt  time.Time          `json:"saved_at"`
	Result   EvaluationResult   `json:"result"`
	Metadata EvaluationMetadata `json:"metadata"`
}
