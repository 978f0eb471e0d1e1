package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"jamjudge/internal/judge"
	"jamjudge/internal/logging"
)

// GeminiClient judges submissions directly through the Gemini API instead
// of a hosted agent runtime. The model is constrained to the verdict
// schema via structured output, then the result is normalized into the
// same outcome shape the runtime client produces.
type GeminiClient struct {
	client *genai.Client
	model  string
}

const defaultGeminiModel = "gemini-2.5-flash"

const geminiSystemPrompt = `You are an experienced game-jam judge. You receive a JSON payload
containing a submission (game name, team, description), the judge's raw
scores per criterion (1-10), the criterion weights (percentages summing to
100), the event rules, and the judge's compliance notes.

Produce a verdict:
- weighted_score: sum of score * weight / 10 over all criteria
- percentage_score: weighted_score as a percentage of the maximum
- breakdown: one entry per criterion with score, weight and weighted_score
- rule_compliance: whether the submission follows the stated rules and
  theme, with a short assessment of each
- feedback: concrete strengths, growth areas, creative insights and
  learning opportunities for the team
- rank_recommendation: a short placement suggestion
- summary: two or three sentences for the judging sheet

Base compliance on the rules and the judge's notes, not on speculation.`

// NewGeminiClient creates a direct Gemini judging client.
func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Evaluate sends the judging payload to Gemini and normalizes the reply.
func (c *GeminiClient) Evaluate(ctx context.Context, payload string) (*Verdict, error) {
	logging.AgentDebug("Gemini evaluate: model=%s payload=%d bytes", c.model, len(payload))

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(payload),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(geminiSystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    verdictSchema(),
		},
	)
	if err != nil {
		logging.Get(logging.CategoryAgent).Error("Gemini call failed: %v", err)
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: err}
	}

	text := resp.Text()
	if text == "" {
		return nil, &Error{Kind: KindRejected, Message: RejectedFallback}
	}

	var result judge.EvaluationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &Error{Kind: KindTransport, Message: TransportFallback, Err: fmt.Errorf("failed to parse verdict: %w", err)}
	}

	return &Verdict{
		Result: result,
		Metadata: judge.EvaluationMetadata{
			AgentName:         "gemini/" + c.model,
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			EvaluationVersion: "2.0",
		},
	}, nil
}

// verdictSchema constrains Gemini's structured output to the
// EvaluationResult wire shape.
func verdictSchema() *genai.Schema {
	stringList := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"game_name":        {Type: genai.TypeString},
			"team_name":        {Type: genai.TypeString},
			"weighted_score":   {Type: genai.TypeNumber},
			"percentage_score": {Type: genai.TypeNumber},
			"breakdown": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"criterion":      {Type: genai.TypeString},
						"score":          {Type: genai.TypeNumber},
						"weight":         {Type: genai.TypeNumber},
						"weighted_score": {Type: genai.TypeNumber},
					},
					Required: []string{"criterion", "score", "weight", "weighted_score"},
				},
			},
			"rule_compliance": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"compliant":       {Type: genai.TypeBoolean},
					"theme_adherence": {Type: genai.TypeString},
					"rule_assessment": {Type: genai.TypeString},
				},
				Required: []string{"compliant", "theme_adherence", "rule_assessment"},
			},
			"feedback": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"strengths":              stringList,
					"growth_areas":           stringList,
					"creative_insights":      stringList,
					"learning_opportunities": stringList,
				},
				Required: []string{"strengths", "growth_areas", "creative_insights", "learning_opportunities"},
			},
			"rank_recommendation": {Type: genai.TypeString},
			"summary":             {Type: genai.TypeString},
		},
		Required: []string{
			"game_name", "team_name", "weighted_score", "percentage_score",
			"breakdown", "rule_compliance", "feedback", "rank_recommendation", "summary",
		},
	}
}
