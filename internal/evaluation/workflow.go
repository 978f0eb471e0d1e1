// Package evaluation orchestrates one judging session: form input,
// completeness validation, the agent call, and persisting the accepted
// verdict.
package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jamjudge/internal/agent"
	"jamjudge/internal/judge"
	"jamjudge/internal/store"
)

// Form holds the judge's raw input for one submission.
type Form struct {
	GameName        string
	TeamName        string
	Description     string
	Scores          judge.CriteriaScores
	ComplianceNotes string
}

// NewForm returns an empty form with every score at the unset sentinel.
func NewForm() Form {
	return Form{Scores: judge.NewScores()}
}

// ValidationError reports a failed pre-submission check. MissingCriteria
// lists the display names of criteria still at zero, in canonical order.
type ValidationError struct {
	MissingNames    bool
	MissingCriteria []string
}

func (e *ValidationError) Error() string {
	if e.MissingNames {
		return "game name and team name are required"
	}
	return fmt.Sprintf("missing scores for: %s", strings.Join(e.MissingCriteria, ", "))
}

// Validate checks the form for completeness. Names must be non-empty after
// trimming, and every criterion must have a score strictly greater than
// zero. The error names the specific missing criteria rather than pointing
// at the form as a whole.
func Validate(form Form) error {
	if strings.TrimSpace(form.GameName) == "" || strings.TrimSpace(form.TeamName) == "" {
		return &ValidationError{MissingNames: true}
	}

	var missing []string
	for _, id := range judge.Criteria {
		if form.Scores[id] <= 0 {
			missing = append(missing, judge.CriterionLabel(id))
		}
	}
	if len(missing) > 0 {
		return &ValidationError{MissingCriteria: missing}
	}
	return nil
}

// Workflow drives a single evaluation from form to saved record. Exactly
// one of Verdict and ErrMessage is set after a submission; a new
// submission clears both before doing anything else.
type Workflow struct {
	store  *store.Store
	client agent.Client

	Form       Form
	Verdict    *agent.Verdict
	ErrMessage string
}

// NewWorkflow creates a workflow bound to the store and agent client.
func NewWorkflow(st *store.Store, client agent.Client) *Workflow {
	return &Workflow{store: st, client: client, Form: NewForm()}
}

// Submit validates the form, builds the judging payload from the active
// configuration, and invokes the agent. The three possible landings are a
// verdict, an agent-supplied failure message, or the generic transport
// message; whichever applies replaces the previous state entirely.
func (w *Workflow) Submit(ctx context.Context, weights judge.CriteriaWeights, settings judge.EventSettings) error {
	w.Verdict = nil
	w.ErrMessage = ""

	if err := Validate(w.Form); err != nil {
		w.ErrMessage = err.Error()
		return err
	}

	payload, err := BuildPayload(w.Form, weights, settings)
	if err != nil {
		w.ErrMessage = agent.TransportFallback
		return err
	}

	verdict, err := w.client.Evaluate(ctx, payload)
	if err != nil {
		w.ErrMessage = agent.UserMessage(err)
		return err
	}

	w.Verdict = verdict
	return nil
}

// CanSave reports whether a result exists to be saved.
func (w *Workflow) CanSave() bool { return w.Verdict != nil }

// Save wraps the current verdict in a SavedEvaluation with a fresh id and
// timestamp and appends it to the persisted list. It fails only when no
// verdict has been produced; storage write failures are absorbed by the
// store per its contract.
func (w *Workflow) Save() (judge.SavedEvaluation, error) {
	if w.Verdict == nil {
		return judge.SavedEvaluation{}, fmt.Errorf("no evaluation result to save")
	}

	saved := judge.SavedEvaluation{
		ID:       uuid.NewString(),
		SavedAt:  time.Now().UTC(),
		Result:   w.Verdict.Result,
		Metadata: w.Verdict.Metadata,
	}
	w.store.AppendEvaluation(saved)
	return saved, nil
}

// Reset clears the verdict, any error, and all form fields, ready for a
// new submission.
func (w *Workflow) Reset() {
	w.Form = NewForm()
	w.Verdict = nil
	w.ErrMessage = ""
}
