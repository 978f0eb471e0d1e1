package evaluation

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"jamjudge/internal/agent"
	"jamjudge/internal/judge"
	"jamjudge/internal/store"
)

// fakeClient is a scripted agent.Client.
type fakeClient struct {
	verdict     *agent.Verdict
	err         error
	calls       int
	lastPayload string
}

func (f *fakeClient) Evaluate(ctx context.Context, payload string) (*agent.Verdict, error) {
	f.calls++
	f.lastPayload = payload
	return f.verdict, f.err
}

func fullForm() Form {
	form := NewForm()
	form.GameName = "  Orbital Gardeners  "
	form.TeamName = "Team Photon"
	form.Description = "A gravity gardening game.\n"
	form.ComplianceNotes = " used Claude for art "
	for i, id := range judge.Criteria {
		form.Scores[id] = i%10 + 1
	}
	return form
}

func sampleVerdict() *agent.Verdict {
	return &agent.Verdict{
		Result: judge.EvaluationResult{
			GameName:        "Orbital Gardeners",
			TeamName:        "Team Photon",
			PercentageScore: 82.5,
		},
		Metadata: judge.EvaluationMetadata{AgentName: "game-jam-judge"},
	}
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestValidateMissingNames(t *testing.T) {
	form := fullForm()
	form.GameName = "   "
	err := Validate(form)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !verr.MissingNames {
		t.Error("expected a missing-names error")
	}
}

func TestValidateNamesExactlyTheZeroCriteria(t *testing.T) {
	form := fullForm()
	form.Scores[judge.CriterionPolish] = 0
	form.Scores[judge.CriterionAccessibility] = 0

	err := Validate(form)
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	want := []string{
		judge.CriterionLabel(judge.CriterionPolish),
		judge.CriterionLabel(judge.CriterionAccessibility),
	}
	if len(verr.MissingCriteria) != 2 {
		t.Fatalf("expected exactly 2 missing criteria, got %v", verr.MissingCriteria)
	}
	for _, name := range want {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %q", err.Error(), name)
		}
	}
	// Scored criteria must not be named.
	if strings.Contains(err.Error(), judge.CriterionLabel(judge.CriterionOriginality)) {
		t.Errorf("error %q names a criterion that was scored", err.Error())
	}
}

func TestValidatePassesWithFullScores(t *testing.T) {
	if err := Validate(fullForm()); err != nil {
		t.Errorf("expected validation to pass, got %v", err)
	}
}

func TestBuildPayloadTrimsAndJoins(t *testing.T) {
	settings := judge.DefaultSettings()
	settings.Rules = []string{"rule a", "rule b"}
	weights := judge.DefaultWeights()

	raw, err := BuildPayload(fullForm(), weights, settings)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if p.GameName != "Orbital Gardeners" {
		t.Errorf("game name not trimmed: %q", p.GameName)
	}
	if p.ComplianceNotes != "used Claude for art" {
		t.Errorf("notes not trimmed: %q", p.ComplianceNotes)
	}
	if p.EventRules != "rule a\nrule b" {
		t.Errorf("rules not joined: %q", p.EventRules)
	}
	if len(p.Scores) != len(judge.Criteria) {
		t.Errorf("expected full score map, got %d entries", len(p.Scores))
	}
	if len(p.Weights) != len(judge.Criteria) {
		t.Errorf("expected full weight map, got %d entries", len(p.Weights))
	}
}

func TestSubmitSuccess(t *testing.T) {
	client := &fakeClient{verdict: sampleVerdict()}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()

	if err := w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if w.Verdict == nil {
		t.Fatal("expected a verdict")
	}
	if w.ErrMessage != "" {
		t.Errorf("expected no error message, got %q", w.ErrMessage)
	}
	if client.calls != 1 {
		t.Errorf("expected one agent call, got %d", client.calls)
	}
}

func TestSubmitValidationFailureSkipsAgent(t *testing.T) {
	client := &fakeClient{verdict: sampleVerdict()}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()
	w.Form.Scores[judge.CriterionPolish] = 0

	if err := w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings()); err == nil {
		t.Fatal("expected a validation error")
	}
	if client.calls != 0 {
		t.Errorf("agent must not be called on validation failure, got %d calls", client.calls)
	}
	if w.ErrMessage == "" {
		t.Error("expected an error message")
	}
}

func TestSubmitAgentRejectionSurfacesMessage(t *testing.T) {
	client := &fakeClient{err: &agent.Error{Kind: agent.KindRejected, Message: "cannot evaluate this"}}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()

	_ = w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings())
	if w.ErrMessage != "cannot evaluate this" {
		t.Errorf("expected the agent's message, got %q", w.ErrMessage)
	}
	if w.Verdict != nil {
		t.Error("expected no verdict")
	}
}

func TestSubmitTransportFailureGenericMessage(t *testing.T) {
	client := &fakeClient{err: &agent.Error{Kind: agent.KindTransport, Message: agent.TransportFallback}}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()

	_ = w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings())
	if w.ErrMessage != agent.TransportFallback {
		t.Errorf("expected the generic transport message, got %q", w.ErrMessage)
	}
}

func TestSubmitClearsPriorState(t *testing.T) {
	client := &fakeClient{verdict: sampleVerdict()}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()

	if err := w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings()); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	// Second submission fails at the agent; the old verdict must not
	// survive alongside the new error.
	client.verdict = nil
	client.err = &agent.Error{Kind: agent.KindRejected, Message: "busy"}
	_ = w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings())

	if w.Verdict != nil {
		t.Error("stale verdict survived a failed resubmission")
	}
	if w.ErrMessage != "busy" {
		t.Errorf("expected the new error, got %q", w.ErrMessage)
	}
}

func TestSaveRequiresVerdict(t *testing.T) {
	w := NewWorkflow(testStore(t), &fakeClient{})
	if w.CanSave() {
		t.Error("CanSave must be false before a verdict exists")
	}
	if _, err := w.Save(); err == nil {
		t.Error("expected Save to fail without a verdict")
	}
}

func TestSaveAppendsWithFreshID(t *testing.T) {
	st := testStore(t)
	client := &fakeClient{verdict: sampleVerdict()}
	w := NewWorkflow(st, client)
	w.Form = fullForm()

	if err := w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	first, err := w.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := w.Save()
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("expected fresh unique ids, got %q and %q", first.ID, second.ID)
	}
	if first.SavedAt.IsZero() {
		t.Error("expected a save timestamp")
	}

	evals := st.Evaluations()
	if len(evals) != 2 {
		t.Fatalf("expected 2 persisted evaluations, got %d", len(evals))
	}
	if evals[0].Result.PercentageScore != 82.5 {
		t.Errorf("persisted result mangled: %+v", evals[0].Result)
	}
}

func TestResetClearsEverything(t *testing.T) {
	client := &fakeClient{verdict: sampleVerdict()}
	w := NewWorkflow(testStore(t), client)
	w.Form = fullForm()
	if err := w.Submit(context.Background(), judge.DefaultWeights(), judge.DefaultSettings()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	w.Reset()

	if w.Verdict != nil || w.ErrMessage != "" {
		t.Error("Reset left verdict or error state behind")
	}
	if w.Form.GameName != "" || w.Form.TeamName != "" || w.Form.Description != "" || w.Form.ComplianceNotes != "" {
		t.Error("Reset left form fields behind")
	}
	for _, id := range judge.Criteria {
		if w.Form.Scores[id] != 0 {
			t.Errorf("Reset left score for %s", id)
		}
	}
}
