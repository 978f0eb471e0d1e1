package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jamjudge/internal/judge"
	"jamjudge/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newDraft() *Draft {
	return NewDraft(judge.DefaultSettings(), judge.DefaultWeights())
}

func TestAddRuleTrimsAndDropsEmpty(t *testing.T) {
	d := newDraft()
	before := len(d.Settings.Rules)

	d.AddRule("  no pre-made assets  ")
	d.AddRule("   ")

	require.Len(t, d.Settings.Rules, before+1)
	assert.Equal(t, "no pre-made assets", d.Settings.Rules[before])
}

func TestAddRuleAllowsDuplicates(t *testing.T) {
	d := newDraft()
	before := len(d.Settings.Rules)
	d.AddRule("same rule")
	d.AddRule("same rule")
	assert.Len(t, d.Settings.Rules, before+2)
}

func TestRemoveRuleByIndex(t *testing.T) {
	d := NewDraft(judge.EventSettings{Rules: []string{"a", "b", "c"}}, judge.DefaultWeights())

	d.RemoveRule(1)
	assert.Equal(t, []string{"a", "c"}, d.Settings.Rules)

	// Out-of-range indexes are ignored.
	d.RemoveRule(-1)
	d.RemoveRule(10)
	assert.Equal(t, []string{"a", "c"}, d.Settings.Rules)
}

func TestSetWeightClamps(t *testing.T) {
	d := newDraft()
	d.SetWeight(judge.CriterionPolish, -5)
	assert.Equal(t, 0, d.Weights[judge.CriterionPolish])
	d.SetWeight(judge.CriterionPolish, 150)
	assert.Equal(t, 100, d.Weights[judge.CriterionPolish])
	d.SetWeight(judge.CriterionPolish, 42)
	assert.Equal(t, 42, d.Weights[judge.CriterionPolish])
}

func TestValidateRejectsUnder100(t *testing.T) {
	d := newDraft()
	d.SetWeight(judge.CriterionOriginality, 10) // 15 -> 10, total 95

	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "95")
	assert.Contains(t, err.Error(), "under")
}

func TestValidateRejectsOver100(t *testing.T) {
	d := newDraft()
	d.SetWeight(judge.CriterionOriginality, 20) // 15 -> 20, total 105

	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "105")
	assert.Contains(t, err.Error(), "over")
}

func TestValidateAcceptsExactly100(t *testing.T) {
	assert.NoError(t, newDraft().Validate())
}

func TestSaveRejectedPersistsNothing(t *testing.T) {
	st := testStore(t)
	d := newDraft()
	d.Settings.EventName = "Edited Name"
	d.SetWeight(judge.CriterionOriginality, 0) // total 85

	_, _, err := d.Save(st)
	require.Error(t, err)

	assert.Equal(t, judge.DefaultSettings().EventName, st.Settings().EventName,
		"rejected save must not persist settings")
	assert.Equal(t, 100, st.Weights().Total(),
		"rejected save must not persist weights")
}

func TestSaveAcceptedPersistsAndReturnsCopies(t *testing.T) {
	st := testStore(t)
	d := newDraft()
	d.Settings.EventName = "Spring Jam"
	d.AddRule("stream your dev process")
	// Move 5 points between criteria, keeping the total at 100.
	d.SetWeight(judge.CriterionOriginality, 10)
	d.SetWeight(judge.CriterionPolish, 15)

	accepted, weights, err := d.Save(st)
	require.NoError(t, err)
	assert.Equal(t, "Spring Jam", accepted.EventName)
	assert.Equal(t, 100, weights.Total())

	assert.Equal(t, "Spring Jam", st.Settings().EventName)
	assert.Equal(t, 10, st.Weights()[judge.CriterionOriginality])

	// The returned copies are detached from the draft.
	d.SetWeight(judge.CriterionOriginality, 99)
	assert.Equal(t, 10, weights[judge.CriterionOriginality])
}
