package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jamjudge/internal/judge"
	"jamjudge/internal/settings"
	"jamjudge/internal/store"
)

// Focus slots on the settings page.
const (
	setFocusName = iota
	setFocusTheme
	setFocusRuleEntry
	setFocusRules
	setFocusWeights // first criterion; nine slots
)

func setFocusCount() int { return setFocusWeights + len(judge.Criteria) }

// settingsSavedMsg tells the shell to adopt the accepted configuration.
type settingsSavedMsg struct {
	Settings judge.EventSettings
	Weights  judge.CriteriaWeights
}

// SettingsPage edits the event settings and criteria weights as a staged
// draft. Nothing reaches the store or the shared configuration until a
// save passes validation.
type SettingsPage struct {
	draft *settings.Draft

	name      textinput.Model
	theme     textinput.Model
	ruleEntry textinput.Model

	focus      int
	ruleCursor int
	errMsg     string
	status     string
}

// NewSettingsPage stages the current configuration for editing.
func NewSettingsPage(current judge.EventSettings, weights judge.CriteriaWeights) SettingsPage {
	name := textinput.New()
	name.CharLimit = 120
	name.SetValue(current.EventName)
	name.Focus()

	theme := textinput.New()
	theme.CharLimit = 240
	theme.SetValue(current.Theme)

	ruleEntry := textinput.New()
	ruleEntry.Placeholder = "New rule (enter to add)"
	ruleEntry.CharLimit = 240

	return SettingsPage{
		draft:     settings.NewDraft(current, weights),
		name:      name,
		theme:     theme,
		ruleEntry: ruleEntry,
	}
}

// CapturesInput reports whether plain keystrokes belong to a text field.
func (p SettingsPage) CapturesInput() bool {
	return p.focus <= setFocusRuleEntry
}

// Update handles messages while this page is active.
func (p SettingsPage) Update(msg tea.Msg, st *store.Store) (SettingsPage, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.Type {
	case tea.KeyCtrlS:
		p.syncDraft()
		accepted, weights, err := p.draft.Save(st)
		if err != nil {
			p.errMsg = "Not saved: " + err.Error()
			p.status = ""
			return p, nil
		}
		p.errMsg = ""
		p.status = "Settings saved."
		return p, func() tea.Msg {
			return settingsSavedMsg{Settings: accepted, Weights: weights}
		}

	case tea.KeyTab:
		return p.setFocus((p.focus + 1) % setFocusCount()), nil
	case tea.KeyShiftTab:
		return p.setFocus(((p.focus-1)%setFocusCount() + setFocusCount()) % setFocusCount()), nil

	case tea.KeyEnter:
		if p.focus == setFocusRuleEntry {
			p.draft.AddRule(p.ruleEntry.Value())
			p.ruleEntry.SetValue("")
			return p, nil
		}

	case tea.KeyCtrlD:
		if p.focus == setFocusRules && len(p.draft.Settings.Rules) > 0 {
			p.draft.RemoveRule(p.ruleCursor)
			if p.ruleCursor >= len(p.draft.Settings.Rules) && p.ruleCursor > 0 {
				p.ruleCursor--
			}
			return p, nil
		}
	}

	switch p.focus {
	case setFocusRules:
		switch key.String() {
		case "up", "k":
			if p.ruleCursor > 0 {
				p.ruleCursor--
			}
		case "down", "j":
			if p.ruleCursor < len(p.draft.Settings.Rules)-1 {
				p.ruleCursor++
			}
		}
		return p, nil
	}

	if p.focus >= setFocusWeights {
		id := judge.Criteria[p.focus-setFocusWeights]
		switch key.String() {
		case "left", "h":
			p.draft.SetWeight(id, p.draft.Weights[id]-1)
		case "right", "l":
			p.draft.SetWeight(id, p.draft.Weights[id]+1)
		case "up", "k":
			return p.setFocus(p.focus - 1), nil
		case "down", "j":
			if p.focus < setFocusCount()-1 {
				return p.setFocus(p.focus + 1), nil
			}
		}
		return p, nil
	}

	var cmd tea.Cmd
	switch p.focus {
	case setFocusName:
		p.name, cmd = p.name.Update(msg)
	case setFocusTheme:
		p.theme, cmd = p.theme.Update(msg)
	case setFocusRuleEntry:
		p.ruleEntry, cmd = p.ruleEntry.Update(msg)
	}
	return p, cmd
}

func (p SettingsPage) setFocus(focus int) SettingsPage {
	p.focus = focus
	p.name.Blur()
	p.theme.Blur()
	p.ruleEntry.Blur()
	switch focus {
	case setFocusName:
		p.name.Focus()
	case setFocusTheme:
		p.theme.Focus()
	case setFocusRuleEntry:
		p.ruleEntry.Focus()
	}
	return p
}

// syncDraft copies the text widgets into the staged draft.
func (p *SettingsPage) syncDraft() {
	p.draft.Settings.EventName = strings.TrimSpace(p.name.Value())
	p.draft.Settings.Theme = strings.TrimSpace(p.theme.Value())
}

// View renders the settings editor with a live weight total.
func (p SettingsPage) View(styles Styles, width int) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Event settings"))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("Event name"))
	sb.WriteString("\n")
	sb.WriteString(p.name.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render("Theme"))
	sb.WriteString("\n")
	sb.WriteString(p.theme.View())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Bold.Render("Rules"))
	sb.WriteString("\n")
	for i, rule := range p.draft.Settings.Rules {
		prefix := "  "
		if p.focus == setFocusRules && i == p.ruleCursor {
			prefix = "> "
		}
		sb.WriteString(styles.Body.Render(fmt.Sprintf("%s%d. %s", prefix, i+1, rule)))
		sb.WriteString("\n")
	}
	sb.WriteString(p.ruleEntry.View())
	sb.WriteString("\n\n")

	total := p.draft.Weights.Total()
	totalLine := fmt.Sprintf("Weights (total %d/100)", total)
	if total == 100 {
		sb.WriteString(styles.Success.Render(totalLine))
	} else {
		sb.WriteString(styles.Warning.Render(totalLine))
	}
	sb.WriteString("\n")
	for i, id := range judge.Criteria {
		w := p.draft.Weights[id]
		line := fmt.Sprintf("%-22s %3d%%", judge.CriterionLabel(id), w)
		if p.focus == setFocusWeights+i {
			sb.WriteString(styles.Bold.Render("> " + line))
		} else {
			sb.WriteString(styles.Body.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	if p.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(p.errMsg))
	}
	if p.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Success.Render(p.status))
	}
	return sb.String()
}
