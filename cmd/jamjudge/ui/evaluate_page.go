package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jamjudge/internal/agent"
	"jamjudge/internal/evaluation"
	"jamjudge/internal/judge"
	"jamjudge/internal/store"
)

// Focus slots on the evaluate page: the text fields, then one slot per
// criterion, then the compliance notes.
const (
	focusGame = iota
	focusTeam
	focusDescription
	focusScores // first criterion; the nine criteria occupy focusScores..focusScores+8
)

func focusNotes() int { return focusScores + len(judge.Criteria) }

// verdictMsg reports the completed agent call; the workflow itself holds
// the outcome.
type verdictMsg struct{ err error }

// savedMsg reports a completed save.
type savedMsg struct{ id string }

// EvaluatePage collects the judging form, runs the evaluation workflow
// and displays the verdict.
type EvaluatePage struct {
	workflow *evaluation.Workflow

	game  textinput.Model
	team  textinput.Model
	desc  textarea.Model
	notes textarea.Model

	focus   int
	busy    bool
	spinner spinner.Model

	status string // transient confirmation line (e.g. saved)
	width  int
}

// NewEvaluatePage creates the evaluation page bound to the store and
// agent client.
func NewEvaluatePage(st *store.Store, client agent.Client, styles Styles) EvaluatePage {
	game := textinput.New()
	game.Placeholder = "Game name"
	game.CharLimit = 120
	game.Focus()

	team := textinput.New()
	team.Placeholder = "Team name"
	team.CharLimit = 120

	desc := textarea.New()
	desc.Placeholder = "What is the game? How was it made?"
	desc.SetHeight(3)

	notes := textarea.New()
	notes.Placeholder = "Compliance notes for the agent (optional)"
	notes.SetHeight(2)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return EvaluatePage{
		workflow: evaluation.NewWorkflow(st, client),
		game:     game,
		team:     team,
		desc:     desc,
		notes:    notes,
		spinner:  sp,
	}
}

// Init starts the page.
func (p EvaluatePage) Init() tea.Cmd {
	return textinput.Blink
}

// Resize adjusts the text areas to the window.
func (p EvaluatePage) Resize(width, height int) EvaluatePage {
	p.width = width
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	p.game.Width = w
	p.team.Width = w
	p.desc.SetWidth(w)
	p.notes.SetWidth(w)
	return p
}

// CapturesInput reports whether plain keystrokes belong to the page.
// The whole page is a form: digits set scores on the focused criterion,
// so the global navigation keys stay off while it is active.
func (p EvaluatePage) CapturesInput() bool {
	return true
}

// submitCmd runs the agent call off the update loop. The workflow is only
// read again once the message arrives, so the mutation is safe.
func submitCmd(w *evaluation.Workflow, weights judge.CriteriaWeights, settings judge.EventSettings) tea.Cmd {
	return func() tea.Msg {
		return verdictMsg{err: w.Submit(context.Background(), weights, settings)}
	}
}

// Update handles messages while this page is active.
func (p EvaluatePage) Update(msg tea.Msg, weights judge.CriteriaWeights, settings judge.EventSettings) (EvaluatePage, tea.Cmd) {
	switch msg := msg.(type) {
	case verdictMsg:
		p.busy = false
		return p, nil

	case savedMsg:
		p.status = "Saved evaluation " + msg.id
		return p, nil

	case spinner.TickMsg:
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		// While the agent call is in flight the form is non-interactive
		// and re-submission is blocked.
		if p.busy {
			return p, nil
		}

		switch msg.Type {
		case tea.KeyCtrlS:
			p.status = ""
			p.syncForm()
			p.busy = true
			return p, tea.Batch(p.spinner.Tick, submitCmd(p.workflow, weights, settings))

		case tea.KeyCtrlY:
			if p.workflow.CanSave() {
				saved, err := p.workflow.Save()
				if err != nil {
					return p, nil
				}
				return p, func() tea.Msg { return savedMsg{id: saved.ID} }
			}
			return p, nil

		case tea.KeyCtrlR:
			p.workflow.Reset()
			p.game.SetValue("")
			p.team.SetValue("")
			p.desc.SetValue("")
			p.notes.SetValue("")
			p.status = ""
			return p.setFocus(focusGame)

		case tea.KeyTab, tea.KeyDown:
			return p.setFocus(p.nextFocus(1))
		case tea.KeyShiftTab, tea.KeyUp:
			return p.setFocus(p.nextFocus(-1))
		}

		if p.focus >= focusScores && p.focus < focusNotes() {
			id := judge.Criteria[p.focus-focusScores]
			switch msg.String() {
			case "left", "h":
				if p.workflow.Form.Scores[id] > 0 {
					p.workflow.Form.Scores[id]--
				}
				return p, nil
			case "right", "l":
				if p.workflow.Form.Scores[id] < 10 {
					p.workflow.Form.Scores[id]++
				}
				return p, nil
			case "1", "2", "3", "4", "5", "6", "7", "8", "9":
				p.workflow.Form.Scores[id] = int(msg.String()[0] - '0')
				return p, nil
			case "0":
				p.workflow.Form.Scores[id] = 10
				return p, nil
			}
			return p, nil
		}
	}

	return p.updateFocused(msg)
}

// nextFocus wraps focus movement over all slots.
func (p EvaluatePage) nextFocus(delta int) int {
	total := focusNotes() + 1
	return ((p.focus+delta)%total + total) % total
}

func (p EvaluatePage) setFocus(focus int) (EvaluatePage, tea.Cmd) {
	p.focus = focus
	p.game.Blur()
	p.team.Blur()
	p.desc.Blur()
	p.notes.Blur()

	var cmd tea.Cmd
	switch focus {
	case focusGame:
		cmd = p.game.Focus()
	case focusTeam:
		cmd = p.team.Focus()
	case focusDescription:
		cmd = p.desc.Focus()
	case focusNotes():
		cmd = p.notes.Focus()
	}
	return p, cmd
}

func (p EvaluatePage) updateFocused(msg tea.Msg) (EvaluatePage, tea.Cmd) {
	var cmd tea.Cmd
	switch p.focus {
	case focusGame:
		p.game, cmd = p.game.Update(msg)
	case focusTeam:
		p.team, cmd = p.team.Update(msg)
	case focusDescription:
		p.desc, cmd = p.desc.Update(msg)
	case focusNotes():
		p.notes, cmd = p.notes.Update(msg)
	}
	return p, cmd
}

// syncForm copies the widget values into the workflow form.
func (p *EvaluatePage) syncForm() {
	p.workflow.Form.GameName = p.game.Value()
	p.workflow.Form.TeamName = p.team.Value()
	p.workflow.Form.Description = p.desc.Value()
	p.workflow.Form.ComplianceNotes = p.notes.Value()
}

// View renders the form, the in-flight indicator, and the verdict panel.
func (p EvaluatePage) View(styles Styles, weights judge.CriteriaWeights, width int) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Evaluate submission"))
	sb.WriteString("\n")
	sb.WriteString(p.game.View())
	sb.WriteString("\n")
	sb.WriteString(p.team.View())
	sb.WriteString("\n")
	sb.WriteString(p.desc.View())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Bold.Render("Scores (1-10)"))
	sb.WriteString("\n")
	for i, id := range judge.Criteria {
		score := p.workflow.Form.Scores[id]
		marker := "  "
		label := fmt.Sprintf("%-22s", judge.CriterionLabel(id))
		line := fmt.Sprintf("%s%s %s  %s", marker, label, scoreBar(score), weightTag(weights[id]))
		if p.focus == focusScores+i {
			line = styles.Bold.Render("> " + strings.TrimPrefix(line, "  "))
		} else {
			line = styles.Body.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(p.notes.View())
	sb.WriteString("\n")

	if p.busy {
		sb.WriteString("\n")
		sb.WriteString(p.spinner.View())
		sb.WriteString(styles.Subtitle.Render(" Evaluating with the judging agent..."))
		sb.WriteString("\n")
		return sb.String()
	}

	if p.workflow.ErrMessage != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(p.workflow.ErrMessage))
		sb.WriteString("\n")
	}

	if p.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Success.Render(p.status))
		sb.WriteString("\n")
	}

	if p.workflow.Verdict != nil {
		sb.WriteString("\n")
		sb.WriteString(renderVerdict(styles, p.workflow.Verdict, width))
	}

	return sb.String()
}

// scoreBar renders a 10-step bar; the unset sentinel renders as dashes.
func scoreBar(score int) string {
	if score <= 0 {
		return "[----------]  -"
	}
	return fmt.Sprintf("[%s%s] %2d", strings.Repeat("█", score), strings.Repeat("·", 10-score), score)
}

func weightTag(weight int) string {
	return fmt.Sprintf("(%d%%)", weight)
}
