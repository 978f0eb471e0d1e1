package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jamjudge/internal/agent"
	"jamjudge/internal/judge"
	"jamjudge/internal/logging"
	"jamjudge/internal/store"
)

// ViewMode determines which page is visible.
type ViewMode int

const (
	DashboardView ViewMode = iota
	EvaluateView
	LeaderboardView
	SettingsView
)

var viewTabs = []struct {
	mode  ViewMode
	label string
}{
	{DashboardView, "1 Dashboard"},
	{EvaluateView, "2 Evaluate"},
	{LeaderboardView, "3 Leaderboard"},
	{SettingsView, "4 Settings"},
}

// syncTickMsg fires the periodic storage re-read.
type syncTickMsg time.Time

// Shell is the top-level model. It owns the shared weight/rule
// configuration and the evaluation cache, and selects the active page.
type Shell struct {
	store  *store.Store
	client agent.Client
	styles Styles

	mode   ViewMode
	width  int
	height int

	// Shared configuration, passed down to the pages. Updated only by a
	// successful settings save.
	weights  judge.CriteriaWeights
	settings judge.EventSettings

	// View cache of saved evaluations, wholesale-replaced from the store
	// on every sync tick (last write wins; no merge).
	evals []judge.SavedEvaluation

	dashboard   DashboardPage
	evaluate    EvaluatePage
	leaderboard LeaderboardPage
	setPage     SettingsPage
}

// NewShell builds the shell with configuration read from the store.
func NewShell(st *store.Store, client agent.Client, styles Styles) Shell {
	weights := st.Weights()
	settings := st.Settings()
	return Shell{
		store:       st,
		client:      client,
		styles:      styles,
		mode:        DashboardView,
		weights:     weights,
		settings:    settings,
		evals:       st.Evaluations(),
		dashboard:   NewDashboardPage(),
		evaluate:    NewEvaluatePage(st, client, styles),
		leaderboard: NewLeaderboardPage(),
		setPage:     NewSettingsPage(settings, weights),
	}
}

// syncTick schedules the next storage poll. The poll provides best-effort
// convergence when the database was modified out of band; it is not real
// synchronization and can race with an in-flight save.
func syncTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return syncTickMsg(t)
	})
}

// Init starts the poll loop.
func (m Shell) Init() tea.Cmd {
	return tea.Batch(syncTick(), m.evaluate.Init())
}

// Update handles messages.
func (m Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.evaluate = m.evaluate.Resize(msg.Width, msg.Height)
		return m, nil

	case syncTickMsg:
		m.evals = m.store.Evaluations()
		return m, syncTick()

	case verdictMsg, savedMsg, spinner.TickMsg:
		// Agent-call completions must reach the evaluate page even when
		// another page is visible; dropping them would leave the page
		// stuck busy after navigating away mid-call.
		var cmd tea.Cmd
		m.evaluate, cmd = m.evaluate.Update(msg, m.weights, m.settings)
		return m, cmd

	case settingsSavedMsg:
		// Propagate the accepted configuration to the shared state.
		m.settings = msg.Settings
		m.weights = msg.Weights
		logging.UI("Settings saved: %d rules, weights total %d", len(msg.Settings.Rules), msg.Weights.Total())

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			m.mode = DashboardView
			return m, nil
		}
		if !m.capturesInput() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.mode = DashboardView
				return m, nil
			case "2":
				m.mode = EvaluateView
				return m, nil
			case "3":
				m.mode = LeaderboardView
				return m, nil
			case "4":
				m.mode = SettingsView
				return m, nil
			}
		}
		if msg.Type == tea.KeyTab && m.mode != EvaluateView && m.mode != SettingsView {
			m.mode = ViewMode((int(m.mode) + 1) % len(viewTabs))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case EvaluateView:
		m.evaluate, cmd = m.evaluate.Update(msg, m.weights, m.settings)
	case LeaderboardView:
		m.leaderboard, cmd = m.leaderboard.Update(msg, m.evals)
	case SettingsView:
		m.setPage, cmd = m.setPage.Update(msg, m.store)
	}
	return m, cmd
}

// capturesInput reports whether the active page is consuming plain
// keystrokes (text entry), in which case global navigation keys stay out
// of the way.
func (m Shell) capturesInput() bool {
	switch m.mode {
	case EvaluateView:
		return m.evaluate.CapturesInput()
	case SettingsView:
		return m.setPage.CapturesInput()
	}
	return false
}

// View renders the header, the active page and the footer.
func (m Shell) View() string {
	var tabs []string
	for _, t := range viewTabs {
		if t.mode == m.mode {
			tabs = append(tabs, m.styles.ActiveTab.Render(t.label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(t.label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Header.Render("jamjudge"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)

	var body string
	switch m.mode {
	case DashboardView:
		body = m.dashboard.View(m.styles, m.settings, m.evals, m.width)
	case EvaluateView:
		body = m.evaluate.View(m.styles, m.weights, m.width)
	case LeaderboardView:
		body = m.leaderboard.View(m.styles, m.evals, m.width)
	case SettingsView:
		body = m.setPage.View(m.styles, m.width)
	}

	footer := m.styles.Footer.Render(m.footerHint())
	return header + "\n" + m.styles.Content.Render(body) + "\n" + footer
}

func (m Shell) footerHint() string {
	switch m.mode {
	case EvaluateView:
		return "tab/shift+tab fields · ←/→ or digits score · ctrl+s submit · ctrl+y save verdict · ctrl+r reset · esc back"
	case LeaderboardView:
		return "s sort · f filter · e export CSV · 1-4 pages · q quit"
	case SettingsView:
		return "tab fields · ←/→ weight · enter add rule · ctrl+d delete rule · ctrl+s save · ctrl+c quit"
	default:
		return "1-4 pages · tab next page · q quit"
	}
}
