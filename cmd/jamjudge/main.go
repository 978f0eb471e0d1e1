package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jamjudge/cmd/jamjudge/ui"
	"jamjudge/internal/agent"
	"jamjudge/internal/config"
	"jamjudge/internal/logging"
	"jamjudge/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "jamjudge",
	Short: "jamjudge - terminal judging dashboard for game jams",
	Long: `jamjudge is a judging dashboard for game-jam events.

A judge scores a submission across nine weighted criteria, the scores and
notes go to an AI evaluation agent, and the returned verdict is shown,
saved locally, and ranked on a leaderboard.

Run without arguments to start the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive dashboard has its own UI; no console logger.
		if cmd.Use == "jamjudge" && cmd.CalledAs() == "jamjudge" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.jamjudge/config.yaml)")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(settingsCmd)
}

// loadConfig resolves the config path and loads the configuration.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(config.DataDir(), "config.yaml")
	}
	return config.Load(path)
}

// openStore opens the evaluation store from the configuration.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(cfg.Storage.DatabasePath)
}

// buildAgentClient selects the agent transport from the configuration.
func buildAgentClient(cfg *config.Config) (agent.Client, error) {
	switch cfg.Agent.Provider {
	case "gemini":
		return agent.NewGeminiClient(cfg.Agent.APIKey, cfg.Agent.Model)
	default:
		return agent.NewRuntimeClient(agent.RuntimeConfig{
			BaseURL: cfg.Agent.BaseURL,
			APIKey:  cfg.Agent.APIKey,
			Timeout: cfg.AgentTimeout(),
		}), nil
	}
}

// runDashboard starts the interactive TUI.
func runDashboard() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(config.DataDir(), cfg.Logging.DebugMode || verbose); err != nil {
		return err
	}
	defer logging.Close()
	logging.Boot("jamjudge starting (db=%s provider=%s)", cfg.Storage.DatabasePath, cfg.Agent.Provider)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	client, err := buildAgentClient(cfg)
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	shell := ui.NewShell(st, client, styles)

	p := tea.NewProgram(shell, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
