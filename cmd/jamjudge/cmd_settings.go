package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jamjudge/internal/judge"
)

// settingsCmd prints the effective event settings and weights.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective event settings and criteria weights",
	RunE:  runSettings,
}

// settingsView is the printable shape: event settings plus the weights in
// canonical criterion order.
type settingsView struct {
	Event   judge.EventSettings `yaml:"event"`
	Weights []weightView        `yaml:"weights"`
	Total   int                 `yaml:"total"`
}

type weightView struct {
	Criterion string `yaml:"criterion"`
	Weight    int    `yaml:"weight"`
}

func runSettings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	weights := st.Weights()
	view := settingsView{
		Event: st.Settings(),
		Total: weights.Total(),
	}
	for _, id := range judge.Criteria {
		view.Weights = append(view.Weights, weightView{Criterion: id, Weight: weights[id]})
	}

	out, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
