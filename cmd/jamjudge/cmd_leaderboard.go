package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jamjudge/internal/leaderboard"
)

var (
	sortFlag         string
	compliantOnly    bool
	nonCompliantOnly bool
	csvPath          string
	exportDir        string
)

// leaderboardCmd prints the ranked view, optionally as CSV.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current leaderboard",
	Long: `Ranks all saved evaluations and prints them. Sort by "total" or any
criterion id (e.g. playability, aiToolUsage). With --csv the ranked view
is written to a file instead.`,
	RunE: runLeaderboard,
}

// exportCmd writes the dated CSV export.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the leaderboard as a dated CSV file",
	RunE:  runExport,
}

func init() {
	leaderboardCmd.Flags().StringVar(&sortFlag, "sort", leaderboard.SortTotal, "sort key: total or a criterion id")
	leaderboardCmd.Flags().BoolVar(&compliantOnly, "compliant", false, "only rule-compliant entries")
	leaderboardCmd.Flags().BoolVar(&nonCompliantOnly, "non-compliant", false, "only non-compliant entries")
	leaderboardCmd.Flags().StringVar(&csvPath, "csv", "", "write CSV to this path instead of printing")

	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "directory for the export file")
	exportCmd.Flags().StringVar(&sortFlag, "sort", leaderboard.SortTotal, "sort key: total or a criterion id")
}

// complianceFilter maps the two boolean flags onto the engine's optional
// filter.
func complianceFilter() *bool {
	if compliantOnly {
		v := true
		return &v
	}
	if nonCompliantOnly {
		v := false
		return &v
	}
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries := leaderboard.Rank(st.Evaluations(), sortFlag, complianceFilter())
	logger.Info("ranked evaluations", zap.Int("count", len(entries)), zap.String("sort", sortFlag))

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		defer f.Close()
		return leaderboard.WriteCSV(f, entries)
	}

	if len(entries) == 0 {
		fmt.Println("No evaluations saved yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tGAME\tTEAM\tSCORE\tCOMPLIANT")
	for _, e := range entries {
		r := &e.Saved.Result
		compliant := "No"
		if r.RuleCompliance.Compliant {
			compliant = "Yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f%%\t%s\n", e.Rank, r.GameName, r.TeamName, r.PercentageScore, compliant)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries := leaderboard.Rank(st.Evaluations(), sortFlag, nil)
	path, err := leaderboard.Export(exportDir, entries)
	if err != nil {
		return err
	}
	logger.Info("exported leaderboard", zap.String("path", path), zap.Int("rows", len(entries)))
	fmt.Println(path)
	return nil
}
