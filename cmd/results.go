package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	resultsDB    string
	resultsModel string
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("62"))

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results [output_path]",
	Short: "Show recorded experiment results",
	Long: `Show the rows of the performance ledger, either PerformanceResults.csv in
the given output directory or the SQLite database given with --db.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var reader ledger.Reader
		switch {
		case resultsDB != "":
			db, err := ledger.OpenSQLiteLedger(resultsDB)
			if err != nil {
				return err
			}
			defer db.Close()
			reader = db
		case len(args) == 1:
			reader = ledger.NewCSVLedger(filepath.Join(args[0], ledger.FileName))
		default:
			return fmt.Errorf("either an output path or --db is required")
		}

		records, err := reader.Records()
		if err != nil {
			return err
		}

		if resultsModel != "" {
			filtered := make([]*ledger.Record, 0, len(records))
			for _, rec := range records {
				if rec.ModelName == resultsModel {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}

		if len(records) == 0 {
			internal.PrintInfo(cmd.OutOrStdout(), "No results recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, headerStyle.Render("TIME")+"\t"+headerStyle.Render("MODEL")+"\t"+
			headerStyle.Render("TRAIN")+"\t"+headerStyle.Render("TEST")+"\t"+
			headerStyle.Render("LL TEST")+"\t"+headerStyle.Render("PERPLEXITY TEST"))
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d/%d\t%s\t%s\n",
				rec.Timestamp.Local().Format(time.DateTime),
				rec.ModelName,
				rec.TrainSessionCount, rec.TrainQueryCount,
				rec.TestSessionCount, rec.TestQueryCount,
				internal.FormatFloat(rec.LogLikelihoodTest),
				internal.FormatFloat(rec.PerplexityTest),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().StringVar(&resultsDB, "db", "", "Read results from a SQLite ledger database")
	resultsCmd.Flags().StringVar(&resultsModel, "model", "", "Only show results of this click model")
}
