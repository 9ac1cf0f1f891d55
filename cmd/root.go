package cmd

import (
	"fmt"
	"os"

	"github.com/clickexp/clickexp/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clickexp",
	Short: "Train and evaluate click models on search session logs",
	Long: `Train click models on a recorded search log, score them and export
per-query, per-result probability estimates.

Each run splits the log by position (first 75% train, rest test, test
sessions restricted to queries seen in training), trains the model, appends
log-likelihood and perplexity to PerformanceResults.csv, saves the model
under models/ and writes click and satisfaction probabilities for every
query of the log.

Quick Start:
  clickexp models                                      # List click models
  clickexp run ./resources ./out/ train.tsv PBM UBM    # Run two experiments
  clickexp results ./out/                              # Show the ledger`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
