package cmd

import (
	"errors"
	"fmt"

	"github.com/clickexp/clickexp/internal"
	"github.com/clickexp/clickexp/internal/clickmodel"
	"github.com/clickexp/clickexp/internal/config"
	"github.com/clickexp/clickexp/internal/experiment"
	"github.com/clickexp/clickexp/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	sessionLimit int
	emIterations int
	noCache      bool
	clearCache   bool
	ledgerDB     string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run resource_path output_path search_log_file model_name...",
	Short: "Run one experiment per click model",
	Long: `Run a full experiment for every given click model, one after another.

A model that cannot be resolved or fails does not stop the remaining ones;
the command exits with an error if any of them failed.
Use 'clickexp models' to see available model names.`,
	Args: cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cmd, args[:3])
		if err != nil {
			return err
		}
		modelNames := args[3:]

		parser := newParser(cfg)

		opts := []experiment.Option{
			experiment.WithRegistry(clickmodel.DefaultRegistry(clickmodel.Options{EMIterations: cfg.EMIterations})),
			experiment.WithParser(parser),
			experiment.WithLogger(internal.Logger()),
			experiment.WithProgress(true),
		}

		if cfg.LedgerDB != "" {
			db, err := ledger.OpenSQLiteLedger(cfg.LedgerDB)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					internal.LogError("Failed to close ledger database: %v", err)
				}
			}()
			opts = append(opts, experiment.WithSinks(db))
		}

		var errs []error
		for _, name := range modelNames {
			internal.LogInfo("Running: %s", name)

			res, err := experiment.NewHarness(cfg.Experiment(name), opts...).Run()
			if err != nil {
				internal.PrintError(cmd.ErrOrStderr(), fmt.Sprintf("%s: %v", name, err))
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}

			if len(res.Split.Test) == 0 {
				internal.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("%s: no test sessions, test scores are nan", name))
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf(
				"%s: trained on %d session(s), tested on %d; log-likelihood %s, perplexity %s",
				res.ModelName, len(res.Split.Train), len(res.Split.Test),
				internal.FormatFloat(res.Record.LogLikelihoodTest), internal.FormatFloat(res.Record.PerplexityTest),
			))
		}

		return errors.Join(errs...)
	},
}

// loadRunConfig merges the config file, environment, positionals and flags
func loadRunConfig(cmd *cobra.Command, paths []string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cfg.ResourcePath, cfg.OutputPath, cfg.SearchLogFile = paths[0], paths[1], paths[2]

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.SessionLimit = sessionLimit
	}
	if flags.Changed("em-iterations") {
		cfg.EMIterations = emIterations
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = noCache
	}
	if flags.Changed("ledger-db") {
		cfg.LedgerDB = ledgerDB
	}
	if cfg.Verbose {
		internal.SetVerbose(true)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newParser(cfg *config.Config) internal.Parser {
	var parser internal.Parser = internal.NewYandexParser()
	if cfg.NoCache {
		return parser
	}

	cacheManager := internal.NewCacheManager(cfg.CacheDir)
	internal.LogDebug("Using session cache in %s", cacheManager.GetCacheDir())
	if clearCache {
		if err := cacheManager.ClearCache(); err != nil {
			internal.LogWarn("Failed to clear cache: %v", err)
		} else {
			internal.LogInfo("Cache cleared")
		}
	}
	return internal.NewCachingParser(parser, cacheManager)
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 0, "Maximum number of sessions to parse (0 = all)")
	runCmd.Flags().IntVar(&emIterations, "em-iterations", config.DefaultEMIterations, "EM passes for PBM, UBM, DBN and CCM")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "Parse the log without the session cache")
	runCmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Clear the session cache before running")
	runCmd.Flags().StringVar(&ledgerDB, "ledger-db", "", "Also record results in this SQLite database")
}
