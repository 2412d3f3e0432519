package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"optionscout/internal/analysis"
	"optionscout/internal/config"
	"optionscout/internal/logging"
	"optionscout/internal/nse"
	"optionscout/internal/pipeline"
	"optionscout/internal/sentiment"
	"optionscout/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    *store.SQLiteStore
	Pipeline *pipeline.Pipeline
}

// NewRootCmd creates the root command and wires the application. The
// NSE client is required by every command, so a wiring failure there is
// fatal. A missing store only disables the journal and symbol cache.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	client, err := nse.NewClient(cfg.NSE, logger)
	if err != nil {
		return nil, err
	}

	dataStore, err := store.NewSQLiteStore(config.DefaultDBPath())
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal and symbol cache are unavailable")
	} else {
		app.Store = dataStore
	}

	var classifier analysis.Classifier = sentiment.NewKeywordClassifier()
	if cfg.Analysis.UseLLMSentiment && cfg.Credentials.OpenAI.APIKey != "" {
		classifier = sentiment.NewLLMClassifier(cfg.Credentials.OpenAI.APIKey, cfg.Credentials.OpenAI.Model, logger)
		logger.Debug().Str("model", cfg.Credentials.OpenAI.Model).Msg("LLM sentiment classifier initialized")
	}

	engine := analysis.NewEngine(logger, classifier, sentiment.NewWeightedAggregator(), cfg.Analysis.MaxNewsItems)
	app.Pipeline = pipeline.New(client, engine, classifier, app.Store,
		cfg.Analysis, cfg.NSE.SymbolCacheTTL, logger)

	rootCmd := &cobra.Command{
		Use:   "optionscout",
		Short: "NSE option-chain analyzer and trade scorer",
		Long: `optionscout analyzes NSE option chains and scores trade candidates.

It fetches live option chains, volume flow, and news from the NSE website,
classifies sentiment, and recommends the highest-scored trade aligned with
market direction. Chains can also be analyzed from downloaded CSV files.

Use 'optionscout help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/optionscout)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addAnalysisCommands(rootCmd, app)
	addMarketDataCommands(rootCmd, app)
	addJournalCommands(rootCmd, app)
	addServerCommands(rootCmd, app)
	addVersionCommand(rootCmd)

	return rootCmd, nil
}
