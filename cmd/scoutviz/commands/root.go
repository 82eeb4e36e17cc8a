package commands

import (
	"fmt"

	"scoutviz/internal/config"
	"scoutviz/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	noLog   bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "scoutviz",
	Short: "Scouting analytics core: weight allocation, chart resolution and option grouping",
	Long: `scoutviz holds the logic behind the scouting dashboard: similarity-search weights that
always sum to 100, resolution of backend analytics payloads into chart configurations,
and grouping of ML feature names into labelled categories.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Console-only logging first so config loading can report problems.
		if err := logging.Init(logging.Options{Verbose: verbose}); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if !noLog {
			if err := logging.Init(logging.Options{Verbose: verbose, LogDir: cfg.LogDir}); err != nil {
				return err
			}
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("profile", cfg.ProfilePath).
			Msg("scoutviz starting")
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noLog, "no-log-file", false, "log to stderr only")

	rootCmd.AddCommand(newWeightsCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newServeCmd())
}
