package cli

import (
	"log/slog"
	"os"

	"github.com/adrianmusante/subtitle-engine/internal/config"
	"github.com/adrianmusante/subtitle-engine/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        config.Config
)

// version and commit are set at build time via -ldflags.
// If left empty, they show as "dev".
var version = ""
var commit = ""

var rootCmd = &cobra.Command{
	Use:           "subtitle-engine",
	Short:         "Parse, inspect and render subtitle files synchronized to a playback clock",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Allow configuring verbosity and config path via env vars when
		// the flags aren't provided.
		if err := resolveBoolFlagFromEnv(cmd, flagVerbose, envVerbose); err != nil {
			return err
		}
		if err := resolveStringFlagFromEnv(cmd, flagConfig, envConfig); err != nil {
			return err
		}

		logger := logging.New(os.Stderr, logging.Level(verbose))
		slog.SetDefault(logger)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

		var err error
		cfg, err = config.Load(configPath)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand was passed, cobra will show help.
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already formatted errors; keep it simple.
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, flagVerbose, flagVerboseShorthand, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "Path to a config file")

	v := version
	if v == "" {
		v = "dev"
	}
	if commit != "" {
		rootCmd.Version = v + " (" + commit + ")"
	} else {
		rootCmd.Version = v
	}
	// Enable Cobra's built-in --version flag. This prints Version and exits.
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(cuesCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
}
