package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"alchemist/internal/client"
	"alchemist/internal/config"
	"alchemist/internal/notify"
)

var (
	// Global flags
	verbose  bool
	baseURL  string
	token    string
	cfgPath  string
	quietOut bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "alchemist",
	Short: "Data Alchemist - resource-allocation data client",
	Long: `alchemist is the terminal client for the Data Alchemist
resource-allocation platform.

It uploads client/worker/task spreadsheets, browses and edits the
ingested records, assembles allocation rules and priority weights, and
drives the platform's validation and AI assistance endpoints.

Run 'alchemist browse' for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseURL != "" {
			cfg.API.BaseURL = baseURL
		}
		if token != "" {
			cfg.API.Token = token
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (or set ALCHEMIST_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default ~/.alchemist/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quietOut, "quiet", "q", false, "Suppress error toasts")

	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds the API client from the resolved configuration.
func newClient() *client.Client {
	var notifier notify.Notifier = notify.NewTerminal(os.Stderr)
	if quietOut {
		notifier = notify.Silent{}
	}
	return client.New(cfg.API.BaseURL,
		client.WithToken(cfg.API.Token),
		client.WithNotifier(notifier),
		client.WithLogger(logger),
		client.WithTimeouts(cfg.ShortTimeout(), cfg.DefaultTimeout(), cfg.LongTimeout()),
		client.WithQuietPaths(cfg.Notifications.QuietPaths),
	)
}
