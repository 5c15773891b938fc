// Package main implements the interactive TUI launcher.
package main

import (
	"github.com/spf13/cobra"

	"alchemist/cmd/alchemist/ui"
	"alchemist/internal/client"
	"alchemist/internal/notify"
)

// browseCmd launches the interactive terminal interface
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive data browser",
	Long: `Opens the full-screen terminal interface: entity browser, rule
builder, validation/fix view and upload status, switched with 1-4.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Toasts would corrupt the alternate screen; pages render errors
	// inline instead.
	api := client.New(cfg.API.BaseURL,
		client.WithToken(cfg.API.Token),
		client.WithNotifier(notify.Silent{}),
		client.WithLogger(logger),
		client.WithTimeouts(cfg.ShortTimeout(), cfg.DefaultTimeout(), cfg.LongTimeout()),
		client.WithQuietPaths(cfg.Notifications.QuietPaths),
	)
	styles := ui.NewStyles(ui.ThemeByName(cfg.Output.Theme))
	return ui.Run(api, styles)
}
