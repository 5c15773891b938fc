// Package main implements the validation CLI commands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alchemist/internal/client"
	"alchemist/internal/types"
)

var validateCache bool

// validateCmd runs the full validation pass
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the platform's validation pass over all ingested data",
	RunE:  runValidate,
}

var validateSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the cached validation summary",
	RunE:  runValidateSummary,
}

func init() {
	validateCmd.Flags().BoolVar(&validateCache, "cache", true, "Let the backend cache the results")
	validateCmd.AddCommand(validateSummaryCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	c := newClient()
	report, err := c.System().Validate(cmd.Context(), client.ValidateOptions{CacheResults: validateCache})
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Println(report.String())
	if len(report.Errors) == 0 {
		return nil
	}
	fmt.Println(strings.Repeat("─", 60))
	for _, e := range report.Errors {
		sev := e.Severity
		if sev == "" {
			sev = "error"
		}
		fmt.Printf("  [%s] %-14s %-12s %s\n", sev, e.ID, e.Field, e.Message)
	}
	fmt.Println("\nUse 'alchemist fix suggest' to request AI corrections.")
	return nil
}

func runValidateSummary(cmd *cobra.Command, args []string) error {
	c := newClient()
	summary, err := c.System().ValidationSummary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch validation summary: %w", err)
	}

	fmt.Println("Validation summary")
	fmt.Println(strings.Repeat("─", 30))
	fmt.Printf("  %-14s %d\n", "total errors", summary.TotalErrors)
	for _, entity := range types.Entities {
		fmt.Printf("  %-14s %d\n", entity, summary.ByEntity[string(entity)])
	}
	return nil
}
