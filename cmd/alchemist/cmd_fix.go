// Package main implements the AI fix CLI commands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alchemist/internal/client"
)

var fixApplyAll bool

// fixCmd groups the AI error correction commands
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Request and apply AI corrections for validation errors",
}

var fixSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Run validation and show AI fix suggestions",
	RunE:  runFixSuggest,
}

var fixApplyCmd = &cobra.Command{
	Use:   "apply [rowId]",
	Short: "Apply one suggestion, or all with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFixApply,
}

func init() {
	fixApplyCmd.Flags().BoolVar(&fixApplyAll, "all", false, "Apply every suggestion")
	fixCmd.AddCommand(fixSuggestCmd)
	fixCmd.AddCommand(fixApplyCmd)
}

// newFixSession validates and reconciles AI suggestions against the
// findings.
func newFixSession(cmd *cobra.Command) (*client.FixSession, error) {
	c := newClient()
	report, err := c.System().Validate(cmd.Context(), client.ValidateOptions{CacheResults: true})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	session := client.NewFixSession(c.Data(), report.Errors)
	if len(report.Errors) == 0 {
		return session, nil
	}

	fixes, err := c.AI().FixErrors(cmd.Context(), session.Errors())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fix suggestions: %w", err)
	}
	session.Reconcile(fixes)
	return session, nil
}

func runFixSuggest(cmd *cobra.Command, args []string) error {
	session, err := newFixSession(cmd)
	if err != nil {
		return err
	}
	errs := session.Errors()
	if len(errs) == 0 {
		fmt.Println("No validation errors; nothing to fix.")
		return nil
	}

	fmt.Printf("%d validation errors, %d suggestions\n", len(errs), len(session.Fixes()))
	fmt.Println(strings.Repeat("─", 60))
	for _, f := range session.Fixes() {
		fmt.Printf("  %-14s %-12s -> %v", session.ResolveID(f), f.Field, f.SuggestedValue)
		if f.Confidence > 0 {
			fmt.Printf("  (%.0f%%)", f.Confidence*100)
		}
		fmt.Println()
		if f.Reason != "" {
			fmt.Printf("    %s\n", f.Reason)
		}
	}
	fmt.Println("\nApply with: alchemist fix apply <rowId>  (or --all)")
	return nil
}

func runFixApply(cmd *cobra.Command, args []string) error {
	if !fixApplyAll && len(args) == 0 {
		return fmt.Errorf("give a rowId or --all")
	}
	session, err := newFixSession(cmd)
	if err != nil {
		return err
	}
	fixes := session.Fixes()
	if len(fixes) == 0 {
		fmt.Println("No suggestions to apply.")
		return nil
	}

	applied := 0
	for _, f := range fixes {
		if !fixApplyAll && f.RowID != args[0] && session.ResolveID(f) != args[0] {
			continue
		}
		if err := session.Apply(cmd.Context(), f); err != nil {
			fmt.Printf("  skipped %s: %v\n", session.ResolveID(f), err)
			continue
		}
		fmt.Printf("  applied %s.%s = %v\n", session.ResolveID(f), f.Field, f.SuggestedValue)
		applied++
	}
	if applied == 0 {
		return fmt.Errorf("no suggestion matched")
	}
	fmt.Printf("Applied %d fixes, %d errors remain\n", applied, len(session.Errors()))
	return nil
}
