// Package main implements the health check CLI command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd probes the API and AI service health endpoints
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API and AI service health",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	c := newClient()

	api, err := c.System().Health(cmd.Context())
	if err != nil {
		fmt.Printf("  %-12s unreachable (%v)\n", "api", err)
	} else {
		fmt.Printf("  %-12s %s", "api", api.Status)
		if api.Version != "" {
			fmt.Printf("  v%s", api.Version)
		}
		fmt.Println()
	}

	ai, err := c.System().AIHealth(cmd.Context())
	if err != nil {
		fmt.Printf("  %-12s unreachable (%v)\n", "ai", err)
		return nil
	}
	fmt.Printf("  %-12s %s\n", "ai", ai.Status)
	return nil
}
