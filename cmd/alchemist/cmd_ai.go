// Package main implements the AI assistance CLI commands.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"alchemist/cmd/alchemist/ui"
)

// aiCmd groups the AI assistance commands
var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI assistance: chat, natural-language queries, insights, rule ideas",
	Long: `Talks to the platform's AI endpoints. These run against the long
request timeout; expect responses to take a while.`,
}

var aiChatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the data assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAIChat,
}

var aiQueryCmd = &cobra.Command{
	Use:     "query <question>",
	Short:   "Query records in natural language",
	Example: `  alchemist ai query "tasks longer than 3 phases with priority over 7"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAIQuery,
}

var aiInsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Summarize data quality and allocation readiness",
	RunE:  runAIInsights,
}

var aiRecommendCmd = &cobra.Command{
	Use:   "recommend-rule [hint]",
	Short: "Ask for allocation rule recommendations",
	RunE:  runAIRecommend,
}

func init() {
	aiCmd.AddCommand(aiChatCmd)
	aiCmd.AddCommand(aiQueryCmd)
	aiCmd.AddCommand(aiInsightsCmd)
	aiCmd.AddCommand(aiRecommendCmd)
}

// renderMarkdown renders AI output for the terminal, falling back to the
// raw text when the renderer fails.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func runAIChat(cmd *cobra.Command, args []string) error {
	c := newClient()
	reply, err := c.AI().Chat(cmd.Context(), strings.Join(args, " "), nil)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	fmt.Print(renderMarkdown(reply))
	return nil
}

func runAIQuery(cmd *cobra.Command, args []string) error {
	c := newClient()
	records, err := c.AI().Query(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No matching records.")
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Output.Theme))
	t := ui.NewDataTable("Matches", "id", "fields")
	for _, rec := range records {
		var parts []string
		for k, v := range rec {
			if k == "id" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		t.AddRow(rec.ID(), strings.Join(parts, " "))
	}
	fmt.Print(t.View(styles))
	return nil
}

func runAIInsights(cmd *cobra.Command, args []string) error {
	c := newClient()
	insights, err := c.AI().Insights(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch insights: %w", err)
	}
	if insights == "" {
		fmt.Println("No insights yet; upload some data first.")
		return nil
	}
	fmt.Print(renderMarkdown(insights))
	return nil
}

func runAIRecommend(cmd *cobra.Command, args []string) error {
	c := newClient()
	rules, err := c.AI().RecommendRules(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	if len(rules) == 0 {
		fmt.Println("No recommendations yet; upload some data first.")
		return nil
	}

	var md strings.Builder
	md.WriteString("# Recommended rules\n\n")
	for _, r := range rules {
		md.WriteString(fmt.Sprintf("## %s (%s)\n\n", r.Name, r.Type))
		if r.Description != "" {
			md.WriteString(r.Description + "\n\n")
		}
		md.WriteString(fmt.Sprintf("- condition: `%s`\n- action: `%s`\n\n", r.Condition, r.Action))
	}
	fmt.Print(renderMarkdown(md.String()))
	fmt.Println("Save one with: alchemist rules create")
	return nil
}
