// Package main implements the data browsing CLI commands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"alchemist/cmd/alchemist/ui"
	"alchemist/internal/client"
	"alchemist/internal/types"
)

var (
	dataEntity  string
	dataPage    int
	dataLimit   int
	dataFilters []string
)

// dataCmd groups the record browsing commands
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Browse and edit ingested records",
	Long: `List, inspect, edit and delete the client/worker/task records the
platform has ingested from uploaded spreadsheets.`,
}

var dataListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records of one entity type",
	Example: `  alchemist data list --entity tasks
  alchemist data list --entity workers --filter availability=available --page 2`,
	RunE: runDataList,
}

var dataGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataGet,
}

var dataUpdateCmd = &cobra.Command{
	Use:   "update <id> <field=value>...",
	Short: "Patch fields of one record",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDataUpdate,
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataDelete,
}

var dataSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show record counts per entity",
	RunE:  runDataSummary,
}

func init() {
	dataCmd.PersistentFlags().StringVarP(&dataEntity, "entity", "e", "clients", "Entity type: clients, workers or tasks")
	dataListCmd.Flags().IntVar(&dataPage, "page", 1, "Page number")
	dataListCmd.Flags().IntVar(&dataLimit, "limit", 0, "Page size (default from config)")
	dataListCmd.Flags().StringSliceVarP(&dataFilters, "filter", "f", nil, "Filter as field=value, repeatable")

	dataCmd.AddCommand(dataListCmd)
	dataCmd.AddCommand(dataGetCmd)
	dataCmd.AddCommand(dataUpdateCmd)
	dataCmd.AddCommand(dataDeleteCmd)
	dataCmd.AddCommand(dataSummaryCmd)
}

// parseEntity validates the --entity flag.
func parseEntity() (types.EntityType, error) {
	e := types.EntityType(strings.ToLower(dataEntity))
	if !types.ValidEntity(e) {
		return "", fmt.Errorf("unknown entity %q, want one of clients, workers, tasks", dataEntity)
	}
	return e, nil
}

// parsePairs splits field=value arguments into a patch map, guessing
// numeric values.
func parsePairs(args []string) (map[string]any, error) {
	patch := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			patch[key] = n
		} else {
			patch[key] = value
		}
	}
	return patch, nil
}

func runDataList(cmd *cobra.Command, args []string) error {
	entity, err := parseEntity()
	if err != nil {
		return err
	}
	limit := dataLimit
	if limit <= 0 {
		limit = cfg.Output.PageLimit
	}
	filters := make(map[string]string, len(dataFilters))
	for _, f := range dataFilters {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("expected field=value filter, got %q", f)
		}
		filters[key] = value
	}

	c := newClient()
	page, err := c.Data().List(cmd.Context(), entity, client.ListQuery{
		Page:    dataPage,
		Limit:   limit,
		Filters: filters,
	})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", entity, err)
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Output.Theme))
	table := dataTable(entity, page.Items)
	table.WithPagination(page.Page, page.TotalPages, page.Total)
	fmt.Print(table.View(styles))
	return nil
}

// dataTable builds the per-entity listing table.
func dataTable(entity types.EntityType, recs []types.Record) *ui.DataTable {
	var fields []string
	switch entity {
	case types.EntityClients:
		fields = []string{"id", "name", "email", "priority", "status"}
	case types.EntityWorkers:
		fields = []string{"id", "name", "email", "skills", "hourlyRate", "availability"}
	default:
		fields = []string{"id", "title", "status", "priority", "clientId", "duration"}
	}

	name := string(entity)
	t := ui.NewDataTable(strings.ToUpper(name[:1])+name[1:], fields...)
	for _, rec := range recs {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = ui.CellValue(rec, f)
		}
		t.AddRow(row...)
	}
	return t
}

func runDataGet(cmd *cobra.Command, args []string) error {
	entity, err := parseEntity()
	if err != nil {
		return err
	}
	c := newClient()
	rec, err := c.Data().Get(cmd.Context(), entity, args[0])
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", entity, args[0], err)
	}
	for k, v := range rec {
		fmt.Printf("%-16s %v\n", k, v)
	}
	return nil
}

func runDataUpdate(cmd *cobra.Command, args []string) error {
	entity, err := parseEntity()
	if err != nil {
		return err
	}
	patch, err := parsePairs(args[1:])
	if err != nil {
		return err
	}
	c := newClient()
	rec, err := c.Data().Update(cmd.Context(), entity, args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", entity, args[0], err)
	}
	fmt.Printf("Updated %s/%s (%d fields)\n", entity, rec.ID(), len(patch))
	return nil
}

func runDataDelete(cmd *cobra.Command, args []string) error {
	entity, err := parseEntity()
	if err != nil {
		return err
	}
	c := newClient()
	if err := c.Data().Delete(cmd.Context(), entity, args[0]); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", entity, args[0], err)
	}
	fmt.Printf("Deleted %s/%s\n", entity, args[0])
	return nil
}

func runDataSummary(cmd *cobra.Command, args []string) error {
	c := newClient()
	counts, err := c.Data().Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch summary: %w", err)
	}
	fmt.Println("Ingested records")
	fmt.Println(strings.Repeat("─", 30))
	for _, entity := range types.Entities {
		fmt.Printf("  %-10s %d\n", entity, counts[entity])
	}
	return nil
}
