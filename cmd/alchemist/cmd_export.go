// Package main implements the export CLI command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alchemist/internal/client"
)

var (
	exportAll    bool
	exportOutput string
)

// exportCmd downloads the cleaned data package
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download cleaned data as a spreadsheet package",
	Long: `Exports either one entity's records or, with --all, the full
package of cleaned data plus the rules configuration.`,
	Example: `  alchemist export --entity tasks -o tasks.xlsx
  alchemist export --all -o package.zip`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&dataEntity, "entity", "e", "clients", "Entity type to export")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export everything including rules")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (required)")
	_ = exportCmd.MarkFlagRequired("output")
}

func runExport(cmd *cobra.Command, args []string) error {
	out, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOutput, err)
	}
	defer out.Close()

	c := newClient()
	if exportAll {
		err = c.Data().Export(cmd.Context(), client.ExportConfig{
			Entities:     nil, // all
			IncludeRules: true,
		}, out)
	} else {
		entity, perr := parseEntity()
		if perr != nil {
			return perr
		}
		err = c.Data().ExportEntity(cmd.Context(), entity, out)
	}
	if err != nil {
		os.Remove(exportOutput)
		return fmt.Errorf("export failed: %w", err)
	}

	info, _ := out.Stat()
	if info != nil {
		fmt.Printf("Wrote %s (%d bytes)\n", exportOutput, info.Size())
	} else {
		fmt.Printf("Wrote %s\n", exportOutput)
	}
	return nil
}
