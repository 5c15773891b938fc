// Package main implements the spreadsheet upload CLI commands.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alchemist/cmd/alchemist/ui"
	"alchemist/internal/types"
)

var uploadWatch bool

// uploadCmd uploads a spreadsheet for one entity type
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a client/worker/task spreadsheet",
	Long: `Uploads a CSV or XLSX spreadsheet for ingestion. The entity type
defaults from the file name (clients.csv, workers.xlsx, ...) and can be
forced with --entity.

With --watch, keeps running and re-uploads whenever the file changes.`,
	Example: `  alchemist upload data/clients.csv
  alchemist upload staff.xlsx --entity workers --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var uploadStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the backend has ingested",
	RunE:  runUploadStatus,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWatch, "watch", "w", false, "Re-upload on file change")
	uploadCmd.Flags().StringVarP(&dataEntity, "entity", "e", "clients", "Entity type: clients, workers or tasks")
	uploadCmd.AddCommand(uploadStatusCmd)
}

// guessEntity infers the entity type from the file name.
func guessEntity(path string) (types.EntityType, bool) {
	base := strings.ToLower(filepath.Base(path))
	for _, e := range types.Entities {
		if strings.Contains(base, string(e)) {
			return e, true
		}
	}
	return "", false
}

func uploadOnce(cmd *cobra.Command, entity types.EntityType, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	c := newClient()
	result, err := c.Upload().Upload(cmd.Context(), entity, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	fmt.Printf("Uploaded %s as %s (%d rows processed)\n", path, entity, result.Processed[string(entity)])
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	entity, err := parseEntity()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("entity") {
		if guessed, ok := guessEntity(path); ok {
			entity = guessed
		}
	}

	if err := uploadOnce(cmd, entity, path); err != nil {
		return err
	}
	if !uploadWatch {
		return nil
	}
	return watchAndUpload(cmd, entity, path)
}

// watchAndUpload re-uploads the file on change until interrupted. Editors
// fire several events per save, so uploads go through a debouncer.
func watchAndUpload(cmd *cobra.Command, entity types.EntityType, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors rename over the file, which drops a
	// direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	debounce := ui.NewDebouncer(ui.FilterDebounce)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Watching %s, ctrl+c to stop\n", path)
	target := filepath.Clean(path)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Debounce(func() {
				if err := uploadOnce(cmd, entity, path); err != nil {
					logger.Warn("re-upload failed", zap.Error(err))
					fmt.Fprintln(os.Stderr, err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-sigCh:
			debounce.Cancel()
			fmt.Println("\nStopped watching")
			return nil
		case <-cmd.Context().Done():
			debounce.Cancel()
			return nil
		}
	}
}

func runUploadStatus(cmd *cobra.Command, args []string) error {
	c := newClient()
	files, err := c.Upload().Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch upload status: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No data uploaded yet.")
		return nil
	}
	fmt.Println("Ingested files")
	fmt.Println(strings.Repeat("─", 50))
	for _, f := range files {
		fmt.Printf("  %-24s %-10s %3d%%", f.Name, f.Status, f.Progress)
		if f.RowCount > 0 {
			fmt.Printf("  %d rows", f.RowCount)
		}
		fmt.Println()
	}
	return nil
}
