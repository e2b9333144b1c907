package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"wikiqa/internal/adapter/fs"
	"wikiqa/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Load crawled article JSON files into the store",
	Long: `Load crawled article files (one JSON object or array per file) into
the article store. Articles are keyed by URL, so re-ingesting the same
URL replaces the previous record.

Examples:
  wikiqa ingest ./crawled`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	uc := usecase.NewIngestUseCase(st, walker)

	fmt.Printf("Scanning %s...\n", path)
	result, err := uc.Ingest(path)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Articles stored:  %d\n", result.Ingested)
	fmt.Printf("  Records skipped:  %d (missing fields)\n", result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	total, _ := st.Count()
	fmt.Printf("\nStore now holds %d articles at %s\n", total, cfg.Store.Path)
	return nil
}
