package cli

import (
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"wikiqa/internal/usecase"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the vector index from stored articles",
	Long: `Encode every stored article and build the similarity index. The index
and its metadata are published atomically under the configured prefix,
so queries against a previous build keep working until the new pair is
in place.

Examples:
  wikiqa build`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	embedder, err := newEmbedder()
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	uc := usecase.NewBuildUseCase(st, embedder, cfg.Embedding.BatchSize)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	progress := func(done, total int) {
		barMu.Lock()
		defer barMu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Encoding"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	fmt.Printf("Building index with model %s...\n", embedder.ModelName())
	result, err := uc.Build(cfg.Index.Prefix, progress)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("\nBuild complete:\n")
	fmt.Printf("  Vectors indexed:  %d (dimension %d)\n", result.Indexed, result.Dimension)
	fmt.Printf("  Articles skipped: %d (empty content)\n", result.Skipped)
	if result.Failed > 0 {
		fmt.Printf("  Encode failures:  %d (dropped)\n", result.Failed)
	}
	fmt.Printf("\nIndex stored at: %s\n", cfg.Index.Prefix)
	return nil
}
