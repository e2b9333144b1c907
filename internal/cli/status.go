package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"wikiqa/internal/index"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store and index state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	articles, err := st.Count()
	if err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	fmt.Printf("Article store: %s (%d articles)\n", cfg.Store.Path, articles)

	idx, meta, err := index.Load(cfg.Index.Prefix)
	if err != nil {
		fmt.Printf("Vector index:  not built (%v)\n", err)
		return nil
	}
	fmt.Printf("Vector index:  %s (%d vectors, dimension %d, %d metadata records)\n",
		cfg.Index.Prefix, idx.Count(), idx.Dimension(), len(meta))
	return nil
}
