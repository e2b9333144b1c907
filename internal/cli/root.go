package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"wikiqa/config"
	"wikiqa/internal/adapter/embedding"
	"wikiqa/internal/adapter/llm"
	"wikiqa/internal/adapter/retriever"
	"wikiqa/internal/adapter/store"
	"wikiqa/internal/index"
	"wikiqa/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wikiqa",
	Short: "Question answering over crawled Wikipedia articles",
	Long: `wikiqa ingests crawled Chinese Wikipedia articles, builds a dense-vector
similarity index over their content, and answers questions strictly from
the most similar stored passages via a remote completion model.

Example usage:
  wikiqa ingest ./crawled        # Load crawled article JSON into the store
  wikiqa build                   # Build the vector index
  wikiqa ask -q "什么是机器学习"   # Ask a question
  wikiqa serve                   # Expose POST /qa over HTTP`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./wikiqa.yaml)")
}

func openStore() (*store.BoltStore, error) {
	st, err := store.NewBoltStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open article store %s: %w", cfg.Store.Path, err)
	}
	return st, nil
}

func newEmbedder() (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(embedding.Options{
			BaseURL:   cfg.Embedding.BaseURL,
			Model:     cfg.Embedding.Model,
			APIKeyEnv: cfg.Embedding.APIKeyEnv,
			Dimension: cfg.Embedding.Dimension,
			BatchSize: cfg.Embedding.BatchSize,
		})
	case "ollama":
		return embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

func newGenerator() (port.Generator, error) {
	return llm.NewChatClient(llm.Options{
		BaseURL:   cfg.Generation.BaseURL,
		Model:     cfg.Generation.Model,
		APIKeyEnv: cfg.Generation.APIKeyEnv,
		Timeout:   time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
	})
}

// loadRetriever opens the persisted index pair and wires the strict
// retriever over it. The store is returned so callers can close it.
func loadRetriever() (*retriever.StrictRetriever, *store.BoltStore, error) {
	idx, meta, err := index.Load(cfg.Index.Prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("no usable index at %s (run 'wikiqa build' first): %w", cfg.Index.Prefix, err)
	}

	embedder, err := newEmbedder()
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	r, err := retriever.NewStrictRetriever(idx, meta, embedder, st, retriever.Options{
		SearchK:      cfg.Retrieve.SearchK,
		TopK:         cfg.Retrieve.TopK,
		ExcerptChars: cfg.Retrieve.ExcerptChars,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return r, st, nil
}
