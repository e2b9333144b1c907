package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Retrieve.SearchK != 7 {
		t.Errorf("expected SearchK=7, got %d", cfg.Retrieve.SearchK)
	}
	if cfg.Retrieve.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Retrieve.ExcerptChars != 2000 {
		t.Errorf("expected ExcerptChars=2000, got %d", cfg.Retrieve.ExcerptChars)
	}
	if cfg.Retrieve.PromptChars != 1000 {
		t.Errorf("expected PromptChars=1000, got %d", cfg.Retrieve.PromptChars)
	}
	if cfg.Generation.TimeoutSeconds != 30 {
		t.Errorf("expected TimeoutSeconds=30, got %d", cfg.Generation.TimeoutSeconds)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "wikiqa.yaml")

	content := `
store:
  path: /tmp/articles.db
retrieve:
  search_k: 10
  top_k: 5
embedding:
  model: text-embedding-3-large
  dimension: 3072
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Path != "/tmp/articles.db" {
		t.Errorf("expected store path override, got %s", cfg.Store.Path)
	}
	if cfg.Retrieve.SearchK != 10 {
		t.Errorf("expected SearchK=10, got %d", cfg.Retrieve.SearchK)
	}
	if cfg.Retrieve.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Retrieve.TopK)
	}
	if cfg.Embedding.Dimension != 3072 {
		t.Errorf("expected Dimension=3072, got %d", cfg.Embedding.Dimension)
	}
	// Untouched sections keep their defaults.
	if cfg.Generation.TimeoutSeconds != 30 {
		t.Errorf("expected default TimeoutSeconds=30, got %d", cfg.Generation.TimeoutSeconds)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "wikiqa.yaml")

	content := `
index:
  prefix: /tmp/custom
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Index.Prefix != "/tmp/custom" {
		t.Errorf("expected prefix override, got %s", cfg.Index.Prefix)
	}

	cfg, err = LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Index.Prefix != "data/enhanced" {
		t.Errorf("expected default prefix, got %s", cfg.Index.Prefix)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "wikiqa.yaml")

	cfg := DefaultConfig()
	cfg.Retrieve.SearchK = 15
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Retrieve.SearchK != 15 {
		t.Errorf("expected SearchK=15 after round trip, got %d", loaded.Retrieve.SearchK)
	}
}
