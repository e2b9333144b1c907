package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the QA pipeline.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Index      IndexConfig      `yaml:"index"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
}

// StoreConfig holds article store configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// IndexConfig holds vector index configuration.
type IndexConfig struct {
	// Prefix names the persisted artifact pair:
	// <prefix>_content.index and <prefix>_metadata.json.
	Prefix string `yaml:"prefix"`
}

// IngestConfig holds article ingestion configuration.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "mock"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// GenerationConfig holds chat-completion configuration.
type GenerationConfig struct {
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	SearchK      int `yaml:"search_k"`      // candidates pulled from the index
	TopK         int `yaml:"top_k"`         // passages kept after re-scoring
	ExcerptChars int `yaml:"excerpt_chars"` // stored excerpt cut, in runes
	PromptChars  int `yaml:"prompt_chars"`  // per-passage prompt cut, in runes
	CacheSize    int `yaml:"cache_size"`
	CacheTTLSecs int `yaml:"cache_ttl_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "data/articles.db",
		},
		Index: IndexConfig{
			Prefix: "data/enhanced",
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.json"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			BaseURL:   "https://api.openai.com/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Generation: GenerationConfig{
			Model:          "xdeepseekr1",
			BaseURL:        "http://maas-api.cn-huabei-1.xf-yun.com/v1",
			APIKeyEnv:      "DEEPSEEK_API_KEY",
			TimeoutSeconds: 30,
		},
		Retrieve: RetrieveConfig{
			SearchK:      7,
			TopK:         3,
			ExcerptChars: 2000,
			PromptChars:  1000,
			CacheSize:    100,
			CacheTTLSecs: 300,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for wikiqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "wikiqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
