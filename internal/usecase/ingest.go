package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"wikiqa/internal/adapter/fs"
	"wikiqa/internal/domain"
	"wikiqa/internal/port"
)

// IngestUseCase loads crawled article JSON files into the article store.
type IngestUseCase struct {
	store  port.ArticleStore
	walker *fs.Walker
}

// NewIngestUseCase creates an ingest use case.
func NewIngestUseCase(store port.ArticleStore, walker *fs.Walker) *IngestUseCase {
	return &IngestUseCase{
		store:  store,
		walker: walker,
	}
}

// IngestResult summarizes one ingest run.
type IngestResult struct {
	Ingested int
	Skipped  int
	Errors   []string
}

// crawledArticle is the on-disk shape produced by the crawler: one JSON
// object, or an array of them, per file.
type crawledArticle struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Ingest walks root for article files and upserts their records.
// Records missing a title, URL, or content are skipped with a warning.
// The article ID is derived from the URL, so re-ingesting a URL
// replaces the previous record.
func (u *IngestUseCase) Ingest(root string) (*IngestResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &IngestResult{}
	for _, path := range files {
		if err := u.ingestFile(path, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
		}
	}
	return result, nil
}

func (u *IngestUseCase) ingestFile(path string, result *IngestResult) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	records, err := decodeArticles(data)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Title == "" || rec.URL == "" || rec.Content == "" {
			log.Printf("warn: skipping record with missing required field in %s", path)
			result.Skipped++
			continue
		}
		article := domain.Article{
			ID:      ArticleID(rec.URL),
			Title:   rec.Title,
			URL:     rec.URL,
			Author:  rec.Author,
			Date:    rec.Date,
			Content: rec.Content,
		}
		if err := u.store.Put(article); err != nil {
			return fmt.Errorf("failed to store %s: %w", rec.URL, err)
		}
		result.Ingested++
	}
	return nil
}

// decodeArticles accepts a single JSON object or an array of objects.
func decodeArticles(data []byte) ([]crawledArticle, error) {
	var many []crawledArticle
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one crawledArticle
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("not an article object or array: %w", err)
	}
	return []crawledArticle{one}, nil
}

// ArticleID derives a stable identifier from an article URL.
func ArticleID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:8])
}
