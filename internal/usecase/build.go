package usecase

import (
	"fmt"
	"log"

	"wikiqa/internal/index"
	"wikiqa/internal/port"
)

// BuildUseCase turns the article store into a persisted vector index
// plus its position-aligned metadata table.
type BuildUseCase struct {
	store     port.ArticleStore
	embedder  port.Embedder
	batchSize int
}

// NewBuildUseCase creates a build use case.
func NewBuildUseCase(store port.ArticleStore, embedder port.Embedder, batchSize int) *BuildUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BuildUseCase{
		store:     store,
		embedder:  embedder,
		batchSize: batchSize,
	}
}

// BuildResult summarizes one build run.
type BuildResult struct {
	Indexed   int
	Skipped   int // empty content
	Failed    int // encoder failures
	Dimension int
}

// Build encodes every non-empty article and publishes the index and
// metadata artifacts under prefix. Vectors and metadata records are
// appended in the same store iteration order; nothing is published
// unless the whole build succeeds. The optional progress callback is
// invoked after each article is encoded.
func (u *BuildUseCase) Build(prefix string, progress func(done, total int)) (*BuildResult, error) {
	articles, err := u.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	result := &BuildResult{Dimension: u.embedder.Dimension()}

	type pending struct {
		id      string
		content string
	}
	work := make([]pending, 0, len(articles))
	for _, a := range articles {
		if a.Content == "" {
			log.Printf("warn: skipping article with empty content: %s", a.ID)
			result.Skipped++
			continue
		}
		work = append(work, pending{id: a.ID, content: a.Content})
	}

	idx, err := index.New(u.embedder.Dimension())
	if err != nil {
		return nil, err
	}
	var meta []index.MetaRecord

	done := 0
	for start := 0; start < len(work); start += u.batchSize {
		end := start + u.batchSize
		if end > len(work) {
			end = len(work)
		}
		batch := work[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.content
		}

		vecs, err := u.embedder.Embed(texts)
		if err != nil {
			// Retry one by one so a single bad document cannot sink
			// the whole batch.
			log.Printf("warn: batch encode failed, retrying per document: %v", err)
			vecs = u.embedSingly(texts, &result.Failed)
		}
		if len(vecs) != len(batch) {
			return nil, fmt.Errorf("encoder returned %d vectors for %d documents", len(vecs), len(batch))
		}

		for i, vec := range vecs {
			done++
			if progress != nil {
				progress(done, len(work))
			}
			if vec == nil {
				continue
			}
			index.Normalize(vec)
			if err := idx.Add(vec); err != nil {
				return nil, fmt.Errorf("failed to add vector for article %s: %w", batch[i].id, err)
			}
			meta = append(meta, index.MetaRecord{ID: batch[i].id})
			result.Indexed++
		}
	}

	if len(work) > 0 && result.Indexed == 0 {
		return nil, fmt.Errorf("failed to encode any of %d documents", len(work))
	}

	if err := index.Save(idx, meta, prefix); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}
	return result, nil
}

// embedSingly encodes texts one at a time, leaving a nil slot (and a
// warning) for documents the encoder rejects.
func (u *BuildUseCase) embedSingly(texts []string, failed *int) [][]float32 {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		single, err := u.embedder.Embed([]string{text})
		if err != nil || len(single) == 0 {
			log.Printf("warn: dropping document that failed to encode: %v", err)
			*failed++
			continue
		}
		vecs[i] = single[0]
	}
	return vecs
}
