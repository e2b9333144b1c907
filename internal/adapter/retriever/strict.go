package retriever

import (
	"fmt"
	"log"

	"wikiqa/internal/domain"
	"wikiqa/internal/index"
	"wikiqa/internal/port"
)

// StrictRetriever answers queries only from indexed article content:
// search the vector index, re-score candidates against the query, then
// resolve the best ones to stored articles.
type StrictRetriever struct {
	idx      *index.Flat
	meta     []index.MetaRecord
	embedder port.Embedder
	articles port.ArticleStore

	searchK      int
	topK         int
	excerptChars int
}

// Options tunes a StrictRetriever. Zero values select the defaults
// used by the original pipeline (7 candidates, 3 passages, 2000 runes).
type Options struct {
	SearchK      int
	TopK         int
	ExcerptChars int
}

// NewStrictRetriever wires a retriever over a loaded index/metadata
// pair. The pair must come from one build generation: Load enforces
// their alignment.
func NewStrictRetriever(idx *index.Flat, meta []index.MetaRecord, embedder port.Embedder, articles port.ArticleStore, opts Options) (*StrictRetriever, error) {
	if idx.Count() != len(meta) {
		return nil, fmt.Errorf("index/metadata mismatch: %d vectors, %d metadata records", idx.Count(), len(meta))
	}
	if embedder.Dimension() != idx.Dimension() {
		return nil, fmt.Errorf("embedder dimension %d does not match index dimension %d", embedder.Dimension(), idx.Dimension())
	}
	if opts.SearchK <= 0 {
		opts.SearchK = 7
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.ExcerptChars <= 0 {
		opts.ExcerptChars = 2000
	}

	return &StrictRetriever{
		idx:          idx,
		meta:         meta,
		embedder:     embedder,
		articles:     articles,
		searchK:      opts.SearchK,
		topK:         opts.TopK,
		excerptChars: opts.ExcerptChars,
	}, nil
}

// Retrieve returns up to topK passages ranked by re-scored similarity.
// Candidates that cannot be reconstructed or resolved are dropped, not
// fatal; an empty result means the knowledge base has nothing relevant.
func (r *StrictRetriever) Retrieve(query string) ([]domain.Passage, error) {
	embeddings, err := r.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	queryVec := embeddings[0]
	index.Normalize(queryVec)

	hits, err := r.idx.Search(queryVec, r.searchK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	candidates := Rescore(hits, queryVec, r.idx)
	if len(candidates) == 0 {
		return nil, nil
	}

	if len(candidates) > r.topK {
		candidates = candidates[:r.topK]
	}

	passages := make([]domain.Passage, 0, len(candidates))
	for _, c := range candidates {
		id := r.meta[c.Position].ID
		article, ok, err := r.articles.Get(id)
		if err != nil {
			log.Printf("warn: failed to resolve article %s: %v", id, err)
			continue
		}
		if !ok {
			log.Printf("warn: article not found for index position %d: %s", c.Position, id)
			continue
		}
		passages = append(passages, domain.Passage{
			Score:   c.Score,
			Excerpt: domain.TruncateRunes(article.Content, r.excerptChars),
		})
	}

	return passages, nil
}
