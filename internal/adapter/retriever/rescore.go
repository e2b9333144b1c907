package retriever

import (
	"sort"

	"wikiqa/internal/domain"
	"wikiqa/internal/index"
)

// Rescore recomputes similarity for each search hit as the dot product
// between the normalized query vector and the reconstructed stored
// vector, independent of whatever score the index reported. Sentinel
// slots are filtered first; hits whose reconstruction fails are dropped.
// The result is sorted by recomputed score descending, stable so equal
// scores keep their encounter order.
func Rescore(hits []index.Hit, queryVec []float32, idx *index.Flat) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(hits))
	for _, hit := range hits {
		if hit.Position == index.NoMatch {
			continue
		}
		vec, err := idx.Reconstruct(hit.Position)
		if err != nil {
			continue
		}
		// Stored vectors should already be unit length; re-normalizing
		// keeps the score a true cosine even against a stale artifact.
		index.Normalize(vec)
		candidates = append(candidates, domain.Candidate{
			Position: hit.Position,
			Score:    index.Dot(vec, queryVec),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
