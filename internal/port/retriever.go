package port

import "wikiqa/internal/domain"

// Retriever finds the passages most relevant to a query.
type Retriever interface {
	// Retrieve returns ranked passages for the query, best first.
	// An empty result is a valid outcome, not an error.
	Retrieve(query string) ([]domain.Passage, error)
}
