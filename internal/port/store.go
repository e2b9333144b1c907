package port

import "wikiqa/internal/domain"

// ArticleStore is a keyed collection of crawled articles.
type ArticleStore interface {
	// Put inserts or replaces an article by its ID.
	Put(article domain.Article) error

	// Get looks up an article by ID. Absence is reported through ok,
	// not an error.
	Get(id string) (article domain.Article, ok bool, err error)

	// List returns every stored article in ascending ID order.
	List() ([]domain.Article, error)

	// Count returns the number of stored articles.
	Count() (int, error)

	Close() error
}
