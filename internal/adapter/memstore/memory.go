package memstore

import (
	"sort"
	"sync"

	"wikiqa/internal/domain"
)

// MemoryStore is an in-memory ArticleStore used in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{articles: make(map[string]domain.Article)}
}

func (s *MemoryStore) Put(article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = article
	return nil
}

func (s *MemoryStore) Get(id string) (domain.Article, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	return article, ok, nil
}

func (s *MemoryStore) List() ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles, nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles), nil
}

func (s *MemoryStore) Close() error { return nil }

// Delete removes an article; tests use it to simulate resolution misses.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.articles, id)
}
