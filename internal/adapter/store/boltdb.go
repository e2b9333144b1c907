package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"wikiqa/internal/domain"
)

var bucketArticles = []byte("articles")

// BoltStore persists articles in a BoltDB file, keyed by article ID.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) an article store at the given path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArticles)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create articles bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Put(article domain.Article) error {
	if article.ID == "" {
		return fmt.Errorf("article has no ID")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(article)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketArticles).Put([]byte(article.ID), data)
	})
}

func (s *BoltStore) Get(id string) (domain.Article, bool, error) {
	var article domain.Article
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketArticles).Get([]byte(id))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &article); err != nil {
			return fmt.Errorf("corrupt article record %s: %w", id, err)
		}
		found = true
		return nil
	})
	return article, found, err
}

// List returns all articles in key order. Bolt iterates keys
// byte-sorted, which gives the builder its stable iteration order.
func (s *BoltStore) List() ([]domain.Article, error) {
	var articles []domain.Article
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArticles).ForEach(func(k, v []byte) error {
			var article domain.Article
			if err := json.Unmarshal(v, &article); err != nil {
				return fmt.Errorf("corrupt article record %s: %w", k, err)
			}
			articles = append(articles, article)
			return nil
		})
	})
	return articles, err
}

func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketArticles).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
