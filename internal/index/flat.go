package index

import (
	"fmt"
	"math"
	"sort"
)

// NoMatch is the position reported for search slots that have no
// corresponding vector, i.e. when the index holds fewer than k vectors.
const NoMatch = -1

// Hit is one search result slot: a vector position and its inner-product
// score against the query. Position is NoMatch for padding slots.
type Hit struct {
	Position int
	Score    float64
}

// Flat is a brute-force inner-product index over unit-normalized vectors.
// Vectors are append-only during a build and read-only afterwards, so
// concurrent searches need no locking.
type Flat struct {
	dim  int
	data []float32 // row-major, count*dim
}

// New creates an empty index for vectors of the given dimension.
func New(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Dimension returns the vector dimension.
func (f *Flat) Dimension() int { return f.dim }

// Count returns the number of stored vectors.
func (f *Flat) Count() int { return len(f.data) / f.dim }

// Add appends a vector to the index. The caller is responsible for
// normalizing it first; scores are only cosine similarities when every
// stored vector and the query are unit length.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("vector dimension mismatch: expected %d, got %d", f.dim, len(vec))
	}
	f.data = append(f.data, vec...)
	return nil
}

// Search returns exactly k hits ordered by descending inner product
// against the query, ties broken by lower position. When the index holds
// fewer than k vectors the tail slots carry Position NoMatch.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", f.dim, len(query))
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}

	n := f.Count()
	hits := make([]Hit, 0, n)
	for i := 0; i < n; i++ {
		row := f.data[i*f.dim : (i+1)*f.dim]
		hits = append(hits, Hit{Position: i, Score: Dot(query, row)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	for len(hits) < k {
		hits = append(hits, Hit{Position: NoMatch, Score: math.Inf(-1)})
	}
	return hits, nil
}

// Reconstruct returns a copy of the stored vector at the given position.
func (f *Flat) Reconstruct(position int) ([]float32, error) {
	if position < 0 || position >= f.Count() {
		return nil, fmt.Errorf("position out of range: %d (have %d vectors)", position, f.Count())
	}
	out := make([]float32, f.dim)
	copy(out, f.data[position*f.dim:(position+1)*f.dim])
	return out, nil
}

// Dot returns the inner product of two equal-length vectors.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Normalize scales vec to unit L2 length in place. Zero vectors are
// left untouched.
func Normalize(vec []float32) {
	var sq float64
	for _, v := range vec {
		sq += float64(v) * float64(v)
	}
	if sq == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sq)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
}

// NormalizeBatch normalizes every vector in place.
func NormalizeBatch(vecs [][]float32) {
	for _, v := range vecs {
		Normalize(v)
	}
}
