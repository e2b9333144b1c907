package retriever

import (
	"math"
	"testing"

	"wikiqa/internal/index"
)

func TestRescoreFiltersSentinel(t *testing.T) {
	idx, _ := index.New(2)
	idx.Add([]float32{1, 0})

	hits := []index.Hit{
		{Position: 0, Score: 0.5},
		{Position: index.NoMatch, Score: math.Inf(-1)},
		{Position: index.NoMatch, Score: math.Inf(-1)},
	}

	got := Rescore(hits, []float32{1, 0}, idx)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Position != 0 {
		t.Errorf("expected position 0, got %d", got[0].Position)
	}
}

func TestRescoreDropsUnreconstructible(t *testing.T) {
	idx, _ := index.New(2)
	idx.Add([]float32{1, 0})

	// Position 5 does not exist; stale metadata must not be fatal.
	hits := []index.Hit{
		{Position: 5, Score: 0.9},
		{Position: 0, Score: 0.5},
	}

	got := Rescore(hits, []float32{1, 0}, idx)
	if len(got) != 1 || got[0].Position != 0 {
		t.Errorf("expected only position 0 to survive, got %+v", got)
	}
}

func TestRescoreIgnoresIndexScores(t *testing.T) {
	idx, _ := index.New(2)
	idx.Add([]float32{1, 0})
	idx.Add([]float32{0, 1})

	// The index claims position 1 is better; rescoring against the
	// query must overturn that.
	hits := []index.Hit{
		{Position: 1, Score: 0.99},
		{Position: 0, Score: 0.01},
	}

	got := Rescore(hits, []float32{1, 0}, idx)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Position != 0 {
		t.Errorf("expected position 0 first after rescoring, got %d", got[0].Position)
	}
	if got[0].Score < got[1].Score {
		t.Error("candidates not sorted by descending score")
	}
}

func TestRescoreNormalizesStoredVectors(t *testing.T) {
	idx, _ := index.New(2)
	// Deliberately unnormalized stored vector.
	idx.Add([]float32{10, 0})

	got := Rescore([]index.Hit{{Position: 0}}, []float32{1, 0}, idx)
	if len(got) != 1 {
		t.Fatal("expected 1 candidate")
	}
	if math.Abs(got[0].Score-1.0) > 1e-5 {
		t.Errorf("expected cosine 1.0 after defensive normalization, got %f", got[0].Score)
	}
}

func TestRescoreStableForTies(t *testing.T) {
	idx, _ := index.New(2)
	idx.Add([]float32{0, 1})
	idx.Add([]float32{0, 1})

	hits := []index.Hit{
		{Position: 1},
		{Position: 0},
	}

	got := Rescore(hits, []float32{0, 1}, idx)
	if len(got) != 2 {
		t.Fatal("expected 2 candidates")
	}
	// Equal scores keep encounter order: 1 was seen first.
	if got[0].Position != 1 || got[1].Position != 0 {
		t.Errorf("tie order not preserved: %+v", got)
	}
}

func TestRescoreEmpty(t *testing.T) {
	idx, _ := index.New(2)
	got := Rescore(nil, []float32{1, 0}, idx)
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}
