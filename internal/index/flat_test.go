package index

import (
	"math"
	"testing"
)

func TestSearchOrdering(t *testing.T) {
	f, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	// Unit vectors at increasing angles from the x axis.
	vecs := [][]float32{
		{1, 0},
		{0.8, 0.6},
		{0.6, 0.8},
		{0, 1},
	}
	for _, v := range vecs {
		if err := f.Add(v); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := f.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}

	wantOrder := []int{0, 1, 2}
	for i, want := range wantOrder {
		if hits[i].Position != want {
			t.Errorf("hit %d: expected position %d, got %d", i, want, hits[i].Position)
		}
	}
	for i := 0; i+1 < len(hits); i++ {
		if hits[i].Score < hits[i+1].Score {
			t.Errorf("scores not descending at %d: %f < %f", i, hits[i].Score, hits[i+1].Score)
		}
	}
}

func TestSearchTieBreaksByPosition(t *testing.T) {
	f, _ := New(2)
	// Identical vectors produce identical scores; lower position wins.
	for i := 0; i < 3; i++ {
		if err := f.Add([]float32{0, 1}); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := f.Search([]float32{0, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range hits {
		if hits[i].Position != i {
			t.Errorf("expected position %d at rank %d, got %d", i, i, hits[i].Position)
		}
	}
}

func TestSearchPadsWithNoMatch(t *testing.T) {
	f, _ := New(2)
	if err := f.Add([]float32{1, 0}); err != nil {
		t.Fatal(err)
	}

	hits, err := f.Search([]float32{1, 0}, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(hits))
	}
	if hits[0].Position != 0 {
		t.Errorf("expected real hit first, got position %d", hits[0].Position)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Position != NoMatch {
			t.Errorf("slot %d: expected NoMatch, got %d", i, hits[i].Position)
		}
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	f, _ := New(4)
	hits, err := f.Search(make([]float32, 4), 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range hits {
		if h.Position != NoMatch {
			t.Errorf("expected only NoMatch slots, got position %d", h.Position)
		}
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	f, _ := New(3)
	if _, err := f.Search([]float32{1, 0}, 3); err == nil {
		t.Error("expected dimension mismatch error")
	}
	if err := f.Add([]float32{1, 0}); err == nil {
		t.Error("expected dimension mismatch error on Add")
	}
}

func TestReconstruct(t *testing.T) {
	f, _ := New(3)
	want := []float32{0.1, 0.2, 0.3}
	if err := f.Add(want); err != nil {
		t.Fatal(err)
	}

	got, err := f.Reconstruct(0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	// The copy must not alias index storage.
	got[0] = 99
	again, _ := f.Reconstruct(0)
	if again[0] != want[0] {
		t.Error("Reconstruct returned a view into index storage")
	}
}

func TestReconstructOutOfRange(t *testing.T) {
	f, _ := New(2)
	f.Add([]float32{1, 0})

	for _, pos := range []int{-1, 1, 100} {
		if _, err := f.Reconstruct(pos); err == nil {
			t.Errorf("expected out-of-range error for position %d", pos)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
	}{
		{"simple", []float32{3, 4}},
		{"negative", []float32{-1, 2, -3}},
		{"already unit", []float32{1, 0, 0}},
		{"tiny", []float32{1e-3, 1e-3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Normalize(tt.vec)
			var sq float64
			for _, v := range tt.vec {
				sq += float64(v) * float64(v)
			}
			if math.Abs(math.Sqrt(sq)-1) > 1e-5 {
				t.Errorf("norm after Normalize = %f, want 1", math.Sqrt(sq))
			}
		})
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	vec := []float32{0, 0, 0}
	Normalize(vec)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("component %d changed: %f", i, v)
		}
	}
}

func TestDot(t *testing.T) {
	got := Dot([]float32{1, 2, 3}, []float32{4, 5, 6})
	if math.Abs(got-32) > 1e-9 {
		t.Errorf("expected 32, got %f", got)
	}
}
