package embedding

import "fmt"

// MockEmbedder produces deterministic vectors without a network call.
// The first components mirror the text's runes, so distinct texts map to
// distinct directions.
type MockEmbedder struct {
	dimension int
	// Fixed overrides specific texts with preset vectors.
	Fixed map[string][]float32
	// FailOn makes Embed return an error when any input matches.
	FailOn map[string]bool
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		if e.FailOn[text] {
			return nil, fmt.Errorf("mock embedder failure for %q", text)
		}
		if fixed, ok := e.Fixed[text]; ok {
			vec := make([]float32, len(fixed))
			copy(vec, fixed)
			embeddings[i] = vec
			continue
		}
		vec := make([]float32, e.dimension)
		for j, r := range text {
			if j >= e.dimension {
				break
			}
			vec[j] = float32(r) / 1000.0
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
