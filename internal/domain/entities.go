package domain

// Article is a crawled document stored in the article store.
// Only ID and Content matter to retrieval; the rest is descriptive.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Content string `json:"content"`
}

// Candidate is one index hit during a single retrieval call.
type Candidate struct {
	Position int
	Score    float64
}

// Passage is a retrieved excerpt handed to the answer assembler.
type Passage struct {
	Score   float64 `json:"score"`
	Excerpt string  `json:"content"`
}
