package model

// RetrievalResult represents a chunk retrieved by a query.
// Score is the cosine distance to the query embedding, lower is more relevant.
type RetrievalResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// Answer is the outcome of one question answered from retrieved context
type Answer struct {
	Question string             `json:"question"`
	Answer   string             `json:"answer"`
	Context  string             `json:"context"`
	Sources  []*RetrievalResult `json:"sources"`
}
