package model

import "fmt"

// Chunk is a bounded piece of extracted document text, the unit of embedding and retrieval.
// It is persisted as one row of the collection, keyed by ID.
type Chunk struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkID returns the identifier of the chunk at index within one ingestion run
func ChunkID(index int) string {
	return fmt.Sprintf("doc-%d", index)
}
