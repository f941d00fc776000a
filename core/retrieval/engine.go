package retrieval

import (
	"context"
	"fmt"

	"github.com/siherrmann/pdfrag/core/pipeline"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// VectorStore persists embedded chunks of one collection and searches them by similarity.
// Results are ordered by ascending cosine distance.
type VectorStore interface {
	UpsertChunks(ctx context.Context, chunks []*model.Chunk) error
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int) ([]*model.RetrievalResult, error)
}

// Engine retrieves the chunks most similar to a question
type Engine struct {
	embedder pipeline.Embedder
	store    VectorStore
}

// NewEngine creates a new retrieval engine.
// The embedder must be the one the collection was ingested with.
func NewEngine(embedder pipeline.Embedder, store VectorStore) *Engine {
	return &Engine{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve embeds the query and returns at most k chunks, most relevant first
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]*model.RetrievalResult, error) {
	if k <= 0 {
		return nil, helper.NewError("retrieve", fmt.Errorf("k must be positive, got %d", k))
	}

	embedding, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, helper.NewError(fmt.Sprintf("embed query with %s", e.embedder.Name()), err)
	}

	results, err := e.store.SelectChunksBySimilarity(ctx, embedding, k)
	if err != nil {
		return nil, helper.NewError("similarity search", err)
	}

	return results, nil
}
