package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/siherrmann/pdfrag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder maps text onto three axes by keyword
type keywordEmbedder struct {
	queries []string
	err     error
}

func (e *keywordEmbedder) Name() string { return "keyword" }

func (e *keywordEmbedder) vector(text string) []float32 {
	v := []float32{0.01, 0.01, 0.01}
	for i, keyword := range []string{"capital", "river", "mountain"} {
		if strings.Contains(strings.ToLower(text), keyword) {
			v[i] = 1
		}
	}
	return v
}

func (e *keywordEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *keywordEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	e.queries = append(e.queries, text)
	if e.err != nil {
		return nil, e.err
	}
	return e.vector(text), nil
}

// recordingStore returns canned results and records the requested limit
type recordingStore struct {
	results []*model.RetrievalResult
	limit   int
	err     error
}

func (s *recordingStore) UpsertChunks(ctx context.Context, chunks []*model.Chunk) error {
	return nil
}

func (s *recordingStore) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int) ([]*model.RetrievalResult, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) > limit {
		return s.results[:limit], nil
	}
	return s.results, nil
}

func TestNewEngine(t *testing.T) {
	t.Run("Create new engine", func(t *testing.T) {
		embedder := &keywordEmbedder{}
		store := &recordingStore{}

		engine := NewEngine(embedder, store)

		require.NotNil(t, engine, "Expected NewEngine to return a non-nil instance")
		assert.Equal(t, embedder, engine.embedder)
		assert.Equal(t, store, engine.store)
	})
}

func TestRetrieve(t *testing.T) {
	t.Run("Query is embedded and k is passed to the store", func(t *testing.T) {
		embedder := &keywordEmbedder{}
		store := &recordingStore{results: []*model.RetrievalResult{
			{Chunk: &model.Chunk{ID: "doc-0"}, Score: 0.1},
			{Chunk: &model.Chunk{ID: "doc-1"}, Score: 0.2},
		}}
		engine := NewEngine(embedder, store)

		results, err := engine.Retrieve(context.Background(), "What is the capital?", model.TopK)

		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, model.TopK, store.limit)
		assert.Equal(t, []string{"What is the capital?"}, embedder.queries)
	})

	t.Run("Invalid k", func(t *testing.T) {
		engine := NewEngine(&keywordEmbedder{}, &recordingStore{})

		_, err := engine.Retrieve(context.Background(), "question", 0)

		assert.Error(t, err)
	})

	t.Run("Embedding error names the provider", func(t *testing.T) {
		embedErr := errors.New("rate limited")
		engine := NewEngine(&keywordEmbedder{err: embedErr}, &recordingStore{})

		_, err := engine.Retrieve(context.Background(), "question", 10)

		assert.ErrorIs(t, err, embedErr)
		assert.Contains(t, err.Error(), "keyword")
	})

	t.Run("Store error is returned", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		engine := NewEngine(&keywordEmbedder{}, &recordingStore{err: storeErr})

		_, err := engine.Retrieve(context.Background(), "question", 10)

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestRetrieveFromDatabase(t *testing.T) {
	embedder := &keywordEmbedder{}
	store := initStore(t, "retrieval_test")
	engine := NewEngine(embedder, store)

	texts := []string{
		"Paris is the capital of France.",
		"The Amazon is the largest river.",
		"Everest is the highest mountain.",
	}
	embeddings, err := embedder.EmbedDocuments(context.Background(), texts)
	require.NoError(t, err)

	chunks := make([]*model.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &model.Chunk{
			ID:        model.ChunkID(i),
			Content:   text,
			Metadata:  model.Metadata{"page": i},
			Embedding: embeddings[i],
		}
	}
	require.NoError(t, store.UpsertChunks(context.Background(), chunks))

	t.Run("Stored chunk is found by its own text", func(t *testing.T) {
		for _, chunk := range chunks {
			results, err := engine.Retrieve(context.Background(), chunk.Content, 1)

			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, chunk.ID, results[0].Chunk.ID)
			assert.Equal(t, chunk.Content, results[0].Chunk.Content)
		}
	})

	t.Run("Results are ordered by ascending distance", func(t *testing.T) {
		results, err := engine.Retrieve(context.Background(), "Which river?", model.TopK)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "doc-1", results[0].Chunk.ID)
		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})
}
