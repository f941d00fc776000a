package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmbedder(t *testing.T) {
	t.Run("Embed documents with the loaded model", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping local embedder test in short mode (requires model download)")
		}

		embedder, err := NewLocalEmbedder(t.TempDir(), "sentence-transformers/all-MiniLM-L6-v2")
		require.NoError(t, err)
		defer embedder.Close()

		embeddings, err := embedder.EmbedDocuments(context.Background(), []string{"first sentence", "second sentence"})

		require.NoError(t, err)
		require.Len(t, embeddings, 2)
		assert.Equal(t, 384, len(embeddings[0]), "all-MiniLM-L6-v2 produces 384-dimensional embeddings")
	})

	t.Run("Embed query uses the same run", func(t *testing.T) {
		embedder := &LocalEmbedder{run: func(texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = []float32{float32(len(text))}
			}
			return out, nil
		}}

		embedding, err := embedder.EmbedQuery(context.Background(), "abc")

		require.NoError(t, err)
		assert.Equal(t, []float32{3}, embedding)
		assert.Equal(t, "local", embedder.Name())
		assert.NoError(t, embedder.Close())
	})

	t.Run("Run error is wrapped", func(t *testing.T) {
		runErr := errors.New("onnx failure")
		embedder := &LocalEmbedder{run: func(texts []string) ([][]float32, error) {
			return nil, runErr
		}}

		_, err := embedder.EmbedDocuments(context.Background(), []string{"abc"})

		assert.ErrorIs(t, err, runErr)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		embedder := &LocalEmbedder{run: func(texts []string) ([][]float32, error) {
			return nil, nil
		}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := embedder.EmbedDocuments(ctx, []string{"abc"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
