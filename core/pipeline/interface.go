package pipeline

import (
	"context"
	"fmt"

	"github.com/siherrmann/pdfrag/model"
)

// LoadFunc extracts the pages of the document at path
type LoadFunc func(path string) ([]*model.Page, error)

// ChunkFunc splits text into chunks in document order
type ChunkFunc func(text string) ([]TextChunk, error)

// Embedder turns text into fixed length vectors.
// One collection must only ever hold vectors of a single embedder and model.
type Embedder interface {
	Name() string
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator turns a prompt into a generated completion
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextChunk is a chunk of text with its rune offsets in the source text
type TextChunk struct {
	Content  string
	StartPos int
	EndPos   int
}

// Pipeline combines loading, chunking and embedding of a document
type Pipeline struct {
	Loader   LoadFunc
	Chunker  ChunkFunc
	Embedder Embedder
}

// NewPipeline creates a new processing pipeline
func NewPipeline(loader LoadFunc, chunker ChunkFunc, embedder Embedder) *Pipeline {
	return &Pipeline{
		Loader:   loader,
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Split loads the document and splits every page into chunks.
// Chunks carry the cleaned page metadata and the ids doc-0 to doc-(n-1) in traversal order.
func (p *Pipeline) Split(path string) ([]*model.Chunk, error) {
	pages, err := p.Loader(path)
	if err != nil {
		return nil, err
	}

	chunks := []*model.Chunk{}
	for _, page := range pages {
		textChunks, err := p.Chunker(page.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split page: %w", err)
		}

		for _, tc := range textChunks {
			chunks = append(chunks, &model.Chunk{
				ID:       model.ChunkID(len(chunks)),
				Content:  tc.Content,
				Metadata: page.Metadata.Clean(),
			})
		}
	}

	return chunks, nil
}

// Embed computes the embeddings of all chunks with a single provider call
func (p *Pipeline) Embed(ctx context.Context, chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := p.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings with %s: %w", p.Embedder.Name(), err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d embeddings for %d chunks", len(embeddings), len(chunks))
	}

	for i, chunk := range chunks {
		chunk.Embedding = embeddings[i]
	}

	return nil
}

// Process splits the document and embeds the resulting chunks
func (p *Pipeline) Process(ctx context.Context, path string) ([]*model.Chunk, error) {
	chunks, err := p.Split(path)
	if err != nil {
		return nil, err
	}

	err = p.Embed(ctx, chunks)
	if err != nil {
		return nil, err
	}

	return chunks, nil
}
