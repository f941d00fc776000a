package pdfrag

import (
	"context"
	"io"
	"log/slog"

	"github.com/siherrmann/pdfrag/core/answer"
	"github.com/siherrmann/pdfrag/core/pipeline"
	"github.com/siherrmann/pdfrag/core/provider"
	"github.com/siherrmann/pdfrag/core/retrieval"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// Rag answers questions about the ingested document
type Rag struct {
	Embedder  pipeline.Embedder
	Generator pipeline.Generator
	Engine    *retrieval.Engine
	Answerer  *answer.Pipeline
	closers   []io.Closer
	// Logging
	log *slog.Logger
}

// NewRag validates the query configuration, creates both providers and opens the store
func NewRag(ctx context.Context, config *model.Config, logger *slog.Logger) (*Rag, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	err := config.ValidateQuery()
	if err != nil {
		return nil, err
	}

	embedder, err := provider.NewEmbedder(ctx, config)
	if err != nil {
		return nil, helper.NewError("create embedder", err)
	}

	generator, err := provider.NewGenerator(ctx, config)
	if err != nil {
		closeIfCloser(embedder, logger)
		return nil, helper.NewError("create generator", err)
	}

	store, err := OpenStore(ctx, config, logger)
	if err != nil {
		closeIfCloser(embedder, logger)
		return nil, err
	}

	rag := NewRagWithStore(embedder, generator, store.Embeddings, logger)
	rag.closers = append(rag.closers, store)

	logger.Info("Initialized question answering",
		slog.String("embedding_provider", embedder.Name()),
		slog.String("llm_provider", generator.Name()),
		slog.String("collection", config.CollectionName),
	)

	return rag, nil
}

// NewRagWithStore wires a Rag from already created parts
func NewRagWithStore(embedder pipeline.Embedder, generator pipeline.Generator, store retrieval.VectorStore, logger *slog.Logger) *Rag {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	engine := retrieval.NewEngine(embedder, store)
	rag := &Rag{
		Embedder:  embedder,
		Generator: generator,
		Engine:    engine,
		Answerer:  answer.NewPipeline(engine, generator, logger),
		log:       logger,
	}
	if closer, ok := embedder.(io.Closer); ok {
		rag.closers = append(rag.closers, closer)
	}
	return rag
}

// Close releases the store connection and local models
func (r *Rag) Close() error {
	var firstErr error
	for _, closer := range r.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}

// Chain returns the reusable question to answer path
func (r *Rag) Chain() answer.Chain {
	return r.Answerer.Chain()
}

// Answer returns the answer to question
func (r *Rag) Answer(ctx context.Context, question string) (string, error) {
	return r.Answerer.Answer(ctx, question)
}

// AnswerWithSources returns the answer to question with the chunks it was based on
func (r *Rag) AnswerWithSources(ctx context.Context, question string) (*model.Answer, error) {
	return r.Answerer.AnswerWithSources(ctx, question)
}

func closeIfCloser(v interface{}, logger *slog.Logger) {
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn("Failed to close after initialization error", slog.String("error", err.Error()))
	}
}
