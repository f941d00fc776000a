package pdfrag

import (
	"context"
	"io"
	"log/slog"

	"github.com/siherrmann/pdfrag/core/pipeline"
	"github.com/siherrmann/pdfrag/core/provider"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// EmbedderFactory creates the embedder selected by the configuration
type EmbedderFactory func(ctx context.Context, config *model.Config) (pipeline.Embedder, error)

// Ingestor loads a PDF, splits it, embeds the chunks and stores them in one collection
type Ingestor struct {
	Config      *model.Config
	Loader      pipeline.LoadFunc
	Chunker     pipeline.ChunkFunc
	// Embedder is used as is when set, otherwise NewEmbedder creates one per run
	Embedder    pipeline.Embedder
	NewEmbedder EmbedderFactory
	OpenStore   StoreOpener
	log         *slog.Logger
}

// NewIngestor creates an ingestor with the PDF loader, the 1000/150 sliding window
// chunker, the configured provider and the pgvector store
func NewIngestor(config *model.Config, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{
		Config:      config,
		Loader:      pipeline.LoadPDF,
		Chunker:     pipeline.SlidingWindowChunker(model.ChunkSize, model.ChunkOverlap),
		NewEmbedder: provider.NewEmbedder,
		OpenStore:   openVectorStore,
		log:         logger,
	}
}

// Ingest stores the chunks of the configured PDF and returns their count.
// A document without text returns model.ErrNothingToIngest and touches neither provider nor store.
func (i *Ingestor) Ingest(ctx context.Context) (int, error) {
	err := i.Config.ValidateIngestion()
	if err != nil {
		return 0, err
	}

	p := pipeline.NewPipeline(i.Loader, i.Chunker, nil)

	i.log.Info("Loading PDF", slog.String("path", i.Config.PDFPath))
	chunks, err := p.Split(i.Config.PDFPath)
	if err != nil {
		return 0, helper.NewError("split document", err)
	}
	if len(chunks) == 0 {
		return 0, model.ErrNothingToIngest
	}

	i.log.Info("Split document into chunks", slog.Int("chunks", len(chunks)))

	embedder := i.Embedder
	if embedder == nil {
		embedder, err = i.NewEmbedder(ctx, i.Config)
		if err != nil {
			return 0, helper.NewError("create embedder", err)
		}
		if closer, ok := embedder.(io.Closer); ok {
			defer closer.Close()
		}
	}
	p.Embedder = embedder

	err = p.Embed(ctx, chunks)
	if err != nil {
		return 0, helper.NewError("embed chunks", err)
	}

	i.log.Info("Generated embeddings", slog.String("provider", embedder.Name()), slog.Int("chunks", len(chunks)))

	store, closer, err := i.OpenStore(ctx, i.Config, i.log)
	if err != nil {
		return 0, err
	}
	defer closer.Close()

	err = store.UpsertChunks(ctx, chunks)
	if err != nil {
		return 0, helper.NewError("store chunks", err)
	}

	i.log.Info("Stored chunks", slog.String("collection", i.Config.CollectionName), slog.Int("chunks", len(chunks)))

	return len(chunks), nil
}

// Ingest runs a default Ingestor for config
func Ingest(ctx context.Context, config *model.Config, logger *slog.Logger) (int, error) {
	return NewIngestor(config, logger).Ingest(ctx)
}
