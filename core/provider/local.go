package provider

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// LocalEmbedder computes embeddings in process with a sentence transformer model
type LocalEmbedder struct {
	session *hugot.Session
	run     func(texts []string) ([][]float32, error)
}

// NewLocalEmbedder downloads the model into modelsDir if needed and loads it with the pure Go backend
func NewLocalEmbedder(modelsDir string, modelName string) (*LocalEmbedder, error) {
	modelPath, err := helper.PrepareModel(modelsDir, modelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "pdfrag-embedder",
	}
	featurePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create feature extraction pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create feature extraction pipeline: %w", err)
	}

	return &LocalEmbedder{
		session: session,
		run: func(texts []string) ([][]float32, error) {
			result, err := featurePipeline.RunPipeline(texts)
			if err != nil {
				return nil, err
			}
			return result.Embeddings, nil
		},
	}, nil
}

// Name returns the provider name
func (e *LocalEmbedder) Name() string { return model.ProviderLocal }

// EmbedDocuments embeds all texts in one pipeline run
func (e *LocalEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings, err := e.run(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("local model returned %d embeddings for %d inputs", len(embeddings), len(texts))
	}
	return embeddings, nil
}

// EmbedQuery embeds a single question
func (e *LocalEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Close releases the hugot session
func (e *LocalEmbedder) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Destroy()
}
