package provider

import (
	"context"

	"github.com/siherrmann/pdfrag/core/pipeline"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// NewEmbedder returns the embedder selected by EMBEDDING_PROVIDER.
// The configuration is validated first, so a missing key or an unknown provider never reaches the network.
func NewEmbedder(ctx context.Context, config *model.Config) (pipeline.Embedder, error) {
	if err := config.ValidateEmbedding(); err != nil {
		return nil, err
	}

	switch config.EmbeddingProvider {
	case model.ProviderOpenAI:
		return NewOpenAIEmbedder(config.OpenAIAPIKey, config.OpenAIEmbeddingModel), nil
	case model.ProviderGoogle:
		embedder, err := NewGoogleEmbedder(ctx, config.GoogleAPIKey, config.GoogleEmbeddingModel)
		if err != nil {
			return nil, helper.NewError("google embedder", err)
		}
		return embedder, nil
	default:
		embedder, err := NewLocalEmbedder(config.ModelsDir, config.LocalEmbeddingModel)
		if err != nil {
			return nil, helper.NewError("local embedder", err)
		}
		return embedder, nil
	}
}

// NewGenerator returns the generator selected by LLM_PROVIDER
func NewGenerator(ctx context.Context, config *model.Config) (pipeline.Generator, error) {
	if err := config.ValidateLLM(); err != nil {
		return nil, err
	}

	switch config.LLMProvider {
	case model.ProviderOpenAI:
		return NewOpenAIGenerator(config.OpenAIAPIKey, config.OpenAILLMModel), nil
	default:
		generator, err := NewGoogleGenerator(ctx, config.GoogleAPIKey, config.GoogleLLMModel)
		if err != nil {
			return nil, helper.NewError("google generator", err)
		}
		return generator, nil
	}
}
