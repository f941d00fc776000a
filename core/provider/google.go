package provider

import (
	"context"
	"fmt"

	"github.com/siherrmann/pdfrag/model"
	"google.golang.org/genai"
)

// googleBatchSize is the maximum number of contents sent with one embedding request
const googleBatchSize = 100

// Task types of the Gemini embedding API
const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// GoogleEmbedder computes embeddings with the Gemini API
type GoogleEmbedder struct {
	client *genai.Client
	model  string
}

// NewGoogleEmbedder creates an embedder for the given Gemini embedding model
func NewGoogleEmbedder(ctx context.Context, apiKey string, embeddingModel string) (*GoogleEmbedder, error) {
	return newGoogleEmbedder(ctx, apiKey, embeddingModel, genai.HTTPOptions{})
}

func newGoogleEmbedder(ctx context.Context, apiKey string, embeddingModel string, httpOptions genai.HTTPOptions) (*GoogleEmbedder, error) {
	client, err := newGoogleClient(ctx, apiKey, httpOptions)
	if err != nil {
		return nil, err
	}
	return &GoogleEmbedder{client: client, model: embeddingModel}, nil
}

// Name returns the provider name
func (e *GoogleEmbedder) Name() string { return model.ProviderGoogle }

// EmbedDocuments embeds texts as retrieval documents in sequential batches
func (e *GoogleEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += googleBatchSize {
		end := min(start+googleBatchSize, len(texts))

		batch, err := e.embed(ctx, texts[start:end], taskRetrievalDocument)
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, batch...)
	}
	return embeddings, nil
}

// EmbedQuery embeds a single question as retrieval query
func (e *GoogleEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.embed(ctx, []string{text}, taskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (e *GoogleEmbedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("google embeddings request failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("google returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	embeddings := make([][]float32, len(resp.Embeddings))
	for i, embedding := range resp.Embeddings {
		if embedding == nil {
			return nil, fmt.Errorf("google returned an empty embedding at index %d", i)
		}
		embeddings[i] = embedding.Values
	}
	return embeddings, nil
}

// GoogleGenerator answers prompts with a Gemini model at temperature 0
type GoogleGenerator struct {
	client *genai.Client
	model  string
}

// NewGoogleGenerator creates a generator for the given Gemini model
func NewGoogleGenerator(ctx context.Context, apiKey string, chatModel string) (*GoogleGenerator, error) {
	return newGoogleGenerator(ctx, apiKey, chatModel, genai.HTTPOptions{})
}

func newGoogleGenerator(ctx context.Context, apiKey string, chatModel string, httpOptions genai.HTTPOptions) (*GoogleGenerator, error) {
	client, err := newGoogleClient(ctx, apiKey, httpOptions)
	if err != nil {
		return nil, err
	}
	return &GoogleGenerator{client: client, model: chatModel}, nil
}

// Name returns the provider name
func (g *GoogleGenerator) Name() string { return model.ProviderGoogle }

// Generate sends the prompt as a single user turn and returns the reply text
func (g *GoogleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("google content generation failed: %w", err)
	}
	return resp.Text(), nil
}

func newGoogleClient(ctx context.Context, apiKey string, httpOptions genai.HTTPOptions) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create google client: %w", err)
	}
	return client, nil
}
