package answer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siherrmann/pdfrag/core/pipeline"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
)

// Retriever returns the k chunks most relevant to a query
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]*model.RetrievalResult, error)
}

// Chain answers a question, it is safe to call repeatedly
type Chain func(ctx context.Context, question string) (string, error)

// Pipeline answers questions from retrieved context
type Pipeline struct {
	retriever Retriever
	generator pipeline.Generator
	k         int
	log       *slog.Logger
}

// NewPipeline creates a question answering pipeline retrieving model.TopK chunks per question
func NewPipeline(retriever Retriever, generator pipeline.Generator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		retriever: retriever,
		generator: generator,
		k:         model.TopK,
		log:       logger,
	}
}

// Chain returns the reusable question to answer path
func (p *Pipeline) Chain() Chain {
	return p.Answer
}

// Answer returns the generated answer verbatim
func (p *Pipeline) Answer(ctx context.Context, question string) (string, error) {
	result, err := p.run(ctx, question)
	if err != nil {
		return "", err
	}
	return result.Answer, nil
}

// AnswerWithSources returns the answer together with the retrieved chunks and their scores
func (p *Pipeline) AnswerWithSources(ctx context.Context, question string) (*model.Answer, error) {
	return p.run(ctx, question)
}

func (p *Pipeline) run(ctx context.Context, question string) (*model.Answer, error) {
	results, err := p.retriever.Retrieve(ctx, question, p.k)
	if err != nil {
		return nil, helper.NewError("retrieve context", err)
	}

	p.log.Debug("Retrieved context", slog.Int("chunks", len(results)), slog.Int("k", p.k))

	contextText := FormatContext(results)
	answer, err := p.generator.Generate(ctx, RenderPrompt(contextText, question))
	if err != nil {
		return nil, helper.NewError(fmt.Sprintf("generate answer with %s", p.generator.Name()), err)
	}

	return &model.Answer{
		Question: question,
		Answer:   answer,
		Context:  contextText,
		Sources:  results,
	}, nil
}
