package answer

import (
	"strings"

	"github.com/siherrmann/pdfrag/model"
)

// PromptTemplate is the instruction sent to the generator.
// {contexto} receives the retrieved context and {pergunta} the user question.
const PromptTemplate = `
CONTEXTO:
{contexto}

REGRAS:
- Responda somente com base no CONTEXTO.
- Se a informação não estiver explicitamente no CONTEXTO, responda:
  "Não tenho informações necessárias para responder sua pergunta."
- Nunca invente ou use conhecimento externo.
- Nunca produza opiniões ou interpretações além do que está escrito.

EXEMPLOS DE PERGUNTAS FORA DO CONTEXTO:
Pergunta: "Qual é a capital da França?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

Pergunta: "Quantos clientes temos em 2024?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

Pergunta: "Você acha isso bom ou ruim?"
Resposta: "Não tenho informações necessárias para responder sua pergunta."

PERGUNTA DO USUÁRIO:
{pergunta}

RESPONDA A "PERGUNTA DO USUÁRIO"
`

// NoInformationAnswer is the refusal the prompt asks for when the context lacks the answer
const NoInformationAnswer = "Não tenho informações necessárias para responder sua pergunta."

// RenderPrompt fills the template in a single pass,
// so placeholders inside the context or the question are left untouched.
func RenderPrompt(context string, question string) string {
	return strings.NewReplacer(
		"{contexto}", context,
		"{pergunta}", question,
	).Replace(PromptTemplate)
}

// FormatContext joins the chunk texts with a blank line, in retrieval order
func FormatContext(results []*model.RetrievalResult) string {
	texts := make([]string, 0, len(results))
	for _, result := range results {
		if result == nil || result.Chunk == nil {
			continue
		}
		texts = append(texts, result.Chunk.Content)
	}
	return strings.Join(texts, "\n\n")
}
