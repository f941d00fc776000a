package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/siherrmann/pdfrag/model"
)

// sourcePreviewLength is the number of characters shown per source
const sourcePreviewLength = 300

const clearScreen = "\033[H\033[2J"

var (
	separator   = strings.Repeat("=", 60)
	titleColor  = color.New(color.FgCyan, color.Bold)
	answerColor = color.New(color.FgGreen, color.Bold)
	errorColor  = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)
)

// Welcome writes the banner with the configured providers and the command list
func Welcome(out io.Writer, embeddingProvider string, llmProvider string) {
	fmt.Fprintln(out, separator)
	titleColor.Fprintln(out, "🤖 Chat RAG - Sistema de Consulta")
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "\n📊 Embeddings: %s\n", strings.ToUpper(embeddingProvider))
	fmt.Fprintf(out, "🧠 LLM: %s\n", strings.ToUpper(llmProvider))
	fmt.Fprintln(out, "\n💡 Comandos disponíveis:")
	fmt.Fprintln(out, "  - Digite sua pergunta para buscar no documento")
	fmt.Fprintln(out, "  - Digite 'sources' para ver as fontes da última resposta")
	fmt.Fprintln(out, "  - Digite 'clear' para limpar a tela")
	fmt.Fprintln(out, "  - Digite 'sair' ou 'exit' para encerrar")
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out)
}

// InitFailed writes the message shown when the chat cannot start
func InitFailed(out io.Writer, err error) {
	errorColor.Fprintln(out, "❌ Não foi possível iniciar o chat. Verifique os erros de inicialização.")
	if err != nil {
		errorColor.Fprintf(out, "   %v\n", err)
	}
}

// Sources writes every source with its score, a text preview and its metadata
func Sources(out io.Writer, sources []*model.RetrievalResult) {
	fmt.Fprintln(out, "\n"+separator)
	titleColor.Fprintln(out, "📚 FONTES CONSULTADAS")
	fmt.Fprintln(out, separator)

	for i, source := range sources {
		if source == nil || source.Chunk == nil {
			continue
		}
		fmt.Fprintf(out, "\n--- Fonte %d (relevância: %.4f) ---\n", i+1, source.Score)
		fmt.Fprintf(out, "\n%s...\n", Preview(source.Chunk.Content))

		if len(source.Chunk.Metadata) > 0 {
			fmt.Fprintln(out, "\nMetadados:")
			for _, key := range source.Chunk.Metadata.Keys() {
				fmt.Fprintf(out, "  %s: %v\n", key, source.Chunk.Metadata[key])
			}
		}
	}

	fmt.Fprintln(out, "\n"+separator)
}

// Preview returns at most the first 300 characters of text
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= sourcePreviewLength {
		return text
	}
	return string(runes[:sourcePreviewLength])
}
