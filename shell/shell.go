package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/siherrmann/pdfrag/model"
)

// Answerer is the question answering side the shell talks to
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
	AnswerWithSources(ctx context.Context, question string) (*model.Answer, error)
}

// Shell is the interactive question loop
type Shell struct {
	in                io.Reader
	out               io.Writer
	embeddingProvider string
	llmProvider       string
	session           Session
}

// NewShell creates a shell reading lines from in and writing to out
func NewShell(in io.Reader, out io.Writer, embeddingProvider string, llmProvider string) *Shell {
	return &Shell{
		in:                in,
		out:               out,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
	}
}

// Welcome writes the banner
func (s *Shell) Welcome() {
	Welcome(s.out, s.embeddingProvider, s.llmProvider)
}

// Run reads commands until an exit command, end of input or cancellation of ctx.
// A failing turn is reported and the loop continues.
func (s *Shell) Run(ctx context.Context, answerer Answerer) error {
	fmt.Fprintln(s.out, "✅ Sistema inicializado com sucesso!")
	fmt.Fprintln(s.out)

	done := make(chan struct{})
	defer close(done)

	lines := readLines(s.in, done)
	for {
		if ctx.Err() != nil {
			s.interrupted()
			return nil
		}

		fmt.Fprint(s.out, "🧑 Você: ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			s.interrupted()
			return nil
		case line, ok = <-lines:
			if !ok {
				s.interrupted()
				return nil
			}
		}

		command := ParseCommand(line)
		switch command.Kind {
		case CommandEmpty:
			continue
		case CommandExit:
			fmt.Fprintln(s.out, "\n👋 Encerrando o chat. Até logo!")
			return nil
		case CommandClear:
			fmt.Fprint(s.out, clearScreen)
			s.Welcome()
		case CommandSources:
			s.sources(ctx, answerer)
		case CommandQuestion:
			s.question(ctx, answerer, command.Question)
		}
	}
}

func (s *Shell) question(ctx context.Context, answerer Answerer, question string) {
	answerColor.Fprint(s.out, "\n🤖 Assistente: ")

	answer, err := answerer.Answer(ctx, question)
	if err != nil {
		s.failed(err)
		return
	}

	fmt.Fprintln(s.out, answer)
	fmt.Fprintln(s.out)
	s.session.Answered(question)
}

func (s *Shell) sources(ctx context.Context, answerer Answerer) {
	question, ok := s.session.LastQuestion()
	if !ok {
		warnColor.Fprintln(s.out, "\n⚠️  Nenhuma pergunta foi feita ainda.")
		return
	}

	fmt.Fprintln(s.out, "\n🔍 Buscando fontes...")
	result, err := answerer.AnswerWithSources(ctx, question)
	if err != nil {
		s.failed(err)
		return
	}
	Sources(s.out, result.Sources)
}

func (s *Shell) failed(err error) {
	errorColor.Fprintf(s.out, "\n❌ Erro: %v\n\n", err)
}

func (s *Shell) interrupted() {
	fmt.Fprintln(s.out, "\n\n👋 Chat interrompido. Até logo!")
}

// readLines delivers input lines until end of input or until done is closed, then closes the channel.
// A read that is already blocked on the terminal only returns with the next line.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}
