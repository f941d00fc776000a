package shell

import "strings"

// CommandKind is the meaning of one input line
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandExit
	CommandClear
	CommandSources
	CommandQuestion
)

// Command is a parsed input line
type Command struct {
	Kind     CommandKind
	Question string
}

// ParseCommand classifies a raw input line.
// Commands are matched case-insensitively after trimming, questions are kept as typed (trimmed).
func ParseCommand(line string) Command {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "":
		return Command{Kind: CommandEmpty}
	case "sair", "exit", "quit":
		return Command{Kind: CommandExit}
	case "clear":
		return Command{Kind: CommandClear}
	case "sources":
		return Command{Kind: CommandSources}
	default:
		return Command{Kind: CommandQuestion, Question: input}
	}
}

// Session holds the state carried between turns
type Session struct {
	lastQuestion string
}

// LastQuestion returns the last successfully answered question and whether there is one
func (s *Session) LastQuestion() (string, bool) {
	return s.lastQuestion, s.lastQuestion != ""
}

// Answered records a question whose answer was printed
func (s *Session) Answered(question string) {
	s.lastQuestion = question
}
