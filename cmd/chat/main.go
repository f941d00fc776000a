package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/siherrmann/pdfrag"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
	"github.com/siherrmann/pdfrag/shell"
	"github.com/spf13/cobra"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about the ingested PDF",
	Long: `Starts an interactive chat answering questions only from the ingested
document. Type 'sources' to see the chunks behind the last answer,
'clear' to clear the screen and 'sair' to leave.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// chatRag is the question answering side the chat needs
type chatRag interface {
	shell.Answerer
	Close() error
}

// ragFactory builds the question answering side from the configuration
type ragFactory func(ctx context.Context, config *model.Config, logger *slog.Logger) (chatRag, error)

func runChat(cmd *cobra.Command, _ []string) error {
	return chat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), os.Stderr, envFile, verbose, newRag)
}

func newRag(ctx context.Context, config *model.Config, logger *slog.Logger) (chatRag, error) {
	rag, err := pdfrag.NewRag(ctx, config, logger)
	if err != nil {
		return nil, err
	}
	return rag, nil
}

func chat(ctx context.Context, in io.Reader, out io.Writer, logOut io.Writer, envPath string, debug bool, build ragFactory) error {
	err := loadEnvFile(envPath)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := helper.NewLogger(logOut, level)

	config := model.NewConfigFromEnv()
	sh := shell.NewShell(in, out, config.EmbeddingProvider, config.LLMProvider)
	sh.Welcome()

	rag, err := build(ctx, config, logger)
	if err != nil {
		shell.InitFailed(out, err)
		return nil
	}
	defer rag.Close()

	return sh.Run(ctx, rag)
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
