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
	"github.com/spf13/cobra"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a PDF into the vector store",
	Long: `Splits the PDF into overlapping chunks, embeds them with the configured
provider and stores them in the PG_VECTOR_COLLECTION_NAME collection.
The PDF is read from PDF_PATH.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runIngest,
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

// ingestFunc ingests the configured PDF and returns the stored chunk count
type ingestFunc func(ctx context.Context, config *model.Config, logger *slog.Logger) (int, error)

func runIngest(cmd *cobra.Command, _ []string) error {
	return ingest(cmd.Context(), cmd.OutOrStdout(), os.Stderr, envFile, verbose, pdfrag.Ingest)
}

func ingest(ctx context.Context, out io.Writer, logOut io.Writer, envPath string, debug bool, run ingestFunc) error {
	err := loadEnvFile(envPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := helper.NewLogger(logOut, level)

	config := model.NewConfigFromEnv()

	count, err := run(ctx, config, logger)
	if errors.Is(err, model.ErrNothingToIngest) {
		fmt.Fprintln(out, "No documents to process")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully ingested %d chunks into the database\n", count)
	return nil
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
