package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed init.sql
var initSQL string

//go:embed collections.sql
var collectionsSQL string

//go:embed embeddings.sql
var embeddingsSQL string

// Function lists for verification
var CollectionsFunctions = []string{
	"init_collections",
	"select_or_insert_collection",
	"select_collection",
}

var EmbeddingsFunctions = []string{
	"init_embeddings",
	"upsert_embedding",
	"select_embeddings_by_similarity",
	"count_embeddings",
}

// Init initializes db extensions.
// Progress is logged at debug level, a nil logger discards it.
func Init(db *sql.DB, logger *slog.Logger) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	orDiscard(logger).Debug("Database extensions initialized successfully")
	return nil
}

// LoadCollectionsSql loads collection-related SQL functions
func LoadCollectionsSql(db *sql.DB, force bool, logger *slog.Logger) error {
	return loadSql(db, "collections", collectionsSQL, CollectionsFunctions, force, orDiscard(logger))
}

// LoadEmbeddingsSql loads embedding-related SQL functions
func LoadEmbeddingsSql(db *sql.DB, force bool, logger *slog.Logger) error {
	return loadSql(db, "embeddings", embeddingsSQL, EmbeddingsFunctions, force, orDiscard(logger))
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool, logger *slog.Logger) error {
	if err := LoadCollectionsSql(db, force, logger); err != nil {
		return err
	}

	if err := LoadEmbeddingsSql(db, force, logger); err != nil {
		return err
	}

	return nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

func loadSql(db *sql.DB, name string, script string, functions []string, force bool, logger *slog.Logger) error {
	if !force {
		exist, err := checkFunctions(db, functions, logger)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions, logger)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	logger.Debug("SQL functions loaded successfully", slog.String("name", name))
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string, logger *slog.Logger) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			logger.Debug("Function does not exist", slog.String("function", f))
			break
		}
	}
	return allExist, nil
}
