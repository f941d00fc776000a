package pdfrag

import (
	"context"
	"io"
	"log/slog"

	"github.com/siherrmann/pdfrag/core/retrieval"
	"github.com/siherrmann/pdfrag/database"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
	loadSql "github.com/siherrmann/pdfrag/sql"
)

// StoreOpener opens the vector store of the configured collection.
// The returned closer releases the connection.
type StoreOpener func(ctx context.Context, config *model.Config, logger *slog.Logger) (retrieval.VectorStore, io.Closer, error)

// Store bundles the database and the handlers of one collection
type Store struct {
	DB          *helper.Database
	Collections *database.CollectionsDBHandler
	Embeddings  *database.EmbeddingsDBHandler
}

// OpenStore connects to DATABASE_URL, prepares the schema and binds PG_VECTOR_COLLECTION_NAME
func OpenStore(ctx context.Context, config *model.Config, logger *slog.Logger) (*Store, error) {
	db, err := helper.NewDatabase("pdfrag", helper.NewDatabaseConfigurationFromURL(config.DatabaseURL), logger)
	if err != nil {
		return nil, helper.NewError("connect to vector store", err)
	}

	err = loadSql.Init(db.Instance, logger)
	if err != nil {
		db.Close()
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	collections, err := database.NewCollectionsDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create collections handler", err)
	}

	embeddings, err := database.NewEmbeddingsDBHandler(db, collections, config.CollectionName, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create embeddings handler", err)
	}

	return &Store{
		DB:          db,
		Collections: collections,
		Embeddings:  embeddings,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.DB.Close()
}

func openVectorStore(ctx context.Context, config *model.Config, logger *slog.Logger) (retrieval.VectorStore, io.Closer, error) {
	store, err := OpenStore(ctx, config, logger)
	if err != nil {
		return nil, nil, err
	}
	return store.Embeddings, store, nil
}
