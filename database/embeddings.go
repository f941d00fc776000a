package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
	loadSql "github.com/siherrmann/pdfrag/sql"
)

// EmbeddingsDBHandlerFunctions defines the interface for Embeddings database operations.
type EmbeddingsDBHandlerFunctions interface {
	UpsertChunks(ctx context.Context, chunks []*model.Chunk) error
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int) ([]*model.RetrievalResult, error)
	CountChunks(ctx context.Context) (int, error)
}

// EmbeddingsDBHandler handles the embedded chunks of a single collection
type EmbeddingsDBHandler struct {
	db         *helper.Database
	Collection *model.Collection
}

// NewEmbeddingsDBHandler creates a new embeddings database handler bound to collectionName.
// The collection is created when it does not exist yet.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEmbeddingsDBHandler(db *helper.Database, collections *CollectionsDBHandler, collectionName string, force bool) (*EmbeddingsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if collections == nil {
		return nil, helper.NewError("collections handler validation", fmt.Errorf("collections handler is nil"))
	}
	if collectionName == "" {
		return nil, helper.NewError("collection validation", fmt.Errorf("collection name is empty"))
	}

	err := loadSql.LoadEmbeddingsSql(db.Instance, force, db.Logger)
	if err != nil {
		return nil, helper.NewError("load embeddings sql", err)
	}

	embeddingsDbHandler := &EmbeddingsDBHandler{
		db: db,
	}

	err = embeddingsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	embeddingsDbHandler.Collection, err = collections.SelectOrInsertCollection(ctx, collectionName)
	if err != nil {
		return nil, helper.NewError("select collection", err)
	}

	db.Logger.Debug("Initialized EmbeddingsDBHandler", slog.String("collection", collectionName))

	return embeddingsDbHandler, nil
}

// CreateTable creates the 'langchain_pg_embedding' table if it does not exist.
func (h *EmbeddingsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_embeddings();`)
	if err != nil {
		return helper.NewError("init embeddings", err)
	}

	h.db.Logger.Debug("Checked/created table langchain_pg_embedding")

	return nil
}

// UpsertChunks inserts all chunks in one transaction.
// Rows with an existing id are overwritten, a failure rolls back the whole batch.
func (h *EmbeddingsDBHandler) UpsertChunks(ctx context.Context, chunks []*model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := h.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `SELECT upsert_embedding($1, $2, $3, $4, $5)`)
	if err != nil {
		return helper.NewError("prepare", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			return helper.NewError(fmt.Sprintf("upsert chunk %s", chunk.ID), fmt.Errorf("chunk has no embedding"))
		}

		metadata := chunk.Metadata
		if metadata == nil {
			metadata = model.Metadata{}
		}

		_, err := stmt.ExecContext(
			ctx,
			chunk.ID,
			h.Collection.UUID,
			pgvector.NewVector(chunk.Embedding),
			chunk.Content,
			metadata,
		)
		if err != nil {
			return helper.NewError(fmt.Sprintf("upsert chunk %s", chunk.ID), err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return helper.NewError("commit", err)
	}

	return nil
}

// SelectChunksBySimilarity returns the limit nearest chunks by cosine distance, closest first
func (h *EmbeddingsDBHandler) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int) ([]*model.RetrievalResult, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_embeddings_by_similarity($1, $2, $3)`,
		h.Collection.UUID,
		pgvector.NewVector(embedding),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.RetrievalResult
	for rows.Next() {
		chunk := &model.Chunk{}
		var document sql.NullString
		var distance float64

		err := rows.Scan(
			&chunk.ID,
			&document,
			&chunk.Metadata,
			&distance,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		chunk.Content = document.String

		results = append(results, &model.RetrievalResult{
			Chunk: chunk,
			Score: distance,
		})
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// CountChunks returns the number of chunks stored in the collection
func (h *EmbeddingsDBHandler) CountChunks(ctx context.Context) (int, error) {
	var count int
	err := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT count_embeddings($1)`,
		h.Collection.UUID,
	).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}
