package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/pdfrag/helper"
	"github.com/siherrmann/pdfrag/model"
	loadSql "github.com/siherrmann/pdfrag/sql"
)

// CollectionsDBHandlerFunctions defines the interface for Collections database operations.
type CollectionsDBHandlerFunctions interface {
	SelectOrInsertCollection(ctx context.Context, name string) (*model.Collection, error)
	SelectCollection(ctx context.Context, name string) (*model.Collection, error)
}

// CollectionsDBHandler handles collection-related database operations
type CollectionsDBHandler struct {
	db *helper.Database
}

// NewCollectionsDBHandler creates a new collections database handler.
// It loads the collection SQL functions and creates the table if needed.
// If force is true, it will reload the SQL functions even if they already exist.
func NewCollectionsDBHandler(db *helper.Database, force bool) (*CollectionsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	collectionsDbHandler := &CollectionsDBHandler{
		db: db,
	}

	err := loadSql.LoadCollectionsSql(collectionsDbHandler.db.Instance, force, db.Logger)
	if err != nil {
		return nil, helper.NewError("load collections sql", err)
	}

	err = collectionsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Debug("Initialized CollectionsDBHandler")

	return collectionsDbHandler, nil
}

// CreateTable creates the 'langchain_pg_collection' table if it does not exist.
func (h *CollectionsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_collections();`)
	if err != nil {
		return helper.NewError("init collections", err)
	}

	h.db.Logger.Debug("Checked/created table langchain_pg_collection")

	return nil
}

// SelectOrInsertCollection returns the collection with the given name, creating it if missing
func (h *CollectionsDBHandler) SelectOrInsertCollection(ctx context.Context, name string) (*model.Collection, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_or_insert_collection($1, $2)`,
		uuid.New(),
		name,
	)

	collection := &model.Collection{}
	err := row.Scan(
		&collection.UUID,
		&collection.Name,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	h.db.Logger.Debug("Resolved collection", slog.String("name", collection.Name), slog.String("uuid", collection.UUID.String()))

	return collection, nil
}

// SelectCollection retrieves a collection by name
func (h *CollectionsDBHandler) SelectCollection(ctx context.Context, name string) (*model.Collection, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_collection($1)`,
		name,
	)

	collection := &model.Collection{}
	err := row.Scan(
		&collection.UUID,
		&collection.Name,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return collection, nil
}
