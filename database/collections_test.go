package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionsNewCollectionsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewCollectionsDBHandler", func(t *testing.T) {
		collectionsDbHandler, err := NewCollectionsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewCollectionsDBHandler to not return an error")
		require.NotNil(t, collectionsDbHandler, "Expected NewCollectionsDBHandler to return a non-nil instance")
		require.NotNil(t, collectionsDbHandler.db, "Expected NewCollectionsDBHandler to have a non-nil database instance")
	})

	t.Run("Invalid call NewCollectionsDBHandler with nil database", func(t *testing.T) {
		_, err := NewCollectionsDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating CollectionsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestCollectionsSelectOrInsert(t *testing.T) {
	database := initDB(t)
	ctx := context.Background()

	collectionsDbHandler, err := NewCollectionsDBHandler(database, true)
	require.NoError(t, err, "Expected NewCollectionsDBHandler to not return an error")

	t.Run("Insert new collection", func(t *testing.T) {
		collection, err := collectionsDbHandler.SelectOrInsertCollection(ctx, "manual")
		require.NoError(t, err, "Expected SelectOrInsertCollection to not return an error")
		assert.Equal(t, "manual", collection.Name)
		assert.NotEqual(t, uuid.Nil, collection.UUID, "Expected collection to have a uuid")
	})

	t.Run("Select existing collection keeps its uuid", func(t *testing.T) {
		first, err := collectionsDbHandler.SelectOrInsertCollection(ctx, "handbook")
		require.NoError(t, err)

		second, err := collectionsDbHandler.SelectOrInsertCollection(ctx, "handbook")
		require.NoError(t, err)

		assert.Equal(t, first.UUID, second.UUID, "Expected the same collection to be returned")

		selected, err := collectionsDbHandler.SelectCollection(ctx, "handbook")
		require.NoError(t, err)
		assert.Equal(t, first.UUID, selected.UUID)
	})

	t.Run("Select missing collection", func(t *testing.T) {
		_, err := collectionsDbHandler.SelectCollection(ctx, "does-not-exist")
		assert.Error(t, err, "Expected error for a missing collection")
	})
}
