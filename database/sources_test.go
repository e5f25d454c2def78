package database

import (
	"testing"
	"time"

	"github.com/saisubham-29/medrag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesNewSourcesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewSourcesDBHandler", func(t *testing.T) {
		sourcesDbHandler, err := NewSourcesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewSourcesDBHandler to not return an error")
		require.NotNil(t, sourcesDbHandler, "Expected NewSourcesDBHandler to return a non-nil instance")
		require.NotNil(t, sourcesDbHandler.db, "Expected NewSourcesDBHandler to have a non-nil database instance")
	})

	t.Run("Invalid call NewSourcesDBHandler with nil database", func(t *testing.T) {
		_, err := NewSourcesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating SourcesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestSourcesInsert(t *testing.T) {
	database := initDB(t)

	sourcesDbHandler, err := NewSourcesDBHandler(database, true)
	require.NoError(t, err, "Expected NewSourcesDBHandler to not return an error")

	t.Run("Insert source", func(t *testing.T) {
		source := &model.Source{
			SourceID: "medical_ref_0",
			Metadata: model.Metadata{"topic": "hemoglobin"},
		}

		err := sourcesDbHandler.InsertSource(source)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, source.ID, "Expected inserted source to have an ID")
		assert.NotEmpty(t, source.RID, "Expected inserted source to have a RID")
		assert.WithinDuration(t, source.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")
	})

	t.Run("Insert duplicate source id fails", func(t *testing.T) {
		source := &model.Source{SourceID: "medical_ref_dup"}
		err := sourcesDbHandler.InsertSource(source)
		require.NoError(t, err)

		err = sourcesDbHandler.InsertSource(&model.Source{SourceID: "medical_ref_dup"})
		assert.Error(t, err, "Expected duplicate source_id to violate unique constraint")
	})
}

func TestSourcesSelect(t *testing.T) {
	database := initDB(t)

	sourcesDbHandler, err := NewSourcesDBHandler(database, true)
	require.NoError(t, err)

	err = sourcesDbHandler.DeleteAllSources()
	require.NoError(t, err)

	inserted := &model.Source{
		SourceID: "medical_ref_1",
		Metadata: model.Metadata{"topic": "glucose"},
	}
	err = sourcesDbHandler.InsertSource(inserted)
	require.NoError(t, err)

	t.Run("Select source by RID", func(t *testing.T) {
		source, err := sourcesDbHandler.SelectSource(inserted.RID)
		assert.NoError(t, err, "Expected Select to not return an error")
		require.NotNil(t, source)
		assert.Equal(t, inserted.SourceID, source.SourceID)
		assert.Equal(t, "glucose", source.Metadata["topic"])
	})

	t.Run("Select all sources", func(t *testing.T) {
		err := sourcesDbHandler.InsertSource(&model.Source{SourceID: "medical_ref_2"})
		require.NoError(t, err)

		sources, err := sourcesDbHandler.SelectAllSources(10)
		assert.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "medical_ref_1", sources[0].SourceID, "Expected insertion order")
		assert.Equal(t, "medical_ref_2", sources[1].SourceID)
	})

	t.Run("Delete all sources", func(t *testing.T) {
		err := sourcesDbHandler.DeleteAllSources()
		assert.NoError(t, err)

		sources, err := sourcesDbHandler.SelectAllSources(10)
		assert.NoError(t, err)
		assert.Empty(t, sources)
	})
}
