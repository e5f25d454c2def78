package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
	loadSql "github.com/saisubham-29/medrag/sql"
)

// SourcesDBHandlerFunctions defines the interface for Sources database operations.
type SourcesDBHandlerFunctions interface {
	InsertSource(source *model.Source) error
	SelectSource(rid uuid.UUID) (*model.Source, error)
	SelectAllSources(limit int) ([]*model.Source, error)
	DeleteAllSources() error
}

// SourcesDBHandler handles source-document database operations
type SourcesDBHandler struct {
	db *helper.Database
}

// NewSourcesDBHandler creates a new sources database handler.
// It loads the source-related SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewSourcesDBHandler(db *helper.Database, force bool) (*SourcesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	handler := &SourcesDBHandler{db: db}

	err := loadSql.LoadSourcesSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load sources sql", err)
	}

	err = handler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SourcesDBHandler")

	return handler, nil
}

// CreateTable creates the 'sources' table if it does not exist yet.
func (h *SourcesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_sources();`)
	if err != nil {
		return helper.NewError("init sources table", err)
	}

	h.db.Logger.Info("Checked/created table sources")

	return nil
}

// InsertSource inserts a new source document record
func (h *SourcesDBHandler) InsertSource(source *model.Source) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_source($1, $2)`,
		source.SourceID,
		source.Metadata,
	)

	err := row.Scan(
		&source.ID,
		&source.RID,
		&source.SourceID,
		&source.Metadata,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectSource retrieves a source by RID
func (h *SourcesDBHandler) SelectSource(rid uuid.UUID) (*model.Source, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_source($1)`,
		rid,
	)

	source := &model.Source{}
	err := row.Scan(
		&source.ID,
		&source.RID,
		&source.SourceID,
		&source.Metadata,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return source, nil
}

// SelectAllSources retrieves up to limit sources in insertion order
func (h *SourcesDBHandler) SelectAllSources(limit int) ([]*model.Source, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_sources($1)`,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var sources []*model.Source
	for rows.Next() {
		source := &model.Source{}
		err := rows.Scan(
			&source.ID,
			&source.RID,
			&source.SourceID,
			&source.Metadata,
			&source.CreatedAt,
			&source.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// DeleteAllSources removes all sources; passages cascade.
func (h *SourcesDBHandler) DeleteAllSources() error {
	_, err := h.db.Instance.Exec(`SELECT delete_all_sources()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
