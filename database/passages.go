package database

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
	loadSql "github.com/saisubham-29/medrag/sql"
)

// PassagesDBHandlerFunctions defines the interface for Passages database operations.
type PassagesDBHandlerFunctions interface {
	InsertPassage(passage *model.Passage) error
	SelectPassage(id int) (*model.Passage, error)
	SelectPassagesBySource(sourceID string) ([]*model.Passage, error)
	SelectPassagesByDistance(embedding []float32, limit int) ([]*model.Passage, error)
	CountPassages() (int64, error)
	DeleteAllPassages() error
}

// PassagesDBHandler handles passage-related database operations
type PassagesDBHandler struct {
	db *helper.Database
}

// NewPassagesDBHandler creates a new passages database handler.
// It loads the passage-related SQL functions and creates the table with
// the given embedding dimension. If force is true, it will reload the
// SQL functions even if they already exist.
func NewPassagesDBHandler(db *helper.Database, embeddingDim int, force bool) (*PassagesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		return nil, helper.NewError("embedding dimension validation", fmt.Errorf("embedding dimension must be positive, got %d", embeddingDim))
	}

	handler := &PassagesDBHandler{db: db}

	err := loadSql.LoadPassagesSql(handler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load passages sql", err)
	}

	err = handler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized PassagesDBHandler")

	return handler, nil
}

// CreateTable creates the 'passages' table with the vector column sized
// to embeddingDim. Existing tables are left untouched.
func (h *PassagesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_passages($1);`, embeddingDim)
	if err != nil {
		return helper.NewError("init passages table", err)
	}

	h.db.Logger.Info("Checked/created table passages")

	return nil
}

// InsertPassage inserts a new passage
func (h *PassagesDBHandler) InsertPassage(passage *model.Passage) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_passage($1, $2, $3, $4, $5, $6)`,
		passage.SourceRID,
		passage.SourceID,
		passage.Content,
		pq.Array(passage.Embedding),
		passage.ChunkIndex,
		passage.Metadata,
	)

	embedding := pgvector.Vector{}
	err := row.Scan(
		&passage.ID,
		&passage.RID,
		&passage.SourceRID,
		&passage.SourceID,
		&passage.Content,
		&embedding,
		&passage.ChunkIndex,
		&passage.Metadata,
		&passage.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}
	passage.Embedding = embedding.Slice()

	return nil
}

// SelectPassage retrieves a passage by ID
func (h *PassagesDBHandler) SelectPassage(id int) (*model.Passage, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_passage($1)`,
		id,
	)

	passage := &model.Passage{}
	embedding := pgvector.Vector{}
	err := row.Scan(
		&passage.ID,
		&passage.RID,
		&passage.SourceRID,
		&passage.SourceID,
		&passage.Content,
		&embedding,
		&passage.ChunkIndex,
		&passage.Metadata,
		&passage.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}
	passage.Embedding = embedding.Slice()

	return passage, nil
}

// SelectPassagesBySource retrieves all passages of a source ordered by chunk index
func (h *PassagesDBHandler) SelectPassagesBySource(sourceID string) ([]*model.Passage, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_passages_by_source($1)`,
		sourceID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var passages []*model.Passage
	for rows.Next() {
		passage := &model.Passage{}
		embedding := pgvector.Vector{}
		err := rows.Scan(
			&passage.ID,
			&passage.RID,
			&passage.SourceRID,
			&passage.SourceID,
			&passage.Content,
			&embedding,
			&passage.ChunkIndex,
			&passage.Metadata,
			&passage.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		passage.Embedding = embedding.Slice()
		passages = append(passages, passage)
	}

	return passages, rows.Err()
}

// SelectPassagesByDistance retrieves the passages closest to the given
// embedding by cosine distance. Results are ordered by ascending distance,
// ties broken by insertion order.
func (h *PassagesDBHandler) SelectPassagesByDistance(embedding []float32, limit int) ([]*model.Passage, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_passages_by_distance($1, $2)`,
		pq.Array(embedding),
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var passages []*model.Passage
	for rows.Next() {
		passage := &model.Passage{}
		err := rows.Scan(
			&passage.ID,
			&passage.RID,
			&passage.SourceRID,
			&passage.SourceID,
			&passage.Content,
			&passage.ChunkIndex,
			&passage.Metadata,
			&passage.CreatedAt,
			&passage.Distance,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		passages = append(passages, passage)
	}

	return passages, rows.Err()
}

// CountPassages returns the total number of stored passages
func (h *PassagesDBHandler) CountPassages() (int64, error) {
	row := h.db.Instance.QueryRow(`SELECT * FROM count_passages()`)

	var count int64
	err := row.Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// DeleteAllPassages removes all passages
func (h *PassagesDBHandler) DeleteAllPassages() error {
	_, err := h.db.Instance.Exec(`SELECT delete_all_passages()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
