package model

import (
	"time"

	"github.com/google/uuid"
)

// Passage represents an immutable chunk of corpus text with provenance.
// It is created once at corpus-load time and owned by the knowledge base.
// The database fields (ID, RID, CreatedAt) are only set for persisted passages.
type Passage struct {
	ID         int       `json:"id"`
	RID        uuid.UUID `json:"rid"`
	SourceRID  uuid.UUID `json:"source_rid"`
	Content    string    `json:"content"`
	SourceID   string    `json:"source_id"`
	Embedding  []float32 `json:"embedding,omitempty"`
	ChunkIndex int       `json:"chunk_index"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Result field, populated by similarity search
	Distance float64 `json:"distance,omitempty"`
}
