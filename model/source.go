package model

import (
	"time"

	"github.com/google/uuid"
)

// Source represents a reference document the corpus was built from.
// The Content field is used during indexing but not stored in the database.
type Source struct {
	ID        int64     `json:"id"`
	RID       uuid.UUID `json:"rid"`
	SourceID  string    `json:"source_id"`
	Content   string    `json:"content,omitempty" db:"-"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
