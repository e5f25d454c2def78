package database

import (
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

// Store bundles the sources and passages handlers into a single
// persistence layer for the retrieval index. It satisfies
// retrieval.PassageStore.
type Store struct {
	Sources  *SourcesDBHandler
	Passages *PassagesDBHandler
}

// NewStore creates the sources and passages handlers on the given
// database connection. embeddingDim sizes the vector column.
func NewStore(db *helper.Database, embeddingDim int, force bool) (*Store, error) {
	sources, err := NewSourcesDBHandler(db, force)
	if err != nil {
		return nil, helper.NewError("new sources handler", err)
	}

	passages, err := NewPassagesDBHandler(db, embeddingDim, force)
	if err != nil {
		return nil, helper.NewError("new passages handler", err)
	}

	return &Store{Sources: sources, Passages: passages}, nil
}

func (s *Store) InsertSource(source *model.Source) error {
	return s.Sources.InsertSource(source)
}

func (s *Store) InsertPassage(passage *model.Passage) error {
	return s.Passages.InsertPassage(passage)
}

func (s *Store) SelectPassagesByDistance(embedding []float32, limit int) ([]*model.Passage, error) {
	return s.Passages.SelectPassagesByDistance(embedding, limit)
}

// DeleteAllPassages clears the whole corpus. Sources are removed first
// so the passages cascade with them, then any orphaned passages go too.
func (s *Store) DeleteAllPassages() error {
	err := s.Sources.DeleteAllSources()
	if err != nil {
		return helper.NewError("delete sources", err)
	}
	return s.Passages.DeleteAllPassages()
}
