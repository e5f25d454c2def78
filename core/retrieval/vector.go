package retrieval

import (
	"context"
	"fmt"

	"github.com/saisubham-29/medrag/core/pipeline"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
)

// PassageStore is the persistence surface the vector index needs.
// database.PassagesDBHandler implements it on top of pgvector.
type PassageStore interface {
	InsertSource(source *model.Source) error
	InsertPassage(passage *model.Passage) error
	SelectPassagesByDistance(embedding []float32, limit int) ([]*model.Passage, error)
	DeleteAllPassages() error
}

// VectorIndex embeds passages and serves nearest-neighbor retrieval by cosine
// distance from the passage store. Distances keep the same lower-is-better
// semantics as the lexical fallback.
type VectorIndex struct {
	store    PassageStore
	pipeline *pipeline.Pipeline
}

// NewVectorIndex creates a vector index over the given store and pipeline.
// The pipeline must carry an embedder; without one the caller should construct
// a LexicalIndex instead.
func NewVectorIndex(store PassageStore, p *pipeline.Pipeline) (*VectorIndex, error) {
	if store == nil {
		return nil, helper.NewError("create vector index", fmt.Errorf("passage store is nil"))
	}
	if p == nil || p.Embedder == nil {
		return nil, helper.NewError("create vector index", fmt.Errorf("pipeline with embedder required"))
	}
	return &VectorIndex{store: store, pipeline: p}, nil
}

// IndexSources replaces the stored corpus with passages chunked and embedded
// from the given sources. Reindexing is an explicit administrative operation,
// not part of the request path.
func (idx *VectorIndex) IndexSources(ctx context.Context, sources []string) error {
	if err := idx.store.DeleteAllPassages(); err != nil {
		return helper.NewError("clear passages", err)
	}

	for i, content := range sources {
		source := &model.Source{
			SourceID: SourceID(i),
			Content:  content,
			Metadata: make(model.Metadata),
		}
		if err := idx.store.InsertSource(source); err != nil {
			return helper.NewError(fmt.Sprintf("insert source %d", i), err)
		}

		passages, err := idx.pipeline.Process(content, source.SourceID)
		if err != nil {
			return helper.NewError(fmt.Sprintf("process source %d", i), err)
		}

		for j, passage := range passages {
			passage.SourceRID = source.RID
			if err := idx.store.InsertPassage(passage); err != nil {
				return helper.NewError(fmt.Sprintf("insert passage %d of source %d", j, i), err)
			}
		}
	}

	return nil
}

// Retrieve embeds the query and returns the k nearest passages by cosine
// distance, ascending.
func (idx *VectorIndex) Retrieve(ctx context.Context, query string, k int) ([]*model.RetrievalResult, error) {
	if k <= 0 {
		return []*model.RetrievalResult{}, nil
	}

	embedding, err := idx.pipeline.Embedder(query)
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}

	passages, err := idx.store.SelectPassagesByDistance(embedding, k)
	if err != nil {
		return nil, helper.NewError("select passages", err)
	}

	results := make([]*model.RetrievalResult, len(passages))
	for i, passage := range passages {
		results[i] = &model.RetrievalResult{
			Content:  passage.Content,
			Distance: passage.Distance,
			SourceID: passage.SourceID,
			Method:   model.RetrievalMethodVector,
		}
	}
	return results, nil
}
