// Package retrieval provides nearest-passage retrieval over a fixed corpus.
// Two implementations exist behind the Index interface: a pgvector-backed
// vector index and a deterministic lexical-overlap fallback. Callers never
// branch on which mode is active; backend absence is a construction-time
// configuration, not an error.
package retrieval

import (
	"context"
	"fmt"

	"github.com/saisubham-29/medrag/model"
)

// Index is the knowledge-base capability: build the passage set once, then
// serve nearest-passage queries. Results are ordered by ascending distance
// (lower is better) in every implementation.
type Index interface {
	// IndexSources splits each source document into overlapping passages
	// tagged with a positional source id, replacing any previous corpus.
	IndexSources(ctx context.Context, sources []string) error
	// Retrieve returns up to k passages ordered by ascending distance.
	// An empty or unindexed corpus yields an empty result, not an error.
	Retrieve(ctx context.Context, query string, k int) ([]*model.RetrievalResult, error)
}

// SourceID derives the provenance tag for the i-th source document.
func SourceID(i int) string {
	return fmt.Sprintf("medical_ref_%d", i)
}
