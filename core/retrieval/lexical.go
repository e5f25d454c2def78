package retrieval

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/saisubham-29/medrag/core/pipeline"
	"github.com/saisubham-29/medrag/model"
)

var termPattern = regexp.MustCompile(`[a-z0-9]+`)

// LexicalIndex is the deterministic fallback used when no embedding backend is
// available. It scores passages by keyword overlap with the query:
// distance = 1 - |query ∩ passage| / max(1, |query|), ties broken by original
// passage order. Identical (corpus, query, k) always yields identical results,
// so it doubles as the reference behavior for tests.
type LexicalIndex struct {
	chunker pipeline.ChunkFunc

	mu       sync.RWMutex
	passages []*model.Passage
	terms    []map[string]struct{}
}

// NewLexicalIndex creates a lexical fallback index using the given chunker,
// or the default window chunker when nil.
func NewLexicalIndex(chunker pipeline.ChunkFunc) *LexicalIndex {
	if chunker == nil {
		chunker = pipeline.DefaultChunker()
	}
	return &LexicalIndex{chunker: chunker}
}

// IndexSources chunks each source into passages and precomputes their term sets.
func (idx *LexicalIndex) IndexSources(ctx context.Context, sources []string) error {
	p := pipeline.NewPipeline(idx.chunker, nil)

	var passages []*model.Passage
	for i, source := range sources {
		chunks, err := p.Process(source, SourceID(i))
		if err != nil {
			return err
		}
		passages = append(passages, chunks...)
	}

	terms := make([]map[string]struct{}, len(passages))
	for i, passage := range passages {
		terms[i] = termSet(passage.Content)
	}

	idx.mu.Lock()
	idx.passages = passages
	idx.terms = terms
	idx.mu.Unlock()

	return nil
}

// Retrieve scores every passage against the query and returns the top k by
// ascending distance. It never fails: an empty corpus yields an empty result
// and a zero-overlap query yields the worst defined distance of 1.0.
func (idx *LexicalIndex) Retrieve(ctx context.Context, query string, k int) ([]*model.RetrievalResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.passages) == 0 || k <= 0 {
		return []*model.RetrievalResult{}, nil
	}

	queryTerms := termSet(query)
	queryLen := len(queryTerms)
	if queryLen < 1 {
		queryLen = 1
	}

	results := make([]*model.RetrievalResult, 0, len(idx.passages))
	for i, passage := range idx.passages {
		overlap := 0
		for term := range queryTerms {
			if _, ok := idx.terms[i][term]; ok {
				overlap++
			}
		}

		results = append(results, &model.RetrievalResult{
			Content:  passage.Content,
			Distance: 1.0 - float64(overlap)/float64(queryLen),
			SourceID: passage.SourceID,
			Method:   model.RetrievalMethodLexical,
		})
	}

	// Stable sort keeps original passage order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// termSet tokenizes text into a set of lowercase alphanumeric terms.
func termSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		set[term] = struct{}{}
	}
	return set
}
