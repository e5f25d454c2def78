package pipeline

import "github.com/saisubham-29/medrag/model"

// ChunkFunc is a function that splits source text into passage windows.
type ChunkFunc func(text string) ([]string, error)

// EmbedFunc is a function that generates embeddings for text.
type EmbedFunc func(text string) ([]float32, error)

// Pipeline combines chunking and embedding functions.
// The embedder is optional; without it Process produces passages without
// embeddings, which is what the lexical fallback index consumes.
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new processing pipeline.
func NewPipeline(chunker ChunkFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Process splits source text into passages tagged with the given source id.
// Chunk indexes follow document order so ties in later scoring stay stable.
func (p *Pipeline) Process(text string, sourceID string) ([]*model.Passage, error) {
	windows, err := p.Chunker(text)
	if err != nil {
		return nil, err
	}

	passages := make([]*model.Passage, 0, len(windows))
	for i, content := range windows {
		passage := &model.Passage{
			Content:    content,
			SourceID:   sourceID,
			ChunkIndex: i,
			Metadata:   make(model.Metadata),
		}

		if p.Embedder != nil {
			embedding, err := p.Embedder(content)
			if err != nil {
				return nil, err
			}
			passage.Embedding = embedding
		}

		passages = append(passages, passage)
	}

	return passages, nil
}
