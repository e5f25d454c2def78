package model

type RetrievalMethod string

const (
	RetrievalMethodVector  RetrievalMethod = "vector"
	RetrievalMethodLexical RetrievalMethod = "lexical"
)

// RetrievalResult represents a passage retrieved for a query.
// Distance is a true distance in both retrieval modes: lower is better,
// so downstream scoring never needs to branch on the retrieval method.
type RetrievalResult struct {
	Content  string          `json:"content"`
	Distance float64         `json:"distance"`
	SourceID string          `json:"source_id"`
	Method   RetrievalMethod `json:"method"`
}

// SourceIDs returns the source ids of the results in retrieval order.
// Duplicates are kept when the same source was chunked and retrieved twice.
func SourceIDs(results []*RetrievalResult) []string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.SourceID)
	}
	return ids
}
