package pipeline

import (
	"fmt"
	"strings"
)

// WindowChunker creates a chunker that splits text into fixed-size overlapping
// character windows. The overlap guarantees a fact near a window boundary is
// retrievable from at least one passage.
func WindowChunker(size int, overlap int) ChunkFunc {
	return func(text string) ([]string, error) {
		if size <= 0 {
			return nil, fmt.Errorf("window size must be positive")
		}
		if overlap < 0 || overlap >= size {
			return nil, fmt.Errorf("overlap must be in [0, size)")
		}

		// Handle empty or whitespace-only text
		if strings.TrimSpace(text) == "" {
			return []string{}, nil
		}

		runes := []rune(text)
		step := size - overlap

		var windows []string
		for start := 0; start < len(runes); start += step {
			end := start + size
			if end > len(runes) {
				end = len(runes)
			}
			windows = append(windows, string(runes[start:end]))
			if end == len(runes) {
				break
			}
		}

		return windows, nil
	}
}

// DefaultChunker returns the corpus chunker with the standard window geometry
// (500 character windows, 50 character overlap).
func DefaultChunker() ChunkFunc {
	return WindowChunker(500, 50)
}
