package pipeline

import (
	"fmt"
	"strings"
)

// SlidingWindowChunker creates a chunker with a fixed size window moving by chunkSize-overlap runes.
// Consecutive chunks share exactly overlap runes, only the last chunk may be shorter.
func SlidingWindowChunker(chunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]TextChunk, error) {
		if chunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if overlap < 0 || overlap >= chunkSize {
			return nil, fmt.Errorf("overlap must be between 0 and chunk size (got %d for size %d)", overlap, chunkSize)
		}

		// Handle empty or whitespace-only text
		if strings.TrimSpace(text) == "" {
			return []TextChunk{}, nil
		}

		runes := []rune(text)
		step := chunkSize - overlap
		chunks := make([]TextChunk, 0, len(runes)/step+1)

		for start := 0; ; start += step {
			end := start + chunkSize
			if end > len(runes) {
				end = len(runes)
			}

			chunks = append(chunks, TextChunk{
				Content:  string(runes[start:end]),
				StartPos: start,
				EndPos:   end,
			})

			if end == len(runes) {
				break
			}
		}

		return chunks, nil
	}
}
