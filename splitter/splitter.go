// Package splitter divides raw document text into bounded chunks for
// retrieval. Words are never split or truncated, so a chunk is always a
// readable slice of the source document.
package splitter

import "strings"

// DefaultMaxChunkChars is the chunk budget used by the upload pipeline.
const DefaultMaxChunkChars = 500

// Split breaks text into chunks of whitespace-delimited words. Words are
// accumulated greedily while the sum of their character lengths (separator
// spaces excluded) stays within maxChunkChars; the word that would overflow
// the budget starts the next chunk. A single word longer than the budget is
// emitted as its own chunk.
func Split(text string, maxChunkChars int) []string {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []string
	var current []string
	var size int
	for _, word := range words {
		if len(current) > 0 && size+len(word) > maxChunkChars {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			size = 0
		}
		current = append(current, word)
		size += len(word)
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
