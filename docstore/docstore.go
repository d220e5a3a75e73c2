// Package docstore keeps the chunks and embeddings of uploaded documents in
// memory and selects context chunks for a question by lexical overlap, the
// same discipline the history ranker uses. Chunks live for the process
// lifetime; history is the only durable entity in the system.
package docstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/synerge/synergereader/relevance"
)

// DefaultMaxContextChunks is the default number of chunks handed to the
// prompt composer per question.
const DefaultMaxContextChunks = 5

// Document is one uploaded document's chunks in document order, with their
// embeddings. Embeddings are transient model output held for the caller; they
// are never written to durable storage.
type Document struct {
	ID         string
	Chunks     []string
	Embeddings [][]float32
}

func New() *Store {
	return &Store{
		documents: make(map[string]Document),
	}
}

type Store struct {
	mu        sync.RWMutex
	documents map[string]Document
	order     []string
}

// Put stores a document's chunks, replacing any previous document with the
// same id.
func (s *Store) Put(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.documents[doc.ID] = doc
}

// Get returns a stored document by id.
func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	return doc, ok
}

type scoredChunk struct {
	text  string
	score int
}

// Search returns up to limit chunks relevant to the query, most matching
// first. A chunk's score is the number of distinct query words (from the
// question and the selected text, case-insensitive) found within it; chunks
// matching no query word are never returned. Ties keep upload order, newest
// document last.
func (s *Store) Search(q relevance.Query, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxContextChunks
	}
	words := queryWords(q)
	if len(words) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var scored []scoredChunk
	for _, id := range s.order {
		for _, chunk := range s.documents[id].Chunks {
			lower := strings.ToLower(chunk)
			score := 0
			for _, word := range words {
				if strings.Contains(lower, word) {
					score++
				}
			}
			if score > 0 {
				scored = append(scored, scoredChunk{text: chunk, score: score})
			}
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	chunks := make([]string, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.text
	}
	return chunks
}

func queryWords(q relevance.Query) []string {
	seen := make(map[string]bool)
	var words []string
	for _, word := range strings.Fields(strings.ToLower(q.Question + " " + q.SelectedText)) {
		if !seen[word] {
			seen[word] = true
			words = append(words, word)
		}
	}
	return words
}
