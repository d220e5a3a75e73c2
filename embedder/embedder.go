// Package embedder converts document chunks into fixed-dimension vectors
// using a pretrained embedding model. The model client is constructed once at
// process start and injected here; this service adds the batch contract the
// pipeline relies on: one vector per chunk, same order, and never a partial
// result.
package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
)

// ErrModelUnavailable wraps failures to reach the underlying embedding model.
var ErrModelUnavailable = errors.New("embedder: model unavailable")

func New(embedder embeddings.Embedder) *Service {
	return &Service{
		embedder: embedder,
	}
}

type Service struct {
	embedder embeddings.Embedder
}

// Embed returns one embedding per chunk, in chunk order. On any failure no
// embeddings are returned at all: a partial batch would silently desynchronize
// chunks from their vectors.
func (s *Service) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder: expected %d embeddings, got %d", len(chunks), len(vectors))
	}
	return vectors, nil
}
