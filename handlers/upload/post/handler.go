package post

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/respond"
	"github.com/synerge/synergereader/docstore"
	"github.com/synerge/synergereader/embedder"
	"github.com/synerge/synergereader/models"
	"github.com/synerge/synergereader/splitter"
)

// MaxUploadBytes is the upload size ceiling (20 MiB).
const MaxUploadBytes = 20 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
}

func New(log *slog.Logger, embeddingService *embedder.Service, docs *docstore.Store, maxChunkChars int) Handler {
	if maxChunkChars <= 0 {
		maxChunkChars = splitter.DefaultMaxChunkChars
	}
	return Handler{
		log:           log,
		embedder:      embeddingService,
		docs:          docs,
		maxChunkChars: maxChunkChars,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type Handler struct {
	log           *slog.Logger
	embedder      *embedder.Service
	docs          *docstore.Store
	maxChunkChars int
	now           func() time.Time
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.WithError(w, "File too large. Maximum size is 20MB.", http.StatusBadRequest)
			return
		}
		h.log.Error("failed to read form file", slog.Any("error", err))
		respond.WithError(w, "expected a multipart form with a file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respond.WithError(w, "Unsupported file type. Please upload PDF, TXT, or DOCX files.", http.StatusBadRequest)
		return
	}
	if header.Size > MaxUploadBytes {
		respond.WithError(w, "File too large. Maximum size is 20MB.", http.StatusBadRequest)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.WithError(w, "File too large. Maximum size is 20MB.", http.StatusBadRequest)
			return
		}
		h.log.Error("failed to read file", slog.Any("error", err))
		respond.WithError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	// Best-effort decode. Non-text formats need an extraction collaborator;
	// until then invalid bytes are replaced rather than rejected.
	text := strings.ToValidUTF8(string(content), "�")

	chunks := splitter.Split(text, h.maxChunkChars)
	embeddings, err := h.embedder.Embed(r.Context(), chunks)
	if err != nil {
		h.log.Error("failed to embed chunks", slog.Any("error", err))
		respond.WithError(w, "failed to embed document", http.StatusInternalServerError)
		return
	}

	documentID := fmt.Sprintf("doc_%s", h.now().Format("20060102_150405"))
	h.docs.Put(docstore.Document{
		ID:         documentID,
		Chunks:     chunks,
		Embeddings: embeddings,
	})

	h.log.Info("document uploaded",
		slog.String("document_id", documentID),
		slog.String("filename", header.Filename),
		slog.Int("chunks", len(chunks)))

	respond.WithJSON(w, models.UploadResponse{
		Message:    "Document uploaded and processed successfully",
		DocumentID: documentID,
		TextLength: len(text),
		ChunkCount: len(chunks),
	}, http.StatusOK)
}
