package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/synerge/synergereader/docstore"
	"github.com/synerge/synergereader/embedder"
	"github.com/synerge/synergereader/models"
	"github.com/synerge/synergereader/relevance"
)

type fakeEmbedder struct {
	err error
}

func (f fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(i)}
	}
	return vectors, nil
}

func (f fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0}, f.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err = fw.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err = mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	docs := docstore.New()
	h := New(newTestLogger(), embedder.New(fakeEmbedder{}), docs, 10)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartUpload(t, "notes.txt", []byte("the quick brown fox jumps")))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.UploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.DocumentID, "doc_") {
		t.Errorf("unexpected document id %q", resp.DocumentID)
	}
	if resp.TextLength != len("the quick brown fox jumps") {
		t.Errorf("unexpected text length %d", resp.TextLength)
	}
	if resp.ChunkCount != 3 {
		t.Errorf("expected 3 chunks, got %d", resp.ChunkCount)
	}

	doc, ok := docs.Get(resp.DocumentID)
	if !ok {
		t.Fatal("expected the document to be indexed")
	}
	if len(doc.Chunks) != 3 || len(doc.Embeddings) != 3 {
		t.Errorf("expected 3 chunks and 3 embeddings, got %d and %d", len(doc.Chunks), len(doc.Embeddings))
	}
	if chunks := docs.Search(relevance.Query{Question: "fox"}, 5); len(chunks) != 1 {
		t.Errorf("expected the uploaded chunks to be searchable, got %v", chunks)
	}
}

func TestUploadInvalidUTF8IsReplaced(t *testing.T) {
	docs := docstore.New()
	h := New(newTestLogger(), embedder.New(fakeEmbedder{}), docs, 500)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartUpload(t, "notes.txt", []byte{'o', 'k', ' ', 0xff, 0xfe, ' ', 'e', 'n', 'd'}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	h := New(newTestLogger(), embedder.New(fakeEmbedder{}), docstore.New(), 500)
	for _, filename := range []string{"image.png", "archive.zip", "noextension"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, multipartUpload(t, filename, []byte("content")))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", filename, w.Code)
		}
	}
}

func TestUploadAcceptsCaseInsensitiveExtensions(t *testing.T) {
	h := New(newTestLogger(), embedder.New(fakeEmbedder{}), docstore.New(), 500)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartUpload(t, "REPORT.TXT", []byte("content")))
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestUploadRejectsMissingFileField(t *testing.T) {
	h := New(newTestLogger(), embedder.New(fakeEmbedder{}), docstore.New(), 500)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not multipart"))
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestUploadEmbedderFailureAborts(t *testing.T) {
	docs := docstore.New()
	h := New(newTestLogger(), embedder.New(fakeEmbedder{err: errors.New("model offline")}), docs, 500)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartUpload(t, "notes.txt", []byte("some text")))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if chunks := docs.Search(relevance.Query{Question: "some"}, 5); len(chunks) != 0 {
		t.Errorf("expected no partial state after a failed embed, got %v", chunks)
	}
}
