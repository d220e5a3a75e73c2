package post

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/synerge/synergereader/docstore"
	"github.com/synerge/synergereader/generate"
	"github.com/synerge/synergereader/history"
	"github.com/synerge/synergereader/models"
	"github.com/synerge/synergereader/prompt"
	"github.com/synerge/synergereader/relevance"
)

func New(log *slog.Logger, docs *docstore.Store, store history.Store, generator *generate.Generator, maxContextChunks int) Handler {
	if maxContextChunks <= 0 {
		maxContextChunks = docstore.DefaultMaxContextChunks
	}
	return Handler{
		log:              log,
		docs:             docs,
		store:            store,
		generator:        generator,
		maxContextChunks: maxContextChunks,
	}
}

type Handler struct {
	log              *slog.Logger
	docs             *docstore.Store
	store            history.Store
	generator        *generate.Generator
	maxContextChunks int
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		respond.WithError(w, "question must not be empty", http.StatusBadRequest)
		return
	}

	query := relevance.Query{
		SelectedText: req.SelectedText,
		Question:     req.Question,
	}

	contextChunks := h.docs.Search(query, h.maxContextChunks)

	candidates, err := h.store.Recent(r.Context(), history.RecencyWindow)
	if err != nil {
		h.log.Error("failed to read history", slog.Any("error", err))
		respond.WithError(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	ranked := relevance.Rank(query, candidates, relevance.DefaultTopK)

	composed := prompt.Compose(query, contextChunks, ranked)
	answer := h.generator.Generate(r.Context(), composed)

	resp := models.AskResponse{
		Answer:        answer,
		ContextChunks: contextChunks,
	}
	for _, item := range ranked {
		resp.RelevantHistory = append(resp.RelevantHistory, models.RelevantHistory{
			Record:         item.Record,
			RelevanceScore: item.Score,
		})
	}

	// The exchange is recorded after answering; a failed write must not
	// discard the answer, but the caller is told about it.
	if _, err := h.store.Append(r.Context(), history.AppendArgs{
		SelectedText: req.SelectedText,
		Question:     req.Question,
		Answer:       answer,
	}); err != nil {
		h.log.Error("failed to append history", slog.Any("error", err))
		resp.HistoryError = "failed to record the exchange in history"
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
