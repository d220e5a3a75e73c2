package get

import (
	"log/slog"
	"net/http"

	"github.com/a-h/respond"
	"github.com/synerge/synergereader/history"
	"github.com/synerge/synergereader/models"
)

func New(log *slog.Logger, store history.Store) Handler {
	return Handler{
		log:   log,
		store: store,
	}
}

type Handler struct {
	log   *slog.Logger
	store history.Store
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Recent(r.Context(), history.RecencyWindow)
	if err != nil {
		h.log.Error("failed to read history", slog.Any("error", err))
		respond.WithError(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	respond.WithJSON(w, models.HistoryResponse{Items: records}, http.StatusOK)
}
