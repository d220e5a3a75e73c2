package get

import (
	"net/http"

	"github.com/a-h/respond"
	"github.com/synerge/synergereader/models"
)

func New() Handler {
	return Handler{}
}

type Handler struct{}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, models.HealthResponse{Message: "SynergeReader API is working!"}, http.StatusOK)
}
