package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/misssam/tutor-backend/internal/service/ai"
	"github.com/misssam/tutor-backend/pkg/utils"
)

// Handler serves the tutor's public persona card.
type Handler struct{}

// New creates the persona handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes registers persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/persona", h.handleGetPersona)
}

// handleGetPersona exposes display metadata only, never the instruction text.
func (h *Handler) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, ai.Persona())
}
