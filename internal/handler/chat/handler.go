package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/misssam/tutor-backend/internal/service/conversation"
	"github.com/misssam/tutor-backend/internal/service/tutor"
	"github.com/misssam/tutor-backend/pkg/utils"
)

// Handler exposes the session lifecycle and the per-turn chat pipeline.
type Handler struct {
	conversations *conversation.Service
	controller    *tutor.Controller
}

// New creates the chat handler.
func New(conversations *conversation.Service, controller *tutor.Controller) *Handler {
	return &Handler{
		conversations: conversations,
		controller:    controller,
	}
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/session/{sessionID}/messages", h.handleMessage)
	r.Get("/session/{sessionID}/transcript", h.handleTranscript)
}

// handleCreateSession provisions a fresh tutoring session.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.conversations.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleMessage runs one user-input event through the turn controller.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	outcome, err := h.controller.HandleInput(r.Context(), sessionID, payload.Content)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, outcome)
}

// handleTranscript returns the fully-paired turns for display.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.conversations.PairedTurns(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}

	utils.RespondJSON(w, http.StatusOK, turns)
}
