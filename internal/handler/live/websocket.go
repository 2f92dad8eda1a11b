// Package live exposes the chat pipeline over a WebSocket. Each inbound
// text message is one input event and produces exactly one outbound
// envelope with the full reply; there is no token streaming.
package live

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/misssam/tutor-backend/internal/service/conversation"
	"github.com/misssam/tutor-backend/internal/service/tutor"
)

// Handler upgrades chat connections and runs the per-message loop.
type Handler struct {
	conversations *conversation.Service
	controller    *tutor.Controller
	upgrader      websocket.Upgrader
}

// New creates the live chat handler.
func New(conversations *conversation.Service, controller *tutor.Controller) *Handler {
	return &Handler{
		conversations: conversations,
		controller:    controller,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the live chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live/{sessionID}", h.handleSocket)
}

type inboundMessage struct {
	Content string `json:"content"`
}

type outboundMessage struct {
	Kind  tutor.OutcomeKind `json:"kind,omitempty"`
	Reply string            `json:"reply,omitempty"`
	Error string            `json:"error,omitempty"`
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.conversations.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[live] connection opened for session=%s", sessionID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[live] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		if strings.TrimSpace(inbound.Content) == "" {
			if err := conn.WriteJSON(outboundMessage{Error: "content is required"}); err != nil {
				log.Printf("[live] write failed for session=%s: %v", sessionID, err)
				return
			}
			continue
		}

		outcome, err := h.controller.HandleInput(r.Context(), sessionID, inbound.Content)
		if err != nil {
			outbound := outboundMessage{Error: "failed to process message"}
			if errors.Is(err, conversation.ErrSessionNotFound) {
				outbound.Error = "session not found"
			}
			if err := conn.WriteJSON(outbound); err != nil {
				log.Printf("[live] write failed for session=%s: %v", sessionID, err)
			}
			return
		}

		if err := conn.WriteJSON(outboundMessage{Kind: outcome.Kind, Reply: outcome.Reply}); err != nil {
			log.Printf("[live] write failed for session=%s: %v", sessionID, err)
			return
		}
	}
}
