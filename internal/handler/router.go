package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/misssam/tutor-backend/internal/handler/chat"
	liveHandler "github.com/misssam/tutor-backend/internal/handler/live"
	personaHandler "github.com/misssam/tutor-backend/internal/handler/persona"
	middlewarePkg "github.com/misssam/tutor-backend/internal/middleware"
	"github.com/misssam/tutor-backend/internal/service/conversation"
	"github.com/misssam/tutor-backend/internal/service/tutor"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(conversations *conversation.Service, controller *tutor.Controller) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New().RegisterRoutes(api)
		chatHandler.New(conversations, controller).RegisterRoutes(api)
		liveHandler.New(conversations, controller).RegisterRoutes(api)
	})

	return r
}
