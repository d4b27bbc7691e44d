package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/kudos/pkg/cli/config"
	slackCtrl "github.com/secmon-lab/kudos/pkg/controller/slack"
	"github.com/secmon-lab/kudos/pkg/usecase"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router       chi.Router
	slackHandler *slackCtrl.Handler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	slackConfig *config.SlackConfig,
	kudosUC usecase.KudosUseCase,
) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	slackHandler := slackCtrl.NewHandler(ctx, slackConfig, kudosUC)
	recognitionHandler := NewRecognitionHandler(ctx, kudosUC)

	// Both endpoints accept POST only
	router.MethodNotAllowed(handleMethodNotAllowed)

	router.Get("/health", handleHealth)
	router.Post("/slack", slackHandler.HandleInteraction)
	router.Post("/sendRecognition", recognitionHandler.HandleSendRecognition)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:       router,
		slackHandler: slackHandler,
	}

	return server, nil
}

// handleMethodNotAllowed rejects non-POST methods on the POST-only routes
func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	w.WriteHeader(http.StatusMethodNotAllowed)
	if _, err := w.Write([]byte("Method " + r.Method + " Not Allowed")); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response", "error", err)
	}
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "kudos",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
