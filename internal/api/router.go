package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/playerbase/playerbase/internal/api/handler"
	"github.com/playerbase/playerbase/internal/api/middleware"
	"github.com/playerbase/playerbase/internal/services/identity"
	"github.com/playerbase/playerbase/internal/services/progress"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	ProgressService *progress.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.IdentityService)
	authHandler := handler.NewAuthHandler(cfg.IdentityService)
	progressHandler := handler.NewProgressHandler(cfg.ProgressService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account creation and login (no auth required)
	api.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/vk", authHandler.VKLogin).Methods(http.MethodPost)

	// Protected user routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware)
	users.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet)
	users.HandleFunc("/{user_id}", userHandler.Get).Methods(http.MethodGet)
	users.HandleFunc("/{user_id}", userHandler.Delete).Methods(http.MethodDelete)
	users.HandleFunc("/{user_id}/progress", progressHandler.Get).Methods(http.MethodGet)
	users.HandleFunc("/{user_id}/progress", progressHandler.Update).Methods(http.MethodPatch)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
