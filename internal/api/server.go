package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmorel/goflick/internal/api/handlers"
	"github.com/jmorel/goflick/internal/api/middleware"
	"github.com/jmorel/goflick/internal/auth"
	"github.com/jmorel/goflick/internal/config"
	"github.com/jmorel/goflick/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	verifier *auth.Verifier
	sessions *auth.SessionManager
	catalog  *tmdb.Client
	logger   *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, verifier *auth.Verifier, sessions *auth.SessionManager, catalog *tmdb.Client, logger *logrus.Logger) *Server {
	s := &Server{
		verifier: verifier,
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: middleware.Logging(mux, logger),
		// Catalog calls block through the whole retry series, so the write
		// timeout has to outlast it
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	authHandler := handlers.NewAuthHandler(s.verifier, s.sessions, s.logger)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	catalogHandler := handlers.NewCatalogHandler(s.catalog, s.sessions, s.logger)
	mux.HandleFunc("GET /api/movies/trending", catalogHandler.Trending)
	mux.HandleFunc("GET /api/movies/search", catalogHandler.SearchMovies)
	mux.HandleFunc("GET /api/movies/discover", catalogHandler.Discover)
	mux.HandleFunc("GET /api/movies/{id}", catalogHandler.MovieDetails)
	mux.HandleFunc("GET /api/movies/{id}/videos", catalogHandler.MovieVideos)
	mux.HandleFunc("GET /api/people/search", catalogHandler.SearchPeople)
	mux.HandleFunc("GET /api/people/{id}/credits", catalogHandler.PersonCredits)
	mux.HandleFunc("GET /api/genres", catalogHandler.Genres)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
