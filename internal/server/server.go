// Package server provides the HTTP REST API for the job matching engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/matching"
	"github.com/jonathan/jobmatch/internal/types"
)

// MatchService is the engine surface the HTTP layer needs.
type MatchService interface {
	Refresh(ctx context.Context, userID uuid.UUID) (types.RefreshResult, error)
	Transition(ctx context.Context, matchID uuid.UUID, status string) (*types.JobMatch, error)
	GetMatch(ctx context.Context, matchID uuid.UUID) (*types.JobMatch, error)
	ListMatches(ctx context.Context, userID uuid.UUID, opts matching.ListOptions) ([]types.JobMatch, error)
	Stats(ctx context.Context, userID uuid.UUID, opts matching.StatsOptions) (*types.MatchStats, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	matches    MatchService
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance
func New(cfg Config, matches MatchService) *Server {
	s := &Server{matches: matches}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Match endpoints
	mux.HandleFunc("POST /users/{id}/matches/refresh", s.handleRefreshMatches)
	mux.HandleFunc("GET /users/{id}/matches", s.handleListMatches)
	mux.HandleFunc("GET /users/{id}/matches/stats", s.handleMatchStats)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("PATCH /matches/{id}/status", s.handleUpdateMatchStatus)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Start runs the server until an interrupt or termination signal arrives,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// handleHealth reports server liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
