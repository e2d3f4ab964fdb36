package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Scrape operations
	api.HandleFunc("/scrape", handler.StartScrape).Methods("POST")
	api.HandleFunc("/scrape/status", handler.ScrapeStatus).Methods("GET")

	// Feature pipeline
	api.HandleFunc("/transform", handler.RunTransform).Methods("POST")

	// Games
	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/stats", handler.GetGameStats).Methods("GET")
	api.HandleFunc("/games/{gameID}/players", handler.GetGamePlayers).Methods("GET")

	// Reference data
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/stadiums", handler.GetStadiums).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
