package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/gridiron/internal/features"
	"github.com/fortuna/gridiron/internal/scrape"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db       *store.Database
	scraper  *scrape.Service
	features *features.Service
	games    *repository.GameRepository
	teams    *repository.TeamRepository
	stadiums *repository.StadiumRepository
	stats    *repository.StatRepository
	players  *repository.PlayerRepository
}

// NewHandler creates a new handler
func NewHandler(
	db *store.Database,
	scraper *scrape.Service,
	featureSvc *features.Service,
	games *repository.GameRepository,
	teams *repository.TeamRepository,
	stadiums *repository.StadiumRepository,
	stats *repository.StatRepository,
	players *repository.PlayerRepository,
) *Handler {
	return &Handler{
		db:       db,
		scraper:  scraper,
		features: featureSvc,
		games:    games,
		teams:    teams,
		stadiums: stadiums,
		stats:    stats,
		players:  players,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "gridiron",
	})
}

type scrapeRequest struct {
	Mode string `json:"mode"`
}

// StartScrape launches a scrape run in the background.
func (h *Handler) StartScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode := scrape.Mode(req.Mode)
	if mode != scrape.ModeAll && mode != scrape.ModeRecent {
		respondError(w, http.StatusBadRequest, "Mode must be \"all\" or \"recent\"", nil)
		return
	}

	go func() {
		ctx := context.Background()
		var err error
		if mode == scrape.ModeAll {
			err = h.scraper.ScrapeAll(ctx)
		} else {
			err = h.scraper.ScrapeRecent(ctx)
		}
		if err != nil && !errors.Is(err, scrape.ErrAlreadyRunning) {
			log.Printf("[rest] Scrape run failed: %v", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Scrape run started",
		"mode":    string(mode),
	})
}

// ScrapeStatus returns the current or most recent scrape run state.
func (h *Handler) ScrapeStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scraper.Status())
}

type transformRequest struct {
	Stage string `json:"stage"`
}

// RunTransform runs the feature pipeline, or a single stage of it.
func (h *Handler) RunTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var err error
	if req.Stage == "" || req.Stage == "all" {
		err = h.features.RunAll(r.Context())
	} else {
		err = h.features.RunStage(r.Context(), req.Stage)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Transform failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Transform complete",
		"stage":   req.Stage,
	})
}

// GetGames returns games in a date range (default: the last year).
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	to := time.Now()
	from := to.AddDate(-1, 0, 0)

	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		from = parsed
	}
	if s := r.URL.Query().Get("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		to = parsed
	}

	games, err := h.games.GetByDateRange(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetGame returns one game by ID.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	game, err := h.games.GetByID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGameStats returns both team stat lines for a game.
func (h *Handler) GetGameStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	stats, err := h.stats.GetByGameID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetGamePlayers returns all player records for a game.
func (h *Handler) GetGamePlayers(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(mux.Vars(r)["gameID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid game ID", err)
		return
	}

	players, err := h.players.GetByGameID(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player stats", err)
		return
	}

	respondJSON(w, http.StatusOK, players)
}

// GetTeams returns all franchises.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, teams)
}

// GetStadiums returns all venues.
func (h *Handler) GetStadiums(w http.ResponseWriter, r *http.Request) {
	stadiums, err := h.stadiums.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stadiums", err)
		return
	}

	respondJSON(w, http.StatusOK, stadiums)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
