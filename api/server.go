package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wricardo/ping-game/game/session"
	"github.com/wricardo/ping-game/transport/websocket"
)

// Server represents the HTTP server
type Server struct {
	registry *session.Registry
	hub      *websocket.Hub
	router   *mux.Router
}

// NewServer creates a new HTTP server over the registry and hub.
func NewServer(registry *session.Registry, hub *websocket.Hub) *Server {
	s := &Server{
		registry: registry,
		hub:      hub,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", s.handleIndex).Methods("GET")
	api.HandleFunc("/rules", s.handleRules).Methods("GET")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.hub.ServeWS)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name": "ping",
		"endpoints": []string{
			"GET /ws",
			"GET /api/rules",
			"GET /api/matches",
			"GET /api/matches/{id}",
			"GET /api/stats",
			"GET /health",
		},
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, session.GameRules())
}

// MatchList is the response of GET /api/matches.
type MatchList struct {
	Matches []session.MatchInfo `json:"matches"`
	Recent  []session.MatchInfo `json:"recent,omitempty"`
	Count   int                 `json:"count"`
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	matches := s.registry.List()
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	resp := MatchList{Matches: matches, Count: len(matches)}

	if recent, _ := strconv.ParseBool(query.Get("recent")); recent {
		resp.Recent = s.registry.Recent()
		// newest first
		for i, j := 0, len(resp.Recent)-1; i < j; i, j = i+1, j-1 {
			resp.Recent[i], resp.Recent[j] = resp.Recent[j], resp.Recent[i]
		}
		if limit > 0 && len(resp.Recent) > limit {
			resp.Recent = resp.Recent[:limit]
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	info, err := s.registry.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrMatchNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// StatsResponse is the response of GET /api/stats.
type StatsResponse struct {
	session.Stats
	Connections int `json:"connections"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StatsResponse{
		Stats:       s.registry.Stats(),
		Connections: s.hub.Clients(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
