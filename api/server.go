// Package api exposes the triage engine over HTTP. Triage is synchronous:
// the ticket comes back in the response, nothing is queued.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ops-triage/history"
	"ops-triage/logger"
	"ops-triage/triage"
)

// Config configures the API server.
type Config struct {
	AuthToken    string
	MaxBodyBytes int64
}

// Server handles the triage HTTP API.
type Server struct {
	engine       *triage.Engine
	ring         *history.Ring
	log          logger.Logger
	authToken    string
	maxBodyBytes int64
}

// NewServer creates an API server around a triage engine and a history ring.
func NewServer(engine *triage.Engine, ring *history.Ring, log logger.Logger, cfg Config) *Server {
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 64 * 1024
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		engine:       engine,
		ring:         ring,
		log:          log,
		authToken:    cfg.AuthToken,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/triage", s.handleTriage)
	mux.HandleFunc("/api/v1/tickets", s.handleTicketsList)
	mux.HandleFunc("/api/v1/tickets/", s.handleTicketDetail)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/health", s.handleHealth)

	if s.authToken == "" {
		return mux
	}
	return s.authMiddleware(mux)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Health stays public for probes
		if r.URL.Path == "/api/v1/health" {
			next.ServeHTTP(w, r)
			return
		}
		token := r.Header.Get("Authorization")
		expected := "Bearer " + s.authToken
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleTriage accepts either {"text": "..."} or a raw text body and
// responds with the full ticket.
func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	rawBody, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	text := string(rawBody)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var envelope struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(rawBody, &envelope); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}
		text = envelope.Text
	}

	eventID := "evt-" + uuid.New().String()[:8]
	ticket, err := s.engine.Triage(text)
	if err != nil {
		if errors.Is(err, triage.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "incident text is empty")
			return
		}
		s.log.Error("api.triage_failed", logger.String("event_id", eventID), logger.Err(err))
		writeError(w, http.StatusInternalServerError, "triage failed")
		return
	}

	s.ring.Add(ticket)
	s.log.Info("api.triaged",
		logger.String("event_id", eventID),
		logger.String("ticket_id", ticket.TicketID),
		logger.String("category", string(ticket.Category)),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"event_id": eventID,
		"ticket":   ticket,
	})
}

func (s *Server) handleTicketsList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	tickets := s.ring.Recent(limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   s.ring.Len(),
		"tickets": tickets,
	})
}

func (s *Server) handleTicketDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/tickets/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	ticket := s.ring.Get(id)
	if ticket == nil {
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.ring.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"tickets": s.ring.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
