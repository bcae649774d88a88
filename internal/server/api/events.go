// Package api provides HTTP API handlers for the gestify daemon.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ranjeetds/gestify/internal/store"
)

// EventsHandler serves the recent gesture event log.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID        string `json:"id"`
	Gesture   string `json:"gesture"`
	Hand      string `json:"hand,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	EmittedAt string `json:"emitted_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles GET /api/events?limit=N.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := listEventsResponse{Events: make([]eventResponse, len(events))}
	for i, e := range events {
		resp.Events[i] = eventResponse{
			ID:        e.ID,
			Gesture:   e.Gesture,
			Hand:      e.Hand,
			X:         e.X,
			Y:         e.Y,
			EmittedAt: e.EmittedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
