package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ranjeetds/gestify/internal/store"
)

// BindingsHandler handles HTTP requests for action binding resources.
type BindingsHandler struct {
	store *store.Store

	// OnChange is called after any successful mutation so the running
	// dispatcher can reload its binding table.
	OnChange func()
}

// NewBindingsHandler creates a new BindingsHandler with the given store.
func NewBindingsHandler(s *store.Store) *BindingsHandler {
	return &BindingsHandler{store: s}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/bindings or /api/bindings/{id}.
func (h *BindingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/bindings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type bindingRequest struct {
	Gesture string   `json:"gesture"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Enabled bool     `json:"enabled"`
}

type bindingResponse struct {
	ID      string   `json:"id"`
	Gesture string   `json:"gesture"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Enabled bool     `json:"enabled"`
}

type listBindingsResponse struct {
	Bindings []bindingResponse `json:"bindings"`
}

func toBindingResponse(b *store.Binding) bindingResponse {
	return bindingResponse{
		ID:      b.ID,
		Gesture: b.Gesture,
		Command: b.Command,
		Args:    b.Args,
		Enabled: b.Enabled,
	}
}

func (h *BindingsHandler) list(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.store.Bindings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := listBindingsResponse{Bindings: make([]bindingResponse, len(bindings))}
	for i := range bindings {
		resp.Bindings[i] = toBindingResponse(&bindings[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BindingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Gesture == "" || req.Command == "" {
		writeError(w, http.StatusBadRequest, "gesture and command are required")
		return
	}

	binding := &store.Binding{
		ID:      uuid.NewString(),
		Gesture: req.Gesture,
		Command: req.Command,
		Args:    req.Args,
		Enabled: req.Enabled,
	}

	if err := h.store.Bindings().Create(binding); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusCreated, toBindingResponse(binding))
}

func (h *BindingsHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req bindingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	binding := &store.Binding{
		ID:      id,
		Command: req.Command,
		Args:    req.Args,
		Enabled: req.Enabled,
	}

	err := h.store.Bindings().Update(binding)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "binding not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The gesture is immutable on update; re-read the row so the response
	// carries it.
	updated, err := h.store.Bindings().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusOK, toBindingResponse(updated))
}

func (h *BindingsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Bindings().Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "binding not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *BindingsHandler) notifyChange() {
	if h.OnChange != nil {
		h.OnChange()
	}
}
