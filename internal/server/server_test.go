package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ranjeetds/gestify/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}
		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

func TestServer_EventsEndpoint(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	event := &store.Event{
		ID:        "e1",
		Gesture:   "click",
		Hand:      "Right",
		X:         100,
		Y:         200,
		EmittedAt: time.Now().UTC(),
	}
	if err := st.Events().Insert(event); err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=10", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var response struct {
		Events []struct {
			ID      string `json:"id"`
			Gesture string `json:"gesture"`
			Hand    string `json:"hand"`
			X       int    `json:"x"`
			Y       int    `json:"y"`
		} `json:"events"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(response.Events))
	}
	if response.Events[0].Gesture != "click" || response.Events[0].X != 100 {
		t.Errorf("unexpected event: %+v", response.Events[0])
	}
}

func TestServer_EventsRejectsBadLimit(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=banana", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_BindingsLifecycle(t *testing.T) {
	st := newTestStore(t)

	reloads := 0
	s := New(Config{Store: st, OnBindingsChange: func() { reloads++ }})

	// Create.
	body, _ := json.Marshal(map[string]interface{}{
		"gesture": "confirm",
		"command": "notify-send",
		"args":    []string{"ok"},
		"enabled": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created struct {
		ID      string `json:"id"`
		Gesture string `json:"gesture"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned binding ID")
	}
	if reloads != 1 {
		t.Errorf("expected 1 reload notification, got %d", reloads)
	}

	// List.
	req = httptest.NewRequest(http.MethodGet, "/api/bindings", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var list struct {
		Bindings []struct {
			ID string `json:"id"`
		} `json:"bindings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(list.Bindings))
	}

	// Update.
	body, _ = json.Marshal(map[string]interface{}{
		"command": "echo",
		"enabled": false,
	})
	req = httptest.NewRequest(http.MethodPut, "/api/bindings/"+created.ID, bytes.NewReader(body))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var updated struct {
		Gesture string `json:"gesture"`
		Command string `json:"command"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Gesture != "confirm" {
		t.Errorf("expected update response to keep gesture 'confirm', got %q", updated.Gesture)
	}
	if updated.Command != "echo" {
		t.Errorf("expected updated command 'echo', got %q", updated.Command)
	}
	if reloads != 2 {
		t.Errorf("expected 2 reload notifications, got %d", reloads)
	}

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, "/api/bindings/"+created.ID, nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if reloads != 3 {
		t.Errorf("expected 3 reload notifications, got %d", reloads)
	}

	// Deleting again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/bindings/"+created.ID, nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_BindingsRejectsIncompleteCreate(t *testing.T) {
	st := newTestStore(t)
	s := New(Config{Store: st})

	body, _ := json.Marshal(map[string]interface{}{"gesture": "click"})
	req := httptest.NewRequest(http.MethodPost, "/api/bindings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_StaticFiles(t *testing.T) {
	tmpDir := t.TempDir()
	testContent := "<html><body>Gestify</body></html>"
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte(testContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	s := New(Config{StaticDir: tmpDir})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != testContent {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestServer_NotFoundWithoutStatic(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
