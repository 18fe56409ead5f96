package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/capmap-hq/capmap/core/capability"
	"github.com/capmap-hq/capmap/genai"
)

// HTTP is the JSON API over the capability store and the generator. The
// store is swappable at runtime so a seed-file watcher can publish a
// reloaded knowledge base without restarting the server.
type HTTP struct {
	version string
	gen     Generator

	mu    sync.RWMutex
	store capability.Store
}

// NewHTTP creates the JSON API server.
func NewHTTP(version string, store capability.Store, gen Generator) *HTTP {
	return &HTTP{version: version, store: store, gen: gen}
}

// ReplaceStore atomically swaps the capability store serving reads.
func (s *HTTP) ReplaceStore(store capability.Store) {
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
}

func (s *HTTP) currentStore() capability.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Handler returns the routed HTTP handler.
func (s *HTTP) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/capabilities", s.handleList)
	mux.HandleFunc("POST /v1/capabilities", s.handleCreate)
	mux.HandleFunc("GET /v1/capabilities/{id}", s.handleGet)
	mux.HandleFunc("PATCH /v1/capabilities/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /v1/capabilities/{id}", s.handleDelete)
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
	})
	return mux
}

func (s *HTTP) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := s.currentStore().FetchAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *HTTP) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	rec, err := s.currentStore().Create(r.Context(), body.Name, body.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *HTTP) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.currentStore().FetchByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, capability.ErrNotFound) {
			writeError(w, http.StatusNotFound, "capability not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *HTTP) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, err := s.currentStore().Update(r.Context(), r.PathValue("id"), capability.Update{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		if errors.Is(err, capability.ErrNotFound) {
			writeError(w, http.StatusNotFound, "capability not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *HTTP) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.currentStore().Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "capability not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTP) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Capability      string   `json:"capability"`
		ContextSections []string `json:"context_sections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Capability == "" {
		writeError(w, http.StatusBadRequest, "capability is required")
		return
	}

	result, err := s.gen.Generate(r.Context(), body.Capability, body.ContextSections...)
	if err != nil {
		var cfgErr *genai.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
