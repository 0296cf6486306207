package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtmetrics/echelon/internal/config"
	"github.com/courtmetrics/echelon/internal/store"
)

type ResultsHandler struct {
	store store.Store
	cfg   *config.Config
}

func NewResultsHandler(s store.Store, cfg *config.Config) *ResultsHandler {
	return &ResultsHandler{store: s, cfg: cfg}
}

// Modes handles GET /api/v1/modes.
func (h *ResultsHandler) Modes(w http.ResponseWriter, r *http.Request) {
	type modeView struct {
		Name       string   `json:"name"`
		Dimensions []string `json:"dimensions"`
	}
	out := make([]modeView, 0, len(h.cfg.Analysis.Modes))
	for _, m := range h.cfg.Analysis.Modes {
		out = append(out, modeView{Name: m.Name, Dimensions: m.Dimensions})
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/results/{mode}: the latest completed analysis for
// a mode, in the downstream presentation contract shape.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if _, ok := h.cfg.Mode(mode); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown mode"})
		return
	}

	result, err := h.store.GetLatestResult(r.Context(), mode)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed run for mode"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

// GetDAG handles GET /api/v1/results/{mode}/dag, with ?elite=true for the
// top-layers view.
func (h *ResultsHandler) GetDAG(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if _, ok := h.cfg.Mode(mode); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown mode"})
		return
	}

	result, err := h.store.GetLatestResult(r.Context(), mode)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed run for mode"})
		return
	}

	var doc struct {
		DAG      json.RawMessage `json:"dag"`
		EliteDAG json.RawMessage `json:"elite_dag"`
	}
	if err := json.Unmarshal(result, &doc); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stored result is malformed"})
		return
	}

	view := doc.DAG
	if r.URL.Query().Get("elite") == "true" {
		view = doc.EliteDAG
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(view)
}
