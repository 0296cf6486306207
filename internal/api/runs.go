package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/courtmetrics/echelon/internal/store"
)

type RunsHandler struct {
	store  store.Store
	runner Runner
}

func NewRunsHandler(s store.Store, r Runner) *RunsHandler {
	return &RunsHandler{store: s, runner: r}
}

type TriggerRunRequest struct {
	Mode string `json:"mode"`
}

// Trigger handles POST /api/v1/runs: run one mode's analysis synchronously
// and return the completed run record.
func (h *RunsHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req TriggerRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Mode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode required"})
		return
	}

	run, err := h.runner.Run(r.Context(), req.Mode)
	if err != nil {
		if run == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Run-level analysis failure: the run record carries the error.
		writeJSON(w, http.StatusUnprocessableEntity, run)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// TriggerAll handles POST /api/v1/runs/all (admin): run every configured
// mode.
func (h *RunsHandler) TriggerAll(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runner.RunAll(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, map[string]interface{}{
		"runs": runs,
	})
}

// List handles GET /api/v1/runs.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Mode: r.URL.Query().Get("mode"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := store.RunStatus(s)
		filter.Status = &status
	}

	runs, err := h.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*store.AnalysisRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// Get handles GET /api/v1/runs/{id}.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return
	}

	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Stats handles GET /api/v1/stats (admin).
func (h *RunsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
