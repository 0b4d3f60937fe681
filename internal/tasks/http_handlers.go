package tasks

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"todo-ai-backend/internal/events"
)

type Handler struct {
	Service *Service
	Events  *events.Recorder
}

func NewHandler(svc *Service, rec *events.Recorder) *Handler {
	return &Handler{Service: svc, Events: rec}
}

// -------------------------------
// ROUTES
// -------------------------------

// Collection serves /tasks.
func (h *Handler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Analyze serves POST /tasks/priority/analyze. Nothing is persisted.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	a, err := h.Service.Analyze(r.Context(), body.Title, body.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Events.Log(r.Context(), "priority_analyzed", nil, map[string]any{
		"priority": a.Priority,
		"strategy": a.Strategy,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"priority":        a.Priority,
		"priority_reason": a.Reason,
	})
}

// Item serves /tasks/{id} and /tasks/{id}/reanalyze-priority.
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tasks/"), "/")
	parts := strings.Split(rest, "/")

	id, err := strconv.Atoi(parts[0])
	if err != nil || id <= 0 {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodPatch:
			h.update(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "reanalyze-priority":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reanalyze(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// -------------------------------
// HANDLERS
// -------------------------------

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	useAdvisor := r.URL.Query().Get("use_ai_priority") == "true"

	t, err := h.Service.Create(r.Context(), in, useAdvisor)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Events.Log(r.Context(), "task_created", &t.ID, map[string]any{
		"use_ai_priority": useAdvisor,
		"priority":        t.Priority,
		"text_len":        len(t.Title) + len(t.Description),
	})

	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := Filter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}

	var err error
	if v := q.Get("skip"); v != "" {
		if f.Skip, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid skip", http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	result, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if result == nil {
		result = []Task{}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id int) {
	t, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id int) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	t, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Events.Log(r.Context(), "task_updated", &t.ID, map[string]any{
		"status":   t.Status,
		"priority": t.Priority,
	})

	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) reanalyze(w http.ResponseWriter, r *http.Request, id int) {
	t, err := h.Service.Reanalyze(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.Events.Log(r.Context(), "priority_reanalyzed", &t.ID, map[string]any{
		"priority": t.Priority,
	})

	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.Events.Log(r.Context(), "task_deleted", &id, nil)

	w.WriteHeader(http.StatusNoContent)
}

// -------------------------------
// HELPERS
// -------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error: "+err.Error(), http.StatusInternalServerError)
	}
}
