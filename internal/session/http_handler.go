package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/autofix"
	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/filter"
	"github.com/rohittcodes/data-alchemist/internal/validation"
)

// Handler serves the session resource and the operations that act on one:
// re-validation, batch auto-fix, and filtering.
type Handler struct {
	store *Store
}

// NewHTTPHandler wraps the store.
func NewHTTPHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes registers the handler's endpoints on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/session", h.handleSession)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/autofix", h.handleAutoFix)
	mux.HandleFunc("/api/filter", h.handleFilter)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		sess, err := h.store.Create()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, sess)

	case http.MethodGet:
		sess, ok := h.loadSession(w, r.URL.Query().Get("sessionId"))
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sess)

	case http.MethodDelete:
		id, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("sessionId")))
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
			return
		}
		if err := h.store.Delete(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := h.loadSession(w, r.URL.Query().Get("sessionId"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validation.Run(sess.Datasets))
}

type autoFixRequest struct {
	SessionID string `json:"sessionId"`
}

type autoFixResponse struct {
	Fixes      autofix.Summary `json:"fixes"`
	Validation domain.Summary  `json:"validation"`
}

func (h *Handler) handleAutoFix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req autoFixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(req.SessionID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
		return
	}

	// The whole mutate-then-revalidate cycle runs inside Update so a
	// concurrent upload to the same session cannot be overwritten by a fix
	// computed from a stale snapshot.
	var fixSummary autofix.Summary
	sess, err := h.store.Update(id, func(sess *Session) error {
		summary := validation.Run(sess.Datasets)
		fixed, fs := autofix.Apply(sess.Datasets, summary.AllErrors)
		sess.Datasets = fixed
		fixSummary = fs
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, autoFixResponse{
		Fixes:      fixSummary,
		Validation: validation.Run(sess.Datasets),
	})
}

type filterRequest struct {
	SessionID string            `json:"sessionId"`
	Filter    domain.DataFilter `json:"filter"`
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	sess, ok := h.loadSession(w, req.SessionID)
	if !ok {
		return
	}

	results, err := filter.Apply(sess.Datasets, req.Filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) loadSession(w http.ResponseWriter, rawID string) (Session, bool) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
		return Session{}, false
	}
	sess, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return Session{}, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
