package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/session"
)

// Handler serves rule CRUD plus natural-language rule creation.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the rules service.
func NewHTTPHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the handler's endpoints on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/rules", h.handleRules)
	mux.HandleFunc("/api/rules/translate", h.handleTranslate)
}

type addRulePayload struct {
	SessionID string      `json:"sessionId"`
	Rule      domain.Rule `json:"rule"`
}

func (h *Handler) handleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id, ok := parseSessionID(w, r.URL.Query().Get("sessionId"))
		if !ok {
			return
		}
		list, err := h.service.List(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var payload addRulePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		id, ok := parseSessionID(w, payload.SessionID)
		if !ok {
			return
		}
		rule, err := h.service.Add(id, payload.Rule)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rule)

	case http.MethodDelete:
		id, ok := parseSessionID(w, r.URL.Query().Get("sessionId"))
		if !ok {
			return
		}
		ruleID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("ruleId")))
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid rule id: %v", err), http.StatusBadRequest)
			return
		}
		if err := h.service.Delete(id, ruleID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type translatePayload struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload translatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	id, ok := parseSessionID(w, payload.SessionID)
	if !ok {
		return
	}

	rule, err := h.service.AddFromText(r.Context(), id, payload.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func parseSessionID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, ErrRuleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
