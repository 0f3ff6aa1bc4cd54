package export

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/session"
)

// Handler exposes exports as a GET endpoint returning the rendered file.
type Handler struct {
	service *Service
	store   *session.Store
}

// NewHTTPHandler wires the export service to the session store.
func NewHTTPHandler(service *Service, store *session.Store) http.Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("sessionId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
		return
	}

	format := Format(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		format = FormatZIP
	}

	sess, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	file, err := h.service.Export(sess, format)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrNothingToExport):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
