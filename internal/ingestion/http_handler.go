package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// Handler exposes ingestion as a multipart upload endpoint.
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHTTPHandler wraps the service with a POST endpoint. maxUpload bounds the
// accepted file size in bytes.
func NewHTTPHandler(service *Service, maxUpload int64) http.Handler {
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	return &Handler{service: service, maxUpload: maxUpload}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	dataType := domain.EntityType(strings.TrimSpace(r.FormValue("dataType")))
	if !dataType.Valid() {
		http.Error(w, "dataType must be clients, workers, or tasks", http.StatusBadRequest)
		return
	}

	req := Request{
		DataType: dataType,
		FileName: header.Filename,
	}
	if raw := strings.TrimSpace(r.FormValue("sessionId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid session id: %v", err), http.StatusBadRequest)
			return
		}
		req.SessionID = &id
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}
	req.Data = bytes.NewReader(data)

	result, err := h.service.Ingest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
