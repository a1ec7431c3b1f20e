package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayioka/momo-analysis/internal/domain"
	"github.com/ayioka/momo-analysis/internal/logger"
	"github.com/ayioka/momo-analysis/internal/repository"

	"github.com/google/uuid"
)

// Handler exposes the ingestion service over HTTP.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service for the upload and read endpoints.
func NewHTTPHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart container upload and returns the batch result.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Warn().Err(err).Msg("rejected upload: invalid form data")
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn().Err(err).Msg("rejected upload: missing file")
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		log.Warn().Err(err).Msg("rejected upload: unreadable file")
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	result := h.service.ProcessFile(r.Context(), header.Filename, payload)
	writeJSON(w, http.StatusOK, result)
}

// Stats returns audit-log counts, for one batch when batchId is given.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batchID, err := parseBatchID(r.URL.Query().Get("batchId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.service.ProcessingStats(r.Context(), batchID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Logs returns audit-log entries filtered by batch and/or outcome.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := repository.ProcessingLogFilter{}

	batchID, err := parseBatchID(r.URL.Query().Get("batchId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter.UploadBatchID = batchID

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		outcome := domain.ProcessingOutcome(raw)
		switch outcome {
		case domain.OutcomeSuccess, domain.OutcomeFailed, domain.OutcomeSkipped, domain.OutcomePartial:
			filter.Outcome = &outcome
		default:
			http.Error(w, fmt.Sprintf("invalid status: %s", raw), http.StatusBadRequest)
			return
		}
	}

	entries, err := h.service.ProcessingLogs(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Transactions returns recently ingested transactions.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	transactions, err := h.service.Transactions(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

func parseBatchID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid batch id: %w", err)
	}
	return &id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
