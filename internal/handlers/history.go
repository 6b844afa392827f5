package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"symptom-checker/internal/contextutil"
	"symptom-checker/internal/storage"
)

// HistoryHandler handles HTTP requests for query history.
type HistoryHandler struct {
	history storage.HistoryStore // nil when persistence is disabled
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history storage.HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// QueryResponse represents one stored exchange in HTTP responses.
type QueryResponse struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id,omitempty"`
	Symptoms  string `json:"symptoms"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// HistoryResponse represents the history listing response.
type HistoryResponse struct {
	Success bool            `json:"success"`
	History []QueryResponse `json:"history"`
	Count   int             `json:"count"`
}

// GetQueryResponse represents the single-query response.
type GetQueryResponse struct {
	Success bool          `json:"success"`
	Query   QueryResponse `json:"query"`
}

// List handles GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.history == nil {
		h.writeError(w, http.StatusBadRequest, "History is not enabled")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := h.history.ListRecent(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list query history", "error", err)
		h.writeError(w, http.StatusInternalServerError, "An error occurred while retrieving history")
		return
	}

	resp := HistoryResponse{
		Success: true,
		History: make([]QueryResponse, 0, len(records)),
		Count:   len(records),
	}
	for _, record := range records {
		resp.History = append(resp.History, toQueryResponse(record))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode history response", "error", err)
	}
}

// Get handles GET /api/query/{id}.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.history == nil {
		h.writeError(w, http.StatusBadRequest, "History is not enabled")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid query ID")
		return
	}

	record, err := h.history.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Query not found")
			return
		}
		logger.ErrorContext(ctx, "failed to get query", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "An error occurred while retrieving the query")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(GetQueryResponse{Success: true, Query: toQueryResponse(*record)}); err != nil {
		logger.ErrorContext(ctx, "failed to encode query response", "error", err)
	}
}

func toQueryResponse(record storage.QueryRecord) QueryResponse {
	return QueryResponse{
		ID:        record.ID,
		SessionID: record.SessionID,
		Symptoms:  record.Symptoms,
		Response:  record.Response,
		Timestamp: record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// writeError writes an error response.
func (h *HistoryHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   message,
	})
}
