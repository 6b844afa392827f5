package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"symptom-checker/internal/analysis"
	"symptom-checker/internal/contextutil"
	"symptom-checker/internal/storage"
)

// userFacingFailureMessage is returned for every non-validation failure. The
// real error kind and message go to the logs only.
const userFacingFailureMessage = "We could not analyze your symptoms right now. Please try again in a moment."

// CheckHandler handles HTTP requests for symptom analysis.
type CheckHandler struct {
	service analysis.Service
	history storage.HistoryStore // nil when persistence is disabled
}

// NewCheckHandler creates a new CheckHandler. Pass a nil history store to
// disable persistence.
func NewCheckHandler(service analysis.Service, history storage.HistoryStore) *CheckHandler {
	return &CheckHandler{
		service: service,
		history: history,
	}
}

// CheckRequest represents the HTTP request payload for symptom analysis.
type CheckRequest struct {
	Symptoms string `json:"symptoms"`
}

// CheckMetadata carries provider metadata for a successful analysis.
type CheckMetadata struct {
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
}

// CheckResponse represents the HTTP response payload for symptom analysis.
type CheckResponse struct {
	Success    bool           `json:"success"`
	Analysis   string         `json:"analysis,omitempty"`
	Disclaimer string         `json:"disclaimer,omitempty"`
	Metadata   *CheckMetadata `json:"metadata,omitempty"`
	QueryID    int64          `json:"query_id,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ServeHTTP handles HTTP requests for symptom analysis.
func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.service.Analyze(ctx, req.Symptoms)
	if !result.Success {
		h.writeFailure(w, r, result)
		return
	}

	resp := CheckResponse{
		Success:    true,
		Analysis:   result.Analysis,
		Disclaimer: result.Disclaimer,
		Metadata: &CheckMetadata{
			Model:      result.Model,
			TokensUsed: result.TokensUsed,
		},
	}

	// Persistence is best effort: a failed save never degrades the analysis
	// response that was already computed.
	if h.history != nil {
		sessionID := uuid.New().String()
		queryID, err := h.history.Save(ctx, req.Symptoms, result.Analysis, sessionID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to save query history", "error", err)
		} else {
			resp.QueryID = queryID
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeFailure maps a failed analysis result to an HTTP response. Validation
// messages are safe for the end user; everything else gets a generic message
// while the kind and detail are logged for operators.
func (h *CheckHandler) writeFailure(w http.ResponseWriter, r *http.Request, result analysis.Result) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if result.ErrorKind == analysis.ErrKindValidation {
		h.writeError(w, http.StatusBadRequest, result.ErrorMessage)
		return
	}

	logger.ErrorContext(ctx, "symptom analysis failed",
		"kind", result.ErrorKind, "error", result.ErrorMessage)

	var status int
	switch result.ErrorKind {
	case analysis.ErrKindTimeout:
		status = http.StatusGatewayTimeout
	case analysis.ErrKindRateLimited:
		status = http.StatusTooManyRequests
	case analysis.ErrKindNetwork:
		status = http.StatusBadGateway
	default: // auth_error, api_error
		status = http.StatusInternalServerError
	}

	h.writeError(w, status, userFacingFailureMessage)
}

// writeError writes an error response.
func (h *CheckHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   message,
	})
}
