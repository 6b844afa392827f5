package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"symptom-checker/internal/analysis"
	analysis_mocks "symptom-checker/internal/analysis/mocks"
	storage_mocks "symptom-checker/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	// Suppress handler logs for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postSymptoms(t *testing.T, handler http.Handler, symptoms string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(CheckRequest{Symptoms: symptoms})
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/check-symptoms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCheckHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := analysis_mocks.NewMockService(ctrl)
	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	handler := NewCheckHandler(mockService, mockHistory)

	symptoms := "I have a mild headache and slight fever since this morning"
	result := analysis.Result{
		Success:    true,
		Analysis:   analysis.Banner + "\n\nPossible causes include...",
		Disclaimer: analysis.MedicalDisclaimer,
		Model:      "llama-3.3-70b-versatile",
		TokensUsed: 142,
	}

	mockService.EXPECT().Analyze(gomock.Any(), symptoms).Return(result)
	mockHistory.EXPECT().
		Save(gomock.Any(), symptoms, result.Analysis, gomock.Any()).
		Return(int64(7), nil)

	w := postSymptoms(t, handler, symptoms)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp CheckResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("response success should be true")
	}
	if !strings.HasPrefix(resp.Analysis, analysis.Banner) {
		t.Error("response analysis should start with the banner")
	}
	if resp.Disclaimer != analysis.MedicalDisclaimer {
		t.Error("response should carry the static disclaimer")
	}
	if resp.Metadata == nil || resp.Metadata.TokensUsed != 142 || resp.Metadata.Model != "llama-3.3-70b-versatile" {
		t.Errorf("response metadata = %+v", resp.Metadata)
	}
	if resp.QueryID != 7 {
		t.Errorf("response query_id = %d, want 7", resp.QueryID)
	}
}

func TestCheckHandler_SaveFailureDoesNotDegradeResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := analysis_mocks.NewMockService(ctrl)
	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	handler := NewCheckHandler(mockService, mockHistory)

	mockService.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(analysis.Result{
		Success:    true,
		Analysis:   analysis.Banner + "\n\nanalysis",
		Disclaimer: analysis.MedicalDisclaimer,
		Model:      "llama-3.3-70b-versatile",
		TokensUsed: 50,
	})
	mockHistory.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("disk full"))

	w := postSymptoms(t, handler, "sharp lower back pain after lifting")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite save failure", w.Code)
	}

	var resp CheckResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("response success should be true despite save failure")
	}
	if resp.QueryID != 0 {
		t.Errorf("response query_id = %d, want 0 when save failed", resp.QueryID)
	}
}

func TestCheckHandler_NilHistorySkipsPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := analysis_mocks.NewMockService(ctrl)
	handler := NewCheckHandler(mockService, nil)

	mockService.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(analysis.Result{
		Success:    true,
		Analysis:   analysis.Banner + "\n\nanalysis",
		Disclaimer: analysis.MedicalDisclaimer,
		Model:      "llama-3.3-70b-versatile",
	})

	w := postSymptoms(t, handler, "itchy rash spreading across both arms")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCheckHandler_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := analysis_mocks.NewMockService(ctrl)
	handler := NewCheckHandler(mockService, nil)

	mockService.EXPECT().Analyze(gomock.Any(), "ok").Return(analysis.Result{
		ErrorKind:        analysis.ErrKindValidation,
		ErrorMessage:     "Please provide a more detailed description of your symptoms (at least 10 characters)",
		ValidationReason: analysis.ReasonTooShort,
	})

	w := postSymptoms(t, handler, "ok")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "at least 10 characters") {
		t.Errorf("validation message should reach the client, got %q", resp.Error)
	}
}

func TestCheckHandler_ProviderFailureStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		kind       analysis.ErrorKind
		wantStatus int
	}{
		{name: "timeout", kind: analysis.ErrKindTimeout, wantStatus: http.StatusGatewayTimeout},
		{name: "rate limited", kind: analysis.ErrKindRateLimited, wantStatus: http.StatusTooManyRequests},
		{name: "network error", kind: analysis.ErrKindNetwork, wantStatus: http.StatusBadGateway},
		{name: "auth error", kind: analysis.ErrKindAuth, wantStatus: http.StatusInternalServerError},
		{name: "api error", kind: analysis.ErrKindAPI, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := analysis_mocks.NewMockService(ctrl)
			handler := NewCheckHandler(mockService, nil)

			mockService.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(analysis.Result{
				ErrorKind:    tt.kind,
				ErrorMessage: "secret provider detail",
			})

			w := postSymptoms(t, handler, "chest tightness when climbing stairs")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != userFacingFailureMessage {
				t.Errorf("error message = %q, want the generic message", resp.Error)
			}
			if strings.Contains(resp.Error, "secret provider detail") {
				t.Error("provider detail must never reach the client")
			}
		})
	}
}

func TestCheckHandler_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewCheckHandler(analysis_mocks.NewMockService(ctrl), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/check-symptoms", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCheckHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewCheckHandler(analysis_mocks.NewMockService(ctrl), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/check-symptoms", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
