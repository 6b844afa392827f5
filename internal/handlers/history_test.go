package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"symptom-checker/internal/storage"
	storage_mocks "symptom-checker/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func historyRouter(h *HistoryHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/history", h.List)
	r.Get("/api/query/{id}", h.Get)
	return r
}

func sampleRecord(id int64) storage.QueryRecord {
	return storage.QueryRecord{
		ID:        id,
		SessionID: "session-1",
		Symptoms:  "mild headache since this morning",
		Response:  "analysis text",
		CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestHistoryHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := historyRouter(NewHistoryHandler(mockHistory))

	mockHistory.EXPECT().
		ListRecent(gomock.Any(), 10).
		Return([]storage.QueryRecord{sampleRecord(2), sampleRecord(1)}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Count != 2 || len(resp.History) != 2 {
		t.Errorf("response = %+v", resp)
	}
	if resp.History[0].ID != 2 {
		t.Errorf("first record id = %d, want most recent first", resp.History[0].ID)
	}
	if resp.History[0].Timestamp != "2026-08-20T12:00:00Z" {
		t.Errorf("timestamp = %q, want RFC3339", resp.History[0].Timestamp)
	}
}

func TestHistoryHandler_List_CustomLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := historyRouter(NewHistoryHandler(mockHistory))

	mockHistory.EXPECT().ListRecent(gomock.Any(), 25).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=25", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHistoryHandler_List_InvalidLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := historyRouter(NewHistoryHandler(storage_mocks.NewMockHistoryStore(ctrl)))

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=plenty", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHistoryHandler_List_Disabled(t *testing.T) {
	router := historyRouter(NewHistoryHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when history is disabled", w.Code)
	}
}

func TestHistoryHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := historyRouter(NewHistoryHandler(mockHistory))

	record := sampleRecord(5)
	mockHistory.EXPECT().
		GetByID(gomock.Any(), int64(5)).
		DoAndReturn(func(ctx context.Context, id int64) (*storage.QueryRecord, error) {
			return &record, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/query/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp GetQueryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Query.ID != 5 || resp.Query.Symptoms != record.Symptoms {
		t.Errorf("response query = %+v", resp.Query)
	}
}

func TestHistoryHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := historyRouter(NewHistoryHandler(mockHistory))

	mockHistory.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/query/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHistoryHandler_Get_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := historyRouter(NewHistoryHandler(storage_mocks.NewMockHistoryStore(ctrl)))

	req := httptest.NewRequest(http.MethodGet, "/api/query/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
