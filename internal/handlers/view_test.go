package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"symptom-checker/internal/storage"
	storage_mocks "symptom-checker/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func viewRouter(h *ViewHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/history/{id}", h.ServeHTTP)
	return r
}

func TestViewHandler_RendersMarkdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := viewRouter(NewViewHandler(mockHistory))

	record := sampleRecord(3)
	record.Response = "## Possible Conditions\n\n- **Tension headache**\n- Viral infection"
	mockHistory.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&record, nil)

	req := httptest.NewRequest(http.MethodGet, "/history/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h2") {
		t.Error("markdown heading should render as an HTML heading")
	}
	if !strings.Contains(body, "<strong>Tension headache</strong>") {
		t.Error("markdown emphasis should render as HTML")
	}
	if !strings.Contains(body, record.Symptoms) {
		t.Error("page should show the original symptoms")
	}
}

func TestViewHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := storage_mocks.NewMockHistoryStore(ctrl)
	router := viewRouter(NewViewHandler(mockHistory))

	mockHistory.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/history/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestViewHandler_HistoryDisabled(t *testing.T) {
	router := viewRouter(NewViewHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/history/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", w.Code)
	}
}
