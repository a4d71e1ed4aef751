package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSettingsHandler_GetMissing(t *testing.T) {
	h := NewSettingsHandler(testStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/settings/camera.index", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSettingsHandler_SetAndGet(t *testing.T) {
	h := NewSettingsHandler(testStore(t))

	body, _ := json.Marshal(setSettingRequest{Value: "0.5"})
	req := httptest.NewRequest(http.MethodPut, "/api/settings/smoothing.alpha", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/settings/smoothing.alpha", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp settingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Key != "smoothing.alpha" || resp.Value != "0.5" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSettingsHandler_InvalidBody(t *testing.T) {
	h := NewSettingsHandler(testStore(t))

	req := httptest.NewRequest(http.MethodPut, "/api/settings/pen.debounce", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	h := NewSettingsHandler(testStore(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/settings/pen.debounce", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
