package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/domain"
)

// mockDataStore implements domain.DataStore over in-memory documents.
type mockDataStore struct {
	public map[string][]byte
	err    error
}

func (m *mockDataStore) SaveRaw(resource string, data []byte) error   { return nil }
func (m *mockDataStore) LoadRaw(resource string) ([]byte, error)      { return nil, domain.ErrNotFound }
func (m *mockDataStore) SavePublicJSON(name string, v any) error      { return nil }
func (m *mockDataStore) SavePublicRaw(name string, data []byte) error { return nil }

func (m *mockDataStore) LoadPublic(name string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.public[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func testController(store *mockDataStore) *DatasetController {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewDatasetController(logger, store)
}

func TestDatasetController_GetSessions_ServesDocumentVerbatim(t *testing.T) {
	doc := []byte("{\n  \"ABC001\": {\n    \"code\": \"ABC001\"\n  }\n}")
	ctrl := testController(&mockDataStore{public: map[string][]byte{
		domain.PublicSessions: doc,
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()

	ctrl.GetSessions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	if w.Body.String() != string(doc) {
		t.Fatalf("expected document served verbatim, got %q", w.Body.String())
	}
}

func TestDatasetController_GetSpeakers_NotPublished(t *testing.T) {
	ctrl := testController(&mockDataStore{public: map[string][]byte{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/speakers", nil)
	w := httptest.NewRecorder()

	ctrl.GetSpeakers(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeNotFound {
		t.Fatalf("expected not_found error, got %+v", resp.Error)
	}
}

func TestDatasetController_GetSchedule_StoreError(t *testing.T) {
	ctrl := testController(&mockDataStore{err: errors.New("disk gone")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)
	w := httptest.NewRecorder()

	ctrl.GetSchedule(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestDatasetController_GetScheduleDay(t *testing.T) {
	scheduleDoc := []byte(`{
  "days": {
    "2026-07-15": {
      "rooms": ["Forum Hall"],
      "events": []
    }
  }
}`)
	store := &mockDataStore{public: map[string][]byte{
		domain.PublicSchedule: scheduleDoc,
	}}
	ctrl := testController(store)

	tests := []struct {
		name       string
		date       string
		wantStatus int
		wantCode   string
	}{
		{"existing day", "2026-07-15", http.StatusOK, ""},
		{"unknown day", "2026-07-16", http.StatusNotFound, helpers.ErrCodeNotFound},
		{"malformed date", "july-15", http.StatusBadRequest, helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/days/"+tt.date, nil)
			req.SetPathValue("date", tt.date)
			w := httptest.NewRecorder()

			ctrl.GetScheduleDay(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK {
				var day struct {
					Rooms []string `json:"rooms"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
					t.Fatalf("failed to unmarshal day: %v", err)
				}
				if len(day.Rooms) != 1 || day.Rooms[0] != "Forum Hall" {
					t.Fatalf("unexpected day payload: %s", w.Body.String())
				}
				return
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestDatasetController_GetCalendar(t *testing.T) {
	doc := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	ctrl := testController(&mockDataStore{public: map[string][]byte{
		domain.PublicCalendar: doc,
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule.ics", nil)
	w := httptest.NewRecorder()

	ctrl.GetCalendar(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Fatalf("expected text/calendar, got %q", ct)
	}
	if w.Body.String() != string(doc) {
		t.Fatalf("expected calendar served verbatim")
	}
}
