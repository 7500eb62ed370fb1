package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"
	"github.com/KasumiMercury/primind-medication-alarm/internal/testutil"
)

type fakeDelivery struct {
	payload *domain.AlarmPayload
	err     error
	calls   int
}

func (f *fakeDelivery) Deliver(_ context.Context, _ *taskqueue.TimerTask) (*domain.AlarmPayload, error) {
	f.calls++
	return f.payload, f.err
}

type testServer struct {
	router    *gin.Engine
	timer     *testutil.FakeTimer
	acks      *testutil.MemoryAcknowledgements
	presenter *testutil.RecordingPresenter
	recorder  *testutil.RecordingRecorder
	delivery  *fakeDelivery
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewFake()
	clk.Set(time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))

	s := &testServer{
		timer:     testutil.NewFakeTimer(),
		acks:      testutil.NewMemoryAcknowledgements(),
		presenter: testutil.NewRecordingPresenter(),
		recorder:  testutil.NewRecordingRecorder(),
		delivery:  &fakeDelivery{},
	}

	scheduler := alarm.NewScheduler(s.timer, s.acks, testutil.NewMemorySettings(), clk, alarm.Config{Location: time.UTC}, nil)
	dispatcher := alarm.NewDispatcher(scheduler, s.presenter, s.recorder, nil)
	fire := alarm.NewFireHandler(scheduler, s.presenter, time.Second, nil)

	s.router = gin.New()
	RegisterRoutes(s.router, NewReminderHandler(scheduler, dispatcher), NewTimerHandler(s.delivery, fire))
	return s
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHandleSchedule(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "valid", path: "/api/v1/reminders/1", body: map[string]any{"medicine_name": "Aspirin", "hour": 9, "minute": 0}, wantStatus: http.StatusOK},
		{name: "midnight is a valid hour", path: "/api/v1/reminders/2", body: map[string]any{"hour": 0, "minute": 0}, wantStatus: http.StatusOK},
		{name: "missing hour", path: "/api/v1/reminders/1", body: map[string]any{"minute": 0}, wantStatus: http.StatusBadRequest},
		{name: "malformed json", path: "/api/v1/reminders/1", body: "{", wantStatus: http.StatusBadRequest},
		{name: "negative id", path: "/api/v1/reminders/-1", body: map[string]any{"hour": 9, "minute": 0}, wantStatus: http.StatusBadRequest},
		{name: "non numeric id", path: "/api/v1/reminders/abc", body: map[string]any{"hour": 9, "minute": 0}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			w := s.do(http.MethodPut, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d (body=%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandleScheduleResponse(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/v1/reminders/1", map[string]any{"medicine_name": "Aspirin", "hour": 9, "minute": 30})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC); !resp.NextTrigger.Equal(want) {
		t.Errorf("next trigger: got %v, want %v", resp.NextTrigger, want)
	}
	if !resp.Armed || !resp.Exact || resp.ReminderID != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if _, ok := s.timer.Pending(domain.DailyKey(1)); !ok {
		t.Error("expected daily registration")
	}
}

func TestHandleCancel(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPut, "/api/v1/reminders/1", map[string]any{"hour": 9, "minute": 0})

	for i := 0; i < 2; i++ {
		if w := s.do(http.MethodDelete, "/api/v1/reminders/1", nil); w.Code != http.StatusNoContent {
			t.Errorf("cancel #%d: got %d", i+1, w.Code)
		}
	}
	if s.timer.Len() != 0 {
		t.Errorf("expected no registrations, got %d", s.timer.Len())
	}
}

func TestHandleAcknowledge(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(http.MethodPost, "/api/v1/reminders/3/acknowledge", nil); w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", w.Code)
	}
	if acked, _ := s.acks.IsAcknowledged(context.Background(), 3); !acked {
		t.Error("expected reminder acknowledged")
	}

	s.acks.WriteErr = errors.New("redis down")
	if w := s.do(http.MethodPost, "/api/v1/reminders/3/acknowledge", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("persistence failure: got %d", w.Code)
	}
}

func TestHandleAction(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantAcked  bool
	}{
		{name: "taken", body: map[string]any{"action": "taken", "medicine_name": "Aspirin", "hour": 9}, wantStatus: http.StatusNoContent, wantAcked: true},
		{name: "remind later", body: map[string]any{"action": "remind_later", "hour": 9}, wantStatus: http.StatusNoContent},
		{name: "unknown action", body: map[string]any{"action": "dance"}, wantStatus: http.StatusBadRequest},
		{name: "missing action", body: map[string]any{}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := s.do(http.MethodPost, "/api/v1/reminders/1/actions", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if acked, _ := s.acks.IsAcknowledged(context.Background(), 1); acked != tt.wantAcked {
				t.Errorf("acknowledged: got %v, want %v", acked, tt.wantAcked)
			}
		})
	}
}

func TestHandleSnooze(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/settings/snooze", nil)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"minutes":5`)) {
		t.Fatalf("default snooze: got %d %s", w.Code, w.Body.String())
	}

	if w := s.do(http.MethodPut, "/api/v1/settings/snooze", map[string]any{"minutes": 12}); w.Code != http.StatusOK {
		t.Fatalf("set snooze: got %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/v1/settings/snooze", nil)
	if !bytes.Contains(w.Body.Bytes(), []byte(`"minutes":12`)) {
		t.Errorf("expected updated snooze, got %s", w.Body.String())
	}

	for _, body := range []any{map[string]any{"minutes": 0}, map[string]any{"minutes": -2}, map[string]any{"minutes": 200_000_000}, "{"} {
		if w := s.do(http.MethodPut, "/api/v1/settings/snooze", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %v: got %d", body, w.Code)
		}
	}
}

func validTimerTask() map[string]any {
	return map[string]any{
		"reminder_id": 1,
		"class":       "daily",
		"token":       "tok",
		"at":          "2024-01-15T09:00:00Z",
		"payload":     map[string]any{"reminder_id": 1, "medicine_name": "Aspirin", "hour": 9, "minute": 0},
	}
}

func TestHandleFire(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		payload    *domain.AlarmPayload
		err        error
		wantStatus int
		wantBody   string
		wantAlerts int
	}{
		{
			name:       "delivered",
			body:       validTimerTask(),
			payload:    &domain.AlarmPayload{ReminderID: 1, MedicineName: "Aspirin", Hour: 9},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"delivered"`,
			wantAlerts: 1,
		},
		{
			name:       "stale",
			body:       validTimerTask(),
			err:        domain.ErrStaleTimerRegistration,
			wantStatus: http.StatusOK,
			wantBody:   `"status":"stale"`,
		},
		{
			name:       "transient failure asks for retry",
			body:       validTimerTask(),
			err:        errors.New("redis down"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "malformed body",
			body:       "not json",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ignored"`,
		},
		{
			name:       "missing token",
			body:       map[string]any{"reminder_id": 1, "class": "daily", "at": "2024-01-15T09:00:00Z"},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ignored"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.delivery.payload = tt.payload
			s.delivery.err = tt.err

			w := s.do(http.MethodPost, "/api/v1/timer/fire", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && !bytes.Contains(w.Body.Bytes(), []byte(tt.wantBody)) {
				t.Errorf("body: got %s, want %s", w.Body.String(), tt.wantBody)
			}
			if n := len(s.presenter.Alerts()); n != tt.wantAlerts {
				t.Errorf("alerts: got %d, want %d", n, tt.wantAlerts)
			}
		})
	}
}
