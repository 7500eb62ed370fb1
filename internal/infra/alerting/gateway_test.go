package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

func TestGatewayPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/alerts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-request-id") == "" {
			t.Error("expected request id header")
		}

		var alert domain.Alert
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			t.Fatalf("failed to decode alert: %v", err)
		}
		if alert.ReminderID != 7 || alert.Speech != "Time to take Aspirin at 9:05 AM" {
			t.Errorf("unexpected alert: %+v", alert)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewGatewayPresenter(server.URL)
	if err := <-p.Present(context.Background(), testAlert()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGatewayStatusHandling(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		presentErr bool
		dismissErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "not found", status: http.StatusNotFound, presentErr: true},
		{name: "server error", status: http.StatusInternalServerError, presentErr: true, dismissErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodDelete && r.URL.Path != "/api/v1/alerts/7" {
					t.Errorf("unexpected dismiss path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			p := NewGatewayPresenter(server.URL)
			ctx := context.Background()

			if err := <-p.Present(ctx, testAlert()); (err != nil) != tt.presentErr {
				t.Errorf("present error: got %v, want error %v", err, tt.presentErr)
			}
			if err := p.Dismiss(ctx, 7); (err != nil) != tt.dismissErr {
				t.Errorf("dismiss error: got %v, want error %v", err, tt.dismissErr)
			}
		})
	}
}

func TestGatewayUnreachable(t *testing.T) {
	p := NewGatewayPresenter("http://127.0.0.1:1")
	if err := <-p.Present(context.Background(), testAlert()); err == nil {
		t.Error("expected connection error")
	}
}

func TestLogPresenterCompletesImmediately(t *testing.T) {
	var p LogPresenter
	select {
	case err := <-p.Present(context.Background(), testAlert()):
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	default:
		t.Error("log presenter should complete synchronously")
	}
}
