package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		probes   map[string]Probe
		expected Status
	}{
		{name: "no probes", probes: nil, expected: StatusHealthy},
		{
			name:     "all healthy",
			probes:   map[string]Probe{"adherence": func(context.Context) error { return nil }},
			expected: StatusHealthy,
		},
		{
			name: "one failing",
			probes: map[string]Probe{
				"adherence": func(context.Context) error { return nil },
				"queue":     func(context.Context) error { return errors.New("unreachable") },
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(nil, "test")
			for name, p := range tt.probes {
				c.WithProbe(name, p)
			}

			status := c.Check(context.Background())
			if status.Status != tt.expected {
				t.Errorf("got %q, want %q", status.Status, tt.expected)
			}
			if len(status.Checks) != len(tt.probes) {
				t.Errorf("expected %d check results, got %d", len(tt.probes), len(status.Checks))
			}
		})
	}
}

func newRouter(c *Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c.Register(r)
	return r
}

func TestReadyHandler(t *testing.T) {
	c := NewChecker(nil, "v1").WithProbe("queue", func(context.Context) error { return errors.New("down") })
	r := newRouter(c)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d", w.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if status.Version != "v1" || status.Checks["queue"].Error != "down" {
		t.Errorf("unexpected status: %+v", status)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("liveness must not depend on probes, got %d", w.Code)
	}
}

func TestGRPCHealth(t *testing.T) {
	tests := []struct {
		name     string
		healthy  bool
		service  string
		expected grpchealth.Status
	}{
		{name: "serving", healthy: true, expected: grpchealth.StatusServing},
		{name: "named service serving", healthy: true, service: ServiceName, expected: grpchealth.StatusServing},
		{name: "not serving", healthy: false, expected: grpchealth.StatusNotServing},
		{name: "unknown service", healthy: true, service: "other.Service", expected: grpchealth.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(nil, "v1")
			if !tt.healthy {
				c.WithProbe("redis", func(context.Context) error { return errors.New("down") })
			}

			resp, err := grpcChecker{checker: c}.Check(context.Background(), &grpchealth.CheckRequest{Service: tt.service})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Status != tt.expected {
				t.Errorf("got %v, want %v", resp.Status, tt.expected)
			}
		})
	}
}

func TestGRPCHealthMounted(t *testing.T) {
	r := newRouter(NewChecker(nil, "v1"))

	req := httptest.NewRequest(http.MethodPost, "/grpc.health.v1.Health/Check", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("SERVING")) {
		t.Errorf("expected SERVING status, got %s", w.Body.String())
	}
}
