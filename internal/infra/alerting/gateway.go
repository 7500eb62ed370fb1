package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/logging"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/tracing"
)

const gatewayRequestTimeout = 30 * time.Second

// GatewayPresenter forwards alerts to a device gateway that raises the
// notification and speaks the text. The gateway answers the POST once
// playback has finished.
type GatewayPresenter struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.AlertPresenter = (*GatewayPresenter)(nil)

func NewGatewayPresenter(baseURL string) *GatewayPresenter {
	return &GatewayPresenter{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL, gatewayRequestTimeout),
	}
}

func (p *GatewayPresenter) endpoint(path string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse gateway URL: %w", err)
	}
	u.Path = path
	return u.String(), nil
}

func (p *GatewayPresenter) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	endpoint, err := p.endpoint(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)
	return req, nil
}

func (p *GatewayPresenter) Present(ctx context.Context, alert domain.Alert) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- p.present(ctx, alert)
	}()

	return done
}

func (p *GatewayPresenter) present(ctx context.Context, alert domain.Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	req, err := p.newRequest(ctx, http.MethodPost, "/api/v1/alerts", body)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send alert to gateway",
			slog.Int("reminder_id", alert.ReminderID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusNoContent {
		slog.ErrorContext(ctx, "unexpected status code from gateway",
			slog.Int("reminder_id", alert.ReminderID),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	slog.DebugContext(ctx, "alert presented by gateway",
		slog.Int("reminder_id", alert.ReminderID),
	)
	return nil
}

func (p *GatewayPresenter) Dismiss(ctx context.Context, reminderID int) error {
	req, err := p.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/alerts/%d", reminderID), nil)
	if err != nil {
		return err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}
