package alerting

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

// LogPresenter writes alerts to the structured log. It is used when no
// device is attached.
type LogPresenter struct{}

var _ domain.AlertPresenter = LogPresenter{}

func (LogPresenter) Present(ctx context.Context, alert domain.Alert) <-chan error {
	actions := make([]string, 0, len(alert.Actions))
	for _, a := range alert.Actions {
		actions = append(actions, a.Label())
	}

	slog.InfoContext(ctx, alert.Title,
		slog.String("event", "alert.present"),
		slog.Int("reminder_id", alert.ReminderID),
		slog.String("follow_up", alert.FollowUp.String()),
		slog.String("body", alert.Body),
		slog.String("speech", alert.Speech),
		slog.Any("actions", actions),
	)

	done := make(chan error, 1)
	done <- nil
	return done
}

func (LogPresenter) Dismiss(ctx context.Context, reminderID int) error {
	slog.InfoContext(ctx, "alert dismissed",
		slog.String("event", "alert.dismiss"),
		slog.Int("reminder_id", reminderID),
	)
	return nil
}
