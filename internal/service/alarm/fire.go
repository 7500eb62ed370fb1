package alarm

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/tracing"
)

const defaultDeliveryTimeout = 15 * time.Second

type FireOutcome string

const (
	FireIgnored        FireOutcome = "ignored"
	FireSuppressed     FireOutcome = "suppressed"
	FireDelivered      FireOutcome = "delivered"
	FireDeliveryFailed FireOutcome = "delivery_failed"
	FireTimedOut       FireOutcome = "timed_out"
	FireAbandoned      FireOutcome = "abandoned"
)

// FireHandler reacts to a matured daily or follow-up timer.
type FireHandler struct {
	scheduler *Scheduler
	presenter domain.AlertPresenter
	timeout   time.Duration
	metrics   *metrics.AlarmMetrics
}

func NewFireHandler(scheduler *Scheduler, presenter domain.AlertPresenter, deliveryTimeout time.Duration, alarmMetrics *metrics.AlarmMetrics) *FireHandler {
	if deliveryTimeout <= 0 {
		deliveryTimeout = defaultDeliveryTimeout
	}
	return &FireHandler{
		scheduler: scheduler,
		presenter: presenter,
		timeout:   deliveryTimeout,
		metrics:   alarmMetrics,
	}
}

// Fire suppresses follow-ups of acknowledged reminders and resets the
// acknowledgement on a daily firing. It then arms the next auto follow-up
// and holds until the alert is delivered or the delivery timeout elapses.
func (h *FireHandler) Fire(ctx context.Context, payload domain.AlarmPayload) FireOutcome {
	kind := payload.FollowUp.String()

	ctx, span := tracing.StartFireSpan(ctx, payload.ReminderID, kind)
	defer span.End()

	if payload.ReminderID < 0 {
		slog.WarnContext(ctx, "alarm fired without a reminder id",
			slog.String("event", "alarm.fire.ignore"),
			slog.String("kind", kind),
		)
		tracing.RecordFireOutcome(span, string(FireIgnored), nil)
		return FireIgnored
	}

	if payload.IsFollowUp() {
		if h.scheduler.IsAcknowledged(ctx, payload.ReminderID) {
			slog.InfoContext(ctx, "reminder already acknowledged, alert suppressed",
				slog.String("event", "alarm.fire.suppress"),
				slog.Int("reminder_id", payload.ReminderID),
				slog.String("kind", kind),
			)
			h.metrics.RecordFiring(ctx, kind, string(FireSuppressed))
			tracing.RecordFireOutcome(span, string(FireSuppressed), nil)
			return FireSuppressed
		}
	} else {
		// A daily firing starts a new day; yesterday's acknowledgement no longer applies.
		h.scheduler.ResetAcknowledgement(ctx, payload.ReminderID)
	}

	alert := ComposeAlert(payload)

	if _, err := h.scheduler.ScheduleAutoFollowUp(ctx, payload.Reminder()); err != nil {
		slog.WarnContext(ctx, "failed to arm auto follow-up",
			slog.String("event", "alarm.followup.arm.fail"),
			slog.Int("reminder_id", payload.ReminderID),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "alarm fired",
		slog.String("event", "alarm.fire"),
		slog.Int("reminder_id", payload.ReminderID),
		slog.String("kind", kind),
		slog.String("speech", alert.Speech),
	)

	start := time.Now()
	outcome, err := deliver(ctx, h.presenter, alert, h.timeout)
	h.metrics.RecordDeliveryDuration(ctx, string(outcome), time.Since(start))
	h.metrics.RecordFiring(ctx, kind, string(outcome))
	tracing.RecordFireOutcome(span, string(outcome), err)

	switch outcome {
	case FireDelivered:
		slog.DebugContext(ctx, "alert delivered",
			slog.String("event", "alarm.delivery.done"),
			slog.Int("reminder_id", payload.ReminderID),
		)
	case FireTimedOut:
		slog.WarnContext(ctx, "alert delivery timed out, releasing",
			slog.String("event", "alarm.delivery.timeout"),
			slog.Int("reminder_id", payload.ReminderID),
			slog.Duration("timeout", h.timeout),
		)
	default:
		attrs := []any{
			slog.String("event", "alarm.delivery.fail"),
			slog.Int("reminder_id", payload.ReminderID),
			slog.String("outcome", string(outcome)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		slog.WarnContext(ctx, "alert delivery failed", attrs...)
	}

	return outcome
}
