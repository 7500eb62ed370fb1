package alarm

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/tracing"
)

// Dispatcher applies a user's response to an alert.
type Dispatcher struct {
	scheduler *Scheduler
	presenter domain.AlertPresenter
	recorder  domain.AdherenceRecorder
	metrics   *metrics.AlarmMetrics
}

func NewDispatcher(scheduler *Scheduler, presenter domain.AlertPresenter, recorder domain.AdherenceRecorder, alarmMetrics *metrics.AlarmMetrics) *Dispatcher {
	return &Dispatcher{
		scheduler: scheduler,
		presenter: presenter,
		recorder:  recorder,
		metrics:   alarmMetrics,
	}
}

// Dispatch returns an error only when an acknowledgement could not be
// persisted. Actions without a reminder id and unknown actions are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.UserAction) error {
	if action.ReminderID < 0 {
		slog.DebugContext(ctx, "action without reminder id dropped",
			slog.String("event", "alarm.action.drop"),
			slog.String("action", string(action.Action)),
		)
		return nil
	}

	ctx, span := tracing.StartDispatchSpan(ctx, action.ReminderID, string(action.Action))
	defer span.End()

	var err error
	switch action.Action {
	case domain.AlertActionTaken:
		err = d.acknowledge(ctx, action, domain.AdherenceTaken)
	case domain.AlertActionNotWilling:
		err = d.acknowledge(ctx, action, domain.AdherenceNotNow)
	case domain.AlertActionRemindLater:
		d.dismiss(ctx, action.ReminderID)
		if _, ferr := d.scheduler.ScheduleFollowUp(ctx, action.Reminder()); ferr != nil {
			slog.WarnContext(ctx, "failed to arm snooze follow-up",
				slog.String("event", "alarm.snooze.fail"),
				slog.Int("reminder_id", action.ReminderID),
				slog.String("error", ferr.Error()),
			)
		}
	default:
		slog.WarnContext(ctx, "unknown alert action dropped",
			slog.String("event", "alarm.action.unknown"),
			slog.Int("reminder_id", action.ReminderID),
			slog.String("action", string(action.Action)),
		)
		tracing.RecordResult(span, nil)
		return nil
	}

	d.metrics.RecordAction(ctx, string(action.Action))
	tracing.RecordResult(span, err)

	slog.InfoContext(ctx, "alert action handled",
		slog.String("event", "alarm.action"),
		slog.Int("reminder_id", action.ReminderID),
		slog.String("action", string(action.Action)),
	)
	return err
}

func (d *Dispatcher) acknowledge(ctx context.Context, action domain.UserAction, outcome domain.AdherenceAction) error {
	err := d.scheduler.Acknowledge(ctx, action.ReminderID)

	record := domain.AdherenceRecord{
		ReminderID:   action.ReminderID,
		MedicineName: action.Reminder().DisplayName(),
		Action:       outcome,
		At:           d.scheduler.Now(),
	}
	if rerr := d.recorder.Record(ctx, record); rerr != nil {
		slog.WarnContext(ctx, "failed to record adherence",
			slog.String("event", "alarm.adherence.fail"),
			slog.Int("reminder_id", action.ReminderID),
			slog.String("action", string(outcome)),
			slog.String("error", rerr.Error()),
		)
	}

	d.dismiss(ctx, action.ReminderID)
	return err
}

func (d *Dispatcher) dismiss(ctx context.Context, reminderID int) {
	if err := d.presenter.Dismiss(ctx, reminderID); err != nil {
		slog.WarnContext(ctx, "failed to dismiss alert",
			slog.String("event", "alarm.dismiss.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
	}
}
