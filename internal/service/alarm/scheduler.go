package alarm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/tracing"
)

const (
	DailyPeriod = 24 * time.Hour

	defaultAutoRepeatInterval = time.Minute
	defaultSnoozeMinutes      = 5
)

type Config struct {
	Location             *time.Location
	AutoRepeatInterval   time.Duration
	DefaultSnoozeMinutes int
}

// Scheduler owns timer registration and acknowledgement state for reminders.
// It holds no per-reminder state of its own.
type Scheduler struct {
	timer         domain.Timer
	acks          domain.AcknowledgementRepository
	settings      domain.SettingsRepository
	clock         clock.Clock
	location      *time.Location
	autoRepeat    time.Duration
	defaultSnooze int
	metrics       *metrics.AlarmMetrics
}

func NewScheduler(
	timer domain.Timer,
	acks domain.AcknowledgementRepository,
	settings domain.SettingsRepository,
	clk clock.Clock,
	cfg Config,
	alarmMetrics *metrics.AlarmMetrics,
) *Scheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	autoRepeat := cfg.AutoRepeatInterval
	if autoRepeat <= 0 {
		autoRepeat = defaultAutoRepeatInterval
	}
	snooze := cfg.DefaultSnoozeMinutes
	if snooze <= 0 || snooze > domain.MaxSnoozeMinutes {
		snooze = defaultSnoozeMinutes
	}

	return &Scheduler{
		timer:         timer,
		acks:          acks,
		settings:      settings,
		clock:         clk,
		location:      loc,
		autoRepeat:    autoRepeat,
		defaultSnooze: snooze,
		metrics:       alarmMetrics,
	}
}

// NextTrigger returns the first instant after now at hour:minute.
// A time equal to now rolls over to the next day.
func NextTrigger(now time.Time, hour, minute int) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now().In(s.location)
}

// ScheduleResult describes the registration made by Schedule.
type ScheduleResult struct {
	NextTrigger time.Time
	Armed       bool
	Exact       bool
}

func (s *Scheduler) Schedule(ctx context.Context, reminder domain.ReminderAlarm) (ScheduleResult, error) {
	if err := reminder.Validate(); err != nil {
		return ScheduleResult{}, err
	}
	reminder = reminder.Normalize()

	ctx, span := tracing.StartScheduleSpan(ctx, "daily", reminder.ID)
	defer span.End()

	first := NextTrigger(s.Now(), reminder.Hour, reminder.Minute)

	s.ResetAcknowledgement(ctx, reminder.ID)
	s.CancelFollowUp(ctx, reminder.ID)

	exact, err := s.register(ctx, domain.DailyKey(reminder.ID), first, DailyPeriod, domain.PayloadFor(reminder, domain.FollowUpNone))
	tracing.RecordTrigger(span, first, exact)
	tracing.RecordResult(span, err)

	slog.InfoContext(ctx, "reminder scheduled",
		slog.String("event", "alarm.schedule"),
		slog.Int("reminder_id", reminder.ID),
		slog.String("medicine_name", reminder.MedicineName),
		slog.Time("next_trigger", first),
		slog.Bool("armed", err == nil),
		slog.Bool("exact", exact),
	)

	return ScheduleResult{NextTrigger: first, Armed: err == nil, Exact: exact}, nil
}

// Cancel removes the daily timer and any pending follow-up. Cancelling an
// unknown reminder is a no-op.
func (s *Scheduler) Cancel(ctx context.Context, reminderID int) error {
	if reminderID < 0 {
		return domain.ErrInvalidReminder
	}

	ctx, span := tracing.StartScheduleSpan(ctx, "cancel", reminderID)
	defer span.End()

	if err := s.timer.Cancel(ctx, domain.DailyKey(reminderID)); err != nil {
		slog.WarnContext(ctx, "failed to cancel daily timer",
			slog.String("event", "alarm.cancel.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
	}
	s.CancelFollowUp(ctx, reminderID)

	slog.InfoContext(ctx, "reminder cancelled",
		slog.String("event", "alarm.cancel"),
		slog.Int("reminder_id", reminderID),
	)
	return nil
}

// ScheduleAutoFollowUp arms the fixed-interval escalation. It reports
// whether a timer was armed; acknowledged reminders are left alone.
func (s *Scheduler) ScheduleAutoFollowUp(ctx context.Context, reminder domain.ReminderAlarm) (bool, error) {
	return s.scheduleFollowUp(ctx, reminder, domain.FollowUpAuto, s.autoRepeat)
}

// ScheduleFollowUp arms the user snooze. It replaces a pending auto follow-up.
func (s *Scheduler) ScheduleFollowUp(ctx context.Context, reminder domain.ReminderAlarm) (bool, error) {
	snooze := time.Duration(s.GetSnoozeDuration(ctx)) * time.Minute
	return s.scheduleFollowUp(ctx, reminder, domain.FollowUpUser, snooze)
}

func (s *Scheduler) scheduleFollowUp(ctx context.Context, reminder domain.ReminderAlarm, kind domain.FollowUpKind, delay time.Duration) (bool, error) {
	if err := reminder.Validate(); err != nil {
		return false, err
	}
	reminder = reminder.Normalize()

	if s.IsAcknowledged(ctx, reminder.ID) {
		slog.DebugContext(ctx, "reminder acknowledged, follow-up skipped",
			slog.String("event", "alarm.followup.skip"),
			slog.Int("reminder_id", reminder.ID),
			slog.String("kind", string(kind)),
		)
		return false, nil
	}

	ctx, span := tracing.StartScheduleSpan(ctx, "followup."+string(kind), reminder.ID)
	defer span.End()

	at := s.Now().Add(delay)
	exact, err := s.register(ctx, domain.FollowUpKey(reminder.ID), at, 0, domain.PayloadFor(reminder, kind))
	tracing.RecordTrigger(span, at, exact)
	tracing.RecordResult(span, err)
	if err != nil {
		return false, nil
	}

	s.metrics.RecordFollowUpArmed(ctx, string(kind), exact)
	slog.InfoContext(ctx, "follow-up armed",
		slog.String("event", "alarm.followup.arm"),
		slog.Int("reminder_id", reminder.ID),
		slog.String("kind", string(kind)),
		slog.Time("at", at),
		slog.Bool("exact", exact),
	)
	return true, nil
}

func (s *Scheduler) CancelFollowUp(ctx context.Context, reminderID int) {
	if err := s.timer.Cancel(ctx, domain.FollowUpKey(reminderID)); err != nil {
		slog.WarnContext(ctx, "failed to cancel follow-up timer",
			slog.String("event", "alarm.followup.cancel.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
	}
}

// register arms the timer, downgrading to an inexact registration when the
// timer refuses an exact one. Failures are logged and counted.
func (s *Scheduler) register(ctx context.Context, key domain.TimerKey, at time.Time, period time.Duration, payload domain.AlarmPayload) (bool, error) {
	var err error
	if period > 0 {
		err = s.timer.ScheduleRepeating(ctx, key, at, period, payload)
	} else {
		err = s.timer.ScheduleAt(ctx, key, at, payload)
	}
	if err == nil {
		return true, nil
	}

	if inexact, ok := s.timer.(domain.InexactTimer); ok && errors.Is(err, domain.ErrExactTimerDenied) {
		s.metrics.RecordTimerDowngrade(ctx, string(key.Class))
		slog.WarnContext(ctx, "exact timer denied, falling back to inexact timer",
			slog.String("event", "alarm.timer.downgrade"),
			slog.String("timer_key", key.String()),
			slog.Time("at", at),
		)
		err = inexact.ScheduleInexact(ctx, key, at, period, payload)
		if err == nil {
			return false, nil
		}
	}

	s.metrics.RecordTimerFailure(ctx, string(key.Class))
	slog.ErrorContext(ctx, "failed to register timer",
		slog.String("event", "alarm.timer.fail"),
		slog.String("timer_key", key.String()),
		slog.Time("at", at),
		slog.String("error", err.Error()),
	)
	return false, err
}

func (s *Scheduler) Acknowledge(ctx context.Context, reminderID int) error {
	if reminderID < 0 {
		return domain.ErrInvalidReminder
	}

	err := s.acks.SetAcknowledged(ctx, reminderID)
	s.CancelFollowUp(ctx, reminderID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist acknowledgement",
			slog.String("event", "alarm.ack.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
		return err
	}

	slog.InfoContext(ctx, "reminder acknowledged",
		slog.String("event", "alarm.ack"),
		slog.Int("reminder_id", reminderID),
	)
	return nil
}

// IsAcknowledged treats unreadable state as not acknowledged.
func (s *Scheduler) IsAcknowledged(ctx context.Context, reminderID int) bool {
	acked, err := s.acks.IsAcknowledged(ctx, reminderID)
	if err != nil {
		slog.WarnContext(ctx, "failed to read acknowledgement, assuming not acknowledged",
			slog.String("event", "alarm.ack.read.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return acked
}

func (s *Scheduler) ResetAcknowledgement(ctx context.Context, reminderID int) {
	if err := s.acks.ClearAcknowledged(ctx, reminderID); err != nil {
		slog.WarnContext(ctx, "failed to reset acknowledgement",
			slog.String("event", "alarm.ack.reset.fail"),
			slog.Int("reminder_id", reminderID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Scheduler) SetSnoozeDuration(ctx context.Context, minutes int) error {
	if minutes <= 0 || minutes > domain.MaxSnoozeMinutes {
		return domain.ErrInvalidSnoozeDuration
	}
	if err := s.settings.SetSnoozeMinutes(ctx, minutes); err != nil {
		return err
	}

	slog.InfoContext(ctx, "snooze duration updated",
		slog.String("event", "alarm.snooze.set"),
		slog.Int("minutes", minutes),
	)
	return nil
}

// GetSnoozeDuration returns the configured snooze in minutes, falling back
// to the default when nothing usable is stored.
func (s *Scheduler) GetSnoozeDuration(ctx context.Context) int {
	minutes, err := s.settings.GetSnoozeMinutes(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			slog.WarnContext(ctx, "failed to read snooze duration, using default",
				slog.String("event", "alarm.snooze.read.fail"),
				slog.Int("default_minutes", s.defaultSnooze),
				slog.String("error", err.Error()),
			)
		}
		return s.defaultSnooze
	}
	if minutes <= 0 || minutes > domain.MaxSnoozeMinutes {
		return s.defaultSnooze
	}
	return minutes
}
