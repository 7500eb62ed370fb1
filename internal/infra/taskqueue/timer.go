package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/observability/tracing"
)

// Timer arms alarm timers as delayed tasks on a queue. The registry holds
// the live registration per key; matured tasks carrying any other token
// are dropped.
type Timer struct {
	queue    TaskQueue
	registry domain.TimerRegistryRepository
	clock    clock.Clock
}

var (
	_ domain.Timer        = (*Timer)(nil)
	_ domain.InexactTimer = (*Timer)(nil)
)

func NewTimer(queue TaskQueue, registry domain.TimerRegistryRepository, clk clock.Clock) *Timer {
	return &Timer{
		queue:    queue,
		registry: registry,
		clock:    clk,
	}
}

// exactTaskName is deterministic so the queue rejects a second task for the
// same slot and instant.
func exactTaskName(key domain.TimerKey, at time.Time) string {
	return fmt.Sprintf("reminder-%d-%s-%d", key.ReminderID, key.Class, at.Unix())
}

func (t *Timer) ScheduleAt(ctx context.Context, key domain.TimerKey, at time.Time, payload domain.AlarmPayload) error {
	return t.schedule(ctx, key, at, 0, payload, true)
}

func (t *Timer) ScheduleRepeating(ctx context.Context, key domain.TimerKey, first time.Time, period time.Duration, payload domain.AlarmPayload) error {
	return t.schedule(ctx, key, first, period, payload, true)
}

func (t *Timer) ScheduleInexact(ctx context.Context, key domain.TimerKey, at time.Time, period time.Duration, payload domain.AlarmPayload) error {
	return t.schedule(ctx, key, at, period, payload, false)
}

func (t *Timer) schedule(ctx context.Context, key domain.TimerKey, at time.Time, period time.Duration, payload domain.AlarmPayload, exact bool) error {
	ctx, span := tracing.StartTimerSpan(ctx, "schedule", key.String())
	defer span.End()

	reg := &domain.TimerRegistration{
		Key:     key,
		Token:   uuid.NewString(),
		At:      at,
		Period:  period,
		Exact:   exact,
		Payload: payload,
	}

	resp, err := t.createTask(ctx, reg)
	if err != nil {
		if exact && errors.Is(err, ErrTaskAlreadyExists) {
			err = fmt.Errorf("%w: %s", domain.ErrExactTimerDenied, err)
		}
		tracing.RecordResult(span, err)
		return err
	}
	reg.TaskName = resp.Name

	prev, err := t.registry.Swap(ctx, reg)
	if err != nil {
		t.deleteTask(ctx, resp.Name)
		err = fmt.Errorf("failed to store timer registration: %w", err)
		tracing.RecordResult(span, err)
		return err
	}
	if prev != nil && prev.TaskName != "" && prev.TaskName != reg.TaskName {
		t.deleteTask(ctx, prev.TaskName)
	}

	slog.DebugContext(ctx, "timer armed",
		slog.String("timer_key", key.String()),
		slog.String("task_name", reg.TaskName),
		slog.Time("at", at),
		slog.Duration("period", period),
		slog.Bool("exact", exact),
	)
	tracing.RecordResult(span, nil)
	return nil
}

func (t *Timer) createTask(ctx context.Context, reg *domain.TimerRegistration) (*TaskResponse, error) {
	task := &TimerTask{
		ScheduleAt:    reg.At,
		ReminderID:    reg.Key.ReminderID,
		Class:         reg.Key.Class,
		Token:         reg.Token,
		At:            reg.At,
		PeriodSeconds: int64(reg.Period / time.Second),
		Exact:         reg.Exact,
		Payload:       reg.Payload,
	}
	if reg.Exact {
		task.Name = exactTaskName(reg.Key, reg.At)
	}
	return t.queue.CreateTask(ctx, task)
}

func (t *Timer) deleteTask(ctx context.Context, name string) {
	if err := t.queue.DeleteTask(ctx, name); err != nil {
		slog.WarnContext(ctx, "failed to delete superseded task",
			slog.String("task_name", name),
			slog.String("error", err.Error()),
		)
	}
}

func (t *Timer) Cancel(ctx context.Context, key domain.TimerKey) error {
	ctx, span := tracing.StartTimerSpan(ctx, "cancel", key.String())
	defer span.End()

	prev, err := t.registry.Remove(ctx, key)
	if err != nil {
		err = fmt.Errorf("failed to remove timer registration: %w", err)
		tracing.RecordResult(span, err)
		return err
	}
	if prev != nil && prev.TaskName != "" {
		t.deleteTask(ctx, prev.TaskName)
	}
	tracing.RecordResult(span, nil)
	return nil
}

// Deliver accepts a matured task and returns the payload to fire. Repeating
// timers are re-armed before the payload is released so a failed re-arm can
// be retried by the queue. Superseded tasks yield ErrStaleTimerRegistration.
func (t *Timer) Deliver(ctx context.Context, task *TimerTask) (*domain.AlarmPayload, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	key := task.Key()

	ctx, span := tracing.StartTimerSpan(ctx, "deliver", key.String())
	defer span.End()

	if task.Period() <= 0 {
		removed, err := t.registry.RemoveIfToken(ctx, key, task.Token)
		if err != nil {
			tracing.RecordResult(span, err)
			return nil, fmt.Errorf("failed to release timer registration: %w", err)
		}
		if !removed {
			tracing.RecordResult(span, nil)
			return nil, domain.ErrStaleTimerRegistration
		}
		payload := task.Payload
		tracing.RecordResult(span, nil)
		return &payload, nil
	}

	current, err := t.registry.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return nil, domain.ErrStaleTimerRegistration
		}
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to read timer registration: %w", err)
	}
	if current.Token != task.Token {
		return nil, domain.ErrStaleTimerRegistration
	}

	next := current.NextOccurrence(t.clock.Now())
	rearmed := &domain.TimerRegistration{
		Key:     key,
		Token:   uuid.NewString(),
		At:      next,
		Period:  current.Period,
		Exact:   current.Exact,
		Payload: current.Payload,
	}

	resp, err := t.createTask(ctx, rearmed)
	if err != nil && rearmed.Exact && errors.Is(err, ErrTaskAlreadyExists) {
		slog.WarnContext(ctx, "exact slot taken for next occurrence, re-arming inexact",
			slog.String("timer_key", key.String()),
			slog.Time("at", next),
		)
		rearmed.Exact = false
		resp, err = t.createTask(ctx, rearmed)
	}
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to re-arm repeating timer: %w", err)
	}
	rearmed.TaskName = resp.Name

	replaced, err := t.registry.ReplaceIfToken(ctx, task.Token, rearmed)
	if err != nil || !replaced {
		t.deleteTask(ctx, resp.Name)
		if err != nil {
			tracing.RecordResult(span, err)
			return nil, fmt.Errorf("failed to store re-armed registration: %w", err)
		}
		return nil, domain.ErrStaleTimerRegistration
	}

	slog.DebugContext(ctx, "repeating timer re-armed",
		slog.String("timer_key", key.String()),
		slog.Time("next", next),
		slog.Bool("exact", rearmed.Exact),
	)

	payload := current.Payload
	tracing.RecordResult(span, nil)
	return &payload, nil
}
