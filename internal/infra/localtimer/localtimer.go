package localtimer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

const registryTimeout = 5 * time.Second

// FireFunc receives a matured payload.
type FireFunc func(ctx context.Context, payload domain.AlarmPayload)

type entry struct {
	timer *time.Timer
	reg   domain.TimerRegistration
	gen   uint64
}

// Timer arms registrations in process and mirrors them into a registry so
// Restore can re-arm them after a restart. A nil registry keeps everything
// in memory.
type Timer struct {
	mu       sync.Mutex
	clock    clock.Clock
	registry domain.TimerRegistryRepository
	fire     FireFunc
	entries  map[domain.TimerKey]*entry
	gen      uint64
	wg       sync.WaitGroup
	closed   bool
}

var _ domain.Timer = (*Timer)(nil)

func New(clk clock.Clock, registry domain.TimerRegistryRepository, fire FireFunc) *Timer {
	return &Timer{
		clock:    clk,
		registry: registry,
		fire:     fire,
		entries:  make(map[domain.TimerKey]*entry),
	}
}

func (t *Timer) ScheduleAt(ctx context.Context, key domain.TimerKey, at time.Time, payload domain.AlarmPayload) error {
	return t.ScheduleRepeating(ctx, key, at, 0, payload)
}

func (t *Timer) ScheduleRepeating(ctx context.Context, key domain.TimerKey, first time.Time, period time.Duration, payload domain.AlarmPayload) error {
	reg := domain.TimerRegistration{
		Key:     key,
		Token:   uuid.NewString(),
		At:      first,
		Period:  period,
		Exact:   true,
		Payload: payload,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.stopLocked(key)
	t.armLocked(reg)

	if t.registry != nil {
		if _, err := t.registry.Swap(ctx, &reg); err != nil {
			return fmt.Errorf("timer %s armed in process but not persisted: %w", key, err)
		}
	}
	return nil
}

func (t *Timer) Cancel(ctx context.Context, key domain.TimerKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked(key)

	if t.registry != nil {
		if _, err := t.registry.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove timer registration %s: %w", key, err)
		}
	}
	return nil
}

// Restore re-arms every stored registration not already armed in this
// process. Daily registrations whose trigger passed while the process was
// down roll forward to their next occurrence; overdue one-shot follow-ups
// fire right away.
func (t *Timer) Restore(ctx context.Context) (int, error) {
	if t.registry == nil {
		return 0, nil
	}

	regs, err := t.registry.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list timer registrations: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, nil
	}

	now := t.clock.Now()
	restored := 0
	for _, reg := range regs {
		if _, armed := t.entries[reg.Key]; armed {
			continue
		}
		if reg.Repeating() && !reg.At.After(now) {
			token := reg.Token
			reg.At = reg.NextOccurrence(now)
			reg.Token = uuid.NewString()
			if _, err := t.registry.ReplaceIfToken(ctx, token, reg); err != nil {
				slog.WarnContext(ctx, "failed to persist rolled-forward timer",
					slog.String("timer_key", reg.Key.String()),
					slog.String("error", err.Error()),
				)
			}
		}
		t.armLocked(*reg)
		restored++

		slog.InfoContext(ctx, "timer restored",
			slog.String("event", "timer.restore"),
			slog.String("timer_key", reg.Key.String()),
			slog.Time("at", reg.At),
			slog.Bool("repeating", reg.Repeating()),
		)
	}
	return restored, nil
}

func (t *Timer) armLocked(reg domain.TimerRegistration) {
	t.gen++
	e := &entry{reg: reg, gen: t.gen}
	delay := reg.At.Sub(t.clock.Now())
	if delay < 0 {
		delay = 0
	}
	key, gen := reg.Key, e.gen
	e.timer = time.AfterFunc(delay, func() { t.mature(key, gen) })
	t.entries[reg.Key] = e
}

func (t *Timer) stopLocked(key domain.TimerKey) {
	if e, ok := t.entries[key]; ok {
		e.timer.Stop()
		delete(t.entries, key)
	}
}

func (t *Timer) mature(key domain.TimerKey, gen uint64) {
	t.mu.Lock()
	e, ok := t.entries[key]
	if !ok || e.gen != gen || t.closed {
		t.mu.Unlock()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()

	reg := e.reg
	if reg.Repeating() {
		next := reg
		next.At = reg.NextOccurrence(t.clock.Now())
		next.Token = uuid.NewString()
		t.armLocked(next)
		t.persistRearmLocked(ctx, reg.Token, &next)
	} else {
		delete(t.entries, key)
		if t.registry != nil {
			if _, err := t.registry.RemoveIfToken(ctx, key, reg.Token); err != nil {
				slog.WarnContext(ctx, "failed to release timer registration",
					slog.String("timer_key", key.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	t.wg.Add(1)
	t.mu.Unlock()

	defer t.wg.Done()
	slog.Debug("local timer matured", slog.String("timer_key", key.String()))
	t.fire(context.Background(), reg.Payload)
}

// persistRearmLocked stores the next occurrence. A registration that went
// missing from the registry is written back.
func (t *Timer) persistRearmLocked(ctx context.Context, token string, next *domain.TimerRegistration) {
	if t.registry == nil {
		return
	}
	replaced, err := t.registry.ReplaceIfToken(ctx, token, next)
	if err == nil && !replaced {
		_, err = t.registry.Swap(ctx, next)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to persist re-armed timer",
			slog.String("timer_key", next.Key.String()),
			slog.Time("next", next.At),
			slog.String("error", err.Error()),
		)
	}
}

func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Close stops every pending timer and waits for in-flight firings. Stored
// registrations are kept for the next Restore.
func (t *Timer) Close() {
	t.mu.Lock()
	t.closed = true
	for key := range t.entries {
		t.stopLocked(key)
	}
	t.mu.Unlock()

	t.wg.Wait()
}
