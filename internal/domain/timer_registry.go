package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=timer_registry.go -destination=timer_registry_mock.go -package=domain

// TimerRegistration is the live registration for a timer key. A matured
// task whose token differs from the stored one has been superseded.
type TimerRegistration struct {
	Key      TimerKey
	Token    string
	TaskName string
	At       time.Time
	Period   time.Duration
	Exact    bool
	Payload  AlarmPayload
}

func (r *TimerRegistration) Repeating() bool {
	return r.Period > 0
}

// NextOccurrence steps from At by whole periods until it passes now. A
// one-shot registration has no next occurrence and returns At.
func (r *TimerRegistration) NextOccurrence(now time.Time) time.Time {
	if !r.Repeating() {
		return r.At
	}
	next := r.At.Add(r.Period)
	if next.After(now) {
		return next
	}
	skipped := now.Sub(r.At) / r.Period
	next = r.At.Add(skipped * r.Period)
	for !next.After(now) {
		next = next.Add(r.Period)
	}
	return next
}

type TimerRegistryRepository interface {
	// Swap stores reg and returns the registration it replaced, or nil.
	Swap(ctx context.Context, reg *TimerRegistration) (*TimerRegistration, error)
	Get(ctx context.Context, key TimerKey) (*TimerRegistration, error)
	// Remove deletes the registration and returns it, or nil when absent.
	Remove(ctx context.Context, key TimerKey) (*TimerRegistration, error)
	RemoveIfToken(ctx context.Context, key TimerKey, token string) (bool, error)
	ReplaceIfToken(ctx context.Context, token string, reg *TimerRegistration) (bool, error)
	// List returns every stored registration. Unreadable entries are skipped.
	List(ctx context.Context) ([]*TimerRegistration, error)
}
