package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=timer.go -destination=timer_mock.go -package=domain

type TimerClass string

const (
	TimerClassDaily    TimerClass = "daily"
	TimerClassFollowUp TimerClass = "followup"
)

// TimerKey identifies one timer slot. Registering a slot that is already
// armed replaces the pending registration.
type TimerKey struct {
	ReminderID int
	Class      TimerClass
}

func DailyKey(reminderID int) TimerKey {
	return TimerKey{ReminderID: reminderID, Class: TimerClassDaily}
}

// FollowUpKey is shared by auto and user follow-ups of the same reminder.
func FollowUpKey(reminderID int) TimerKey {
	return TimerKey{ReminderID: reminderID, Class: TimerClassFollowUp}
}

func (k TimerKey) String() string {
	return fmt.Sprintf("reminder:%d:%s", k.ReminderID, k.Class)
}

type Timer interface {
	ScheduleAt(ctx context.Context, key TimerKey, at time.Time, payload AlarmPayload) error
	ScheduleRepeating(ctx context.Context, key TimerKey, first time.Time, period time.Duration, payload AlarmPayload) error
	Cancel(ctx context.Context, key TimerKey) error
}

// InexactTimer is implemented by timers that can fall back to a
// best-effort registration when exact registration is denied.
type InexactTimer interface {
	ScheduleInexact(ctx context.Context, key TimerKey, at time.Time, period time.Duration, payload AlarmPayload) error
}
