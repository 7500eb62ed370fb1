package domain

import "fmt"

const DefaultMedicineName = "your medicine"

// MaxSnoozeMinutes caps Remind Later at one day.
const MaxSnoozeMinutes = 24 * 60

// ReminderAlarm is a daily medication reminder registered by the caller.
type ReminderAlarm struct {
	ID           int
	MedicineName string
	Hour         int
	Minute       int
}

// Validate rejects reminders the scheduler must not act on.
// Hour and minute are clamped by Normalize rather than rejected.
func (r ReminderAlarm) Validate() error {
	if r.ID < 0 {
		return fmt.Errorf("%w: reminder id %d is negative", ErrInvalidReminder, r.ID)
	}
	return nil
}

func (r ReminderAlarm) Normalize() ReminderAlarm {
	r.Hour = clamp(r.Hour, 0, 23)
	r.Minute = clamp(r.Minute, 0, 59)
	return r
}

func (r ReminderAlarm) DisplayName() string {
	if r.MedicineName == "" {
		return DefaultMedicineName
	}
	return r.MedicineName
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type FollowUpKind string

const (
	FollowUpNone FollowUpKind = ""
	FollowUpAuto FollowUpKind = "auto"
	FollowUpUser FollowUpKind = "user"
)

func (k FollowUpKind) String() string {
	if k == FollowUpNone {
		return "daily"
	}
	return string(k)
}

// AlarmPayload travels with a timer registration and comes back when it matures.
type AlarmPayload struct {
	ReminderID   int          `json:"reminder_id"`
	MedicineName string       `json:"medicine_name"`
	Hour         int          `json:"hour"`
	Minute       int          `json:"minute"`
	FollowUp     FollowUpKind `json:"follow_up,omitempty"`
}

func (p AlarmPayload) IsFollowUp() bool {
	return p.FollowUp != FollowUpNone
}

func (p AlarmPayload) Reminder() ReminderAlarm {
	return ReminderAlarm{
		ID:           p.ReminderID,
		MedicineName: p.MedicineName,
		Hour:         p.Hour,
		Minute:       p.Minute,
	}
}

func PayloadFor(r ReminderAlarm, kind FollowUpKind) AlarmPayload {
	return AlarmPayload{
		ReminderID:   r.ID,
		MedicineName: r.MedicineName,
		Hour:         r.Hour,
		Minute:       r.Minute,
		FollowUp:     kind,
	}
}
