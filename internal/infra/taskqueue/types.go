package taskqueue

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

// TimerTask is the body delivered back to the service when a timer matures.
type TimerTask struct {
	Name       string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	ReminderID    int                 `json:"reminder_id"`
	Class         domain.TimerClass   `json:"class"`
	Token         string              `json:"token"`
	At            time.Time           `json:"at"`
	PeriodSeconds int64               `json:"period_seconds,omitempty"`
	Exact         bool                `json:"exact"`
	Payload       domain.AlarmPayload `json:"payload"`
}

func (t *TimerTask) Key() domain.TimerKey {
	return domain.TimerKey{ReminderID: t.ReminderID, Class: t.Class}
}

func (t *TimerTask) Period() time.Duration {
	return time.Duration(t.PeriodSeconds) * time.Second
}

func (t *TimerTask) Validate() error {
	if t.Token == "" {
		return fmt.Errorf("timer task for %s has no token", t.Key())
	}
	switch t.Class {
	case domain.TimerClassDaily, domain.TimerClassFollowUp:
	default:
		return fmt.Errorf("timer task has unknown class %q", t.Class)
	}
	if t.At.IsZero() {
		return fmt.Errorf("timer task for %s has no trigger time", t.Key())
	}
	return nil
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
