package domain

import "context"

//go:generate mockgen -source=alert.go -destination=alert_mock.go -package=domain

type AlertAction string

const (
	AlertActionTaken       AlertAction = "taken"
	AlertActionNotWilling  AlertAction = "not_now"
	AlertActionRemindLater AlertAction = "remind_later"
)

func ParseAlertAction(s string) (AlertAction, error) {
	switch a := AlertAction(s); a {
	case AlertActionTaken, AlertActionNotWilling, AlertActionRemindLater:
		return a, nil
	}
	return "", ErrUnknownAction
}

func (a AlertAction) Label() string {
	switch a {
	case AlertActionTaken:
		return "Taken"
	case AlertActionNotWilling:
		return "Not Now"
	case AlertActionRemindLater:
		return "Remind Later"
	}
	return string(a)
}

// Alert is what the presenter shows and speaks for one firing.
type Alert struct {
	ReminderID   int           `json:"reminder_id"`
	MedicineName string        `json:"medicine_name"`
	Hour         int           `json:"hour"`
	Minute       int           `json:"minute"`
	FollowUp     FollowUpKind  `json:"follow_up,omitempty"`
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	Speech       string        `json:"speech"`
	Actions      []AlertAction `json:"actions"`
}

// UserAction is a response to an alert. ReminderID is -1 when the
// originating alert could not be identified.
type UserAction struct {
	ReminderID   int
	Action       AlertAction
	MedicineName string
	Hour         int
	Minute       int
}

func (a UserAction) Reminder() ReminderAlarm {
	return ReminderAlarm{
		ID:           a.ReminderID,
		MedicineName: a.MedicineName,
		Hour:         a.Hour,
		Minute:       a.Minute,
	}
}

type AlertPresenter interface {
	// Present starts showing the alert. The returned channel yields exactly
	// one value once playback finishes, nil on success.
	Present(ctx context.Context, alert Alert) <-chan error
	Dismiss(ctx context.Context, reminderID int) error
}
