package alarm

import (
	"fmt"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

var alertActions = []domain.AlertAction{
	domain.AlertActionTaken,
	domain.AlertActionNotWilling,
	domain.AlertActionRemindLater,
}

// FormatClock renders hour:minute on a 12-hour clock, e.g. "9:05 PM".
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

func ComposeAlert(payload domain.AlarmPayload) domain.Alert {
	reminder := payload.Reminder().Normalize()
	name := reminder.DisplayName()
	at := FormatClock(reminder.Hour, reminder.Minute)

	return domain.Alert{
		ReminderID:   reminder.ID,
		MedicineName: name,
		Hour:         reminder.Hour,
		Minute:       reminder.Minute,
		FollowUp:     payload.FollowUp,
		Title:        "💊 Time for " + name,
		Body:         fmt.Sprintf("Time for %s at %s. Stay on schedule!", name, at),
		Speech:       fmt.Sprintf("Time to take %s at %s", name, at),
		Actions:      append([]domain.AlertAction(nil), alertActions...),
	}
}
