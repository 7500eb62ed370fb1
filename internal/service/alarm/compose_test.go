package alarm

import (
	"testing"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour, minute int
		expected     string
	}{
		{0, 0, "12:00 AM"},
		{0, 30, "12:30 AM"},
		{9, 5, "9:05 AM"},
		{11, 59, "11:59 AM"},
		{12, 0, "12:00 PM"},
		{13, 7, "1:07 PM"},
		{21, 5, "9:05 PM"},
		{23, 59, "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatClock(tt.hour, tt.minute); got != tt.expected {
				t.Errorf("FormatClock(%d, %d) = %q, want %q", tt.hour, tt.minute, got, tt.expected)
			}
		})
	}
}

func TestComposeAlert(t *testing.T) {
	alert := ComposeAlert(domain.AlarmPayload{ReminderID: 7, MedicineName: "Metformin", Hour: 21, Minute: 5, FollowUp: domain.FollowUpUser})

	if alert.ReminderID != 7 {
		t.Errorf("reminder id: got %d", alert.ReminderID)
	}
	if alert.Title != "💊 Time for Metformin" {
		t.Errorf("title: got %q", alert.Title)
	}
	if alert.Body != "Time for Metformin at 9:05 PM. Stay on schedule!" {
		t.Errorf("body: got %q", alert.Body)
	}
	if alert.Speech != "Time to take Metformin at 9:05 PM" {
		t.Errorf("speech: got %q", alert.Speech)
	}
	if alert.FollowUp != domain.FollowUpUser {
		t.Errorf("follow-up: got %q", alert.FollowUp)
	}

	want := []domain.AlertAction{domain.AlertActionTaken, domain.AlertActionNotWilling, domain.AlertActionRemindLater}
	if len(alert.Actions) != len(want) {
		t.Fatalf("actions: got %v", alert.Actions)
	}
	for i := range want {
		if alert.Actions[i] != want[i] {
			t.Errorf("action %d: got %q, want %q", i, alert.Actions[i], want[i])
		}
	}
}

func TestComposeAlertDefaultName(t *testing.T) {
	alert := ComposeAlert(domain.AlarmPayload{ReminderID: 1, Hour: 8})

	if alert.MedicineName != domain.DefaultMedicineName {
		t.Errorf("expected default medicine name, got %q", alert.MedicineName)
	}
	if alert.Speech != "Time to take your medicine at 8:00 AM" {
		t.Errorf("speech: got %q", alert.Speech)
	}
}

func TestComposeAlertActionsAreIndependent(t *testing.T) {
	a := ComposeAlert(domain.AlarmPayload{ReminderID: 1})
	a.Actions[0] = "mutated"

	b := ComposeAlert(domain.AlarmPayload{ReminderID: 1})
	if b.Actions[0] != domain.AlertActionTaken {
		t.Errorf("alerts must not share the action slice, got %q", b.Actions[0])
	}
}
