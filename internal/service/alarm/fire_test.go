package alarm

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/testutil"
)

type fireFixture struct {
	timer     *testutil.FakeTimer
	acks      *testutil.MemoryAcknowledgements
	presenter *testutil.RecordingPresenter
	scheduler *Scheduler
	handler   *FireHandler
}

func newFireFixture(timeout time.Duration) *fireFixture {
	f := &fireFixture{
		timer:     testutil.NewFakeTimer(),
		acks:      testutil.NewMemoryAcknowledgements(),
		presenter: testutil.NewRecordingPresenter(),
	}
	f.scheduler = NewScheduler(f.timer, f.acks, testutil.NewMemorySettings(), fakeClockAt(9, 0), Config{Location: time.UTC}, nil)
	f.handler = NewFireHandler(f.scheduler, f.presenter, timeout, nil)
	return f
}

func TestFireDailyDeliversAndArmsFollowUp(t *testing.T) {
	f := newFireFixture(time.Second)
	ctx := context.Background()

	payload := domain.AlarmPayload{ReminderID: 1, MedicineName: "Aspirin", Hour: 9}
	if got := f.handler.Fire(ctx, payload); got != FireDelivered {
		t.Fatalf("expected %q, got %q", FireDelivered, got)
	}

	alerts := f.presenter.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	if alerts[0].Speech != "Time to take Aspirin at 9:00 AM" {
		t.Errorf("unexpected speech: %q", alerts[0].Speech)
	}

	entry, ok := f.timer.Pending(domain.FollowUpKey(1))
	if !ok {
		t.Fatal("expected auto follow-up to be armed")
	}
	if entry.Payload.FollowUp != domain.FollowUpAuto {
		t.Errorf("expected auto follow-up, got %q", entry.Payload.FollowUp)
	}
}

func TestFireAcknowledgement(t *testing.T) {
	tests := []struct {
		name        string
		followUp    domain.FollowUpKind
		expected    FireOutcome
		wantAlerts  int
		wantAckKept bool
	}{
		{
			name:        "auto follow-up suppressed",
			followUp:    domain.FollowUpAuto,
			expected:    FireSuppressed,
			wantAlerts:  0,
			wantAckKept: true,
		},
		{
			name:        "user follow-up suppressed",
			followUp:    domain.FollowUpUser,
			expected:    FireSuppressed,
			wantAlerts:  0,
			wantAckKept: true,
		},
		{
			name:        "daily firing resets and delivers",
			followUp:    domain.FollowUpNone,
			expected:    FireDelivered,
			wantAlerts:  1,
			wantAckKept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFireFixture(time.Second)
			ctx := context.Background()
			_ = f.acks.SetAcknowledged(ctx, 1)

			got := f.handler.Fire(ctx, domain.AlarmPayload{ReminderID: 1, Hour: 9, FollowUp: tt.followUp})
			if got != tt.expected {
				t.Errorf("outcome: got %q, want %q", got, tt.expected)
			}
			if n := len(f.presenter.Alerts()); n != tt.wantAlerts {
				t.Errorf("alerts: got %d, want %d", n, tt.wantAlerts)
			}
			acked, _ := f.acks.IsAcknowledged(ctx, 1)
			if acked != tt.wantAckKept {
				t.Errorf("acknowledged: got %v, want %v", acked, tt.wantAckKept)
			}
			if _, ok := f.timer.Pending(domain.FollowUpKey(1)); ok == tt.wantAckKept {
				t.Errorf("follow-up armed: got %v, want %v", ok, !tt.wantAckKept)
			}
		})
	}
}

func TestFireIgnoresNegativeID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Neither presenter nor persistence may be touched.
	mockPresenter := domain.NewMockAlertPresenter(ctrl)
	scheduler := NewScheduler(
		domain.NewMockTimer(ctrl),
		domain.NewMockAcknowledgementRepository(ctrl),
		domain.NewMockSettingsRepository(ctrl),
		fakeClockAt(9, 0),
		Config{},
		nil,
	)
	handler := NewFireHandler(scheduler, mockPresenter, time.Second, nil)

	if got := handler.Fire(context.Background(), domain.AlarmPayload{ReminderID: -1}); got != FireIgnored {
		t.Errorf("expected %q, got %q", FireIgnored, got)
	}
}

func TestFireDeliveryOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		hang       bool
		presentErr error
		expected   FireOutcome
	}{
		{name: "delivered", expected: FireDelivered},
		{name: "presenter failure", presentErr: errors.New("speaker busy"), expected: FireDeliveryFailed},
		{name: "presenter never completes", hang: true, expected: FireTimedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFireFixture(20 * time.Millisecond)
			f.presenter.Hang = tt.hang
			f.presenter.PresentErr = tt.presentErr

			got := f.handler.Fire(context.Background(), domain.AlarmPayload{ReminderID: 2, Hour: 9})
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
			if _, ok := f.timer.Pending(domain.FollowUpKey(2)); !ok {
				t.Error("auto follow-up must be armed regardless of delivery outcome")
			}
		})
	}
}

func TestFireAbandonedOnContextCancel(t *testing.T) {
	f := newFireFixture(time.Minute)
	f.presenter.Hang = true

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if got := f.handler.Fire(ctx, domain.AlarmPayload{ReminderID: 3, Hour: 9}); got != FireAbandoned {
		t.Errorf("expected %q, got %q", FireAbandoned, got)
	}
}

func TestFireFollowUpWithUnreadableAcknowledgement(t *testing.T) {
	f := newFireFixture(time.Second)
	f.acks.ReadErr = errors.New("redis down")

	got := f.handler.Fire(context.Background(), domain.AlarmPayload{ReminderID: 4, Hour: 9, FollowUp: domain.FollowUpAuto})
	if got != FireDelivered {
		t.Errorf("unreadable state should not suppress the alert, got %q", got)
	}
}
