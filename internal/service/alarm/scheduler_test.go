package alarm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/testutil"
)

func fakeClockAt(hour, minute int) clock.FakeClock {
	clk := clock.NewFake()
	clk.Set(time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC))
	return clk
}

func TestNextTrigger(t *testing.T) {
	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		hour     int
		minute   int
		expected time.Time
	}{
		{
			name:     "later today",
			now:      base,
			hour:     9,
			minute:   0,
			expected: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "earlier today rolls to tomorrow",
			now:      base,
			hour:     7,
			minute:   30,
			expected: time.Date(2024, 1, 16, 7, 30, 0, 0, time.UTC),
		},
		{
			name:     "exactly now rolls to tomorrow",
			now:      base,
			hour:     8,
			minute:   0,
			expected: time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "same minute with seconds elapsed rolls to tomorrow",
			now:      base.Add(30 * time.Second),
			hour:     8,
			minute:   0,
			expected: time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "next minute is today",
			now:      base.Add(59 * time.Second),
			hour:     8,
			minute:   1,
			expected: time.Date(2024, 1, 15, 8, 1, 0, 0, time.UTC),
		},
		{
			name:     "end of month rolls into next month",
			now:      time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC),
			hour:     6,
			minute:   0,
			expected: time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTrigger(tt.now, tt.hour, tt.minute)
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScheduleRegistersDailyTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTimer := domain.NewMockTimer(ctrl)
	mockAcks := domain.NewMockAcknowledgementRepository(ctrl)
	mockSettings := domain.NewMockSettingsRepository(ctrl)

	clk := fakeClockAt(8, 0)
	s := NewScheduler(mockTimer, mockAcks, mockSettings, clk, Config{Location: time.UTC}, nil)

	wantFirst := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	gomock.InOrder(
		mockAcks.EXPECT().ClearAcknowledged(gomock.Any(), 1).Return(nil),
		mockTimer.EXPECT().Cancel(gomock.Any(), domain.FollowUpKey(1)).Return(nil),
		mockTimer.EXPECT().
			ScheduleRepeating(gomock.Any(), domain.DailyKey(1), wantFirst, 24*time.Hour, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.TimerKey, _ time.Time, _ time.Duration, payload domain.AlarmPayload) error {
				if payload.ReminderID != 1 || payload.MedicineName != "Aspirin" {
					t.Errorf("unexpected payload: %+v", payload)
				}
				if payload.IsFollowUp() {
					t.Errorf("daily payload must not be a follow-up: %+v", payload)
				}
				return nil
			}),
	)

	result, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: 1, MedicineName: "Aspirin", Hour: 9, Minute: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.NextTrigger.Equal(wantFirst) {
		t.Errorf("next trigger: got %v, want %v", result.NextTrigger, wantFirst)
	}
	if !result.Armed || !result.Exact {
		t.Errorf("expected armed exact registration, got %+v", result)
	}
}

func TestScheduleClampsTime(t *testing.T) {
	timer := testutil.NewFakeTimer()
	clk := fakeClockAt(8, 0)
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), testutil.NewMemorySettings(), clk, Config{Location: time.UTC}, nil)

	result, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: 2, Hour: 27, Minute: -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	if !result.NextTrigger.Equal(want) {
		t.Errorf("got %v, want %v", result.NextTrigger, want)
	}
	entry, ok := timer.Pending(domain.DailyKey(2))
	if !ok {
		t.Fatal("expected daily registration")
	}
	if entry.Payload.Hour != 23 || entry.Payload.Minute != 0 {
		t.Errorf("expected clamped payload time, got %d:%d", entry.Payload.Hour, entry.Payload.Minute)
	}
}

func TestScheduleRejectsNegativeID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No calls are expected on any collaborator.
	s := NewScheduler(
		domain.NewMockTimer(ctrl),
		domain.NewMockAcknowledgementRepository(ctrl),
		domain.NewMockSettingsRepository(ctrl),
		fakeClockAt(8, 0),
		Config{},
		nil,
	)

	_, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: -1, Hour: 9})
	if !errors.Is(err, domain.ErrInvalidReminder) {
		t.Errorf("expected ErrInvalidReminder, got %v", err)
	}
	if err := s.Cancel(context.Background(), -1); !errors.Is(err, domain.ErrInvalidReminder) {
		t.Errorf("expected ErrInvalidReminder from Cancel, got %v", err)
	}
}

func TestScheduleSupersedesPriorRegistration(t *testing.T) {
	timer := testutil.NewFakeTimer()
	acks := testutil.NewMemoryAcknowledgements()
	clk := fakeClockAt(8, 0)
	s := NewScheduler(timer, acks, testutil.NewMemorySettings(), clk, Config{Location: time.UTC}, nil)
	ctx := context.Background()

	if err := acks.SetAcknowledged(ctx, 1); err != nil {
		t.Fatalf("failed to set up acknowledgement: %v", err)
	}
	if err := timer.ScheduleAt(ctx, domain.FollowUpKey(1), clk.Now().Add(time.Minute), domain.AlarmPayload{ReminderID: 1, FollowUp: domain.FollowUpUser}); err != nil {
		t.Fatalf("failed to set up follow-up: %v", err)
	}

	if _, err := s.Schedule(ctx, domain.ReminderAlarm{ID: 1, MedicineName: "Aspirin", Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Schedule(ctx, domain.ReminderAlarm{ID: 1, MedicineName: "Ibuprofen", Hour: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := timer.Pending(domain.FollowUpKey(1)); ok {
		t.Error("schedule should cancel the pending follow-up")
	}
	if acked, _ := acks.IsAcknowledged(ctx, 1); acked {
		t.Error("schedule should clear the acknowledgement")
	}
	if timer.Len() != 1 {
		t.Errorf("expected exactly one registration, got %d", timer.Len())
	}
	entry, _ := timer.Pending(domain.DailyKey(1))
	if entry.Payload.MedicineName != "Ibuprofen" || entry.At.Hour() != 10 {
		t.Errorf("expected the latest registration to win, got %+v", entry)
	}
}

func TestScheduleFallsBackToInexact(t *testing.T) {
	timer := testutil.NewFakeTimer()
	timer.DenyExact = true
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), testutil.NewMemorySettings(), fakeClockAt(8, 0), Config{Location: time.UTC}, nil)

	result, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: 1, Hour: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Armed || result.Exact {
		t.Errorf("expected armed inexact registration, got %+v", result)
	}
	entry, ok := timer.Pending(domain.DailyKey(1))
	if !ok || entry.Exact || entry.Period != DailyPeriod {
		t.Errorf("expected inexact daily registration, got %+v (present=%v)", entry, ok)
	}
}

func TestScheduleTimerFailureIsNotFatal(t *testing.T) {
	timer := testutil.NewFakeTimer()
	timer.Err = errors.New("queue unavailable")
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), testutil.NewMemorySettings(), fakeClockAt(8, 0), Config{Location: time.UTC}, nil)

	result, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: 1, Hour: 9})
	if err != nil {
		t.Fatalf("timer failures must not surface, got %v", err)
	}
	if result.Armed {
		t.Error("expected registration to be reported as not armed")
	}
}

func TestScheduleWithoutExactFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTimer := domain.NewMockTimer(ctrl)
	s := NewScheduler(mockTimer, testutil.NewMemoryAcknowledgements(), testutil.NewMemorySettings(), fakeClockAt(8, 0), Config{Location: time.UTC}, nil)

	mockTimer.EXPECT().Cancel(gomock.Any(), domain.FollowUpKey(4)).Return(nil)
	mockTimer.EXPECT().
		ScheduleRepeating(gomock.Any(), domain.DailyKey(4), gomock.Any(), DailyPeriod, gomock.Any()).
		Return(domain.ErrExactTimerDenied)

	result, err := s.Schedule(context.Background(), domain.ReminderAlarm{ID: 4, Hour: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Armed {
		t.Error("a timer without inexact support cannot fall back")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	timer := testutil.NewFakeTimer()
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), testutil.NewMemorySettings(), fakeClockAt(8, 0), Config{Location: time.UTC}, nil)
	ctx := context.Background()

	if _, err := s.Schedule(ctx, domain.ReminderAlarm{ID: 5, Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ScheduleAutoFollowUp(ctx, domain.ReminderAlarm{ID: 5, Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Cancel(ctx, 5); err != nil {
			t.Fatalf("cancel #%d: unexpected error: %v", i+1, err)
		}
	}
	if timer.Len() != 0 {
		t.Errorf("expected no registrations after cancel, got %d", timer.Len())
	}
}

func TestScheduleAutoFollowUp(t *testing.T) {
	tests := []struct {
		name      string
		acked     bool
		wantArmed bool
	}{
		{name: "arms one minute ahead", acked: false, wantArmed: true},
		{name: "no-op when acknowledged", acked: true, wantArmed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := testutil.NewFakeTimer()
			acks := testutil.NewMemoryAcknowledgements()
			clk := fakeClockAt(9, 0)
			s := NewScheduler(timer, acks, testutil.NewMemorySettings(), clk, Config{Location: time.UTC}, nil)
			ctx := context.Background()

			if tt.acked {
				_ = acks.SetAcknowledged(ctx, 1)
			}

			armed, err := s.ScheduleAutoFollowUp(ctx, domain.ReminderAlarm{ID: 1, MedicineName: "Aspirin", Hour: 9})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if armed != tt.wantArmed {
				t.Errorf("armed: got %v, want %v", armed, tt.wantArmed)
			}

			entry, ok := timer.Pending(domain.FollowUpKey(1))
			if ok != tt.wantArmed {
				t.Fatalf("pending follow-up: got %v, want %v", ok, tt.wantArmed)
			}
			if ok {
				if !entry.At.Equal(clk.Now().Add(time.Minute)) {
					t.Errorf("expected follow-up at %v, got %v", clk.Now().Add(time.Minute), entry.At)
				}
				if entry.Payload.FollowUp != domain.FollowUpAuto {
					t.Errorf("expected auto follow-up, got %q", entry.Payload.FollowUp)
				}
			}
		})
	}
}

func TestScheduleAutoFollowUpAckReadFailureStillArms(t *testing.T) {
	timer := testutil.NewFakeTimer()
	acks := testutil.NewMemoryAcknowledgements()
	acks.ReadErr = errors.New("redis down")
	s := NewScheduler(timer, acks, testutil.NewMemorySettings(), fakeClockAt(9, 0), Config{Location: time.UTC}, nil)

	armed, err := s.ScheduleAutoFollowUp(context.Background(), domain.ReminderAlarm{ID: 1, Hour: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !armed {
		t.Error("unreadable acknowledgement must be treated as not acknowledged")
	}
}

func TestScheduleFollowUpUsesSnooze(t *testing.T) {
	timer := testutil.NewFakeTimer()
	settings := testutil.NewMemorySettings()
	clk := fakeClockAt(9, 1)
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), settings, clk, Config{Location: time.UTC}, nil)
	ctx := context.Background()

	if _, err := s.ScheduleAutoFollowUp(ctx, domain.ReminderAlarm{ID: 1, Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	armed, err := s.ScheduleFollowUp(ctx, domain.ReminderAlarm{ID: 1, Hour: 9})
	if err != nil || !armed {
		t.Fatalf("expected follow-up armed, got armed=%v err=%v", armed, err)
	}

	entry, ok := timer.Pending(domain.FollowUpKey(1))
	if !ok {
		t.Fatal("expected pending follow-up")
	}
	if entry.Payload.FollowUp != domain.FollowUpUser {
		t.Errorf("user follow-up should replace the auto one, got %q", entry.Payload.FollowUp)
	}
	if want := clk.Now().Add(5 * time.Minute); !entry.At.Equal(want) {
		t.Errorf("expected default snooze at %v, got %v", want, entry.At)
	}

	if err := s.SetSnoozeDuration(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ScheduleFollowUp(ctx, domain.ReminderAlarm{ID: 1, Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, _ = timer.Pending(domain.FollowUpKey(1))
	if want := clk.Now().Add(10 * time.Minute); !entry.At.Equal(want) {
		t.Errorf("expected configured snooze at %v, got %v", want, entry.At)
	}
}

func TestSnoozeDuration(t *testing.T) {
	settings := testutil.NewMemorySettings()
	s := NewScheduler(testutil.NewFakeTimer(), testutil.NewMemoryAcknowledgements(), settings, fakeClockAt(9, 0), Config{DefaultSnoozeMinutes: 5}, nil)
	ctx := context.Background()

	if got := s.GetSnoozeDuration(ctx); got != 5 {
		t.Errorf("expected default 5, got %d", got)
	}

	for _, m := range []int{1, 7, domain.MaxSnoozeMinutes, 30} {
		if err := s.SetSnoozeDuration(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.GetSnoozeDuration(ctx); got != m {
			t.Errorf("expected %d, got %d", m, got)
		}
	}

	for _, m := range []int{0, -3, domain.MaxSnoozeMinutes + 1, 200_000_000} {
		if err := s.SetSnoozeDuration(ctx, m); !errors.Is(err, domain.ErrInvalidSnoozeDuration) {
			t.Errorf("SetSnoozeDuration(%d): expected ErrInvalidSnoozeDuration, got %v", m, err)
		}
	}
	if got := s.GetSnoozeDuration(ctx); got != 30 {
		t.Errorf("invalid values must not overwrite the setting, got %d", got)
	}

	settings.ReadErr = errors.New("redis down")
	if got := s.GetSnoozeDuration(ctx); got != 5 {
		t.Errorf("expected default on read failure, got %d", got)
	}
}

func TestAcknowledgeCancelsFollowUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTimer := domain.NewMockTimer(ctrl)
	mockAcks := domain.NewMockAcknowledgementRepository(ctrl)
	s := NewScheduler(mockTimer, mockAcks, testutil.NewMemorySettings(), fakeClockAt(9, 0), Config{}, nil)

	gomock.InOrder(
		mockAcks.EXPECT().SetAcknowledged(gomock.Any(), 3).Return(nil),
		mockTimer.EXPECT().Cancel(gomock.Any(), domain.FollowUpKey(3)).Return(nil),
	)

	if err := s.Acknowledge(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAcknowledgePersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTimer := domain.NewMockTimer(ctrl)
	mockAcks := domain.NewMockAcknowledgementRepository(ctrl)
	s := NewScheduler(mockTimer, mockAcks, testutil.NewMemorySettings(), fakeClockAt(9, 0), Config{}, nil)

	writeErr := errors.New("redis down")
	mockAcks.EXPECT().SetAcknowledged(gomock.Any(), 3).Return(writeErr)
	mockTimer.EXPECT().Cancel(gomock.Any(), domain.FollowUpKey(3)).Return(nil)

	if err := s.Acknowledge(context.Background(), 3); !errors.Is(err, writeErr) {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestScheduleFollowUpIgnoresOversizedStoredSnooze(t *testing.T) {
	timer := testutil.NewFakeTimer()
	settings := testutil.NewMemorySettings()
	clk := fakeClockAt(9, 1)
	s := NewScheduler(timer, testutil.NewMemoryAcknowledgements(), settings, clk, Config{Location: time.UTC}, nil)
	ctx := context.Background()

	// Written behind the scheduler's back, as another client of the store could.
	if err := settings.SetSnoozeMinutes(ctx, 200_000_000); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	if _, err := s.ScheduleFollowUp(ctx, domain.ReminderAlarm{ID: 1, Hour: 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := timer.Pending(domain.FollowUpKey(1))
	if !ok {
		t.Fatal("expected pending follow-up")
	}
	if want := clk.Now().Add(5 * time.Minute); !entry.At.Equal(want) {
		t.Errorf("expected default snooze at %v, got %v", want, entry.At)
	}
}
