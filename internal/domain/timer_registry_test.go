package domain

import (
	"testing"
	"time"
)

func TestTimerRegistrationNextOccurrence(t *testing.T) {
	first := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	period := 24 * time.Hour

	tests := []struct {
		name     string
		period   time.Duration
		now      time.Time
		expected time.Time
	}{
		{name: "on time", period: period, now: first, expected: first.Add(period)},
		{name: "late delivery", period: period, now: first.Add(3 * time.Hour), expected: first.Add(period)},
		{name: "missed days", period: period, now: first.Add(3*period + time.Minute), expected: first.Add(4 * period)},
		{name: "exactly on a later occurrence", period: period, now: first.Add(2 * period), expected: first.Add(3 * period)},
		{name: "one-shot keeps its trigger", period: 0, now: first.Add(time.Hour), expected: first},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &TimerRegistration{Key: DailyKey(1), At: first, Period: tt.period}
			if got := reg.NextOccurrence(tt.now); !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
			if reg.Repeating() != (tt.period > 0) {
				t.Errorf("Repeating() = %v for period %v", reg.Repeating(), tt.period)
			}
		})
	}
}
