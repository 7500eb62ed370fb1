package metrics

import (
	"context"
	"testing"
	"time"
)

func TestNilAlarmMetricsIsSafe(t *testing.T) {
	var m *AlarmMetrics
	ctx := context.Background()

	m.RecordFiring(ctx, "daily", "delivered")
	m.RecordFollowUpArmed(ctx, "auto", true)
	m.RecordTimerDowngrade(ctx, "followup")
	m.RecordTimerFailure(ctx, "daily")
	m.RecordAction(ctx, "taken")
	m.RecordDeliveryDuration(ctx, "completed", time.Second)
}

func TestNewAlarmMetrics(t *testing.T) {
	m, err := NewAlarmMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.RecordFiring(context.Background(), "auto", "suppressed")
	m.RecordDeliveryDuration(context.Background(), "timeout", 15*time.Second)
}
