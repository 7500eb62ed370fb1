package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	alarmMeterName = "medication.alarm"
)

// AlarmMetrics is safe to use as a nil pointer, which records nothing.
type AlarmMetrics struct {
	firings          metric.Int64Counter
	followUpsArmed   metric.Int64Counter
	timerDowngrades  metric.Int64Counter
	timerFailures    metric.Int64Counter
	actions          metric.Int64Counter
	deliveryDuration metric.Float64Histogram
}

func NewAlarmMetrics() (*AlarmMetrics, error) {
	meter := otel.Meter(alarmMeterName)

	firings, err := meter.Int64Counter(
		"alarm_firings_total",
		metric.WithDescription("Matured alarm timers by kind and outcome"),
		metric.WithUnit("{firing}"),
	)
	if err != nil {
		return nil, err
	}

	followUpsArmed, err := meter.Int64Counter(
		"alarm_followups_armed_total",
		metric.WithDescription("Follow-up timers armed by kind"),
		metric.WithUnit("{timer}"),
	)
	if err != nil {
		return nil, err
	}

	timerDowngrades, err := meter.Int64Counter(
		"alarm_timer_downgrades_total",
		metric.WithDescription("Exact timer registrations that fell back to inexact registration"),
		metric.WithUnit("{timer}"),
	)
	if err != nil {
		return nil, err
	}

	timerFailures, err := meter.Int64Counter(
		"alarm_timer_failures_total",
		metric.WithDescription("Timer registrations that failed after fallback"),
		metric.WithUnit("{timer}"),
	)
	if err != nil {
		return nil, err
	}

	actions, err := meter.Int64Counter(
		"alarm_actions_total",
		metric.WithDescription("User responses to alerts"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryDuration, err := meter.Float64Histogram(
		"alarm_delivery_duration_seconds",
		metric.WithDescription("Time an alert held the firing until release"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.5, 1, 2.5, 5, 7.5, 10, 12.5, 15, 20,
		),
	)
	if err != nil {
		return nil, err
	}

	return &AlarmMetrics{
		firings:          firings,
		followUpsArmed:   followUpsArmed,
		timerDowngrades:  timerDowngrades,
		timerFailures:    timerFailures,
		actions:          actions,
		deliveryDuration: deliveryDuration,
	}, nil
}

func (m *AlarmMetrics) RecordFiring(ctx context.Context, kind, outcome string) {
	if m == nil {
		return
	}
	m.firings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *AlarmMetrics) RecordFollowUpArmed(ctx context.Context, kind string, exact bool) {
	if m == nil {
		return
	}
	m.followUpsArmed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("exact", exact),
	))
}

func (m *AlarmMetrics) RecordTimerDowngrade(ctx context.Context, class string) {
	if m == nil {
		return
	}
	m.timerDowngrades.Add(ctx, 1, metric.WithAttributes(
		attribute.String("class", class),
	))
}

func (m *AlarmMetrics) RecordTimerFailure(ctx context.Context, class string) {
	if m == nil {
		return
	}
	m.timerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("class", class),
	))
}

func (m *AlarmMetrics) RecordAction(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
	))
}

func (m *AlarmMetrics) RecordDeliveryDuration(ctx context.Context, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.deliveryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
