package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const alarmTracerName = "github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"

func AlarmTracer() trace.Tracer {
	return otel.Tracer(alarmTracerName)
}

func StartScheduleSpan(ctx context.Context, operation string, reminderID int) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.schedule."+operation,
		trace.WithAttributes(
			attribute.Int("reminder.id", reminderID),
		),
	)
}

func StartFireSpan(ctx context.Context, reminderID int, kind string) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.fire",
		trace.WithAttributes(
			attribute.Int("reminder.id", reminderID),
			attribute.String("alarm.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
}

func StartDispatchSpan(ctx context.Context, reminderID int, action string) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.dispatch",
		trace.WithAttributes(
			attribute.Int("reminder.id", reminderID),
			attribute.String("alarm.action", action),
		),
	)
}

func StartTimerSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return AlarmTracer().Start(ctx, "alarm.timer."+operation,
		trace.WithAttributes(
			attribute.String("timer.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordTrigger(span trace.Span, at time.Time, exact bool) {
	span.SetAttributes(
		attribute.String("timer.at", at.Format(time.RFC3339)),
		attribute.Bool("timer.exact", exact),
	)
}

func RecordFireOutcome(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("alarm.outcome", outcome))
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
