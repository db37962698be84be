package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const plannerTracerName = "github.com/KasumiMercury/primind-day-planner/internal/service/planner"

func PlannerTracer() trace.Tracer {
	return otel.Tracer(plannerTracerName)
}

func StartPlanSpan(ctx context.Context, userID, date string, taskCount, eventCount int) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.plan",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("plan.date", date),
			attribute.Int("plan.task_count", taskCount),
			attribute.Int("plan.event_count", eventCount),
		),
	)
}

func StartPhaseSpan(ctx context.Context, phase string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner."+phase)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPlanResult(span trace.Span, queueCount, laterCount, skippedCount, overloadScore int, err error) {
	span.SetAttributes(
		attribute.Int("plan.queue_count", queueCount),
		attribute.Int("plan.later_count", laterCount),
		attribute.Int("plan.skipped_count", skippedCount),
		attribute.Int("plan.overload_score", overloadScore),
	)
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
