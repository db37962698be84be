package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	plannerMeterName = "dayplanner.service"
)

type PlannerMetrics struct {
	planRuns            metric.Int64Counter
	tasksPlaced         metric.Int64Counter
	recommendations     metric.Int64Counter
	snapshotWrites      metric.Int64Counter
	planDuration        metric.Float64Histogram
	overloadScore       metric.Int64Histogram
	capacityUtilization metric.Int64Histogram
}

func NewPlannerMetrics() (*PlannerMetrics, error) {
	meter := otel.Meter(plannerMeterName)

	planRuns, err := meter.Int64Counter(
		"dayplanner_plan_runs_total",
		metric.WithDescription("Total number of planning cycles"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	tasksPlaced, err := meter.Int64Counter(
		"dayplanner_tasks_placed_total",
		metric.WithDescription("Tasks placed per plan bucket"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	recommendations, err := meter.Int64Counter(
		"dayplanner_recommendations_total",
		metric.WithDescription("Recommendations returned, by type"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, err
	}

	snapshotWrites, err := meter.Int64Counter(
		"dayplanner_snapshot_writes_total",
		metric.WithDescription("Plan snapshot writes, by outcome"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	planDuration, err := meter.Float64Histogram(
		"dayplanner_plan_duration_seconds",
		metric.WithDescription("Time spent in one planning cycle"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	overloadScore, err := meter.Int64Histogram(
		"dayplanner_overload_score",
		metric.WithDescription("Day overload score (0-100)"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, err
	}

	capacityUtilization, err := meter.Int64Histogram(
		"dayplanner_capacity_utilization_percent",
		metric.WithDescription("Committed minutes as a percentage of capacity"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(25, 50, 75, 90, 100, 125, 150, 200),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		planRuns:            planRuns,
		tasksPlaced:         tasksPlaced,
		recommendations:     recommendations,
		snapshotWrites:      snapshotWrites,
		planDuration:        planDuration,
		overloadScore:       overloadScore,
		capacityUtilization: capacityUtilization,
	}, nil
}

func (m *PlannerMetrics) RecordPlanRun(ctx context.Context, energyMode, outcome string) {
	m.planRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("energy_mode", energyMode),
		attribute.String("outcome", outcome),
	))
}

// RecordTasksPlaced counts tasks in one bucket: queue, overflow, future or skipped.
func (m *PlannerMetrics) RecordTasksPlaced(ctx context.Context, bucket string, count int) {
	if count <= 0 {
		return
	}
	m.tasksPlaced.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("bucket", bucket),
	))
}

func (m *PlannerMetrics) RecordRecommendation(ctx context.Context, recommendationType string) {
	m.recommendations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", recommendationType),
	))
}

func (m *PlannerMetrics) RecordSnapshotWrite(ctx context.Context, outcome string) {
	m.snapshotWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *PlannerMetrics) RecordPlanDuration(ctx context.Context, duration time.Duration) {
	m.planDuration.Record(ctx, duration.Seconds())
}

func (m *PlannerMetrics) RecordOverloadScore(ctx context.Context, score int) {
	m.overloadScore.Record(ctx, int64(score))
}

func (m *PlannerMetrics) RecordCapacityUtilization(ctx context.Context, percent int) {
	m.capacityUtilization.Record(ctx, int64(percent))
}
