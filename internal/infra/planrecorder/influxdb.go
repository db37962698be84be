//go:build !gcloud

package planrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const (
	planMeasurement           = "plan_result"
	recommendationMeasurement = "plan_recommendation"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PlanResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, plan result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "plan result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func planPoint(record domain.PlanResultRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		planMeasurement,
		map[string]string{
			"run_id":      runID,
			"date":        record.Date.String(),
			"energy_mode": record.EnergyMode,
			"momentum":    record.Momentum,
		},
		map[string]any{
			"capacity_minutes":      record.CapacityMinutes,
			"used_minutes":          record.UsedMinutes,
			"queue_count":           record.QueueCount,
			"overflow_count":        record.OverflowCount,
			"future_count":          record.FutureCount,
			"skipped_count":         record.SkippedCount,
			"over_capacity_minutes": record.OverCapacityMinutes,
			"overload_score":        record.OverloadScore,
			"conflict_count":        record.ConflictCount,
		},
		record.RecordedAt,
	)
}

func recommendationPoint(record domain.RecommendationRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		recommendationMeasurement,
		map[string]string{
			"run_id": runID,
			"type":   record.Type,
		},
		map[string]any{
			"priority":     record.Priority,
			"action_count": record.ActionCount,
		},
		record.RecordedAt,
	)
}

func (r *influxDBRecorder) RecordPlanResult(ctx context.Context, record domain.PlanResultRecord) error {
	if err := r.writeAPI.WritePoint(ctx, planPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write plan result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordRecommendations(ctx context.Context, records []domain.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, recommendationPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write recommendations to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
