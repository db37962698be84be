//go:build gcloud

package planrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

type bigQueryPlanRecord struct {
	RecordedAt          time.Time `bigquery:"recorded_at"`
	RunID               string    `bigquery:"run_id"`
	UserID              string    `bigquery:"user_id"`
	Date                string    `bigquery:"date"`
	EnergyMode          string    `bigquery:"energy_mode"`
	Momentum            string    `bigquery:"momentum"`
	CapacityMinutes     int64     `bigquery:"capacity_minutes"`
	UsedMinutes         int64     `bigquery:"used_minutes"`
	QueueCount          int64     `bigquery:"queue_count"`
	OverflowCount       int64     `bigquery:"overflow_count"`
	FutureCount         int64     `bigquery:"future_count"`
	SkippedCount        int64     `bigquery:"skipped_count"`
	OverCapacityMinutes int64     `bigquery:"over_capacity_minutes"`
	OverloadScore       int64     `bigquery:"overload_score"`
	ConflictCount       int64     `bigquery:"conflict_count"`
}

type bigQueryRecommendationRecord struct {
	RecordedAt  time.Time `bigquery:"recorded_at"`
	RunID       string    `bigquery:"run_id"`
	Type        string    `bigquery:"type"`
	Priority    int64     `bigquery:"priority"`
	ActionCount int64     `bigquery:"action_count"`
}

type bigQueryRecorder struct {
	client                 *bigquery.Client
	planInserter           *bigquery.Inserter
	recommendationInserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PlanResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, plan result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "plan result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("plan_table", cfg.BigQueryPlanTable),
		slog.String("recommendation_table", cfg.BigQueryRecommendationTable),
	)

	return &bigQueryRecorder{
		client:                 client,
		planInserter:           dataset.Table(cfg.BigQueryPlanTable).Inserter(),
		recommendationInserter: dataset.Table(cfg.BigQueryRecommendationTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordPlanResult(ctx context.Context, record domain.PlanResultRecord) error {
	row := &bigQueryPlanRecord{
		RecordedAt:          record.RecordedAt,
		RunID:               record.RunID,
		UserID:              record.UserID,
		Date:                record.Date.String(),
		EnergyMode:          record.EnergyMode,
		Momentum:            record.Momentum,
		CapacityMinutes:     int64(record.CapacityMinutes),
		UsedMinutes:         int64(record.UsedMinutes),
		QueueCount:          int64(record.QueueCount),
		OverflowCount:       int64(record.OverflowCount),
		FutureCount:         int64(record.FutureCount),
		SkippedCount:        int64(record.SkippedCount),
		OverCapacityMinutes: int64(record.OverCapacityMinutes),
		OverloadScore:       int64(record.OverloadScore),
		ConflictCount:       int64(record.ConflictCount),
	}

	if err := r.planInserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert plan result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordRecommendations(ctx context.Context, records []domain.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*bigQueryRecommendationRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryRecommendationRecord{
			RecordedAt:  record.RecordedAt,
			RunID:       record.RunID,
			Type:        record.Type,
			Priority:    int64(record.Priority),
			ActionCount: int64(record.ActionCount),
		})
	}

	if err := r.recommendationInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert recommendations to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
