package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=plan_result_recorder.go -destination=plan_result_recorder_mock.go -package=domain

type PlanResultRecord struct {
	RunID               string
	UserID              string
	Date                Date
	RecordedAt          time.Time
	EnergyMode          string
	Momentum            string
	CapacityMinutes     int
	UsedMinutes         int
	QueueCount          int
	OverflowCount       int
	FutureCount         int
	SkippedCount        int
	OverCapacityMinutes int
	OverloadScore       int
	ConflictCount       int
}

type RecommendationRecord struct {
	RunID       string
	RecordedAt  time.Time
	Type        string
	Priority    int
	ActionCount int
}

type PlanResultRecorder interface {
	RecordPlanResult(ctx context.Context, record PlanResultRecord) error
	RecordRecommendations(ctx context.Context, records []RecommendationRecord) error
	Flush(ctx context.Context) error
	Close() error
}
