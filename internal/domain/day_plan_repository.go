package domain

import "context"

//go:generate mockgen -source=day_plan_repository.go -destination=day_plan_repository_mock.go -package=domain

type DayPlanRepository interface {
	GetSettings(ctx context.Context, userID string, date Date) (*DaySettings, error)
	SaveSettings(ctx context.Context, userID string, date Date, settings *DaySettings) error
	SaveSnapshot(ctx context.Context, snapshot *PlanSnapshot) error
	GetSnapshot(ctx context.Context, userID string, date Date) (*PlanSnapshot, error)
	DeleteSnapshot(ctx context.Context, userID string, date Date) error
}
