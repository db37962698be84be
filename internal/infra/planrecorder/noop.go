package planrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

var _ domain.PlanResultRecorder = (*noopRecorder)(nil)

type noopRecorder struct{}

func NewNoopRecorder() domain.PlanResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordPlanResult(_ context.Context, _ domain.PlanResultRecord) error {
	return nil
}

func (n *noopRecorder) RecordRecommendations(_ context.Context, _ []domain.RecommendationRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
