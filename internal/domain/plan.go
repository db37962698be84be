package domain

import "time"

// PlanSnapshot is the persisted outcome of one planning cycle.
type PlanSnapshot struct {
	RunID               string           `json:"run_id"`
	UserID              string           `json:"user_id"`
	Date                Date             `json:"date"`
	GeneratedAt         time.Time        `json:"generated_at"`
	QueueTaskIDs        []string         `json:"queue_task_ids"`
	OverflowTaskIDs     []string         `json:"overflow_task_ids"`
	FutureTaskIDs       []string         `json:"future_task_ids"`
	SkippedTaskIDs      []string         `json:"skipped_task_ids"`
	CapacityMinutes     int              `json:"capacity_minutes"`
	UsedMinutes         int              `json:"used_minutes"`
	UsagePercentage     int              `json:"usage_percentage"`
	OverCapacity        bool             `json:"over_capacity"`
	OverCapacityMinutes int              `json:"over_capacity_minutes"`
	Context             DayContext       `json:"context"`
	Recommendations     []Recommendation `json:"recommendations"`
	ConflictCount       int              `json:"conflict_count"`
}

// LaterTaskIDs returns overflow followed by future task ids.
func (s *PlanSnapshot) LaterTaskIDs() []string {
	ids := make([]string, 0, len(s.OverflowTaskIDs)+len(s.FutureTaskIDs))
	ids = append(ids, s.OverflowTaskIDs...)
	return append(ids, s.FutureTaskIDs...)
}
