package planner

import (
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/queue"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
)

const defaultNowCount = 3

// Request is one planning cycle's input. Settings override the stored day
// settings when present; Date and Now default to the current day and time.
type Request struct {
	Date                   domain.Date            `json:"date,omitempty" yaml:"date,omitempty"`
	Now                    *time.Time             `json:"now,omitempty" yaml:"now,omitempty"`
	Tasks                  []domain.Task          `json:"tasks" yaml:"tasks"`
	Timeline               []domain.TimelineEvent `json:"timeline" yaml:"timeline"`
	Settings               *domain.DaySettings    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Activity               daycontext.Activity    `json:"activity" yaml:"activity"`
	ActiveTaskID           string                 `json:"active_task_id,omitempty" yaml:"active_task_id,omitempty"`
	ConsecutiveWorkMinutes int                    `json:"consecutive_work_minutes" yaml:"consecutive_work_minutes" binding:"gte=0"`
	NowCount               int                    `json:"now_count,omitempty" yaml:"now_count,omitempty" binding:"gte=0"`
}

type TaskEntry struct {
	TaskID          string      `json:"task_id"`
	Title           string      `json:"title"`
	EstimateMinutes int         `json:"estimate_minutes"`
	Score           float64     `json:"score"`
	IsMust          bool        `json:"is_must"`
	DueDate         domain.Date `json:"due_date,omitempty"`
	DaysOverdue     int         `json:"days_overdue,omitempty"`
}

type SkippedEntry struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

type Response struct {
	RunID       string      `json:"run_id"`
	Date        domain.Date `json:"date"`
	GeneratedAt time.Time   `json:"generated_at"`

	// Now is the head of Queue to work on first; RemainingToday is the rest.
	Now            []TaskEntry    `json:"now"`
	RemainingToday []TaskEntry    `json:"remaining_today"`
	Queue          []TaskEntry    `json:"queue"`
	Overflow       []TaskEntry    `json:"overflow"`
	Future         []TaskEntry    `json:"future"`
	Skipped        []SkippedEntry `json:"skipped"`

	CapacityMinutes     int  `json:"capacity_minutes"`
	UsedMinutes         int  `json:"used_minutes"`
	UsagePercentage     int  `json:"usage_percentage"`
	OverCapacity        bool `json:"over_capacity"`
	OverCapacityMinutes int  `json:"over_capacity_minutes"`

	Settings        domain.DaySettings      `json:"settings"`
	Context         domain.DayContext       `json:"context"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Conflicts       []domain.Conflict       `json:"conflicts"`
	ProposedBlocks  []domain.TimelineEvent  `json:"proposed_blocks"`
	SuggestBreak    bool                    `json:"suggest_break"`
}

// Snapshot is the persisted form of the response.
func (r *Response) Snapshot(userID string) *domain.PlanSnapshot {
	return &domain.PlanSnapshot{
		RunID:               r.RunID,
		UserID:              userID,
		Date:                r.Date,
		GeneratedAt:         r.GeneratedAt,
		QueueTaskIDs:        entryIDs(r.Queue),
		OverflowTaskIDs:     entryIDs(r.Overflow),
		FutureTaskIDs:       entryIDs(r.Future),
		SkippedTaskIDs:      skippedIDs(r.Skipped),
		CapacityMinutes:     r.CapacityMinutes,
		UsedMinutes:         r.UsedMinutes,
		UsagePercentage:     r.UsagePercentage,
		OverCapacity:        r.OverCapacity,
		OverCapacityMinutes: r.OverCapacityMinutes,
		Context:             r.Context,
		Recommendations:     r.Recommendations,
		ConflictCount:       len(r.Conflicts),
	}
}

type SlotRequest struct {
	Timeline        []domain.TimelineEvent `json:"timeline" yaml:"timeline"`
	DurationMinutes int                    `json:"duration_minutes" yaml:"duration_minutes" binding:"required,gt=0"`
	After           *time.Time             `json:"after,omitempty" yaml:"after,omitempty"`
	WorkingHours    *domain.WorkingHours   `json:"working_hours,omitempty" yaml:"working_hours,omitempty"`
	BufferMinutes   *int                   `json:"buffer_minutes,omitempty" yaml:"buffer_minutes,omitempty" binding:"omitempty,gte=0"`
}

func toEntries(scored []scoring.ScoredTask, today domain.Date) []TaskEntry {
	entries := make([]TaskEntry, 0, len(scored))
	for i := range scored {
		task := &scored[i].Task
		entries = append(entries, TaskEntry{
			TaskID:          task.ID,
			Title:           task.Title,
			EstimateMinutes: task.EstimateMinutes,
			Score:           scored[i].Score,
			IsMust:          task.IsMust,
			DueDate:         task.DueDate,
			DaysOverdue:     queue.DaysOverdue(task, today),
		})
	}
	return entries
}

func toSkipped(skipped []queue.SkippedTask) []SkippedEntry {
	entries := make([]SkippedEntry, 0, len(skipped))
	for _, s := range skipped {
		entries = append(entries, SkippedEntry{TaskID: s.Task.ID, Reason: s.Reason})
	}
	return entries
}

func entryIDs(entries []TaskEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.TaskID)
	}
	return ids
}

func skippedIDs(entries []SkippedEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.TaskID)
	}
	return ids
}
