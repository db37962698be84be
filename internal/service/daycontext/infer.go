package daycontext

import (
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// Activity summarises recent user behaviour.
type Activity struct {
	RecentCompletions      int `json:"recent_completions" yaml:"recent_completions"`
	RecentInterruptions    int `json:"recent_interruptions" yaml:"recent_interruptions"`
	MinutesSinceLastAction int `json:"minutes_since_last_action" yaml:"minutes_since_last_action"`
}

type Input struct {
	Date             domain.Date
	Now              time.Time
	EnergyMode       domain.EnergyMode
	WorkingHours     domain.WorkingHours
	Timeline         []domain.TimelineEvent
	Tasks            []domain.Task
	AvailableMinutes int
	Activity         Activity
	ActiveTaskID     string
	MinWindowMinutes int
}

type Inferrer struct {
	classifier Classifier
}

func NewInferrer(classifier Classifier) *Inferrer {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &Inferrer{classifier: classifier}
}

func (i *Inferrer) Classifier() Classifier {
	return i.classifier
}

// Infer assembles the day snapshot. Completed and future-dated tasks do not
// count towards load.
func (i *Inferrer) Infer(in Input) domain.DayContext {
	mode := in.EnergyMode
	if !mode.IsValid() {
		mode = domain.EnergyNormal
	}

	minWindow := in.MinWindowMinutes
	if minWindow <= 0 {
		minWindow = DefaultMinWindowMinutes
	}

	totalMinutes, urgent := 0, 0
	for idx := range in.Tasks {
		task := &in.Tasks[idx]
		if task.Completed || task.IsFuture(in.Date) {
			continue
		}
		totalMinutes += max(task.EstimateMinutes, 0)
		if isUrgent(task, in.Date) {
			urgent++
		}
	}

	ctx := domain.DayContext{
		Date:             in.Date,
		Now:              in.Now,
		EnergyMode:       mode,
		Momentum:         InferMomentum(in.Activity.RecentCompletions, in.Activity.RecentInterruptions, in.Activity.MinutesSinceLastAction),
		ActiveTaskID:     in.ActiveTaskID,
		AvailableWindows: FindAvailableWindows(in.Now, in.WorkingHours, in.Timeline, minWindow),
		OverloadScore:    CalculateOverloadScore(totalMinutes, in.AvailableMinutes, urgent),
	}

	if next, ok := nextFixedEvent(in.Timeline, in.Now); ok {
		ctx.NextFixedEvent = &domain.NextFixedEvent{
			ID:    next.ID,
			Title: next.Title,
			Start: next.Start,
			End:   next.End,
		}
	}

	if block, ok := activeBlock(in.Timeline, in.Now); ok {
		ctx.ActiveBlockID = block.ID
		if block.ContextType.IsKnown() {
			ctx.ActiveContext = block.ContextType
		}
	}

	if ctx.ActiveContext == "" && in.ActiveTaskID != "" {
		for idx := range in.Tasks {
			if in.Tasks[idx].ID == in.ActiveTaskID {
				ctx.ActiveContext = ContextOf(&in.Tasks[idx], i.classifier)
				break
			}
		}
	}

	return ctx
}

// isUrgent: MUST, overdue or due today.
func isUrgent(task *domain.Task, today domain.Date) bool {
	return task.IsMust || task.IsOverdue(today) || task.IsDueOn(today)
}

func nextFixedEvent(timeline []domain.TimelineEvent, now time.Time) (domain.TimelineEvent, bool) {
	var next domain.TimelineEvent
	found := false
	for _, e := range timeline {
		if !e.IsFixed() || !e.Valid() || !e.Start.After(now) {
			continue
		}
		if !found || e.Start.Before(next.Start) {
			next = e
			found = true
		}
	}
	return next, found
}

func activeBlock(timeline []domain.TimelineEvent, now time.Time) (domain.TimelineEvent, bool) {
	for _, e := range timeline {
		if e.Kind == domain.EventTaskBlock && e.Valid() && !now.Before(e.Start) && now.Before(e.End) {
			return e, true
		}
	}
	return domain.TimelineEvent{}, false
}
