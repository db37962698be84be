package queue

import (
	"math"
	"sort"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
)

type SkippedTask struct {
	Task   domain.Task `json:"task"`
	Reason string      `json:"reason"`
}

// Result partitions the non-completed input. Every valid task lands in exactly
// one of Queue, Overflow or Future; invalid ones land in Skipped.
type Result struct {
	Queue    []scoring.ScoredTask `json:"queue"`
	Overflow []scoring.ScoredTask `json:"overflow"`
	Future   []scoring.ScoredTask `json:"future"`
	// Later is Overflow followed by Future.
	Later   []scoring.ScoredTask `json:"later"`
	Skipped []SkippedTask        `json:"skipped"`

	CapacityMinutes     int  `json:"capacity_minutes"`
	UsedMinutes         int  `json:"used_minutes"`
	UsagePercentage     int  `json:"usage_percentage"`
	OverCapacity        bool `json:"over_capacity"`
	OverCapacityMinutes int  `json:"over_capacity_minutes"`
}

// Split cuts the committed queue into the first n tasks to work on now and the
// rest of today.
func (r *Result) Split(n int) (now, remainingToday []scoring.ScoredTask) {
	n = min(max(n, 0), len(r.Queue))
	return r.Queue[:n], r.Queue[n:]
}

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

type futureItem struct {
	scored scoring.ScoredTask
	due    domain.Date
	order  int
}

// Build commits overdue and MUST tasks unconditionally, then fills the
// remaining capacity with today-eligible tasks in score order, stopping at the
// first task that does not fit. Tasks without a due date are today-eligible.
func (b *Builder) Build(scored []scoring.ScoredTask, capacityMinutes int, today domain.Date) *Result {
	capacity := max(capacityMinutes, 0)

	result := &Result{
		Queue:           make([]scoring.ScoredTask, 0),
		Overflow:        make([]scoring.ScoredTask, 0),
		Future:          make([]scoring.ScoredTask, 0),
		Skipped:         make([]SkippedTask, 0),
		CapacityMinutes: capacity,
	}

	var overdue, must []scoring.ScoredTask
	var future []futureItem
	candidates := NewPriorityQueue(len(scored))

	for i, st := range scored {
		task := st.Task
		if task.Completed {
			continue
		}

		if err := domain.ValidateTask(&task); err != nil {
			result.Skipped = append(result.Skipped, SkippedTask{Task: task, Reason: err.Error()})
			continue
		}

		switch {
		case task.IsOverdue(today):
			overdue = append(overdue, st)
		case task.IsMust:
			must = append(must, st)
		case task.IsFuture(today):
			future = append(future, futureItem{scored: st, due: task.DueDate, order: i})
		default:
			candidates.PushItem(NewPriorityItem(st, i))
		}
	}

	sortByScore(overdue)
	sortByScore(must)

	used := 0
	for _, st := range append(overdue, must...) {
		result.Queue = append(result.Queue, st)
		used += st.Task.EstimateMinutes
	}

	for candidates.Len() > 0 {
		item := candidates.PopItem()
		if used+item.Scored.Task.EstimateMinutes > capacity {
			result.Overflow = append(result.Overflow, item.Scored)
			break
		}
		result.Queue = append(result.Queue, item.Scored)
		used += item.Scored.Task.EstimateMinutes
	}
	for _, item := range candidates.Drain() {
		result.Overflow = append(result.Overflow, item.Scored)
	}

	sort.SliceStable(future, func(i, j int) bool {
		a, b := future[i], future[j]
		if days := a.due.DaysUntil(b.due); days != 0 {
			return days > 0
		}
		if a.scored.Score != b.scored.Score {
			return a.scored.Score > b.scored.Score
		}
		return a.order < b.order
	})
	for _, f := range future {
		result.Future = append(result.Future, f.scored)
	}

	result.Later = make([]scoring.ScoredTask, 0, len(result.Overflow)+len(result.Future))
	result.Later = append(result.Later, result.Overflow...)
	result.Later = append(result.Later, result.Future...)

	result.UsedMinutes = used
	if capacity > 0 {
		result.UsagePercentage = int(math.Round(float64(used) * 100 / float64(capacity)))
	}
	if used > capacity {
		result.OverCapacity = true
		result.OverCapacityMinutes = used - capacity
	}

	return result
}

func sortByScore(tasks []scoring.ScoredTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Score > tasks[j].Score
	})
}
