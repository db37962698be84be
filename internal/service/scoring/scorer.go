package scoring

import (
	"math"
	"sort"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const (
	neutralLevel   = 3
	minLevel       = 1
	maxLevel       = 5
	lowestPriority = 4
)

// Context is the user state a score depends on.
type Context struct {
	Energy int
	Focus  int
	Today  domain.Date
}

func NewContext(settings domain.DaySettings, today domain.Date) Context {
	return Context{
		Energy: settings.Energy,
		Focus:  settings.Focus,
		Today:  today,
	}
}

// Breakdown explains how a score was assembled.
type Breakdown struct {
	Baseline        float64 `json:"baseline"`
	Fit             float64 `json:"fit"`
	Impact          float64 `json:"impact"`
	Deadline        float64 `json:"deadline"`
	PostponePenalty float64 `json:"postpone_penalty"`
	Final           float64 `json:"final"`
}

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score is deterministic and never negative.
func (s *Scorer) Score(task *domain.Task, ctx Context) float64 {
	return s.Evaluate(task, ctx).Final
}

func (s *Scorer) Evaluate(task *domain.Task, ctx Context) Breakdown {
	b := Breakdown{
		Baseline:        s.weights.Baseline,
		Fit:             s.fitBonus(task.CognitiveLoad, ctx),
		Impact:          s.impactBonus(task),
		Deadline:        s.deadlineBonus(task, ctx.Today),
		PostponePenalty: s.weights.PostponePenalty * float64(max(task.PostponeCount, 0)),
	}

	b.Final = math.Max(0, b.Baseline+b.Fit+b.Impact+b.Deadline-b.PostponePenalty)
	return b
}

func (s *Scorer) fitBonus(load int, ctx Context) float64 {
	level := (float64(levelOrNeutral(ctx.Energy)) + float64(levelOrNeutral(ctx.Focus))) / 2
	distance := math.Abs(float64(levelOrNeutral(load)) - level)

	// widest possible gap between two values on the 1-5 scale
	span := float64(maxLevel - minLevel)

	return math.Max(0, s.weights.FitMax*(1-distance/span))
}

func (s *Scorer) impactBonus(task *domain.Task) float64 {
	switch {
	case task.IsMust:
		return s.weights.MustBonus
	case task.IsImportant:
		return s.weights.ImportantBonus
	}

	priority := task.Priority
	if priority <= 0 {
		priority = lowestPriority
	}
	return s.weights.PriorityBonus / float64(priority)
}

func (s *Scorer) deadlineBonus(task *domain.Task, today domain.Date) float64 {
	due, ok := task.Due()
	if !ok || !today.Valid() {
		return 0
	}

	days := today.DaysUntil(due)
	switch {
	case days < 0:
		return s.weights.OverdueBonus
	case days == 0:
		return s.weights.DueTodayBonus
	case days == 1:
		return s.weights.DueTomorrowBonus
	case days <= DueSoonDays:
		return s.weights.DueSoonBonus
	default:
		return s.weights.DueLaterBonus
	}
}

func levelOrNeutral(v int) int {
	if v < minLevel || v > maxLevel {
		return neutralLevel
	}
	return v
}

// ScoredTask pairs a task with its score.
type ScoredTask struct {
	Task  domain.Task `json:"task"`
	Score float64     `json:"score"`
}

// Rank scores every non-completed task and orders them by score descending.
// Ties keep input order.
func (s *Scorer) Rank(tasks []domain.Task, ctx Context) []ScoredTask {
	ranked := make([]ScoredTask, 0, len(tasks))
	for i := range tasks {
		if tasks[i].Completed {
			continue
		}
		ranked = append(ranked, ScoredTask{
			Task:  tasks[i],
			Score: s.Score(&tasks[i], ctx),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
