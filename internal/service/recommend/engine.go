package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
)

const (
	priorityMoveTask      = 10
	priorityEnterCrisis   = 9
	priorityEnterFlow     = 8
	priorityGroupTasks    = 8
	prioritySimplify      = 7
	priorityScheduleSlot  = 6
	minTasksForGrouping   = 3
	minGroupSize          = 2
	defaultMax            = 3
	defaultPostponeCount  = 2
	defaultOverloadFactor = 1.5
)

var recommendationNamespace = uuid.MustParse("8f8e2f0a-3b7c-4d51-9c39-1f4a8e6d2b17")

type Options struct {
	MaxRecommendations int
	PostponeCount      int
	// OverloadFactor is the ratio of required to available minutes above which
	// the plan is simplified.
	OverloadFactor float64
}

func DefaultOptions() Options {
	return Options{
		MaxRecommendations: defaultMax,
		PostponeCount:      defaultPostponeCount,
		OverloadFactor:     defaultOverloadFactor,
	}
}

func OptionsFromConfig(cfg *config.RecommendConfig) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.MaxRecommendations > 0 {
		opts.MaxRecommendations = cfg.MaxRecommendations
	}
	if cfg.PostponeCount > 0 {
		opts.PostponeCount = cfg.PostponeCount
	}
	if cfg.OverloadFactor > 0 {
		opts.OverloadFactor = cfg.OverloadFactor
	}
	return opts
}

type Input struct {
	Tasks            []domain.Task
	EnergyMode       domain.EnergyMode
	Momentum         domain.Momentum
	AvailableMinutes int
	Today            domain.Date
	Now              time.Time
	// MinutesUntilNextEvent enables the schedule-slot rule when set.
	MinutesUntilNextEvent *int
}

// Engine turns the current plan into a short list of explainable suggestions.
// It keeps no state between calls.
type Engine struct {
	classifier daycontext.Classifier
	opts       Options
}

func NewEngine(classifier daycontext.Classifier, opts Options) *Engine {
	if classifier == nil {
		classifier = daycontext.NewKeywordClassifier()
	}
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = defaultMax
	}
	if opts.PostponeCount <= 0 {
		opts.PostponeCount = defaultPostponeCount
	}
	if opts.OverloadFactor <= 0 {
		opts.OverloadFactor = defaultOverloadFactor
	}
	return &Engine{classifier: classifier, opts: opts}
}

// Generate evaluates every rule, orders the results by priority (stable) and
// keeps the top MaxRecommendations. Completed tasks and tasks failing
// validation are ignored.
func (e *Engine) Generate(in Input) []domain.Recommendation {
	tasks := make([]domain.Task, 0, len(in.Tasks))
	for i := range in.Tasks {
		if in.Tasks[i].Completed || domain.ValidateTask(&in.Tasks[i]) != nil {
			continue
		}
		tasks = append(tasks, in.Tasks[i])
	}

	recs := make([]domain.Recommendation, 0)

	if rec, ok := e.energyChange(in.EnergyMode, in.Momentum); ok {
		recs = append(recs, rec)
	}
	if rec, ok := e.groupTasks(tasks); ok {
		recs = append(recs, rec)
	}
	if rec, ok := e.simplify(tasks, in.AvailableMinutes, in.Today); ok {
		recs = append(recs, rec)
	}
	recs = append(recs, e.moveTasks(tasks)...)
	if rec, ok := e.scheduleSlot(tasks, in.Now, in.MinutesUntilNextEvent); ok {
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	if len(recs) > e.opts.MaxRecommendations {
		recs = recs[:e.opts.MaxRecommendations]
	}
	return recs
}

func (e *Engine) energyChange(mode domain.EnergyMode, momentum domain.Momentum) (domain.Recommendation, bool) {
	switch {
	case momentum == domain.MomentumStuck && mode != domain.EnergyCrisis:
		return domain.Recommendation{
			ID:       recommendationID(domain.RecommendEnergyChange, string(domain.EnergyCrisis)),
			Type:     domain.RecommendEnergyChange,
			Title:    "Switch to crisis mode",
			Reason:   "Progress has stalled; small steps will help you get moving again",
			Actions:  []domain.Action{domain.ChangeEnergyMode{Mode: domain.EnergyCrisis}},
			Priority: priorityEnterCrisis,
		}, true
	case momentum == domain.MomentumFlow && mode != domain.EnergyFlow:
		return domain.Recommendation{
			ID:       recommendationID(domain.RecommendEnergyChange, string(domain.EnergyFlow)),
			Type:     domain.RecommendEnergyChange,
			Title:    "Switch to flow mode",
			Reason:   "You are on a roll; use the momentum for bigger tasks",
			Actions:  []domain.Action{domain.ChangeEnergyMode{Mode: domain.EnergyFlow}},
			Priority: priorityEnterFlow,
		}, true
	}
	return domain.Recommendation{}, false
}

func (e *Engine) groupTasks(tasks []domain.Task) (domain.Recommendation, bool) {
	if len(tasks) < minTasksForGrouping {
		return domain.Recommendation{}, false
	}

	groups := make(map[domain.ContextType][]domain.Task)
	order := make([]domain.ContextType, 0)
	for i := range tasks {
		ctx := daycontext.ContextOf(&tasks[i], e.classifier)
		if _, seen := groups[ctx]; !seen {
			order = append(order, ctx)
		}
		groups[ctx] = append(groups[ctx], tasks[i])
	}

	var best []domain.Task
	bestCtx := domain.ContextUnknown
	for _, ctx := range order {
		group := groups[ctx]
		if !ctx.IsKnown() || len(group) < minGroupSize {
			continue
		}
		if len(group) > len(best) {
			best = group
			bestCtx = ctx
		}
	}
	if len(best) == 0 {
		return domain.Recommendation{}, false
	}

	ids := make([]string, 0, len(best))
	total := 0
	for _, t := range best {
		ids = append(ids, t.ID)
		total += max(t.EstimateMinutes, 0)
	}

	return domain.Recommendation{
		ID:     recommendationID(domain.RecommendGroupTasks, string(bestCtx)+":"+strings.Join(ids, ",")),
		Type:   domain.RecommendGroupTasks,
		Title:  fmt.Sprintf("Batch %s work (%d tasks)", bestCtx, len(best)),
		Reason: "Grouping similar tasks reduces context switching",
		Actions: []domain.Action{domain.CreateBlock{
			TaskIDs:         ids,
			DurationMinutes: total,
			ContextType:     bestCtx,
		}},
		Priority: priorityGroupTasks,
	}, true
}

// simplify only weighs tasks that belong to today; future-dated tasks neither
// add to the load nor get postponed.
func (e *Engine) simplify(tasks []domain.Task, availableMinutes int, today domain.Date) (domain.Recommendation, bool) {
	todays := make([]domain.Task, 0, len(tasks))
	total := 0
	for i := range tasks {
		if tasks[i].IsFuture(today) {
			continue
		}
		todays = append(todays, tasks[i])
		total += max(tasks[i].EstimateMinutes, 0)
	}
	if total == 0 || float64(total) <= float64(max(availableMinutes, 0))*e.opts.OverloadFactor {
		return domain.Recommendation{}, false
	}

	ids := leastImportant(todays, e.opts.PostponeCount)
	if len(ids) == 0 {
		return domain.Recommendation{}, false
	}

	return domain.Recommendation{
		ID:     recommendationID(domain.RecommendSimplify, strings.Join(ids, ",")),
		Type:   domain.RecommendSimplify,
		Title:  "Simplify today's plan",
		Reason: fmt.Sprintf("You need %d min but have %d min", total, max(availableMinutes, 0)),
		Actions: []domain.Action{domain.SuggestPostpone{
			TaskIDs:    ids,
			TargetDate: today.AddDays(1),
		}},
		Priority: prioritySimplify,
	}, true
}

// leastImportant returns up to n unflagged task ids, least urgent priority first.
func leastImportant(tasks []domain.Task, n int) []string {
	candidates := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsFlagged() {
			candidates = append(candidates, t)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return effectivePriority(candidates[i]) > effectivePriority(candidates[j])
	})

	ids := make([]string, 0, n)
	for i := 0; i < len(candidates) && i < n; i++ {
		ids = append(ids, candidates[i].ID)
	}
	return ids
}

func effectivePriority(t domain.Task) int {
	if t.Priority <= 0 {
		return 4
	}
	return t.Priority
}

func (e *Engine) moveTasks(tasks []domain.Task) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0)
	for _, t := range tasks {
		if !t.IsFlagged() {
			continue
		}
		recs = append(recs, domain.Recommendation{
			ID:       recommendationID(domain.RecommendMoveTask, t.ID),
			Type:     domain.RecommendMoveTask,
			Title:    "Schedule: " + taskLabel(t),
			Reason:   "Flagged as urgent; let's find it a concrete slot",
			Actions:  []domain.Action{domain.FindSlot{TaskID: t.ID, DurationMinutes: t.EstimateMinutes}},
			Priority: priorityMoveTask,
		})
	}
	return recs
}

func (e *Engine) scheduleSlot(tasks []domain.Task, now time.Time, minutesUntilNext *int) (domain.Recommendation, bool) {
	if minutesUntilNext == nil || *minutesUntilNext <= 0 || now.IsZero() {
		return domain.Recommendation{}, false
	}

	pick, ok := RecommendTaskByAvailableTime(tasks, *minutesUntilNext)
	if !ok {
		return domain.Recommendation{}, false
	}

	var task domain.Task
	for _, t := range tasks {
		if t.ID == pick.TaskID {
			task = t
			break
		}
	}

	start := now
	end := start.Add(time.Duration(task.EstimateMinutes) * time.Minute)

	return domain.Recommendation{
		ID:       recommendationID(domain.RecommendScheduleSlot, task.ID+"@"+start.UTC().Format(time.RFC3339)),
		Type:     domain.RecommendScheduleSlot,
		Title:    "Fit in before your next meeting: " + taskLabel(task),
		Reason:   pick.Reason,
		Actions:  []domain.Action{domain.ScheduleSlot{TaskID: task.ID, Start: start, End: end}},
		Priority: priorityScheduleSlot,
	}, true
}

func taskLabel(t domain.Task) string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}

// recommendationID is stable for the same type and subject.
func recommendationID(kind domain.RecommendationType, subject string) string {
	return uuid.NewSHA1(recommendationNamespace, []byte(string(kind)+":"+subject)).String()
}
