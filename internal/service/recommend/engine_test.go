package recommend

import (
	"reflect"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const today = domain.Date("2025-03-10")

func newTestEngine() *Engine {
	return NewEngine(nil, DefaultOptions())
}

func TestEngine_GenerateEnergyChange(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.EnergyMode
		momentum domain.Momentum
		wantMode domain.EnergyMode
		wantPrio int
		wantNone bool
	}{
		{name: "stuck in normal switches to crisis", mode: domain.EnergyNormal, momentum: domain.MomentumStuck, wantMode: domain.EnergyCrisis, wantPrio: 9},
		{name: "stuck in flow switches to crisis", mode: domain.EnergyFlow, momentum: domain.MomentumStuck, wantMode: domain.EnergyCrisis, wantPrio: 9},
		{name: "stuck already in crisis", mode: domain.EnergyCrisis, momentum: domain.MomentumStuck, wantNone: true},
		{name: "flow momentum in normal switches to flow", mode: domain.EnergyNormal, momentum: domain.MomentumFlow, wantMode: domain.EnergyFlow, wantPrio: 8},
		{name: "flow momentum already in flow", mode: domain.EnergyFlow, momentum: domain.MomentumFlow, wantNone: true},
		{name: "neutral momentum", mode: domain.EnergyNormal, momentum: domain.MomentumNeutral, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := newTestEngine().Generate(Input{
				EnergyMode:       tt.mode,
				Momentum:         tt.momentum,
				AvailableMinutes: 480,
				Today:            today,
			})

			if tt.wantNone {
				if len(recs) != 0 {
					t.Fatalf("Generate() returned %d recommendations, want 0", len(recs))
				}
				return
			}
			if len(recs) != 1 {
				t.Fatalf("Generate() returned %d recommendations, want 1", len(recs))
			}
			rec := recs[0]
			if rec.Type != domain.RecommendEnergyChange {
				t.Errorf("Type = %q, want %q", rec.Type, domain.RecommendEnergyChange)
			}
			if rec.Priority != tt.wantPrio {
				t.Errorf("Priority = %d, want %d", rec.Priority, tt.wantPrio)
			}
			action, ok := rec.Actions[0].(domain.ChangeEnergyMode)
			if !ok {
				t.Fatalf("action = %T, want ChangeEnergyMode", rec.Actions[0])
			}
			if action.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", action.Mode, tt.wantMode)
			}
		})
	}
}

func TestEngine_GenerateGroupTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Reply to Alice", EstimateMinutes: 10},
		{ID: "t2", Title: "Check Slack", EstimateMinutes: 15},
		{ID: "t3", Title: "Implement parser", EstimateMinutes: 90},
		{ID: "t4", Title: "Email vendor", EstimateMinutes: 20},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 480, Today: today})
	if len(recs) != 1 {
		t.Fatalf("Generate() returned %d recommendations, want 1", len(recs))
	}
	if recs[0].Type != domain.RecommendGroupTasks || recs[0].Priority != 8 {
		t.Errorf("got %q priority %d, want group-tasks priority 8", recs[0].Type, recs[0].Priority)
	}

	block, ok := recs[0].Actions[0].(domain.CreateBlock)
	if !ok {
		t.Fatalf("action = %T, want CreateBlock", recs[0].Actions[0])
	}
	if want := []string{"t1", "t2", "t4"}; !reflect.DeepEqual(block.TaskIDs, want) {
		t.Errorf("TaskIDs = %v, want %v", block.TaskIDs, want)
	}
	if block.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want 45", block.DurationMinutes)
	}
	if block.ContextType != domain.ContextCommunication {
		t.Errorf("ContextType = %q, want %q", block.ContextType, domain.ContextCommunication)
	}
}

func TestEngine_GenerateGroupTasksExplicitContext(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Quarterly numbers", EstimateMinutes: 30, ContextType: domain.ContextAdmin},
		{ID: "t2", Title: "Vendor contract", EstimateMinutes: 30, ContextType: domain.ContextAdmin},
		{ID: "t3", Title: "Reply to Bob", EstimateMinutes: 10},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 480, Today: today})
	if len(recs) != 1 {
		t.Fatalf("Generate() returned %d recommendations, want 1", len(recs))
	}
	block := recs[0].Actions[0].(domain.CreateBlock)
	if block.ContextType != domain.ContextAdmin {
		t.Errorf("ContextType = %q, want %q", block.ContextType, domain.ContextAdmin)
	}
}

func TestEngine_GenerateNoGroup(t *testing.T) {
	tests := []struct {
		name  string
		tasks []domain.Task
	}{
		{
			name: "fewer than three tasks",
			tasks: []domain.Task{
				{ID: "t1", Title: "Reply to Alice", EstimateMinutes: 10},
				{ID: "t2", Title: "Check Slack", EstimateMinutes: 10},
			},
		},
		{
			name: "only unknown context",
			tasks: []domain.Task{
				{ID: "t1", Title: "Lunch", EstimateMinutes: 30},
				{ID: "t2", Title: "Walk", EstimateMinutes: 30},
				{ID: "t3", Title: "Groceries", EstimateMinutes: 30},
			},
		},
		{
			name: "no bucket with two members",
			tasks: []domain.Task{
				{ID: "t1", Title: "Reply to Alice", EstimateMinutes: 10},
				{ID: "t2", Title: "Implement parser", EstimateMinutes: 10},
				{ID: "t3", Title: "Pay invoice", EstimateMinutes: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := newTestEngine().Generate(Input{Tasks: tt.tasks, AvailableMinutes: 480, Today: today})
			for _, rec := range recs {
				if rec.Type == domain.RecommendGroupTasks {
					t.Errorf("unexpected group-tasks recommendation: %+v", rec)
				}
			}
		})
	}
}

func TestEngine_GenerateSimplify(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Task one", EstimateMinutes: 30, Priority: 1, IsMust: true},
		{ID: "t2", Title: "Task two", EstimateMinutes: 60, Priority: 2},
		{ID: "t3", Title: "Task three", EstimateMinutes: 60, Priority: 4},
		{ID: "t4", Title: "Task four", EstimateMinutes: 60},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 100, Today: today})
	if len(recs) != 2 {
		t.Fatalf("Generate() returned %d recommendations, want 2", len(recs))
	}
	if recs[0].Type != domain.RecommendMoveTask {
		t.Errorf("recs[0].Type = %q, want %q", recs[0].Type, domain.RecommendMoveTask)
	}
	if recs[1].Type != domain.RecommendSimplify || recs[1].Priority != 7 {
		t.Fatalf("recs[1] = %q priority %d, want simplify priority 7", recs[1].Type, recs[1].Priority)
	}

	postpone, ok := recs[1].Actions[0].(domain.SuggestPostpone)
	if !ok {
		t.Fatalf("action = %T, want SuggestPostpone", recs[1].Actions[0])
	}
	if want := []string{"t3", "t4"}; !reflect.DeepEqual(postpone.TaskIDs, want) {
		t.Errorf("TaskIDs = %v, want %v", postpone.TaskIDs, want)
	}
	if postpone.TargetDate != "2025-03-11" {
		t.Errorf("TargetDate = %q, want 2025-03-11", postpone.TargetDate)
	}
}

func TestEngine_GenerateSimplifyThreshold(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Task one", EstimateMinutes: 75},
		{ID: "t2", Title: "Task two", EstimateMinutes: 75},
	}

	tests := []struct {
		name      string
		available int
		want      bool
	}{
		{name: "exactly at factor", available: 100, want: false},
		{name: "above factor", available: 99, want: true},
		{name: "no available time", available: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: tt.available, Today: today})
			got := false
			for _, rec := range recs {
				if rec.Type == domain.RecommendSimplify {
					got = true
				}
			}
			if got != tt.want {
				t.Errorf("simplify fired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_GenerateCapAndOrder(t *testing.T) {
	tasks := []domain.Task{
		{ID: "m1", Title: "Task one", EstimateMinutes: 30, IsMust: true},
		{ID: "m2", Title: "Task two", EstimateMinutes: 30, IsImportant: true},
		{ID: "m3", Title: "Task three", EstimateMinutes: 30, IsMust: true},
		{ID: "m4", Title: "Task four", EstimateMinutes: 30, IsMust: true},
		{ID: "x", Title: "Task five", EstimateMinutes: 30},
	}

	recs := newTestEngine().Generate(Input{
		Tasks:            tasks,
		EnergyMode:       domain.EnergyNormal,
		Momentum:         domain.MomentumStuck,
		AvailableMinutes: 60,
		Today:            today,
	})

	if len(recs) != 3 {
		t.Fatalf("Generate() returned %d recommendations, want 3", len(recs))
	}
	wantIDs := []string{"m1", "m2", "m3"}
	for i, rec := range recs {
		if rec.Priority != 10 {
			t.Errorf("recs[%d].Priority = %d, want 10", i, rec.Priority)
		}
		slot, ok := rec.Actions[0].(domain.FindSlot)
		if !ok {
			t.Fatalf("recs[%d] action = %T, want FindSlot", i, rec.Actions[0])
		}
		if slot.TaskID != wantIDs[i] {
			t.Errorf("recs[%d] task = %q, want %q", i, slot.TaskID, wantIDs[i])
		}
	}
}

func TestEngine_GenerateSortedByPriority(t *testing.T) {
	engine := NewEngine(nil, Options{MaxRecommendations: 10})
	tasks := []domain.Task{
		{ID: "t1", Title: "Reply to Alice", EstimateMinutes: 100},
		{ID: "t2", Title: "Check Slack", EstimateMinutes: 100},
		{ID: "t3", Title: "Email vendor", EstimateMinutes: 100, IsMust: true},
	}

	recs := engine.Generate(Input{
		Tasks:            tasks,
		EnergyMode:       domain.EnergyNormal,
		Momentum:         domain.MomentumStuck,
		AvailableMinutes: 60,
		Today:            today,
	})

	wantTypes := []domain.RecommendationType{
		domain.RecommendMoveTask,
		domain.RecommendEnergyChange,
		domain.RecommendGroupTasks,
		domain.RecommendSimplify,
	}
	if len(recs) != len(wantTypes) {
		t.Fatalf("Generate() returned %d recommendations, want %d", len(recs), len(wantTypes))
	}
	for i, want := range wantTypes {
		if recs[i].Type != want {
			t.Errorf("recs[%d].Type = %q, want %q", i, recs[i].Type, want)
		}
		if i > 0 && recs[i].Priority > recs[i-1].Priority {
			t.Errorf("recs[%d] priority %d above recs[%d] priority %d", i, recs[i].Priority, i-1, recs[i-1].Priority)
		}
	}
}

func TestEngine_GenerateIgnoresCompleted(t *testing.T) {
	tasks := []domain.Task{
		{ID: "done", Title: "Shipped", EstimateMinutes: 500, IsMust: true, Completed: true},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 60, Today: today})
	if len(recs) != 0 {
		t.Errorf("Generate() returned %d recommendations, want 0", len(recs))
	}
}

func TestEngine_GenerateIgnoresInvalidTasks(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
	}{
		{name: "negative estimate", task: domain.Task{ID: "bad", Title: "Broken", EstimateMinutes: -30, IsMust: true}},
		{name: "zero estimate", task: domain.Task{ID: "bad", Title: "Broken", EstimateMinutes: 0, IsImportant: true}},
		{name: "missing id", task: domain.Task{Title: "Anonymous", EstimateMinutes: 30, IsMust: true}},
		{name: "cognitive load out of range", task: domain.Task{ID: "bad", Title: "Broken", EstimateMinutes: 30, CognitiveLoad: 7, IsMust: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := newTestEngine().Generate(Input{Tasks: []domain.Task{tt.task}, AvailableMinutes: 480, Today: today})
			if len(recs) != 0 {
				t.Errorf("Generate() = %+v, want no recommendations", recs)
			}
		})
	}
}

func TestEngine_GenerateSimplifySkipsFutureTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "today-a", Title: "Task one", EstimateMinutes: 120, Priority: 1},
		{ID: "today-b", Title: "Task two", EstimateMinutes: 120, Priority: 2},
		{ID: "next-week", Title: "Task three", EstimateMinutes: 60, Priority: 4, DueDate: "2025-03-17"},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 60, Today: today})
	if len(recs) != 1 || recs[0].Type != domain.RecommendSimplify {
		t.Fatalf("Generate() = %+v, want one simplify", recs)
	}

	postpone, ok := recs[0].Actions[0].(domain.SuggestPostpone)
	if !ok {
		t.Fatalf("action = %T, want SuggestPostpone", recs[0].Actions[0])
	}
	if want := []string{"today-b", "today-a"}; !reflect.DeepEqual(postpone.TaskIDs, want) {
		t.Errorf("TaskIDs = %v, want %v", postpone.TaskIDs, want)
	}
	if recs[0].Reason != "You need 240 min but have 60 min" {
		t.Errorf("Reason = %q, want future task left out of the total", recs[0].Reason)
	}
}

func TestEngine_GenerateSimplifyFutureLoadDoesNotTrigger(t *testing.T) {
	tasks := []domain.Task{
		{ID: "today", Title: "Task one", EstimateMinutes: 60},
		{ID: "next-week", Title: "Task two", EstimateMinutes: 300, DueDate: "2025-03-17"},
	}

	recs := newTestEngine().Generate(Input{Tasks: tasks, AvailableMinutes: 60, Today: today})
	for _, rec := range recs {
		if rec.Type == domain.RecommendSimplify {
			t.Errorf("simplify fired for future load: %+v", rec)
		}
	}
}

func TestEngine_GenerateDeterministic(t *testing.T) {
	in := Input{
		Tasks: []domain.Task{
			{ID: "t1", Title: "Reply to Alice", EstimateMinutes: 100},
			{ID: "t2", Title: "Check Slack", EstimateMinutes: 100},
			{ID: "t3", Title: "Email vendor", EstimateMinutes: 100, IsMust: true},
		},
		Momentum:         domain.MomentumFlow,
		EnergyMode:       domain.EnergyNormal,
		AvailableMinutes: 60,
		Today:            today,
	}

	first := newTestEngine().Generate(in)
	second := newTestEngine().Generate(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Generate() is not deterministic:\n%+v\n%+v", first, second)
	}

	seen := make(map[string]bool)
	for _, rec := range first {
		if rec.ID == "" {
			t.Error("recommendation without id")
		}
		if seen[rec.ID] {
			t.Errorf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestEngine_GenerateScheduleSlot(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 20, 0, 0, time.UTC)
	minutes := 40
	tasks := []domain.Task{
		{ID: "long", Title: "Task one", EstimateMinutes: 60},
		{ID: "quick", Title: "Task two", EstimateMinutes: 15},
		{ID: "medium", Title: "Task three", EstimateMinutes: 30},
	}

	recs := newTestEngine().Generate(Input{
		Tasks:                 tasks,
		AvailableMinutes:      480,
		Today:                 today,
		Now:                   now,
		MinutesUntilNextEvent: &minutes,
	})

	if len(recs) != 1 {
		t.Fatalf("Generate() returned %d recommendations, want 1", len(recs))
	}
	if recs[0].Type != domain.RecommendScheduleSlot || recs[0].Priority != 6 {
		t.Fatalf("got %q priority %d, want schedule-slot priority 6", recs[0].Type, recs[0].Priority)
	}
	slot, ok := recs[0].Actions[0].(domain.ScheduleSlot)
	if !ok {
		t.Fatalf("action = %T, want ScheduleSlot", recs[0].Actions[0])
	}
	if slot.TaskID != "quick" {
		t.Errorf("TaskID = %q, want quick", slot.TaskID)
	}
	if !slot.Start.Equal(now) || !slot.End.Equal(now.Add(15*time.Minute)) {
		t.Errorf("slot = %v-%v, want %v-%v", slot.Start, slot.End, now, now.Add(15*time.Minute))
	}
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.RecommendConfig
		want Options
	}{
		{name: "nil config", cfg: nil, want: DefaultOptions()},
		{
			name: "overrides",
			cfg:  &config.RecommendConfig{MaxRecommendations: 5, PostponeCount: 1, OverloadFactor: 2},
			want: Options{MaxRecommendations: 5, PostponeCount: 1, OverloadFactor: 2},
		},
		{
			name: "non-positive values keep defaults",
			cfg:  &config.RecommendConfig{MaxRecommendations: 0, PostponeCount: -1, OverloadFactor: 0},
			want: DefaultOptions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OptionsFromConfig(tt.cfg); got != tt.want {
				t.Errorf("OptionsFromConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
