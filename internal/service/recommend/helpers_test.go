package recommend

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

func window(startHour, startMinute, endHour, endMinute int) domain.TimeWindow {
	return domain.NewTimeWindow(
		time.Date(2025, 3, 10, startHour, startMinute, 0, 0, time.UTC),
		time.Date(2025, 3, 10, endHour, endMinute, 0, 0, time.UTC),
	)
}

func TestFindMeetingSlots(t *testing.T) {
	windows := []domain.TimeWindow{
		window(9, 0, 10, 0),
		window(11, 0, 12, 0),
		window(13, 0, 13, 20),
		window(14, 0, 16, 0),
		window(16, 0, 17, 0),
	}

	slots := FindMeetingSlots(windows, 30, DefaultPreferredHours(), 3)
	if len(slots) != 2 {
		t.Fatalf("FindMeetingSlots() returned %d slots, want 2", len(slots))
	}

	if slots[0].Start.Hour() != 14 || slots[0].Score != 90 {
		t.Errorf("slots[0] = %v score %v, want 14:00 score 90", slots[0].Start, slots[0].Score)
	}
	if slots[1].Start.Hour() != 11 || slots[1].Score != 80 {
		t.Errorf("slots[1] = %v score %v, want 11:00 score 80", slots[1].Start, slots[1].Score)
	}
	if got := slots[0].End.Sub(slots[0].Start); got != 30*time.Minute {
		t.Errorf("slot length = %v, want 30m", got)
	}
}

func TestFindMeetingSlotsLimits(t *testing.T) {
	windows := []domain.TimeWindow{
		window(10, 0, 11, 0),
		window(12, 0, 13, 0),
		window(13, 0, 14, 0),
		window(15, 0, 16, 0),
	}

	if got := FindMeetingSlots(windows, 30, DefaultPreferredHours(), 1); len(got) != 1 || got[0].Start.Hour() != 13 {
		t.Errorf("count 1 = %+v, want single 13:00 slot", got)
	}
	if got := FindMeetingSlots(windows, 30, DefaultPreferredHours(), 0); len(got) != 3 {
		t.Errorf("count 0 returned %d slots, want default 3", len(got))
	}
	if got := FindMeetingSlots(windows, 0, DefaultPreferredHours(), 3); len(got) != 0 {
		t.Errorf("zero duration returned %d slots, want 0", len(got))
	}
	if got := FindMeetingSlots(windows, 90, DefaultPreferredHours(), 3); len(got) != 0 {
		t.Errorf("oversized meeting returned %d slots, want 0", len(got))
	}
}

func TestShouldSuggestBreak(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		mode    domain.EnergyMode
		want    bool
	}{
		{name: "crisis below threshold", minutes: 44, mode: domain.EnergyCrisis, want: false},
		{name: "crisis at threshold", minutes: 45, mode: domain.EnergyCrisis, want: true},
		{name: "normal below threshold", minutes: 89, mode: domain.EnergyNormal, want: false},
		{name: "normal at threshold", minutes: 90, mode: domain.EnergyNormal, want: true},
		{name: "flow below threshold", minutes: 119, mode: domain.EnergyFlow, want: false},
		{name: "flow at threshold", minutes: 120, mode: domain.EnergyFlow, want: true},
		{name: "unknown mode uses normal", minutes: 90, mode: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSuggestBreak(tt.minutes, tt.mode); got != tt.want {
				t.Errorf("ShouldSuggestBreak(%d, %q) = %v, want %v", tt.minutes, tt.mode, got, tt.want)
			}
		})
	}
}

func TestRecommendTaskByAvailableTime(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []domain.Task
		minutes int
		wantID  string
		wantOK  bool
	}{
		{
			name: "short window prefers quick task",
			tasks: []domain.Task{
				{ID: "medium", EstimateMinutes: 30},
				{ID: "quick", EstimateMinutes: 15},
			},
			minutes: 40,
			wantID:  "quick",
			wantOK:  true,
		},
		{
			name: "short window without quick task uses closest fit",
			tasks: []domain.Task{
				{ID: "a", EstimateMinutes: 25},
				{ID: "b", EstimateMinutes: 30},
			},
			minutes: 40,
			wantID:  "b",
			wantOK:  true,
		},
		{
			name: "long window picks estimate closest to seventy percent",
			tasks: []domain.Task{
				{ID: "too-long", EstimateMinutes: 90},
				{ID: "small", EstimateMinutes: 30},
				{ID: "best", EstimateMinutes: 75},
				{ID: "close", EstimateMinutes: 60},
			},
			minutes: 100,
			wantID:  "best",
			wantOK:  true,
		},
		{
			name: "completed tasks are ignored",
			tasks: []domain.Task{
				{ID: "done", EstimateMinutes: 10, Completed: true},
				{ID: "open", EstimateMinutes: 25},
			},
			minutes: 60,
			wantID:  "open",
			wantOK:  true,
		},
		{
			name:    "nothing fits",
			tasks:   []domain.Task{{ID: "big", EstimateMinutes: 50}},
			minutes: 60,
			wantOK:  false,
		},
		{
			name:    "no time",
			tasks:   []domain.Task{{ID: "a", EstimateMinutes: 5}},
			minutes: 0,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecommendTaskByAvailableTime(tt.tasks, tt.minutes)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.TaskID != tt.wantID {
				t.Errorf("TaskID = %q, want %q", got.TaskID, tt.wantID)
			}
		})
	}
}
