package recommend

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const (
	defaultPreferredStartHour = 10
	defaultPreferredEndHour   = 16
	defaultMeetingSlotCount   = 3

	shortWindowMinutes   = 45
	quickTaskMinutes     = 20
	maxWindowFillRatio   = 0.8
	idealWindowFillRatio = 0.7
)

// PreferredHours is a half-open [Start, End) range of clock hours.
type PreferredHours struct {
	Start int
	End   int
}

func DefaultPreferredHours() PreferredHours {
	return PreferredHours{Start: defaultPreferredStartHour, End: defaultPreferredEndHour}
}

type MeetingSlot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
}

// FindMeetingSlots proposes the start of each free window that fits the
// meeting and begins inside the preferred hours, closest to the middle of
// that range first. A count of zero or less returns the default count.
func FindMeetingSlots(windows []domain.TimeWindow, durationMinutes int, preferred PreferredHours, count int) []MeetingSlot {
	if count <= 0 {
		count = defaultMeetingSlotCount
	}
	if preferred.End <= preferred.Start {
		preferred = DefaultPreferredHours()
	}
	if durationMinutes <= 0 {
		return nil
	}

	mid := float64(preferred.Start+preferred.End) / 2
	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]MeetingSlot, 0, len(windows))
	for _, w := range windows {
		if w.Minutes < durationMinutes || w.End.Sub(w.Start) < duration {
			continue
		}
		hour := w.Start.Hour()
		if hour < preferred.Start || hour >= preferred.End {
			continue
		}
		slots = append(slots, MeetingSlot{
			Start:  w.Start,
			End:    w.Start.Add(duration),
			Score:  100 - math.Abs(float64(hour)-mid)*10,
			Reason: fmt.Sprintf("Free %d min window starting at %s", w.Minutes, w.Start.Format("15:04")),
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Score > slots[j].Score
	})

	if len(slots) > count {
		slots = slots[:count]
	}
	return slots
}

// BreakThreshold is the continuous work time, in minutes, after which a break
// is suggested for the given energy mode.
func BreakThreshold(mode domain.EnergyMode) int {
	switch mode {
	case domain.EnergyCrisis:
		return 45
	case domain.EnergyFlow:
		return 120
	default:
		return 90
	}
}

func ShouldSuggestBreak(consecutiveWorkMinutes int, mode domain.EnergyMode) bool {
	return consecutiveWorkMinutes >= BreakThreshold(mode)
}

type TaskPick struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

// RecommendTaskByAvailableTime picks a task that fits comfortably in the given
// free time. Short windows prefer quick tasks; otherwise the task whose
// estimate is closest to 70% of the window wins, earliest on ties.
func RecommendTaskByAvailableTime(tasks []domain.Task, availableMinutes int) (TaskPick, bool) {
	if availableMinutes <= 0 {
		return TaskPick{}, false
	}

	limit := float64(availableMinutes) * maxWindowFillRatio
	fitting := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed || t.EstimateMinutes <= 0 {
			continue
		}
		if float64(t.EstimateMinutes) <= limit {
			fitting = append(fitting, t)
		}
	}
	if len(fitting) == 0 {
		return TaskPick{}, false
	}

	if availableMinutes < shortWindowMinutes {
		for _, t := range fitting {
			if t.EstimateMinutes <= quickTaskMinutes {
				return TaskPick{
					TaskID: t.ID,
					Reason: fmt.Sprintf("Quick %d min task fits the %d min gap", t.EstimateMinutes, availableMinutes),
				}, true
			}
		}
	}

	ideal := float64(availableMinutes) * idealWindowFillRatio
	best := fitting[0]
	bestDiff := math.Abs(float64(best.EstimateMinutes) - ideal)
	for _, t := range fitting[1:] {
		if diff := math.Abs(float64(t.EstimateMinutes) - ideal); diff < bestDiff {
			best = t
			bestDiff = diff
		}
	}

	return TaskPick{
		TaskID: best.ID,
		Reason: fmt.Sprintf("%d min task makes good use of the %d min gap", best.EstimateMinutes, availableMinutes),
	}, true
}
