package daycontext

import (
	"math"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const (
	// StuckIdleMinutes is how long without any action counts as being stuck.
	StuckIdleMinutes = 90

	// DefaultMinWindowMinutes is the smallest gap reported as an available window.
	DefaultMinWindowMinutes = 15

	overloadRatioWeight = 50
	overloadRatioCap    = 70
	overloadUrgentPoint = 10
	overloadUrgentCap   = 30
	overloadMax         = 100
)

func InferMomentum(recentCompletions, recentInterruptions, minutesSinceLastAction int) domain.Momentum {
	if recentInterruptions > recentCompletions || minutesSinceLastAction > StuckIdleMinutes {
		return domain.MomentumStuck
	}
	if recentCompletions >= 2 && recentInterruptions == 0 {
		return domain.MomentumFlow
	}
	return domain.MomentumNeutral
}

// CalculateOverloadScore returns 0-100. Zero available minutes is treated as one.
func CalculateOverloadScore(totalTaskMinutes, availableMinutes, urgentTaskCount int) int {
	ratio := float64(max(totalTaskMinutes, 0)) / float64(max(availableMinutes, 1))
	base := math.Min(ratio*overloadRatioWeight, overloadRatioCap)
	urgency := math.Min(float64(max(urgentTaskCount, 0)*overloadUrgentPoint), overloadUrgentCap)

	return int(math.Round(math.Min(base+urgency, overloadMax)))
}

// FindAvailableWindows returns the gaps of at least minWindowMinutes between
// the working hours of day and the events, including the gap after the last
// event. Events are clipped to the working hours.
func FindAvailableWindows(day time.Time, hours domain.WorkingHours, events []domain.TimelineEvent, minWindowMinutes int) []domain.TimeWindow {
	windows := make([]domain.TimeWindow, 0)
	if !hours.Valid() {
		return windows
	}

	workStart, workEnd := hours.Bounds(day)
	minWindow := time.Duration(max(minWindowMinutes, 0)) * time.Minute

	sorted := make([]domain.TimelineEvent, 0, len(events))
	for _, e := range events {
		if e.Valid() && e.Start.Before(workEnd) && e.End.After(workStart) {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	current := workStart
	for _, e := range sorted {
		if e.Start.Sub(current) >= minWindow && e.Start.After(current) {
			windows = append(windows, domain.NewTimeWindow(current, e.Start))
		}
		if e.End.After(current) {
			current = e.End
		}
	}

	if current.After(workEnd) {
		current = workEnd
	}
	if workEnd.Sub(current) >= minWindow && workEnd.After(current) {
		windows = append(windows, domain.NewTimeWindow(current, workEnd))
	}

	return windows
}

// ContextBuffer is the switch buffer in minutes to keep around a block of the
// given context.
func ContextBuffer(contextType domain.ContextType) int {
	switch contextType {
	case domain.ContextAdmin, domain.ContextCommunication:
		return 5
	case domain.ContextOperations:
		return 15
	default:
		return 10
	}
}
