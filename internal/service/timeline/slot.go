package timeline

import (
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// gap is a span a task may start in; a task of d minutes fits when
// start+d <= latestEnd.
type gap struct {
	start     time.Time
	latestEnd time.Time
}

func (g gap) room() time.Duration {
	return g.latestEnd.Sub(g.start)
}

// freeGaps walks the events chronologically from max(after, work start). Gaps
// before an event keep bufferMinutes clear ahead of it, and the search resumes
// bufferMinutes after each event's end. It never moves backwards.
func freeGaps(events []domain.TimelineEvent, hours domain.WorkingHours, bufferMinutes int, after time.Time) []gap {
	workStart, workEnd := hours.Bounds(after)
	buffer := time.Duration(max(bufferMinutes, 0)) * time.Minute

	searchStart := workStart
	if after.After(searchStart) {
		searchStart = after
	}

	gaps := make([]gap, 0)
	for _, e := range sortedValid(events) {
		if !searchStart.Before(workEnd) {
			return gaps
		}
		if !e.Start.Before(workEnd) {
			break
		}

		latestEnd := e.Start.Add(-buffer)
		if latestEnd.After(workEnd) {
			latestEnd = workEnd
		}
		if latestEnd.After(searchStart) {
			gaps = append(gaps, gap{start: searchStart, latestEnd: latestEnd})
		}

		if resume := e.End.Add(buffer); resume.After(searchStart) {
			searchStart = resume
		}
	}

	if searchStart.Before(workEnd) {
		gaps = append(gaps, gap{start: searchStart, latestEnd: workEnd})
	}

	return gaps
}

// FindNextSlot returns the earliest slot of durationMinutes that fits inside
// the working hours without touching any event.
func FindNextSlot(events []domain.TimelineEvent, durationMinutes int, hours domain.WorkingHours, bufferMinutes int, after time.Time) (domain.Slot, bool) {
	return NewFirstFitFinder().FindSlot(events, durationMinutes, hours, bufferMinutes, after)
}
