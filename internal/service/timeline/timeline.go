package timeline

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// Overlaps uses half-open intervals. Malformed events never overlap.
func Overlaps(a, b domain.TimelineEvent) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func overlapMinutes(a, b domain.TimelineEvent) float64 {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return end.Sub(start).Minutes()
}

// FindConflicts reports every overlapping unordered pair once, in input order.
func FindConflicts(events []domain.TimelineEvent) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if !Overlaps(events[i], events[j]) {
				continue
			}
			conflicts = append(conflicts, domain.Conflict{
				First:          events[i],
				Second:         events[j],
				OverlapMinutes: overlapMinutes(events[i], events[j]),
			})
		}
	}

	return conflicts
}

type MoveResult struct {
	Success bool `json:"success"`
	// Refused is set when the event may not be relocated at all.
	Refused   bool                 `json:"refused"`
	Moved     domain.TimelineEvent `json:"moved"`
	Conflicts []domain.Conflict    `json:"conflicts"`
}

// MoveBlock computes where event would land if it started at newStart. It does
// not modify the timeline.
func MoveBlock(event domain.TimelineEvent, newStart time.Time, timeline []domain.TimelineEvent) MoveResult {
	duration := event.Duration()
	if !event.Mutable || duration <= 0 {
		return MoveResult{Refused: true, Moved: event, Conflicts: []domain.Conflict{}}
	}

	moved := event
	moved.Start = newStart
	moved.End = newStart.Add(duration)
	moved.DurationMinutes = int(duration.Minutes())

	conflicts := make([]domain.Conflict, 0)
	for _, other := range timeline {
		if other.ID == event.ID || !Overlaps(moved, other) {
			continue
		}
		conflicts = append(conflicts, domain.Conflict{
			First:          moved,
			Second:         other,
			OverlapMinutes: overlapMinutes(moved, other),
		})
	}

	return MoveResult{
		Success:   len(conflicts) == 0,
		Moved:     moved,
		Conflicts: conflicts,
	}
}

// NextMeeting returns the earliest meeting starting strictly after now.
func NextMeeting(timeline []domain.TimelineEvent, now time.Time) (domain.TimelineEvent, bool) {
	var next domain.TimelineEvent
	found := false

	for _, e := range timeline {
		if e.Kind != domain.EventMeeting || !e.Start.After(now) {
			continue
		}
		if !found || e.Start.Before(next.Start) {
			next = e
			found = true
		}
	}

	return next, found
}

// TimeUntilNextFixedEvent returns whole minutes until the next meeting.
func TimeUntilNextFixedEvent(timeline []domain.TimelineEvent, now time.Time) (int, bool) {
	next, ok := NextMeeting(timeline, now)
	if !ok {
		return 0, false
	}
	return int(next.Start.Sub(now).Minutes()), true
}

// AddBufferAfter returns the buffer interval that follows event.
func AddBufferAfter(event domain.TimelineEvent, bufferMinutes int) domain.Slot {
	return domain.Slot{
		Start: event.End,
		End:   event.End.Add(time.Duration(bufferMinutes) * time.Minute),
	}
}

// IsWithinWorkingHours checks the interval against the working hours of the
// start's calendar day.
func IsWithinWorkingHours(start, end time.Time, hours domain.WorkingHours) bool {
	if !end.After(start) {
		return false
	}
	workStart, workEnd := hours.Bounds(start)
	return !start.Before(workStart) && !end.After(workEnd)
}

func sortedValid(events []domain.TimelineEvent) []domain.TimelineEvent {
	sorted := make([]domain.TimelineEvent, 0, len(events))
	for _, e := range events {
		if e.Valid() {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}
