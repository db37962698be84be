package queue

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// AvailableMinutes is the working time left between now and the end of the
// working day, minus fixed events in that span, plus a manually added block.
func AvailableMinutes(now time.Time, hours domain.WorkingHours, events []domain.TimelineEvent, manualBlockMinutes int) int {
	workStart, workEnd := hours.Bounds(now)
	from := workStart
	if now.After(from) {
		from = now
	}

	base := 0
	if workEnd.After(from) {
		base = int(workEnd.Sub(from).Minutes()) - blockedMinutes(from, workEnd, events)
	}

	return max(base, 0) + max(manualBlockMinutes, 0)
}

// blockedMinutes sums the union of fixed events clipped to [from, to).
func blockedMinutes(from, to time.Time, events []domain.TimelineEvent) int {
	type span struct{ start, end time.Time }

	spans := make([]span, 0, len(events))
	for _, e := range events {
		if !e.Valid() || !e.IsFixed() {
			continue
		}
		start, end := e.Start, e.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		if end.After(start) {
			spans = append(spans, span{start, end})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	var total time.Duration
	var cur *span
	for i := range spans {
		s := spans[i]
		if cur == nil || s.start.After(cur.end) {
			if cur != nil {
				total += cur.end.Sub(cur.start)
			}
			cur = &s
			continue
		}
		if s.end.After(cur.end) {
			cur.end = s.end
		}
	}
	if cur != nil {
		total += cur.end.Sub(cur.start)
	}

	return int(total.Minutes())
}

// DaysOverdue is 0 for tasks that are not overdue or have no due date.
func DaysOverdue(task *domain.Task, today domain.Date) int {
	due, ok := task.Due()
	if !ok || !today.Valid() {
		return 0
	}
	return max(due.DaysUntil(today), 0)
}
