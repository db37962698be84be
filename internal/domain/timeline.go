package domain

import "time"

type EventKind string

const (
	EventMeeting   EventKind = "meeting"
	EventFixed     EventKind = "fixed-event"
	EventTaskBlock EventKind = "task-block"
	EventTentative EventKind = "tentative-proposal"
)

func (k EventKind) String() string {
	return string(k)
}

type TimelineEvent struct {
	ID              string      `json:"id" yaml:"id"`
	Kind            EventKind   `json:"kind" yaml:"kind"`
	Title           string      `json:"title,omitempty" yaml:"title,omitempty"`
	Start           time.Time   `json:"start" yaml:"start"`
	End             time.Time   `json:"end" yaml:"end"`
	DurationMinutes int         `json:"duration_minutes" yaml:"duration_minutes"`
	Mutable         bool        `json:"mutable" yaml:"mutable"`
	ContextType     ContextType `json:"context_type,omitempty" yaml:"context_type,omitempty"`
}

// Valid reports whether the event spans a positive interval.
func (e TimelineEvent) Valid() bool {
	return e.End.After(e.Start)
}

// Duration falls back to DurationMinutes when the interval is not set.
func (e TimelineEvent) Duration() time.Duration {
	if e.Valid() {
		return e.End.Sub(e.Start)
	}
	return time.Duration(e.DurationMinutes) * time.Minute
}

// IsFixed reports whether the event blocks time regardless of the plan.
func (e TimelineEvent) IsFixed() bool {
	return e.Kind == EventMeeting || e.Kind == EventFixed
}

type TimeWindow struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes int       `json:"minutes"`
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{
		Start:   start,
		End:     end,
		Minutes: int(end.Sub(start).Minutes()),
	}
}

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Conflict struct {
	First          TimelineEvent `json:"event1"`
	Second         TimelineEvent `json:"event2"`
	OverlapMinutes float64       `json:"overlap_minutes"`
}

type NextFixedEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayContext is the runtime snapshot of one calendar day.
type DayContext struct {
	Date             Date            `json:"date"`
	Now              time.Time       `json:"now"`
	EnergyMode       EnergyMode      `json:"energy_mode"`
	Momentum         Momentum        `json:"momentum"`
	ActiveTaskID     string          `json:"active_task_id,omitempty"`
	ActiveBlockID    string          `json:"active_block_id,omitempty"`
	ActiveContext    ContextType     `json:"active_context,omitempty"`
	NextFixedEvent   *NextFixedEvent `json:"next_fixed_event,omitempty"`
	AvailableWindows []TimeWindow    `json:"available_windows"`
	OverloadScore    int             `json:"overload_score"`
}
