package domain

import (
	"strings"
	"time"
)

// ContextType is a coarse category of work used to batch tasks and size
// context-switch buffers.
type ContextType string

const (
	ContextDeepWork      ContextType = "deep-work"
	ContextAdmin         ContextType = "admin"
	ContextCommunication ContextType = "communication"
	ContextOperations    ContextType = "operations"
	ContextCreative      ContextType = "creative"
	ContextUnknown       ContextType = "unknown"
)

func (c ContextType) String() string {
	return string(c)
}

// IsKnown reports whether c names a concrete category. Empty counts as unknown.
func (c ContextType) IsKnown() bool {
	switch c {
	case ContextDeepWork, ContextAdmin, ContextCommunication, ContextOperations, ContextCreative:
		return true
	default:
		return false
	}
}

// ParseContextType accepts the canonical names and the short aliases used by
// older clients ("deep", "comms", "ops").
func ParseContextType(s string) ContextType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deep-work", "deep":
		return ContextDeepWork
	case "admin":
		return ContextAdmin
	case "communication", "comms":
		return ContextCommunication
	case "operations", "ops":
		return ContextOperations
	case "creative":
		return ContextCreative
	default:
		return ContextUnknown
	}
}

const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. A value that does not parse is
// treated as "no date".
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) Time() (time.Time, bool) {
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// AddDays returns the date n days later. An invalid date is returned unchanged.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time()
	if !ok {
		return d
	}
	return NewDate(t.AddDate(0, 0, n))
}

// DaysUntil returns the signed number of days from d to other. Both must be valid.
func (d Date) DaysUntil(other Date) int {
	a, okA := d.Time()
	b, okB := other.Time()
	if !okA || !okB {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

type Task struct {
	ID              string      `json:"id" yaml:"id" validate:"required"`
	Title           string      `json:"title" yaml:"title"`
	Description     string      `json:"description,omitempty" yaml:"description,omitempty"`
	EstimateMinutes int         `json:"estimate_minutes" yaml:"estimate_minutes" validate:"gt=0"`
	CognitiveLoad   int         `json:"cognitive_load" yaml:"cognitive_load" validate:"omitempty,min=1,max=5"`
	Priority        int         `json:"priority" yaml:"priority"`
	IsMust          bool        `json:"is_must" yaml:"is_must"`
	IsImportant     bool        `json:"is_important" yaml:"is_important"`
	DueDate         Date        `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Completed       bool        `json:"completed" yaml:"completed"`
	PostponeCount   int         `json:"postpone_count" yaml:"postpone_count" validate:"gte=0"`
	ContextType     ContextType `json:"context_type,omitempty" yaml:"context_type,omitempty"`
	Tags            []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Due returns the parsed due date, or false when the task has none or it is malformed.
func (t *Task) Due() (Date, bool) {
	if !t.DueDate.Valid() {
		return "", false
	}
	return t.DueDate, true
}

func (t *Task) IsOverdue(today Date) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	return today.DaysUntil(due) < 0
}

func (t *Task) IsDueOn(day Date) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	return day.DaysUntil(due) == 0
}

func (t *Task) IsFuture(today Date) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	return today.DaysUntil(due) > 0
}

// IsFlagged reports whether the user pinned the task or marked it important.
func (t *Task) IsFlagged() bool {
	return t.IsMust || t.IsImportant
}

// ClassifierText is the text a context classifier inspects.
func (t *Task) ClassifierText() string {
	if t.Description == "" {
		return t.Title
	}
	return t.Title + " " + t.Description
}
