package timeline

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func event(id string, kind domain.EventKind, start, end time.Time, mutable bool) domain.TimelineEvent {
	return domain.TimelineEvent{
		ID:              id,
		Kind:            kind,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		Mutable:         mutable,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.TimelineEvent
		want bool
	}{
		{
			name: "partial overlap",
			a:    event("a", domain.EventMeeting, at(9, 0), at(10, 0), false),
			b:    event("b", domain.EventMeeting, at(9, 30), at(10, 30), false),
			want: true,
		},
		{
			name: "touching intervals do not overlap",
			a:    event("a", domain.EventMeeting, at(9, 0), at(10, 0), false),
			b:    event("b", domain.EventMeeting, at(10, 0), at(11, 0), false),
			want: false,
		},
		{
			name: "containment",
			a:    event("a", domain.EventFixed, at(9, 0), at(12, 0), false),
			b:    event("b", domain.EventTaskBlock, at(10, 0), at(10, 15), true),
			want: true,
		},
		{
			name: "disjoint",
			a:    event("a", domain.EventMeeting, at(9, 0), at(9, 30), false),
			b:    event("b", domain.EventMeeting, at(14, 0), at(15, 0), false),
			want: false,
		},
		{
			name: "malformed event never overlaps",
			a:    event("a", domain.EventMeeting, at(9, 0), at(12, 0), false),
			b:    event("b", domain.EventMeeting, at(11, 0), at(10, 0), false),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	events := []domain.TimelineEvent{
		event("standup", domain.EventMeeting, at(9, 0), at(9, 30), false),
		event("focus", domain.EventTaskBlock, at(9, 15), at(10, 45), true),
		event("review", domain.EventMeeting, at(10, 30), at(11, 0), false),
		event("lunch", domain.EventFixed, at(12, 0), at(13, 0), false),
		event("broken", domain.EventMeeting, at(9, 0), at(9, 0), false),
	}

	conflicts := FindConflicts(events)

	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}

	want := []struct {
		first, second string
		minutes       float64
	}{
		{"standup", "focus", 15},
		{"focus", "review", 15},
	}

	seen := make(map[[2]string]bool)
	for i, c := range conflicts {
		if c.First.ID != want[i].first || c.Second.ID != want[i].second {
			t.Errorf("conflict %d: expected %s/%s, got %s/%s", i, want[i].first, want[i].second, c.First.ID, c.Second.ID)
		}
		if c.OverlapMinutes != want[i].minutes {
			t.Errorf("conflict %d: expected %v overlap minutes, got %v", i, want[i].minutes, c.OverlapMinutes)
		}

		key := [2]string{c.First.ID, c.Second.ID}
		if c.Second.ID < c.First.ID {
			key = [2]string{c.Second.ID, c.First.ID}
		}
		if seen[key] {
			t.Errorf("pair %v reported twice", key)
		}
		seen[key] = true
	}

	if got := FindConflicts(nil); len(got) != 0 {
		t.Errorf("expected no conflicts for empty timeline, got %d", len(got))
	}
}

func TestMoveBlock(t *testing.T) {
	meeting := event("meeting", domain.EventMeeting, at(11, 0), at(12, 0), false)
	block := event("block", domain.EventTaskBlock, at(9, 0), at(10, 0), true)
	timeline := []domain.TimelineEvent{meeting, block}

	t.Run("immutable event is refused", func(t *testing.T) {
		got := MoveBlock(meeting, at(14, 0), timeline)
		if !got.Refused || got.Success {
			t.Errorf("expected refused move, got %+v", got)
		}
		if len(got.Conflicts) != 0 {
			t.Errorf("expected no conflicts, got %d", len(got.Conflicts))
		}
	})

	t.Run("move into free time succeeds", func(t *testing.T) {
		got := MoveBlock(block, at(13, 0), timeline)
		if !got.Success || got.Refused {
			t.Fatalf("expected success, got %+v", got)
		}
		if !got.Moved.Start.Equal(at(13, 0)) || !got.Moved.End.Equal(at(14, 0)) {
			t.Errorf("unexpected moved interval %v-%v", got.Moved.Start, got.Moved.End)
		}
		if !block.Start.Equal(at(9, 0)) {
			t.Error("original event must not change")
		}
	})

	t.Run("move onto a meeting reports the conflict", func(t *testing.T) {
		got := MoveBlock(block, at(11, 30), timeline)
		if got.Success || got.Refused {
			t.Fatalf("expected conflicting move, got %+v", got)
		}
		if len(got.Conflicts) != 1 || got.Conflicts[0].Second.ID != "meeting" {
			t.Fatalf("expected one conflict with meeting, got %+v", got.Conflicts)
		}
		if got.Conflicts[0].OverlapMinutes != 30 {
			t.Errorf("expected 30 overlap minutes, got %v", got.Conflicts[0].OverlapMinutes)
		}
	})

	t.Run("event does not conflict with itself", func(t *testing.T) {
		got := MoveBlock(block, at(9, 30), timeline)
		if !got.Success {
			t.Errorf("expected success, got %+v", got)
		}
	})
}

func TestTimeUntilNextFixedEvent(t *testing.T) {
	timeline := []domain.TimelineEvent{
		event("block", domain.EventTaskBlock, at(10, 0), at(10, 30), true),
		event("past", domain.EventMeeting, at(8, 0), at(8, 30), false),
		event("later", domain.EventMeeting, at(15, 0), at(16, 0), false),
		event("next", domain.EventMeeting, at(11, 20), at(12, 0), false),
		event("lunch", domain.EventFixed, at(10, 50), at(11, 10), false),
	}

	minutes, ok := TimeUntilNextFixedEvent(timeline, at(10, 0))
	if !ok {
		t.Fatal("expected a next meeting")
	}
	if minutes != 80 {
		t.Errorf("expected 80 minutes, got %d", minutes)
	}

	if _, ok := TimeUntilNextFixedEvent(timeline, at(15, 0)); ok {
		t.Error("a meeting starting exactly now is not upcoming")
	}
}

func TestIsWithinWorkingHours(t *testing.T) {
	hours := domain.DefaultWorkingHours()

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "inside", start: at(9, 0), end: at(17, 0), want: true},
		{name: "starts early", start: at(8, 59), end: at(10, 0), want: false},
		{name: "ends late by minutes", start: at(16, 30), end: at(17, 30), want: false},
		{name: "empty interval", start: at(10, 0), end: at(10, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinWorkingHours(tt.start, tt.end, hours); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAddBufferAfter(t *testing.T) {
	slot := AddBufferAfter(event("m", domain.EventMeeting, at(10, 0), at(11, 0), false), 15)
	if !slot.Start.Equal(at(11, 0)) || !slot.End.Equal(at(11, 15)) {
		t.Errorf("unexpected buffer %v-%v", slot.Start, slot.End)
	}
}
