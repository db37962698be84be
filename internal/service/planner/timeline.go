package planner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/tracing"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/timeline"
)

type MoveRequest struct {
	Event        domain.TimelineEvent   `json:"event"`
	NewStart     time.Time              `json:"new_start" binding:"required"`
	Timeline     []domain.TimelineEvent `json:"timeline"`
	WorkingHours *domain.WorkingHours   `json:"working_hours,omitempty"`
}

type MoveResponse struct {
	timeline.MoveResult
	WithinWorkingHours bool `json:"within_working_hours"`
}

type MeetingSlotRequest struct {
	Timeline        []domain.TimelineEvent `json:"timeline"`
	DurationMinutes int                    `json:"duration_minutes" binding:"required,gt=0"`
	Count           int                    `json:"count,omitempty" binding:"gte=0"`
	After           *time.Time             `json:"after,omitempty"`
	WorkingHours    *domain.WorkingHours   `json:"working_hours,omitempty"`
	PreferredStart  *int                   `json:"preferred_start_hour,omitempty" binding:"omitempty,gte=0,lte=24"`
	PreferredEnd    *int                   `json:"preferred_end_hour,omitempty" binding:"omitempty,gte=0,lte=24"`
}

// MoveBlock previews a move of a mutable block and whether it stays inside the
// request's working hours, or the configured ones when none are given.
func (s *Service) MoveBlock(ctx context.Context, req MoveRequest) MoveResponse {
	_, span := tracing.StartPhaseSpan(ctx, "timeline.move")
	defer span.End()

	hours := s.cfg.WorkingHours
	if req.WorkingHours != nil && req.WorkingHours.Valid() {
		hours = *req.WorkingHours
	}

	result := timeline.MoveBlock(req.Event, req.NewStart, req.Timeline)

	resp := MoveResponse{MoveResult: result}
	if !result.Refused {
		resp.WithinWorkingHours = timeline.IsWithinWorkingHours(result.Moved.Start, result.Moved.End, hours)
	}

	span.SetAttributes(
		attribute.Bool("move.refused", result.Refused),
		attribute.Int("move.conflict_count", len(result.Conflicts)),
	)

	return resp
}

// MeetingSlots suggests meeting starts in the free windows after the given
// instant, preferring the middle of the preferred hours.
func (s *Service) MeetingSlots(ctx context.Context, req MeetingSlotRequest) []recommend.MeetingSlot {
	_, span := tracing.StartPhaseSpan(ctx, "timeline.meeting_slots")
	defer span.End()

	hours := s.cfg.WorkingHours
	if req.WorkingHours != nil && req.WorkingHours.Valid() {
		hours = *req.WorkingHours
	}

	after := s.now().In(s.location())
	if req.After != nil {
		after = *req.After
	}

	preferred := recommend.DefaultPreferredHours()
	if req.PreferredStart != nil {
		preferred.Start = *req.PreferredStart
	}
	if req.PreferredEnd != nil {
		preferred.End = *req.PreferredEnd
	}

	windows := windowsFrom(daycontext.FindAvailableWindows(after, hours, req.Timeline, s.cfg.MinWindowMinutes), after, req.DurationMinutes)
	slots := recommend.FindMeetingSlots(windows, req.DurationMinutes, preferred, req.Count)

	span.SetAttributes(
		attribute.Int("meeting.window_count", len(windows)),
		attribute.Int("meeting.slot_count", len(slots)),
	)

	return slots
}

// windowsFrom drops the part of each window that lies before after, keeping
// only windows that still fit durationMinutes.
func windowsFrom(windows []domain.TimeWindow, after time.Time, durationMinutes int) []domain.TimeWindow {
	trimmed := make([]domain.TimeWindow, 0, len(windows))
	for _, w := range windows {
		start := w.Start
		if after.After(start) {
			start = after
		}
		if !w.End.After(start) {
			continue
		}
		window := domain.NewTimeWindow(start, w.End)
		if window.Minutes < durationMinutes {
			continue
		}
		trimmed = append(trimmed, window)
	}
	return trimmed
}
