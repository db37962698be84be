package timeline

import (
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

// SlotFinder places a task of a given duration into free time on the timeline.
// Implementations should be easily replaceable to compare strategies.
type SlotFinder interface {
	FindSlot(events []domain.TimelineEvent, durationMinutes int, hours domain.WorkingHours, bufferMinutes int, after time.Time) (domain.Slot, bool)
}

var (
	_ SlotFinder = (*FirstFitFinder)(nil)
	_ SlotFinder = (*BestFitFinder)(nil)
)

// FirstFitFinder takes the earliest gap that fits.
type FirstFitFinder struct{}

func NewFirstFitFinder() *FirstFitFinder {
	return &FirstFitFinder{}
}

func (f *FirstFitFinder) FindSlot(events []domain.TimelineEvent, durationMinutes int, hours domain.WorkingHours, bufferMinutes int, after time.Time) (domain.Slot, bool) {
	if durationMinutes <= 0 || !hours.Valid() {
		return domain.Slot{}, false
	}
	duration := time.Duration(durationMinutes) * time.Minute

	for _, g := range freeGaps(events, hours, bufferMinutes, after) {
		if g.room() >= duration {
			return domain.Slot{Start: g.start, End: g.start.Add(duration)}, true
		}
	}

	return domain.Slot{}, false
}

// BestFitFinder takes the tightest gap that fits, leaving larger gaps free for
// longer work. Ties go to the earlier gap.
type BestFitFinder struct{}

func NewBestFitFinder() *BestFitFinder {
	return &BestFitFinder{}
}

func (b *BestFitFinder) FindSlot(events []domain.TimelineEvent, durationMinutes int, hours domain.WorkingHours, bufferMinutes int, after time.Time) (domain.Slot, bool) {
	if durationMinutes <= 0 || !hours.Valid() {
		return domain.Slot{}, false
	}
	duration := time.Duration(durationMinutes) * time.Minute

	var best *gap
	for _, g := range freeGaps(events, hours, bufferMinutes, after) {
		if g.room() < duration {
			continue
		}
		if best == nil || g.room() < best.room() {
			candidate := g
			best = &candidate
		}
	}

	if best == nil {
		return domain.Slot{}, false
	}
	return domain.Slot{Start: best.start, End: best.start.Add(duration)}, true
}

// NewSlotFinder creates a SlotFinder based on the configuration.
// If cfg is nil, it defaults to FirstFitFinder.
func NewSlotFinder(cfg *config.PlannerConfig) SlotFinder {
	if cfg == nil {
		slog.Info("planner config is nil, using default firstfit slot finder")
		return NewFirstFitFinder()
	}

	switch cfg.SlotStrategy {
	case config.SlotStrategyBestFit:
		slog.Info("using bestfit slot finder")
		return NewBestFitFinder()
	case config.SlotStrategyFirstFit:
		fallthrough
	default:
		slog.Info("using firstfit slot finder")
		return NewFirstFitFinder()
	}
}
