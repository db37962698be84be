package scoring

import (
	"log/slog"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
)

// Weights are the additive terms of a task score.
type Weights struct {
	Baseline float64

	// FitMax is the bonus for a cognitive load that exactly matches the
	// current energy/focus level. It decays linearly to zero at the widest gap.
	FitMax float64

	MustBonus      float64
	ImportantBonus float64
	// PriorityBonus is divided by the task priority (1 = most urgent).
	PriorityBonus float64

	OverdueBonus     float64
	DueTodayBonus    float64
	DueTomorrowBonus float64
	DueSoonBonus     float64
	DueLaterBonus    float64

	PostponePenalty float64
}

// DueSoonDays is the horizon in days for the DueSoonBonus.
const DueSoonDays = 3

func DefaultWeights() Weights {
	return Weights{
		Baseline:         10,
		FitMax:           20,
		MustBonus:        40,
		ImportantBonus:   20,
		PriorityBonus:    16,
		OverdueBonus:     30,
		DueTodayBonus:    20,
		DueTomorrowBonus: 10,
		DueSoonBonus:     6,
		DueLaterBonus:    3,
		PostponePenalty:  5,
	}
}

// WeightsFromConfig overlays configured weights on the defaults.
func WeightsFromConfig(cfg *config.ScoringConfig) Weights {
	w := DefaultWeights()
	if cfg == nil {
		slog.Info("scoring config is nil, using default weights")
		return w
	}

	w.FitMax = cfg.FitWeight
	w.MustBonus = cfg.MustBonus
	w.ImportantBonus = cfg.ImportantBonus
	w.OverdueBonus = cfg.OverdueBonus
	w.DueTodayBonus = cfg.DueTodayBonus
	w.PostponePenalty = cfg.PostponePenalty

	if !w.deadlineOrdered() {
		slog.Warn("configured deadline bonuses are not strictly ordered, using defaults",
			slog.Float64("overdue_bonus", w.OverdueBonus),
			slog.Float64("due_today_bonus", w.DueTodayBonus),
		)
		def := DefaultWeights()
		w.OverdueBonus = def.OverdueBonus
		w.DueTodayBonus = def.DueTodayBonus
	}

	return w
}

func (w Weights) deadlineOrdered() bool {
	return w.OverdueBonus > w.DueTodayBonus &&
		w.DueTodayBonus > w.DueTomorrowBonus &&
		w.DueTomorrowBonus > w.DueSoonBonus &&
		w.DueSoonBonus > w.DueLaterBonus &&
		w.DueLaterBonus > 0
}
