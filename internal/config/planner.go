package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
)

const (
	plannerWorkStartEnv         = "PLANNER_WORK_START"
	plannerWorkEndEnv           = "PLANNER_WORK_END"
	plannerMinWindowMinutesEnv  = "PLANNER_MIN_WINDOW_MINUTES"
	plannerSlotBufferMinutesEnv = "PLANNER_SLOT_BUFFER_MINUTES"
	plannerSnapshotTTLHoursEnv  = "PLANNER_SNAPSHOT_TTL_HOURS"
	plannerTimezoneEnv          = "PLANNER_TIMEZONE"
	plannerSlotStrategyEnv      = "PLANNER_SLOT_STRATEGY"

	defaultMinWindowMinutes  = 15
	defaultSlotBufferMinutes = 10
	defaultSnapshotTTLHours  = 48
	defaultSlotStrategy      = SlotStrategyFirstFit
)

type SlotStrategy string

const (
	SlotStrategyFirstFit SlotStrategy = "firstfit"
	SlotStrategyBestFit  SlotStrategy = "bestfit"
)

type PlannerConfig struct {
	// WorkingHours apply when a request or stored settings carry none.
	WorkingHours      domain.WorkingHours
	MinWindowMinutes  int
	SlotBufferMinutes int
	SnapshotTTL       time.Duration
	Location          *time.Location
	SlotStrategy      SlotStrategy
}

func LoadPlannerConfig() (*PlannerConfig, error) {
	hours := domain.DefaultWorkingHours()

	if v := os.Getenv(plannerWorkStartEnv); v != "" {
		start, err := domain.ParseClockTime(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkStart, err)
		}
		hours.Start = start
	}

	if v := os.Getenv(plannerWorkEndEnv); v != "" {
		end, err := domain.ParseClockTime(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkEnd, err)
		}
		hours.End = end
	}

	minWindow := defaultMinWindowMinutes
	if v := os.Getenv(plannerMinWindowMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			minWindow = parsed
		}
	}

	buffer := defaultSlotBufferMinutes
	if v := os.Getenv(plannerSlotBufferMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			buffer = parsed
		}
	}

	ttlHours := defaultSnapshotTTLHours
	if v := os.Getenv(plannerSnapshotTTLHoursEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			ttlHours = parsed
		}
	}

	loc := time.Local
	if v := os.Getenv(plannerTimezoneEnv); v != "" {
		parsed, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
		}
		loc = parsed
	}

	strategy := SlotStrategy(os.Getenv(plannerSlotStrategyEnv))
	if strategy != SlotStrategyFirstFit && strategy != SlotStrategyBestFit {
		strategy = defaultSlotStrategy
	}

	return &PlannerConfig{
		WorkingHours:      hours,
		MinWindowMinutes:  minWindow,
		SlotBufferMinutes: buffer,
		SnapshotTTL:       time.Duration(ttlHours) * time.Hour,
		Location:          loc,
		SlotStrategy:      strategy,
	}, nil
}

func (c *PlannerConfig) Validate() error {
	if c == nil {
		return ErrPlannerConfigMissing
	}
	if !c.WorkingHours.Valid() {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, c.WorkingHours.Start, c.WorkingHours.End)
	}
	return nil
}
