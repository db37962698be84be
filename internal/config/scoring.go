package config

import (
	"os"
	"strconv"
)

const (
	scoringFitWeightEnv       = "SCORING_FIT_WEIGHT"
	scoringMustBonusEnv       = "SCORING_MUST_BONUS"
	scoringImportantBonusEnv  = "SCORING_IMPORTANT_BONUS"
	scoringOverdueBonusEnv    = "SCORING_OVERDUE_BONUS"
	scoringDueTodayBonusEnv   = "SCORING_DUE_TODAY_BONUS"
	scoringPostponePenaltyEnv = "SCORING_POSTPONE_PENALTY"

	defaultFitWeight       = 20.0
	defaultMustBonus       = 40.0
	defaultImportantBonus  = 20.0
	defaultOverdueBonus    = 30.0
	defaultDueTodayBonus   = 20.0
	defaultPostponePenalty = 5.0
)

type ScoringConfig struct {
	FitWeight       float64
	MustBonus       float64
	ImportantBonus  float64
	OverdueBonus    float64
	DueTodayBonus   float64
	PostponePenalty float64
}

func LoadScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		FitWeight:       floatEnv(scoringFitWeightEnv, defaultFitWeight),
		MustBonus:       floatEnv(scoringMustBonusEnv, defaultMustBonus),
		ImportantBonus:  floatEnv(scoringImportantBonusEnv, defaultImportantBonus),
		OverdueBonus:    floatEnv(scoringOverdueBonusEnv, defaultOverdueBonus),
		DueTodayBonus:   floatEnv(scoringDueTodayBonusEnv, defaultDueTodayBonus),
		PostponePenalty: floatEnv(scoringPostponePenaltyEnv, defaultPostponePenalty),
	}
}

// floatEnv returns the non-negative float in key, or def when unset or invalid.
func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return def
}
