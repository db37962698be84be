package config

import (
	"os"
	"strconv"
)

const (
	recommendMaxEnv            = "RECOMMEND_MAX"
	recommendPostponeCountEnv  = "RECOMMEND_POSTPONE_COUNT"
	recommendOverloadFactorEnv = "RECOMMEND_OVERLOAD_FACTOR"

	defaultMaxRecommendations = 3
	defaultPostponeCount      = 2
	defaultOverloadFactor     = 1.5
)

type RecommendConfig struct {
	MaxRecommendations int
	PostponeCount      int
	OverloadFactor     float64
}

func LoadRecommendConfig() *RecommendConfig {
	maxRecs := defaultMaxRecommendations
	if v := os.Getenv(recommendMaxEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRecs = parsed
		}
	}

	postpone := defaultPostponeCount
	if v := os.Getenv(recommendPostponeCountEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			postpone = parsed
		}
	}

	factor := defaultOverloadFactor
	if v := os.Getenv(recommendOverloadFactorEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			factor = parsed
		}
	}

	return &RecommendConfig{
		MaxRecommendations: maxRecs,
		PostponeCount:      postpone,
		OverloadFactor:     factor,
	}
}
