package impl

import (
	"strings"

	"walkr/internal/domain/entity"
)

// profileBaseWeights are hand-tuned per-label constants reflecting each
// profile's intent. Unknown labels score from zero.
var profileBaseWeights = map[string]float64{
	profileBase:      1,
	profileScenic:    3,
	profileExplore:   2,
	profileSafeDay:   2,
	profileSafeNight: 4,
	profileRain:      2,
	profileSnow:      3,
}

const (
	// hills are worse to traverse in rain, snow or heat
	slopeWeatherPenalty = 2.0

	// bonus for safety-oriented profiles after dark
	nightSafetyBonus = 2.0

	// mild preference for shorter routes among similarly suited profiles
	lengthPenaltyDivisor = 5.0
)

// ScoreRoute maps (profile label, environment, path summary) to a
// desirability score; higher is better. Pure and deterministic; zero or
// missing summary fields are treated as zero, never as an error.
func ScoreRoute(label string, env entity.EnvironmentContext, summary entity.RouteSummary) float64 {
	score := profileBaseWeights[label]

	if env.AdverseWeather() {
		score -= summary.MaxUpSlope * slopeWeatherPenalty
	}

	if env.Night && strings.Contains(label, "safe") {
		score += nightSafetyBonus
	}

	score -= summary.LengthKm / lengthPenaltyDivisor

	return score
}
