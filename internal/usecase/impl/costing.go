package impl

import (
	"walkr/internal/domain/entity"
)

// Valhalla pedestrian costing option names. Lower values mean "prefer",
// higher values mean "avoid", except safety_factor which boosts safety
// weighting overall.
const (
	weightUseRoads     = "use_roads"
	weightUseHills     = "use_hills"
	weightUseLit       = "use_lit"
	weightSafetyFactor = "safety_factor"
	weightAlleyFactor  = "alley_factor"
)

// Core profile labels, in build order.
const (
	profileBase      = "base"
	profileScenic    = "scenic"
	profileSafeDay   = "safe_day"
	profileSafeNight = "safe_night"
	profileExplore   = "explore"
	profileRain      = "rain_route"
	profileSnow      = "snow_route"
)

// BuildCostProfiles produces the ordered list of weighted cost profiles
// for one request. Deterministic for a given context: the fixed core set
// always appears first, and a weather-specific profile is appended
// exactly when the weather class is rain or snow.
func BuildCostProfiles(env entity.EnvironmentContext) []entity.CostProfile {
	profiles := []entity.CostProfile{
		{Label: profileBase, Weights: map[string]float64{
			weightUseRoads: 0.5, weightUseHills: 0.5, weightUseLit: 0.5,
		}},
		{Label: profileScenic, Weights: map[string]float64{
			weightUseRoads: 0.2, weightUseHills: 0.4, weightUseLit: 0.5,
		}},
		{Label: profileSafeDay, Weights: map[string]float64{
			weightUseRoads: 0.2, weightUseHills: 0.3, weightUseLit: 0.6,
			weightSafetyFactor: 0.7,
		}},
		// skews hard toward lit paths and away from unlit alleys
		{Label: profileSafeNight, Weights: map[string]float64{
			weightUseRoads: 0.1, weightUseHills: 0.3, weightUseLit: 1.5,
			weightSafetyFactor: 1.5, weightAlleyFactor: 8.0,
		}},
		{Label: profileExplore, Weights: map[string]float64{
			weightUseRoads: 0.3, weightUseHills: 0.2, weightUseLit: 0.4,
			weightSafetyFactor: 0.8,
		}},
	}

	switch env.Weather {
	case entity.WeatherRain:
		profiles = append(profiles, entity.CostProfile{
			Label: profileRain, Weights: map[string]float64{
				weightUseRoads: 0.2, weightUseHills: 0.1, weightUseLit: 0.9,
			},
		})
	case entity.WeatherSnow:
		profiles = append(profiles, entity.CostProfile{
			Label: profileSnow, Weights: map[string]float64{
				weightUseRoads: 0.2, weightUseHills: 0.0, weightUseLit: 1.0,
				weightSafetyFactor: 1.3,
			},
		})
	}

	return profiles
}
