package impl

import (
	"testing"

	"walkr/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coreLabels() []string {
	return []string{profileBase, profileScenic, profileSafeDay, profileSafeNight, profileExplore}
}

func labelsOf(profiles []entity.CostProfile) []string {
	labels := make([]string, 0, len(profiles))
	for _, p := range profiles {
		labels = append(labels, p.Label)
	}

	return labels
}

func TestBuildCostProfiles_ClearWeather(t *testing.T) {
	env := entity.EnvironmentContext{Weather: entity.WeatherClear}

	profiles := BuildCostProfiles(env)

	assert.Equal(t, coreLabels(), labelsOf(profiles))
}

func TestBuildCostProfiles_RainAppendsRainRoute(t *testing.T) {
	env := entity.EnvironmentContext{Weather: entity.WeatherRain}

	profiles := BuildCostProfiles(env)

	require.Len(t, profiles, 6)
	assert.Equal(t, coreLabels(), labelsOf(profiles[:5]))
	assert.Equal(t, profileRain, profiles[5].Label)
}

func TestBuildCostProfiles_SnowAppendsSnowRoute(t *testing.T) {
	env := entity.EnvironmentContext{Weather: entity.WeatherSnow}

	profiles := BuildCostProfiles(env)

	require.Len(t, profiles, 6)
	assert.Equal(t, profileSnow, profiles[5].Label)
	assert.Equal(t, 0.0, profiles[5].Weights[weightUseHills])
}

func TestBuildCostProfiles_HotAndColdAddNothing(t *testing.T) {
	for _, class := range []entity.WeatherClass{entity.WeatherHot, entity.WeatherCold} {
		profiles := BuildCostProfiles(entity.EnvironmentContext{Weather: class})
		assert.Len(t, profiles, 5)
	}
}

func TestBuildCostProfiles_Deterministic(t *testing.T) {
	env := entity.EnvironmentContext{Weather: entity.WeatherRain, Night: true}

	first := BuildCostProfiles(env)
	second := BuildCostProfiles(env)

	assert.Equal(t, first, second)
}

func TestBuildCostProfiles_SafeNightSkewsTowardLight(t *testing.T) {
	profiles := BuildCostProfiles(entity.EnvironmentContext{})

	var safeNight entity.CostProfile
	for _, p := range profiles {
		if p.Label == profileSafeNight {
			safeNight = p
		}
	}

	require.NotEmpty(t, safeNight.Label)
	assert.Equal(t, 1.5, safeNight.Weights[weightUseLit])
	assert.Equal(t, 8.0, safeNight.Weights[weightAlleyFactor])
}

func TestCostProfile_CloneWeightsIsIndependent(t *testing.T) {
	profiles := BuildCostProfiles(entity.EnvironmentContext{})

	clone := profiles[0].CloneWeights()
	clone[weightUseRoads] = 99

	assert.Equal(t, 0.5, profiles[0].Weights[weightUseRoads])
}
