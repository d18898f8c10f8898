package impl

import (
	"context"
	"io"
	"log/slog"
	"math"

	"walkr/config"
	"walkr/internal/domain/entity"
)

// testLogger discards output; the services require a non-nil logger.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		TeleportThresholdKm: 0.5,
		MaxLegKm:            2.0,
		MinLoopPoints:       50,
		DedupePrecision:     6,
		MinLoopRadiusKm:     0.6,
		ForbiddenClasses:    []string{"motorway", "trunk"},
		ForbiddenUses:       []string{"ferry", "rail", "steps"},
		ForbiddenSurfaces:   []string{"gravel", "dirt"},
	}
}

func testConfig() *config.Config {
	return &config.Config{Engine: testEngineConfig()}
}

// stubWeather returns a fixed weather class or error.
type stubWeather struct {
	class entity.WeatherClass
	err   error
}

func (s *stubWeather) WeatherAt(_ context.Context, _ entity.GeoPoint) (entity.WeatherClass, error) {
	return s.class, s.err
}

// stubDaylight returns a fixed night flag or error.
type stubDaylight struct {
	night bool
	err   error
}

func (s *stubDaylight) IsNightAt(_ context.Context, _ entity.GeoPoint) (bool, error) {
	return s.night, s.err
}

func stubResolver(class entity.WeatherClass, night bool) *EnvironmentResolver {
	return NewEnvironmentResolver(&stubWeather{class: class}, &stubDaylight{night: night}, testLogger())
}

// stubOracle delegates to a closure so each test controls per-profile
// behavior through the costing weights it receives.
type stubOracle struct {
	route func(ctx context.Context, origin, destination entity.GeoPoint, weights map[string]float64) (*entity.PathCandidate, error)
}

func (s *stubOracle) Route(ctx context.Context, origin, destination entity.GeoPoint, _ string, weights map[string]float64) (*entity.PathCandidate, error) {
	return s.route(ctx, origin, destination, weights)
}

// profileFromWeights recovers the profile label from its weight
// fingerprint, since the oracle interface only sees weights.
func profileFromWeights(weights map[string]float64) string {
	if _, ok := weights[weightAlleyFactor]; ok {
		return profileSafeNight
	}
	switch weights[weightSafetyFactor] {
	case 0.7:
		return profileSafeDay
	case 0.8:
		return profileExplore
	case 1.3:
		return profileSnow
	}
	if weights[weightUseRoads] == 0.5 {
		return profileBase
	}
	if weights[weightUseHills] == 0.1 {
		return profileRain
	}

	return profileScenic
}

// interpolate builds a straight leg of n points between two coordinates.
func interpolate(from, to entity.GeoPoint, n int) []entity.GeoPoint {
	points := make([]entity.GeoPoint, 0, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		points = append(points, entity.GeoPoint{
			Lat: from.Lat + (to.Lat-from.Lat)*t,
			Lon: from.Lon + (to.Lon-from.Lon)*t,
		})
	}

	return points
}

// straightLegOracle produces clean interpolated legs for every request.
func straightLegOracle(pointsPerLeg int) *stubOracle {
	return &stubOracle{
		route: func(_ context.Context, origin, destination entity.GeoPoint, _ map[string]float64) (*entity.PathCandidate, error) {
			points := interpolate(origin, destination, pointsPerLeg)
			length := 0.0
			for i := 0; i < len(points)-1; i++ {
				length += approxKm(points[i], points[i+1])
			}

			return &entity.PathCandidate{
				Points:   points,
				LengthKm: length,
			}, nil
		},
	}
}

// approxKm is a flat-earth distance good enough for sub-kilometer test
// geometry near the equator.
func approxKm(a, b entity.GeoPoint) float64 {
	dLat := (a.Lat - b.Lat) * 111.0
	dLon := (a.Lon - b.Lon) * 111.0 * math.Cos(a.Lat*math.Pi/180)

	return math.Sqrt(dLat*dLat + dLon*dLon)
}
