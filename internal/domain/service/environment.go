package service

import (
	"context"

	"walkr/internal/domain/entity"
)

// WeatherService resolves the coarse weather class at a location.
type WeatherService interface {
	// WeatherAt returns the current weather bucket at the point. A single
	// timeout-bounded attempt; callers fall back to clear on error.
	WeatherAt(ctx context.Context, point entity.GeoPoint) (entity.WeatherClass, error)
}

// DaylightService resolves the day/night state at a location.
type DaylightService interface {
	// IsNightAt reports whether it is currently night at the point.
	// Callers substitute a local-hour heuristic on error.
	IsNightAt(ctx context.Context, point entity.GeoPoint) (bool, error)
}
