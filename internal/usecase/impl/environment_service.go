package impl

import (
	"context"
	"log/slog"
	"time"

	"walkr/internal/domain/entity"
	"walkr/internal/domain/service"
)

// night hours for the local-time fallback when the astronomical lookup
// is unavailable
const (
	fallbackNightBefore = 6
	fallbackNightAfter  = 19
)

// EnvironmentResolver resolves the ambient context at a location. It
// must never fail the caller: every sub-lookup failure is absorbed into
// a safe default.
type EnvironmentResolver struct {
	weather  service.WeatherService
	daylight service.DaylightService
	logger   *slog.Logger
	now      func() time.Time
}

// NewEnvironmentResolver creates a resolver over the two independent
// context lookups.
func NewEnvironmentResolver(weather service.WeatherService, daylight service.DaylightService, logger *slog.Logger) *EnvironmentResolver {
	return &EnvironmentResolver{
		weather:  weather,
		daylight: daylight,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolve returns the environment context at the point. A single
// timeout-bounded attempt per sub-lookup; no retries, since the caller
// is latency-sensitive.
func (r *EnvironmentResolver) Resolve(ctx context.Context, point entity.GeoPoint) entity.EnvironmentContext {
	env := entity.DefaultEnvironment()

	weather, err := r.weather.WeatherAt(ctx, point)
	if err != nil {
		r.logger.Debug("weather lookup failed, assuming clear",
			slog.Any("error", err),
		)
	} else {
		env.Weather = weather
	}

	night, err := r.daylight.IsNightAt(ctx, point)
	if err != nil {
		// local-hour heuristic substitutes for the astronomical lookup
		hour := r.now().Hour()
		env.Night = hour < fallbackNightBefore || hour > fallbackNightAfter

		r.logger.Debug("daylight lookup failed, using local-hour fallback",
			slog.Bool("night", env.Night),
			slog.Any("error", err),
		)
	} else {
		env.Night = night
	}

	return env
}
