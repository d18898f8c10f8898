package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"walkr/internal/domain/entity"
	domainerrors "walkr/internal/domain/errors"
	"walkr/internal/domain/service"
	"walkr/internal/usecase"
)

const unknownLocation = "Unknown Location"

// geocodeService implements the GeocodeUsecase interface on top of an
// external geocoder.
type geocodeService struct {
	geocoder service.Geocoder
	logger   *slog.Logger
}

// NewGeocodeService creates a geocoding service instance.
func NewGeocodeService(geocoder service.Geocoder, logger *slog.Logger) usecase.GeocodeUsecase {
	return &geocodeService{
		geocoder: geocoder,
		logger:   logger,
	}
}

// ParseLocation accepts either "lat,lon" or a free-text place name.
func (s *geocodeService) ParseLocation(ctx context.Context, value string) (entity.GeoPoint, error) {
	value = strings.TrimSpace(value)

	if point, ok := parseCoordinates(value); ok {
		if !point.Valid() {
			return entity.GeoPoint{}, domainerrors.ErrInvalidCoordinate
		}

		return point, nil
	}

	point, err := s.geocoder.Geocode(ctx, value)
	if err != nil {
		s.logger.Debug("geocode failed",
			slog.String("query", value),
			slog.Any("error", err),
		)

		if service.IsNoResults(err) {
			return entity.GeoPoint{}, domainerrors.ErrLocationNotFound.WithDetails(value)
		}

		return entity.GeoPoint{}, domainerrors.ErrGeocodeUnavailable
	}

	return point, nil
}

// ReverseGeocode resolves a coordinate to a display name; lookups that
// fail resolve to a placeholder rather than an error.
func (s *geocodeService) ReverseGeocode(ctx context.Context, point entity.GeoPoint) string {
	name, err := s.geocoder.ReverseGeocode(ctx, point)
	if err != nil || name == "" {
		return unknownLocation
	}

	return name
}

// parseCoordinates detects input that already looks like "lat, lon".
func parseCoordinates(value string) (entity.GeoPoint, bool) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return entity.GeoPoint{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return entity.GeoPoint{}, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return entity.GeoPoint{}, false
	}

	return entity.GeoPoint{Lat: lat, Lon: lon}, true
}
