package usecase

import (
	"context"

	"walkr/internal/domain/entity"
)

// GeocodeUsecase resolves user-supplied location strings.
type GeocodeUsecase interface {
	// ParseLocation accepts either "lat,lon" or a free-text place name
	// and resolves it to a coordinate.
	ParseLocation(ctx context.Context, value string) (entity.GeoPoint, error)

	// ReverseGeocode resolves a coordinate to a human-readable address.
	// Never fails; unknown locations resolve to a placeholder name.
	ReverseGeocode(ctx context.Context, point entity.GeoPoint) string
}
