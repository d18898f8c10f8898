package service

import (
	"context"

	"walkr/internal/domain/entity"
	"walkr/internal/errors"
)

// ErrNoResults marks a lookup that completed but matched nothing.
var ErrNoResults = errors.New("no geocoding results")

// IsNoResults reports whether err means the query matched nothing, as
// opposed to the geocoder being unreachable.
func IsNoResults(err error) bool {
	return errors.Is(err, ErrNoResults)
}

// Geocoder resolves place names to coordinates and back.
type Geocoder interface {
	// Geocode resolves a free-text query to a coordinate.
	Geocode(ctx context.Context, query string) (entity.GeoPoint, error)

	// ReverseGeocode resolves a coordinate to a display name.
	ReverseGeocode(ctx context.Context, point entity.GeoPoint) (string, error)
}
