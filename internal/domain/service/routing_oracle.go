package service

import (
	"context"

	"walkr/internal/domain/entity"
	"walkr/internal/errors"
)

// Travel modes understood by the oracle. Only pedestrian is used today.
const (
	ModePedestrian = "pedestrian"
)

// Sentinel errors for per-call oracle failures. Both are recoverable at
// the profile/leg level and never fatal to a whole request.
var (
	// ErrOracleUnavailable marks a failed or timed-out oracle call.
	ErrOracleUnavailable = errors.New("routing oracle unavailable")

	// ErrInvalidGeometry marks an oracle response whose decoded shape is
	// unusable (fewer than 2 points or malformed polyline).
	ErrInvalidGeometry = errors.New("invalid route geometry")
)

// RoutingOracle is the external pedestrian path-finding service, treated
// as a black box. Given two points, a travel mode and cost weights it
// returns one candidate path, or an error.
type RoutingOracle interface {
	// Route requests a single path from origin to destination. The
	// returned candidate always has at least 2 points and non-negative
	// length/duration. Implementations must bound the call with a
	// timeout; a timed-out call returns ErrOracleUnavailable.
	Route(ctx context.Context, origin, destination entity.GeoPoint, mode string, weights map[string]float64) (*entity.PathCandidate, error)
}
