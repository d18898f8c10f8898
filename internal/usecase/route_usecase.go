package usecase

import (
	"context"

	"walkr/internal/domain/entity"
)

// RouteUsecase is the engine API exposed to the delivery layer. Each call
// is stateless; the outcome is always a scored winner or a typed failure,
// never partial geometry.
type RouteUsecase interface {
	// SelectBest picks the best direct pedestrian route between two
	// points across all cost profiles. Returns ErrNoRouteFound when no
	// profile produced a usable candidate.
	SelectBest(ctx context.Context, origin, destination entity.GeoPoint) (*entity.ScoredCandidate, error)

	// SynthesizeLoop builds a closed walking loop around center of
	// approximately targetKm length. Returns ErrNoLoopFound when no
	// profile attempt survived validation.
	SynthesizeLoop(ctx context.Context, center entity.GeoPoint, targetKm float64) (*entity.ScoredCandidate, error)
}
