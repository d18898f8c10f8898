package impl

import (
	"context"
	"log/slog"
	"time"

	"walkr/config"
	"walkr/internal/domain/entity"
	domainerrors "walkr/internal/domain/errors"
	"walkr/internal/domain/service"
	"walkr/internal/usecase"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// routeService implements the RouteUsecase interface. It orchestrates
// the environment resolver, the cost profile builder, the routing oracle
// and the scorer. No state is shared across requests.
type routeService struct {
	oracle   service.RoutingOracle
	resolver *EnvironmentResolver
	safety   *SafetyFilter
	engine   *config.EngineConfig
	logger   *slog.Logger

	// seed produces the per-request random source for loop waypoint
	// generation; injected so loop synthesis is reproducible in tests
	seed func() int64
}

// NewRouteService creates a routing engine instance.
func NewRouteService(oracle service.RoutingOracle, resolver *EnvironmentResolver, cfg *config.Config, logger *slog.Logger) usecase.RouteUsecase {
	return NewSeededRouteService(oracle, resolver, cfg, logger, func() int64 {
		return time.Now().UnixNano()
	})
}

// NewSeededRouteService creates a routing engine with an explicit seed
// source for the loop synthesizer's random waypoint generation.
func NewSeededRouteService(oracle service.RoutingOracle, resolver *EnvironmentResolver, cfg *config.Config, logger *slog.Logger, seed func() int64) usecase.RouteUsecase {
	return &routeService{
		oracle:   oracle,
		resolver: resolver,
		safety:   NewSafetyFilter(cfg.Engine),
		engine:   cfg.Engine,
		logger:   logger,
		seed:     seed,
	}
}

// SelectBest requests one candidate per cost profile, scores the
// survivors and returns the max-score candidate. Per-profile failures
// are skipped; only total exhaustion surfaces to the caller.
func (s *routeService) SelectBest(ctx context.Context, origin, destination entity.GeoPoint) (*entity.ScoredCandidate, error) {
	if !origin.Valid() || !destination.Valid() {
		return nil, domainerrors.ErrInvalidCoordinate
	}

	env := s.resolver.Resolve(ctx, origin)
	profiles := BuildCostProfiles(env)

	// Profile evaluations are independent; fan out and reduce by score.
	// The slice keeps build order so tie-breaking stays deterministic.
	candidates := make([]*entity.ScoredCandidate, len(profiles))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		group.Go(func() error {
			candidate, err := s.oracle.Route(groupCtx, origin, destination, service.ModePedestrian, profile.CloneWeights())
			if err != nil {
				s.logger.Debug("profile skipped",
					slog.String("profile", profile.Label),
					slog.Any("error", err),
				)

				return nil
			}

			candidate.ProfileLabel = profile.Label
			candidates[i] = &entity.ScoredCandidate{
				PathCandidate: *candidate,
				Score:         ScoreRoute(profile.Label, env, candidate.Summary()),
				Environment:   env,
			}

			return nil
		})
	}

	// Workers swallow their own failures, so Wait only observes context
	// cancellation through the oracle calls.
	_ = group.Wait()

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "route selection canceled")
	}

	best := pickBest(candidates)
	if best == nil {
		return nil, domainerrors.ErrNoRouteFound
	}

	s.logger.Info("route selected",
		slog.String("profile", best.ProfileLabel),
		slog.Float64("score", best.Score),
		slog.Float64("length_km", best.LengthKm),
	)

	return best, nil
}

// pickBest returns the first maximum-score candidate in build order.
func pickBest(candidates []*entity.ScoredCandidate) *entity.ScoredCandidate {
	var best *entity.ScoredCandidate
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if best == nil || candidate.Score > best.Score {
			best = candidate
		}
	}

	return best
}
