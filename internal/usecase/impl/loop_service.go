package impl

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"walkr/internal/domain/entity"
	domainerrors "walkr/internal/domain/errors"
	"walkr/internal/domain/service"

	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const kmPerDegreeLat = 111.0

// SynthesizeLoop builds a closed walking loop around center by chaining
// oracle legs through procedurally generated waypoints, once per cost
// profile, and keeping the best surviving attempt. Per-profile attempts
// run in parallel; the legs within one attempt are strictly sequential
// since each leg starts where the previous one ended.
func (s *routeService) SynthesizeLoop(ctx context.Context, center entity.GeoPoint, targetKm float64) (*entity.ScoredCandidate, error) {
	if !center.Valid() {
		return nil, domainerrors.ErrInvalidCoordinate
	}
	if targetKm <= 0 {
		return nil, domainerrors.ErrInvalidTargetDistance
	}

	env := s.resolver.Resolve(ctx, center)
	profiles := BuildCostProfiles(env)

	rng := rand.New(rand.NewSource(s.seed()))
	waypoints := generateWaypoints(rng, center, targetKm, s.engine.MinLoopRadiusKm)

	attempts := make([]*entity.ScoredCandidate, len(profiles))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		group.Go(func() error {
			attempts[i] = s.attemptLoop(groupCtx, center, waypoints, profile, env, targetKm)

			return nil
		})
	}
	_ = group.Wait()

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "loop synthesis canceled")
	}

	best := pickBest(attempts)
	if best == nil {
		return nil, domainerrors.ErrNoLoopFound
	}

	s.logger.Info("loop synthesized",
		slog.String("profile", best.ProfileLabel),
		slog.Float64("target_km", targetKm),
		slog.Float64("length_km", best.LengthKm),
		slog.Float64("score", best.Score),
	)

	return best, nil
}

// attemptLoop runs one profile's loop construction. Any failure along
// the way discards the whole attempt for this profile, never the whole
// request.
func (s *routeService) attemptLoop(ctx context.Context, center entity.GeoPoint, waypoints []entity.GeoPoint, profile entity.CostProfile, env entity.EnvironmentContext, targetKm float64) *entity.ScoredCandidate {
	var points []entity.GeoPoint

	prev := center
	for _, waypoint := range waypoints {
		leg, err := s.oracle.Route(ctx, prev, waypoint, service.ModePedestrian, profile.CloneWeights())
		if err != nil {
			s.logger.Debug("loop attempt abandoned",
				slog.String("profile", profile.Label),
				slog.Any("error", err),
			)

			return nil
		}

		if !s.safety.LegSafe(leg.Edges) {
			return nil
		}

		legPoints := validPoints(leg.Points)
		if len(legPoints) < 2 {
			return nil
		}

		// teleport-jump protection: discontinuous geometry or an
		// implausibly long hop between adjacent waypoints
		legKm, contiguous := s.walkLength(legPoints)
		if !contiguous || legKm > s.engine.MaxLegKm {
			return nil
		}

		points = append(points, legPoints...)
		prev = waypoint
	}

	// closing leg back to center; safety-filtered like every other leg
	closing, err := s.oracle.Route(ctx, prev, center, service.ModePedestrian, profile.CloneWeights())
	if err != nil {
		return nil
	}
	if !s.safety.LegSafe(closing.Edges) {
		return nil
	}
	points = append(points, validPoints(closing.Points)...)

	points = dedupePoints(points, s.engine.DedupePrecision)
	if len(points) < s.engine.MinLoopPoints {
		return nil
	}

	loopKm := s.loopLength(points)

	score := ScoreRoute(profile.Label, env, entity.RouteSummary{LengthKm: loopKm})
	// penalize over- and undershoot of the requested distance equally
	score -= math.Abs(loopKm - targetKm)

	return &entity.ScoredCandidate{
		PathCandidate: entity.PathCandidate{
			ProfileLabel: profile.Label,
			Points:       points,
			LengthKm:     loopKm,
		},
		Score:       score,
		Environment: env,
	}
}

// walkLength sums great-circle distances over consecutive points and
// reports whether every single step stays under the teleport threshold.
func (s *routeService) walkLength(points []entity.GeoPoint) (km float64, contiguous bool) {
	for i := 0; i < len(points)-1; i++ {
		step := geo.DistanceHaversine(points[i].Point(), points[i+1].Point()) / 1000
		if step > s.engine.TeleportThresholdKm {
			return 0, false
		}
		km += step
	}

	return km, true
}

// loopLength sums great-circle distances over the final assembled loop,
// skipping any pair above the teleport threshold. Such pairs should have
// been filtered per leg already; this keeps one slipping through (for
// instance across a leg boundary) from corrupting the total.
func (s *routeService) loopLength(points []entity.GeoPoint) float64 {
	var km float64
	for i := 0; i < len(points)-1; i++ {
		step := geo.DistanceHaversine(points[i].Point(), points[i+1].Point()) / 1000
		if step > s.engine.TeleportThresholdKm {
			continue
		}
		km += step
	}

	return km
}

// generateWaypoints produces an irregular polygon of turnaround points
// surrounding center. The base radius is chosen so a roughly circular
// loop of that radius has circumference close to targetKm.
func generateWaypoints(rng *rand.Rand, center entity.GeoPoint, targetKm, minRadiusKm float64) []entity.GeoPoint {
	radius := math.Max(minRadiusKm, targetKm/(2*math.Pi))

	bearings := generateBearings(rng)

	waypoints := make([]entity.GeoPoint, 0, len(bearings))
	for _, bearing := range bearings {
		distKm := radius * (0.75 + rng.Float64()*0.55)
		waypoints = append(waypoints, project(center, bearing, distKm))
	}

	return waypoints
}

// generateBearings walks a random angle forward in random increments of
// [40°, 70°] until the cumulative span exceeds a random threshold in
// [380°, 460°]. Spanning more than a full circle keeps the loop from
// closing too early and the point density irregular. Falls back to six
// evenly spaced jittered bearings when the walk produced fewer than 5.
func generateBearings(rng *rand.Rand) []float64 {
	var bearings []float64

	angle := rng.Float64() * 360
	maxSpan := 380 + rng.Float64()*80

	for angle < maxSpan {
		bearings = append(bearings, math.Mod(angle, 360))
		angle += 40 + rng.Float64()*30
	}

	if len(bearings) < 5 {
		bearings = bearings[:0]
		for i := range 6 {
			jitter := rng.Float64()*30 - 15
			bearings = append(bearings, math.Mod(float64(i*60)+jitter+360, 360))
		}
	}

	return bearings
}

// project offsets center along a bearing using an equirectangular
// approximation: 1° latitude is ~111 km, 1° longitude is 111 km scaled
// by cos(latitude), clamped away from zero near the poles.
func project(center entity.GeoPoint, bearingDeg, distKm float64) entity.GeoPoint {
	theta := bearingDeg * math.Pi / 180

	dLat := (distKm / kmPerDegreeLat) * math.Cos(theta)

	lonScale := kmPerDegreeLat * math.Max(0.25, math.Cos(center.Lat*math.Pi/180))
	dLon := (distKm / lonScale) * math.Sin(theta)

	return entity.GeoPoint{Lat: center.Lat + dLat, Lon: center.Lon + dLon}
}

// validPoints drops coordinates outside Earth bounds.
func validPoints(points []entity.GeoPoint) []entity.GeoPoint {
	kept := make([]entity.GeoPoint, 0, len(points))
	for _, p := range points {
		if p.Valid() {
			kept = append(kept, p)
		}
	}

	return kept
}

// dedupePoints collapses consecutive points that round to the same
// coordinate at the given decimal precision, so degenerate zero-length
// segments do not inflate the point count.
func dedupePoints(points []entity.GeoPoint, precision int) []entity.GeoPoint {
	if len(points) == 0 {
		return points
	}

	factor := math.Pow(10, float64(precision))
	key := func(p entity.GeoPoint) [2]int64 {
		return [2]int64{
			int64(math.Round(p.Lat * factor)),
			int64(math.Round(p.Lon * factor)),
		}
	}

	kept := points[:1:1]
	prev := key(points[0])
	for _, p := range points[1:] {
		k := key(p)
		if k == prev {
			continue
		}
		kept = append(kept, p)
		prev = k
	}

	return kept
}
