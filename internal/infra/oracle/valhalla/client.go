// Package valhalla adapts a Valhalla routing server to the RoutingOracle
// capability. The server is treated as an opaque oracle: two locations,
// a costing model and per-profile costing options go in, one decoded
// pedestrian path comes out.
package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"walkr/config"
	"walkr/internal/domain/entity"
	"walkr/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/twpayne/go-polyline"
	"golang.org/x/sync/semaphore"
)

// polyline6Codec decodes Valhalla's precision-6 shape encoding.
var polyline6Codec = polyline.Codec{Dim: 2, Scale: 1e6}

type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// filters is the request-level edge exclusion sent with every call,
	// built once from the configured forbidden way markings
	filters *requestFilters

	// sem caps in-flight oracle calls across all concurrent requests so
	// profile fan-out cannot overwhelm the Valhalla server
	sem *semaphore.Weighted
}

// New creates a Valhalla-backed routing oracle.
func New(cfg *config.Config, logger *slog.Logger) (service.RoutingOracle, error) {
	if cfg.Valhalla == nil || cfg.Valhalla.URL == "" {
		return nil, errors.New("valhalla url is required")
	}

	return &client{
		baseURL: cfg.Valhalla.URL,
		httpClient: &http.Client{
			Timeout: cfg.Valhalla.Timeout,
		},
		logger:  logger,
		filters: buildFilters(cfg.Engine),
		sem:     semaphore.NewWeighted(cfg.Valhalla.MaxConcurrent),
	}, nil
}

// buildFilters hard-blocks forbidden way markings on the server side so
// the oracle never spends time on legs the post-route checks would
// reject anyway. The decoded edges are still re-checked after routing.
func buildFilters(engine *config.EngineConfig) *requestFilters {
	if engine == nil {
		return nil
	}
	if len(engine.ForbiddenClasses) == 0 && len(engine.ForbiddenUses) == 0 && len(engine.ForbiddenSurfaces) == 0 {
		return nil
	}

	return &requestFilters{
		Exclude: excludeFilter{
			Class:   engine.ForbiddenClasses,
			Use:     engine.ForbiddenUses,
			Surface: engine.ForbiddenSurfaces,
		},
	}
}

type location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type directionsOptions struct {
	Units   string   `json:"units"`
	Actions []string `json:"actions,omitempty"`
}

type excludeFilter struct {
	Class   []string `json:"class,omitempty"`
	Use     []string `json:"use,omitempty"`
	Surface []string `json:"surface,omitempty"`
}

type requestFilters struct {
	Exclude excludeFilter `json:"exclude"`
}

type routeRequest struct {
	Locations         []location                    `json:"locations"`
	Costing           string                        `json:"costing"`
	CostingOptions    map[string]map[string]float64 `json:"costing_options,omitempty"`
	DirectionsOptions directionsOptions             `json:"directions_options"`
	Filters           *requestFilters               `json:"filters,omitempty"`
}

type edge struct {
	Class   string `json:"class"`
	Use     string `json:"use"`
	Surface string `json:"surface"`
}

type leg struct {
	Shape string `json:"shape"`
	Edges []edge `json:"edges"`
}

type summary struct {
	Length     float64 `json:"length"` // kilometers (units requested)
	Time       float64 `json:"time"`   // seconds
	MaxUpSlope float64 `json:"max_up_slope"`
}

type trip struct {
	Legs    []leg   `json:"legs"`
	Summary summary `json:"summary"`
}

type routeResponse struct {
	Trip *trip `json:"trip"`
}

// Route requests a single path between two points under the given cost
// weights. Failures and timeouts surface as ErrOracleUnavailable so the
// engine can skip the profile; a decoded shape with fewer than 2 usable
// points surfaces as ErrInvalidGeometry.
func (c *client) Route(ctx context.Context, origin, destination entity.GeoPoint, mode string, weights map[string]float64) (*entity.PathCandidate, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(service.ErrOracleUnavailable, err.Error())
	}
	defer c.sem.Release(1)

	reqBody := routeRequest{
		Locations: []location{
			{Lat: origin.Lat, Lon: origin.Lon},
			{Lat: destination.Lat, Lon: destination.Lon},
		},
		Costing: mode,
		DirectionsOptions: directionsOptions{
			Units: "kilometers",
			// edge-level metadata is required by the safety filter
			Actions: []string{"edges"},
		},
		Filters: c.filters,
	}
	if len(weights) > 0 {
		reqBody.CostingOptions = map[string]map[string]float64{
			mode: weights,
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "marshal route request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/route", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build route request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(service.ErrOracleUnavailable, "valhalla request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(service.ErrOracleUnavailable, "valhalla status %d", res.StatusCode)
	}

	var parsed routeResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrapf(service.ErrOracleUnavailable, "decode valhalla response: %v", err)
	}

	if parsed.Trip == nil || len(parsed.Trip.Legs) == 0 {
		return nil, errors.WithStack(service.ErrOracleUnavailable)
	}

	// one leg per two-location request
	tripLeg := parsed.Trip.Legs[0]

	points, err := decodeShape(tripLeg.Shape)
	if err != nil {
		return nil, err
	}

	edges := make([]entity.EdgeInfo, 0, len(tripLeg.Edges))
	for _, e := range tripLeg.Edges {
		edges = append(edges, entity.EdgeInfo{
			Class:   e.Class,
			Use:     e.Use,
			Surface: e.Surface,
		})
	}

	return &entity.PathCandidate{
		Points:      points,
		LengthKm:    parsed.Trip.Summary.Length,
		DurationSec: parsed.Trip.Summary.Time,
		// 0 when the server build does not report slope
		MaxUpSlope: parsed.Trip.Summary.MaxUpSlope,
		Edges:      edges,
	}, nil
}

// decodeShape decodes a precision-6 polyline into valid coordinates.
func decodeShape(shape string) ([]entity.GeoPoint, error) {
	coords, _, err := polyline6Codec.DecodeCoords([]byte(shape))
	if err != nil {
		return nil, errors.Wrapf(service.ErrInvalidGeometry, "decode shape: %v", err)
	}

	points := make([]entity.GeoPoint, 0, len(coords))
	for _, coord := range coords {
		p := entity.GeoPoint{Lat: coord[0], Lon: coord[1]}
		if p.Valid() {
			points = append(points, p)
		}
	}

	if len(points) < 2 {
		return nil, errors.WithStack(service.ErrInvalidGeometry)
	}

	return points, nil
}
