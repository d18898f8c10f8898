// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/paulmach/orb"
)

// GeoPoint is an immutable geographic coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point converts the coordinate into an orb.Point (lon/lat order).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Valid reports whether the coordinate lies within Earth bounds.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) ||
		math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}

	return p.Lat >= -90 && p.Lat <= 90 &&
		p.Lon >= -180 && p.Lon <= 180
}

// EdgeInfo describes a single traversed way-segment as reported by the
// routing oracle. Used by the loop synthesizer's safety filter.
type EdgeInfo struct {
	Class   string `json:"class"`
	Use     string `json:"use"`
	Surface string `json:"surface"`
}

// PathCandidate is one oracle-produced path under a single cost profile.
type PathCandidate struct {
	ProfileLabel string     `json:"profile"`
	Points       []GeoPoint `json:"points"`
	LengthKm     float64    `json:"length_km"`
	DurationSec  float64    `json:"duration_sec"`
	MaxUpSlope   float64    `json:"max_up_slope"` // 0 when the oracle does not report it
	Edges        []EdgeInfo `json:"-"`
}

// RouteSummary is the scorer's view of a candidate. Zero values are
// legal and mean "not reported".
type RouteSummary struct {
	LengthKm   float64
	MaxUpSlope float64
}

// Summary projects the candidate into the scorer input.
func (c *PathCandidate) Summary() RouteSummary {
	return RouteSummary{
		LengthKm:   c.LengthKm,
		MaxUpSlope: c.MaxUpSlope,
	}
}

// ScoredCandidate is a PathCandidate together with its desirability
// score and the environment it was scored under. Ephemeral; discarded
// once selection completes.
type ScoredCandidate struct {
	PathCandidate
	Score       float64            `json:"score"`
	Environment EnvironmentContext `json:"environment"`
}
