package impl

import (
	"strings"

	"walkr/config"
	"walkr/internal/domain/entity"
)

// SafetyFilter rejects legs that traverse way-segments unsuitable for a
// recreational pedestrian loop. The oracle optimizes for cheapest path
// under the costing weights and can still route through motorway links,
// ferries, piers or loose surfaces.
type SafetyFilter struct {
	classes  map[string]struct{}
	uses     map[string]struct{}
	surfaces map[string]struct{}
}

// NewSafetyFilter builds a filter from the configured forbidden sets.
func NewSafetyFilter(cfg *config.EngineConfig) *SafetyFilter {
	return &SafetyFilter{
		classes:  toSet(cfg.ForbiddenClasses),
		uses:     toSet(cfg.ForbiddenUses),
		surfaces: toSet(cfg.ForbiddenSurfaces),
	}
}

// LegSafe reports whether every traversed edge is acceptable. A leg
// without edge metadata passes; the oracle does not always report edges.
func (f *SafetyFilter) LegSafe(edges []entity.EdgeInfo) bool {
	for _, edge := range edges {
		if _, ok := f.classes[strings.ToLower(edge.Class)]; ok {
			return false
		}
		if _, ok := f.uses[strings.ToLower(edge.Use)]; ok {
			return false
		}
		if _, ok := f.surfaces[strings.ToLower(edge.Surface)]; ok {
			return false
		}
	}

	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}

	return set
}
