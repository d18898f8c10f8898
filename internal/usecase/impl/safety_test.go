package impl

import (
	"testing"

	"walkr/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestSafetyFilter_LegSafe(t *testing.T) {
	filter := NewSafetyFilter(testEngineConfig())

	tests := []struct {
		name  string
		edges []entity.EdgeInfo
		want  bool
	}{
		{
			name: "residential paved leg passes",
			edges: []entity.EdgeInfo{
				{Class: "residential", Use: "road", Surface: "paved_smooth"},
				{Class: "footway", Use: "footway", Surface: "paved"},
			},
			want: true,
		},
		{
			name: "forbidden class rejects",
			edges: []entity.EdgeInfo{
				{Class: "residential", Use: "road", Surface: "paved"},
				{Class: "motorway", Use: "road", Surface: "paved"},
			},
			want: false,
		},
		{
			name: "forbidden use rejects",
			edges: []entity.EdgeInfo{
				{Class: "service", Use: "ferry", Surface: "paved"},
			},
			want: false,
		},
		{
			name: "forbidden surface rejects",
			edges: []entity.EdgeInfo{
				{Class: "track", Use: "road", Surface: "gravel"},
			},
			want: false,
		},
		{
			name: "matching is case-insensitive",
			edges: []entity.EdgeInfo{
				{Class: "Motorway", Use: "road", Surface: "paved"},
			},
			want: false,
		},
		{
			name:  "no edge metadata passes",
			edges: nil,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.LegSafe(tt.edges))
		})
	}
}
