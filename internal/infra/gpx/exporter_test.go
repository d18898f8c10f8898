package gpx

import (
	"strings"
	"testing"

	"walkr/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTrack(t *testing.T) {
	exporter := NewExporter()

	points := []entity.GeoPoint{
		{Lat: 25.0330, Lon: 121.5654},
		{Lat: 25.0340, Lon: 121.5664},
		{Lat: 25.0330, Lon: 121.5654},
	}

	data, err := exporter.ExportTrack("evening walk", points)
	require.NoError(t, err)

	xml := string(data)
	assert.Contains(t, xml, "<gpx")
	assert.Contains(t, xml, `creator="walkr"`)
	assert.Contains(t, xml, "evening walk")
	assert.Equal(t, 3, strings.Count(xml, "<trkpt"))
	assert.Contains(t, xml, "25.033")
	assert.Contains(t, xml, "121.5654")
}

func TestExportTrack_EmptyTrack(t *testing.T) {
	exporter := NewExporter()

	data, err := exporter.ExportTrack("empty", nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<gpx")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/gpx+xml", NewExporter().ContentType())
}
