// Package gpx serializes point sequences as GPX 1.1 tracks.
package gpx

import (
	"walkr/internal/domain/entity"
	"walkr/internal/domain/service"

	"github.com/pkg/errors"
	gpxgo "github.com/tkrajina/gpxgo/gpx"
)

const creator = "walkr"

type exporter struct{}

// NewExporter creates a GPX track exporter.
func NewExporter() service.TrackExporter {
	return &exporter{}
}

// ExportTrack renders the points as a single-segment GPX track.
func (e *exporter) ExportTrack(name string, points []entity.GeoPoint) ([]byte, error) {
	segment := gpxgo.GPXTrackSegment{
		Points: make([]gpxgo.GPXPoint, 0, len(points)),
	}
	for _, p := range points {
		segment.Points = append(segment.Points, gpxgo.GPXPoint{
			Point: gpxgo.Point{
				Latitude:  p.Lat,
				Longitude: p.Lon,
			},
		})
	}

	doc := &gpxgo.GPX{
		Version: "1.1",
		Creator: creator,
		Name:    name,
		Tracks: []gpxgo.GPXTrack{
			{
				Name:     name,
				Segments: []gpxgo.GPXTrackSegment{segment},
			},
		},
	}

	out, err := gpxgo.ToXml(doc, gpxgo.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, errors.Wrap(err, "serialize gpx")
	}

	return out, nil
}

// ContentType returns the GPX MIME type.
func (e *exporter) ContentType() string {
	return "application/gpx+xml"
}
