package service

import (
	"walkr/internal/domain/entity"
)

// TrackExporter serializes a point sequence into an interchange format
// such as GPX.
type TrackExporter interface {
	// ExportTrack renders the points as a named track and returns the
	// serialized document.
	ExportTrack(name string, points []entity.GeoPoint) ([]byte, error)

	// ContentType returns the MIME type of the exported document.
	ContentType() string
}
