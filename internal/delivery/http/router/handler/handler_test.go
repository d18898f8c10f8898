package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"walkr/internal/delivery/http/validator"
	"walkr/internal/domain/entity"
	domainerrors "walkr/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRouteUC returns canned engine results.
type stubRouteUC struct {
	best    *entity.ScoredCandidate
	bestErr error
	loop    *entity.ScoredCandidate
	loopErr error
}

func (s *stubRouteUC) SelectBest(_ context.Context, _, _ entity.GeoPoint) (*entity.ScoredCandidate, error) {
	return s.best, s.bestErr
}

func (s *stubRouteUC) SynthesizeLoop(_ context.Context, _ entity.GeoPoint, _ float64) (*entity.ScoredCandidate, error) {
	return s.loop, s.loopErr
}

// stubGeocodeUC resolves every location to a fixed point.
type stubGeocodeUC struct {
	point entity.GeoPoint
	err   error
	name  string
}

func (s *stubGeocodeUC) ParseLocation(_ context.Context, _ string) (entity.GeoPoint, error) {
	return s.point, s.err
}

func (s *stubGeocodeUC) ReverseGeocode(_ context.Context, _ entity.GeoPoint) string {
	return s.name
}

// stubExporter records the exported track.
type stubExporter struct {
	data []byte
	err  error
}

func (s *stubExporter) ExportTrack(_ string, _ []entity.GeoPoint) ([]byte, error) {
	return s.data, s.err
}

func (s *stubExporter) ContentType() string {
	return "application/gpx+xml"
}

func newEchoContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func sampleCandidate() *entity.ScoredCandidate {
	return &entity.ScoredCandidate{
		PathCandidate: entity.PathCandidate{
			ProfileLabel: "scenic",
			Points: []entity.GeoPoint{
				{Lat: 25.0330, Lon: 121.5654},
				{Lat: 25.0340, Lon: 121.5664},
			},
			LengthKm: 5.2,
		},
		Score: 1.96,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestRouteHandler_GetRoute(t *testing.T) {
	h := NewRouteHandler(RouteHandlerParams{
		RouteUC:   &stubRouteUC{best: sampleCandidate()},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25.0330, Lon: 121.5654}},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/route?start=25.0330,121.5654&end=25.0478,121.5170")

	require.NoError(t, h.GetRoute(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "scenic", data["profile"])
	assert.Equal(t, 5.2, data["length_km"])
}

func TestRouteHandler_GetRoute_MissingParams(t *testing.T) {
	h := NewRouteHandler(RouteHandlerParams{
		RouteUC:   &stubRouteUC{},
		GeocodeUC: &stubGeocodeUC{},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/route?start=25.0330,121.5654")

	require.NoError(t, h.GetRoute(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteHandler_GetRoute_NoRoute(t *testing.T) {
	h := NewRouteHandler(RouteHandlerParams{
		RouteUC:   &stubRouteUC{bestErr: domainerrors.ErrNoRouteFound},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25, Lon: 121}},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/route?start=a&end=b")

	require.NoError(t, h.GetRoute(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "NO_ROUTE_FOUND", errInfo["code"])
}

func TestRouteHandler_GetLoop(t *testing.T) {
	h := NewRouteHandler(RouteHandlerParams{
		RouteUC:   &stubRouteUC{loop: sampleCandidate()},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25, Lon: 121}},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/loop?center=25.0330,121.5654&target_km=5")

	require.NoError(t, h.GetLoop(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteHandler_GetLoop_RejectsNonPositiveTarget(t *testing.T) {
	h := NewRouteHandler(RouteHandlerParams{
		RouteUC:   &stubRouteUC{loop: sampleCandidate()},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25, Lon: 121}},
		Logger:    testLogger(),
	})

	for _, target := range []string{"/loop?center=x&target_km=0", "/loop?center=x&target_km=-2", "/loop?center=x"} {
		c, rec := newEchoContext(t, target)

		require.NoError(t, h.GetLoop(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGeocodeHandler_Geocode(t *testing.T) {
	h := NewGeocodeHandler(GeocodeHandlerParams{
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25.0478, Lon: 121.5170}},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/geocode?q=Taipei+Main+Station")

	require.NoError(t, h.Geocode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, 25.0478, data["lat"])
	assert.Equal(t, 121.5170, data["lon"])
}

func TestGeocodeHandler_Geocode_NotFound(t *testing.T) {
	h := NewGeocodeHandler(GeocodeHandlerParams{
		GeocodeUC: &stubGeocodeUC{err: domainerrors.ErrLocationNotFound},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/geocode?q=nowhere")

	require.NoError(t, h.Geocode(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeocodeHandler_ReverseGeocode(t *testing.T) {
	h := NewGeocodeHandler(GeocodeHandlerParams{
		GeocodeUC: &stubGeocodeUC{
			point: entity.GeoPoint{Lat: 25.0330, Lon: 121.5654},
			name:  "信義區, 台北市",
		},
		Logger: testLogger(),
	})

	c, rec := newEchoContext(t, "/reverse_geocode?coords=25.0330,121.5654")

	require.NoError(t, h.ReverseGeocode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "信義區, 台北市", data["name"])
}

func TestExportHandler_ExportGPX(t *testing.T) {
	h := NewExportHandler(ExportHandlerParams{
		RouteUC:   &stubRouteUC{best: sampleCandidate()},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25, Lon: 121}},
		Exporter:  &stubExporter{data: []byte("<gpx></gpx>")},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/export_gpx?start=a&end=b")

	require.NoError(t, h.ExportGPX(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/gpx+xml", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Equal(t, "<gpx></gpx>", rec.Body.String())
}

func TestExportHandler_ExportGPX_ExporterFailure(t *testing.T) {
	h := NewExportHandler(ExportHandlerParams{
		RouteUC:   &stubRouteUC{best: sampleCandidate()},
		GeocodeUC: &stubGeocodeUC{point: entity.GeoPoint{Lat: 25, Lon: 121}},
		Exporter:  &stubExporter{err: assert.AnError},
		Logger:    testLogger(),
	})

	c, rec := newEchoContext(t, "/export_gpx?start=a&end=b")

	require.NoError(t, h.ExportGPX(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	errInfo := body["error"].(map[string]any)
	assert.Equal(t, "TRACK_EXPORT_FAILED", errInfo["code"])
}

func TestHealthCheck(t *testing.T) {
	c, rec := newEchoContext(t, "/health")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}
