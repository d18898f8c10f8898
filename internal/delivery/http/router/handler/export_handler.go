package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"walkr/internal/delivery/http/response"
	domainerrors "walkr/internal/domain/errors"
	"walkr/internal/domain/service"
	"walkr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ExportHandlerParams holds dependencies for ExportHandler, injected by Fx.
type ExportHandlerParams struct {
	fx.In

	RouteUC   usecase.RouteUsecase
	GeocodeUC usecase.GeocodeUsecase
	Exporter  service.TrackExporter
	Logger    *slog.Logger
}

// ExportHandler holds dependencies for track export handlers
type ExportHandler struct {
	routeUC   usecase.RouteUsecase
	geocodeUC usecase.GeocodeUsecase
	exporter  service.TrackExporter
	logger    *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler
func NewExportHandler(params ExportHandlerParams) *ExportHandler {
	return &ExportHandler{
		routeUC:   params.RouteUC,
		geocodeUC: params.GeocodeUC,
		exporter:  params.Exporter,
		logger:    params.Logger,
	}
}

// ExportRequest represents the query parameters for GPX export
type ExportRequest struct {
	Start string `query:"start" validate:"required"`
	End   string `query:"end" validate:"required"`
}

// ExportGPX selects the best route between two locations and streams it
// back as a downloadable GPX track
func (h *ExportHandler) ExportGPX(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid export input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()

	origin, err := h.geocodeUC.ParseLocation(ctx, req.Start)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	destination, err := h.geocodeUC.ParseLocation(ctx, req.End)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	best, err := h.routeUC.SelectBest(ctx, origin, destination)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	trackName := fmt.Sprintf("walkr %s %s", best.ProfileLabel, time.Now().UTC().Format("2006-01-02"))

	data, err := h.exporter.ExportTrack(trackName, best.Points)
	if err != nil {
		h.logger.Error("GPX export failed", slog.Any("error", err))

		return response.HandleAppError(c, domainerrors.ErrTrackExportFailed.WithDetails(err.Error()))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="route.gpx"`)

	return c.Blob(http.StatusOK, h.exporter.ContentType(), data)
}
