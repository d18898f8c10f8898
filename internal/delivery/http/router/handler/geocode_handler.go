package handler

import (
	"log/slog"
	"net/http"

	"walkr/internal/delivery/http/response"
	"walkr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// GeocodeHandlerParams holds dependencies for GeocodeHandler, injected by Fx.
type GeocodeHandlerParams struct {
	fx.In

	GeocodeUC usecase.GeocodeUsecase
	Logger    *slog.Logger
}

// GeocodeHandler holds dependencies for geocoding handlers
type GeocodeHandler struct {
	geocodeUC usecase.GeocodeUsecase
	logger    *slog.Logger
}

// NewGeocodeHandler is the constructor for GeocodeHandler
func NewGeocodeHandler(params GeocodeHandlerParams) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: params.GeocodeUC,
		logger:    params.Logger,
	}
}

// GeocodeRequest represents the query parameters for forward geocoding
type GeocodeRequest struct {
	Query string `query:"q" validate:"required"`
}

// ReverseGeocodeRequest represents the query parameters for reverse geocoding
type ReverseGeocodeRequest struct {
	Coords string `query:"coords" validate:"required"`
}

// GeocodeResponse is the resolved coordinate for a location query
type GeocodeResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ReverseGeocodeResponse is the resolved name for a coordinate
type ReverseGeocodeResponse struct {
	Name string `json:"name"`
}

// Geocode resolves a place name or "lat,lon" string to a coordinate
func (h *GeocodeHandler) Geocode(c echo.Context) error {
	var req GeocodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid geocode input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	point, err := h.geocodeUC.ParseLocation(c.Request().Context(), req.Query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, GeocodeResponse{
		Lat: point.Lat,
		Lon: point.Lon,
	}, "Location resolved successfully")
}

// ReverseGeocode resolves a coordinate to a display name
func (h *GeocodeHandler) ReverseGeocode(c echo.Context) error {
	var req ReverseGeocodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reverse geocode input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()

	point, err := h.geocodeUC.ParseLocation(ctx, req.Coords)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	name := h.geocodeUC.ReverseGeocode(ctx, point)

	return response.Success(c, http.StatusOK, ReverseGeocodeResponse{
		Name: name,
	}, "Coordinate resolved successfully")
}
