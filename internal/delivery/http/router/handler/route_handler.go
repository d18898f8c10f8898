package handler

import (
	"log/slog"
	"net/http"

	"walkr/internal/delivery/http/response"
	"walkr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RouteUC   usecase.RouteUsecase
	GeocodeUC usecase.GeocodeUsecase
	Logger    *slog.Logger
}

// RouteHandler holds dependencies for routing-related handlers
type RouteHandler struct {
	routeUC   usecase.RouteUsecase
	geocodeUC usecase.GeocodeUsecase
	logger    *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routeUC:   params.RouteUC,
		geocodeUC: params.GeocodeUC,
		logger:    params.Logger,
	}
}

// RouteRequest represents the query parameters for route selection.
// Start and end accept either "lat,lon" or a free-text place name.
type RouteRequest struct {
	Start string `query:"start" validate:"required"`
	End   string `query:"end" validate:"required"`
}

// LoopRequest represents the query parameters for loop synthesis
type LoopRequest struct {
	Center   string  `query:"center" validate:"required"`
	TargetKm float64 `query:"target_km" validate:"required,gt=0"`
}

// GetRoute handles direct route selection between two locations
func (h *RouteHandler) GetRoute(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
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

	return response.Success(c, http.StatusOK, best, "Route selected successfully")
}

// GetLoop handles closed-loop synthesis around a center location
func (h *RouteHandler) GetLoop(c echo.Context) error {
	var req LoopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid loop input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ctx := c.Request().Context()

	center, err := h.geocodeUC.ParseLocation(ctx, req.Center)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	loop, err := h.routeUC.SynthesizeLoop(ctx, center, req.TargetKm)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, loop, "Loop synthesized successfully")
}
