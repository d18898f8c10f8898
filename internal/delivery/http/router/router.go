// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"walkr/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RouteHandler   *handler.RouteHandler
	GeocodeHandler *handler.GeocodeHandler
	ExportHandler  *handler.ExportHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler   *handler.RouteHandler
	geocodeHandler *handler.GeocodeHandler
	exportHandler  *handler.ExportHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:   params.RouteHandler,
		geocodeHandler: params.GeocodeHandler,
		exportHandler:  params.ExportHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Routing endpoints
	e.GET("/route", r.routeHandler.GetRoute)
	e.GET("/loop", r.routeHandler.GetLoop)

	// Geocoding endpoints
	e.GET("/geocode", r.geocodeHandler.Geocode)
	e.GET("/reverse_geocode", r.geocodeHandler.ReverseGeocode)

	// Export endpoints
	e.GET("/export_gpx", r.exportHandler.ExportGPX)
}
