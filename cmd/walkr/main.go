package main

import (
	"context"
	"log/slog"
	"os"

	"walkr/config"
	"walkr/internal/delivery"
	"walkr/internal/delivery/http"
	httpmw "walkr/internal/delivery/http/middleware"
	"walkr/internal/delivery/http/router/handler"
	deliverymw "walkr/internal/delivery/middleware"
	"walkr/internal/infra/daylight"
	"walkr/internal/infra/geocode"
	"walkr/internal/infra/gpx"
	logs "walkr/internal/infra/log"
	"walkr/internal/infra/oracle/valhalla"
	"walkr/internal/infra/weather"
	"walkr/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		valhalla.New,
		weather.New,
		daylight.New,
		geocode.New,
		gpx.NewExporter,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewEnvironmentResolver,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRouteService,
			impl.NewGeocodeService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			deliverymw.NewRequestIDMiddleware,
			deliverymw.NewLoggerMiddleware,
			httpmw.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRouteHandler,
			handler.NewGeocodeHandler,
			handler.NewExportHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
