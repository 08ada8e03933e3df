package main

import (
	"context"
	"log/slog"
	"os"

	"sliceco/config"
	"sliceco/internal/delivery"
	"sliceco/internal/delivery/http"
	"sliceco/internal/delivery/http/middleware"
	"sliceco/internal/delivery/http/router/handler"
	"sliceco/internal/delivery/worker"
	"sliceco/internal/domain/entity"
	"sliceco/internal/domain/service"
	"sliceco/internal/infra/auth"
	logs "sliceco/internal/infra/log"
	"sliceco/internal/infra/logfile"
	"sliceco/internal/infra/mail"
	"sliceco/internal/infra/payment"
	"sliceco/internal/infra/storage/disk"
	"sliceco/internal/usecase/impl"

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
		injectRepo(),
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
		disk.New,
		logfile.New,
		entity.DefaultCatalog,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			disk.NewUserRepository,
			disk.NewTokenRepository,
			disk.NewCartRepository,
			disk.NewOrderRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			payment.NewClient,
			mail.NewClient,
			newOperationalLog,
		),
	)
}

// newOperationalLog exposes the durable log under its domain contract.
func newOperationalLog(l *logfile.Log) service.OperationalLog {
	return l
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewSessionService,
			impl.NewCartService,
			impl.NewCheckoutService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewSessionHandler,
			handler.NewCatalogHandler,
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
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
			fx.Annotate(
				worker.NewServer,
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
