package main

import (
	"context"
	"log/slog"
	"os"

	"creatorkit/config"
	"creatorkit/internal/delivery"
	"creatorkit/internal/delivery/http"
	httpmiddleware "creatorkit/internal/delivery/http/middleware"
	"creatorkit/internal/delivery/http/router/handler"
	deliverymiddleware "creatorkit/internal/delivery/middleware"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/infra/auth"
	logs "creatorkit/internal/infra/log"
	"creatorkit/internal/infra/notification"
	"creatorkit/internal/infra/persistence/postgres"
	"creatorkit/internal/infra/platform"
	"creatorkit/internal/infra/platform/instagram"
	"creatorkit/internal/infra/platform/tiktok"
	"creatorkit/internal/infra/vault"
	"creatorkit/internal/usecase/impl"

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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewSocialAccountRepository,
			postgres.NewSnapshotRepository,
			postgres.NewProfileRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			vault.New,
			notification.NewTelegramSender,
			newPlatformRegistry,
		),
	)
}

// newPlatformRegistry assembles the per-platform clients behind the registry.
func newPlatformRegistry(cfg *config.Config) (service.PlatformRegistry, error) {
	igClient, err := instagram.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return platform.NewRegistry(igClient, tiktok.NewClient()), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewLinkerService,
			impl.NewRefreshService,
			impl.NewSyncService,
			impl.NewDigestService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewCronMiddleware,
			httpmiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSocialHandler,
			handler.NewCronHandler,
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
