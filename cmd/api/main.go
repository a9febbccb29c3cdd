package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/http"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/http/handlers"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/config"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/events"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/geo"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/observability"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/persistence"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/repository"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/service"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wardTable, err := geo.LoadWardTable(cfg.Geo.WardsGeoJSONPath, cfg.Geo.WardZonesPath)
	if err != nil {
		logger.Fatal("failed to load ward data", zap.Error(err))
	}
	logger.Info("ward data loaded",
		zap.Int("polygons", len(wardTable.Polygons())),
		zap.Int("departments", len(wardTable.DepartmentNames())))

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	bounds := geo.Bounds{
		North: cfg.ServiceArea.North,
		South: cfg.ServiceArea.South,
		East:  cfg.ServiceArea.East,
		West:  cfg.ServiceArea.West,
	}

	dispatcher := events.NewInMemoryDispatcher()
	reportRepo := repository.NewReportRepository(pg.PoolHandle())

	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo: reportRepo,
		Resolver:   geo.NewResolver(wardTable),
		Bounds:     bounds,
		Dispatcher: dispatcher,
	})
	analyticsService := service.NewAnalyticsService(reportRepo, redis.Client, cfg.Analytics.CacheTTL(), logger)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	identity := auth.NewMiddleware(tokenManager)
	authService := service.NewAuthService(tokenManager, cfg.Auth.OfficerPasswordHash)

	metrics := observability.NewMetrics()

	// UnescapePath: ward names in /api/reports/ward/:wardName contain
	// spaces and must arrive decoded.
	app := fiber.New(fiber.Config{UnescapePath: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Reports:   handlers.NewReportsHandler(reportService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Wards:     handlers.NewWardsHandler(wardTable),
		Identity:  identity,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
