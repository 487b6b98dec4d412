package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/inventory-service/internal/api/http"
	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/observability"
	"github.com/spec-kit/inventory-service/internal/persistence"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/service"
	"github.com/spec-kit/inventory-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewUserRoleRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	supplierRepo := repository.NewSupplierRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	stockRepo := repository.NewStockRepository(pool)
	orderRepo := repository.NewPurchaseOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	denylist := auth.NewDenylist(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Denylist:          denylist,
	})
	roleService := service.NewRoleService(userRepo, roleRepo, dispatcher, logger)
	userService := service.NewUserService(userRepo, roleRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, supplierRepo)
	stockService := service.NewStockService(stockRepo, productRepo, dispatcher, logger)
	orderService := service.NewPurchaseOrderService(service.PurchaseOrderDependencies{
		OrderRepo:    orderRepo,
		SupplierRepo: supplierRepo,
		ProductRepo:  productRepo,
		Stock:        stockService,
		Dispatcher:   dispatcher,
	}, logger)
	alertService := service.NewAlertService(dispatcher, logger, cfg.Alerts)
	worker.StartAlertWorker(alertService)

	evaluator := auth.NewEvaluator(authService.TokenManager(), roleRepo, cfg.Auth.TokenCookieName, logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, roleService, cfg.Auth.TokenCookieName),
		Users:          handlers.NewUsersHandler(userService, roleService, authService),
		Products:       handlers.NewProductsHandler(catalogService),
		Categories:     handlers.NewCategoriesHandler(catalogService),
		Suppliers:      handlers.NewSuppliersHandler(catalogService),
		Stock:          handlers.NewStockHandler(stockService),
		PurchaseOrders: handlers.NewPurchaseOrdersHandler(orderService),
		Evaluator:      evaluator,
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
