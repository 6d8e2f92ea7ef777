package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/routeledger/routeledger/internal/app"
	"github.com/routeledger/routeledger/internal/auth"
	"github.com/routeledger/routeledger/internal/expenses"
	"github.com/routeledger/routeledger/internal/export"
	"github.com/routeledger/routeledger/internal/ledger"
	"github.com/routeledger/routeledger/internal/masterdata/accounts"
	"github.com/routeledger/routeledger/internal/masterdata/categories"
	"github.com/routeledger/routeledger/internal/masterdata/dockets"
	"github.com/routeledger/routeledger/internal/masterdata/drivers"
	"github.com/routeledger/routeledger/internal/masterdata/parties"
	"github.com/routeledger/routeledger/internal/masterdata/vehicles"
	"github.com/routeledger/routeledger/internal/platform/cache"
	"github.com/routeledger/routeledger/internal/platform/db"
	"github.com/routeledger/routeledger/internal/settlement"
	"github.com/routeledger/routeledger/internal/trips"
	"github.com/routeledger/routeledger/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionStore := auth.NewSessionStore(redisClient, cfg.SessionTTL)
	authService := auth.NewService(auth.NewRepository(pool), sessionStore)
	authHandler := auth.NewHandler(logger, authService)

	vehiclesService := vehicles.NewService(vehicles.NewRepository(pool))
	driversService := drivers.NewService(drivers.NewRepository(pool))
	partiesService := parties.NewService(parties.NewRepository(pool))
	categoriesService := categories.NewService(categories.NewRepository(pool))
	accountsService := accounts.NewService(accounts.NewRepository(pool))
	docketsService := dockets.NewService(dockets.NewRepository(pool))

	ledgerService := ledger.NewService(ledger.NewRepository(pool), accountsService)
	tripsService := trips.NewService(trips.NewRepository(pool), vehiclesService, driversService, partiesService)
	expensesService := expenses.NewService(expenses.NewRepository(pool), tripsService, categoriesService, vehiclesService, partiesService, ledgerService)
	settlementService := settlement.NewService(tripsService, ledgerService, expensesService, categoriesService, cfg.AllowPartialSettlement)
	exportService := export.NewService(ledgerService, settlementService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthService:       authService,
		AuthHandler:       authHandler,
		VehiclesHandler:   vehicles.NewHandler(logger, vehiclesService),
		DriversHandler:    drivers.NewHandler(logger, driversService),
		PartiesHandler:    parties.NewHandler(logger, partiesService),
		CategoriesHandler: categories.NewHandler(logger, categoriesService),
		AccountsHandler:   accounts.NewHandler(logger, accountsService),
		DocketsHandler:    dockets.NewHandler(logger, docketsService),
		TripsHandler:      trips.NewHandler(logger, tripsService),
		ExpensesHandler:   expenses.NewHandler(logger, expensesService),
		LedgerHandler:     ledger.NewHandler(logger, ledgerService),
		SettlementHandler: settlement.NewHandler(logger, settlementService),
		ExportHandler:     export.NewHandler(logger, exportService),
		JobsHandler:       jobs.NewHandler(inspector, redisClient, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
