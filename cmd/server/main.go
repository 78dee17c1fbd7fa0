package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawn-backend/internal/cache"
	"pawn-backend/internal/config"
	"pawn-backend/internal/database"
	"pawn-backend/internal/db"
	"pawn-backend/internal/handlers"
	"pawn-backend/internal/health"
	h "pawn-backend/internal/http"
	"pawn-backend/internal/logger"
	"pawn-backend/internal/middleware"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/services"
	"pawn-backend/internal/storage"
	"pawn-backend/migrations"
)

func main() {
	cfg := config.Load()
	logger.Configure(cfg.Log.Level, nil)
	log := logger.Component("main")

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database unavailable: %v", err)
	}
	defer pool.Close()

	// Redis is optional; every cache call is a no-op without it
	if err := cache.Init(cfg); err != nil {
		log.WithError(err).Warn("Redis cache unavailable, continuing without cache")
	} else if cache.GetClient() != nil {
		log.Info("Redis cache connected")
	}

	log.Info("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	voucherRepo := repositories.NewVoucherRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)
	jewelRepo := repositories.NewJewelRepository(pool)
	dayBookRepo := repositories.NewDayBookRepository(pool)
	settingRepo := repositories.NewSystemSettingRepository(pool)
	stockSummaryRepo := repositories.NewStockSummaryRepository(pool)
	backupLogRepo := repositories.NewBackupLogRepository(pool)

	// Services; the setting service is the date-override-aware clock
	settingService := services.NewSystemSettingService(settingRepo)
	stockSummaryService := services.NewStockSummaryService(stockSummaryRepo, voucherRepo, dayBookRepo, settingService)
	if cfg.StockSummary.DefaultPageLimit > 0 {
		stockSummaryService.DefaultLimit = cfg.StockSummary.DefaultPageLimit
	}
	if cfg.StockSummary.DashboardCacheTTL > 0 {
		stockSummaryService.DashboardTTL = cfg.StockSummary.DashboardCacheTTL
	}
	reportService := services.NewReportService(stockSummaryService)
	customerService := services.NewCustomerService(customerRepo)
	voucherService := services.NewVoucherService(voucherRepo, settingService)
	employeeService := services.NewEmployeeService(employeeRepo)
	jewelService := services.NewJewelService(jewelRepo)
	dayBookService := services.NewDayBookService(dayBookRepo)

	r2, err := storage.NewR2Store(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("R2 mirroring disabled")
		r2 = nil
	}
	backupService := &services.BackupService{
		Customers: customerRepo,
		Vouchers:  voucherRepo,
		Employees: employeeRepo,
		Jewels:    jewelRepo,
		Logs:      backupLogRepo,
		Clock:     settingService,
	}
	if r2 != nil {
		backupService.Uploader = r2
	}

	handlers.IncludeStack = !cfg.IsProduction()

	router := h.NewRouter(
		handlers.NewStockSummaryHandler(stockSummaryService),
		handlers.NewReportHandler(reportService),
		handlers.NewCustomerHandler(customerService),
		handlers.NewVoucherHandler(voucherService),
		handlers.NewEmployeeHandler(employeeService),
		handlers.NewJewelHandler(jewelService),
		handlers.NewDayBookHandler(dayBookService),
		handlers.NewSystemSettingHandler(settingService),
		handlers.NewBackupHandler(backupService, r2, cfg.Server.MaxUploadMB),
		handlers.NewHealthHandler(health.NewHealthChecker(pool)),
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.APILogging(corsMiddleware(router)))

	cache.PreWarmKey(cache.StockSummaryDashboard, func(ctx context.Context) ([]byte, error) {
		stats, err := stockSummaryService.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(stats)
	}, stockSummaryService.DashboardTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
