package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hospinv/hospinv-backend/api/routes"
	"github.com/hospinv/hospinv-backend/internal/export"
	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/hospinv/hospinv-backend/internal/maintenance"
	"github.com/hospinv/hospinv-backend/internal/stats"
	"github.com/hospinv/hospinv-backend/internal/upload"
	"github.com/hospinv/hospinv-backend/pkg/config"
	"github.com/hospinv/hospinv-backend/pkg/db"
	"github.com/hospinv/hospinv-backend/pkg/imgbb"
	"github.com/hospinv/hospinv-backend/pkg/logger"
	"github.com/hospinv/hospinv-backend/pkg/metrics"
	"github.com/hospinv/hospinv-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	var hostedUploader *imgbb.Client
	if cfg.ImgBB.APIKey != "" {
		hostedUploader, err = imgbb.NewClient(cfg.ImgBB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create imgbb client", err)
			os.Exit(1)
		}
	}

	uploads, err := newUploadService(cfg, hostedUploader, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create upload service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	maintenanceService, err := maintenance.NewService(maintenance.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create maintenance service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(stats.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	excelExporter, err := export.NewExcelExporter(inventoryService)
	if err != nil {
		logg.Error(context.Background(), "failed to create excel exporter", err)
		os.Exit(1)
	}

	pdfExporter, err := export.NewPDFExporter(inventoryService, maintenanceService)
	if err != nil {
		logg.Error(context.Background(), "failed to create pdf exporter", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Inventory:   inventoryService,
			Maintenance: maintenanceService,
			Stats:       statsService,
			Uploads:     uploads,
			Excel:       excelExporter,
			PDF:         pdfExporter,
			Registry:    registry,
			HTTPMetrics: httpMetrics,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func newUploadService(cfg *config.Config, hosted *imgbb.Client, logg *logger.Logger) (*upload.Service, error) {
	if hosted != nil {
		return upload.NewService(cfg.Uploads, hosted, logg)
	}
	return upload.NewService(cfg.Uploads, nil, logg)
}
