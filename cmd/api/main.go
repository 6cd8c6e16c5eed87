package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/salestrack-api/internal/config"
	"github.com/jwalitptl/salestrack-api/internal/handler"
	"github.com/jwalitptl/salestrack-api/internal/handler/calllog"
	"github.com/jwalitptl/salestrack-api/internal/handler/company"
	"github.com/jwalitptl/salestrack-api/internal/handler/dashboard"
	"github.com/jwalitptl/salestrack-api/internal/handler/lead"
	"github.com/jwalitptl/salestrack-api/internal/middleware"
	"github.com/jwalitptl/salestrack-api/internal/router"
	"github.com/jwalitptl/salestrack-api/internal/storage"
	"github.com/jwalitptl/salestrack-api/internal/store"
	"github.com/jwalitptl/salestrack-api/internal/worker"
	"github.com/jwalitptl/salestrack-api/pkg/logger"
	"github.com/jwalitptl/salestrack-api/pkg/metrics"
)

const metricsNamespace = "salestrack"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.LogLevel),
	})

	appMetrics := metrics.NewMetrics(metricsNamespace)

	// Initialize persistence
	persister, err := storage.New(cfg.Storage.Dir, appLogger, appMetrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Initialize stores
	root := store.NewRoot(persister, appLogger, store.RootConfig{
		DefaultOwner:   cfg.DefaultOwner,
		HotWindowDays:  cfg.Classifier.HotWindowDays,
		WarmWindowDays: cfg.Classifier.WarmWindowDays,
		Metrics:        appMetrics,
	})
	root.RegisterMetrics(metricsNamespace)

	// Statuses decay over time; sweep them in the background.
	reclassifier := worker.NewLeadReclassifyWorker(root, cfg.Classifier.ReclassifyInterval, appLogger)
	go reclassifier.Start(context.Background())

	// Initialize handlers
	h := handler.NewHandler()
	leadHandler := lead.NewHandler(root.Leads)
	companyHandler := company.NewHandler(root.Companies)
	callLogHandler := calllog.NewHandler(root.CallLogs)
	dashboardHandler := dashboard.NewHandler(root, cfg.Dashboard.CacheTTL)

	// Setup router
	r := router.NewRouter(h, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig: middleware.CORSConfig{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			AllowMethods: cfg.CORS.AllowedMethods,
			AllowHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:       86400,
		},
		MetricsPrefix: metricsNamespace,
	},
		leadHandler,
		companyHandler,
		callLogHandler,
		dashboardHandler,
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		appLogger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
