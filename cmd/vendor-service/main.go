package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"procure/internal/platform/config"
	"procure/internal/platform/httpserver"
	"procure/internal/platform/logger"
	"procure/internal/platform/middleware"
	"procure/internal/platform/postgres"
	platformredis "procure/internal/platform/redis"
	"procure/internal/vendors/cache"
	"procure/internal/vendors/handler"
	vendormetrics "procure/internal/vendors/metrics"
	"procure/internal/vendors/replication"
	"procure/internal/vendors/service"
	"procure/internal/vendors/store"
	"procure/pkg/platform/httputil"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/vendors.
func main() {
	cfg := config.VendorFromEnv()
	log := logger.New("vendor-service")

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		// The cache is an optimization; the service runs without it.
		log.Warn("redis unavailable, vendor cache disabled", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	vendorStore := cache.Wrap(store.NewPostgres(db), rdb, config.VendorCacheTTL, log)
	procurementClient := replication.NewHTTPClient(cfg.ProcurementBaseURL, cfg.ReplicationTimeout, cfg.GenerateTimeout)

	svc := service.New(vendorStore, procurementClient, procurementClient,
		service.WithLogger(log),
		service.WithMetrics(vendormetrics.New()),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestTime)
	handler.New(svc, log).Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting vendor-service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
