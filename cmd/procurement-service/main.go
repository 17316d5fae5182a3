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
	"procure/internal/procurement/catalog"
	"procure/internal/procurement/handler"
	procmetrics "procure/internal/procurement/metrics"
	"procure/internal/procurement/service"
	procstore "procure/internal/procurement/store/procurement"
	vendorstore "procure/internal/procurement/store/vendor"
	"procure/pkg/platform/httputil"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/procurement.
func main() {
	cfg := config.ProcurementFromEnv()
	log := logger.New("procurement-service")

	ctx := context.Background()

	pool, err := postgres.OpenPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalogClient := catalog.NewHTTPClient(cfg.CatalogProductURL, cfg.CatalogTimeout)

	svc := service.New(
		procstore.NewPostgres(pool),
		vendorstore.NewPostgres(pool),
		catalogClient,
		service.WithLogger(log),
		service.WithMetrics(procmetrics.New()),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestTime)
	handler.New(svc, log).Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting procurement-service", "addr", cfg.Addr)

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
