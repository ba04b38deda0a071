package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"greenroute/internal/api"
	"greenroute/internal/config"
	"greenroute/internal/metrics"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := api.NewServer(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	// Optimization
	mux.HandleFunc("/v1/optimize", srv.OptimizeHandler)
	mux.HandleFunc("/v1/optimize/stream", srv.OptimizeStreamHandler)
	mux.HandleFunc("/v1/profiles", srv.ProfilesHandler)

	// Catalog
	mux.HandleFunc("/v1/catalog/legs", srv.CatalogLegsHandler)
	mux.HandleFunc("/v1/catalog/locations", srv.LocationsHandler)

	// Admin
	mux.HandleFunc("/v1/admin/optimize-metrics", srv.OptimizeMetricsHandler)

	// Health
	mux.HandleFunc("/healthz", srv.HealthHandler)
	mux.HandleFunc("/readyz", srv.ReadyHandler)

	// Prometheus
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	handler := srv.MetricsMiddleware(srv.RateLimitMiddleware(logMiddleware(mux)))

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("API listening on :%s (catalog: %d legs)", cfg.Port, srv.Catalog.Len())
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s %v", r.RemoteAddr, r.Method, r.URL.Path, time.Since(start))
	})
}
