package api

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"greenroute/internal/cache"
	"greenroute/internal/catalog"
	"greenroute/internal/config"
	"greenroute/internal/opt"
)

// Server wires the optimizer, the shared catalog and the optional result
// cache behind the HTTP surface.
type Server struct {
	Catalog   *catalog.Catalog
	Optimizer *opt.Optimizer
	Cache     *cache.ResultCache
	limiter   *rate.Limiter
}

// NewServer builds the server from configuration. Catalog source precedence:
// DATABASE_URL, then CATALOG_FILE, then the built-in demo catalog. The
// catalog is loaded exactly once; every later call reads it lock-free.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	switch {
	case cfg.DatabaseURL != "":
		cat, err = catalog.LoadPostgres(ctx, cfg.DatabaseURL)
	case cfg.CatalogFile != "":
		cat, err = catalog.LoadFile(cfg.CatalogFile)
	default:
		cat = catalog.Seed()
	}
	if err != nil {
		return nil, fmt.Errorf("init server: %w", err)
	}

	var rc *cache.ResultCache
	if cfg.RedisURL != "" {
		rc, err = cache.NewFromURL(ctx, cfg.RedisURL, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("init server: redis: %w", err)
		}
	}

	return &Server{
		Catalog:   cat,
		Optimizer: opt.New(cat),
		Cache:     rc,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}, nil
}

// NewTestServer builds a server over the given catalog with no cache and a
// permissive rate limit. Used by tests and by embedders that manage their
// own catalog lifecycle.
func NewTestServer(cat *catalog.Catalog) *Server {
	return &Server{
		Catalog:   cat,
		Optimizer: opt.New(cat),
		limiter:   rate.NewLimiter(rate.Inf, 0),
	}
}
