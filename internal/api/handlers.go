package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"greenroute/internal/buildinfo"
	"greenroute/internal/cache"
	"greenroute/internal/catalog"
	"greenroute/internal/metrics"
	"greenroute/internal/model"
	"greenroute/internal/opt"
)

// OptimizeHandler handles POST /v1/optimize.
func (s *Server) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateOptimizeRequest(&req); err != nil {
		metrics.Optimizations.WithLabelValues("invalid_request").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid optimize request", err.Error(), r.URL.Path)
		return
	}

	var key string
	if s.Cache != nil {
		key = cache.Key(req)
		if res, ok := s.Cache.Get(r.Context(), key); ok {
			res.Cached = true
			metrics.Optimizations.WithLabelValues("cached").Inc()
			writeJSON(w, http.StatusOK, res)
			return
		}
	}

	start := time.Now()
	res, err := s.Optimizer.Optimize(r.Context(), toOptRequest(&req))
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeOptimizeError(w, r, &req, err)
		return
	}

	out := toResponse(res)
	opt.RecordOptimization(req.Origin, req.Destination, res.CandidatesEvaluated, true, res.Route.Score)
	metrics.Optimizations.WithLabelValues("ok").Inc()
	metrics.CandidatesEvaluated.Observe(float64(res.CandidatesEvaluated))
	if s.Cache != nil {
		s.Cache.Set(r.Context(), key, out)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeOptimizeError maps core errors to responses. Both failure modes are
// expected, data-dependent outcomes and map to 4xx, never 5xx.
func (s *Server) writeOptimizeError(w http.ResponseWriter, r *http.Request, req *model.OptimizeRequest, err error) {
	var invalid *opt.InvalidRequestError
	if errors.As(err, &invalid) {
		metrics.Optimizations.WithLabelValues("invalid_request").Inc()
		writeProblem(w, http.StatusBadRequest, "Invalid optimize request", invalid.Reason, r.URL.Path)
		return
	}
	var noRoute *opt.NoViableRouteError
	if errors.As(err, &noRoute) {
		opt.RecordOptimization(req.Origin, req.Destination, noRoute.AttemptedCandidates, false, 0)
		metrics.Optimizations.WithLabelValues("no_viable_route").Inc()
		metrics.CandidatesEvaluated.Observe(float64(noRoute.AttemptedCandidates))
		writeJSON(w, http.StatusUnprocessableEntity, model.NoViableRouteOut{
			Error:               "no_viable_route",
			Origin:              noRoute.Origin,
			Destination:         noRoute.Destination,
			CargoType:           string(noRoute.CargoType),
			AttemptedCandidates: noRoute.AttemptedCandidates,
			Detail:              noRoute.Error(),
		})
		return
	}
	// Context cancellation or deadline from the caller.
	metrics.Optimizations.WithLabelValues("aborted").Inc()
	writeProblem(w, http.StatusServiceUnavailable, "Optimization aborted", err.Error(), r.URL.Path)
}

func toResponse(res *opt.Result) *model.OptimizeResponse {
	return &model.OptimizeResponse{
		ID:                  uuid.New().String(),
		Route:               toRouteOut(res.Route),
		Baseline:            toRouteOut(res.Baseline),
		BaselineSynthetic:   res.BaselineSynthetic,
		CarbonVsBaselinePct: res.CarbonVsBaselinePct,
		CostVsBaselinePct:   res.CostVsBaselinePct,
		TimeVsBaselinePct:   res.TimeVsBaselinePct,
		Recommendations:     res.Recommendations,
		CandidatesEvaluated: res.CandidatesEvaluated,
	}
}

// CatalogLegsHandler handles GET /v1/catalog/legs with optional origin and
// destination filters. Unknown locations yield empty lists.
func (s *Server) CatalogLegsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	var legs []model.LegOut
	switch {
	case origin != "" && destination != "":
		legs = legsOut(s.Catalog.LegsBetween(origin, destination))
	case origin != "":
		legs = legsOut(s.Catalog.LegsFrom(origin))
	default:
		for _, loc := range s.Catalog.Locations() {
			legs = append(legs, legsOut(s.Catalog.LegsFrom(loc))...)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": legs, "count": len(legs)})
}

// LocationsHandler handles GET /v1/catalog/locations.
func (s *Server) LocationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.Catalog.Locations()})
}

// ProfilesHandler handles GET /v1/profiles, listing the urgency presets.
func (s *Server) ProfilesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	out := map[string]model.WeightsIn{}
	for _, name := range opt.UrgencyProfiles() {
		w, _ := opt.WeightsFor(name)
		out[name] = model.WeightsIn{Time: w.Time, Carbon: w.Carbon, Cost: w.Cost, Reliability: w.Reliability}
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": out})
}

// OptimizeMetricsHandler handles GET /v1/admin/optimize-metrics.
func (s *Server) OptimizeMetricsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	writeJSON(w, http.StatusOK, map[string]any{"corridors": opt.CorridorMetrics(origin, destination)})
}

// HealthHandler handles GET /healthz.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Info()})
}

// ReadyHandler handles GET /readyz. The server is ready once the catalog is
// loaded; an empty catalog still serves (it just never finds routes).
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "catalogLegs": s.Catalog.Len()})
}

func legsOut(legs []catalog.TransportLeg) []model.LegOut {
	out := make([]model.LegOut, 0, len(legs))
	for _, l := range legs {
		out = append(out, legOut(l))
	}
	return out
}
