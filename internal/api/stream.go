package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"greenroute/internal/metrics"
	"greenroute/internal/model"
	"greenroute/internal/opt"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// OptimizeStreamHandler handles GET /v1/optimize/stream. The client sends
// one OptimizeRequest; the server streams every scored candidate (feasible
// or not) followed by the final selection. Same pipeline as POST
// /v1/optimize, so the terminal result is identical for identical inputs.
func (s *Server) OptimizeStreamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var req model.OptimizeRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(model.StreamMessage{Type: "error", Detail: "invalid request frame: " + err.Error()})
		return
	}
	if err := validateOptimizeRequest(&req); err != nil {
		_ = conn.WriteJSON(model.StreamMessage{Type: "error", Detail: err.Error()})
		return
	}

	optReq := toOptRequest(&req)
	scored, err := s.Optimizer.ScoreAll(r.Context(), optReq)
	if err != nil {
		_ = conn.WriteJSON(model.StreamMessage{Type: "error", Detail: err.Error()})
		return
	}
	for _, sr := range scored {
		out := toRouteOut(sr)
		if err := conn.WriteJSON(model.StreamMessage{Type: "candidate", Candidate: &out}); err != nil {
			return
		}
	}

	res, err := s.Optimizer.Finalize(optReq, scored)
	if err != nil {
		s.writeStreamFailure(conn, &req, err)
		return
	}
	opt.RecordOptimization(req.Origin, req.Destination, res.CandidatesEvaluated, true, res.Route.Score)
	metrics.Optimizations.WithLabelValues("ok").Inc()
	metrics.CandidatesEvaluated.Observe(float64(res.CandidatesEvaluated))
	_ = conn.WriteJSON(model.StreamMessage{Type: "result", Result: toResponse(res)})
}

func (s *Server) writeStreamFailure(conn *websocket.Conn, req *model.OptimizeRequest, err error) {
	if noRoute, ok := err.(*opt.NoViableRouteError); ok {
		opt.RecordOptimization(req.Origin, req.Destination, noRoute.AttemptedCandidates, false, 0)
		metrics.Optimizations.WithLabelValues("no_viable_route").Inc()
		_ = conn.WriteJSON(model.StreamMessage{Type: "error", Failure: &model.NoViableRouteOut{
			Error:               "no_viable_route",
			Origin:              noRoute.Origin,
			Destination:         noRoute.Destination,
			CargoType:           string(noRoute.CargoType),
			AttemptedCandidates: noRoute.AttemptedCandidates,
			Detail:              noRoute.Error(),
		}})
		return
	}
	_ = conn.WriteJSON(model.StreamMessage{Type: "error", Detail: err.Error()})
}
