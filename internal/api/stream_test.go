package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"greenroute/internal/model"
)

func dialStream(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(s.OptimizeStreamHandler))
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/optimize/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestOptimizeStream(t *testing.T) {
	s := newTestServer()
	conn := dialStream(t, s)

	req := model.OptimizeRequest{
		Origin:        "Shanghai",
		Destination:   "London",
		CargoWeightKg: 1000,
		CargoType:     "general",
		Urgency:       "standard",
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var candidates int
	for {
		var msg model.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		switch msg.Type {
		case "candidate":
			if msg.Candidate == nil || len(msg.Candidate.Legs) == 0 {
				t.Fatalf("candidate frame without legs: %+v", msg)
			}
			candidates++
		case "result":
			if candidates == 0 {
				t.Fatalf("result arrived before any candidate frame")
			}
			if msg.Result == nil || msg.Result.CandidatesEvaluated != candidates {
				t.Fatalf("result evaluated %v candidates, streamed %d", msg.Result, candidates)
			}
			if len(msg.Result.Route.Legs) == 0 {
				t.Fatalf("result has no route legs")
			}
			return
		default:
			t.Fatalf("unexpected frame type %q: %+v", msg.Type, msg)
		}
	}
}

func TestOptimizeStreamNoViableRoute(t *testing.T) {
	s := newTestServer()
	conn := dialStream(t, s)

	req := model.OptimizeRequest{
		Origin:        "London",
		Destination:   "Shanghai",
		CargoWeightKg: 1000,
		CargoType:     "general",
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var msg model.StreamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if msg.Type != "error" || msg.Failure == nil {
		t.Fatalf("frame = %+v, want error with failure body", msg)
	}
	if msg.Failure.Error != "no_viable_route" || msg.Failure.Origin != "London" {
		t.Errorf("failure = %+v", msg.Failure)
	}
}

func TestOptimizeStreamInvalidRequest(t *testing.T) {
	s := newTestServer()
	conn := dialStream(t, s)

	req := model.OptimizeRequest{
		Origin:        "Shanghai",
		Destination:   "London",
		CargoWeightKg: 1000,
		CargoType:     "antimatter",
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var msg model.StreamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if msg.Type != "error" || msg.Detail == "" {
		t.Fatalf("frame = %+v, want error with detail", msg)
	}
}
