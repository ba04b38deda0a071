// Package main runs a demo WebSocket client against /v1/optimize/stream.
package main

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
)

type streamMessage struct {
	Type      string         `json:"type"`
	Candidate map[string]any `json:"candidate,omitempty"`
	Result    map[string]any `json:"result,omitempty"`
	Failure   map[string]any `json:"failure,omitempty"`
	Detail    string         `json:"detail,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/optimize/stream"}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	req := map[string]any{
		"origin":          "Shanghai",
		"destination":     "London",
		"cargoWeightKg":   1000,
		"cargoType":       "general",
		"urgency":         "standard",
		"maxCarbonGPerKg": 500,
	}
	if err := conn.WriteJSON(req); err != nil {
		log.Fatalf("write: %v", err)
	}

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatalf("read: %v", err)
		}
		switch msg.Type {
		case "candidate":
			fmt.Printf("candidate: score=%v carbon=%vg time=%vh\n",
				msg.Candidate["optimizationScore"], msg.Candidate["totalCarbonG"], msg.Candidate["totalTimeHours"])
		case "result":
			fmt.Printf("selected: %v\n", msg.Result["route"])
			fmt.Printf("recommendations: %v\n", msg.Result["recommendations"])
			return
		case "error":
			if msg.Failure != nil {
				log.Fatalf("no viable route: %v", msg.Failure)
			}
			log.Fatalf("error: %s", msg.Detail)
		}
	}
}
