package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// HealthServer exposes /health and /status on a dedicated port so the
// dashboard port stays reserved for the UI. /health is a plain-text
// probe target; /status returns the full run snapshot as JSON.
type HealthServer struct {
	monitor *Monitor
	port    string
}

func NewHealthServer(monitor *Monitor, port string) *HealthServer {
	if port == "" {
		port = "8081"
	}
	return &HealthServer{
		monitor: monitor,
		port:    port,
	}
}

func (h *HealthServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.healthHandler)
	mux.HandleFunc("/status", h.statusHandler)

	log.Printf("Health check server starting on port %s", h.port)
	go func() {
		if err := http.ListenAndServe(":"+h.port, mux); err != nil {
			log.Printf("Health server error: %v", err)
		}
	}()
}

func (h *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := h.monitor.Status()

	state := "ok"
	code := http.StatusOK
	if !status.Healthy {
		state = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	fmt.Fprintf(w, "%s - %d runs, %d failed", state, status.TotalRuns, status.FailedRuns)
}

func (h *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.monitor.Status()); err != nil {
		log.Printf("Failed to encode status: %v", err)
	}
}
