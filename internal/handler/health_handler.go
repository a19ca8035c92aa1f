package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
)

// Health returns basic health check
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheckResult represents the result of a dependency check
type HealthCheckResult struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Ready reports whether the backend API is reachable. The gateway has no
// other dependency.
func Ready(client *api.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		check := checkBackend(ctx, client)

		response := map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
			"checks": map[string]HealthCheckResult{
				"backend": check,
			},
		}

		if check.Status == "up" {
			response["status"] = "ready"
			respondJSON(w, http.StatusOK, response)
			return
		}
		response["status"] = "not ready"
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}

func checkBackend(ctx context.Context, client *api.Client) HealthCheckResult {
	start := time.Now()
	_, err := client.Categories(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return HealthCheckResult{Status: "down", LatencyMs: latency, Error: err.Error()}
	}
	return HealthCheckResult{Status: "up", LatencyMs: latency}
}
