package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	Uptime       string            `json:"uptime"`
	GoVersion    string            `json:"go_version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Memory       struct {
		Alloc      uint64 `json:"alloc"`
		TotalAlloc uint64 `json:"totalAlloc"`
		Sys        uint64 `json:"sys"`
		NumGC      uint32 `json:"numGC"`
	} `json:"memory"`
}

var startTime = time.Now()

const pingTimeout = 2 * time.Second

// HealthGet reports process vitals plus a reachability check per named
// dependency. Any failing dependency degrades the response to 503.
func HealthGet(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		health := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(startTime).String(),
			GoVersion: runtime.Version(),
		}
		health.Memory.Alloc = memStats.Alloc
		health.Memory.TotalAlloc = memStats.TotalAlloc
		health.Memory.Sys = memStats.Sys
		health.Memory.NumGC = memStats.NumGC

		status := http.StatusOK
		if len(deps) > 0 {
			health.Dependencies = make(map[string]string, len(deps))
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()
			for name, dep := range deps {
				if err := dep.Ping(ctx); err != nil {
					health.Dependencies[name] = "unreachable"
					health.Status = "degraded"
					status = http.StatusServiceUnavailable
					continue
				}
				health.Dependencies[name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(health)
	}
}
