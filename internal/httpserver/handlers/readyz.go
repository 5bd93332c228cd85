package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/herathmmr/stash/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Mode  string `json:"mode"`
}

// Readyz reports readiness. The service stays ready even when Redis is down,
// since the in-memory fallback keeps every operation working; the mode field
// tells the orchestrator which one it is.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := "durable"
		if d.RedisClient == nil {
			mode = "memory-only"
		} else if d.Fallback != nil && d.Fallback.DirtyCount() > 0 {
			mode = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: true,
			Mode:  mode,
		})
	}
}
