package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/saved"
	"github.com/herathmmr/stash/internal/sources/categories"
	"github.com/herathmmr/stash/internal/store/memory"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time    // for testing, defaults to time.Now
	Saved           *saved.Service      // saved-items service, the core of the API
	RedisClient     *redis.Client       // durable slot backend, nil when running memory-only
	Fallback        *memory.Store       // in-memory mirror, reports degraded-mode state
	Catalog         *categories.Catalog // portal category catalog, nil when categories are disabled
	AllowedHosts    []string            // Host headers allowed on admin endpoints
	AllowedCIDRS    []string            // client networks allowed on infra/reload endpoints
	AllowedOrigins  []string            // CORS allow list; empty means same-origin only
	TrustProxy      bool                // true when behind a trusted reverse proxy
	RateLimitBurst  int
	RateLimitPerMin int
	ReloadTrigger   chan struct{} // manual categories reload trigger (nil if categories disabled)
}
