package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"celltrack/internal/adapters/http/middleware"
	"celltrack/internal/adapters/http/perf"
	eventStore "celltrack/internal/adapters/storage/event"
	personStore "celltrack/internal/adapters/storage/person"
	rosterStore "celltrack/internal/adapters/storage/roster"
	weekStore "celltrack/internal/adapters/storage/week"
	"celltrack/internal/application/orchestrators"
	"celltrack/internal/application/rostercache"
)

// Stores holds all storage dependencies.
type Stores struct {
	PersonStore personStore.Store
	EventStore  eventStore.Store
	RosterStore rosterStore.Store
	WeekStore   weekStore.Store
}

// loadCSRFKey reads the CSRF secret from CELLTRACK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CELLTRACK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CELLTRACK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CELLTRACK_ENV") == "production" {
		log.Fatal("CELLTRACK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set CELLTRACK_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global roster cache for the capture screen (set by NewMux)
var rosterCache *rostercache.Cache

// Global week notifier instance (set by SetNotifier)
var weekNotifier orchestrators.WeekNotifier

// SetNotifier sets the leader-email notifier for week saves. nil disables it.
func SetNotifier(n orchestrators.WeekNotifier) {
	weekNotifier = n
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	rosterCache = rostercache.New(rostercache.DefaultTTL, rostercache.DefaultMaxEntries, nil)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
