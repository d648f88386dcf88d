package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "celltrack/internal/adapters/email"
	web "celltrack/internal/adapters/http"
	"celltrack/internal/adapters/http/perf"
	"celltrack/internal/adapters/storage"
	eventStore "celltrack/internal/adapters/storage/event"
	personStore "celltrack/internal/adapters/storage/person"
	rosterStore "celltrack/internal/adapters/storage/roster"
	weekStore "celltrack/internal/adapters/storage/week"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Local development config; real deployments set env vars directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CELLTRACK_DB", "celltrack.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	stores := &web.Stores{
		PersonStore: personStore.NewSQLiteStore(timedDB),
		EventStore:  eventStore.NewSQLiteStore(timedDB),
		RosterStore: rosterStore.NewSQLiteStore(timedDB),
		WeekStore:   weekStore.NewSQLiteStore(timedDB),
	}

	// Configure the leader notification sender
	resendKey := os.Getenv("CELLTRACK_RESEND_KEY")
	emailFrom := envOrDefault("CELLTRACK_RESEND_FROM", "CellTrack <noreply@celltrack.org.za>")
	if resendKey != "" {
		web.SetNotifier(emailPkg.NewWeekNotifier(emailPkg.NewResendSender(resendKey, emailFrom)))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetNotifier(emailPkg.NewWeekNotifier(emailPkg.NewNoopSender()))
		if os.Getenv("CELLTRACK_ENV") == "production" {
			log.Println("WARNING: CELLTRACK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CELLTRACK_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("CELLTRACK_ADDR", ":8080")
	log.Printf("CellTrack %s starting on %s (env=%s)", version, addr, envOrDefault("CELLTRACK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
