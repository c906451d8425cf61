// needajob-api — entry-level job board backend.
//
// Aggregates entry-level postings from the Adzuna API into PostgreSQL on a
// cron schedule and serves them over a filtered, paginated REST API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samsondavid381/NeedAJobdotCom/internal/adzuna"
	"github.com/samsondavid381/NeedAJobdotCom/internal/aggregator"
	"github.com/samsondavid381/NeedAJobdotCom/internal/api"
	"github.com/samsondavid381/NeedAJobdotCom/internal/config"
	"github.com/samsondavid381/NeedAJobdotCom/internal/db"
	"github.com/samsondavid381/NeedAJobdotCom/internal/scheduler"
	"github.com/samsondavid381/NeedAJobdotCom/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[api] No .env file — using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[api] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[api] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[api] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[api] PostgreSQL connected ✓")

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("[api] Schema: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[api] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[api] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[api] Redis connected ✓")

	// ── Aggregator ───────────────────────────────────────────────────────────
	// The server stays up without Adzuna credentials: stored jobs are still
	// served, only the refresh paths are disabled.
	var refresher api.Refresher
	var sched *scheduler.Scheduler

	client, err := adzuna.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry)
	if err != nil {
		log.Printf("[api] Aggregation disabled: %v", err)
	} else {
		agg := aggregator.New(client, st, aggregator.NewRedisLock(rdb))
		refresher = agg

		sched = scheduler.New(agg, cfg.RefreshIntervalHours)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("[api] Scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := api.NewHandler(st, refresher, rdb)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // refresh runs are slow by design
	}

	go func() {
		log.Printf("[api] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[api] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[api] Shutting down…")
	cancel() // stops any in-flight refresh after the current query

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] Shutdown error: %v", err)
	}
	log.Println("[api] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "needajob-api",
		"version": version,
	})
}
