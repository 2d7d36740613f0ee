// pointer.report records and analyzes pointing-performance sessions
// under Fitts's-law conditions. The binary persists finalized session
// records to SQLite and serves them over HTTP; with -simulate it first
// runs a synthetic participant through a full session, which is useful
// for demos and smoke testing without an input device.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitts-data/pointer.report/api"
	"github.com/fitts-data/pointer.report/internal/config"
	"github.com/fitts-data/pointer.report/internal/db"
	"github.com/fitts-data/pointer.report/internal/export"
	"github.com/fitts-data/pointer.report/internal/session"
	"github.com/fitts-data/pointer.report/internal/simulate"
	"github.com/fitts-data/pointer.report/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address")
	dbFile      = flag.String("db", "sessions.db", "Path to the session database")
	configPath  = flag.String("config", "", "Optional experiment config JSON")
	simCount    = flag.Int("simulate", 0, "Run N synthetic sessions before serving")
	simSeed     = flag.Int64("seed", 0, "Seed for synthetic sessions (0 = time-based)")
	outDir      = flag.String("out", "data", "Directory for CSV/JSON exports of simulated sessions")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pointer.report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	sessionCfg := session.Config{}
	if *configPath != "" {
		cfg, err := config.LoadExperimentConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		sessionCfg = cfg.SessionConfig()
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	for i := 0; i < *simCount; i++ {
		seed := *simSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		if err := runSimulatedSession(database, sessionCfg, seed+int64(i)); err != nil {
			log.Fatalf("simulated session failed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	apiMux := api.NewServer(database).ServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	server := &http.Server{
		Addr:    *listen,
		Handler: mux,
	}

	go func() {
		log.Printf("listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}

// runSimulatedSession plays one synthetic session, stores it and
// writes its exports. A persistence failure is fatal here, but the
// exports are written from the in-memory record either way.
func runSimulatedSession(database *db.DB, cfg session.Config, seed int64) error {
	participant := simulate.NewParticipant(seed)
	rec, summary, err := participant.RunSession(cfg)
	if err != nil {
		return err
	}

	if err := database.RecordSession(rec); err != nil {
		return err
	}

	csvPath, jsonPath, err := export.SaveSession(*outDir, rec)
	if err != nil {
		log.Printf("failed to export session %s: %v", rec.RunID, err)
	} else {
		log.Printf("exported %s and %s", csvPath, jsonPath)
	}

	log.Printf("session %s: %d trials, avg time %.3fs, avg speed %.0f px/s, avg throughput %.2f bits/s",
		rec.RunID, summary.Trials, summary.AvgTime, summary.AvgSpeed, summary.AvgThroughput)
	return nil
}
