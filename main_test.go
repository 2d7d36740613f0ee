package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitts-data/pointer.report/internal/db"
	"github.com/fitts-data/pointer.report/internal/session"
)

func TestRunSimulatedSession(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "exports")
	*outDir = out

	database, err := db.NewDB(filepath.Join(dir, "sessions.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	cfg := session.Config{
		Trials:         3,
		SampleInterval: 0.01,
		Mode:           session.ModePreset,
		CanvasWidth:    1000,
		CanvasHeight:   600,
	}
	if err := runSimulatedSession(database, cfg, 42); err != nil {
		t.Fatalf("simulated session failed: %v", err)
	}

	infos, err := database.ListSessions()
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(infos) != 1 || infos[0].Trials != 3 {
		t.Fatalf("stored sessions = %+v, want one with 3 trials", infos)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("failed to read export dir: %v", err)
	}
	var haveCSV, haveJSON bool
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".csv"):
			haveCSV = true
		case strings.HasSuffix(e.Name(), ".json"):
			haveJSON = true
		}
	}
	if !haveCSV || !haveJSON {
		t.Errorf("export dir missing CSV or JSON: %v", entries)
	}
}
