// reanalyse reads a structured session export, re-runs the kinematic
// analyzer over every embedded trajectory and reports any metric that
// drifted from the stored value. The analyzer is a pure function, so
// any drift means the export was edited or produced by an older
// analyzer version.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/fitts-data/pointer.report/internal/export"
	"github.com/fitts-data/pointer.report/internal/kinematics"
)

var (
	inPath    = flag.String("in", "", "Path to a session JSON export")
	tolerance = flag.Float64("tolerance", 1e-9, "Maximum allowed absolute metric drift")
)

func main() {
	flag.Parse()

	if *inPath == "" {
		log.Fatal("-in is required")
	}

	f, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *inPath, err)
	}
	defer f.Close()

	rec, err := export.ReadJSON(f)
	if err != nil {
		log.Fatalf("failed to parse export: %v", err)
	}

	drifted := 0
	for i, trial := range rec.Trials {
		radius := rec.DefaultRadius
		if trial.PresetRadius != nil {
			radius = *trial.PresetRadius
		}

		fresh := kinematics.Analyze(trial.Trajectory, trial.TargetX, trial.TargetY, radius)
		if n := compareTrial(i+1, trial, fresh); n > 0 {
			drifted++
		}
	}

	if drifted > 0 {
		log.Fatalf("%d of %d trials drifted", drifted, len(rec.Trials))
	}
	fmt.Printf("all %d trials verified\n", len(rec.Trials))
}

// compareTrial prints every drifted metric for one trial and returns
// the number of drifted fields.
func compareTrial(id int, stored, fresh kinematics.TrialResult) int {
	fields := []struct {
		name   string
		stored float64
		fresh  float64
	}{
		{"time", stored.TimeElapsed, fresh.TimeElapsed},
		{"distance", stored.TotalDistance, fresh.TotalDistance},
		{"ideal_distance", stored.IdealDistance, fresh.IdealDistance},
		{"speed", stored.AvgSpeed, fresh.AvgSpeed},
		{"curvature", stored.Curvature, fresh.Curvature},
		{"id", stored.IndexOfDifficulty, fresh.IndexOfDifficulty},
		{"throughput", stored.Throughput, fresh.Throughput},
		{"peak_velocity", stored.PeakVelocity, fresh.PeakVelocity},
		{"reaction_time", stored.ReactionTime, fresh.ReactionTime},
	}

	n := 0
	for _, f := range fields {
		if math.Abs(f.stored-f.fresh) > *tolerance {
			fmt.Printf("trial %d: %s stored=%.6f recomputed=%.6f\n", id, f.name, f.stored, f.fresh)
			n++
		}
	}
	return n
}
