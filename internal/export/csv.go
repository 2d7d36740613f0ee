// Package export writes finalized session records to their tabular
// (CSV) and structured (JSON) forms and reads the structured form
// back. Export never mutates the in-memory record; a failed write
// leaves it intact.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fitts-data/pointer.report/internal/security"
	"github.com/fitts-data/pointer.report/internal/session"
)

// CSVHeaders is the column set of the tabular export, one row per
// completed trial in completion order.
var CSVHeaders = []string{
	"Trial_ID",
	"Time_Sec",
	"Distance_Px",
	"Ideal_Distance_Px",
	"Speed_PxSec",
	"Curvature",
	"Index_of_Difficulty_Bits",
	"Throughput_Bits_Sec",
	"Target_X",
	"Target_Y",
	"Peak_Velocity_PxSec",
	"Reaction_Time_Sec",
}

// WriteCSV writes the tabular export for rec. Times, curvature, ID and
// throughput carry four decimals; distances and speeds carry two.
func WriteCSV(w io.Writer, rec *session.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, trial := range rec.Trials {
		row := []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", trial.TimeElapsed),
			fmt.Sprintf("%.2f", trial.TotalDistance),
			fmt.Sprintf("%.2f", trial.IdealDistance),
			fmt.Sprintf("%.2f", trial.AvgSpeed),
			fmt.Sprintf("%.4f", trial.Curvature),
			fmt.Sprintf("%.4f", trial.IndexOfDifficulty),
			fmt.Sprintf("%.4f", trial.Throughput),
			strconv.FormatFloat(trial.TargetX, 'f', -1, 64),
			strconv.FormatFloat(trial.TargetY, 'f', -1, 64),
			fmt.Sprintf("%.2f", trial.PeakVelocity),
			fmt.Sprintf("%.4f", trial.ReactionTime),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// SaveSession writes both exports next to each other in dir, named
// after the record's creation timestamp. Returns the paths written.
func SaveSession(dir string, rec *session.Record) (csvPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output dir: %w", err)
	}

	// Run ID fragment keeps sessions started in the same second from
	// overwriting each other.
	stamp := rec.CreatedAt.Format("20060102_150405")
	if len(rec.RunID) >= 8 {
		stamp += "_" + security.SanitizeFilename(rec.RunID[:8])
	}
	csvPath = filepath.Join(dir, fmt.Sprintf("session_%s.csv", stamp))
	jsonPath = filepath.Join(dir, fmt.Sprintf("session_%s.json", stamp))

	cf, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", csvPath, err)
	}
	defer cf.Close()
	if err := WriteCSV(cf, rec); err != nil {
		return "", "", err
	}

	jf, err := os.Create(jsonPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", jsonPath, err)
	}
	defer jf.Close()
	if err := WriteJSON(jf, rec); err != nil {
		return "", "", err
	}

	return csvPath, jsonPath, nil
}
