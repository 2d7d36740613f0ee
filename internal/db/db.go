// Package db persists finalized session records to SQLite.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/plan"
	"github.com/fitts-data/pointer.report/internal/session"
)

// ErrSessionNotFound is returned when a run ID has no stored session.
var ErrSessionNotFound = errors.New("session not found")

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the session database at path and applies
// any pending schema migrations.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SessionInfo is a row in the session listing.
type SessionInfo struct {
	RunID     string       `json:"run_id"`
	CreatedAt time.Time    `json:"created_at"`
	Mode      session.Mode `json:"experiment_mode"`
	Trials    int          `json:"trials"`
}

// RecordSession stores a finalized session record: the session row,
// one row per trial and one row per trajectory sample, atomically.
func (db *DB) RecordSession(rec *session.Record) error {
	var planJSON []byte
	if len(rec.Plan) > 0 {
		var err error
		planJSON, err = json.Marshal(rec.Plan)
		if err != nil {
			return fmt.Errorf("failed to marshal trial plan: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (
			run_id, created_at, platform, canvas_width, canvas_height,
			target_default_radius, min_sample_interval_sec, experiment_mode, trial_plan
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.CreatedAt, rec.Platform, rec.Canvas.Width, rec.Canvas.Height,
		rec.DefaultRadius, rec.SampleInterval, string(rec.Mode), nullableString(planJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for i, trial := range rec.Trials {
		_, err = tx.Exec(
			`INSERT INTO trials (
				run_id, trial_index, time_sec, distance_px, ideal_distance_px,
				speed_px_sec, curvature, index_of_difficulty, throughput,
				target_x, target_y, peak_velocity, reaction_time_sec,
				preset_distance, preset_width, preset_radius
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, i+1, trial.TimeElapsed, trial.TotalDistance, trial.IdealDistance,
			trial.AvgSpeed, trial.Curvature, trial.IndexOfDifficulty, trial.Throughput,
			trial.TargetX, trial.TargetY, trial.PeakVelocity, trial.ReactionTime,
			trial.PresetDistance, trial.PresetWidth, trial.PresetRadius,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trial %d: %w", i+1, err)
		}

		for j, s := range trial.Trajectory {
			_, err = tx.Exec(
				`INSERT INTO trajectory_samples (run_id, trial_index, sample_index, x, y, t)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				rec.RunID, i+1, j, s.X, s.Y, s.T,
			)
			if err != nil {
				return fmt.Errorf("failed to insert sample %d of trial %d: %w", j, i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// ListSessions returns stored sessions, newest first.
func (db *DB) ListSessions() ([]SessionInfo, error) {
	rows, err := db.Query(`
		SELECT s.run_id, s.created_at, s.experiment_mode, COUNT(t.trial_index)
		FROM sessions s
		LEFT JOIN trials t ON t.run_id = s.run_id
		GROUP BY s.run_id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var mode string
		if err := rows.Scan(&info.RunID, &info.CreatedAt, &mode, &info.Trials); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		info.Mode = session.Mode(mode)
		out = append(out, info)
	}
	return out, rows.Err()
}

// LoadSession reconstructs a full session record, trajectories
// included, from storage.
func (db *DB) LoadSession(runID string) (*session.Record, error) {
	rec := &session.Record{RunID: runID}
	var mode string
	var planJSON sql.NullString
	err := db.QueryRow(
		`SELECT created_at, platform, canvas_width, canvas_height,
		        target_default_radius, min_sample_interval_sec, experiment_mode, trial_plan
		 FROM sessions WHERE run_id = ?`, runID,
	).Scan(&rec.CreatedAt, &rec.Platform, &rec.Canvas.Width, &rec.Canvas.Height,
		&rec.DefaultRadius, &rec.SampleInterval, &mode, &planJSON)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", runID, err)
	}
	rec.Mode = session.Mode(mode)

	if planJSON.Valid && planJSON.String != "" {
		var entries []plan.Entry
		if err := json.Unmarshal([]byte(planJSON.String), &entries); err != nil {
			return nil, fmt.Errorf("failed to parse stored trial plan: %w", err)
		}
		rec.Plan = entries
	}

	rows, err := db.Query(
		`SELECT trial_index, time_sec, distance_px, ideal_distance_px, speed_px_sec,
		        curvature, index_of_difficulty, throughput, target_x, target_y,
		        peak_velocity, reaction_time_sec, preset_distance, preset_width, preset_radius
		 FROM trials WHERE run_id = ? ORDER BY trial_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trials: %w", err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var trial kinematics.TrialResult
		var idx int
		if err := rows.Scan(&idx, &trial.TimeElapsed, &trial.TotalDistance, &trial.IdealDistance,
			&trial.AvgSpeed, &trial.Curvature, &trial.IndexOfDifficulty, &trial.Throughput,
			&trial.TargetX, &trial.TargetY, &trial.PeakVelocity, &trial.ReactionTime,
			&trial.PresetDistance, &trial.PresetWidth, &trial.PresetRadius); err != nil {
			return nil, fmt.Errorf("failed to scan trial row: %w", err)
		}
		rec.Trials = append(rec.Trials, trial)
		indices = append(indices, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, idx := range indices {
		traj, err := db.loadTrajectory(runID, idx)
		if err != nil {
			return nil, err
		}
		rec.Trials[i].Trajectory = traj
	}

	return rec, nil
}

func (db *DB) loadTrajectory(runID string, trialIndex int) (kinematics.Trajectory, error) {
	rows, err := db.Query(
		`SELECT x, y, t FROM trajectory_samples
		 WHERE run_id = ? AND trial_index = ? ORDER BY sample_index`, runID, trialIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load trajectory: %w", err)
	}
	defer rows.Close()

	var traj kinematics.Trajectory
	for rows.Next() {
		var s kinematics.Sample
		if err := rows.Scan(&s.X, &s.Y, &s.T); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		traj = append(traj, s)
	}
	return traj, rows.Err()
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
