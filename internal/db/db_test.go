package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fitts-data/pointer.report/internal/plan"
	"github.com/fitts-data/pointer.report/internal/session"
	"github.com/fitts-data/pointer.report/internal/testutil"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDBAppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := db.MigrateVersion()
	testutil.AssertNoError(t, err)
	if dirty {
		t.Error("fresh database is dirty")
	}
	if version == 0 {
		t.Error("no migrations applied on open")
	}

	// Reopening the same file is a no-op migration.
	for _, table := range []string{"sessions", "trials", "trajectory_samples"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestRecordAndLoadSession(t *testing.T) {
	db := newTestDB(t)
	rec := testutil.TestSessionRecord()

	testutil.AssertNoError(t, db.RecordSession(rec))

	got, err := db.LoadSession(rec.RunID)
	testutil.AssertNoError(t, err)

	if got.RunID != rec.RunID {
		t.Errorf("run ID = %s, want %s", got.RunID, rec.RunID)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if got.Platform != rec.Platform || got.Mode != rec.Mode {
		t.Errorf("metadata = %s/%s, want %s/%s", got.Platform, got.Mode, rec.Platform, rec.Mode)
	}
	if got.Canvas != rec.Canvas {
		t.Errorf("canvas = %+v, want %+v", got.Canvas, rec.Canvas)
	}
	if got.SampleInterval != rec.SampleInterval || got.DefaultRadius != rec.DefaultRadius {
		t.Errorf("intervals = %f/%f, want %f/%f",
			got.SampleInterval, got.DefaultRadius, rec.SampleInterval, rec.DefaultRadius)
	}
	if len(got.Trials) != len(rec.Trials) {
		t.Fatalf("loaded %d trials, want %d", len(got.Trials), len(rec.Trials))
	}
	for i := range rec.Trials {
		want, loaded := rec.Trials[i], got.Trials[i]
		if loaded.TimeElapsed != want.TimeElapsed || loaded.TotalDistance != want.TotalDistance ||
			loaded.Throughput != want.Throughput {
			t.Errorf("trial %d metrics differ: %+v != %+v", i+1, loaded, want)
		}
		if len(loaded.Trajectory) != len(want.Trajectory) {
			t.Fatalf("trial %d trajectory has %d samples, want %d",
				i+1, len(loaded.Trajectory), len(want.Trajectory))
		}
		for j := range want.Trajectory {
			if loaded.Trajectory[j] != want.Trajectory[j] {
				t.Errorf("trial %d sample %d = %+v, want %+v",
					i+1, j, loaded.Trajectory[j], want.Trajectory[j])
			}
		}
	}
}

func TestRecordSessionWithPlan(t *testing.T) {
	db := newTestDB(t)
	rec := testutil.TestSessionRecord()
	rec.Mode = session.ModePreset

	pos := [2]float64{540, 300}
	radius := 20.0
	rec.Plan = []plan.Entry{
		{Distance: 120, Width: 40, TargetPos: &pos, Radius: &radius},
		{Distance: 200, Width: 20},
	}
	d, w := 120.0, 40.0
	rec.Trials[0].PresetDistance = &d
	rec.Trials[0].PresetWidth = &w
	rec.Trials[0].PresetRadius = &radius

	testutil.AssertNoError(t, db.RecordSession(rec))

	got, err := db.LoadSession(rec.RunID)
	testutil.AssertNoError(t, err)

	if len(got.Plan) != 2 {
		t.Fatalf("loaded plan has %d entries, want 2", len(got.Plan))
	}
	if got.Plan[0].Distance != 120 || got.Plan[0].TargetPos == nil || *got.Plan[0].TargetPos != pos {
		t.Errorf("plan entry 0 = %+v", got.Plan[0])
	}
	if got.Plan[1].TargetPos != nil {
		t.Errorf("unbound plan entry came back bound: %+v", got.Plan[1])
	}

	first := got.Trials[0]
	if first.PresetDistance == nil || *first.PresetDistance != 120 {
		t.Errorf("preset distance = %v, want 120", first.PresetDistance)
	}
	if got.Trials[1].PresetDistance != nil {
		t.Errorf("random trial came back with preset distance %v", *got.Trials[1].PresetDistance)
	}
}

func TestRecordSessionDuplicateRunID(t *testing.T) {
	db := newTestDB(t)
	rec := testutil.TestSessionRecord()

	testutil.AssertNoError(t, db.RecordSession(rec))
	testutil.AssertError(t, db.RecordSession(rec))

	// The failed insert must not have left partial trial rows behind.
	infos, err := db.ListSessions()
	testutil.AssertNoError(t, err)
	if len(infos) != 1 || infos[0].Trials != len(rec.Trials) {
		t.Errorf("sessions after duplicate insert = %+v", infos)
	}
}

func TestListSessions(t *testing.T) {
	db := newTestDB(t)

	older := testutil.TestSessionRecord()
	newer := testutil.TestSessionRecord()
	newer.RunID = "99999999-8888-7777-6666-555555555555"
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)

	testutil.AssertNoError(t, db.RecordSession(older))
	testutil.AssertNoError(t, db.RecordSession(newer))

	infos, err := db.ListSessions()
	testutil.AssertNoError(t, err)

	if len(infos) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(infos))
	}
	if infos[0].RunID != newer.RunID {
		t.Errorf("first listed session = %s, want newest %s", infos[0].RunID, newer.RunID)
	}
	if infos[0].Trials != 2 || infos[1].Trials != 2 {
		t.Errorf("trial counts = %d/%d, want 2/2", infos[0].Trials, infos[1].Trials)
	}
	if infos[1].Mode != session.ModeRandom {
		t.Errorf("mode = %s, want %s", infos[1].Mode, session.ModeRandom)
	}
}

func TestListSessionsEmpty(t *testing.T) {
	db := newTestDB(t)

	infos, err := db.ListSessions()
	testutil.AssertNoError(t, err)
	if len(infos) != 0 {
		t.Errorf("fresh database listed %d sessions", len(infos))
	}
}

func TestLoadSessionNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.LoadSession("no-such-run")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	db := newTestDB(t)

	testutil.AssertNoError(t, db.MigrateDown())

	version, _, err := db.MigrateVersion()
	testutil.AssertNoError(t, err)
	if version != 0 {
		t.Errorf("version after rollback = %d, want 0", version)
	}
}
