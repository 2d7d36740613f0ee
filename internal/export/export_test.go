package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fitts-data/pointer.report/internal/testutil"
)

func TestWriteCSV(t *testing.T) {
	rec := testutil.TestSessionRecord()

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteCSV(&buf, rec))

	rows, err := csv.NewReader(&buf).ReadAll()
	testutil.AssertNoError(t, err)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 trials", len(rows))
	}

	for i, h := range CSVHeaders {
		if rows[0][i] != h {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], h)
		}
	}

	// First trial: constant-velocity 40 px straight line over 0.1 s
	// onto a target dead ahead, so every derived metric is exact.
	want := []string{
		"1",        // Trial_ID
		"0.1000",   // Time_Sec
		"40.00",    // Distance_Px
		"40.00",    // Ideal_Distance_Px
		"400.00",   // Speed_PxSec
		"1.0000",   // Curvature
		"1.0000",   // Index_of_Difficulty_Bits
		"10.0000",  // Throughput_Bits_Sec
		"540",      // Target_X
		"300",      // Target_Y
		"400.00",   // Peak_Velocity_PxSec
		"0.0500",   // Reaction_Time_Sec
	}
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Errorf("first trial row mismatch (-want +got):\n%s", diff)
	}

	if rows[2][0] != "2" {
		t.Errorf("second trial ID = %q, want 2", rows[2][0])
	}
}

func TestWriteCSVEmptySession(t *testing.T) {
	rec := testutil.TestSessionRecord()
	rec.Trials = nil

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteCSV(&buf, rec))

	rows, err := csv.NewReader(&buf).ReadAll()
	testutil.AssertNoError(t, err)
	if len(rows) != 1 {
		t.Fatalf("empty session wrote %d rows, want header only", len(rows))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	rec := testutil.TestSessionRecord()

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteJSON(&buf, rec))

	// Metadata keys are stable identifiers consumed by downstream
	// tooling, so check them by name rather than through the decoder.
	raw := buf.String()
	for _, key := range []string{
		`"run_id"`, `"created_at"`, `"os"`, `"screen"`,
		`"target_default_radius"`, `"min_sample_interval_sec"`,
		`"experiment_mode"`, `"trials"`, `"trajectory"`,
	} {
		if !strings.Contains(raw, key) {
			t.Errorf("JSON export missing key %s", key)
		}
	}

	got, err := ReadJSON(&buf)
	testutil.AssertNoError(t, err)

	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONTrajectoryShape(t *testing.T) {
	rec := testutil.TestSessionRecord()

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteJSON(&buf, rec))

	// Samples serialize as flat [x, y, t] triples, not objects.
	var doc struct {
		Trials []struct {
			Trajectory [][3]float64 `json:"trajectory"`
		} `json:"trials"`
	}
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &doc))

	if len(doc.Trials) != 2 {
		t.Fatalf("decoded %d trials, want 2", len(doc.Trials))
	}
	first := doc.Trials[0].Trajectory
	if len(first) != 3 {
		t.Fatalf("first trajectory has %d triples, want 3", len(first))
	}
	if first[0] != [3]float64{500, 300, 0} {
		t.Errorf("first triple = %v, want [500 300 0]", first[0])
	}
}

func TestSaveSession(t *testing.T) {
	dir := t.TempDir()
	rec := testutil.TestSessionRecord()

	csvPath, jsonPath, err := SaveSession(dir, rec)
	testutil.AssertNoError(t, err)

	wantStem := "session_20260203_103000_11111111"
	if filepath.Base(csvPath) != wantStem+".csv" {
		t.Errorf("csv path = %s, want %s.csv", filepath.Base(csvPath), wantStem)
	}
	if filepath.Base(jsonPath) != wantStem+".json" {
		t.Errorf("json path = %s, want %s.json", filepath.Base(jsonPath), wantStem)
	}

	for _, p := range []string{csvPath, jsonPath} {
		info, err := os.Stat(p)
		testutil.AssertNoError(t, err)
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}

	f, err := os.Open(jsonPath)
	testutil.AssertNoError(t, err)
	defer f.Close()
	got, err := ReadJSON(f)
	testutil.AssertNoError(t, err)
	if got.RunID != rec.RunID {
		t.Errorf("saved run ID = %s, want %s", got.RunID, rec.RunID)
	}
}

func TestSaveSessionCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, _, err := SaveSession(dir, testutil.TestSessionRecord())
	testutil.AssertNoError(t, err)
}
