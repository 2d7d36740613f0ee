// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/session"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// StraightTrajectory builds a constant-velocity horizontal trajectory
// of n samples starting at (x, y), stepping dx px every dt seconds.
func StraightTrajectory(x, y, dx, dt float64, n int) kinematics.Trajectory {
	traj := make(kinematics.Trajectory, n)
	for i := 0; i < n; i++ {
		traj[i] = kinematics.Sample{X: x + dx*float64(i), Y: y, T: dt * float64(i)}
	}
	return traj
}

// TestSessionRecord builds a small finalized session record with two
// analyzed trials, suitable for export/storage/API fixtures.
func TestSessionRecord() *session.Record {
	first := StraightTrajectory(500, 300, 20, 0.05, 3)
	second := kinematics.Trajectory{
		{X: 540, Y: 300, T: 0.2},
		{X: 560, Y: 320, T: 0.25},
		{X: 600, Y: 340, T: 0.3},
		{X: 620, Y: 350, T: 0.35},
	}

	return &session.Record{
		RunID:          "11111111-2222-3333-4444-555555555555",
		CreatedAt:      time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
		Platform:       "linux/amd64",
		Canvas:         session.Canvas{Width: 1000, Height: 600},
		DefaultRadius:  20,
		SampleInterval: 0.01,
		Mode:           session.ModeRandom,
		Trials: []kinematics.TrialResult{
			kinematics.Analyze(first, 540, 300, 20),
			kinematics.Analyze(second, 620, 350, 20),
		},
	}
}
