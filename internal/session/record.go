package session

import (
	"time"

	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/plan"
)

// Mode selects how targets are placed across a session.
type Mode string

const (
	// ModeRandom places each target uniformly at random, away from
	// the previous hit point.
	ModeRandom Mode = "random"

	// ModePreset follows a shuffled distance x width design.
	ModePreset Mode = "preset"
)

// Canvas holds the pointing surface dimensions in pixels.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Record is the full outcome of one session: metadata, the trial plan
// (preset mode) and one TrialResult per completed trial, in completion
// order. It grows while the session runs and is read-only once the
// controller has summarized it.
//
// JSON field names match the persisted session format.
type Record struct {
	RunID          string                   `json:"run_id"`
	CreatedAt      time.Time                `json:"created_at"`
	Platform       string                   `json:"os"`
	Canvas         Canvas                   `json:"screen"`
	DefaultRadius  float64                  `json:"target_default_radius"`
	SampleInterval float64                  `json:"min_sample_interval_sec"`
	Mode           Mode                     `json:"experiment_mode"`
	Plan           []plan.Entry             `json:"trial_plan,omitempty"`
	Trials         []kinematics.TrialResult `json:"trials"`
}
