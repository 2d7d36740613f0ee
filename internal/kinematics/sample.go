// Package kinematics converts recorded pointer trajectories into
// per-trial movement metrics and session-level summaries.
package kinematics

import (
	"encoding/json"
	"fmt"
	"math"
)

// Sample is a single throttled pointer observation. Timestamps are
// seconds on the session's monotonic clock and are non-decreasing
// within a trajectory.
type Sample struct {
	X float64
	Y float64
	T float64
}

// MarshalJSON encodes a sample as an [x, y, t] triple to match the
// persisted session format.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{s.X, s.Y, s.T})
}

// UnmarshalJSON decodes an [x, y, t] triple.
func (s *Sample) UnmarshalJSON(data []byte) error {
	var v [3]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to parse trajectory sample: %w", err)
	}
	s.X, s.Y, s.T = v[0], v[1], v[2]
	return nil
}

// Trajectory is an ordered sequence of samples. The first element is
// the trial's start position and the last is the hit position.
type Trajectory []Sample

// Clone returns an independent copy of the trajectory.
func (tr Trajectory) Clone() Trajectory {
	if tr == nil {
		return nil
	}
	out := make(Trajectory, len(tr))
	copy(out, tr)
	return out
}

// PathLength returns the sum of Euclidean distances between
// consecutive samples.
func (tr Trajectory) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(tr); i++ {
		total += math.Hypot(tr[i].X-tr[i-1].X, tr[i].Y-tr[i-1].Y)
	}
	return total
}
