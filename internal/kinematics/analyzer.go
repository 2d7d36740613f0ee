package kinematics

import "math"

// MoveThreshold is the cumulative displacement (px) at which the
// participant is considered to have started moving. Reaction time is
// the timestamp offset of the first sample where cumulative
// displacement reaches this threshold.
const MoveThreshold = 5.0

// TrialResult holds the derived metrics for one completed trial along
// with the trajectory that produced them. Immutable after creation.
//
// JSON field names match the persisted session format.
type TrialResult struct {
	TimeElapsed       float64    `json:"time"`
	TotalDistance     float64    `json:"distance"`
	IdealDistance     float64    `json:"ideal_distance"`
	AvgSpeed          float64    `json:"speed"`
	Curvature         float64    `json:"curvature"`
	IndexOfDifficulty float64    `json:"id"`
	Throughput        float64    `json:"throughput"`
	TargetX           float64    `json:"target_x"`
	TargetY           float64    `json:"target_y"`
	PeakVelocity      float64    `json:"peak_velocity"`
	ReactionTime      float64    `json:"reaction_time"`
	Trajectory        Trajectory `json:"trajectory"`

	// Design parameters, set by the controller in preset mode only.
	PresetDistance  *float64    `json:"preset_distance,omitempty"`
	PresetWidth     *float64    `json:"preset_width,omitempty"`
	PresetRadius    *float64    `json:"preset_radius,omitempty"`
	PresetTargetPos *[2]float64 `json:"preset_target_pos,omitempty"`
}

// Analyze computes the metrics record for a recorded trajectory
// against the trial's target. It is a pure function: the result holds
// an independent copy of the trajectory, so re-analyzing the same
// input always yields the same record.
//
// Trajectories with fewer than two samples produce a zero-valued
// record (curvature 1 by convention) with the trajectory preserved.
func Analyze(traj Trajectory, targetX, targetY, targetRadius float64) TrialResult {
	if len(traj) < 2 {
		return TrialResult{
			Curvature:  1,
			TargetX:    targetX,
			TargetY:    targetY,
			Trajectory: traj.Clone(),
		}
	}

	totalDistance := 0.0
	peakVelocity := 0.0
	for i := 1; i < len(traj); i++ {
		d := math.Hypot(traj[i].X-traj[i-1].X, traj[i].Y-traj[i-1].Y)
		dt := traj[i].T - traj[i-1].T
		totalDistance += d
		// Zero-duration segments carry no velocity information.
		if dt > 0 && d/dt > peakVelocity {
			peakVelocity = d / dt
		}
	}

	first, last := traj[0], traj[len(traj)-1]
	idealDistance := math.Hypot(last.X-first.X, last.Y-first.Y)

	timeElapsed := 0.0
	if last.T > first.T {
		timeElapsed = last.T - first.T
	}

	avgSpeed := 0.0
	if timeElapsed > 0 {
		avgSpeed = totalDistance / timeElapsed
	}

	curvature := 1.0
	if idealDistance > 0 {
		curvature = totalDistance / idealDistance
	}

	// Reaction time: offset of the first sample at which cumulative
	// displacement from the start reaches MoveThreshold. Zero if the
	// threshold is never reached.
	reactionTime := 0.0
	accDist := 0.0
	for i := 1; i < len(traj); i++ {
		accDist += math.Hypot(traj[i].X-traj[i-1].X, traj[i].Y-traj[i-1].Y)
		if accDist >= MoveThreshold {
			reactionTime = traj[i].T - first.T
			break
		}
	}

	// Fitts ID with the target diameter standing in for effective
	// width. A stricter model would estimate We from the hit-offset
	// distribution.
	width := 2 * targetRadius
	indexOfDifficulty := 0.0
	if width > 0 {
		indexOfDifficulty = math.Log2(idealDistance/width + 1)
	}
	throughput := 0.0
	if timeElapsed > 0 {
		throughput = indexOfDifficulty / timeElapsed
	}

	return TrialResult{
		TimeElapsed:       timeElapsed,
		TotalDistance:     totalDistance,
		IdealDistance:     idealDistance,
		AvgSpeed:          avgSpeed,
		Curvature:         curvature,
		IndexOfDifficulty: indexOfDifficulty,
		Throughput:        throughput,
		TargetX:           targetX,
		TargetY:           targetY,
		PeakVelocity:      peakVelocity,
		ReactionTime:      reactionTime,
		Trajectory:        traj.Clone(),
	}
}
