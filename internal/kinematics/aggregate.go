package kinematics

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrNoTrials is returned when a summary is requested for a session
// with no completed trials.
var ErrNoTrials = errors.New("no completed trials to aggregate")

// Summary holds arithmetic means over a session's completed trials.
type Summary struct {
	Trials        int     `json:"trials"`
	AvgTime       float64 `json:"avg_time"`
	AvgSpeed      float64 `json:"avg_speed"`
	AvgCurvature  float64 `json:"avg_curvature"`
	AvgThroughput float64 `json:"avg_throughput"`
}

// Aggregate reduces a session's trial list to summary statistics.
func Aggregate(trials []TrialResult) (Summary, error) {
	if len(trials) == 0 {
		return Summary{}, ErrNoTrials
	}

	times := make([]float64, len(trials))
	speeds := make([]float64, len(trials))
	curvatures := make([]float64, len(trials))
	throughputs := make([]float64, len(trials))
	for i, t := range trials {
		times[i] = t.TimeElapsed
		speeds[i] = t.AvgSpeed
		curvatures[i] = t.Curvature
		throughputs[i] = t.Throughput
	}

	return Summary{
		Trials:        len(trials),
		AvgTime:       stat.Mean(times, nil),
		AvgSpeed:      stat.Mean(speeds, nil),
		AvgCurvature:  stat.Mean(curvatures, nil),
		AvgThroughput: stat.Mean(throughputs, nil),
	}, nil
}
