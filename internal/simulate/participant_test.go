package simulate

import (
	"testing"

	"github.com/fitts-data/pointer.report/internal/session"
)

func TestRunSessionRandomMode(t *testing.T) {
	p := NewParticipant(42)

	rec, summary, err := p.RunSession(session.Config{
		Trials:         5,
		SampleInterval: 0.01,
		Mode:           session.ModeRandom,
		CanvasWidth:    1000,
		CanvasHeight:   600,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Trials) != 5 {
		t.Fatalf("recorded %d trials, want 5", len(rec.Trials))
	}
	if summary == nil || summary.Trials != 5 {
		t.Fatalf("summary = %+v, want 5 trials", summary)
	}

	for i, trial := range rec.Trials {
		if trial.TimeElapsed <= 0 {
			t.Errorf("trial %d elapsed time %f, want > 0", i+1, trial.TimeElapsed)
		}
		if trial.TotalDistance < trial.IdealDistance {
			t.Errorf("trial %d path %f shorter than straight line %f",
				i+1, trial.TotalDistance, trial.IdealDistance)
		}
		// The wobbly path is never perfectly straight.
		if trial.Curvature <= 1 {
			t.Errorf("trial %d curvature %f, want > 1", i+1, trial.Curvature)
		}
		if trial.ReactionTime <= 0 {
			t.Errorf("trial %d reaction time %f, want > 0 with a dwell pause", i+1, trial.ReactionTime)
		}
		if len(trial.Trajectory) < 3 {
			t.Errorf("trial %d trajectory has only %d samples", i+1, len(trial.Trajectory))
		}
	}
}

func TestRunSessionPresetMode(t *testing.T) {
	p := NewParticipant(7)

	rec, _, err := p.RunSession(session.Config{
		Trials:         6,
		SampleInterval: 0.01,
		Mode:           session.ModePreset,
		CanvasWidth:    1000,
		CanvasHeight:   600,
		Distances:      []float64{120, 200, 320},
		Widths:         []float64{20, 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Plan) != 6 {
		t.Fatalf("plan has %d entries, want 6", len(rec.Plan))
	}
	for i, trial := range rec.Trials {
		if trial.PresetDistance == nil || trial.PresetWidth == nil || trial.PresetRadius == nil {
			t.Errorf("trial %d missing preset metadata: %+v", i+1, trial)
		}
	}
}

func TestRunSessionZeroConfig(t *testing.T) {
	p := NewParticipant(3)

	rec, _, err := p.RunSession(session.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Trials) != session.DefaultTrials {
		t.Errorf("recorded %d trials, want default %d", len(rec.Trials), session.DefaultTrials)
	}
}

func TestRunSessionDeterministic(t *testing.T) {
	cfg := session.Config{
		Trials:         3,
		SampleInterval: 0.01,
		Mode:           session.ModeRandom,
		CanvasWidth:    1000,
		CanvasHeight:   600,
	}

	recA, _, err := NewParticipant(99).RunSession(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recB, _, err := NewParticipant(99).RunSession(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range recA.Trials {
		a, b := recA.Trials[i], recB.Trials[i]
		if a.TotalDistance != b.TotalDistance || a.TimeElapsed != b.TimeElapsed ||
			a.TargetX != b.TargetX || a.TargetY != b.TargetY {
			t.Fatalf("trial %d differs across identical seeds: %+v != %+v", i+1, a, b)
		}
	}
}
