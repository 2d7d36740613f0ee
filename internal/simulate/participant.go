// Package simulate drives the session engine with a synthetic
// participant: deterministic point-to-point pointer movement generated
// from a seeded random source and a mock clock. Used by the dev-mode
// binary and integration tests; it exercises the engine only through
// its public event interface.
package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/session"
	"github.com/fitts-data/pointer.report/internal/timeutil"
)

const (
	// motionStep is the synthetic pointer event cadence.
	motionStep = 8 * time.Millisecond

	// dwellBeforeMove approximates the participant's reaction pause
	// after a target appears.
	dwellBeforeMove = 120 * time.Millisecond

	// wobbleAmplitude scales the perpendicular deviation from the
	// straight path, so simulated trajectories have curvature > 1.
	wobbleAmplitude = 12.0
)

// Participant generates synthetic pointing movement.
type Participant struct {
	rng   *rand.Rand
	clock *timeutil.MockClock
}

// NewParticipant returns a deterministic participant for the seed.
func NewParticipant(seed int64) *Participant {
	return &Participant{
		rng:   rand.New(rand.NewSource(seed)),
		clock: timeutil.NewMockClock(time.Unix(0, 0)),
	}
}

// Clock exposes the participant's mock clock so it can be shared with
// the controller under test.
func (p *Participant) Clock() *timeutil.MockClock {
	return p.clock
}

// RunSession plays a full session against a fresh controller: start
// marker at the canvas centre, then move-and-hit for every spawned
// target until the session summarizes.
func (p *Participant) RunSession(cfg session.Config) (*session.Record, *kinematics.Summary, error) {
	ctrl := session.NewController(p.clock, p.rng)
	ctrl.Start(cfg)

	w, h := cfg.CanvasWidth, cfg.CanvasHeight
	if w <= 0 {
		w = session.DefaultCanvasWidth
	}
	if h <= 0 {
		h = session.DefaultCanvasHeight
	}

	curX, curY := w/2, h/2
	out := ctrl.HandleEvent(session.StartMark{X: curX, Y: curY})
	if out.Target == nil {
		return nil, nil, fmt.Errorf("start marker produced no target (state %s)", out.State)
	}

	for out.Target != nil {
		target := *out.Target
		out = p.moveAndHit(ctrl, curX, curY, target)
		curX, curY = target.X, target.Y
	}

	if out.Record == nil {
		return nil, nil, fmt.Errorf("session ended without a record (state %s)", out.State)
	}
	return out.Record, out.Summary, nil
}

// moveAndHit emits throttled motion events along a wobbly path from
// (fromX, fromY) to the target, then a hit event at its centre.
func (p *Participant) moveAndHit(ctrl *session.Controller, fromX, fromY float64, target session.Target) session.Outcome {
	// Reaction pause: the pointer rests before movement begins.
	p.clock.Advance(dwellBeforeMove)
	ctrl.HandleEvent(session.Motion{X: fromX, Y: fromY})

	dx, dy := target.X-fromX, target.Y-fromY
	dist := math.Hypot(dx, dy)
	steps := int(dist/6) + 10

	// Unit vector perpendicular to the direct path, for wobble.
	px, py := 0.0, 0.0
	if dist > 0 {
		px, py = -dy/dist, dx/dist
	}
	wobble := wobbleAmplitude * (0.5 + p.rng.Float64())

	for i := 1; i <= steps; i++ {
		p.clock.Advance(motionStep)
		frac := float64(i) / float64(steps)
		off := wobble * math.Sin(frac*math.Pi) * (1 + 0.2*(p.rng.Float64()-0.5))
		x := fromX + dx*frac + px*off
		y := fromY + dy*frac + py*off
		ctrl.HandleEvent(session.Motion{X: x, Y: y})
	}

	p.clock.Advance(motionStep)
	return ctrl.HandleEvent(session.TargetHit{X: target.X, Y: target.Y, TargetID: target.ID})
}
