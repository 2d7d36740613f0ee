// Package session drives the trial/session lifecycle for a pointing
// task. The Controller is a single-threaded state machine advanced one
// event at a time by a host event loop; it owns the open trajectory,
// the trial index and the session record exclusively.
package session

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/fitts-data/pointer.report/internal/kinematics"
	"github.com/fitts-data/pointer.report/internal/placement"
	"github.com/fitts-data/pointer.report/internal/plan"
	"github.com/fitts-data/pointer.report/internal/timeutil"
)

// State is the controller's lifecycle state.
type State string

const (
	// StateIdle means no active session.
	StateIdle State = "idle"
	// StateAwaitingStart means a session is configured and waiting
	// for the participant to activate the start marker.
	StateAwaitingStart State = "awaiting_start"
	// StateRecording means a trial is open and motion samples are
	// being collected.
	StateRecording State = "recording"
)

// Defaults substituted for invalid configuration values.
const (
	DefaultTrials         = 10
	DefaultSampleInterval = 0.01 // seconds (100 Hz)
	DefaultTargetRadius   = 20.0 // px
	DefaultCanvasWidth    = 1000.0
	DefaultCanvasHeight   = 600.0
)

// DefaultDistances and DefaultWidths are the preset design values used
// when a preset-mode session is started without explicit ones.
var (
	DefaultDistances = []float64{120, 200, 320}
	DefaultWidths    = []float64{20, 40}
)

// Config is the per-session configuration surface. Invalid values are
// not fatal: Start substitutes the documented defaults and proceeds.
type Config struct {
	Trials         int
	SampleInterval float64 // seconds between accepted motion samples
	Mode           Mode
	CanvasWidth    float64
	CanvasHeight   float64
	DefaultRadius  float64
	Distances      []float64 // preset mode design distances (px)
	Widths         []float64 // preset mode design widths (px)
}

// Target describes the currently bound target so the host can render
// it and report hits against it. ID is compared on TargetHit events;
// hits carrying any other ID are ignored.
type Target struct {
	ID     string
	X      float64
	Y      float64
	Radius float64
}

// Outcome reports what an event produced. Fields are nil when the
// event produced nothing of that kind.
type Outcome struct {
	State   State
	Target  *Target                 // set when a new target was spawned
	Trial   *kinematics.TrialResult // set when a trial completed
	Summary *kinematics.Summary     // set when the session finalized
	Record  *Record                 // set when the session finalized
}

// Controller orchestrates trial lifecycle and session progression.
// Not safe for concurrent use: the host must deliver events one at a
// time, in order.
type Controller struct {
	clock  timeutil.Clock
	placer *placement.Placer
	rng    *rand.Rand

	state State
	cfg   Config
	epoch time.Time

	record     *Record
	trialPlan  []plan.Entry
	trialIndex int // 1-based index of the open trial

	trajectory  kinematics.Trajectory
	lastSampleT float64
	refX, refY  float64
	target      Target
}

// NewController builds an idle controller. clock and rng are
// injectable for deterministic testing; nil selects the real clock
// and a time-seeded source.
func NewController(clock timeutil.Clock, rng *rand.Rand) *Controller {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		clock:  clock,
		placer: placement.New(rng),
		rng:    rng,
		state:  StateIdle,
		epoch:  clock.Now(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// CurrentTarget returns the bound target while a trial is open.
func (c *Controller) CurrentTarget() (Target, bool) {
	if c.state != StateRecording {
		return Target{}, false
	}
	return c.target, true
}

// Record returns the session record accumulated so far. Callers must
// treat it as read-only.
func (c *Controller) Record() *Record {
	return c.record
}

// now returns seconds on the session's monotonic clock.
func (c *Controller) now() float64 {
	return c.clock.Since(c.epoch).Seconds()
}

// sanitize replaces invalid configuration values with defaults.
func sanitize(cfg Config) Config {
	if cfg.Trials <= 0 {
		cfg.Trials = DefaultTrials
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if cfg.Mode != ModeRandom && cfg.Mode != ModePreset {
		cfg.Mode = ModeRandom
	}
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = DefaultCanvasWidth
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = DefaultCanvasHeight
	}
	if cfg.DefaultRadius <= 0 {
		cfg.DefaultRadius = DefaultTargetRadius
	}
	if len(cfg.Distances) == 0 {
		cfg.Distances = DefaultDistances
	}
	if len(cfg.Widths) == 0 {
		cfg.Widths = DefaultWidths
	}
	return cfg
}

// Start begins a new session: validates the configuration, resets the
// session record, builds the trial plan in preset mode and moves to
// AwaitingStart. Starting over an in-flight session discards it.
func (c *Controller) Start(cfg Config) {
	c.cfg = sanitize(cfg)

	c.record = &Record{
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now(),
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		Canvas:         Canvas{Width: c.cfg.CanvasWidth, Height: c.cfg.CanvasHeight},
		DefaultRadius:  c.cfg.DefaultRadius,
		SampleInterval: c.cfg.SampleInterval,
		Mode:           c.cfg.Mode,
	}

	c.trialPlan = nil
	if c.cfg.Mode == ModePreset {
		c.trialPlan = plan.Build(c.cfg.Distances, c.cfg.Widths, c.cfg.Trials, c.rng)
		c.record.Plan = c.trialPlan
	}

	c.trialIndex = 0
	c.trajectory = nil
	c.target = Target{}
	c.state = StateAwaitingStart
}

// HandleEvent is the single event-intake function: it switches on the
// current state and the event kind, mutates the controller and returns
// whatever artifacts the event produced. Events that do not apply to
// the current state are ignored without side effects.
func (c *Controller) HandleEvent(ev Event) Outcome {
	switch e := ev.(type) {
	case Resize:
		if e.Width > 0 && e.Height > 0 {
			c.cfg.CanvasWidth = e.Width
			c.cfg.CanvasHeight = e.Height
			if c.record != nil {
				c.record.Canvas = Canvas{Width: e.Width, Height: e.Height}
			}
		}
		return Outcome{State: c.state}

	case StartMark:
		if c.state != StateAwaitingStart {
			return Outcome{State: c.state}
		}
		c.refX, c.refY = e.X, e.Y
		c.state = StateRecording
		target := c.spawnTrial()
		return Outcome{State: c.state, Target: &target}

	case Motion:
		if c.state != StateRecording {
			return Outcome{State: c.state}
		}
		now := c.now()
		if AcceptSample(now, c.lastSampleT, c.cfg.SampleInterval) {
			c.trajectory = append(c.trajectory, kinematics.Sample{X: e.X, Y: e.Y, T: now})
			c.lastSampleT = now
		}
		return Outcome{State: c.state}

	case TargetHit:
		if c.state != StateRecording || e.TargetID != c.target.ID {
			return Outcome{State: c.state}
		}
		return c.completeTrial(e)

	case Stop:
		if c.state != StateAwaitingStart && c.state != StateRecording {
			return Outcome{State: c.state}
		}
		if c.record == nil || len(c.record.Trials) == 0 {
			c.state = StateIdle
			c.record = nil
			return Outcome{State: c.state}
		}
		return c.summarize(Outcome{})

	default:
		return Outcome{State: c.state}
	}
}

// spawnTrial opens the next trial: seeds a fresh trajectory with the
// reference point, places a target per the session mode and binds it
// for hit detection.
func (c *Controller) spawnTrial() Target {
	c.trialIndex++
	now := c.now()
	c.trajectory = kinematics.Trajectory{{X: c.refX, Y: c.refY, T: now}}
	c.lastSampleT = now

	if c.cfg.Mode == ModePreset && c.trialIndex-1 < len(c.trialPlan) {
		entry := &c.trialPlan[c.trialIndex-1]
		placed := c.placer.Controlled(c.refX, c.refY, c.cfg.CanvasWidth, c.cfg.CanvasHeight, entry.Distance, entry.Width)
		entry.TargetPos = &[2]float64{placed.X, placed.Y}
		entry.Radius = &placed.Radius
		c.target = Target{ID: uuid.NewString(), X: placed.X, Y: placed.Y, Radius: placed.Radius}
	} else {
		tx, ty := c.placer.Free(c.refX, c.refY, c.cfg.CanvasWidth, c.cfg.CanvasHeight,
			placement.DefaultFreeMargin, placement.DefaultMinSeparation)
		c.target = Target{ID: uuid.NewString(), X: tx, Y: ty, Radius: c.cfg.DefaultRadius}
	}
	return c.target
}

// completeTrial closes the open trial on a hit: appends the hit point
// as the final sample, analyzes the trajectory, merges plan metadata
// in preset mode and either spawns the next trial or summarizes.
func (c *Controller) completeTrial(hit TargetHit) Outcome {
	c.trajectory = append(c.trajectory, kinematics.Sample{X: hit.X, Y: hit.Y, T: c.now()})

	result := kinematics.Analyze(c.trajectory, c.target.X, c.target.Y, c.target.Radius)
	if c.cfg.Mode == ModePreset && c.trialIndex-1 < len(c.trialPlan) {
		entry := c.trialPlan[c.trialIndex-1]
		result.PresetDistance = &entry.Distance
		result.PresetWidth = &entry.Width
		result.PresetRadius = entry.Radius
		result.PresetTargetPos = entry.TargetPos
	}
	c.record.Trials = append(c.record.Trials, result)
	c.refX, c.refY = hit.X, hit.Y
	c.trajectory = nil

	out := Outcome{Trial: &result}
	if c.trialIndex < c.cfg.Trials {
		target := c.spawnTrial()
		out.State = c.state
		out.Target = &target
		return out
	}
	return c.summarize(out)
}

// summarize finalizes the session record, aggregates trial metrics and
// returns to Idle. Only called with at least one completed trial.
func (c *Controller) summarize(out Outcome) Outcome {
	summary, err := kinematics.Aggregate(c.record.Trials)
	if err == nil {
		out.Summary = &summary
	}
	out.Record = c.record
	c.record = nil
	c.target = Target{}
	c.trajectory = nil
	c.state = StateIdle
	out.State = c.state
	return out
}
