// Package placement computes target positions for pointing trials.
//
// Two policies are supported: free placement draws a uniform position
// away from the canvas edges and the previous hit point; controlled
// placement searches for an angle that puts the target at an exact
// distance from the previous hit point while staying on the canvas.
package placement

import (
	"math"
	"math/rand"
)

const (
	// DefaultMinSeparation is the minimum distance (px) between a
	// freely placed target and the reference point.
	DefaultMinSeparation = 80.0

	// DefaultFreeMargin keeps freely placed targets away from the
	// canvas edges.
	DefaultFreeMargin = 100.0

	// maxFreeAttempts bounds the redraw loop in free placement; the
	// last draw is accepted unconditionally so placement always
	// terminates.
	maxFreeAttempts = 30

	// maxAngleAttempts bounds the angular search in controlled
	// placement before falling back to free placement.
	maxAngleAttempts = 36

	// controlledMarginBase is added to the target radius to form the
	// edge margin for controlled placement.
	controlledMarginBase = 10.0

	// MinTargetRadius is the smallest radius a controlled target may
	// have regardless of the requested width.
	MinTargetRadius = 2.0
)

// Target is a placed target: a centre position and a radius.
type Target struct {
	X      float64
	Y      float64
	Radius float64
}

// Placer places targets using an injected random source so placement
// is deterministic under test. Placer methods are pure functions of
// their arguments and the random stream.
type Placer struct {
	rng *rand.Rand
}

// New returns a Placer drawing from rng.
func New(rng *rand.Rand) *Placer {
	return &Placer{rng: rng}
}

// Free draws a position uniformly within
// [margin, width-margin] x [margin, height-margin], redrawing while
// the candidate is closer than minSep to (refX, refY). After
// maxFreeAttempts failed draws the current candidate is accepted
// unconditionally. A degenerate range (width-margin <= margin) clamps
// the upper bound to margin+1.
func (p *Placer) Free(refX, refY, width, height, margin, minSep float64) (float64, float64) {
	hiX := math.Max(width-margin, margin+1)
	hiY := math.Max(height-margin, margin+1)

	var tx, ty float64
	for attempts := 0; ; attempts++ {
		tx = margin + p.rng.Float64()*(hiX-margin)
		ty = margin + p.rng.Float64()*(hiY-margin)
		if math.Hypot(tx-refX, ty-refY) >= minSep || attempts >= maxFreeAttempts {
			return tx, ty
		}
	}
}

// Controlled places a target at the given distance from (refX, refY)
// with the given nominal width. Up to maxAngleAttempts uniformly
// random angles are tried; the first candidate within
// [margin, dim-margin] on both axes wins, where margin is
// controlledMarginBase plus the radius. If no angle fits, placement
// falls back to the free policy at the same radius.
func (p *Placer) Controlled(refX, refY, width, height, distance, targetWidth float64) Target {
	radius := math.Max(MinTargetRadius, math.Round(targetWidth/2))
	margin := controlledMarginBase + radius

	for attempts := 0; attempts < maxAngleAttempts; attempts++ {
		ang := p.rng.Float64() * 2 * math.Pi
		tx := refX + distance*math.Cos(ang)
		ty := refY + distance*math.Sin(ang)
		if tx >= margin && tx <= width-margin && ty >= margin && ty <= height-margin {
			return Target{X: tx, Y: ty, Radius: radius}
		}
	}

	// No angle keeps the requested distance on the canvas; keep the
	// radius but give up on the exact distance.
	tx, ty := p.Free(refX, refY, width, height, DefaultFreeMargin, DefaultMinSeparation)
	return Target{X: tx, Y: ty, Radius: radius}
}
