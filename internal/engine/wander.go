package engine

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/stardrift/stardrift/internal/points"
)

// wanderCenter is the middle of the world the merchant circles around.
var wanderCenter = mgl64.Vec2{50, 50}

// Speed modulation: the product of two out-of-phase sine waves of wall-clock
// time, so the merchant drifts, surges and slows without any input.
const (
	speedModBase  = 0.7
	speedModAmp   = 0.6
	speedModFreqA = 0.37
	speedModFreqB = 0.91
	speedModShift = 1.3
)

// Wanderer drives the autonomous merchant vessel: random heading changes,
// organic speed variation, and a pause-near-points-of-interest habit with a
// cooldown so it doesn't loiter forever.
type Wanderer struct {
	cfg *Config
	rng *rand.Rand

	pos           mgl64.Vec2
	heading       float64 // radians
	targetHeading float64
	headingTimer  int // ticks until the next heading resample

	paused         bool
	pauseTimer     int
	cooldown       int
	recentlyPaused bool

	lastSpeed    float64
	distToPlayer float64
	nearestPOI   float64
}

// WanderSnapshot is the read-only per-tick view exposed for rendering and
// proximity audio cues.
type WanderSnapshot struct {
	X, Y             float64
	Rotation         float64 // degrees, 0 = up, clockwise
	Paused           bool
	Moving           bool
	DistanceToPlayer float64
	NearestPOI       float64
}

// NewWanderer spawns the merchant at a random spot inside its domain with a
// randomized heading.
func NewWanderer(cfg *Config, rng *rand.Rand) *Wanderer {
	ang := rng.Float64() * 2 * math.Pi
	dist := 10 + rng.Float64()*(cfg.WanderRadius-15)
	heading := rng.Float64() * 2 * math.Pi
	return &Wanderer{
		cfg: cfg,
		rng: rng,
		pos: wanderCenter.Add(mgl64.Vec2{
			math.Cos(ang) * dist,
			math.Sin(ang) * dist,
		}),
		heading:       heading,
		targetHeading: heading,
		headingTimer:  cfg.HeadingMinTicks + rng.IntN(cfg.HeadingMaxTicks-cfg.HeadingMinTicks),
		nearestPOI:    math.Inf(1),
		distToPlayer:  math.Inf(1),
	}
}

// Tick advances the merchant by one fixed 16 ms step. now is wall-clock
// time in seconds, pts the current point layout.
func (w *Wanderer) Tick(now float64, pts []points.Point) {
	w.distToPlayer = w.pos.Sub(wanderCenter).Len()
	w.nearestPOI = nearestPointDistance(w.pos, pts)

	if w.cooldown > 0 {
		w.cooldown--
	}

	if w.paused {
		w.pauseTimer--
		if w.pauseTimer <= 0 {
			w.paused = false
			w.recentlyPaused = true
			w.cooldown = w.cfg.PauseCooldown
		}
	} else if w.nearestPOI < w.cfg.PauseNearDistance && !w.recentlyPaused && w.cooldown == 0 {
		w.paused = true
		w.pauseTimer = w.cfg.PauseMinTicks +
			w.rng.IntN(w.cfg.PauseMaxTicks-w.cfg.PauseMinTicks)
	}

	// Once the merchant has drifted clear of the point it stopped at, it is
	// allowed to stop again later.
	if w.nearestPOI > w.cfg.PauseResetDistance {
		w.recentlyPaused = false
	}

	if w.paused {
		w.lastSpeed = 0
		return
	}

	w.headingTimer--
	if w.headingTimer <= 0 {
		w.targetHeading = w.rng.Float64() * 2 * math.Pi
		w.headingTimer = w.cfg.HeadingMinTicks +
			w.rng.IntN(w.cfg.HeadingMaxTicks-w.cfg.HeadingMinTicks)
	}
	// Always turn along the shortest arc, never snap.
	w.heading += angleDeltaRad(w.heading, w.targetHeading) * w.cfg.WanderHeadingLerp

	speed := w.cfg.WanderBaseSpeed * speedModulation(now)
	w.lastSpeed = speed

	next := w.pos.Add(mgl64.Vec2{
		math.Cos(w.heading) * speed,
		math.Sin(w.heading) * speed,
	})
	fromCenter := next.Sub(wanderCenter)
	dist := fromCenter.Len()

	switch {
	case dist > w.cfg.WanderHardRadius:
		// Too far out: snap back onto the boundary circle.
		w.pos = wanderCenter.Add(fromCenter.Mul(w.cfg.WanderRadius / dist))
		w.turnToward(wanderCenter)
	case dist > w.cfg.WanderRadius:
		// Crossing the soft boundary: hold position this tick and steer the
		// heading back inward, so there is never a visible jump.
		w.turnToward(wanderCenter)
	default:
		w.pos = next
	}
}

// turnToward points the target heading at p with a random perturbation so
// boundary bounces don't look mechanical.
func (w *Wanderer) turnToward(p mgl64.Vec2) {
	d := p.Sub(w.pos)
	w.targetHeading = math.Atan2(d.Y(), d.X()) + (w.rng.Float64()-0.5)*1.6
}

// speedModulation returns the organic speed factor at wall-clock time t.
func speedModulation(t float64) float64 {
	return speedModBase + speedModAmp*math.Sin(t*speedModFreqA)*math.Sin(t*speedModFreqB+speedModShift)
}

// Snapshot returns the merchant's current read-only state.
func (w *Wanderer) Snapshot() WanderSnapshot {
	return WanderSnapshot{
		X:                w.pos.X(),
		Y:                w.pos.Y(),
		Rotation:         RotationDeg(math.Cos(w.heading), math.Sin(w.heading)),
		Paused:           w.paused,
		Moving:           !w.paused && w.lastSpeed > 1e-6,
		DistanceToPlayer: w.distToPlayer,
		NearestPOI:       w.nearestPOI,
	}
}

// nearestPointDistance returns the distance from pos to the closest point,
// or +Inf when the layout is empty.
func nearestPointDistance(pos mgl64.Vec2, pts []points.Point) float64 {
	best := math.Inf(1)
	for _, p := range pts {
		d := pos.Sub(mgl64.Vec2{p.X, p.Y}).Len()
		if d < best {
			best = d
		}
	}
	return best
}
