// Package engine is the galaxy map simulation core: player navigation over a
// toroidal world, the circular boundary model, the wandering merchant NPC,
// and the per-frame orchestration of the starfield particle pool.
//
// The engine owns no rendering, audio or storage. It consumes pointer-delta
// events and a point-of-interest list, and produces read-only snapshots and
// draw lists for whatever host drives it.
package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/stardrift/stardrift/internal/points"
	"github.com/stardrift/stardrift/internal/starfield"
)

// npcStep is the fixed merchant-controller step, decoupled from render rate.
const npcStep = 0.016

// Notifier receives fire-and-forget simulation events for an external
// audio/UI layer. Implementations must not block.
type Notifier interface {
	Collision()
	AutopilotEngaged()
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Collision()        {}
func (NopNotifier) AutopilotEngaged() {}

// Engine holds the whole simulation state. It is not safe for concurrent
// use: one goroutine calls input handlers and Advance, per the single
// writer per tick contract.
type Engine struct {
	cfg    Config
	notify Notifier
	log    *MessageLog

	// Player ship, world percent / percent per tick.
	shipPos   mgl64.Vec2
	vel       mgl64.Vec2
	rot       float64
	targetRot float64

	// Visual camera offset, map units, wraps at +/- Config.OffsetWrap.
	offset mgl64.Vec2

	// Drag / hold / autopilot.
	dragging     bool
	dragDist     float64
	pointer      mgl64.Vec2
	holdArmed    bool
	holdProgress float64
	autopilot    bool

	// Transient effects.
	collideLeft float64
	repulseDir  mgl64.Vec2
	repulseLeft float64
	resetLeft   float64

	pts    []points.Point
	wander *Wanderer
	npcAcc float64

	shower  *starfield.Shower
	elapsed float64
}

// New builds an engine with injected collaborators. viewW/viewH is the host
// viewport in pixels (the shooting-star pool spawns around it); notify may
// be nil.
func New(cfg Config, viewW, viewH float64, notify Notifier, rng *rand.Rand) *Engine {
	if notify == nil {
		notify = NopNotifier{}
	}
	e := &Engine{
		cfg:     cfg,
		notify:  notify,
		log:     NewMessageLog(50, 52),
		shipPos: mgl64.Vec2{50, 50},
		shower:  starfield.NewShower(viewW, viewH, rng),
	}
	e.wander = NewWanderer(&e.cfg, rng)
	return e
}

// PlaceShip restores the ship position, e.g. from a stored session. Invalid
// coordinates clamp into the world.
func (e *Engine) PlaceShip(x, y float64) {
	e.shipPos = mgl64.Vec2{
		Wrap(sanitize(x, 1e6), 0, 100),
		Wrap(sanitize(y, 1e6), 0, 100),
	}
}

// SetPoints replaces the point-of-interest layout.
func (e *Engine) SetPoints(pts []points.Point) {
	e.pts = make([]points.Point, len(pts))
	for i, p := range pts {
		e.pts[i] = points.Normalize(p)
	}
}

// Resize tells the engine the host viewport changed.
func (e *Engine) Resize(viewW, viewH float64) {
	e.shower.Resize(viewW, viewH)
}

// Advance runs one render-rate simulation frame: hold timer, autopilot or
// momentum movement, repulsion and reset animations, rotation smoothing, the
// particle pool, and as many fixed 16 ms merchant steps as dt covers.
func (e *Engine) Advance(dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		return
	}
	e.elapsed += dt

	e.holdTick(dt)
	e.autopilotTick()
	e.momentumTick()
	e.repulseTick(dt)
	e.resetTick(dt)

	if e.collideLeft > 0 {
		e.collideLeft -= dt
	}
	e.rot = LerpAngle(e.rot, e.targetRot, e.cfg.RotationLerp)

	e.shower.Update(dt)

	e.npcAcc += dt
	for e.npcAcc >= npcStep {
		e.npcAcc -= npcStep
		e.wander.Tick(e.elapsed, e.pts)
	}
}

// ShipSnapshot is the read-only view of the player vessel.
type ShipSnapshot struct {
	X, Y         float64 // world percent, toroidal [0, 100)
	VelX, VelY   float64 // world percent per tick
	Rotation     float64 // degrees, 0 = up, clockwise
	Dragging     bool
	Holding      bool
	HoldProgress float64 // 0..1 while holding
	Autopilot    bool
	Colliding    bool // true during the post-impact flash
}

// Ship returns the player snapshot for this frame.
func (e *Engine) Ship() ShipSnapshot {
	return ShipSnapshot{
		X:            e.shipPos.X(),
		Y:            e.shipPos.Y(),
		VelX:         e.vel.X(),
		VelY:         e.vel.Y(),
		Rotation:     e.rot,
		Dragging:     e.dragging,
		Holding:      e.holdArmed && e.dragging,
		HoldProgress: e.holdProgress,
		Autopilot:    e.autopilot,
		Colliding:    e.collideLeft > 0,
	}
}

// Offset returns the visual camera offset in map units.
func (e *Engine) Offset() (x, y float64) {
	return e.offset.X(), e.offset.Y()
}

// Merchant returns the wandering NPC snapshot.
func (e *Engine) Merchant() WanderSnapshot {
	return e.wander.Snapshot()
}

// Points returns a copy of the current point layout.
func (e *Engine) Points() []points.Point {
	out := make([]points.Point, len(e.pts))
	copy(out, e.pts)
	return out
}

// NearestPoint returns the point closest to the ship and its distance in
// world percent. ok is false when the layout is empty.
func (e *Engine) NearestPoint() (p points.Point, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, cand := range e.pts {
		d := e.shipPos.Sub(mgl64.Vec2{cand.X, cand.Y}).Len()
		if d < dist {
			dist = d
			p = cand
			ok = true
		}
	}
	return p, dist, ok
}

// UpdatePointPosition moves and rescales one point, used by admin editing.
// Position clamps silently; a non-positive scale keeps the previous value.
func (e *Engine) UpdatePointPosition(id string, x, y, scale float64) error {
	for i := range e.pts {
		if e.pts[i].ID != id {
			continue
		}
		e.pts[i].X = clamp(sanitize(x, 1e6), 0, 100)
		e.pts[i].Y = clamp(sanitize(y, 1e6), 0, 100)
		if scale > 0 {
			e.pts[i].Scale = scale
		}
		return nil
	}
	return fmt.Errorf("engine: no point with id %q", id)
}

// Shots returns the live shooting-star draw list (view-space pixels).
func (e *Engine) Shots() []starfield.Shot {
	return e.shower.Shots()
}

// Elapsed returns wall-clock simulation time in seconds, the time base for
// star blink/float animation.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Messages returns up to n recent log entries for the host HUD.
func (e *Engine) Messages(n int) []Message {
	return e.log.Recent(n)
}
