package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// All pointer coordinates handed to the engine are screen pixels relative to
// the view center, where the ship sits. Deltas are raw pointer movement in
// pixels since the previous event.

// BeginDrag starts a manual steering session. A press while autopilot is
// active only cancels the autopilot (click-to-cancel); it does not start a
// drag.
func (e *Engine) BeginDrag(pointer mgl64.Vec2) {
	e.pointer = sanitizeVec(pointer, pointerClamp)
	if e.autopilot {
		e.autopilot = false
		e.log.Add("Autopilot disengaged.", MsgEvent)
		return
	}
	e.dragging = true
	e.dragDist = 0
	e.holdArmed = true
	e.holdProgress = 0
}

// UpdateDrag consumes one pointer-movement event during a drag. Movement
// past the dead zone disarms the autopilot hold; the move itself is applied
// through the collision model.
func (e *Engine) UpdateDrag(delta, pointer mgl64.Vec2) {
	e.pointer = sanitizeVec(pointer, pointerClamp)
	if !e.dragging {
		return
	}
	delta = sanitizeVec(delta, deltaClamp)

	step := delta.Len()
	e.dragDist += step
	if e.holdArmed && step > e.cfg.DragDeadZone {
		e.holdArmed = false
		e.holdProgress = 0
	}

	e.vel = mgl64.Vec2{
		clamp(delta.X()*e.cfg.VelocityScale, -e.cfg.VelocityMax, e.cfg.VelocityMax),
		clamp(delta.Y()*e.cfg.VelocityScale, -e.cfg.VelocityMax, e.cfg.VelocityMax),
	}

	if e.applyMove(delta) {
		return // blocked by the barrier; repulsion is in flight
	}
	if step > e.cfg.DragDeadZone {
		// The ship travels opposite the map drag.
		e.targetRot = RotationDeg(-delta.X(), -delta.Y())
	}
}

// EndDrag releases the pointer. A press that never moved sheds its velocity
// immediately so a stationary click leaves no residual momentum.
func (e *Engine) EndDrag() {
	wasDragging := e.dragging
	e.dragging = false
	e.holdArmed = false
	e.holdProgress = 0
	if wasDragging && e.dragDist <= e.cfg.DragDeadZone {
		e.vel = mgl64.Vec2{}
	}
}

// SetPointer records the pointer position between drags, so autopilot keeps
// steering toward wherever the pointer went.
func (e *Engine) SetPointer(pointer mgl64.Vec2) {
	e.pointer = sanitizeVec(pointer, pointerClamp)
}

// ResetShip forces the ship back to the map center. Position and velocity
// reset at once; the visual offset and rotation glide home over
// Config.ResetDuration.
func (e *Engine) ResetShip() {
	e.shipPos = mgl64.Vec2{50, 50}
	e.vel = mgl64.Vec2{}
	e.dragging = false
	e.holdArmed = false
	e.holdProgress = 0
	e.autopilot = false
	e.repulseLeft = 0
	e.targetRot = 0
	e.resetLeft = e.cfg.ResetDuration
	e.log.Add("Nav reset: returning to dock alignment.", MsgEvent)
}

// holdTick advances the autopilot-hold timer while a press stays still.
func (e *Engine) holdTick(dt float64) {
	if !e.holdArmed || !e.dragging || e.autopilot {
		return
	}
	e.holdProgress += dt / e.cfg.HoldDuration
	if e.holdProgress < 1 {
		return
	}
	e.holdProgress = 0
	e.holdArmed = false
	e.dragging = false
	e.autopilot = true
	e.notify.AutopilotEngaged()
	e.log.Add("Autopilot engaged: following helm pointer.", MsgEvent)
}

// autopilotTick steers toward the last known pointer position at a fixed
// speed. A collision knocks the autopilot out.
func (e *Engine) autopilotTick() {
	if !e.autopilot {
		return
	}
	dist := e.pointer.Len()
	if dist < 1 {
		return // pointer effectively on the ship
	}
	dir := e.pointer.Mul(1 / dist)
	// Moving the ship toward the pointer means dragging the map the
	// opposite way.
	if e.applyMove(dir.Mul(-e.cfg.AutopilotSpeed)) {
		e.autopilot = false
		e.log.Add("Autopilot disengaged by impact.", MsgWarning)
		return
	}
	e.targetRot = RotationDeg(dir.X(), dir.Y())
}

// momentumTick coasts the ship on residual velocity with exponential
// friction, through the same collision path as manual drags.
func (e *Engine) momentumTick() {
	if e.dragging || e.autopilot {
		return
	}
	if e.vel.X() == 0 && e.vel.Y() == 0 {
		return
	}
	e.vel = e.vel.Mul(e.cfg.Friction)
	if math.Abs(e.vel.X()) < e.cfg.StopEpsilon && math.Abs(e.vel.Y()) < e.cfg.StopEpsilon {
		e.vel = mgl64.Vec2{}
		return
	}
	e.applyMove(e.vel.Mul(e.cfg.PixelsPerPercent))
}

// applyMove proposes the ship/offset change for a screen-space pixel delta
// and commits it unless the new offset crosses the barrier band. Reports
// whether the move collided.
func (e *Engine) applyMove(delta mgl64.Vec2) bool {
	proposed := e.offset.Add(delta)
	col := CheckBoundary(&e.cfg, proposed)
	if !col.Colliding {
		e.commitMove(delta)
		return false
	}

	e.vel = mgl64.Vec2{}
	e.repulseDir = RepulseDirection(col.Point)
	e.repulseLeft = e.cfg.RepulseDuration
	if e.collideLeft <= 0 { // throttle the signal while grinding the wall
		e.notify.Collision()
		e.log.Add("Hull scraped the containment ring.", MsgWarning)
	}
	e.collideLeft = e.cfg.CollisionFlash
	return true
}

// commitMove applies a pixel delta to the visual offset and the reciprocal
// world-percent delta to the ship, keeping the two in lockstep.
func (e *Engine) commitMove(delta mgl64.Vec2) {
	p := e.cfg.PixelsPerPercent
	e.shipPos = mgl64.Vec2{
		Wrap(e.shipPos.X()-delta.X()/p, 0, 100),
		Wrap(e.shipPos.Y()-delta.Y()/p, 0, 100),
	}
	e.offset = mgl64.Vec2{
		WrapDelta(e.offset.X()+delta.X(), e.cfg.OffsetWrap),
		WrapDelta(e.offset.Y()+delta.Y(), e.cfg.OffsetWrap),
	}
}

// repulseTick spreads the boundary push-back over its duration: the offset
// is driven back toward the origin and the ship moves reciprocally.
func (e *Engine) repulseTick(dt float64) {
	if e.repulseLeft <= 0 {
		return
	}
	step := dt
	if step > e.repulseLeft {
		step = e.repulseLeft
	}
	move := e.repulseDir.Mul(e.cfg.RepulseDistance * step / e.cfg.RepulseDuration)
	e.commitMove(move)
	e.repulseLeft -= step
}

// resetTick glides offset and rotation to zero after ResetShip.
func (e *Engine) resetTick(dt float64) {
	if e.resetLeft <= 0 {
		return
	}
	if dt >= e.resetLeft {
		e.offset = mgl64.Vec2{}
		e.rot = 0
		e.resetLeft = 0
		return
	}
	f := dt / e.resetLeft
	e.offset = e.offset.Mul(1 - f)
	e.rot = LerpAngle(e.rot, 0, f)
	e.resetLeft -= dt
}

const (
	deltaClamp   = 500  // pixels per event a delta can plausibly reach
	pointerClamp = 8192 // pixels from center a pointer can plausibly reach
)

// sanitizeVec clamps NaN/Inf and absurd magnitudes out of host input.
// Bad input degrades to something harmless, never an error.
func sanitizeVec(v mgl64.Vec2, limit float64) mgl64.Vec2 {
	return mgl64.Vec2{sanitize(v.X(), limit), sanitize(v.Y(), limit)}
}

func sanitize(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, -limit, limit)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
