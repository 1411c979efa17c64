// Package input merges mouse and touch into a single pointer-delta stream so
// the rest of the host never cares which device produced an event.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Event is one frame's pointer state. Latest event wins; nothing is queued.
type Event struct {
	X, Y         float64 // position, screen pixels
	DX, DY       float64 // movement since the previous frame
	Pressed      bool
	JustPressed  bool
	JustReleased bool
	Wheel        float64 // vertical wheel ticks this frame
}

// Tracker polls Ebitengine's mouse and touch state once per frame. An active
// touch takes priority over the mouse until it lifts.
type Tracker struct {
	lastX, lastY float64
	wasPressed   bool
	touchID      ebiten.TouchID
	touching     bool
	touchScratch []ebiten.TouchID
}

// Poll reads the devices and returns this frame's unified event.
func (t *Tracker) Poll() Event {
	var ev Event
	_, ev.Wheel = ebiten.Wheel()

	if t.touching {
		if inpututil.IsTouchJustReleased(t.touchID) {
			t.touching = false
			t.wasPressed = false
			ev.X, ev.Y = t.lastX, t.lastY
			ev.JustReleased = true
			return ev
		}
		x, y := ebiten.TouchPosition(t.touchID)
		t.update(&ev, float64(x), float64(y), true)
		return ev
	}

	t.touchScratch = inpututil.AppendJustPressedTouchIDs(t.touchScratch[:0])
	if len(t.touchScratch) > 0 {
		t.touchID = t.touchScratch[0]
		t.touching = true
		x, y := ebiten.TouchPosition(t.touchID)
		t.wasPressed = false // first touch frame carries no delta
		t.update(&ev, float64(x), float64(y), true)
		ev.JustPressed = true
		return ev
	}

	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	t.update(&ev, float64(x), float64(y), pressed)
	ev.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ev.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return ev
}

func (t *Tracker) update(ev *Event, x, y float64, pressed bool) {
	ev.X, ev.Y = x, y
	ev.Pressed = pressed
	if pressed && t.wasPressed {
		ev.DX = x - t.lastX
		ev.DY = y - t.lastY
	}
	t.lastX, t.lastY = x, y
	t.wasPressed = pressed
}
