package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/stardrift/stardrift/internal/points"
)

func newTestWanderer(t *testing.T) *Wanderer {
	t.Helper()
	cfg := DefaultConfig()
	return NewWanderer(&cfg, rand.New(rand.NewPCG(11, 3)))
}

func poiAt(x, y float64) []points.Point {
	return []points.Point{{ID: "p", X: x, Y: y, Label: "Outpost", Scale: 1}}
}

func TestWandererPausesNearPoint(t *testing.T) {
	w := newTestWanderer(t)
	w.pos = mgl64.Vec2{50, 50}

	w.Tick(0, poiAt(50, 43)) // distance 7, inside the pause band

	if !w.paused {
		t.Fatal("expected the merchant to pause near a point of interest")
	}
	if w.pauseTimer < 180 || w.pauseTimer >= 420 {
		t.Errorf("pause timer = %d, want in [180, 420)", w.pauseTimer)
	}
	snap := w.Snapshot()
	if !snap.Paused || snap.Moving {
		t.Errorf("snapshot = %+v, want paused and not moving", snap)
	}
}

func TestWandererPauseCooldown(t *testing.T) {
	w := newTestWanderer(t)
	w.pos = mgl64.Vec2{50, 50}
	pts := poiAt(50, 43)

	w.Tick(0, pts)
	if !w.paused {
		t.Fatal("setup: should pause")
	}

	// Run the pause out.
	ticks := w.pauseTimer
	for i := 0; i < ticks; i++ {
		w.Tick(float64(i)*npcStep, pts)
	}
	if w.paused {
		t.Fatal("pause should have expired")
	}
	if w.cooldown != DefaultConfig().PauseCooldown {
		t.Fatalf("cooldown = %d, want %d on pause exit", w.cooldown, DefaultConfig().PauseCooldown)
	}
	if !w.recentlyPaused {
		t.Fatal("recently-paused flag should set on pause exit")
	}

	// Pin the merchant next to the point: blocked for the full cooldown.
	for i := 0; i < DefaultConfig().PauseCooldown+10; i++ {
		w.pos = mgl64.Vec2{50, 50}
		w.Tick(float64(i)*npcStep, pts)
		if w.paused && w.cooldown > 0 {
			t.Fatalf("paused again with %d cooldown ticks remaining", w.cooldown)
		}
	}
}

func TestWandererRecentlyPausedClearsWhenFar(t *testing.T) {
	w := newTestWanderer(t)
	w.recentlyPaused = true
	w.pos = mgl64.Vec2{50, 50}

	w.Tick(0, poiAt(20, 20)) // nearest well beyond 15

	if w.recentlyPaused {
		t.Error("recently-paused flag should clear once the merchant is far from every point")
	}
}

func TestWandererStaysInDomain(t *testing.T) {
	w := newTestWanderer(t)

	for i := 0; i < 20000; i++ {
		w.Tick(float64(i)*npcStep, nil)
		d := w.pos.Sub(wanderCenter).Len()
		if d > DefaultConfig().WanderHardRadius {
			t.Fatalf("tick %d: merchant at distance %v from center, beyond hard radius", i, d)
		}
	}
}

func TestWandererHardClamp(t *testing.T) {
	w := newTestWanderer(t)
	w.pos = mgl64.Vec2{50 + 40, 50} // way outside, distance 40

	w.Tick(0, nil)

	d := w.pos.Sub(wanderCenter).Len()
	if math.Abs(d-DefaultConfig().WanderRadius) > 0.5 {
		t.Errorf("distance after hard clamp = %v, want ~%v", d, DefaultConfig().WanderRadius)
	}
}

func TestWandererHeadingNeverSnaps(t *testing.T) {
	w := newTestWanderer(t)

	prev := w.heading
	for i := 0; i < 5000; i++ {
		w.Tick(float64(i)*npcStep, nil)
		step := math.Abs(angleDeltaRad(prev, w.heading))
		// 1% of at most pi per tick.
		if step > math.Pi*0.011 {
			t.Fatalf("tick %d: heading jumped by %v rad", i, step)
		}
		prev = w.heading
	}
}

func TestWandererEmptyLayout(t *testing.T) {
	w := newTestWanderer(t)

	for i := 0; i < 100; i++ {
		w.Tick(float64(i)*npcStep, nil)
	}
	if w.paused {
		t.Error("merchant paused with no points of interest in range")
	}
	if !math.IsInf(w.Snapshot().NearestPOI, 1) {
		t.Errorf("nearest distance = %v, want +Inf with an empty layout", w.Snapshot().NearestPOI)
	}
}

func TestSpeedModulationBounds(t *testing.T) {
	for ts := 0.0; ts < 120; ts += 0.05 {
		f := speedModulation(ts)
		if f < speedModBase-speedModAmp-1e-9 || f > speedModBase+speedModAmp+1e-9 {
			t.Fatalf("speed factor %v at t=%v outside [0.1, 1.3]", f, ts)
		}
	}
}
