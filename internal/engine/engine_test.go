package engine

import (
	"math"
	"testing"

	"github.com/stardrift/stardrift/internal/points"
)

func testLayout() []points.Point {
	return []points.Point{
		{ID: "a", X: 40, Y: 50, Label: "Alpha", Scale: 1},
		{ID: "b", X: 80, Y: 80, Label: "Beta", Scale: 2},
	}
}

func TestSetPointsNormalizesAndCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	in := []points.Point{{ID: "x", X: -40, Y: 300, Scale: 0}}
	e.SetPoints(in)

	got := e.Points()
	if len(got) != 1 {
		t.Fatalf("got %d points, want 1", len(got))
	}
	if got[0].X != 0 || got[0].Y != 100 || got[0].Scale != 1 {
		t.Errorf("point not normalized: %+v", got[0])
	}

	// Points must hand back a copy, not the live slice.
	got[0].X = 77
	if again := e.Points(); again[0].X == 77 {
		t.Error("Points exposed internal state")
	}
}

func TestNearestPoint(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetPoints(testLayout())
	e.PlaceShip(42, 50)

	p, dist, ok := e.NearestPoint()
	if !ok {
		t.Fatal("ok = false with a non-empty layout")
	}
	if p.ID != "a" {
		t.Errorf("nearest = %q, want a", p.ID)
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("dist = %v, want 2", dist)
	}
}

func TestNearestPointEmptyLayout(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, _, ok := e.NearestPoint(); ok {
		t.Error("ok = true with no points")
	}
}

func TestUpdatePointPosition(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetPoints(testLayout())

	if err := e.UpdatePointPosition("b", 120, -5, 0); err != nil {
		t.Fatal(err)
	}
	var b points.Point
	for _, p := range e.Points() {
		if p.ID == "b" {
			b = p
		}
	}
	if b.X != 100 || b.Y != 0 {
		t.Errorf("position = (%v, %v), want clamped to (100, 0)", b.X, b.Y)
	}
	if b.Scale != 2 {
		t.Errorf("scale = %v; non-positive input must keep the old value", b.Scale)
	}

	if err := e.UpdatePointPosition("missing", 10, 10, 1); err == nil {
		t.Error("unknown id should be an error")
	}
}

func TestPlaceShipWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	e.PlaceShip(-1, 101)
	s := e.Ship()
	if s.X != 99 || s.Y != 1 {
		t.Errorf("ship = (%v, %v), want (99, 1)", s.X, s.Y)
	}
}

func TestAdvanceIgnoresBadDt(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Advance(-1)
	e.Advance(math.NaN())
	if e.Elapsed() != 0 {
		t.Errorf("elapsed = %v after invalid dt", e.Elapsed())
	}
}

func TestMerchantStepsAtFixedRate(t *testing.T) {
	e, _ := newTestEngine(t)
	before := e.Merchant()

	// A frame shorter than the 16 ms step must not move the merchant.
	e.Advance(0.010)
	if mid := e.Merchant(); mid.X != before.X || mid.Y != before.Y {
		t.Error("merchant moved on a sub-step frame")
	}

	// The leftover accumulates into the next frame.
	e.Advance(0.010)
	if after := e.Merchant(); after.X == before.X && after.Y == before.Y {
		t.Error("merchant never stepped across two frames totalling 20 ms")
	}
}

func TestMessageLogEvictsOldest(t *testing.T) {
	l := NewMessageLog(3, 80)
	l.Add("one", MsgInfo)
	l.Add("two", MsgInfo)
	l.Add("three", MsgEvent)
	l.Add("four", MsgWarning)

	got := l.Recent(10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Text != "two" || got[2].Text != "four" {
		t.Errorf("unexpected order: %v", got)
	}
	if got[2].Priority != MsgWarning {
		t.Error("priority lost on eviction")
	}
}

func TestMessageLogWrapsLongLines(t *testing.T) {
	l := NewMessageLog(10, 10)
	l.Add("alpha beta gamma", MsgInfo)

	got := l.Recent(10)
	if len(got) < 2 {
		t.Fatalf("expected wrapped output, got %v", got)
	}
	for _, m := range got {
		if len(m.Text) > 10 {
			t.Errorf("line %q exceeds wrap width", m.Text)
		}
	}
}
