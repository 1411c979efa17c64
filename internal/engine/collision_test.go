package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCheckBoundaryBand(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"origin", 0, false},
		{"deep interior", 500, false},
		{"just inside band", 1189.9, false},
		{"band lower bound exclusive", 1190, false},
		{"barely past lower bound", 1190.01, true},
		{"on the barrier", 1200, true},
		{"band upper bound inclusive", 1220, true},
		{"past the band", 1220.5, false},
		{"far outside", 5000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Probe along an arbitrary non-axis angle.
			ang := 0.7
			p := mgl64.Vec2{math.Cos(ang) * tt.dist, math.Sin(ang) * tt.dist}
			col := CheckBoundary(&cfg, p)
			if col.Colliding != tt.want {
				t.Errorf("distance %v: colliding = %v, want %v", tt.dist, col.Colliding, tt.want)
			}
		})
	}
}

func TestCollisionPointOnCircle(t *testing.T) {
	cfg := DefaultConfig()

	for _, ang := range []float64{0, 0.3, 1.2, math.Pi, -2.1} {
		p := mgl64.Vec2{math.Cos(ang) * 1200, math.Sin(ang) * 1200}
		col := CheckBoundary(&cfg, p)
		if !col.Colliding {
			t.Fatalf("angle %v: distance 1200 should collide", ang)
		}
		if d := col.Point.Len(); math.Abs(d-cfg.BarrierRadius) > 1e-9 {
			t.Errorf("angle %v: collision point at distance %v, want %v", ang, d, cfg.BarrierRadius)
		}
		// Same angle as the proposed point.
		got := math.Atan2(col.Point.Y(), col.Point.X())
		want := math.Atan2(p.Y(), p.X())
		if math.Abs(AngleDelta(got*180/math.Pi, want*180/math.Pi)) > 1e-9 {
			t.Errorf("angle %v: collision point angle %v, want %v", ang, got, want)
		}
	}
}

func TestRepulseDirection(t *testing.T) {
	dir := RepulseDirection(mgl64.Vec2{1200, 0})
	if math.Abs(dir.X()+1) > 1e-9 || math.Abs(dir.Y()) > 1e-9 {
		t.Errorf("RepulseDirection(1200,0) = %v, want (-1,0)", dir)
	}
	if l := RepulseDirection(mgl64.Vec2{300, -400}).Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("repulse direction not unit length: %v", l)
	}
	if z := RepulseDirection(mgl64.Vec2{}); z.Len() != 0 {
		t.Errorf("RepulseDirection(0,0) = %v, want zero", z)
	}
}
