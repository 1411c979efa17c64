package engine

import (
	"math"
	"testing"
)

func TestWrapRange(t *testing.T) {
	inputs := []float64{-1000, -100.5, -50, -0.0001, 0, 0.5, 99.999, 100, 100.0001, 250, 1e9}
	for _, v := range inputs {
		got := Wrap(v, 0, 100)
		if got < 0 || got >= 100 {
			t.Errorf("Wrap(%v) = %v, outside [0,100)", v, got)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	inputs := []float64{-273.15, -100, -1, 0, 49.5, 99.99999, 123456.789}
	for _, v := range inputs {
		once := Wrap(v, 0, 100)
		twice := Wrap(once, 0, 100)
		if once != twice {
			t.Errorf("Wrap not idempotent for %v: %v != %v", v, once, twice)
		}
	}
}

func TestWrapValues(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{50, 50},
		{-1, 99},
		{101, 1},
		{100, 0},
		{0, 0},
		{-100, 0},
		{249, 49},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, 0, 100); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAngleDelta(t *testing.T) {
	tests := []struct {
		from, to, want float64
	}{
		{0, 90, 90},
		{90, 0, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{0, 181, -179},
	}
	for _, tt := range tests {
		if got := AngleDelta(tt.from, tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleDelta(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRotationDeg(t *testing.T) {
	tests := []struct {
		dx, dy, want float64
	}{
		{0, -1, 0},   // up
		{1, 0, 90},   // right
		{0, 1, 180},  // down
		{-1, 0, -90}, // left
	}
	for _, tt := range tests {
		if got := RotationDeg(tt.dx, tt.dy); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RotationDeg(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}
