package engine

// Config collects every tuning constant of the galaxy map simulation in one
// place. Values are in world percent (0-100 across the map), map units
// (world percent x PixelsPerPercent) or ticks at 60 TPS unless noted.
type Config struct {
	// PixelsPerPercent converts screen pixels to world percent: dragging
	// the map 12 px moves the ship 1 percent.
	PixelsPerPercent float64

	// Boundary circle, in map units centered on the map origin.
	BarrierRadius float64 // R
	BandInner     float64 // collision band lower bound, exclusive
	BandOuter     float64 // collision band upper bound, inclusive

	// Repulsion impulse applied when the band is crossed.
	RepulseDistance float64 // map units pushed back toward the origin
	RepulseDuration float64 // seconds the push is spread over

	// Drag / momentum.
	VelocityScale float64 // world percent of velocity per pixel of drag delta
	VelocityMax   float64 // per-axis velocity clamp, percent per tick
	Friction      float64 // velocity multiplier per tick while coasting
	StopEpsilon   float64 // per-axis velocity below which coasting stops
	DragDeadZone  float64 // pixels of movement that still count as "no movement"

	// Autopilot.
	HoldDuration   float64 // seconds of uninterrupted hold to engage
	AutopilotSpeed float64 // map units per tick toward the pointer

	// Visual offset bookkeeping.
	OffsetWrap     float64 // map offset wraps at +/- this many map units
	RotationLerp   float64 // fraction of the angular gap closed per tick
	CollisionFlash float64 // seconds the collision state stays visible
	ResetDuration  float64 // seconds for ResetShip to glide offset/rotation home

	// Wandering NPC, in 16 ms controller ticks.
	WanderRadius       float64 // soft boundary around (50,50)
	WanderHardRadius   float64 // beyond this the position is clamped
	WanderBaseSpeed    float64 // percent per tick before sine modulation
	WanderHeadingLerp  float64 // fraction of the angular gap closed per tick
	PauseNearDistance  float64 // nearest-POI distance that triggers a pause
	PauseResetDistance float64 // nearest-POI distance that re-arms pausing
	PauseMinTicks      int     // pause duration lower bound, inclusive
	PauseMaxTicks      int     // pause duration upper bound, exclusive
	PauseCooldown      int     // ticks pausing stays blocked after a pause
	HeadingMinTicks    int     // heading resample interval lower bound
	HeadingMaxTicks    int     // heading resample interval upper bound, exclusive
}

// DefaultConfig returns the tuning the map ships with.
func DefaultConfig() Config {
	return Config{
		PixelsPerPercent: 12,

		BarrierRadius: 1200,
		BandInner:     1190,
		BandOuter:     1220,

		RepulseDistance: 15,
		RepulseDuration: 0.3,

		VelocityScale: 0.08,
		VelocityMax:   1.5,
		Friction:      0.995,
		StopEpsilon:   0.001,
		DragDeadZone:  1,

		HoldDuration:   2.5,
		AutopilotSpeed: 1.8,

		OffsetWrap:     5000,
		RotationLerp:   0.15,
		CollisionFlash: 0.2,
		ResetDuration:  0.5,

		WanderRadius:       35,
		WanderHardRadius:   36,
		WanderBaseSpeed:    0.05,
		WanderHeadingLerp:  0.01,
		PauseNearDistance:  8,
		PauseResetDistance: 15,
		PauseMinTicks:      180,
		PauseMaxTicks:      420,
		PauseCooldown:      600,
		HeadingMinTicks:    300,
		HeadingMaxTicks:    900,
	}
}
