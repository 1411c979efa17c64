package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
)

// Shooting-star tuning. Positions and speeds are in screen pixels; the
// particles live in view space, not world space.
const (
	spawnMinGap = 2.0 // seconds between spawns, lower bound
	spawnMaxGap = 6.0 // upper bound, exclusive

	shotMinSpeed = 180.0
	shotMaxSpeed = 520.0
	shotMinLife  = 1.2
	shotMaxLife  = 3.5
)

// Components of one shooting star.

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Life struct {
	Remaining float64
	Max       float64
	Age       float64
}

type Streak struct {
	Size        float64
	Tail        float64 // trail length in pixels
	WigglePhase float64
	WiggleFreq  float64
	WiggleAmp   float64 // lateral speed amplitude, px/s
	R, G, B     uint8
}

// Shot is the render-facing view of one live shooting star.
type Shot struct {
	X, Y    float64
	DirX    float64
	DirY    float64
	Size    float64
	Tail    float64
	Alpha   float64
	R, G, B uint8
}

// Shower owns the transient shooting-star pool: stochastic spawning, per
// frame integration and culling.
type Shower struct {
	world   *ecs.World
	mapper  *ecs.Map4[Position, Velocity, Life, Streak]
	filter  *ecs.Filter4[Position, Velocity, Life, Streak]
	rng     *rand.Rand
	nextIn  float64 // seconds until the next spawn
	doomed  []ecs.Entity
	viewW   float64
	viewH   float64
}

// NewShower creates an empty pool for a viewport of the given pixel size.
func NewShower(viewW, viewH float64, rng *rand.Rand) *Shower {
	w := ecs.NewWorld(64)
	s := &Shower{
		world:  w,
		mapper: ecs.NewMap4[Position, Velocity, Life, Streak](w),
		filter: ecs.NewFilter4[Position, Velocity, Life, Streak](w),
		rng:    rng,
		viewW:  viewW,
		viewH:  viewH,
	}
	s.nextIn = s.gap()
	return s
}

// Resize updates the viewport the pool spawns around.
func (s *Shower) Resize(viewW, viewH float64) {
	s.viewW = viewW
	s.viewH = viewH
}

func (s *Shower) gap() float64 {
	return spawnMinGap + s.rng.Float64()*(spawnMaxGap-spawnMinGap)
}

// Update advances every particle by dt seconds, culls dead or escaped ones
// and spawns a new star when the cadence timer runs out.
func (s *Shower) Update(dt float64) {
	s.nextIn -= dt
	if s.nextIn <= 0 {
		s.spawn()
		s.nextIn = s.gap()
	}

	s.doomed = s.doomed[:0]
	q := s.filter.Query()
	for q.Next() {
		pos, vel, life, st := q.Get()

		life.Remaining -= dt
		life.Age += dt
		if life.Remaining <= 0 {
			s.doomed = append(s.doomed, q.Entity())
			continue
		}

		// Lateral wiggle: a sinusoidal velocity component perpendicular
		// to the flight direction, superimposed on the linear motion.
		speed := math.Hypot(vel.X, vel.Y)
		wig := math.Sin(life.Age*st.WiggleFreq+st.WigglePhase) * st.WiggleAmp
		px, py := 0.0, 0.0
		if speed > 0 {
			px = -vel.Y / speed
			py = vel.X / speed
		}
		pos.X += (vel.X + px*wig) * dt
		pos.Y += (vel.Y + py*wig) * dt

		if pos.X < -Margin || pos.X > s.viewW+Margin ||
			pos.Y < -Margin || pos.Y > s.viewH+Margin {
			s.doomed = append(s.doomed, q.Entity())
		}
	}
	for _, e := range s.doomed {
		s.world.RemoveEntity(e)
	}
}

// spawn places one star just outside a random viewport edge, aimed at a
// random interior point.
func (s *Shower) spawn() {
	var x, y float64
	switch s.rng.IntN(4) {
	case 0: // top
		x, y = s.rng.Float64()*s.viewW, -Margin*0.5
	case 1: // bottom
		x, y = s.rng.Float64()*s.viewW, s.viewH+Margin*0.5
	case 2: // left
		x, y = -Margin*0.5, s.rng.Float64()*s.viewH
	default: // right
		x, y = s.viewW+Margin*0.5, s.rng.Float64()*s.viewH
	}

	tx := s.viewW * (0.2 + 0.6*s.rng.Float64())
	ty := s.viewH * (0.2 + 0.6*s.rng.Float64())
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dy, dist = 1, 0, 1
	}
	speed := shotMinSpeed + s.rng.Float64()*(shotMaxSpeed-shotMinSpeed)
	life := shotMinLife + s.rng.Float64()*(shotMaxLife-shotMinLife)

	s.mapper.NewEntity(
		&Position{X: x, Y: y},
		&Velocity{X: dx / dist * speed, Y: dy / dist * speed},
		&Life{Remaining: life, Max: life},
		&Streak{
			Size:        1 + s.rng.Float64()*1.5,
			Tail:        30 + s.rng.Float64()*60,
			WigglePhase: s.rng.Float64() * 2 * math.Pi,
			WiggleFreq:  2 + s.rng.Float64()*4,
			WiggleAmp:   10 + s.rng.Float64()*30,
			R:           255,
			G:           uint8(220 + s.rng.IntN(36)),
			B:           uint8(180 + s.rng.IntN(60)),
		},
	)
}

// Shots returns the current draw list.
func (s *Shower) Shots() []Shot {
	var out []Shot
	q := s.filter.Query()
	for q.Next() {
		pos, vel, life, st := q.Get()
		speed := math.Hypot(vel.X, vel.Y)
		dx, dy := 1.0, 0.0
		if speed > 0 {
			dx, dy = vel.X/speed, vel.Y/speed
		}
		out = append(out, Shot{
			X:     pos.X,
			Y:     pos.Y,
			DirX:  dx,
			DirY:  dy,
			Size:  st.Size,
			Tail:  st.Tail,
			Alpha: life.Remaining / life.Max,
			R:     st.R,
			G:     st.G,
			B:     st.B,
		})
	}
	return out
}

// Count reports how many particles are alive.
func (s *Shower) Count() int {
	n := 0
	q := s.filter.Query()
	for q.Next() {
		n++
	}
	return n
}
