package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/joho/godotenv"

	"github.com/stardrift/stardrift/internal/audio"
	"github.com/stardrift/stardrift/internal/engine"
	"github.com/stardrift/stardrift/internal/input"
	"github.com/stardrift/stardrift/internal/points"
	"github.com/stardrift/stardrift/internal/render"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Stardrift"

	viewCenterX = screenWidth / 2
	viewCenterY = screenHeight / 2

	commsMax = 6 // visible ship-log lines

	grabRadius = 24 // pixels within which an admin click picks a point
)

// Game is the Ebitengine host. It owns rendering, input devices, audio and
// persistence wiring; all simulation state lives in the engine.
type Game struct {
	eng     *engine.Engine
	scene   *render.Scene
	tracker *input.Tracker
	store   *points.Service

	adminAllowed bool
	adminMode    bool
	grabbedID    string // point being dragged in admin mode
	adminDirty   bool

	lastSessionSave time.Time
}

func NewGame(eng *engine.Engine, store *points.Service, adminAllowed bool) *Game {
	return &Game{
		eng:          eng,
		scene:        render.NewScene(),
		tracker:      &input.Tracker{},
		store:        store,
		adminAllowed: adminAllowed,
	}
}

// worldDelta returns the shortest toroidal difference between two world
// percent coordinates, in [-50, 50).
func worldDelta(d float64) float64 {
	return math.Mod(d+150, 100) - 50
}

// worldToScreen maps a world-percent position to screen pixels, keeping the
// ship at the view center.
func worldToScreen(wx, wy, shipX, shipY float64) (float64, float64) {
	const px = 12 // pixels per world percent
	return viewCenterX + worldDelta(wx-shipX)*px,
		viewCenterY + worldDelta(wy-shipY)*px
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.persistSession(g.eng.Ship()) // block on exit so the save lands
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.eng.ResetShip()
	}
	if g.adminAllowed && inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.adminMode = !g.adminMode
		g.dropGrab()
	}

	ev := g.tracker.Poll()
	pointer := mgl64.Vec2{ev.X - viewCenterX, ev.Y - viewCenterY}

	if g.adminMode {
		g.updateAdmin(ev)
	} else {
		switch {
		case ev.JustPressed:
			g.eng.BeginDrag(pointer)
		case ev.JustReleased:
			g.eng.EndDrag()
		case ev.Pressed:
			g.eng.UpdateDrag(mgl64.Vec2{ev.DX, ev.DY}, pointer)
		default:
			g.eng.SetPointer(pointer)
		}
	}

	g.eng.Advance(1.0 / 60.0)

	// Session position is persisted lazily; point edits are saved on
	// release in updateAdmin.
	if time.Since(g.lastSessionSave) > 30*time.Second {
		g.saveSession()
	}
	return nil
}

// updateAdmin handles point dragging and resizing. Edits stay local to the
// engine until release, then the whole layout is committed in one save.
func (g *Game) updateAdmin(ev input.Event) {
	ship := g.eng.Ship()

	if ev.JustPressed {
		g.grabbedID = g.pickPoint(ev.X, ev.Y, ship.X, ship.Y)
	}
	if g.grabbedID == "" {
		return
	}

	p, ok := g.findPoint(g.grabbedID)
	if !ok {
		g.grabbedID = ""
		return
	}

	if ev.Pressed && (ev.DX != 0 || ev.DY != 0) {
		const px = 12
		if err := g.eng.UpdatePointPosition(p.ID, p.X+ev.DX/px, p.Y+ev.DY/px, p.Scale); err != nil {
			log.Printf("admin: move point: %v", err)
		}
		g.adminDirty = true
	}
	if ev.Wheel != 0 {
		if err := g.eng.UpdatePointPosition(p.ID, p.X, p.Y, p.Scale+ev.Wheel*0.1); err != nil {
			log.Printf("admin: resize point: %v", err)
		}
		g.adminDirty = true
	}
	if ev.JustReleased {
		g.dropGrab()
	}
}

// dropGrab releases the grabbed point and commits pending edits coalesced.
// The layout is snapshotted on this frame and written in the background so a
// slow store never stalls the render loop.
func (g *Game) dropGrab() {
	g.grabbedID = ""
	if !g.adminDirty {
		return
	}
	g.adminDirty = false
	pts := g.eng.Points()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		g.store.Save(ctx, pts)
	}()
}

func (g *Game) pickPoint(sx, sy, shipX, shipY float64) string {
	bestID := ""
	bestD := float64(grabRadius)
	for _, p := range g.eng.Points() {
		px, py := worldToScreen(p.X, p.Y, shipX, shipY)
		d := math.Hypot(px-sx, py-sy)
		if d < bestD {
			bestD = d
			bestID = p.ID
		}
	}
	return bestID
}

func (g *Game) findPoint(id string) (points.Point, bool) {
	for _, p := range g.eng.Points() {
		if p.ID == id {
			return p, true
		}
	}
	return points.Point{}, false
}

// saveSession snapshots the ship and persists it in the background; the
// frame loop never waits on the store.
func (g *Game) saveSession() {
	g.lastSessionSave = time.Now()
	ship := g.eng.Ship()
	go g.persistSession(ship)
}

// persistSession writes one session record, bounded by the store timeout.
// Called synchronously only on shutdown, where blocking is fine.
func (g *Game) persistSession(ship engine.ShipSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	g.store.SaveSession(ctx, points.Session{ShipX: ship.X, ShipY: ship.Y})
}

func (g *Game) Draw(screen *ebiten.Image) {
	offX, offY := g.eng.Offset()
	ship := g.eng.Ship()
	t := g.eng.Elapsed()

	g.scene.DrawStarfield(screen, offX, offY, t)
	g.scene.DrawBarrier(screen, viewCenterX, viewCenterY, offX, offY, 1200)

	for _, p := range g.eng.Points() {
		px, py := worldToScreen(p.X, p.Y, ship.X, ship.Y)
		g.scene.DrawPoint(screen, px, py, p.Scale, p.Label, g.adminMode && p.ID == g.grabbedID)
	}

	m := g.eng.Merchant()
	mx, my := worldToScreen(m.X, m.Y, ship.X, ship.Y)
	g.scene.DrawMerchant(screen, mx, my, m.Rotation, m.Paused)

	g.scene.DrawShots(screen, g.eng.Shots())

	g.scene.DrawShip(screen, viewCenterX, viewCenterY, ship.Rotation, ship.Colliding, ship.Autopilot)
	if ship.Holding {
		g.scene.DrawHoldRing(screen, viewCenterX, viewCenterY, ship.HoldProgress)
	}

	g.drawHUD(screen, ship)
}

func (g *Game) drawHUD(screen *ebiten.Image, ship engine.ShipSnapshot) {
	txt := g.scene.Text

	txt.Draw(screen, title, 12, 10, render.LightCyan)
	txt.Draw(screen, fmt.Sprintf("pos %5.1f, %5.1f", ship.X, ship.Y), 12, 26, render.LightGray)

	mode := "helm: manual"
	clr := render.LightGray
	switch {
	case ship.Autopilot:
		mode, clr = "helm: autopilot", render.LightGreen
	case ship.Holding:
		mode, clr = "helm: engaging autopilot...", render.Yellow
	case ship.Dragging:
		mode, clr = "helm: steering", render.HullBlue
	}
	txt.Draw(screen, mode, 12, 42, clr)

	if p, dist, ok := g.eng.NearestPoint(); ok {
		txt.Draw(screen, fmt.Sprintf("nearest: %s (%.1f)", p.Label, dist), 12, 58, render.Cyan)
	}
	if g.adminMode {
		txt.Draw(screen, "ADMIN: drag points, wheel resizes, Tab exits", 12, 74, render.Yellow)
	}

	// Ship log, newest at the bottom.
	msgs := g.eng.Messages(commsMax)
	baseY := screenHeight - 16*(len(msgs)+1)
	for i, msg := range msgs {
		clr := render.Cyan
		switch msg.Priority {
		case engine.MsgWarning:
			clr = render.LightRed
		case engine.MsgEvent:
			clr = render.LightGreen
		}
		txt.Draw(screen, msg.Text, 12, baseY+16*i, clr)
	}

	fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	txt.Draw(screen, fps, screenWidth-170, screenHeight-20, render.DarkGray)
	txt.Draw(screen, "Drag: steer  Hold: autopilot  R: reset  ESC: quit", 12, screenHeight-20, render.DarkGray)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cacheDir := os.Getenv("STARDRIFT_CACHE_DIR")
	if cacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(base, "stardrift")
		} else {
			cacheDir = ".stardrift-cache"
		}
	}

	store := &points.Service{}
	if url := os.Getenv("STARDRIFT_STORE_URL"); url != "" {
		store.Remote = points.NewRemoteStore(url)
	} else {
		log.Println("STARDRIFT_STORE_URL not set, running from cache/defaults")
	}
	if cache, err := points.NewFileCache(cacheDir); err == nil {
		store.Cache = cache
	} else {
		log.Printf("local cache disabled: %v", err)
	}

	synth := audio.NewSynth()
	if err := synth.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5d))

	eng := engine.New(engine.DefaultConfig(), screenWidth, screenHeight, synth, rng)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	eng.SetPoints(store.Load(ctx))
	sess := store.LoadSession(ctx)
	cancel()
	eng.PlaceShip(sess.ShipX, sess.ShipY)

	game := NewGame(eng, store, os.Getenv("STARDRIFT_ADMIN") == "1")

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
