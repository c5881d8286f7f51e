package main

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/plexus-go/internal/config"
	"github.com/olivierh59500/plexus-go/internal/render"
	"github.com/olivierh59500/plexus-go/proximity"
)

// Drawing constants
const (
	DotRadius = 1.5
	LineWidth = 1.0
	SavePath  = "plexus.toml"
)

// Viewer is the ebiten game drawing a running simulator.
type Viewer struct {
	conf   *config.Config
	sim    *proximity.Simulator
	frame  proximity.Frame
	cam    *render.Camera
	reload <-chan *config.Config

	Paused bool
	step   bool

	lines          *ebiten.Image // offscreen layer for additive edges
	screen         []screenPoint
	prevMX, prevMY float64 // previous mouse position for drag
}

type screenPoint struct {
	x, y float32
	ok   bool
}

// NewViewer creates a viewer running conf.
func NewViewer(conf *config.Config) (*Viewer, error) {
	sim, err := conf.NewSimulator()
	if err != nil {
		return nil, err
	}
	return &Viewer{
		conf:  conf,
		sim:   sim,
		frame: sim.Frame(),
		cam:   render.NewCamera(int64(conf.Seed)),
	}, nil
}

// Update is called each tick by Ebitengine
func (v *Viewer) Update() error {
	select {
	case conf, ok := <-v.reload:
		if !ok {
			v.reload = nil
			break
		}
		if err := v.apply(conf); err != nil {
			slog.Warn("cannot apply reloaded config", "err", err)
		} else {
			slog.Info("config applied", "particles", v.sim.Len())
		}
	default:
	}

	v.handleInput()
	v.cam.Advance()

	if v.Paused && !v.step {
		return nil
	}
	v.step = false
	v.frame = v.sim.Tick()
	return nil
}

// apply swaps in a simulator built from conf. Particles carry over when
// the count is unchanged, so edits to distances or caps show up in place.
func (v *Viewer) apply(conf *config.Config) error {
	if conf.Seed == 0 {
		conf.Seed = v.conf.Seed
	}
	pc, err := conf.Simulation()
	if err != nil {
		return err
	}
	var sim *proximity.Simulator
	if pc.Count == v.sim.Len() {
		sim, err = proximity.NewWithParticles(pc, v.sim.Particles())
	} else {
		sim, err = proximity.New(pc)
	}
	if err != nil {
		return err
	}
	v.conf, v.sim = conf, sim
	v.frame = sim.Frame()
	return nil
}

// handleInput processes keyboard and mouse input
func (v *Viewer) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.Paused = !v.Paused
	}
	if v.Paused && inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.step = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.sim.Reset()
		v.frame = v.sim.Frame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		c := *v.conf
		c.Seed = clockSeed()
		v.reseed(&c)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.conf.ShowDots = !v.conf.ShowDots
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		v.conf.ShowLines = !v.conf.ShowLines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		c := *v.conf
		c.LimitConnections = !c.LimitConnections
		if err := v.apply(&c); err != nil {
			slog.Warn("cannot toggle connection limit", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.cam.Drift = !v.cam.Drift
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := v.conf.Save(SavePath); err != nil {
			slog.Error("cannot save config", "path", SavePath, "err", err)
		} else {
			slog.Info("config saved", "path", SavePath, "seed", v.conf.Seed)
		}
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		v.cam.Zoom(wheelY)
	}

	// Orbit (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.cam.Orbit(float32(float64(mx)-v.prevMX), float32(float64(my)-v.prevMY))
	}
	v.prevMX = float64(mx)
	v.prevMY = float64(my)
}

// reseed restarts the swarm from conf, drawing fresh particles.
func (v *Viewer) reseed(conf *config.Config) {
	sim, err := conf.NewSimulator()
	if err != nil {
		slog.Warn("cannot reseed", "err", err)
		return
	}
	v.conf, v.sim = conf, sim
	v.frame = sim.Frame()
	slog.Info("reseeded", "seed", conf.Seed)
}

// Draw is called each frame by Ebitengine
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := v.cam.View(w, h)

	for _, e := range render.BoxEdges(v.sim.Config().Bounds) {
		x0, y0, ok0 := view.Project(e[0])
		x1, y1, ok1 := view.Project(e[1])
		if ok0 && ok1 {
			vector.StrokeLine(screen, x0, y0, x1, y1, LineWidth, render.BoxColor, true)
		}
	}

	n := v.frame.Len()
	if cap(v.screen) < n {
		v.screen = make([]screenPoint, n)
	}
	v.screen = v.screen[:n]
	for i := range v.screen {
		x, y, ok := view.Project(v.frame.Position(i))
		v.screen[i] = screenPoint{x, y, ok}
	}

	if v.conf.ShowLines {
		v.drawLines(screen, view)
	}
	if v.conf.ShowDots {
		for i, p := range v.screen {
			if p.ok {
				col := render.DotColor(v.sim.Particle(i).Connections)
				vector.DrawFilledCircle(screen, p.x, p.y, DotRadius, col, true)
			}
		}
	}

	limit := "off"
	if v.conf.LimitConnections {
		limit = fmt.Sprint(v.conf.MaxConnections)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"particles %d  edges %d  tick %d  limit %s  fps %.0f\n"+
			"[space] pause [->] step [r] reset [n] reseed [d] dots [l] lines [c] limit [o] drift [s] save",
		n, len(v.frame.Edges), v.frame.Tick, limit, ebiten.ActualFPS()))
}

// drawLines draws the edges on their own layer and adds it onto screen,
// so crossing lines brighten each other.
func (v *Viewer) drawLines(screen *ebiten.Image, view render.View) {
	size := screen.Bounds().Size()
	if v.lines == nil || v.lines.Bounds().Size() != size {
		if v.lines != nil {
			v.lines.Deallocate()
		}
		v.lines = ebiten.NewImageWithOptions(image.Rectangle{Max: size}, nil)
	}
	v.lines.Clear()
	for _, sg := range v.frame.Segments() {
		x0, y0, ok0 := view.Project(sg.A)
		x1, y1, ok1 := view.Project(sg.B)
		if ok0 && ok1 {
			vector.StrokeLine(v.lines, x0, y0, x1, y1, LineWidth, render.LineColor(sg.Alpha), true)
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(v.lines, op)
}

// Layout follows the window size
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
