//go:build ebiten

package app

import (
	"log/slog"
	"math"

	"lafont/internal/render"
	"lafont/internal/scheduler"
	"lafont/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth   = 240
	orbitSpeed = 0.03
)

// Game adapts a scheduler to the ebiten.Game interface.
type Game struct {
	sched   *scheduler.Scheduler
	program string
	logger  *slog.Logger

	camera  render.Camera
	painter *render.Painter
	hud     *ui.HUD
	frame   scheduler.Frame

	width, height int
	paused        bool
	tickOnce      bool
	autoFit       bool
}

// New constructs a Game showing the net of s in a width by height view.
func New(program string, s *scheduler.Scheduler, width, height int, logger *slog.Logger) *Game {
	return &Game{
		sched:   s,
		program: program,
		logger:  logger,
		camera:  render.NewCamera(width, height),
		painter: render.NewPainter(),
		hud:     ui.NewHUD(program, s, hudWidth),
		width:   width,
		height:  height,
		autoFit: true,
	}
}

// Reset rebuilds the net and restarts the layout.
func (g *Game) Reset() error {
	if err := g.sched.Reset(); err != nil {
		return err
	}
	g.frame = scheduler.Frame{}
	g.tickOnce = false
	return nil
}

// Update handles input and advances the scheduler by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.sched.SetShowEdges(!g.sched.ShowEdges())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.autoFit = !g.autoFit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(); err != nil {
			g.logger.Warn("reset failed", "error", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.sched.SetSkip(g.sched.Skip() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.sched.SetSkip(g.sched.Skip() / 2)
	}
	g.handleCamera()
	g.hud.Update(g.width)

	if !g.paused || g.tickOnce {
		f, err := g.sched.Tick()
		if err != nil {
			return err
		}
		g.frame = f
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleCamera() {
	var dyaw, dpitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dyaw -= orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dyaw += orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dpitch += orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dpitch -= orbitSpeed
	}
	g.camera.Orbit(dyaw, dpitch)

	if _, wheel := ebiten.Wheel(); wheel != 0 {
		g.autoFit = false
		g.camera.Zoom(math.Pow(0.9, wheel))
	}
}

// Draw renders the current frame and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	scene := render.Build(g.frame, g.camera)
	if g.autoFit && scene.Extent > 0 {
		// ease towards the fitted distance so the view does not jump
		target := g.camera
		target.Fit(scene.Extent)
		g.camera.Distance += (target.Distance - g.camera.Distance) * 0.1
	}
	g.painter.Draw(screen, scene)
	ui.DrawStatus(screen, ui.StatusLines(g.program, g.frame, g.sched.Skip(), g.paused))
	ui.DrawHelp(screen, g.height)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.hud.Width(), g.height
}
