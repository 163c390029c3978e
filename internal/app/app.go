//go:build ebiten

package app

import (
	"image/color"
	"time"

	"subsim/internal/core"
	"subsim/internal/render"
	"subsim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// clicker turns a click on a display cell into an interaction.
type clicker interface {
	Click(x, y int) bool
}

type cellEditor interface {
	ToggleWall(x, y int)
	PourWater(x, y int)
}

type waterMasker interface {
	WaterMask() []float32
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
	tint     bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		scale:    cfg.Scale,
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
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
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.tint = !g.tint
	}

	g.handleMouse()
	g.overlay.Update()
	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// handleMouse maps clicks on the grid to commands: left interacts, right
// toggles a wall, left with W held pours water.
func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	x, y := mx/g.scale, my/g.scale
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	editor, canEdit := g.sim.(cellEditor)
	if canEdit && ebiten.IsKeyPressed(ebiten.KeyW) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		editor.PourWater(x, y)
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if c, ok := g.sim.(clicker); ok {
			c.Click(x, y)
		}
	}
	if canEdit && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		editor.ToggleWall(x, y)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if p, ok := g.sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.SetMask(nil, color.RGBA{})
	if m, ok := g.sim.(waterMasker); ok && g.tint {
		g.painter.SetMask(m.WaterMask(), color.RGBA{R: 90, G: 200, B: 255, A: 255})
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
