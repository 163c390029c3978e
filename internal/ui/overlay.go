//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"subsim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type sonarProvider interface {
	SonarPoints() []image.Point
}

type collisionProvider interface {
	CollisionCells() []image.Point
}

// Overlay draws optional debugging visuals on top of the hull view.
type Overlay struct {
	sim           core.Sim
	scale         int
	showSonar     bool
	showContacts  bool
	pixel         *ebiten.Image
	sonarRange    int
	contactFrames map[image.Point]int
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showSonar: true, sonarRange: minimapRange}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.contactFrames = map[image.Point]int{}
	return o
}

// Update handles overlay toggles and ages collision highlights.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showSonar = !o.showSonar
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showContacts = !o.showContacts
	}
	for p, n := range o.contactFrames {
		if n <= 1 {
			delete(o.contactFrames, p)
			continue
		}
		o.contactFrames[p] = n - 1
	}
	if provider, ok := o.sim.(collisionProvider); ok {
		for _, p := range provider.CollisionCells() {
			o.contactFrames[p] = contactFade
		}
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showContacts {
		o.drawContacts(screen, float64(scale))
	}
	if o.showSonar {
		if provider, ok := o.sim.(sonarProvider); ok {
			o.drawMinimap(screen, provider.SonarPoints(), size, scale)
		}
	}
}

func (o *Overlay) drawContacts(screen *ebiten.Image, scale float64) {
	for p, n := range o.contactFrames {
		alpha := uint8(math.Round(220 * clamp01(float64(n)/contactFade)))
		cx := (float64(p.X) + 0.5) * scale
		cy := (float64(p.Y) + 0.5) * scale
		o.drawPoint(screen, cx, cy, scale, color.RGBA{R: 255, G: 60, B: 40, A: alpha})
	}
}

// drawMinimap plots sonar returns in a square anchored at the top left of the
// hull view. The hull sits at the centre; each return is one rock cell.
func (o *Overlay) drawMinimap(screen *ebiten.Image, points []image.Point, size core.Size, scale int) {
	side := float64(min(size.W, size.H)*scale) * 0.5
	if side < 32 {
		return
	}
	const margin = 4.0
	cell := side / float64(2*o.sonarRange+1)
	o.drawRect(screen, margin, margin, side, side, color.RGBA{R: 0, G: 20, B: 10, A: 170})
	o.drawLine(screen, margin, margin+side/2, margin+side, margin+side/2, 1, color.RGBA{R: 40, G: 110, B: 70, A: 160})
	o.drawLine(screen, margin+side/2, margin, margin+side/2, margin+side, 1, color.RGBA{R: 40, G: 110, B: 70, A: 160})
	for _, p := range points {
		if absInt(p.X) > o.sonarRange || absInt(p.Y) > o.sonarRange {
			continue
		}
		x := margin + (float64(p.X+o.sonarRange)+0.5)*cell
		y := margin + (float64(p.Y+o.sonarRange)+0.5)*cell
		o.drawPoint(screen, x, y, math.Max(cell, 1.5), color.RGBA{R: 90, G: 255, B: 140, A: 230})
	}
	o.drawPoint(screen, margin+side/2, margin+side/2, math.Max(cell, 2), color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const (
	minimapRange = 24
	contactFade  = 30.0
)
