//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a palette-indexed display buffer into one image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	mask     []float32
	maskTint color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// SetMask blends col into each cell by the matching mask weight on the next
// Blit. A nil mask disables blending.
func (gp *GridPainter) SetMask(mask []float32, col color.RGBA) {
	gp.mask, gp.maskTint = mask, col
}

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	if len(gp.mask) == len(cells) {
		for i, m := range gp.mask {
			tint(gp.buf, i*4, gp.maskTint, m)
		}
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
