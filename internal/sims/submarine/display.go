package submarine

import (
	"image/color"

	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/water"
	"subsim/internal/sims/submarine/wire"
)

// Display palette indices.
const (
	displaySea uint8 = iota
	displayInside
	displayWater1
	displayWater2
	displayWater3
	displayWater4
	displayOverfilled
	displayWall
	displayGlass
	displaySeal
	displayObject
	displayPowered
	displayWire // one per wire colour, in wire.Color order
)

var submarinePalette = []color.RGBA{
	displaySea:        {R: 8, G: 24, B: 48, A: 255},
	displayInside:     {R: 36, G: 38, B: 44, A: 255},
	displayWater1:     {R: 30, G: 60, B: 110, A: 255},
	displayWater2:     {R: 34, G: 80, B: 150, A: 255},
	displayWater3:     {R: 40, G: 100, B: 190, A: 255},
	displayWater4:     {R: 50, G: 120, B: 230, A: 255},
	displayOverfilled: {R: 140, G: 190, B: 255, A: 255},
	displayWall:       {R: 120, G: 120, B: 128, A: 255},
	displayGlass:      {R: 170, G: 210, B: 220, A: 255},
	displaySeal:       {R: 80, G: 80, B: 88, A: 255},
	displayObject:     {R: 150, G: 110, B: 60, A: 255},
	displayPowered:    {R: 250, G: 210, B: 90, A: 255},

	displayWire + uint8(wire.Bundle): {R: 200, G: 200, B: 200, A: 255},
	displayWire + uint8(wire.Purple): {R: 160, G: 70, B: 200, A: 255},
	displayWire + uint8(wire.Brown):  {R: 150, G: 95, B: 50, A: 255},
	displayWire + uint8(wire.Blue):   {R: 70, G: 130, B: 255, A: 255},
	displayWire + uint8(wire.Green):  {R: 70, G: 200, B: 90, A: 255},
}

// Palette exposes the colours used for the display buffer.
func (s *Sim) Palette() []color.RGBA {
	return submarinePalette
}

// refreshDisplay paints the first submarine: water and walls, then object
// footprints, then the highest-priority wire of each cell that is not under
// water.
func (s *Sim) refreshDisplay() {
	for i := range s.display {
		s.display[i] = displaySea
	}
	sub := s.world.submarine(0)
	if sub == nil {
		return
	}
	w := min(sub.Width(), s.cfg.HullWidth)
	h := min(sub.Height(), s.cfg.HullHeight)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.display[y*s.cfg.HullWidth+x] = waterIndex(sub.Water.Cell(x, y))
		}
	}
	for _, o := range sub.Objects {
		size := object.Size(o.Kind)
		idx := displayObject
		if o.Powered {
			idx = displayPowered
		}
		for y := o.Y; y < min(o.Y+size.Y, h); y++ {
			for x := o.X; x < min(o.X+size.X, w); x++ {
				c := sub.Water.Cell(x, y)
				if c.IsWall() {
					continue
				}
				s.display[y*s.cfg.HullWidth+x] = idx
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if sub.Water.Cell(x, y).Level() >= water.FullLevel/2 {
				continue
			}
			cell := sub.Wires.Cell(x, y)
			for _, c := range wire.Priority {
				if cell.Values[c].IsWire() {
					s.display[y*s.cfg.HullWidth+x] = displayWire + uint8(c)
					break
				}
			}
		}
	}
}

func waterIndex(c *water.Cell) uint8 {
	switch c.Kind() {
	case water.Sea:
		return displaySea
	case water.Wall:
		switch c.Material() {
		case water.MaterialGlass:
			return displayGlass
		case water.MaterialInvisible:
			return displaySeal
		default:
			return displayWall
		}
	}
	level := c.Level()
	switch {
	case level > water.FullLevel:
		return displayOverfilled
	case level == 0:
		return displayInside
	case level <= water.FullLevel/4:
		return displayWater1
	case level <= water.FullLevel/2:
		return displayWater2
	case level <= water.FullLevel*3/4:
		return displayWater3
	default:
		return displayWater4
	}
}
