package wire

import "fmt"

// Polyline is the save format of a wire: each consecutive pair of points
// fills the axis-aligned rectangle between them.
type Polyline struct {
	Color  Color    `json:"color" jsonschema:"description=bundle purple brown blue or green"`
	Points [][2]int `json:"points" jsonschema:"minItems=1,description=Cell coordinates [x,y]"`
}

// WirePoints exports every wire as polylines: maximal horizontal runs first,
// then vertical runs of the cells those did not cover.
func (g *Grid) WirePoints() []Polyline {
	w, h := g.cells.W, g.cells.H
	var out []Polyline
	covered := make([]bool, w*h)
	for _, c := range Priority {
		for i := range covered {
			covered[i] = false
		}
		has := func(x, y int) bool { return g.cells.At(x, y).Values[c].IsWire() }

		for y := 0; y < h; y++ {
			for x := 0; x < w; {
				if !has(x, y) {
					x++
					continue
				}
				end := x
				for end+1 < w && has(end+1, y) {
					end++
				}
				if end > x {
					out = append(out, Polyline{Color: c, Points: [][2]int{{x, y}, {end, y}}})
					for i := x; i <= end; i++ {
						covered[y*w+i] = true
					}
				}
				x = end + 1
			}
		}

		free := func(x, y int) bool { return has(x, y) && !covered[y*w+x] }
		for x := 0; x < w; x++ {
			for y := 0; y < h; {
				if !free(x, y) {
					y++
					continue
				}
				end := y
				for end+1 < h && free(x, end+1) {
					end++
				}
				out = append(out, Polyline{Color: c, Points: [][2]int{{x, y}, {x, end}}})
				y = end + 1
			}
		}
	}
	return out
}

// Validate checks that every point lies inside a w×h grid.
func (p Polyline) Validate(w, h int) error {
	if len(p.Points) == 0 {
		return fmt.Errorf("wire: %s polyline has no points", p.Color)
	}
	if int(p.Color) >= NumColors {
		return fmt.Errorf("wire: polyline color %d out of range", p.Color)
	}
	for _, pt := range p.Points {
		if pt[0] < 0 || pt[1] < 0 || pt[0] >= w || pt[1] >= h {
			return fmt.Errorf("wire: %s point (%d,%d) outside %dx%d", p.Color, pt[0], pt[1], w, h)
		}
	}
	return nil
}

// ApplyPolyline fills the wire cells described by p.
func (g *Grid) ApplyPolyline(p Polyline) error {
	if err := p.Validate(g.cells.W, g.cells.H); err != nil {
		return err
	}
	if len(p.Points) == 1 {
		g.MakeWire(p.Points[0][0], p.Points[0][1], p.Color)
		return nil
	}
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		x0, x1 := min(a[0], b[0]), max(a[0], b[0])
		y0, y1 := min(a[1], b[1]), max(a[1], b[1])
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.MakeWire(x, y, p.Color)
			}
		}
	}
	return nil
}
