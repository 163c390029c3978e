// Package submarine drives the per-tick simulation of every submarine in a
// world: command application, docking, the per-submarine grid and object
// updates, navigation and collisions.
package submarine

import (
	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/water"
	"subsim/internal/sims/submarine/wire"
)

// Point is a cell coordinate.
type Point struct{ X, Y int }

// Submarine owns one vessel's grids, objects and motion.
type Submarine struct {
	Water   *water.Grid
	Wires   *wire.Grid
	Objects []*object.Object
	Sonar   Sonar
	Nav     nav.Navigation

	// Collisions lists this tick's contact cells in local coordinates.
	Collisions    []Point
	DockingPoints []DockingPoint

	Background []byte
}

func newSubmarine(w, h int) *Submarine {
	return &Submarine{Water: water.New(w, h), Wires: wire.New(w, h)}
}

// Width and Height are the grid dimensions in cells.
func (s *Submarine) Width() int  { return s.Water.Width() }
func (s *Submarine) Height() int { return s.Water.Height() }

// Totals measures the hull for buoyancy.
func (s *Submarine) Totals() nav.Totals {
	return nav.Totals{
		Walls:  s.Water.TotalWalls(),
		Inside: s.Water.TotalInside(),
		Water:  s.Water.TotalWater(),
	}
}

// Object returns object i or nil.
func (s *Submarine) Object(i int) *object.Object {
	if i < 0 || i >= len(s.Objects) {
		return nil
	}
	return s.Objects[i]
}

// occupied reports whether the local cell belongs to the hull.
func (s *Submarine) occupied(x, y int) bool {
	return s.Water.InBounds(x, y) && !s.Water.Cell(x, y).IsSea()
}

// boundary lists hull cells next to the sea or the grid edge.
func (s *Submarine) boundary() []Point {
	var out []Point
	w, h := s.Width(), s.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !s.occupied(x, y) {
				continue
			}
			for _, d := range water.Directions {
				dx, dy := d.Offset()
				if !s.occupied(x+dx, y+dy) {
					out = append(out, Point{x, y})
					break
				}
			}
		}
	}
	return out
}

// cellCentre returns the world position of the centre of a local cell.
func (s *Submarine) cellCentre(p Point) nav.Vec {
	return nav.Vec{
		X: s.Nav.Position.X + int32(p.X*nav.CellUnits+nav.CellUnits/2),
		Y: s.Nav.Position.Y + int32(p.Y*nav.CellUnits+nav.CellUnits/2),
	}
}

// centre returns the world position of the middle of the hull.
func (s *Submarine) centre() nav.Vec {
	return nav.Vec{
		X: s.Nav.Position.X + int32(s.Width()*nav.CellUnits/2),
		Y: s.Nav.Position.Y + int32(s.Height()*nav.CellUnits/2),
	}
}

func (s *Submarine) env() object.Env {
	return object.Env{Water: s.Water, Wires: s.Wires, Nav: &s.Nav}
}
