// Package rock holds the world terrain: a coarse grid of rock cells, each 16
// submarine cells wide.
package rock

import (
	"fmt"
	"image"
	"image/color"

	"subsim/internal/core"
)

// Type is the shape of one rock cell. Diagonal walls are named after the
// corner that is filled.
type Type uint8

const (
	Empty Type = iota
	WallFilled
	WallLowerLeft
	WallLowerRight
	WallUpperLeft
	WallUpperRight
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case WallFilled:
		return "filled"
	case WallLowerLeft:
		return "lower-left"
	case WallLowerRight:
		return "lower-right"
	case WallUpperLeft:
		return "upper-left"
	case WallUpperRight:
		return "upper-right"
	default:
		return "unknown"
	}
}

// IsWall reports whether any part of the cell is solid.
func (t Type) IsWall() bool { return t != Empty }

// CellScale is how many submarine cells span one rock cell.
const CellScale = 16

// SubCellUnits is the number of position units in one submarine cell.
const SubCellUnits = 256

// CellUnits is the number of position units in one rock cell.
const CellUnits = CellScale * SubCellUnits

// patternTypes maps a 2×2 block (top-left 8, top-right 4, bottom-left 2,
// bottom-right 1; set = black) to a rock type.
var patternTypes = [16]Type{
	0b0000: Empty,
	0b1111: WallFilled,
	0b0111: WallLowerRight,
	0b1011: WallLowerLeft,
	0b1101: WallUpperRight,
	0b1110: WallUpperLeft,
	0b0001: WallFilled,
	0b0010: WallFilled,
	0b0011: WallFilled,
	0b0100: WallFilled,
	0b0101: WallFilled,
	0b0110: WallFilled,
	0b1000: WallFilled,
	0b1001: WallFilled,
	0b1010: WallFilled,
	0b1100: WallFilled,
}

// TypeForPattern resolves a 2×2 bit pattern to a rock type.
func TypeForPattern(p uint8) Type { return patternTypes[p&0xf] }

// Grid is the terrain. Edge cells (walls touching open water) are cached for
// sonar scans.
type Grid struct {
	cells *core.Grid[Type]
	edge  *core.Grid[bool]
	edges [][2]int
}

// New allocates an empty terrain grid.
func New(w, h int) *Grid {
	g := &Grid{
		cells: core.NewGrid[Type](w, h),
		edge:  core.NewGrid[bool](w, h),
	}
	return g
}

// FromImage builds a grid from a bitmap twice the grid size; each 2×2 pixel
// block selects one rock type. Dark pixels are rock.
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	if b.Dx()%2 != 0 || b.Dy()%2 != 0 {
		return nil, fmt.Errorf("rock: bitmap %dx%d has odd dimensions", b.Dx(), b.Dy())
	}
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("rock: empty bitmap")
	}
	g := New(b.Dx()/2, b.Dy()/2)
	dark := func(x, y int) uint8 {
		gray := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
		if gray.Y < 128 {
			return 1
		}
		return 0
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := dark(2*x, 2*y)<<3 | dark(2*x+1, 2*y)<<2 | dark(2*x, 2*y+1)<<1 | dark(2*x+1, 2*y+1)
			g.cells.Set(x, y, TypeForPattern(p))
		}
	}
	g.RebuildEdges()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cells.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cells.H }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool { return g.cells.InBounds(x, y) }

// Cell returns the type at (x, y). Out-of-range access panics.
func (g *Grid) Cell(x, y int) Type { return g.cells.Get(x, y) }

// Set changes one cell and refreshes the edge cache around it.
func (g *Grid) Set(x, y int, t Type) {
	g.cells.Set(x, y, t)
	g.RebuildEdges()
}

// IsWall reports whether (x, y) is rock. Outside the world counts as rock.
func (g *Grid) IsWall(x, y int) bool {
	if !g.cells.InBounds(x, y) {
		return true
	}
	return g.cells.Get(x, y).IsWall()
}

// IsEdge reports whether (x, y) is a wall cell next to open water.
func (g *Grid) IsEdge(x, y int) bool {
	return g.edge.InBounds(x, y) && g.edge.Get(x, y)
}

// EdgeCells lists all edge cells in row-major order.
func (g *Grid) EdgeCells() [][2]int { return g.edges }

// RebuildEdges recomputes the edge cache.
func (g *Grid) RebuildEdges() {
	g.edges = g.edges[:0]
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			e := false
			if g.cells.Get(x, y).IsWall() {
				for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
					nx, ny := x+d[0], y+d[1]
					if g.cells.InBounds(nx, ny) && !g.cells.Get(nx, ny).IsWall() {
						e = true
						break
					}
				}
			}
			g.edge.Set(x, y, e)
			if e {
				g.edges = append(g.edges, [2]int{x, y})
			}
		}
	}
}

// SolidAt reports whether the world point (wx, wy), in position units, lies
// inside rock. Diagonal cells are solid on their named half.
func (g *Grid) SolidAt(wx, wy int) bool {
	cx, cy := floorDiv(wx, CellUnits), floorDiv(wy, CellUnits)
	if !g.cells.InBounds(cx, cy) {
		return true
	}
	lx, ly := wx-cx*CellUnits, wy-cy*CellUnits
	switch g.cells.Get(cx, cy) {
	case Empty:
		return false
	case WallFilled:
		return true
	case WallLowerLeft:
		return ly >= lx
	case WallLowerRight:
		return lx+ly >= CellUnits
	case WallUpperLeft:
		return lx+ly < CellUnits
	case WallUpperRight:
		return lx >= ly
	default:
		panic("rock: unknown cell type")
	}
}

// Line walks the integer Bresenham line from (x0, y0) to (x1, y1), calling
// visit for every cell including both ends. Returning false stops the walk.
func Line(x0, y0, x1, y1 int, visit func(x, y int) bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if !visit(x0, y0) {
			return
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int { return floorDiv(a, b) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
