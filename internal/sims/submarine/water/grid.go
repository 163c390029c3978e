// Package water implements the cellular fluid solver of a submarine hull.
//
// Every update reads a snapshot of the previous tick and writes a fresh
// buffer, so the next state of a cell is a pure function of the previous
// global state regardless of iteration order.
package water

import (
	"math"

	"subsim/internal/core"
)

// Grid is the water layer of one submarine. Cells on the outer frame are
// never updated; non-sea frame cells only reflect water back.
type Grid struct {
	cur  *core.Grid[Cell]
	next *core.Grid[Cell]

	flows []([4]uint32)
}

// New allocates an all-interior, empty grid.
func New(w, h int) *Grid {
	g := &Grid{
		cur:  core.NewGrid[Cell](w, h),
		next: core.NewGrid[Cell](w, h),
	}
	g.flows = make([][4]uint32, len(g.cur.Cells()))
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cur.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cur.H }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool { return g.cur.InBounds(x, y) }

// Cell returns the cell at (x, y). Out-of-range access panics.
func (g *Grid) Cell(x, y int) *Cell { return g.cur.At(x, y) }

// Cells exposes the current cells in row-major order.
func (g *Grid) Cells() []Cell { return g.cur.Cells() }

// IsBorder reports whether (x, y) lies on the static outer frame.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.cur.W-1 || y == g.cur.H-1
}

// Clear resets every cell to an empty interior cell.
func (g *Grid) Clear() {
	g.cur.Clear()
}

// ClearWater empties all interior cells and reflection buffers, keeping walls
// and sea.
func (g *Grid) ClearWater() {
	cells := g.cur.Cells()
	for i := range cells {
		c := &cells[i]
		c.reflect = [4]uint32{}
		c.Empty()
	}
}

// TotalWater sums interior levels and all water in flight in reflection
// buffers.
func (g *Grid) TotalWater() uint64 {
	var total uint64
	for i := range g.cur.Cells() {
		c := &g.cur.Cells()[i]
		if c.kind == Inside {
			total += uint64(c.level)
		}
		for _, r := range c.reflect {
			total += uint64(r)
		}
	}
	return total
}

// TotalWalls counts wall cells.
func (g *Grid) TotalWalls() int {
	n := 0
	for i := range g.cur.Cells() {
		if g.cur.Cells()[i].kind == Wall {
			n++
		}
	}
	return n
}

// TotalInside counts interior cells.
func (g *Grid) TotalInside() int {
	n := 0
	for i := range g.cur.Cells() {
		if g.cur.Cells()[i].kind == Inside {
			n++
		}
	}
	return n
}

// reflects reports whether the cell at (x, y) bounces incoming water.
func (g *Grid) reflects(c *Cell, x, y int) bool {
	return c.kind == Wall || (c.kind != Sea && g.IsBorder(x, y))
}

// Update advances the fluid by one tick.
func (g *Grid) Update(gravity, inertia bool) {
	w, h := g.cur.W, g.cur.H
	old := g.cur.Cells()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			g.flows[i] = g.outflow(&old[i], x, y)
		}
	}

	next := g.next.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			c := &old[i]
			switch {
			case g.reflects(c, x, y):
				next[i] = g.gatherReflector(c, x, y)
			case c.kind == Sea:
				next[i] = Cell{kind: Sea, level: SeaLevel}
			case c.kind == Inside:
				next[i] = g.gatherInside(c, x, y, gravity, inertia)
			default:
				panic("water: unknown cell kind")
			}
		}
	}

	g.cur, g.next = g.next, g.cur
}

// outflow computes how much water leaves the cell in each direction this tick.
func (g *Grid) outflow(c *Cell, x, y int) [4]uint32 {
	var out [4]uint32
	switch {
	case g.reflects(c, x, y):
		for _, d := range Directions {
			out[d.Opposite()] = c.reflect[d]
		}
		return out
	case c.kind == Sea:
		p := uint32(SeaLevel-FullLevel) / 4
		return [4]uint32{p, p, p, p}
	}

	level := c.level
	if level > FullLevel {
		p := (level - FullLevel) / 4
		out = [4]uint32{p, p, p, p}
		level -= 4 * p
	}

	ax, ay := abs32(c.vx), abs32(c.vy)
	speed := uint64(ax) + uint64(ay)
	if speed == 0 || level == 0 {
		return out
	}
	budget := speed
	if budget > uint64(level) {
		budget = uint64(level)
	}
	fx := uint32(budget * uint64(ax) / speed)
	fy := uint32(budget) - fx
	if c.vx > 0 {
		out[Right] += fx
	} else if c.vx < 0 {
		out[Left] += fx
	}
	if c.vy > 0 {
		out[Down] += fy
	} else if c.vy < 0 {
		out[Up] += fy
	}
	return out
}

// gatherReflector collects water that hit a reflecting cell this tick.
func (g *Grid) gatherReflector(c *Cell, x, y int) Cell {
	n := *c
	if c.kind == Wall {
		n.level = 0
		n.vx, n.vy = 0, 0
	}
	n.reflect = [4]uint32{}
	for _, d := range Directions {
		// Water moving in direction d arrives from the neighbour behind it.
		dx, dy := d.Opposite().Offset()
		sx, sy := x+dx, y+dy
		if !g.cur.InBounds(sx, sy) {
			continue
		}
		src := g.cur.At(sx, sy)
		if src.kind == Sea || g.reflects(src, sx, sy) {
			continue
		}
		n.reflect[d] = g.flows[sy*g.cur.W+sx][d]
	}
	return n
}

// gatherInside computes the next state of an interior, non-frame cell.
func (g *Grid) gatherInside(c *Cell, x, y int, gravity, inertia bool) Cell {
	own := g.flows[y*g.cur.W+x]
	level := uint64(c.level)
	for _, f := range own {
		level -= uint64(f)
	}

	var mx, my int64
	for _, d := range Directions {
		// Neighbour in direction d sends toward us in the opposite direction.
		dx, dy := d.Offset()
		nx, ny := x+dx, y+dy
		src := g.cur.At(nx, ny)
		moving := d.Opposite()
		amount := g.flows[ny*g.cur.W+nx][moving]
		if amount == 0 {
			continue
		}
		level += uint64(amount)
		ox, oy := moving.Offset()
		momentum := int64(amount)
		if g.reflects(src, nx, ny) {
			momentum /= 8
		}
		mx += int64(ox) * momentum
		my += int64(oy) * momentum
	}
	if level > math.MaxUint32 {
		level = math.MaxUint32
	}

	var vx, vy int64
	if inertia {
		vx = int64(c.vx)*3/4 + mx/4
		vy = int64(c.vy)*3/4 + my/4
	}
	if gravity && !g.cur.At(x, y+1).IsWall() {
		vy += GravityStep
	}

	return Cell{
		kind:  Inside,
		level: uint32(level),
		vx:    clampVelocity(vx),
		vy:    clampVelocity(vy),
	}
}

func clampVelocity(v int64) int32 {
	if v > MaxVelocity {
		return MaxVelocity
	}
	if v < -MaxVelocity {
		return -MaxVelocity
	}
	return int32(v)
}

func abs32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}
