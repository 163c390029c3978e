// Package wire implements the signal network of a submarine: thin wires that
// carry one decaying power or logic value and bundles that carry many
// channels with a one tick delay.
package wire

import (
	"fmt"
	"slices"

	"subsim/internal/core"
)

// Grid is the wire layer of one submarine.
type Grid struct {
	cells *core.Grid[Cell]
	old   []Cell

	// index lists, per colour, every cell that has a wire of that colour.
	index [NumColors][]int

	bundles     [MaxBundles]bundle
	bundleCells [MaxBundles]int
}

// New allocates an empty wire grid.
func New(w, h int) *Grid {
	g := &Grid{cells: core.NewGrid[Cell](w, h)}
	g.old = make([]Cell, len(g.cells.Cells()))
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cells.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cells.H }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool { return g.cells.InBounds(x, y) }

// Cell returns the cell at (x, y). Out-of-range access panics.
func (g *Grid) Cell(x, y int) *Cell { return g.cells.At(x, y) }

// Cells exposes all cells in row-major order.
func (g *Grid) Cells() []Cell { return g.cells.Cells() }

// Indexed returns the cells that carry a wire of colour c.
func (g *Grid) Indexed(c Color) []int { return g.index[c] }

// MakeWire places a wire of colour c at (x, y). It reports whether the grid
// changed.
func (g *Grid) MakeWire(x, y int, c Color) bool {
	cell := g.cells.At(x, y)
	if cell.Values[c].IsWire() {
		return false
	}
	if c == Bundle {
		id, ok := g.joinBundle(x, y)
		if !ok {
			return false
		}
		cell.Values[c] = Value{Kind: KindBundle, BundleID: id}
		g.bundleCells[id]++
	} else {
		cell.Values[c] = Value{Kind: KindNoSignal}
	}
	g.index[c] = append(g.index[c], g.cells.Index(x, y))
	return true
}

// ClearWire removes the wire of colour c at (x, y). It reports whether the
// grid changed.
func (g *Grid) ClearWire(x, y int, c Color) bool {
	cell := g.cells.At(x, y)
	v := cell.Values[c]
	if !v.IsWire() {
		return false
	}
	if c == Bundle {
		g.releaseBundleCell(v.BundleID)
	}
	cell.Values[c] = Value{}
	i := g.cells.Index(x, y)
	pos := slices.Index(g.index[c], i)
	if pos < 0 {
		panic(fmt.Sprintf("wire: %s wire at (%d,%d) missing from index", c, x, y))
	}
	g.index[c] = slices.Delete(g.index[c], pos, pos+1)
	return true
}

// Clear removes every wire and resets all bundles.
func (g *Grid) Clear() {
	g.cells.Clear()
	for c := range g.index {
		g.index[c] = g.index[c][:0]
	}
	g.bundles = [MaxBundles]bundle{}
	g.bundleCells = [MaxBundles]int{}
}

// Update runs one propagation step for every thin colour. It reports whether
// any signal strength changed.
func (g *Grid) Update() bool {
	copy(g.old, g.cells.Cells())
	cells := g.cells.Cells()
	updated := false
	for _, c := range ThinColors {
		for _, i := range g.index[c] {
			prev := g.old[i].Values[c]
			if !prev.IsWire() {
				x, y := g.cells.Coords(i)
				panic(fmt.Sprintf("wire: index lists (%d,%d) for %s but the cell has no wire", x, y, c))
			}
			next := g.propagate(i, c, prev)
			if next.Signal != prev.Signal {
				updated = true
			}
			cells[i].Values[c] = next
		}
	}
	return updated
}

// neighbor returns the snapshot index of the neighbour of i in direction d,
// or -1 outside the grid. Directions are up, right, down, left.
func (g *Grid) neighbor(i, d int) int {
	w, h := g.cells.W, g.cells.H
	x, y := i%w, i/w
	switch d {
	case 0:
		y--
	case 1:
		x++
	case 2:
		y++
	default:
		x--
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return -1
	}
	return y*w + x
}

func (g *Grid) propagate(i int, c Color, prev Value) Value {
	connected := 0
	for d := 0; d < 4; d++ {
		if n := g.neighbor(i, d); n >= 0 && g.old[n].Values[c].IsWire() {
			connected++
		}
	}
	if connected > 2 {
		return Value{Kind: KindNotConnected}
	}

	next := prev
	next.Terminal = connected == 1
	if prev.Carries() {
		if prev.Signal > 2 {
			next.Signal = prev.Signal - 2
		} else {
			next.Signal = 0
		}
	} else {
		next = Value{Kind: KindNoSignal, Terminal: next.Terminal}
	}

	best := -1
	var bestSignal uint16
	for d := 0; d < 4; d++ {
		n := g.neighbor(i, d)
		if n < 0 {
			continue
		}
		nv := g.old[n].Values[c]
		if nv.Carries() && nv.Signal > bestSignal {
			best, bestSignal = n, nv.Signal
		}
	}
	if best >= 0 && bestSignal > next.Signal+3 {
		adopted := g.old[best].Values[c]
		adopted.Signal = bestSignal - 1
		adopted.Terminal = next.Terminal
		return adopted
	}

	if next.Carries() && next.Signal == 0 {
		return Value{Kind: KindNoSignal, Terminal: next.Terminal}
	}
	return next
}

// SendLogic writes a fresh logic value into every terminal thin wire at (x, y).
func (g *Grid) SendLogic(x, y int, v int8) {
	for _, c := range ThinColors {
		g.SendLogicColor(x, y, c, v)
	}
}

// SendPower writes a fresh power value into every terminal thin wire at (x, y).
func (g *Grid) SendPower(x, y int, v uint8) {
	for _, c := range ThinColors {
		g.SendPowerColor(x, y, c, v)
	}
}

// SendLogicColor writes a fresh logic value into the wire of colour c at
// (x, y) if that wire ends there.
func (g *Grid) SendLogicColor(x, y int, c Color, v int8) {
	cell := g.cells.At(x, y)
	if writable(cell.Values[c]) {
		cell.Values[c] = Value{Kind: KindLogic, Terminal: true, Signal: MaxSignal, Logic: v}
	}
}

// SendPowerColor writes a fresh power value into the wire of colour c at
// (x, y) if that wire ends there.
func (g *Grid) SendPowerColor(x, y int, c Color, v uint8) {
	cell := g.cells.At(x, y)
	if writable(cell.Values[c]) {
		cell.Values[c] = Value{Kind: KindPower, Terminal: true, Signal: MaxSignal, Power: v}
	}
}

func writable(v Value) bool {
	switch v.Kind {
	case KindNoSignal, KindPower, KindLogic:
		return v.Terminal
	default:
		return false
	}
}

// ReceiveLogic reads the logic value of the first terminal wire at (x, y) in
// colour priority order.
func (g *Grid) ReceiveLogic(x, y int) (int8, bool) {
	cell := g.cells.At(x, y)
	for _, c := range Priority {
		v := cell.Values[c]
		if v.Terminal && v.Kind == KindLogic {
			return v.Logic, true
		}
	}
	return 0, false
}

// ReceivePower reads the power value of the first terminal wire at (x, y) in
// colour priority order.
func (g *Grid) ReceivePower(x, y int) (uint8, bool) {
	cell := g.cells.At(x, y)
	for _, c := range Priority {
		v := cell.Values[c]
		if v.Terminal && v.Kind == KindPower {
			return v.Power, true
		}
	}
	return 0, false
}

// ReceiveColor returns the value of colour c at (x, y) when that wire ends
// there and carries a signal.
func (g *Grid) ReceiveColor(x, y int, c Color) (Value, bool) {
	v := g.cells.At(x, y).Values[c]
	if v.Terminal && v.Carries() {
		return v, true
	}
	return Value{}, false
}
