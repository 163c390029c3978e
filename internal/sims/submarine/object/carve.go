package object

import "subsim/internal/sims/submarine/water"

// DoorBand maps door progress to the number of open cells on each side of
// the door's centre.
func DoorBand(progress uint8) int {
	return int(progress) * DoorBands / MaxProgress
}

// OpenRows maps connector progress to the number of open passage rows.
func OpenRows(progress uint8) int {
	return (int(progress) + 3) / 4
}

// carveDoor shapes the hatch to match the door's progress.
func (o *Object) carveDoor(st *DoorState, g *water.Grid) bool {
	band := DoorBand(st.Progress)
	changed := false
	for across := DoorHatchFirst; across <= DoorHatchLast; across++ {
		for along := DoorSpanFirst; along <= DoorSpanLast; along++ {
			x, y := o.X+along, o.Y+across
			if o.Kind == VerticalDoor {
				x, y = o.X+across, o.Y+along
			}
			open := along >= DoorCentre-band && along < DoorCentre+band
			if open {
				changed = openCell(g, x, y) || changed
			} else {
				changed = wallCell(g, x, y, water.MaterialNormal) || changed
			}
		}
	}
	return changed
}

// carveConnector opens the passage from the hull side outward. The outer
// boundary row seals with an invisible wall while docked and floods from the
// sea otherwise, and is only touched once the whole passage is open.
func (o *Object) carveConnector(st *DockingState, g *water.Grid) bool {
	rows := OpenRows(st.Progress)
	changed := false
	for col := PassageFirstColumn; col <= PassageLastColumn; col++ {
		x := o.X + col
		for depth := 0; depth < PassageRows; depth++ {
			// depth 0 is the innermost passage row.
			y := o.Y + PassageRows - depth
			if o.Kind == DockingConnectorBottom {
				y = o.Y + depth
			}
			if depth < rows {
				changed = openCell(g, x, y) || changed
			} else {
				changed = wallCell(g, x, y, water.MaterialNormal) || changed
			}
		}

		y := o.Y
		if o.Kind == DockingConnectorBottom {
			y = o.Y + PassageRows
		}
		switch {
		case rows < PassageRows:
			changed = wallCell(g, x, y, water.MaterialNormal) || changed
		case st.Connected:
			changed = wallCell(g, x, y, water.MaterialInvisible) || changed
		default:
			c := g.Cell(x, y)
			if !c.IsSea() {
				c.MakeSea()
				changed = true
			}
		}
	}
	return changed
}

func openCell(g *water.Grid, x, y int) bool {
	return g.Cell(x, y).MakeInside()
}

func wallCell(g *water.Grid, x, y int, m water.Material) bool {
	c := g.Cell(x, y)
	if c.IsWall() && c.Material() == m {
		return false
	}
	c.MakeWall(m)
	return true
}

// ConnectionPoint returns the connector's anchor in grid cells scaled by
// cellUnits: the middle of the outer edge of its boundary row.
func (o *Object) ConnectionPoint(cellUnits int) (int, int) {
	x := (o.X + ConnectionOffsetX) * cellUnits
	if o.Kind == DockingConnectorBottom {
		return x, (o.Y + PassageRows + 1) * cellUnits
	}
	return x, o.Y * cellUnits
}
