package wire

// MaxBundles is the number of bundle ids a grid can hand out.
const MaxBundles = 256

// SubBundles is the number of channels inside one bundle.
const SubBundles = 8

// StoredSignal is what one bundle channel carries for one thin colour.
type StoredSignal struct {
	Logic    int8
	HasLogic bool
	Power    uint8
	HasPower bool
}

// Merge folds o into s. When several writers share a channel in one tick the
// strongest value wins.
func (s *StoredSignal) Merge(o StoredSignal) {
	if o.HasLogic && (!s.HasLogic || o.Logic > s.Logic) {
		s.Logic, s.HasLogic = o.Logic, true
	}
	if o.HasPower && (!s.HasPower || o.Power > s.Power) {
		s.Power, s.HasPower = o.Power, true
	}
}

// Channels holds one StoredSignal per sub-bundle and thin colour.
type Channels [SubBundles][len(ThinColors)]StoredSignal

// At returns the signal of thin colour c on channel sub.
func (ch *Channels) At(sub uint8, c Color) *StoredSignal {
	return &ch[sub%SubBundles][c.channel()]
}

type bundle struct {
	input  Channels
	output Channels
}

// BundleInput returns the buffer writers fill during the current tick.
func (g *Grid) BundleInput(id uint8) *Channels { return &g.bundles[id].input }

// BundleOutput returns what was written during the previous tick.
func (g *Grid) BundleOutput(id uint8) *Channels { return &g.bundles[id].output }

// BundleCells reports how many cells are tagged with id.
func (g *Grid) BundleCells(id uint8) int { return g.bundleCells[id] }

// UpdateBundles publishes this tick's inputs as next tick's outputs.
func (g *Grid) UpdateBundles() {
	for id := range g.bundles {
		if g.bundleCells[id] == 0 {
			continue
		}
		b := &g.bundles[id]
		b.output = b.input
		b.input = Channels{}
	}
}

// BundleAt returns the bundle id of the bundle wire at (x, y).
func (g *Grid) BundleAt(x, y int) (uint8, bool) {
	if !g.cells.InBounds(x, y) {
		return 0, false
	}
	v := g.cells.At(x, y).Values[Bundle]
	if v.Kind != KindBundle {
		return 0, false
	}
	return v.BundleID, true
}

// ColinearBundle reports the shared id of three consecutive bundle cells
// starting at (x, y), laid out horizontally or vertically.
func (g *Grid) ColinearBundle(x, y int, horizontal bool) (uint8, bool) {
	dx, dy := 0, 1
	if horizontal {
		dx, dy = 1, 0
	}
	id, ok := g.BundleAt(x, y)
	if !ok {
		return 0, false
	}
	for i := 1; i < 3; i++ {
		other, ok := g.BundleAt(x+i*dx, y+i*dy)
		if !ok || other != id {
			return 0, false
		}
	}
	return id, true
}

// joinBundle picks the id for a new bundle cell at (x, y): a fresh id when it
// touches no bundle, otherwise the lowest neighbouring id with every other
// neighbouring bundle merged into it.
func (g *Grid) joinBundle(x, y int) (uint8, bool) {
	var ids []uint8
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		if id, ok := g.BundleAt(x+d[0], y+d[1]); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		for id := 0; id < MaxBundles; id++ {
			if g.bundleCells[id] == 0 {
				g.bundles[id] = bundle{}
				return uint8(id), true
			}
		}
		return 0, false
	}

	target := ids[0]
	for _, id := range ids[1:] {
		target = min(target, id)
	}
	for _, id := range ids {
		if id != target {
			g.mergeBundle(id, target)
		}
	}
	return target, true
}

func (g *Grid) mergeBundle(from, into uint8) {
	if g.bundleCells[from] == 0 {
		return
	}
	cells := g.cells.Cells()
	for _, i := range g.index[Bundle] {
		v := &cells[i].Values[Bundle]
		if v.BundleID == from {
			v.BundleID = into
		}
	}
	g.bundleCells[into] += g.bundleCells[from]
	g.bundleCells[from] = 0
	g.bundles[from] = bundle{}
}

func (g *Grid) releaseBundleCell(id uint8) {
	g.bundleCells[id]--
	if g.bundleCells[id] < 0 {
		panic("wire: bundle cell count below zero")
	}
	if g.bundleCells[id] == 0 {
		g.bundles[id] = bundle{}
	}
}
