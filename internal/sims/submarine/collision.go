package submarine

import (
	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/rock"
)

// rockCollisions records hull boundary cells that sit inside rock and turns
// the speed component that points into the contact.
func (w *World) rockCollisions(i int) {
	s := w.Submarines[i]
	var left, right, up, down bool
	cw, ch := s.Width(), s.Height()
	for _, p := range s.boundary() {
		c := s.cellCentre(p)
		if !w.Rock.SolidAt(int(c.X), int(c.Y)) {
			continue
		}
		s.Collisions = append(s.Collisions, p)
		w.Collisions = append(w.Collisions, c)

		// Side of the hull the contact is on, by the dominant axis from the
		// centre, scaled so a wide hull is not biased toward its ends.
		dx := (2*p.X - (cw - 1)) * ch
		dy := (2*p.Y - (ch - 1)) * cw
		if abs(dx) >= abs(dy) {
			left = left || dx < 0
			right = right || dx > 0
		} else {
			up = up || dy < 0
			down = down || dy > 0
		}
	}

	sp := &s.Nav.Speed
	if (left && sp.X < 0) || (right && sp.X > 0) {
		sp.X = -sp.X / 2
	}
	if (up && sp.Y < 0) || (down && sp.Y > 0) {
		sp.Y = -sp.Y / 2
	}
}

// submarineCollisions tests every pair of submarines that are not docked
// together, recording contacts on both sides.
func (w *World) submarineCollisions() {
	g := w.groups()
	for i := range w.Submarines {
		for j := i + 1; j < len(w.Submarines); j++ {
			if g[i] == g[j] {
				continue
			}
			a, b := w.Submarines[i], w.Submarines[j]
			contacts(a, b)
			contacts(b, a)
		}
	}
}

// contacts records every boundary cell of a that overlaps a hull cell of b.
func contacts(a, b *Submarine) {
	off := b.Nav.Position.Sub(a.Nav.Position)
	for _, p := range a.boundary() {
		cx := p.X*nav.CellUnits + nav.CellUnits/2 - int(off.X)
		cy := p.Y*nav.CellUnits + nav.CellUnits/2 - int(off.Y)
		bx, by := rock.FloorDiv(cx, nav.CellUnits), rock.FloorDiv(cy, nav.CellUnits)
		if b.occupied(bx, by) {
			a.Collisions = append(a.Collisions, p)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
