package submarine

import (
	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/rock"

	"github.com/sirupsen/logrus"
)

const (
	SonarPulse  = 120
	SonarRadius = 75
	// sonarBlock is the side of the neighbourhood around an edge cell whose
	// own rock never hides it.
	sonarBlock = 4
)

// Offset is a rock-cell offset from the sonar centre.
type Offset struct{ X, Y int16 }

// Sonar holds what the last scan saw.
type Sonar struct {
	Visible []Offset
	Pulse   int
}

// activeSonar reports whether any sonar object is powered and switched on.
func (s *Submarine) activeSonar() bool {
	for _, o := range s.Objects {
		if st := o.Sonar(); st != nil && st.Active && o.Powered {
			return true
		}
	}
	return false
}

// updateSonar advances the pulse and rescans at its start. It reports
// whether the visible set was rebuilt or cleared.
func (w *World) updateSonar(i int) bool {
	s := w.Submarines[i]
	if !s.activeSonar() {
		s.Sonar.Pulse = 0
		if len(s.Sonar.Visible) == 0 {
			return false
		}
		s.Sonar.Visible = nil
		return true
	}

	scan := s.Sonar.Pulse == 0
	s.Sonar.Pulse = (s.Sonar.Pulse + 1) % SonarPulse
	if !scan {
		return false
	}
	c := s.centre()
	cx := rock.FloorDiv(int(c.X), nav.RockCellUnits)
	cy := rock.FloorDiv(int(c.Y), nav.RockCellUnits)
	s.Sonar.Visible = VisibleEdgeCells(w.Rock, cx, cy)
	log.WithFields(logrus.Fields{
		"submarine": i,
		"visible":   len(s.Sonar.Visible),
	}).Debug("sonar scan")
	return true
}

// VisibleEdgeCells lists the rock edge cells within SonarRadius of (cx, cy)
// that have a clear line to it, as offsets from the centre.
func VisibleEdgeCells(g *rock.Grid, cx, cy int) []Offset {
	var out []Offset
	x0, x1 := max(cx-SonarRadius, 0), min(cx+SonarRadius, g.Width()-1)
	y0, y1 := max(cy-SonarRadius, 0), min(cy+SonarRadius, g.Height()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !g.IsEdge(x, y) {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > SonarRadius*SonarRadius {
				continue
			}
			if visible(g, cx, cy, x, y) {
				out = append(out, Offset{int16(dx), int16(dy)})
			}
		}
	}
	return out
}

func visible(g *rock.Grid, cx, cy, ex, ey int) bool {
	open := true
	first := true
	rock.Line(cx, cy, ex, ey, func(x, y int) bool {
		if first {
			first = false
			return true
		}
		if x == ex && y == ey {
			return false
		}
		if g.IsWall(x, y) && !sameBlock(x, y, ex, ey) {
			open = false
			return false
		}
		return true
	})
	return open
}

func sameBlock(ax, ay, bx, by int) bool {
	return rock.FloorDiv(ax, sonarBlock) == rock.FloorDiv(bx, sonarBlock) &&
		rock.FloorDiv(ay, sonarBlock) == rock.FloorDiv(by, sonarBlock)
}

// sonarObject returns the sonar at index i of submarine s, or nil.
func sonarObject(s *Submarine, i int) *object.SonarState {
	o := s.Object(i)
	if o == nil {
		return nil
	}
	return o.Sonar()
}
