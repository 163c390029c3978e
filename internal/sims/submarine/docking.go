package submarine

import (
	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"

	"github.com/sirupsen/logrus"
)

const (
	// DockingRange is the per-axis distance at which two connectors start
	// pulling together; beyond it a latched pair releases.
	DockingRange = 128
	// LatchRange is the per-axis distance at which they latch.
	LatchRange = 4
	// DockingNudge caps the closing speed per axis, in units per tick.
	DockingNudge = 2
)

// DockingDirection says which side of the hull a connector faces.
type DockingDirection uint8

const (
	DockTop DockingDirection = iota
	DockBottom
)

// Link addresses a connector in the world.
type Link struct {
	Submarine int
	Object    int
}

// DockingPoint describes one connector for the current tick. Points are
// rebuilt from the connector objects every tick.
type DockingPoint struct {
	Position    nav.Vec
	Object      int
	Direction   DockingDirection
	Connected   bool
	ConnectedTo Link
	Released    bool
	InProximity bool
	ProximityTo nav.Vec
	SpeedOffset nav.Vec
}

func (w *World) rebuildDockingPoints() {
	for _, s := range w.Submarines {
		s.DockingPoints = s.DockingPoints[:0]
		for j, o := range s.Objects {
			st := o.Docking()
			if st == nil {
				continue
			}
			x, y := o.ConnectionPoint(nav.CellUnits)
			p := DockingPoint{
				Position:  s.Nav.Position.Add(nav.Vec{X: int32(x), Y: int32(y)}),
				Object:    j,
				Direction: DockTop,
				Connected: st.Connected,
				Released:  st.Released,
			}
			if o.Kind == object.DockingConnectorBottom {
				p.Direction = DockBottom
			}
			if st.Connected {
				p.ConnectedTo = Link{Submarine: st.Partner.Submarine, Object: st.Partner.Object}
			}
			s.DockingPoints = append(s.DockingPoints, p)
		}
	}
}

// pointFor finds the docking point built for connector l.
func (w *World) pointFor(l Link) *DockingPoint {
	if l.Submarine < 0 || l.Submarine >= len(w.Submarines) {
		return nil
	}
	s := w.Submarines[l.Submarine]
	for k := range s.DockingPoints {
		if s.DockingPoints[k].Object == l.Object {
			return &s.DockingPoints[k]
		}
	}
	return nil
}

// connector returns the docking state of l, or nil.
func (w *World) connector(l Link) *object.DockingState {
	if l.Submarine < 0 || l.Submarine >= len(w.Submarines) {
		return nil
	}
	o := w.Submarines[l.Submarine].Object(l.Object)
	if o == nil {
		return nil
	}
	return o.Docking()
}

// release unlatches a connector and its partner. Both stay unlatchable
// until their points leave latch range.
func (w *World) release(a Link) {
	sa := w.connector(a)
	if sa == nil || !sa.Connected {
		return
	}
	b := Link{Submarine: sa.Partner.Submarine, Object: sa.Partner.Object}
	sa.Connected, sa.Released, sa.Partner = false, true, object.Partner{}
	if sb := w.connector(b); sb != nil {
		sb.Connected, sb.Released, sb.Partner = false, true, object.Partner{}
	}
	for _, l := range []Link{a, b} {
		if p := w.pointFor(l); p != nil {
			p.Connected, p.Released, p.ConnectedTo = false, true, Link{}
		}
	}
	log.WithFields(logrus.Fields{
		"a_submarine": a.Submarine, "a_object": a.Object,
		"b_submarine": b.Submarine, "b_object": b.Object,
	}).Info("docking released")
}

func (w *World) latch(a, b Link) {
	sa, sb := w.connector(a), w.connector(b)
	sa.Connected, sa.Partner = true, object.Partner{Submarine: b.Submarine, Object: b.Object}
	sb.Connected, sb.Partner = true, object.Partner{Submarine: a.Submarine, Object: a.Object}
	pa, pb := w.pointFor(a), w.pointFor(b)
	pa.Connected, pa.ConnectedTo = true, b
	pb.Connected, pb.ConnectedTo = true, a
	log.WithFields(logrus.Fields{
		"a_submarine": a.Submarine, "a_object": a.Object,
		"b_submarine": b.Submarine, "b_object": b.Object,
	}).Info("docking latched")
}

// resolveDocking releases pairs that drifted apart, then pairs up free
// connectors: close ones latch, nearby ones pull together.
func (w *World) resolveDocking() {
	for i, s := range w.Submarines {
		for k := range s.DockingPoints {
			p := &s.DockingPoints[k]
			if !p.Connected {
				continue
			}
			q := w.pointFor(p.ConnectedTo)
			if q == nil {
				w.release(Link{Submarine: i, Object: p.Object})
				continue
			}
			d := q.Position.Sub(p.Position)
			if abs32(d.X) > DockingRange || abs32(d.Y) > DockingRange {
				w.release(Link{Submarine: i, Object: p.Object})
			}
		}
	}

	for i, s := range w.Submarines {
		for k := range s.DockingPoints {
			p := &s.DockingPoints[k]
			if p.Released && !w.withinLatch(i, p) {
				p.Released = false
				w.connector(Link{Submarine: i, Object: p.Object}).Released = false
			}
		}
	}

	for i := range w.Submarines {
		for j := i + 1; j < len(w.Submarines); j++ {
			w.resolvePair(i, j)
		}
	}
}

// withinLatch reports whether a free facing connector of another submarine
// lies within latch range of p.
func (w *World) withinLatch(i int, p *DockingPoint) bool {
	for j, s := range w.Submarines {
		if j == i {
			continue
		}
		for _, q := range s.DockingPoints {
			if q.Connected || q.Direction == p.Direction {
				continue
			}
			d := q.Position.Sub(p.Position)
			if abs32(d.X) <= LatchRange && abs32(d.Y) <= LatchRange {
				return true
			}
		}
	}
	return false
}

// resolvePair matches the free connectors of submarines i < j. Only i is
// nudged, so the pair closes at most DockingNudge units per tick per axis.
func (w *World) resolvePair(i, j int) {
	a, b := w.Submarines[i], w.Submarines[j]
	for ka := range a.DockingPoints {
		pa := &a.DockingPoints[ka]
		if pa.Connected || pa.Released || pa.InProximity {
			continue
		}
		for kb := range b.DockingPoints {
			pb := &b.DockingPoints[kb]
			if pb.Connected || pb.Released || pb.InProximity || pa.Direction == pb.Direction {
				continue
			}
			d := pb.Position.Sub(pa.Position)
			if abs32(d.X) > DockingRange || abs32(d.Y) > DockingRange {
				continue
			}
			if abs32(d.X) <= LatchRange && abs32(d.Y) <= LatchRange {
				w.latch(Link{Submarine: i, Object: pa.Object}, Link{Submarine: j, Object: pb.Object})
				break
			}
			pa.InProximity, pa.ProximityTo = true, pb.Position
			pb.InProximity, pb.ProximityTo = true, pa.Position
			pa.SpeedOffset = clampNudge(d)
			a.Nav.DockingOverride = clampNudge(a.Nav.DockingOverride.Add(pa.SpeedOffset))
			break
		}
	}
}

// groups labels every submarine with the lowest index reachable through
// latched connectors.
func (w *World) groups() []int {
	g := make([]int, len(w.Submarines))
	for i := range g {
		g[i] = i
	}
	for changed := true; changed; {
		changed = false
		for i, s := range w.Submarines {
			for _, o := range s.Objects {
				st := o.Docking()
				if st == nil || !st.Connected {
					continue
				}
				j := st.Partner.Submarine
				if j < 0 || j >= len(g) {
					continue
				}
				m := min(g[i], g[j])
				if g[i] != m || g[j] != m {
					g[i], g[j] = m, m
					changed = true
				}
			}
		}
	}
	return g
}

// moveGroups applies each docking group's average velocity, plus each
// member's own docking nudge. The average is not weighted by mass.
func (w *World) moveGroups() {
	g := w.groups()
	type acc struct {
		sum nav.Vec
		n   int32
	}
	sums := make(map[int]*acc)
	for i, s := range w.Submarines {
		a := sums[g[i]]
		if a == nil {
			a = &acc{}
			sums[g[i]] = a
		}
		a.sum = a.sum.Add(s.Nav.Step())
		a.n++
	}
	for i, s := range w.Submarines {
		a := sums[g[i]]
		v := nav.Vec{X: a.sum.X / a.n, Y: a.sum.Y / a.n}
		s.Nav.Position = s.Nav.Position.Add(v).Add(s.Nav.DockingOverride)
	}
}

// clampNudge limits each axis of v to DockingNudge.
func clampNudge(v nav.Vec) nav.Vec {
	return nav.Vec{
		X: min(max(v.X, -DockingNudge), DockingNudge),
		Y: min(max(v.Y, -DockingNudge), DockingNudge),
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
