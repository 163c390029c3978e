package submarine

import (
	"fmt"

	"subsim/internal/logging"
	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/rock"
	"subsim/internal/sims/submarine/water"

	"github.com/sirupsen/logrus"
)

var log = logging.Component("submarine")

// WireSubSteps is how many wire propagation steps run per tick.
const WireSubSteps = 3

// World is the whole simulation state.
type World struct {
	Rock       *rock.Grid
	Submarines []*Submarine
	// Collisions lists this tick's rock contacts of all submarines, in
	// world units.
	Collisions []nav.Vec
	Settings   UpdateSettings
	Tick       uint64
}

// NewWorld creates an empty world over the given terrain.
func NewWorld(r *rock.Grid) *World {
	return &World{Rock: r, Settings: DefaultUpdateSettings()}
}

// Replace swaps in another world's state wholesale, as after a network
// resync.
func (w *World) Replace(other *World) []UpdateEvent {
	*w = *other
	log.WithField("submarines", len(w.Submarines)).Info("game state reset")
	return []UpdateEvent{GameStateReset{}}
}

// Advance runs one tick: commands in order, docking, every submarine,
// group motion and submarine collisions. It never fails; commands that
// address missing submarines, objects or cells are dropped.
func (w *World) Advance(cmds []Command) []UpdateEvent {
	var ev events
	w.Collisions = w.Collisions[:0]
	for _, s := range w.Submarines {
		s.Collisions = s.Collisions[:0]
		s.Nav.DockingOverride = nav.Vec{}
	}

	for _, c := range cmds {
		w.apply(c, &ev)
	}

	if w.Settings.Docking {
		w.rebuildDockingPoints()
		w.resolveDocking()
	}

	for i := range w.Submarines {
		w.updateSubmarine(i, &ev)
	}

	if w.Settings.Position {
		w.moveGroups()
	}
	if w.Settings.Collisions {
		w.submarineCollisions()
	}
	w.Tick++
	return ev.list
}

func (w *World) updateSubmarine(i int, ev *events) {
	s := w.Submarines[i]
	set := w.Settings
	if set.Navigation {
		s.Nav.Update(s.Totals())
	}
	if set.Water {
		s.Water.Update(set.Gravity, set.Inertia)
	}
	if set.Wires {
		changed := false
		for k := 0; k < WireSubSteps; k++ {
			if s.Wires.Update() {
				changed = true
			}
		}
		if changed {
			ev.submarine(i, EventSignals)
		}
	}
	if set.Objects {
		s.Nav.Acceleration.X = 0
		env := s.env()
		for _, o := range s.Objects {
			if o.Update(env) {
				ev.submarine(i, EventWalls)
			}
		}
	}
	if set.Wires {
		s.Wires.UpdateBundles()
	}
	if set.Sonar && w.updateSonar(i) {
		ev.submarine(i, EventSonar)
	}
	if set.Collisions {
		w.rockCollisions(i)
	}
}

func (w *World) submarine(i int) *Submarine {
	if i < 0 || i >= len(w.Submarines) {
		return nil
	}
	return w.Submarines[i]
}

func (w *World) apply(c Command, ev *events) {
	switch c := c.(type) {
	case Interact:
		s := w.submarine(c.Submarine)
		if s == nil || s.Object(c.Object) == nil {
			ignored(c)
			return
		}
		o := s.Object(c.Object)
		if st := o.Docking(); st != nil && st.Connected {
			w.release(Link{Submarine: c.Submarine, Object: c.Object})
			return
		}
		o.Interact()
	case Cell:
		s := w.submarine(c.Submarine)
		if s == nil || !s.Water.InBounds(c.X, c.Y) {
			ignored(c)
			return
		}
		w.editCell(c, s, ev)
	case ClearWater:
		s := w.submarine(c.Submarine)
		if s == nil {
			ignored(c)
			return
		}
		s.Water.ClearWater()
	case ChangeUpdateSettings:
		w.Settings = c.Settings
	case SetSonarTarget:
		s := w.submarine(c.Submarine)
		if s == nil {
			ignored(c)
			return
		}
		st := sonarObject(s, c.Object)
		if st == nil {
			ignored(c)
			return
		}
		st.Target = nav.Vec{X: int32(c.RockX * nav.RockCellUnits), Y: int32(c.RockY * nav.RockCellUnits)}
		st.HasTarget = true
	case CreateSubmarine:
		if c.Template == nil {
			ignored(c)
			return
		}
		if err := c.Template.Validate(); err != nil {
			log.WithError(err).Warn("create submarine: invalid template")
			return
		}
		s := c.Template.expand()
		s.Nav.Position = nav.Vec{X: int32(c.RockX * nav.RockCellUnits), Y: int32(c.RockY * nav.RockCellUnits)}
		s.Nav.Target = s.Nav.Position
		w.Submarines = append(w.Submarines, s)
		idx := len(w.Submarines) - 1
		log.WithFields(logrus.Fields{
			"submarine": idx,
			"width":     s.Width(),
			"height":    s.Height(),
			"objects":   len(s.Objects),
		}).Info("submarine created")
		ev.add(SubmarineCreated{Submarine: idx})
	default:
		panic(fmt.Sprintf("submarine: unknown command %T", c))
	}
}

func (w *World) editCell(c Cell, s *Submarine, ev *events) {
	i := c.Submarine
	switch e := c.Edit.(type) {
	case EditWires:
		if int(e.Color) >= len(s.Wires.Cell(c.X, c.Y).Values) {
			ignored(c)
			return
		}
		changed := false
		if e.Add {
			changed = s.Wires.MakeWire(c.X, c.Y, e.Color)
		} else {
			changed = s.Wires.ClearWire(c.X, c.Y, e.Color)
		}
		if changed {
			ev.submarine(i, EventWires)
		}
	case EditWalls:
		cell := s.Water.Cell(c.X, c.Y)
		switch {
		case e.Add && !cell.IsWall():
			cell.MakeWall(water.MaterialNormal)
			ev.submarine(i, EventWalls)
		case !e.Add && cell.IsWall():
			cell.ClearWall()
			ev.submarine(i, EventWalls)
		}
	case EditWater:
		cell := s.Water.Cell(c.X, c.Y)
		if e.Add {
			cell.Fill()
		} else {
			cell.Empty()
		}
	case AddObject:
		if !object.Fits(e.Kind, c.X, c.Y, s.Width(), s.Height()) {
			ignored(c)
			return
		}
		s.Objects = append(s.Objects, object.New(e.Kind, c.X, c.Y, e.Settings))
	default:
		panic(fmt.Sprintf("submarine: unknown cell edit %T", c.Edit))
	}
}

func ignored(c Command) {
	log.WithField("command", fmt.Sprintf("%T", c)).Debug("command target missing, ignored")
}
