package submarine

import (
	"testing"

	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/rock"
	"subsim/internal/sims/submarine/wire"
)

// spawn creates a submarine from tpl and returns its index.
func spawn(t *testing.T, w *World, tpl *SubmarineTemplate, rx, ry int) int {
	t.Helper()
	events := w.Advance([]Command{CreateSubmarine{Template: tpl, RockX: rx, RockY: ry}})
	for _, ev := range events {
		if c, ok := ev.(SubmarineCreated); ok {
			return c.Submarine
		}
	}
	t.Fatalf("no SubmarineCreated event in %v", events)
	return -1
}

func run(w *World, ticks int) {
	for i := 0; i < ticks; i++ {
		w.Advance(nil)
	}
}

func TestSealedHullStaysInEnvelope(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, HullTemplate(102, 102), 20, 20)
	s := w.Submarines[i]
	start := s.Nav.Position

	const ticks = 600
	prevY := start.Y
	for tick := 0; tick < ticks; tick++ {
		w.Advance(nil)
		if s.Nav.Position.Y > prevY {
			t.Fatalf("tick %d: buoyant hull sank from %d to %d", tick, prevY, s.Nav.Position.Y)
		}
		prevY = s.Nav.Position.Y
		if len(w.Collisions) != 0 {
			t.Fatalf("tick %d: unexpected rock contact %v", tick, w.Collisions)
		}
	}

	if s.Water.TotalWater() != 0 {
		t.Fatalf("sealed hull took on %d units of water", s.Water.TotalWater())
	}
	if s.Nav.Position.X != start.X {
		t.Fatalf("hull without engines drifted sideways: %d -> %d", start.X, s.Nav.Position.X)
	}
	rise := start.Y - s.Nav.Position.Y
	if rise <= 0 {
		t.Fatalf("air-filled hull should rise, moved %d", rise)
	}
	if limit := int32(ticks * nav.MaxSpeed / nav.SpeedDivisor); rise > limit {
		t.Fatalf("rise %d exceeds the speed-limited envelope %d", rise, limit)
	}
}

func lampTemplate() *SubmarineTemplate {
	t := HullTemplate(24, 12)
	t.Objects = []ObjectPlacement{
		{Kind: object.Reactor, X: 2, Y: 2},
		{Kind: object.Lamp, X: 11, Y: 5},
	}
	// Reactor output (7,5) to lamp input (11,5): five cells.
	t.Wires = []wire.Polyline{{Color: wire.Purple, Points: [][2]int{{7, 5}, {11, 5}}}}
	return t
}

func TestReactorLightsLamp(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, lampTemplate(), 10, 10)
	s := w.Submarines[i]
	lamp := s.Objects[1]

	run(w, 10)
	if !lamp.Powered {
		t.Fatal("lamp should be lit once the reactor's power crossed the wire")
	}
	v := s.Wires.Cell(11, 5).Values[wire.Purple]
	if v.Kind != wire.KindPower || v.Power != object.ReactorPower {
		t.Fatalf("lamp input should carry reactor power, got %+v", v)
	}

	w.Advance([]Command{Interact{Submarine: i, Object: 0}})
	run(w, 200)
	if lamp.Powered {
		t.Fatal("lamp should go dark after the reactor is switched off")
	}
	if v := s.Wires.Cell(11, 5).Values[wire.Purple]; v.Carries() {
		t.Fatalf("signal should have decayed away, got %+v", v)
	}
}

func dockingTemplate(k object.Kind, y int) *SubmarineTemplate {
	t := HullTemplate(12, 10)
	t.Objects = []ObjectPlacement{{Kind: k, X: 3, Y: y}}
	return t
}

func checkDockingSymmetry(t *testing.T, w *World, tick int) {
	t.Helper()
	for i, s := range w.Submarines {
		for _, p := range s.DockingPoints {
			if !p.Connected {
				continue
			}
			q := w.pointFor(p.ConnectedTo)
			if q == nil || !q.Connected || q.ConnectedTo != (Link{Submarine: i, Object: p.Object}) {
				t.Fatalf("tick %d: submarine %d object %d links to %+v but the partner does not link back", tick, i, p.Object, p.ConnectedTo)
			}
		}
	}
}

func TestDockingConverges(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	a := spawn(t, w, dockingTemplate(object.DockingConnectorBottom, 5), 10, 10)
	b := spawn(t, w, dockingTemplate(object.DockingConnectorTop, 0), 10, 10)
	sa, sb := w.Submarines[a], w.Submarines[b]

	// Bottom connection point is (1536, 2560) from A's origin, top point is
	// (1536, 0) from B's: start the points 100 units apart on both axes.
	sb.Nav.Position = sa.Nav.Position.Add(nav.Vec{X: 100, Y: 2560 + 100})

	gap := func() nav.Vec {
		ax, ay := sa.Objects[0].ConnectionPoint(nav.CellUnits)
		bx, by := sb.Objects[0].ConnectionPoint(nav.CellUnits)
		pa := sa.Nav.Position.Add(nav.Vec{X: int32(ax), Y: int32(ay)})
		pb := sb.Nav.Position.Add(nav.Vec{X: int32(bx), Y: int32(by)})
		return pb.Sub(pa)
	}
	if g := gap(); g != (nav.Vec{X: 100, Y: 100}) {
		t.Fatalf("setup gap = %+v", g)
	}

	prev := gap()
	latched := -1
	for tick := 0; tick < 80; tick++ {
		w.Advance(nil)
		checkDockingSymmetry(t, w, tick)
		g := gap()
		if abs32(g.X) > abs32(prev.X) || abs32(g.Y) > abs32(prev.Y) {
			t.Fatalf("tick %d: gap grew from %+v to %+v", tick, prev, g)
		}
		if d := prev.Sub(g); abs32(d.X) > DockingNudge || abs32(d.Y) > DockingNudge {
			t.Fatalf("tick %d: gap closed by %+v, faster than the nudge", tick, d)
		}
		prev = g
		if sa.Objects[0].Docking().Connected {
			latched = tick
			break
		}
	}
	if latched < 0 {
		t.Fatalf("connectors never latched, gap %+v", prev)
	}

	da, db := sa.Objects[0].Docking(), sb.Objects[0].Docking()
	if !db.Connected || da.Partner != (object.Partner{Submarine: b, Object: 0}) || db.Partner != (object.Partner{Submarine: a, Object: 0}) {
		t.Fatalf("latch is not mutual: %+v / %+v", *da, *db)
	}

	// Docked hulls move as one group; the passage opens over the next ticks.
	before := gap()
	run(w, 20)
	checkDockingSymmetry(t, w, latched+20)
	if gap() != before {
		t.Fatalf("docked pair drifted apart: %+v -> %+v", before, gap())
	}
	if !sa.Water.Cell(4, 5).IsInside() || !sb.Water.Cell(4, 4).IsInside() {
		t.Fatal("docked connectors should have opened their passages")
	}
	if c := sa.Water.Cell(4, 9); !c.IsWall() {
		t.Fatal("docked bottom connector should seal its boundary row")
	}
}

// dockingPair spawns two facing connectors whose points start 100 units
// apart on both axes and returns a function measuring the point gap.
func dockingPair(t *testing.T) (*World, *Submarine, *Submarine, func() nav.Vec) {
	t.Helper()
	w := NewWorld(rock.New(64, 64))
	a := spawn(t, w, dockingTemplate(object.DockingConnectorBottom, 5), 10, 10)
	b := spawn(t, w, dockingTemplate(object.DockingConnectorTop, 0), 10, 10)
	sa, sb := w.Submarines[a], w.Submarines[b]
	sb.Nav.Position = sa.Nav.Position.Add(nav.Vec{X: 100, Y: 2560 + 100})
	gap := func() nav.Vec {
		ax, ay := sa.Objects[0].ConnectionPoint(nav.CellUnits)
		bx, by := sb.Objects[0].ConnectionPoint(nav.CellUnits)
		pa := sa.Nav.Position.Add(nav.Vec{X: int32(ax), Y: int32(ay)})
		pb := sb.Nav.Position.Add(nav.Vec{X: int32(bx), Y: int32(by)})
		return pb.Sub(pa)
	}
	return w, sa, sb, gap
}

func latchWithin(t *testing.T, w *World, s *Submarine, ticks int) {
	t.Helper()
	for tick := 0; tick < ticks; tick++ {
		w.Advance(nil)
		checkDockingSymmetry(t, w, tick)
		if s.Objects[0].Docking().Connected {
			return
		}
	}
	t.Fatalf("connectors did not latch within %d ticks", ticks)
}

func TestInteractReleasesDocking(t *testing.T) {
	w, sa, sb, gap := dockingPair(t)
	latchWithin(t, w, sa, 80)
	da, db := sa.Objects[0].Docking(), sb.Objects[0].Docking()

	w.Advance([]Command{Interact{Submarine: 0, Object: 0}})
	checkDockingSymmetry(t, w, 0)
	if da.Connected || db.Connected {
		t.Fatalf("interaction should release both sides: %+v / %+v", *da, *db)
	}
	if !da.Released || !db.Released {
		t.Fatal("released connectors should stay unlatchable while aligned")
	}

	for tick := 0; tick < 10; tick++ {
		w.Advance(nil)
		checkDockingSymmetry(t, w, tick)
		if da.Connected || db.Connected {
			t.Fatalf("tick %d: released pair latched again with gap %+v", tick, gap())
		}
	}

	// Pulling the hulls out of latch range re-arms both connectors.
	sb.Nav.Position = sb.Nav.Position.Add(nav.Vec{Y: 40})
	latchWithin(t, w, sa, 60)
	if da.Released || db.Released || !db.Connected {
		t.Fatalf("pair should re-dock once re-armed: %+v / %+v", *da, *db)
	}
}

func TestDockingReleasesOnSeparation(t *testing.T) {
	w, sa, sb, gap := dockingPair(t)
	latchWithin(t, w, sa, 80)

	sb.Nav.Position = sb.Nav.Position.Add(nav.Vec{Y: DockingRange + 72})
	w.Advance(nil)
	checkDockingSymmetry(t, w, 0)
	da, db := sa.Objects[0].Docking(), sb.Objects[0].Docking()
	if da.Connected || db.Connected {
		t.Fatalf("pair %+v apart should release", gap())
	}
	if da.Released || db.Released {
		t.Fatal("connectors out of latch range should be re-armed at once")
	}

	before := gap()
	for tick := 0; tick < 5; tick++ {
		w.Advance(nil)
		checkDockingSymmetry(t, w, tick)
	}
	if da.Connected || gap() != before {
		t.Fatalf("separated pair should neither latch nor pull: %+v -> %+v", before, gap())
	}
}

func TestDockingNudgeStopsWithDocking(t *testing.T) {
	w, sa, _, gap := dockingPair(t)
	w.Advance(nil)
	if sa.Nav.DockingOverride == (nav.Vec{}) {
		t.Fatal("connectors in range should nudge")
	}

	off := w.Settings
	off.Docking = false
	before := gap()
	w.Advance([]Command{ChangeUpdateSettings{Settings: off}})
	run(w, 50)
	if gap() != before || sa.Nav.DockingOverride != (nav.Vec{}) {
		t.Fatalf("nudge kept moving the hull with docking off: %+v -> %+v, override %+v",
			before, gap(), sa.Nav.DockingOverride)
	}
}

func TestStaleCommandsAreNoOps(t *testing.T) {
	build := func() *World {
		w := NewWorld(rock.New(64, 64))
		spawn(t, w, HullTemplate(12, 10), 10, 10)
		return w
	}
	clean, dirty := build(), build()

	stale := []Command{
		Interact{Submarine: 4, Object: 0},
		Interact{Submarine: 0, Object: 7},
		Interact{Submarine: -1, Object: 0},
		Cell{Submarine: 0, X: -1, Y: 2, Edit: EditWalls{Add: true}},
		Cell{Submarine: 0, X: 12, Y: 2, Edit: EditWater{Add: true}},
		Cell{Submarine: 3, X: 1, Y: 1, Edit: EditWires{Add: true, Color: wire.Blue}},
		Cell{Submarine: 0, X: 9, Y: 8, Edit: AddObject{Kind: object.Reactor}},
		ClearWater{Submarine: 9},
		SetSonarTarget{Submarine: 0, Object: 0, RockX: 3, RockY: 3},
		SetSonarTarget{Submarine: 2, Object: 0, RockX: 3, RockY: 3},
		CreateSubmarine{},
	}
	for tick := 0; tick < 5; tick++ {
		clean.Advance(nil)
		if events := dirty.Advance(stale); len(events) != 0 {
			t.Fatalf("tick %d: stale commands emitted %v", tick, events)
		}
	}
	if clean.Checksum() != dirty.Checksum() {
		t.Fatal("stale commands changed the world")
	}
	if len(dirty.Submarines) != 1 || len(dirty.Submarines[0].Objects) != 0 {
		t.Fatalf("stale commands added state: %d submarines", len(dirty.Submarines))
	}
}

func TestInvalidTemplateIgnored(t *testing.T) {
	w := NewWorld(rock.New(16, 16))
	bad := HullTemplate(12, 10)
	bad.WaterCells = bad.WaterCells[:5]
	if events := w.Advance([]Command{CreateSubmarine{Template: bad}}); len(events) != 0 {
		t.Fatalf("invalid template emitted %v", events)
	}
	if len(w.Submarines) != 0 {
		t.Fatal("invalid template must not create a submarine")
	}
}

func TestEditEventsDeduplicated(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, HullTemplate(12, 10), 10, 10)

	events := w.Advance([]Command{
		Cell{Submarine: i, X: 2, Y: 2, Edit: EditWires{Add: true, Color: wire.Purple}},
		Cell{Submarine: i, X: 3, Y: 2, Edit: EditWires{Add: true, Color: wire.Purple}},
		Cell{Submarine: i, X: 5, Y: 5, Edit: EditWalls{Add: true}},
		Cell{Submarine: i, X: 6, Y: 5, Edit: EditWalls{Add: true}},
	})
	want := []UpdateEvent{
		SubmarineEvent{Submarine: i, Kind: EventWires},
		SubmarineEvent{Submarine: i, Kind: EventWalls},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for k := range want {
		if events[k] != want[k] {
			t.Fatalf("event %d = %v, want %v", k, events[k], want[k])
		}
	}

	// Re-adding the same wire changes nothing.
	events = w.Advance([]Command{Cell{Submarine: i, X: 2, Y: 2, Edit: EditWires{Add: true, Color: wire.Purple}}})
	if len(events) != 0 {
		t.Fatalf("duplicate wire emitted %v", events)
	}

	s := w.Submarines[i]
	w.Advance([]Command{Cell{Submarine: i, X: 4, Y: 4, Edit: EditWater{Add: true}}})
	if s.Water.TotalWater() == 0 {
		t.Fatal("EditWater should add water")
	}
	w.Advance([]Command{ClearWater{Submarine: i}})
	if s.Water.TotalWater() != 0 {
		t.Fatalf("ClearWater left %d units", s.Water.TotalWater())
	}
}

func TestAddObjectCommand(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, HullTemplate(24, 12), 10, 10)
	s := w.Submarines[i]

	w.Advance([]Command{Cell{Submarine: i, X: 2, Y: 2, Edit: AddObject{Kind: object.Sonar}}})
	if len(s.Objects) != 1 || s.Objects[0].Kind != object.Sonar {
		t.Fatalf("objects = %v", s.Objects)
	}
	w.Advance([]Command{SetSonarTarget{Submarine: i, Object: 0, RockX: 2, RockY: 3}})
	st := s.Objects[0].Sonar()
	if !st.HasTarget || st.Target != (nav.Vec{X: 2 * nav.RockCellUnits, Y: 3 * nav.RockCellUnits}) {
		t.Fatalf("sonar target = %+v", *st)
	}
}

func TestAddedJunctionWarmsUp(t *testing.T) {
	tpl := DemoTemplate(32, 16)
	tpl.Objects = append(tpl.Objects[:1], tpl.Objects[2:]...)
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, tpl, 10, 10)
	s := w.Submarines[i]
	lamp := s.Objects[1]

	w.Advance([]Command{Cell{Submarine: i, X: 9, Y: 3, Edit: AddObject{Kind: object.JunctionBox}}})
	if len(s.Objects) != 4 || s.Objects[3].Kind != object.JunctionBox {
		t.Fatalf("junction not placed: %v", s.Objects)
	}
	run(w, 5)
	if lamp.Powered {
		t.Fatal("a freshly placed junction passed power before warming up")
	}
	run(w, 35)
	if !lamp.Powered {
		t.Fatal("lamp should light once the junction is warm")
	}
}

func TestSonarScansAndClears(t *testing.T) {
	r := rock.New(32, 32)
	r.Set(10, 20, rock.WallFilled)
	w := NewWorld(r)
	// The demo hull's centre lands on rock cell (10, 10).
	i := spawn(t, w, DemoTemplate(32, 16), 9, 10)
	s := w.Submarines[i]

	sawSonar := false
	for tick := 0; tick < 20; tick++ {
		for _, ev := range w.Advance(nil) {
			if ev == (SubmarineEvent{Submarine: i, Kind: EventSonar}) {
				sawSonar = true
			}
		}
	}
	if !sawSonar {
		t.Fatal("powered sonar never reported a scan")
	}
	if len(s.Sonar.Visible) != 1 || s.Sonar.Visible[0] != (Offset{X: 0, Y: 10}) {
		t.Fatalf("visible = %v, want the single boulder ten cells below", s.Sonar.Visible)
	}

	events := w.Advance([]Command{Interact{Submarine: i, Object: 3}})
	if len(s.Sonar.Visible) != 0 {
		t.Fatal("switching the sonar off should clear the scan")
	}
	found := false
	for _, ev := range events {
		found = found || ev == (SubmarineEvent{Submarine: i, Kind: EventSonar})
	}
	if !found {
		t.Fatalf("clearing the scan should emit a sonar event, got %v", events)
	}
}

func TestVisibleEdgeCellsBlocked(t *testing.T) {
	r := rock.New(40, 40)
	// A wall segment between the centre and a far boulder.
	for x := 18; x <= 22; x++ {
		r.Set(x, 15, rock.WallFilled)
	}
	r.Set(20, 30, rock.WallFilled)

	vis := VisibleEdgeCells(r, 20, 5)
	seen := map[Offset]bool{}
	for _, o := range vis {
		seen[o] = true
	}
	if !seen[Offset{X: 0, Y: 10}] {
		t.Fatalf("near wall should be visible, got %v", vis)
	}
	if seen[Offset{X: 0, Y: 25}] {
		t.Fatal("boulder behind the wall should be hidden")
	}
}

func TestRockCollisionBounces(t *testing.T) {
	r := rock.New(16, 16)
	for x := 0; x < 16; x++ {
		r.Set(x, 8, rock.WallFilled)
	}
	w := NewWorld(r)
	i := spawn(t, w, HullTemplate(12, 10), 2, 2)
	s := w.Submarines[i]
	floor := int32(8 * rock.CellUnits)
	s.Nav.Position.Y = floor - 10*nav.CellUnits - 10
	s.Nav.Speed.Y = nav.MaxSpeed

	hit := -1
	for tick := 0; tick < 40; tick++ {
		w.Advance(nil)
		if len(w.Collisions) > 0 {
			hit = tick
			break
		}
	}
	if hit < 0 {
		t.Fatal("falling hull never touched the floor")
	}
	for _, c := range w.Collisions {
		if c.Y < floor {
			t.Fatalf("contact %+v above the floor at %d", c, floor)
		}
	}
	if s.Nav.Speed.Y >= 0 {
		t.Fatalf("speed into the floor should reverse, got %d", s.Nav.Speed.Y)
	}
	if len(s.Collisions) == 0 {
		t.Fatal("contact cells should be recorded on the submarine")
	}
}

func TestChecksumDeterministic(t *testing.T) {
	build := func() *World {
		w := NewWorld(DemoRock(24, 16, 4, 7))
		spawn(t, w, DemoTemplate(32, 16), 4, 4)
		return w
	}
	a, b := build(), build()
	cmds := map[int][]Command{
		3:  {Cell{Submarine: 0, X: 5, Y: 10, Edit: EditWater{Add: true}}},
		10: {Interact{Submarine: 0, Object: 1}},
		25: {Interact{Submarine: 0, Object: 1}},
	}
	for tick := 0; tick < 60; tick++ {
		a.Advance(cmds[tick])
		b.Advance(cmds[tick])
		if a.Checksum() != b.Checksum() {
			t.Fatalf("tick %d: identical runs diverged", tick)
		}
	}

	b.Advance([]Command{Interact{Submarine: 0, Object: 0}})
	a.Advance(nil)
	if a.Checksum() == b.Checksum() {
		t.Fatal("checksum should see the reactor switched off")
	}
}

func TestReplaceResetsState(t *testing.T) {
	w := NewWorld(rock.New(16, 16))
	other := NewWorld(rock.New(16, 16))
	spawn(t, other, HullTemplate(12, 10), 1, 1)

	events := w.Replace(other)
	if len(events) != 1 || events[0] != (GameStateReset{}) {
		t.Fatalf("events = %v", events)
	}
	if len(w.Submarines) != 1 || w.Checksum() != other.Checksum() {
		t.Fatal("replace should adopt the other world's state")
	}
}

func TestUpdateSettingsCommand(t *testing.T) {
	w := NewWorld(rock.New(64, 64))
	i := spawn(t, w, HullTemplate(12, 10), 10, 10)
	s := w.Submarines[i]
	s.Nav.Speed.X = 1024

	off := w.Settings
	off.Position = false
	w.Advance([]Command{ChangeUpdateSettings{Settings: off}})
	pos := s.Nav.Position
	run(w, 5)
	if s.Nav.Position != pos {
		t.Fatalf("position moved with position updates off: %+v -> %+v", pos, s.Nav.Position)
	}
	w.Advance([]Command{ChangeUpdateSettings{Settings: DefaultUpdateSettings()}})
	if s.Nav.Position == pos {
		t.Fatal("position should move again once re-enabled")
	}
}
