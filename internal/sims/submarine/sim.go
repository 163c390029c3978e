package submarine

import (
	"image"
	"strconv"

	"subsim/internal/core"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/rock"
	"subsim/internal/sims/submarine/wire"
)

// Sim runs a demo world for the viewers: one hull with a reactor feeding a
// lamp and a sonar through a junction box, over a rock floor. The display
// shows the first submarine's cells.
type Sim struct {
	cfg   Config
	world *World

	pending []Command
	events  []UpdateEvent

	display []uint8
}

// New creates a demo Sim with the default configuration.
func New() *Sim {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a demo Sim.
func NewWithConfig(cfg Config) *Sim {
	cfg = cfg.normalize()
	s := &Sim{cfg: cfg, display: make([]uint8, cfg.HullWidth*cfg.HullHeight)}
	s.Reset(cfg.Seed)
	return s
}

// Name identifies the simulation.
func (s *Sim) Name() string { return "submarine" }

// Size returns the demo hull dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.HullWidth, H: s.cfg.HullHeight} }

// Cells exposes the display buffer.
func (s *Sim) Cells() []uint8 { return s.display }

// World exposes the simulated world.
func (s *Sim) World() *World { return s.world }

// Events returns what the last Step reported.
func (s *Sim) Events() []UpdateEvent { return s.events }

// Reset rebuilds the world. The seed only places boulders; the simulation
// itself draws no random numbers.
func (s *Sim) Reset(seed int64) {
	s.cfg.Seed = seed
	w := NewWorld(s.cfg.buildRock(seed))
	w.Settings = s.cfg.Settings
	s.pending = s.pending[:0]
	s.events = w.Advance([]Command{CreateSubmarine{
		Template: DemoTemplate(s.cfg.HullWidth, s.cfg.HullHeight),
		RockX:    s.cfg.RockX,
		RockY:    s.cfg.RockY,
	}})
	s.world = w
	s.refreshDisplay()
}

// Queue adds a command for the next Step.
func (s *Sim) Queue(c Command) { s.pending = append(s.pending, c) }

// Step advances the world one tick with the queued commands.
func (s *Sim) Step() {
	cmds := s.pending
	s.pending = nil
	s.events = s.world.Advance(cmds)
	s.refreshDisplay()
}

// Click interacts with the object under the display cell, if any.
func (s *Sim) Click(x, y int) bool {
	sub := s.world.submarine(0)
	if sub == nil {
		return false
	}
	for i := len(sub.Objects) - 1; i >= 0; i-- {
		if sub.Objects[i].Contains(x, y) {
			s.Queue(Interact{Submarine: 0, Object: i})
			return true
		}
	}
	return false
}

// ToggleWall adds or removes a wall at the display cell.
func (s *Sim) ToggleWall(x, y int) {
	sub := s.world.submarine(0)
	if sub == nil || !sub.Water.InBounds(x, y) {
		return
	}
	add := !sub.Water.Cell(x, y).IsWall()
	s.Queue(Cell{Submarine: 0, X: x, Y: y, Edit: EditWalls{Add: add}})
}

// PourWater fills the display cell with water.
func (s *Sim) PourWater(x, y int) {
	s.Queue(Cell{Submarine: 0, X: x, Y: y, Edit: EditWater{Add: true}})
}

// SonarPoints returns the last sonar scan as offsets in rock cells.
func (s *Sim) SonarPoints() []image.Point {
	sub := s.world.submarine(0)
	if sub == nil {
		return nil
	}
	out := make([]image.Point, len(sub.Sonar.Visible))
	for i, v := range sub.Sonar.Visible {
		out[i] = image.Point{X: int(v.X), Y: int(v.Y)}
	}
	return out
}

// CollisionCells returns this tick's contact cells of the displayed hull.
func (s *Sim) CollisionCells() []image.Point {
	sub := s.world.submarine(0)
	if sub == nil {
		return nil
	}
	out := make([]image.Point, len(sub.Collisions))
	for i, p := range sub.Collisions {
		out[i] = image.Point{X: p.X, Y: p.Y}
	}
	return out
}

// WaterMask returns the fill fraction of every displayed cell.
func (s *Sim) WaterMask() []float32 {
	sub := s.world.submarine(0)
	if sub == nil {
		return nil
	}
	cells := sub.Water.Cells()
	out := make([]float32, len(cells))
	for i := range cells {
		out[i] = cells[i].AmountFilled()
	}
	return out
}

// Parameters reports the demo configuration and the update toggles.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("hull_w", "Hull width", s.cfg.HullWidth),
				intParam("hull_h", "Hull height", s.cfg.HullHeight),
				intParam("rock_w", "Rock width", s.cfg.RockWidth),
				intParam("rock_h", "Rock height", s.cfg.RockHeight),
				intParam("boulders", "Boulders", s.cfg.Boulders),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(s.cfg.Seed, 10)},
			},
		},
		{
			Name:    "Update",
			Params:  s.world.Settings.parameters(),
			Summary: "Subsystems run each tick",
		},
	}}
}

// ParameterControls exposes the rebuild knobs and the update toggles to the
// HUD.
func (s *Sim) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, 0, len(settingKeys)+2)
	out = append(out,
		core.ParameterControl{Key: "boulders", Label: "Boulders", Type: core.ParamTypeInt, Step: 1, HasMin: true},
		core.ParameterControl{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
	)
	for _, k := range settingKeys {
		out = append(out, core.ParameterControl{Key: k.key, Label: k.label, Type: core.ParamTypeBool})
	}
	return out
}

// SetBoolParameter queues a settings change for the next tick.
func (s *Sim) SetBoolParameter(key string, value bool) bool {
	next, ok := s.world.Settings.With(key, value)
	if !ok {
		return false
	}
	s.Queue(ChangeUpdateSettings{Settings: next})
	return true
}

// SetIntParameter rebuilds the world with a new boulder count or seed.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "boulders":
		if value < 0 {
			return false
		}
		s.cfg.Boulders = value
		s.Reset(s.cfg.Seed)
	case "seed":
		s.Reset(int64(value))
	default:
		return false
	}
	return true
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

// DemoRock builds a w×h rock world with a two-row floor and boulders with
// sloped flanks placed by seed.
func DemoRock(w, h, boulders int, seed int64) *rock.Grid {
	g := rock.New(w, h)
	for y := max(h-2, 0); y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, rock.WallFilled)
		}
	}
	row := h - 3
	if row < 0 {
		return g
	}
	rng := core.NewRNG(seed)
	for i := 0; i < boulders; i++ {
		x := rng.IntN(w)
		g.Set(x, row, rock.WallFilled)
		if x > 0 && g.Cell(x-1, row) == rock.Empty {
			g.Set(x-1, row, rock.WallLowerRight)
		}
		if x+1 < w && g.Cell(x+1, row) == rock.Empty {
			g.Set(x+1, row, rock.WallLowerLeft)
		}
	}
	return g
}

// DemoTemplate builds the demo hull with its junction box already warm. w and
// h must be at least 24×10.
func DemoTemplate(w, h int) *SubmarineTemplate {
	t := HullTemplate(w, h)
	warm := true
	t.Objects = []ObjectPlacement{
		{Kind: object.Reactor, X: 2, Y: 2},
		{Kind: object.JunctionBox, X: 9, Y: 3, Settings: object.Settings{Warm: &warm}},
		{Kind: object.Lamp, X: 15, Y: 5},
		{Kind: object.Sonar, X: 18, Y: 2},
	}
	t.Wires = []wire.Polyline{
		{Color: wire.Purple, Points: [][2]int{{7, 5}, {9, 5}}},
		{Color: wire.Purple, Points: [][2]int{{13, 5}, {15, 5}}},
		{Color: wire.Brown, Points: [][2]int{{13, 3}, {13, 1}, {18, 1}, {18, 2}}},
	}
	return t
}

func init() {
	core.Register("submarine", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
