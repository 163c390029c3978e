package submarine

import (
	"testing"

	"subsim/internal/core"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/rock"
)

func TestSimRegistered(t *testing.T) {
	factory, ok := core.Sims()["submarine"]
	if !ok {
		t.Fatal("submarine sim should register itself")
	}
	sim := factory(map[string]string{"hull_w": "40", "hull_h": "4", "water": "false"})
	size := sim.Size()
	if size.W != 40 || size.H != DefaultConfig().HullHeight {
		t.Fatalf("size = %+v, want 40x%d", size, DefaultConfig().HullHeight)
	}
	if len(sim.Cells()) != size.W*size.H {
		t.Fatalf("display has %d cells, want %d", len(sim.Cells()), size.W*size.H)
	}
	if sim.(*Sim).World().Settings.Water {
		t.Fatal("water updates should be off")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"rock_w":   "48",
		"rock_x":   "-2",
		"boulders": "-1",
		"seed":     "99",
		"docking":  "no",
		"sonar":    "0",
	})
	if cfg.RockWidth != 48 || cfg.RockX != -2 || cfg.Seed != 99 {
		t.Fatalf("parsed config = %+v", cfg)
	}
	if cfg.Boulders != DefaultConfig().Boulders {
		t.Fatal("negative boulder count should be ignored")
	}
	if !cfg.Settings.Docking || cfg.Settings.Sonar {
		t.Fatalf("settings = %+v", cfg.Settings)
	}
	if FromMap(nil) != DefaultConfig() {
		t.Fatal("nil map should give the defaults")
	}
}

func TestSettingsWith(t *testing.T) {
	s, ok := DefaultUpdateSettings().With("gravity", false)
	if !ok || s.Gravity {
		t.Fatalf("With(gravity) = %+v, %v", s, ok)
	}
	if _, ok := s.With("warp", true); ok {
		t.Fatal("unknown key should be rejected")
	}
}

func TestSimLampLightsAndClick(t *testing.T) {
	sim := New()
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	sub := sim.World().Submarines[0]
	lamp := sub.Objects[2]
	if !lamp.Powered {
		t.Fatal("demo lamp should light through the junction box")
	}
	// The lamp's far corner carries no wire.
	if got := sim.Cells()[(lamp.Y+1)*sim.Size().W+lamp.X+1]; got != displayPowered {
		t.Fatalf("lit lamp displays as %d", got)
	}

	reactor := sub.Objects[0]
	if !sim.Click(reactor.X+1, reactor.Y+1) {
		t.Fatal("click on the reactor should hit it")
	}
	sim.Step()
	if reactor.State.(*object.ReactorState).Active {
		t.Fatal("click should switch the reactor off")
	}
	if sim.Click(1, sim.Size().H-2) {
		t.Fatal("click on an empty cell should miss")
	}
}

func TestSimParameters(t *testing.T) {
	sim := New()
	snap := sim.Parameters()
	found := false
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if p.Key == "water" {
				found = p.Value == "true" && p.Type == core.ParamTypeBool
			}
		}
	}
	if !found {
		t.Fatal("water toggle missing from the snapshot")
	}
	if len(sim.ParameterControls()) != len(settingKeys)+2 {
		t.Fatal("every update toggle should have a control")
	}
	if !sim.SetBoolParameter("water", false) || sim.SetBoolParameter("nope", true) {
		t.Fatal("SetBoolParameter accepted the wrong keys")
	}
	sim.Step()
	if sim.World().Settings.Water {
		t.Fatal("queued settings change should apply on the next step")
	}
}

func TestSimSetIntParameter(t *testing.T) {
	sim := New()
	if !sim.SetIntParameter("boulders", 0) {
		t.Fatal("boulders should be adjustable")
	}
	r := sim.World().Rock
	if r.Cell(0, r.Height()-3) != rock.Empty || sim.World().Tick != 1 {
		t.Fatal("world should be rebuilt without boulders")
	}
	if sim.SetIntParameter("boulders", -1) || sim.SetIntParameter("hull_w", 50) {
		t.Fatal("invalid adjustments were accepted")
	}
	if !sim.SetIntParameter("seed", 42) || sim.Parameters().Groups[0].Params[5].Value != "42" {
		t.Fatal("seed change should show in the snapshot")
	}
}

func TestSimResetDeterministic(t *testing.T) {
	a, b := New(), New()
	for i := 0; i < 30; i++ {
		a.Step()
		b.Step()
	}
	if a.World().Checksum() != b.World().Checksum() {
		t.Fatal("identical sims diverged")
	}
	a.Reset(5)
	b.Reset(5)
	if a.World().Checksum() != b.World().Checksum() {
		t.Fatal("reset with the same seed should rebuild the same world")
	}
}

func TestPaletteCoversDisplay(t *testing.T) {
	sim := New()
	sim.ToggleWall(3, 12)
	sim.PourWater(4, 12)
	for i := 0; i < 5; i++ {
		sim.Step()
	}
	n := len(sim.Palette())
	for i, c := range sim.Cells() {
		if int(c) >= n {
			t.Fatalf("cell %d uses index %d outside the %d-colour palette", i, c, n)
		}
	}
	if !sim.World().Submarines[0].Water.Cell(3, 12).IsWall() {
		t.Fatal("ToggleWall should have built a wall")
	}
}
