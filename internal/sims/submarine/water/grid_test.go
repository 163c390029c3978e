package water

import (
	"testing"

	"subsim/internal/core"
)

// sealedHull returns a grid whose frame and an inner ring are walls.
func sealedHull(w, h int) *Grid {
	g := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x <= 1 || y <= 1 || x >= w-2 || y >= h-2 {
				g.Cell(x, y).MakeWall(MaterialNormal)
			}
		}
	}
	return g
}

func TestConservationWithoutGravityOrInertia(t *testing.T) {
	g := sealedHull(12, 10)
	g.Cell(4, 4).SetLevel(9000)
	g.Cell(5, 5).SetLevel(3000)
	g.Cell(7, 3).SetLevel(500)

	before := g.TotalWater()
	for i := 0; i < 200; i++ {
		g.Update(false, false)
		if got := g.TotalWater(); got != before {
			t.Fatalf("tick %d: total water changed from %d to %d", i, before, got)
		}
	}
}

func TestConservationWithGravityAndInertia(t *testing.T) {
	g := sealedHull(16, 14)
	rng := core.NewRNG(3)
	for i := 0; i < 40; i++ {
		x := 2 + rng.IntN(12)
		y := 2 + rng.IntN(10)
		g.Cell(x, y).SetLevel(g.Cell(x, y).Level() + uint32(rng.IntN(3*FullLevel)))
	}

	before := g.TotalWater()
	for i := 0; i < 300; i++ {
		g.Update(true, true)
		if got := g.TotalWater(); got != before {
			t.Fatalf("tick %d: total water changed from %d to %d", i, before, got)
		}
	}
}

func TestPressureReliefSpreadsOverfill(t *testing.T) {
	g := sealedHull(9, 9)
	g.Cell(4, 4).SetLevel(FullLevel + 400)

	g.Update(false, false)

	if got := g.Cell(4, 4).Level(); got != FullLevel {
		t.Fatalf("expected center to relieve to %d, got %d", FullLevel, got)
	}
	for _, d := range Directions {
		dx, dy := d.Offset()
		if got := g.Cell(4+dx, 4+dy).Level(); got != 100 {
			t.Fatalf("expected neighbour %v to receive 100, got %d", d, got)
		}
	}
}

func TestWallSealing(t *testing.T) {
	g := sealedHull(10, 10)
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			g.Cell(x, y).SetLevel(2 * FullLevel)
		}
	}
	g.Update(true, true)
	g.Cell(5, 5).MakeWall(MaterialGlass)

	for i := 0; i < 50; i++ {
		c := g.Cell(5, 5)
		vx, vy := c.Velocity()
		if c.Level() != 0 || vx != 0 || vy != 0 {
			t.Fatalf("tick %d: wall holds level=%d velocity=(%d,%d)", i, c.Level(), vx, vy)
		}
		if c.Material() != MaterialGlass {
			t.Fatalf("tick %d: wall material changed to %v", i, c.Material())
		}
		g.Update(true, true)
	}
}

func TestWallReflectionReturnsWater(t *testing.T) {
	g := sealedHull(8, 8)
	// (3,5) rests on the inner floor ring at y=6.
	c := g.Cell(3, 5)
	c.SetLevel(200)
	c.vy = 64

	g.Update(false, true)

	if got := g.Cell(3, 6).Reflected(Down); got != 64 {
		t.Fatalf("expected 64 units in floor reflection buffer, got %d", got)
	}
	if got := g.Cell(3, 5).Level(); got != 136 {
		t.Fatalf("expected 136 units left in source, got %d", got)
	}
	if _, vy := g.Cell(3, 5).Velocity(); vy != 48 {
		t.Fatalf("expected inertia to keep 3/4 of velocity (48), got %d", vy)
	}

	g.Update(false, true)

	// 48 more units fall, the 64 reflected units come back up.
	if got := g.Cell(3, 5).Level(); got != 136-48+64 {
		t.Fatalf("expected reflected water to return, level %d", got)
	}
	if got := g.Cell(3, 6).Reflected(Down); got != 48 {
		t.Fatalf("expected buffer to hold only this tick's 48 units, got %d", got)
	}
	// Bounce momentum counts 1/8: 48*3/4 + (-64/8)/4.
	if _, vy := g.Cell(3, 5).Velocity(); vy != 34 {
		t.Fatalf("expected bounce to damp velocity to 34, got %d", vy)
	}
}

func TestGravityAcceleratesDownward(t *testing.T) {
	g := sealedHull(8, 8)
	g.Cell(3, 3).SetLevel(FullLevel)

	g.Update(true, true)

	_, vy := g.Cell(3, 3).Velocity()
	if vy != GravityStep {
		t.Fatalf("expected gravity step %d, got %d", GravityStep, vy)
	}
	_, vy = g.Cell(3, 5).Velocity()
	if vy != 0 {
		t.Fatalf("cell above a wall must not gain gravity velocity, got %d", vy)
	}
}

func TestSeaFloodsOpenInterior(t *testing.T) {
	g := sealedHull(8, 8)
	g.Cell(1, 4).MakeSea()
	g.Cell(0, 4).MakeSea()

	g.Update(false, false)

	if got := g.Cell(2, 4).Level(); got != (SeaLevel-FullLevel)/4 {
		t.Fatalf("expected sea inflow %d, got %d", (SeaLevel-FullLevel)/4, got)
	}
	if got := g.Cell(1, 4).Level(); got != SeaLevel {
		t.Fatalf("sea must stay at reservoir level, got %d", got)
	}
}

func TestBorderCellsStayStatic(t *testing.T) {
	g := New(6, 6)
	g.Cell(0, 3).SetLevel(700)
	g.Cell(2, 3).SetLevel(3 * FullLevel)

	for i := 0; i < 10; i++ {
		g.Update(true, true)
	}
	if got := g.Cell(0, 3).Level(); got != 700 {
		t.Fatalf("frame cell level changed to %d", got)
	}
}

func TestAmountHelpers(t *testing.T) {
	g := New(3, 3)
	c := g.Cell(1, 1)
	c.SetLevel(FullLevel / 2)
	if got := c.AmountFilled(); got != 0.5 {
		t.Fatalf("expected half filled, got %f", got)
	}
	if got := c.AmountOverfilled(); got != 0 {
		t.Fatalf("expected no overfill, got %f", got)
	}
	c.SetLevel(FullLevel + MaxOverfill*2)
	if got := c.AmountOverfilled(); got != 1 {
		t.Fatalf("expected overfill clamp to 1, got %f", got)
	}
}

func TestTotals(t *testing.T) {
	g := sealedHull(6, 5)
	if got := g.TotalWalls(); got != 6*5-2*1 {
		t.Fatalf("expected %d walls, got %d", 6*5-2, got)
	}
	if got := g.TotalInside(); got != 2 {
		t.Fatalf("expected 2 inside cells, got %d", got)
	}
	g.Cell(2, 2).Fill()
	g.ClearWater()
	if got := g.TotalWater(); got != 0 {
		t.Fatalf("expected ClearWater to drain, got %d", got)
	}
}
