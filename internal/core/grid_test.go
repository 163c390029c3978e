package core

import (
	"testing"
	"time"
)

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid[uint8](7, 5)
	g.Set(3, 4, 9)
	idx := g.Index(3, 4)
	if idx != 4*7+3 {
		t.Fatalf("expected row-major index %d, got %d", 4*7+3, idx)
	}
	x, y := g.Coords(idx)
	if x != 3 || y != 4 {
		t.Fatalf("expected coords (3,4), got (%d,%d)", x, y)
	}
	if g.Cells()[idx] != 9 {
		t.Fatalf("expected stored value 9, got %d", g.Cells()[idx])
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid[int](3, 3)
	defer func() {
		if recover() == nil {
			t.Fatal("expected out-of-range access to panic")
		}
	}()
	g.At(3, 0)
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid[int](2, 2)
	g.Set(1, 1, 5)
	c := g.Clone()
	g.Set(1, 1, 6)
	if c.Get(1, 1) != 5 {
		t.Fatalf("clone changed with source: %d", c.Get(1, 1))
	}
}

func TestFixedStepClampsBacklog(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	fs := NewFixedStep(60)
	fs.now = func() time.Time { return now }
	fs.accumulator = 0

	fs.ShouldStep()
	now = now.Add(10 * time.Second)

	steps := 0
	for fs.ShouldStep() {
		steps++
		if steps > 1000 {
			t.Fatal("backlog not clamped")
		}
	}
	maxSteps := int(DefaultMaxLag / fs.Step())
	if steps > maxSteps {
		t.Fatalf("expected at most %d catch-up ticks, got %d", maxSteps, steps)
	}
	if steps == 0 {
		t.Fatal("expected some catch-up ticks")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatal("same seed produced different sequences")
		}
	}
}
