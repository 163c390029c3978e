package rock

import (
	"image"
	"image/color"
	"testing"
)

func bitmap(rows ...string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			v := uint8(255)
			if ch == '#' {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestPatternLookup(t *testing.T) {
	cases := map[uint8]Type{
		0b0000: Empty,
		0b1111: WallFilled,
		0b0111: WallLowerRight,
		0b1011: WallLowerLeft,
		0b1101: WallUpperRight,
		0b1110: WallUpperLeft,
		0b1001: WallFilled,
		0b0100: WallFilled,
	}
	for p, want := range cases {
		if got := TypeForPattern(p); got != want {
			t.Fatalf("pattern %04b: expected %v, got %v", p, want, got)
		}
	}
}

func TestFromImage(t *testing.T) {
	img := bitmap(
		"..####",
		"..#.##",
		"#.....",
		"##....",
	)
	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", g.Width(), g.Height())
	}
	want := [][]Type{
		{Empty, WallUpperLeft, WallFilled},
		{WallLowerLeft, Empty, Empty},
	}
	for y := range want {
		for x := range want[y] {
			if got := g.Cell(x, y); got != want[y][x] {
				t.Fatalf("(%d,%d): expected %v, got %v", x, y, want[y][x], got)
			}
		}
	}
}

func TestFromImageRejectsOddSize(t *testing.T) {
	if _, err := FromImage(bitmap("...", "...")); err == nil {
		t.Fatal("expected odd width to be rejected")
	}
}

func TestEdgeCache(t *testing.T) {
	g := New(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.cells.Set(x, y, WallFilled)
		}
	}
	g.Set(2, 2, Empty)

	edges := g.EdgeCells()
	if len(edges) != 4 {
		t.Fatalf("expected 4 edge cells around the hole, got %v", edges)
	}
	if !g.IsEdge(2, 1) || g.IsEdge(0, 0) || g.IsEdge(2, 2) {
		t.Fatal("edge flags do not match the hole")
	}
}

func TestSolidAtDiagonals(t *testing.T) {
	g := New(2, 1)
	g.Set(0, 0, WallLowerLeft)
	g.Set(1, 0, WallUpperRight)

	quarter := CellUnits / 4
	if !g.SolidAt(quarter, 3*quarter) {
		t.Fatal("lower-left triangle should be solid below the diagonal")
	}
	if g.SolidAt(3*quarter, quarter) {
		t.Fatal("lower-left triangle should be open above the diagonal")
	}
	if !g.SolidAt(CellUnits+3*quarter, quarter) {
		t.Fatal("upper-right triangle should be solid above the diagonal")
	}
	if !g.SolidAt(-1, 0) || !g.SolidAt(0, CellUnits) {
		t.Fatal("outside the world must count as solid")
	}
}

func TestLineVisitsEndpoints(t *testing.T) {
	var pts [][2]int
	Line(0, 0, 5, 2, func(x, y int) bool {
		pts = append(pts, [2]int{x, y})
		return true
	})
	if pts[0] != [2]int{0, 0} || pts[len(pts)-1] != [2]int{5, 2} {
		t.Fatalf("line must start and end at the endpoints, got %v", pts)
	}
	if len(pts) != 6 {
		t.Fatalf("expected one cell per major-axis step, got %v", pts)
	}
	for i := 1; i < len(pts); i++ {
		dx := pts[i][0] - pts[i-1][0]
		dy := pts[i][1] - pts[i-1][1]
		if dx < 0 || dx > 1 || dy < 0 || dy > 1 {
			t.Fatalf("line jumped between %v and %v", pts[i-1], pts[i])
		}
	}

	n := 0
	Line(0, 0, 10, 0, func(x, y int) bool {
		n++
		return x < 3
	})
	if n != 4 {
		t.Fatalf("expected walk to stop after x=3, visited %d", n)
	}
}

func TestFloorDiv(t *testing.T) {
	if FloorDiv(-1, CellUnits) != -1 || FloorDiv(CellUnits, CellUnits) != 1 || FloorDiv(0, 7) != 0 {
		t.Fatal("floor division must round toward negative infinity")
	}
}
