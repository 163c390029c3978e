// Package nav integrates submarine motion: buoyancy from the hull's water
// totals on the vertical axis and engine thrust on the horizontal one.
package nav

// Units: one submarine cell spans CellUnits position units; one rock cell is
// RockCellUnits.
const (
	CellUnits     = 256
	RockCellUnits = 16 * CellUnits

	MaxSpeed = 2048

	// SpeedDivisor converts speed to position units per tick.
	SpeedDivisor = 64
	DragDivisor  = 128
)

// Vec is an integer 2D vector in position units.
type Vec struct {
	X, Y int32
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Navigation is the motion state of one submarine. Position is the world
// position of the hull's top-left cell.
type Navigation struct {
	Target          Vec
	Position        Vec
	Speed           Vec
	Acceleration    Vec
	DockingOverride Vec
}

// Totals are the hull measurements buoyancy depends on.
type Totals struct {
	Walls  int
	Inside int
	Water  uint64
}

// Buoyancy returns the net lift of a hull; positive floats.
func Buoyancy(t Totals) int64 {
	return -16*int64(t.Walls) + 13*int64(t.Inside) - int64(t.Water)*16/1024
}

// Mass grows with the square of the hull size.
func Mass(t Totals) int64 {
	w := int64(t.Walls)
	return max(1, w*w/(1500*1500))
}

// VerticalAcceleration converts buoyancy into an acceleration. Y grows
// downward, so a floating hull accelerates negatively.
func VerticalAcceleration(t Totals) int32 {
	a := -(Buoyancy(t) * int64(t.Walls)) / 1024 / 100 / 8 / Mass(t)
	return int32(clamp64(a, -MaxSpeed, MaxSpeed))
}

// Update advances one tick of buoyancy physics. Acceleration.X is owned by
// the engines and is read as is.
func (n *Navigation) Update(t Totals) {
	n.Acceleration.Y = VerticalAcceleration(t)
	n.Speed.X = clamp32(n.Speed.X+n.Acceleration.X, -MaxSpeed, MaxSpeed)
	n.Speed.Y = clamp32(n.Speed.Y+n.Acceleration.Y, -MaxSpeed, MaxSpeed)
	n.Speed.X -= n.Speed.X / DragDivisor
	n.Speed.Y -= n.Speed.Y / DragDivisor
}

// Step returns this tick's displacement from speed alone.
func (n *Navigation) Step() Vec {
	return Vec{n.Speed.X / SpeedDivisor, n.Speed.Y / SpeedDivisor}
}

// Signals are the logic values a NavController writes to its engine and pump
// outputs.
type Signals struct {
	Engine int8
	Pump   int8
}

// ComputeNavigation derives control signals that steer toward Target.
func ComputeNavigation(n Navigation) Signals {
	target := func(d int32) int32 { return clamp32(d/4, -MaxSpeed, MaxSpeed) }
	ts := Vec{target(n.Target.X - n.Position.X), target(n.Target.Y - n.Position.Y)}
	ax := clamp32((ts.X-n.Speed.X)/256, -4, 4)
	ay := clamp32((ts.Y-n.Speed.Y)/256, -3, 3)
	return Signals{Engine: signal(ax), Pump: signal(ay)}
}

func signal(acc int32) int8 {
	return int8(clamp32(32*acc, -128, 127))
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
