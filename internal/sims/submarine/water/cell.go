package water

// Level constants in fixed-point units; FullLevel is one full cell.
const (
	FullLevel   = 1024
	SeaLevel    = FullLevel + 512
	MaxOverfill = 4096

	GravityStep = 32
	MaxVelocity = 4096
)

// Kind classifies a water cell.
type Kind uint8

const (
	// Inside cells belong to the hull interior and hold water.
	Inside Kind = iota
	// Sea cells are open ocean: an infinite reservoir at SeaLevel.
	Sea
	// Wall cells are solid and never hold water.
	Wall
)

func (k Kind) String() string {
	switch k {
	case Inside:
		return "inside"
	case Sea:
		return "sea"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Material describes how a wall cell is built. Only meaningful for walls.
type Material uint8

const (
	MaterialNormal Material = iota
	MaterialGlass
	// MaterialInvisible seals a docked connector without being drawn.
	MaterialInvisible
)

// Direction is one of the four cardinal directions. Y grows downward.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the cardinal directions in their canonical order.
var Directions = [4]Direction{Up, Right, Down, Left}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Offset returns the unit step for d.
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default:
		return -1, 0
	}
}

// Cell is one submarine-scale water cell. Wall cells always have zero level
// and zero velocity; the mutators below keep that invariant.
type Cell struct {
	level    uint32
	kind     Kind
	material Material
	vx, vy   int32
	reflect  [4]uint32
}

// Level returns the fluid amount in fixed-point units.
func (c *Cell) Level() uint32 { return c.level }

// Kind returns the cell classification.
func (c *Cell) Kind() Kind { return c.kind }

// Material returns the wall material.
func (c *Cell) Material() Material { return c.material }

// Velocity returns the flow velocity.
func (c *Cell) Velocity() (int32, int32) { return c.vx, c.vy }

// Reflected returns the water waiting in the reflection buffer that arrived
// moving in direction d.
func (c *Cell) Reflected(d Direction) uint32 { return c.reflect[d] }

func (c *Cell) IsWall() bool   { return c.kind == Wall }
func (c *Cell) IsSea() bool    { return c.kind == Sea }
func (c *Cell) IsInside() bool { return c.kind == Inside }

// MakeWall turns the cell into a wall, discarding any water it held.
func (c *Cell) MakeWall(m Material) {
	*c = Cell{kind: Wall, material: m}
}

// ClearWall turns the cell into an empty interior cell.
func (c *Cell) ClearWall() {
	*c = Cell{kind: Inside}
}

// MakeSea turns the cell into open ocean.
func (c *Cell) MakeSea() {
	*c = Cell{kind: Sea, level: SeaLevel}
}

// MakeInside turns a wall or sea cell into an empty interior cell. Interior
// cells are left untouched.
func (c *Cell) MakeInside() bool {
	if c.kind == Inside {
		return false
	}
	*c = Cell{kind: Inside}
	return true
}

// SetLevel stores a level on an interior cell. Walls and sea ignore it.
func (c *Cell) SetLevel(level uint32) {
	if c.kind != Inside {
		return
	}
	c.level = level
}

// Fill sets an interior cell to exactly one full cell of water.
func (c *Cell) Fill() { c.SetLevel(FullLevel) }

// Empty removes all water and motion from an interior cell.
func (c *Cell) Empty() {
	if c.kind != Inside {
		return
	}
	c.level = 0
	c.vx, c.vy = 0, 0
}

// AddLevel adds water, saturating at limit. Returns the amount added.
func (c *Cell) AddLevel(amount, limit uint32) uint32 {
	if c.kind != Inside || c.level >= limit {
		return 0
	}
	if amount > limit-c.level {
		amount = limit - c.level
	}
	c.level += amount
	return amount
}

// RemoveLevel removes up to amount of water. Returns the amount removed.
func (c *Cell) RemoveLevel(amount uint32) uint32 {
	if c.kind != Inside {
		return 0
	}
	if amount > c.level {
		amount = c.level
	}
	c.level -= amount
	return amount
}

// AmountFilled reports the visible fill fraction in [0,1].
func (c *Cell) AmountFilled() float32 {
	return float32(min(c.level, FullLevel)) / FullLevel
}

// AmountOverfilled reports how far past full the cell is, in [0,1].
func (c *Cell) AmountOverfilled() float32 {
	if c.level <= FullLevel {
		return 0
	}
	return float32(min(c.level-FullLevel, MaxOverfill)) / MaxOverfill
}
