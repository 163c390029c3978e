package submarine

import (
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/wire"
)

// Command is one queued input for the next tick. The set of commands is
// closed.
type Command interface {
	command()
}

// Interact is a player click on an object.
type Interact struct {
	Submarine int
	Object    int
}

// Cell edits one cell of a submarine.
type Cell struct {
	Submarine int
	X, Y      int
	Edit      CellEdit
}

// CellEdit is the payload of a Cell command.
type CellEdit interface {
	cellEdit()
}

type EditWires struct {
	Add   bool
	Color wire.Color
}

type EditWalls struct{ Add bool }

// EditWater fills the cell with one full cell of water, or empties it.
type EditWater struct{ Add bool }

// AddObject anchors a new object at the cell.
type AddObject struct {
	Kind     object.Kind
	Settings object.Settings
}

type ClearWater struct{ Submarine int }

type ChangeUpdateSettings struct{ Settings UpdateSettings }

// SetSonarTarget points a sonar's steering target at a rock cell.
type SetSonarTarget struct {
	Submarine    int
	Object       int
	RockX, RockY int
}

// CreateSubmarine adds a submarine built from Template with its top-left
// corner at the given rock cell.
type CreateSubmarine struct {
	Template     *SubmarineTemplate
	RockX, RockY int
}

func (Interact) command()             {}
func (Cell) command()                 {}
func (ClearWater) command()           {}
func (ChangeUpdateSettings) command() {}
func (SetSonarTarget) command()       {}
func (CreateSubmarine) command()      {}

func (EditWires) cellEdit() {}
func (EditWalls) cellEdit() {}
func (EditWater) cellEdit() {}
func (AddObject) cellEdit() {}
