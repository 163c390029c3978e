package object

// Point is a cell offset from an object's anchor.
type Point struct{ X, Y int }

// Footprints, in cells.
var sizes = [numKinds]Point{
	Door:                   {16, 4},
	VerticalDoor:           {4, 16},
	Reactor:                {6, 6},
	Lamp:                   {2, 2},
	Gauge:                  {3, 3},
	SmallPump:              {4, 3},
	LargePump:              {6, 4},
	JunctionBox:            {5, 5},
	NavController:          {4, 4},
	Sonar:                  {4, 4},
	Engine:                 {6, 4},
	Battery:                {3, 4},
	BundleInput:            {3, 3},
	BundleOutput:           {3, 3},
	DockingConnectorTop:    {6, 5},
	DockingConnectorBottom: {6, 5},
}

// Size returns the footprint of kind k.
func Size(k Kind) Point {
	if !k.Valid() {
		panic("object: size of unknown kind")
	}
	return sizes[k]
}

// Wire connection points.
var (
	DoorControl         = Point{0, 1}
	VerticalDoorControl = Point{1, 0}

	ReactorOutput = Point{5, 3}
	LampInput     = Point{0, 0}

	GaugeInput  = Point{0, 1}
	GaugeOutput = Point{2, 1}

	SmallPumpLogic = Point{0, 0}
	SmallPumpPower = Point{3, 0}
	LargePumpLogic = Point{0, 0}
	LargePumpPower = Point{5, 0}
	EngineLogic    = Point{0, 1}
	EnginePower    = Point{0, 2}

	JunctionInput   = Point{0, 2}
	JunctionOutputs = [4]Point{{4, 0}, {4, 2}, {4, 4}, {2, 4}}

	NavPower     = Point{0, 0}
	NavEngineOut = Point{3, 1}
	NavPumpOut   = Point{3, 2}

	SonarPower = Point{0, 0}

	BatteryInput  = Point{0, 1}
	BatteryOutput = Point{2, 1}

	// Bundle objects need three horizontal bundle cells starting at the
	// connector offset.
	BundleInputThin       = Point{0, 0}
	BundleInputConnector  = Point{0, 2}
	BundleOutputConnector = Point{0, 0}
	BundleOutputThin      = Point{0, 2}
)

// Water cells moved by pumps.
var (
	SmallPumpCells = [2]Point{{1, 2}, {2, 2}}
	LargePumpCells = [4]Point{{1, 3}, {2, 3}, {3, 3}, {4, 3}}
)

// Door hatches: the rows (or columns) of the door that are carved, and the
// span that opens around the centre.
const (
	DoorHatchFirst = 1
	DoorHatchLast  = 2
	DoorSpanFirst  = 1
	DoorSpanLast   = 14
	DoorCentre     = 8
	DoorBands      = 7
)

// Docking connector passage: four columns, four rows plus the outer
// boundary row.
const (
	PassageFirstColumn = 1
	PassageLastColumn  = 4
	PassageRows        = 4
	// ConnectionOffsetX is the anchor-relative x of the connection point,
	// the middle of the passage.
	ConnectionOffsetX = 3
)

const (
	MaxProgress = 15

	ReactorPower   = 200
	LampThreshold  = 10
	BatteryCap     = 5400
	BatteryCharge  = 2
	BatteryMinimum = 100
	BatteryPower   = 100

	PumpMaxLevel = 1024 * 8
)

// Power needed before a machine runs.
const (
	SmallPumpThreshold     = 20
	LargePumpThreshold     = 50
	EngineThreshold        = 50
	NavControllerThreshold = 20
	SonarThreshold         = 20
)

// TargetPresets is the sequence interaction cycles a speed set-point through.
var TargetPresets = [5]int8{0, 64, 127, -128, -64}
