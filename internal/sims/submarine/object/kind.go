// Package object implements the interactive shipboard objects. Each object is
// a small state machine that reads and writes the wire and water grids at
// fixed offsets from its anchor.
package object

import "fmt"

// Kind identifies an object type.
type Kind uint8

const (
	Door Kind = iota
	VerticalDoor
	Reactor
	Lamp
	Gauge
	SmallPump
	LargePump
	JunctionBox
	NavController
	Sonar
	Engine
	Battery
	BundleInput
	BundleOutput
	DockingConnectorTop
	DockingConnectorBottom

	numKinds
)

var kindNames = [numKinds]string{
	Door:                   "door",
	VerticalDoor:           "vertical_door",
	Reactor:                "reactor",
	Lamp:                   "lamp",
	Gauge:                  "gauge",
	SmallPump:              "small_pump",
	LargePump:              "large_pump",
	JunctionBox:            "junction_box",
	NavController:          "nav_controller",
	Sonar:                  "sonar",
	Engine:                 "engine",
	Battery:                "battery",
	BundleInput:            "bundle_input",
	BundleOutput:           "bundle_output",
	DockingConnectorTop:    "docking_connector_top",
	DockingConnectorBottom: "docking_connector_bottom",
}

// Kinds lists every object kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k names a known object kind.
func (k Kind) Valid() bool { return k < numKinds }

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a kind name back into a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("object: unknown kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("object: cannot marshal %s", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsDockingConnector reports whether k is one of the two connector kinds.
func (k Kind) IsDockingConnector() bool {
	return k == DockingConnectorTop || k == DockingConnectorBottom
}
