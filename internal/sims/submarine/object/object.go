package object

import "subsim/internal/sims/submarine/nav"

// Object is one placed object. X and Y anchor its footprint in the
// submarine's grid and never change.
type Object struct {
	Kind    Kind
	X, Y    int
	Powered bool
	State   State
}

// State is the per-kind payload of an object. The set of implementations is
// closed; every switch over it panics on an unknown type.
type State interface {
	state()
}

// DoorState drives Door and VerticalDoor.
type DoorState struct {
	Opening  bool
	Progress uint8
	// Held records that a control signal was present last tick so a steady
	// zero toggles only once.
	Held bool
}

type ReactorState struct{ Active bool }

type LampState struct{}

// GaugeState latches the last logic value seen and echoes it a tick later.
type GaugeState struct {
	Value   int8
	Latched bool
}

// PumpState drives SmallPump, LargePump and Engine.
type PumpState struct {
	Target   int8
	Speed    int32
	Progress uint16
}

type JunctionState struct {
	Enabled  bool
	Progress uint8
}

type NavControllerState struct{ Active bool }

// SonarState carries the navigation target the sonar steers toward.
type SonarState struct {
	Active    bool
	Target    nav.Vec
	HasTarget bool
}

type BatteryState struct{ Charge int }

type BundleState struct{ SubBundle uint8 }

// Partner addresses a connector on another submarine.
type Partner struct {
	Submarine int
	Object    int
}

// DockingState is owned jointly with the docking resolver, which latches and
// releases Connected. Released keeps a just-released connector from latching
// again until it leaves latch range.
type DockingState struct {
	Connected bool
	Released  bool
	Partner   Partner
	Progress  uint8
}

func (*DoorState) state()          {}
func (*ReactorState) state()       {}
func (*LampState) state()          {}
func (*GaugeState) state()         {}
func (*PumpState) state()          {}
func (*JunctionState) state()      {}
func (*NavControllerState) state() {}
func (*SonarState) state()         {}
func (*BatteryState) state()       {}
func (*BundleState) state()        {}
func (*DockingState) state()       {}

// Settings are optional initial values from a template. Fields that do not
// apply to a kind are ignored.
type Settings struct {
	Active    *bool  `json:"active,omitempty" jsonschema:"description=Reactor sonar nav controller and junction box switch"`
	Target    *int8  `json:"target,omitempty" jsonschema:"description=Pump or engine speed set-point"`
	Open      *bool  `json:"open,omitempty" jsonschema:"description=Door starts fully open"`
	Warm      *bool  `json:"warm,omitempty" jsonschema:"description=Junction box starts warmed up"`
	Charge    *int   `json:"charge,omitempty" jsonschema:"minimum=0,maximum=5400"`
	SubBundle *uint8 `json:"sub_bundle,omitempty" jsonschema:"minimum=0,maximum=7"`
}

// New creates an object of kind k anchored at (x, y).
func New(k Kind, x, y int, s Settings) *Object {
	o := &Object{Kind: k, X: x, Y: y}
	switch k {
	case Door, VerticalDoor:
		st := &DoorState{}
		if s.Open != nil && *s.Open {
			st.Opening, st.Progress = true, MaxProgress
		}
		o.State = st
	case Reactor:
		o.State = &ReactorState{Active: boolOr(s.Active, true)}
	case Lamp:
		o.State = &LampState{}
	case Gauge:
		o.State = &GaugeState{}
	case SmallPump, LargePump, Engine:
		st := &PumpState{}
		if s.Target != nil {
			st.Target = *s.Target
		}
		o.State = st
	case JunctionBox:
		st := &JunctionState{Enabled: boolOr(s.Active, true)}
		if st.Enabled && boolOr(s.Warm, false) {
			st.Progress = MaxProgress
		}
		o.State = st
	case NavController:
		o.State = &NavControllerState{Active: boolOr(s.Active, true)}
	case Sonar:
		o.State = &SonarState{Active: boolOr(s.Active, true)}
	case Battery:
		st := &BatteryState{}
		if s.Charge != nil {
			st.Charge = min(max(*s.Charge, 0), BatteryCap)
		}
		o.State = st
	case BundleInput, BundleOutput:
		st := &BundleState{}
		if s.SubBundle != nil {
			st.SubBundle = *s.SubBundle % 8
		}
		o.State = st
	case DockingConnectorTop, DockingConnectorBottom:
		o.State = &DockingState{}
	default:
		panic("object: unknown kind " + k.String())
	}
	return o
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Door returns the door state or nil.
func (o *Object) Door() *DoorState {
	s, _ := o.State.(*DoorState)
	return s
}

// Pump returns the pump or engine state or nil.
func (o *Object) Pump() *PumpState {
	s, _ := o.State.(*PumpState)
	return s
}

// Docking returns the connector state or nil.
func (o *Object) Docking() *DockingState {
	s, _ := o.State.(*DockingState)
	return s
}

// Sonar returns the sonar state or nil.
func (o *Object) Sonar() *SonarState {
	s, _ := o.State.(*SonarState)
	return s
}

// At converts an anchor offset into grid coordinates.
func (o *Object) At(p Point) (int, int) { return o.X + p.X, o.Y + p.Y }

// Contains reports whether the cell (x, y) lies in the object's footprint.
func (o *Object) Contains(x, y int) bool {
	sz := Size(o.Kind)
	return x >= o.X && y >= o.Y && x < o.X+sz.X && y < o.Y+sz.Y
}

// Settings captures the part of the state a template can restore.
func (o *Object) Settings() Settings {
	var s Settings
	switch st := o.State.(type) {
	case *DoorState:
		s.Open = ptrTo(st.Opening && st.Progress == MaxProgress)
	case *ReactorState:
		s.Active = ptrTo(st.Active)
	case *PumpState:
		s.Target = ptrTo(st.Target)
	case *JunctionState:
		s.Active = ptrTo(st.Enabled)
		s.Warm = ptrTo(st.Enabled && st.Progress == MaxProgress)
	case *NavControllerState:
		s.Active = ptrTo(st.Active)
	case *SonarState:
		s.Active = ptrTo(st.Active)
	case *BatteryState:
		s.Charge = ptrTo(st.Charge)
	case *BundleState:
		s.SubBundle = ptrTo(st.SubBundle)
	case *LampState, *GaugeState, *DockingState:
	default:
		panic("object: unknown state")
	}
	return s
}

func ptrTo[T any](v T) *T { return &v }
