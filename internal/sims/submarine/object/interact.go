package object

import "fmt"

// Interact applies a player click. It reports whether anything changed.
// Docking connectors are released by the docking resolver, not here.
func (o *Object) Interact() bool {
	switch st := o.State.(type) {
	case *DoorState:
		st.Opening = !st.Opening
	case *ReactorState:
		st.Active = !st.Active
	case *PumpState:
		st.Target = NextPreset(st.Target)
	case *JunctionState:
		st.Enabled = !st.Enabled
	case *NavControllerState:
		st.Active = !st.Active
	case *SonarState:
		st.Active = !st.Active
	case *BundleState:
		st.SubBundle = (st.SubBundle + 1) % 8
	case *LampState, *GaugeState, *BatteryState, *DockingState:
		return false
	default:
		panic(fmt.Sprintf("object: unknown state %T", o.State))
	}
	return true
}

// NextPreset returns the set-point following v in TargetPresets. Values off
// the sequence restart it.
func NextPreset(v int8) int8 {
	for i, p := range TargetPresets {
		if p == v {
			return TargetPresets[(i+1)%len(TargetPresets)]
		}
	}
	return TargetPresets[0]
}
