package object

import (
	"fmt"

	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/water"
	"subsim/internal/sims/submarine/wire"
)

// Env is the part of a submarine an object may read and write during its
// update.
type Env struct {
	Water *water.Grid
	Wires *wire.Grid
	Nav   *nav.Navigation
}

// Fits reports whether the footprint of kind k anchored at (x, y) lies
// inside a w×h grid.
func Fits(k Kind, x, y, w, h int) bool {
	if !k.Valid() {
		return false
	}
	sz := Size(k)
	return x >= 0 && y >= 0 && x+sz.X <= w && y+sz.Y <= h
}

// Update runs one tick of the object's behaviour. It reports whether the
// water grid's walls changed.
func (o *Object) Update(env Env) bool {
	switch st := o.State.(type) {
	case *DoorState:
		o.updateDoor(st, env)
		return o.carveDoor(st, env.Water)
	case *ReactorState:
		o.Powered = st.Active
		if st.Active {
			sendPower(env.Wires, o, ReactorOutput, ReactorPower)
		}
	case *LampState:
		p, ok := receivePower(env.Wires, o, LampInput)
		o.Powered = ok && p >= LampThreshold
	case *GaugeState:
		if st.Latched {
			sendLogic(env.Wires, o, GaugeOutput, st.Value)
		}
		v, ok := receiveLogic(env.Wires, o, GaugeInput)
		if ok {
			st.Value, st.Latched = v, true
		}
		o.Powered = ok
	case *PumpState:
		o.updatePump(st, env)
	case *JunctionState:
		o.updateJunction(st, env.Wires)
	case *NavControllerState:
		p, _ := receivePower(env.Wires, o, NavPower)
		o.Powered = st.Active && p >= NavControllerThreshold
		if o.Powered {
			s := nav.ComputeNavigation(*env.Nav)
			sendLogic(env.Wires, o, NavEngineOut, s.Engine)
			sendLogic(env.Wires, o, NavPumpOut, s.Pump)
		}
	case *SonarState:
		p, _ := receivePower(env.Wires, o, SonarPower)
		o.Powered = p >= SonarThreshold
		if o.Powered && st.Active && st.HasTarget {
			env.Nav.Target = st.Target
		}
	case *BatteryState:
		if p, ok := receivePower(env.Wires, o, BatteryInput); ok && p >= BatteryMinimum {
			st.Charge = min(st.Charge+BatteryCharge, BatteryCap)
		}
		if st.Charge > 0 {
			st.Charge--
			sendPower(env.Wires, o, BatteryOutput, BatteryPower)
		}
		o.Powered = st.Charge > 0
	case *BundleState:
		o.updateBundle(st, env.Wires)
	case *DockingState:
		o.Powered = st.Connected
		if st.Connected {
			st.Progress = min(st.Progress+1, MaxProgress)
		} else if st.Progress > 0 {
			st.Progress--
		}
		return o.carveConnector(st, env.Water)
	default:
		panic(fmt.Sprintf("object: unknown state %T", o.State))
	}
	return false
}

func receivePower(g *wire.Grid, o *Object, p Point) (uint8, bool) {
	x, y := o.At(p)
	return g.ReceivePower(x, y)
}

func receiveLogic(g *wire.Grid, o *Object, p Point) (int8, bool) {
	x, y := o.At(p)
	return g.ReceiveLogic(x, y)
}

func sendPower(g *wire.Grid, o *Object, p Point, v uint8) {
	x, y := o.At(p)
	g.SendPower(x, y, v)
}

func sendLogic(g *wire.Grid, o *Object, p Point, v int8) {
	x, y := o.At(p)
	g.SendLogic(x, y, v)
}

func (o *Object) updateDoor(st *DoorState, env Env) {
	control := DoorControl
	if o.Kind == VerticalDoor {
		control = VerticalDoorControl
	}
	v, ok := receiveLogic(env.Wires, o, control)
	o.Powered = ok
	if ok {
		switch {
		case v > 0:
			st.Opening = true
		case v < 0:
			st.Opening = false
		case !st.Held:
			st.Opening = !st.Opening
		}
		if st.Opening && st.Progress < MaxProgress {
			st.Progress++
		} else if !st.Opening && st.Progress > 0 {
			st.Progress--
		}
	}
	st.Held = ok
}

func (o *Object) updatePump(st *PumpState, env Env) {
	var logic, power Point
	var threshold uint8
	switch o.Kind {
	case SmallPump:
		logic, power, threshold = SmallPumpLogic, SmallPumpPower, SmallPumpThreshold
	case LargePump:
		logic, power, threshold = LargePumpLogic, LargePumpPower, LargePumpThreshold
	case Engine:
		logic, power, threshold = EngineLogic, EnginePower, EngineThreshold
	default:
		panic("object: pump state on " + o.Kind.String())
	}

	target := st.Target
	if v, ok := receiveLogic(env.Wires, o, logic); ok {
		target = v
	}
	p, _ := receivePower(env.Wires, o, power)
	o.Powered = p >= threshold
	if !o.Powered {
		target = 0
	}
	st.Speed = (st.Speed*9 + int32(target)) / 10
	st.Progress = uint16(int32(st.Progress) + st.Speed/4)

	switch o.Kind {
	case SmallPump:
		for _, c := range SmallPumpCells {
			pumpCell(env.Water, o, c, st.Speed/8)
		}
	case LargePump:
		for _, c := range LargePumpCells {
			pumpCell(env.Water, o, c, st.Speed/4)
		}
	case Engine:
		env.Nav.Acceleration.X += st.Speed >> 5
	}
}

func pumpCell(g *water.Grid, o *Object, p Point, delta int32) {
	c := g.Cell(o.At(p))
	if delta > 0 {
		c.AddLevel(uint32(delta), PumpMaxLevel)
	} else if delta < 0 {
		c.RemoveLevel(uint32(-delta))
	}
}

func (o *Object) updateJunction(st *JunctionState, g *wire.Grid) {
	if st.Enabled && st.Progress < MaxProgress {
		st.Progress++
	} else if !st.Enabled && st.Progress > 0 {
		st.Progress--
	}
	o.Powered = st.Progress == MaxProgress

	if v, ok := receiveLogic(g, o, JunctionInput); ok {
		for _, out := range JunctionOutputs {
			sendLogic(g, o, out, v)
		}
	}
	if p, ok := receivePower(g, o, JunctionInput); ok && o.Powered {
		for _, out := range JunctionOutputs {
			sendPower(g, o, out, p)
		}
	}
}

func (o *Object) updateBundle(st *BundleState, g *wire.Grid) {
	connector, thin := BundleInputConnector, BundleInputThin
	if o.Kind == BundleOutput {
		connector, thin = BundleOutputConnector, BundleOutputThin
	}
	cx, cy := o.At(connector)
	id, ok := g.ColinearBundle(cx, cy, true)
	o.Powered = ok
	if !ok {
		return
	}
	tx, ty := o.At(thin)

	if o.Kind == BundleInput {
		in := g.BundleInput(id)
		for _, c := range wire.ThinColors {
			v, ok := g.ReceiveColor(tx, ty, c)
			if !ok {
				continue
			}
			s := wire.StoredSignal{}
			if v.Kind == wire.KindLogic {
				s.Logic, s.HasLogic = v.Logic, true
			} else {
				s.Power, s.HasPower = v.Power, true
			}
			in.At(st.SubBundle, c).Merge(s)
		}
		return
	}

	out := g.BundleOutput(id)
	for _, c := range wire.ThinColors {
		s := out.At(st.SubBundle, c)
		switch {
		case s.HasLogic:
			g.SendLogicColor(tx, ty, c, s.Logic)
		case s.HasPower:
			g.SendPowerColor(tx, ty, c, s.Power)
		}
	}
}
