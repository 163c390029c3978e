package submarine

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"

	"subsim/internal/sims/submarine/nav"
	"subsim/internal/sims/submarine/object"
	"subsim/internal/sims/submarine/water"
	"subsim/internal/sims/submarine/wire"
)

// Checksum hashes every piece of simulation state. Two worlds that were fed
// the same commands from the same start report the same value.
func (w *World) Checksum() uint64 {
	d := digest{h: fnv.New64a()}
	d.u64(w.Tick)
	for _, k := range settingKeys {
		d.bool(*k.field(&w.Settings))
	}
	d.u64(uint64(len(w.Submarines)))
	for _, s := range w.Submarines {
		d.submarine(s)
	}
	return d.h.Sum64()
}

type digest struct {
	h   hash.Hash64
	buf [8]byte
}

func (d *digest) u64(v uint64) {
	binary.LittleEndian.PutUint64(d.buf[:], v)
	d.h.Write(d.buf[:])
}

func (d *digest) i64(v int64) { d.u64(uint64(v)) }

func (d *digest) bool(v bool) {
	if v {
		d.u64(1)
		return
	}
	d.u64(0)
}

func (d *digest) vec(v nav.Vec) {
	d.i64(int64(v.X))
	d.i64(int64(v.Y))
}

func (d *digest) submarine(s *Submarine) {
	d.vec(s.Nav.Position)
	d.vec(s.Nav.Speed)
	d.vec(s.Nav.Acceleration)
	d.vec(s.Nav.Target)

	cells := s.Water.Cells()
	for i := range cells {
		c := &cells[i]
		d.u64(uint64(c.Kind())<<8 | uint64(c.Material()))
		d.u64(uint64(c.Level()))
		vx, vy := c.Velocity()
		d.i64(int64(vx))
		d.i64(int64(vy))
		for _, dir := range water.Directions {
			d.u64(uint64(c.Reflected(dir)))
		}
	}

	for _, c := range s.Wires.Cells() {
		for _, v := range c.Values {
			d.value(v)
		}
	}
	for id := 0; id < wire.MaxBundles; id++ {
		if s.Wires.BundleCells(uint8(id)) == 0 {
			continue
		}
		d.u64(uint64(id))
		d.channels(s.Wires.BundleInput(uint8(id)))
		d.channels(s.Wires.BundleOutput(uint8(id)))
	}

	d.u64(uint64(len(s.Objects)))
	for _, o := range s.Objects {
		d.object(o)
	}

	d.i64(int64(s.Sonar.Pulse))
	d.u64(uint64(len(s.Sonar.Visible)))
	for _, v := range s.Sonar.Visible {
		d.i64(int64(v.X))
		d.i64(int64(v.Y))
	}
}

func (d *digest) value(v wire.Value) {
	d.u64(uint64(v.Kind))
	d.bool(v.Terminal)
	d.u64(uint64(v.Signal))
	d.u64(uint64(v.Power))
	d.i64(int64(v.Logic))
	d.u64(uint64(v.BundleID))
}

func (d *digest) channels(ch *wire.Channels) {
	for sub := range ch {
		for _, s := range ch[sub] {
			d.i64(int64(s.Logic))
			d.bool(s.HasLogic)
			d.u64(uint64(s.Power))
			d.bool(s.HasPower)
		}
	}
}

func (d *digest) object(o *object.Object) {
	d.u64(uint64(o.Kind))
	d.i64(int64(o.X))
	d.i64(int64(o.Y))
	d.bool(o.Powered)
	switch st := o.State.(type) {
	case *object.DoorState:
		d.bool(st.Opening)
		d.u64(uint64(st.Progress))
		d.bool(st.Held)
	case *object.ReactorState:
		d.bool(st.Active)
	case *object.LampState:
	case *object.GaugeState:
		d.i64(int64(st.Value))
		d.bool(st.Latched)
	case *object.PumpState:
		d.i64(int64(st.Target))
		d.i64(int64(st.Speed))
		d.u64(uint64(st.Progress))
	case *object.JunctionState:
		d.bool(st.Enabled)
		d.u64(uint64(st.Progress))
	case *object.NavControllerState:
		d.bool(st.Active)
	case *object.SonarState:
		d.bool(st.Active)
		d.vec(st.Target)
		d.bool(st.HasTarget)
	case *object.BatteryState:
		d.i64(int64(st.Charge))
	case *object.BundleState:
		d.u64(uint64(st.SubBundle))
	case *object.DockingState:
		d.bool(st.Connected)
		d.bool(st.Released)
		d.i64(int64(st.Partner.Submarine))
		d.i64(int64(st.Partner.Object))
		d.u64(uint64(st.Progress))
	default:
		panic(fmt.Sprintf("submarine: unknown object state %T", o.State))
	}
}
