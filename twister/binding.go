package twister

import (
	"math"

	"github.com/mfthaus/twistermidi/param"
)

// Bindings wire one encoder to one parameter, in both directions:
// parameter changes push rescaled values to the hardware, hardware
// edits pull rescaled values back into the parameter. Assigning a
// parameter to a slot replaces whatever binding was there before.
//
// A hardware edit writes the parameter, which fires the same change
// listener that pushes to the hardware. Each binding carries an echo
// flag so that round trip never writes the value the device already
// shows back onto the wire. Everything here runs on the tick
// goroutine, so a plain bool is enough.

func (t *Twister) bindFloat(e *encoder, p *param.Float) {
	e.releaseSubs()
	e.setRotaryState(true, false)

	min, max := p.Min(), p.Max()
	e.setRotaryValue(toWire(p.Get(), min, max))

	var echo bool
	e.onRotary = func(msb, lsb byte) {
		v := joinHighRes(msb, lsb)
		// The device now shows v; the repeat-suppression in
		// pushRotary must compare against the wire, not the last
		// push, or a later restore to the old value is dropped.
		e.lastRotary = v
		e.hasLastRotary = true
		echo = true
		p.Set(mapRange(float64(v), 0, MaxEncoderValue, min, max, true))
		echo = false
	}
	e.rotarySub = p.Subscribe(func(v float64) {
		if echo {
			return
		}
		e.pushRotary(toWire(v, min, max))
	})
}

func (t *Twister) bindInt(e *encoder, p *param.Int) {
	e.releaseSubs()
	e.setRotaryState(true, false)

	min, max := float64(p.Min()), float64(p.Max())
	e.setRotaryValue(toWire(float64(p.Get()), min, max))

	var echo bool
	e.onRotary = func(msb, lsb byte) {
		v := joinHighRes(msb, lsb)
		e.lastRotary = v
		e.hasLastRotary = true
		echo = true
		p.Set(int(math.Round(mapRange(float64(v), 0, MaxEncoderValue, min, max, true))))
		echo = false
	}
	e.rotarySub = p.Subscribe(func(v int) {
		if echo {
			return
		}
		e.pushRotary(toWire(float64(v), min, max))
	})
}

func (t *Twister) bindBool(e *encoder, p *param.Bool) {
	e.releaseSubs()
	e.setSwitchState(true, false)

	e.setSwitchValue(boolWire(p.Get()))

	var echo bool
	e.onSwitch = func(v byte) {
		// The device reports the switch as a 7-bit level; the upper
		// half of the range reads as pressed.
		pressed := v > 63
		e.lastSwitch = boolWire(pressed)
		e.hasLastSwitch = true
		echo = true
		p.Set(pressed)
		echo = false
	}
	e.switchSub = p.Subscribe(func(v bool) {
		if echo {
			return
		}
		e.pushSwitch(boolWire(v))
	})
}

// clearBinding disables both slot functions and drops the binding.
// Safe on a slot that was never bound.
func (t *Twister) clearBinding(e *encoder, force bool) {
	e.setRotaryState(false, force)
	e.setSwitchState(false, force)
	e.releaseSubs()
}

// toWire rescales a parameter value onto the 14-bit encoder range.
func toWire(v, min, max float64) uint16 {
	return uint16(math.Round(mapRange(v, min, max, 0, MaxEncoderValue, true)))
}

func boolWire(v bool) uint16 {
	if v {
		return MaxEncoderValue
	}
	return 0
}
