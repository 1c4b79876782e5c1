package twister

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mfthaus/twistermidi/param"
)

// Phenotype is the hardware behavior mode of one encoder slot.
type Phenotype byte

const (
	PhenotypeRotary   Phenotype = 0
	PhenotypeSwitch   Phenotype = 1
	PhenotypeDisabled Phenotype = 2
)

// encoder owns the state of one physical slot. All methods run on the
// tick goroutine; the receive callback never touches an encoder.
type encoder struct {
	// Position on the controller left to right, top to bottom
	// (row-major). Fixed at construction.
	pos byte

	// send writes one frame to the device and is a quiet no-op
	// while no device is attached.
	send func(msg []byte) error

	rotaryEnabled bool
	switchEnabled bool

	// Installed by bindings: hardware edits land here.
	onRotary func(msb, lsb byte)
	onSwitch func(v byte)

	rotarySub *param.Subscription
	switchSub *param.Subscription

	// Last value written to the wire. The parameter-listener push
	// path compares against it so that a hardware edit written back
	// into the parameter does not echo a redundant frame.
	lastRotary    uint16
	hasLastRotary bool
	lastSwitch    uint16
	hasLastSwitch bool
}

// setRotaryState turns the rotary function on or off. Unless forced,
// it's a no-op when the slot is already in the requested state. The
// hardware holds a single phenotype per slot, so enabling the rotary
// also drops the switch flag.
func (e *encoder) setRotaryState(enabled, force bool) {
	if e.rotaryEnabled == enabled && !force {
		return
	}

	if enabled {
		e.switchEnabled = false
		e.setPhenotype(PhenotypeRotary)
	} else if !e.switchEnabled {
		e.setPhenotype(PhenotypeDisabled)
	}

	e.rotaryEnabled = enabled
}

// setSwitchState turns the switch function on or off, symmetric to
// setRotaryState.
func (e *encoder) setSwitchState(enabled, force bool) {
	if e.switchEnabled == enabled && !force {
		return
	}

	if enabled {
		e.rotaryEnabled = false
		e.setPhenotype(PhenotypeSwitch)
	} else if !e.rotaryEnabled {
		e.setPhenotype(PhenotypeDisabled)
	}

	e.switchEnabled = enabled
}

// setRotaryValue sends a 14-bit rotary value. The device reads two
// consecutive frames as one update, low byte first, so the prefix
// frame must precede the MSB frame.
func (e *encoder) setRotaryValue(v uint16) {
	if !e.rotaryEnabled {
		logrus.Errorf("twister: cannot send value to disabled encoder %d", e.pos)
		return
	}

	msb, lsb := splitHighRes(v)
	e.sendFrame(rotaryPrefixFrame(lsb))
	e.sendFrame(rotaryFrame(e.pos, msb))

	e.lastRotary = v
	e.hasLastRotary = true
}

// setSwitchValue sends a switch level. The switch path is plain 7-bit:
// only the high byte of the 14-bit value goes out.
func (e *encoder) setSwitchValue(v uint16) {
	if !e.switchEnabled {
		logrus.Errorf("twister: cannot send value to disabled encoder %d", e.pos)
		return
	}

	msb, _ := splitHighRes(v)
	e.sendFrame(switchFrame(e.pos, msb))

	e.lastSwitch = v
	e.hasLastSwitch = true
}

// pushRotary is the parameter-listener path: it skips the write when
// the wire value would repeat the last one sent.
func (e *encoder) pushRotary(v uint16) {
	if e.hasLastRotary && e.lastRotary == v {
		return
	}
	e.setRotaryValue(v)
}

func (e *encoder) pushSwitch(v uint16) {
	if e.hasLastSwitch && e.lastSwitch == v {
		return
	}
	e.setSwitchValue(v)
}

func (e *encoder) setPhenotype(p Phenotype) {
	e.sendFrame(modeFrame(e.pos, p))
}

// setHue maps a normalized hue onto the device's [1,126] hue wheel.
// No enable state is required; the LED ring is always addressable.
func (e *encoder) setHue(h float64) {
	e.sendFrame(hueFrame(e.pos, byte(math.Round(mapRange(h, 0, 1, 1, 126, true)))))
}

// setBrightnessRGB maps [0,1] onto the RGB segment [17,47] of the
// animation channel.
func (e *encoder) setBrightnessRGB(b float64) {
	e.sendFrame(animationFrame(e.pos, byte(math.Round(mapRange(b, 0, 1, 17, 47, true)))))
}

// setBrightnessRotary maps [0,1] onto the rotary-indicator segment
// [65,95] of the animation channel.
func (e *encoder) setBrightnessRotary(b float64) {
	e.sendFrame(animationFrame(e.pos, byte(math.Round(mapRange(b, 0, 1, 65, 95, true)))))
}

// setAnimation sends a raw animation code; callers map semantic
// animations onto codes with Animation.rgbCode / Animation.rotaryCode.
func (e *encoder) setAnimation(code byte) {
	e.sendFrame(animationFrame(e.pos, code))
}

func (e *encoder) sendFrame(msg []byte) {
	if e.send == nil {
		return
	}
	_ = e.send(msg)
}

// releaseSubs tears down the binding handlers without touching the
// enable state. Assigning a new parameter to a slot goes through here
// first, so the previous binding never keeps a live subscription.
func (e *encoder) releaseSubs() {
	e.rotarySub.Release()
	e.rotarySub = nil
	e.onRotary = nil

	e.switchSub.Release()
	e.switchSub = nil
	e.onSwitch = nil

	e.hasLastRotary = false
	e.hasLastSwitch = false
}
