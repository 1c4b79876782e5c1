// Copyright 2013 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package twister provides interfaces to talk to the DJ TechTools
// Midi Fighter Twister via MIDI in and out, binding its sixteen
// encoders to application parameters.
package twister

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/mfthaus/twistermidi/param"
)

const (
	DeviceName = "Midi Fighter Twister"

	// NumEncoders is the fixed 4x4 encoder grid.
	NumEncoders = 16

	// MaxEncoderValue is the top of the 14-bit high-resolution range.
	MaxEncoderValue = 0x3fff

	ReadBufferDepth = 1024
	PollingPeriod   = 10 * time.Millisecond
)

var ErrNoTwister = fmt.Errorf("twister: no midi fighter twister is connected")

// Twister represents a device with an input and output MIDI stream and
// the sixteen encoder slots behind them. All slot state is read and
// mutated on the goroutine that calls Update; the MIDI receive
// callback only feeds the inbound queue.
type Twister struct {
	inputDriver  drivers.In
	outputDriver drivers.Out
	stopFn       func()
	errorChan    chan error

	queue    *inboundQueue
	encoders [NumEncoders]encoder

	// Low 7 bits of the most recent `B0 58 vv` prefix, consumed by
	// the next rotary frame and reset after every rotary frame.
	pendingLowByte byte
}

// New returns a detached Twister. Every outbound operation is a no-op
// and no inbound frame ever arrives until Connect attaches a device.
func New() *Twister {
	t := &Twister{
		errorChan: make(chan error, 1),
		queue:     newInboundQueue(ReadBufferDepth),
	}
	for i := range t.encoders {
		t.encoders[i].pos = byte(i)
		t.encoders[i].send = t.sendFrame
	}
	return t
}

// Open connects to the Twister and initializes an input and output
// stream to the currently connected device. If there is no device
// connected, it returns an error.
func Open() (*Twister, error) {
	t := New()
	if err := t.Connect(); err != nil {
		return nil, err
	}
	return t, nil
}

// Connect discovers the device and attaches both streams. On failure
// the Twister stays in its detached, degraded mode and Connect may be
// called again later.
func (t *Twister) Connect() error {
	in, out, err := discover()
	if err != nil {
		logrus.Warnf("twister: %v; continuing without a device", err)
		return err
	}
	return t.attach(in, out)
}

// attach opens both streams and starts the listener. Any failure
// closes whatever was already opened, leaving the Twister detached.
func (t *Twister) attach(in drivers.In, out drivers.Out) error {
	if err := in.Open(); err != nil {
		return fmt.Errorf("midi: open input: %w", err)
	}
	if err := out.Open(); err != nil {
		_ = in.Close()
		return fmt.Errorf("midi: open output: %w", err)
	}

	lcfg := drivers.ListenConfig{
		TimeCode:    false,
		ActiveSense: false,
		SysEx:       false,
		OnErr: func(err error) {
			_ = t.handleError(err)
		},
	}

	stop, err := in.Listen(func(msg []byte, milliseconds int32) {
		m, ok := decodeCC(msg)
		if !ok {
			return
		}
		logrus.Debugf("twister: << % X", msg)
		t.queue.Push(m)
	}, lcfg)
	if err != nil {
		_ = in.Close()
		_ = out.Close()
		return fmt.Errorf("midi: listen: %w", err)
	}

	t.inputDriver = in
	t.outputDriver = out
	t.stopFn = stop
	return nil
}

// Run drives Update on a fixed tick, blocking the caller until the
// context is canceled or a stream error surfaces.
func (t *Twister) Run(ctx context.Context) error {
	ticker := time.NewTicker(PollingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-t.errorChan:
			return err
		case <-ticker.C:
			t.Update()
		}
	}
}

// Close detaches the device and closes both streams.
func (t *Twister) Close() error {
	if t.stopFn != nil {
		t.stopFn()
		t.stopFn = nil
	}

	in, out := t.inputDriver, t.outputDriver
	t.inputDriver = nil
	t.outputDriver = nil

	var err1, err2 error
	if in != nil {
		err1 = in.Close()
	}
	if out != nil {
		err2 = out.Close()
	}
	if err1 != nil {
		return t.handleError(fmt.Errorf("midi: close input: %w", err1))
	}
	if err2 != nil {
		return t.handleError(fmt.Errorf("midi: close output: %w", err2))
	}
	return nil
}

// SetParams assigns parameters to encoders in slot order. A nil entry
// (and every slot past the last parameter) is force-disabled;
// parameters of an unknown kind clear their slot.
func (t *Twister) SetParams(params ...param.Param) {
	logrus.Debugf("twister: updating mapping, %d parameters", len(params))

	for i := range t.encoders {
		e := &t.encoders[i]
		if i < len(params) && params[i] != nil {
			t.assignParam(e, params[i])
		} else {
			e.setRotaryState(false, true)
			e.setSwitchState(false, true)
			e.releaseSubs()
		}
	}
}

// SetParam binds one parameter to one slot. Out-of-range slots are
// ignored; a nil parameter clears the slot.
func (t *Twister) SetParam(idx int, p param.Param) {
	if idx < 0 || idx >= NumEncoders {
		return
	}
	if p == nil {
		t.clearBinding(&t.encoders[idx], false)
		return
	}
	t.assignParam(&t.encoders[idx], p)
}

// ClearParam unbinds a slot, leaving it disabled.
func (t *Twister) ClearParam(idx int, force bool) {
	if idx < 0 || idx >= NumEncoders {
		return
	}
	t.clearBinding(&t.encoders[idx], force)
}

// Clear force-unbinds all sixteen slots.
func (t *Twister) Clear() {
	for i := range t.encoders {
		t.clearBinding(&t.encoders[i], true)
	}
}

func (t *Twister) assignParam(e *encoder, p param.Param) {
	switch p := p.(type) {
	case *param.Float:
		t.bindFloat(e, p)
	case *param.Int:
		t.bindInt(e, p)
	case *param.Bool:
		t.bindBool(e, p)
	default:
		// A parameter kind the hardware cannot express.
		t.clearBinding(e, false)
	}
}

// SetHueRGB sets a slot's RGB ring to a normalized hue.
func (t *Twister) SetHueRGB(idx int, hue float64) {
	if idx < 0 || idx >= NumEncoders {
		return
	}
	t.encoders[idx].setHue(hue)
}

// SetColorRGB sets a slot's RGB ring to the hue of an arbitrary color.
func (t *Twister) SetColorRGB(idx int, c colorful.Color) {
	t.SetHueRGB(idx, hueOf(c))
}

// SetBrightnessRGB sets a slot's RGB ring brightness, normalized.
func (t *Twister) SetBrightnessRGB(idx int, bri float64) {
	if idx < 0 || idx >= NumEncoders {
		return
	}
	t.encoders[idx].setBrightnessRGB(bri)
}

// SetBrightnessRotary sets a slot's rotary indicator brightness,
// normalized.
func (t *Twister) SetBrightnessRotary(idx int, bri float64) {
	if idx < 0 || idx >= NumEncoders {
		return
	}
	t.encoders[idx].setBrightnessRotary(bri)
}

// SetAnimationRGB runs an animation on a slot's RGB ring. The rate
// must be below NumAnimationRates.
func (t *Twister) SetAnimationRGB(idx int, anim Animation, rate uint8) {
	if idx < 0 || idx >= NumEncoders || rate >= NumAnimationRates {
		return
	}
	t.encoders[idx].setAnimation(anim.rgbCode(rate))
}

// SetAnimationRotary runs an animation on a slot's rotary indicator.
// Rainbow is not available on the rotary indicator and is ignored.
func (t *Twister) SetAnimationRotary(idx int, anim Animation, rate uint8) {
	if idx < 0 || idx >= NumEncoders || rate >= NumAnimationRates {
		return
	}
	code, ok := anim.rotaryCode(rate)
	if !ok {
		return
	}
	t.encoders[idx].setAnimation(code)
}

// Update drains the inbound queue completely, routing each frame to
// the owning encoder's binding. Call once per application cycle, from
// one goroutine.
func (t *Twister) Update() {
	for {
		m, ok := t.queue.TryPop()
		if !ok {
			return
		}
		t.route(m)
	}
}

func (t *Twister) route(m CCMessage) {
	if m.Command() != 0xb {
		return
	}

	switch m.Channel() {
	case channelRotary:
		if m.Controller == ccHighResPrefix {
			t.pendingLowByte = m.Value & 0x7f
			return
		}

		if slot := int(m.Controller); slot < NumEncoders {
			e := &t.encoders[slot]
			if e.rotaryEnabled && e.onRotary != nil {
				e.onRotary(m.Value, t.pendingLowByte)
			}
		}
		// The prefix only ever applies to the next rotary frame;
		// never let it leak into a later one.
		t.pendingLowByte = 0

	case channelSwitch:
		if slot := int(m.Controller); slot < NumEncoders {
			e := &t.encoders[slot]
			if e.switchEnabled && e.onSwitch != nil {
				e.onSwitch(m.Value)
			}
		}
	}
}

func (t *Twister) sendFrame(msg []byte) error {
	if t.outputDriver == nil {
		return nil
	}
	logrus.Debugf("twister: >> % X", msg)
	if err := t.outputDriver.Send(msg); err != nil {
		return t.handleError(fmt.Errorf("midi: send: %w", err))
	}
	return nil
}

func (t *Twister) handleError(err error) error {
	if err == nil {
		return err
	}
	select {
	case t.errorChan <- err:
	default:
	}
	return err
}
