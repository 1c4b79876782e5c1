package twister

// The Twister speaks plain 3-byte MIDI Control Change frames on four
// channels. The channel selects the message class, the controller byte
// addresses an encoder slot (or the high-resolution prefix), and the
// value byte carries the payload.

const (
	MIDIStatusControlChange = 0xb0
	MIDIStatusCodeMask      = 0xf0
	MIDIChannelMask         = 0x0f

	// Channels, as the low status nibble.
	channelRotary    = 0x0 // rotary values in and out
	channelSwitch    = 0x1 // switch values in and out, LED hue out
	channelAnimation = 0x2 // LED brightness and animation out
	channelMode      = 0x4 // per-slot phenotype out

	// The controller byte announcing the low 7 bits of the next
	// rotary value on channel 0.
	ccHighResPrefix = 0x58
)

// CCMessage is one decoded control-change frame.
type CCMessage struct {
	Status     byte
	Controller byte
	Value      byte
}

// Command is the high status nibble, 0xB for all Twister traffic.
func (m CCMessage) Command() byte { return m.Status >> 4 }

// Channel is the low status nibble.
func (m CCMessage) Channel() byte { return m.Status & MIDIChannelMask }

// decodeCC decodes a raw frame. Only 3-byte frames are valid; anything
// else (SysEx, clock, truncated frames) reports false and is dropped.
func decodeCC(raw []byte) (CCMessage, bool) {
	if len(raw) != 3 {
		return CCMessage{}, false
	}
	return CCMessage{Status: raw[0], Controller: raw[1], Value: raw[2]}, true
}

func rotaryFrame(slot, msb byte) []byte {
	return []byte{MIDIStatusControlChange | channelRotary, slot, msb}
}

func rotaryPrefixFrame(lsb byte) []byte {
	return []byte{MIDIStatusControlChange | channelRotary, ccHighResPrefix, lsb}
}

func switchFrame(slot, v byte) []byte {
	return []byte{MIDIStatusControlChange | channelSwitch, slot, v}
}

func hueFrame(slot, code byte) []byte {
	return []byte{MIDIStatusControlChange | channelSwitch, slot, code}
}

func animationFrame(slot, code byte) []byte {
	return []byte{MIDIStatusControlChange | channelAnimation, slot, code}
}

func modeFrame(slot byte, p Phenotype) []byte {
	return []byte{MIDIStatusControlChange | channelMode, slot, byte(p)}
}

// splitHighRes splits a 14-bit rotary value into its two 7-bit halves.
func splitHighRes(v uint16) (msb, lsb byte) {
	return byte((v >> 7) & 0x7f), byte(v & 0x7f)
}

// joinHighRes reassembles a 14-bit value from a rotary CC value byte
// and the most recent high-resolution prefix byte.
func joinHighRes(msb, lsb byte) uint16 {
	return uint16(msb&0x7f)<<7 | uint16(lsb&0x7f)
}
