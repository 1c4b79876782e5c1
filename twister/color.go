package twister

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Animation selects one of the Twister's LED animation programs.
// Strobe and pulse take a rate in [0, NumAnimationRates); rainbow is
// only available on the RGB ring.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationStrobe
	AnimationPulse
	AnimationRainbow

	NumAnimationRates = 8
)

func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationStrobe:
		return "strobe"
	case AnimationPulse:
		return "pulse"
	case AnimationRainbow:
		return "rainbow"
	}
	return fmt.Sprintf("animation(%d)", int(a))
}

// ParseAnimation reads the names used in layout files.
func ParseAnimation(s string) (Animation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AnimationNone, nil
	case "strobe":
		return AnimationStrobe, nil
	case "pulse":
		return AnimationPulse, nil
	case "rainbow":
		return AnimationRainbow, nil
	}
	return AnimationNone, fmt.Errorf("twister: unknown animation %q", s)
}

// rgbCode encodes an animation for the RGB ring on the animation
// channel.
func (a Animation) rgbCode(rate uint8) byte {
	switch a {
	case AnimationNone:
		return 0
	case AnimationStrobe:
		return 1 + rate
	case AnimationPulse:
		return 9 + rate
	default: // rainbow
		return 127
	}
}

// rotaryCode encodes an animation for the rotary indicator. Rainbow
// has no rotary encoding and reports false.
func (a Animation) rotaryCode(rate uint8) (byte, bool) {
	switch a {
	case AnimationNone:
		return 48, true
	case AnimationStrobe:
		return 49 + rate, true
	case AnimationPulse:
		return 57 + rate, true
	default:
		return 0, false
	}
}

// hueOf reduces a color to the normalized hue the device's LED ring
// can show. Saturation and value are discarded; brightness is a
// separate control.
func hueOf(c colorful.Color) float64 {
	h, _, _ := c.Hsv()
	return h / 360
}

// mapRange linearly rescales v from [inMin,inMax] to [outMin,outMax],
// optionally clamping to the output range.
func mapRange(v, inMin, inMax, outMin, outMax float64, clamp bool) float64 {
	if inMax == inMin {
		return outMin
	}
	out := outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
	if clamp {
		if outMax >= outMin {
			if out < outMin {
				out = outMin
			} else if out > outMax {
				out = outMax
			}
		} else {
			if out < outMax {
				out = outMax
			} else if out > outMin {
				out = outMin
			}
		}
	}
	return out
}
