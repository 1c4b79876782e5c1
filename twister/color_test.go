package twister

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestAnimationCodes(t *testing.T) {
	for _, tc := range []struct {
		anim Animation
		rate uint8
		rgb  byte
	}{
		{AnimationNone, 0, 0},
		{AnimationStrobe, 0, 1},
		{AnimationStrobe, 3, 4},
		{AnimationStrobe, 7, 8},
		{AnimationPulse, 0, 9},
		{AnimationPulse, 7, 16},
		{AnimationRainbow, 0, 127},
	} {
		if got := tc.anim.rgbCode(tc.rate); got != tc.rgb {
			t.Errorf("%v rate %d: rgb code %d, want %d", tc.anim, tc.rate, got, tc.rgb)
		}
	}

	for _, tc := range []struct {
		anim Animation
		rate uint8
		code byte
	}{
		{AnimationNone, 0, 48},
		{AnimationStrobe, 3, 52},
		{AnimationPulse, 0, 57},
		{AnimationPulse, 7, 64},
	} {
		got, ok := tc.anim.rotaryCode(tc.rate)
		if !ok || got != tc.code {
			t.Errorf("%v rate %d: rotary code %d ok=%v, want %d", tc.anim, tc.rate, got, ok, tc.code)
		}
	}

	if _, ok := AnimationRainbow.rotaryCode(0); ok {
		t.Error("rainbow must not encode for the rotary indicator")
	}
}

func TestParseAnimation(t *testing.T) {
	for s, want := range map[string]Animation{
		"":        AnimationNone,
		"none":    AnimationNone,
		"Strobe":  AnimationStrobe,
		" pulse ": AnimationPulse,
		"RAINBOW": AnimationRainbow,
	} {
		got, err := ParseAnimation(s)
		if err != nil || got != want {
			t.Errorf("ParseAnimation(%q) = %v, %v", s, got, err)
		}
	}

	if _, err := ParseAnimation("sparkle"); err == nil {
		t.Error("unknown animation accepted")
	}
}

func TestHueOf(t *testing.T) {
	for _, tc := range []struct {
		c    colorful.Color
		want float64
	}{
		{colorful.Color{R: 1, G: 0, B: 0}, 0},
		{colorful.Color{R: 0, G: 1, B: 0}, 1.0 / 3},
		{colorful.Color{R: 0, G: 0, B: 1}, 2.0 / 3},
	} {
		if got := hueOf(tc.c); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("hueOf(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestMapRange(t *testing.T) {
	if got := mapRange(0.5, 0, 1, 0, 16383, true); got != 8191.5 {
		t.Errorf("midpoint: %v", got)
	}
	if got := mapRange(2, 0, 1, 1, 126, true); got != 126 {
		t.Errorf("clamp high: %v", got)
	}
	if got := mapRange(-1, 0, 1, 1, 126, true); got != 1 {
		t.Errorf("clamp low: %v", got)
	}
	if got := mapRange(2, 0, 1, 1, 126, false); got != 251 {
		t.Errorf("unclamped: %v", got)
	}
	// A degenerate input range must not divide by zero.
	if got := mapRange(5, 3, 3, 0, 10, true); got != 0 {
		t.Errorf("degenerate: %v", got)
	}
}
