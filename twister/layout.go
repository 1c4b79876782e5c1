package twister

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a declarative LED setup for the sixteen slots, loaded from
// a YAML file. Unset fields leave the corresponding hardware state
// untouched.
type Layout struct {
	Slots []SlotLayout `yaml:"slots"`
}

// SlotLayout configures one slot's LEDs. Hue and brightness are
// normalized [0,1]; animations use the names accepted by
// ParseAnimation.
type SlotLayout struct {
	Hue              *float64 `yaml:"hue"`
	BrightnessRGB    *float64 `yaml:"brightness_rgb"`
	BrightnessRotary *float64 `yaml:"brightness_rotary"`
	AnimationRGB     string   `yaml:"animation_rgb"`
	AnimationRotary  string   `yaml:"animation_rotary"`
	Rate             uint8    `yaml:"rate"`
}

// LoadLayout reads and validates a layout file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open layout file: %w", err)
	}

	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("could not parse layout file: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if len(l.Slots) > NumEncoders {
		return fmt.Errorf("twister: layout has %d slots, device has %d", len(l.Slots), NumEncoders)
	}
	for i, s := range l.Slots {
		if _, err := ParseAnimation(s.AnimationRGB); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		a, err := ParseAnimation(s.AnimationRotary)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if a == AnimationRainbow {
			return fmt.Errorf("slot %d: rainbow is not available on the rotary indicator", i)
		}
		if s.Rate >= NumAnimationRates {
			return fmt.Errorf("slot %d: animation rate %d out of range", i, s.Rate)
		}
	}
	return nil
}

// Apply writes the layout to the device through the per-slot LED API.
func (l *Layout) Apply(t *Twister) {
	for i, s := range l.Slots {
		if s.Hue != nil {
			t.SetHueRGB(i, *s.Hue)
		}
		if s.BrightnessRGB != nil {
			t.SetBrightnessRGB(i, *s.BrightnessRGB)
		}
		if s.BrightnessRotary != nil {
			t.SetBrightnessRotary(i, *s.BrightnessRotary)
		}
		if s.AnimationRGB != "" {
			a, _ := ParseAnimation(s.AnimationRGB)
			t.SetAnimationRGB(i, a, s.Rate)
		}
		if s.AnimationRotary != "" {
			a, _ := ParseAnimation(s.AnimationRotary)
			t.SetAnimationRotary(i, a, s.Rate)
		}
	}
}
