// Command twisterleds applies a YAML LED layout to a connected Midi
// Fighter Twister, or sweeps the hue wheel across the grid when no
// layout is given.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/mfthaus/twistermidi/twister"
)

var layoutPath = flag.String("layout", "", "path to a YAML slot layout")

func main() {
	flag.Parse()
	defer midi.CloseDriver()

	t, err := twister.Open()
	if err != nil {
		log.Fatalf("error while opening connection to twister: %v", err)
	}
	defer t.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *layoutPath != "" {
		l, err := twister.LoadLayout(*layoutPath)
		if err != nil {
			log.Fatalf("error loading layout: %v", err)
		}
		l.Apply(t)
	} else {
		go sweep(ctx, t)
	}

	if err := t.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("error running twister: ", err)
	}
}

func sweep(ctx context.Context, t *twister.Twister) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i := 0; i < twister.NumEncoders; i++ {
				t.SetHueRGB(i, float64((step+i*8)%128)/128)
				t.SetBrightnessRGB(i, 1)
			}
		}
	}
}
