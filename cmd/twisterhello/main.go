// Command twisterhello binds a few live parameters to the first
// encoders of a connected Midi Fighter Twister and prints every change
// for a while.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/mfthaus/twistermidi/param"
	"github.com/mfthaus/twistermidi/twister"
)

const duration = 30 * time.Second

func main() {
	defer midi.CloseDriver()

	t, err := twister.Open()
	if err != nil {
		log.Fatalf("error while opening connection to twister: %v", err)
	}
	defer t.Close()

	gain := param.NewFloat("gain", 0.5, 0, 1)
	cutoff := param.NewInt("cutoff", 64, 0, 127)
	mute := param.NewBool("mute", false)

	t.SetParams(gain, cutoff, mute)

	subs := []*param.Subscription{
		gain.Subscribe(func(v float64) { log.Printf("gain   = %.3f", v) }),
		cutoff.Subscribe(func(v int) { log.Printf("cutoff = %d", v) }),
		mute.Subscribe(func(v bool) { log.Printf("mute   = %v", v) }),
	}
	defer func() {
		for _, s := range subs {
			s.Release()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	if err := t.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Fatal("error running twister: ", err)
	}
}
