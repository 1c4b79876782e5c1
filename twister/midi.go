package twister

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// discover finds the connected Twister's input and output ports.
func discover() (drivers.In, drivers.Out, error) {
	in, err := midi.FindInPort(DeviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoTwister, err)
	}

	out, err := midi.FindOutPort(DeviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoTwister, err)
	}

	return in, out, nil
}
