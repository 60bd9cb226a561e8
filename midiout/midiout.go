// Package midiout drives the trigger lines over MIDI: each channel
// assert becomes a note-on, each deassert a note-off, on a configured
// port. It implements the sequencer's output actuator contract.
package midiout

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"euclid-o-matic/debug"
)

// Out sends channel triggers and the clock-out line as MIDI notes.
type Out struct {
	send      func(midi.Message) error
	channel   uint8 // 0-based wire channel
	notes     [4]uint8
	clockNote uint8

	trigOn  [4]bool
	clockOn bool
}

// Open finds a MIDI output port by name and opens it. An empty name
// matches the first available port.
func Open(portName string, channel uint8, notes [4]uint8, clockNote uint8) (*Out, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("midiout: no output ports")
	}

	port := outs[0]
	if portName != "" {
		found := false
		for _, p := range outs {
			if p.String() == portName {
				port = p
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("midiout: port %q not found", portName)
		}
	}

	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("midiout: open %q: %w", port.String(), err)
	}

	if channel >= 1 && channel <= 16 {
		channel--
	} else {
		channel = 9 // GM percussion
	}

	debug.Log("midi", "opened %q", port.String())
	return &Out{send: send, channel: channel, notes: notes, clockNote: clockNote}, nil
}

// SetTrigger asserts or deasserts one channel trigger line.
func (o *Out) SetTrigger(ch int, on bool) {
	if ch < 0 || ch >= len(o.notes) || o.trigOn[ch] == on {
		return
	}
	o.trigOn[ch] = on
	if on {
		o.send(midi.NoteOn(o.channel, o.notes[ch], 100))
	} else {
		o.send(midi.NoteOff(o.channel, o.notes[ch]))
	}
}

// SetClockOut asserts or deasserts the step/clock-out line.
func (o *Out) SetClockOut(on bool) {
	if o.clockOn == on {
		return
	}
	o.clockOn = on
	if on {
		o.send(midi.NoteOn(o.channel, o.clockNote, 100))
	} else {
		o.send(midi.NoteOff(o.channel, o.clockNote))
	}
}

// Close releases any sounding notes and the MIDI driver.
func (o *Out) Close() {
	for ch := range o.trigOn {
		o.SetTrigger(ch, false)
	}
	o.SetClockOut(false)
	midi.CloseDriver()
}
