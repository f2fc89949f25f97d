package main

import (
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

const midiVelocity = 100

// midiHID sends the bound actions to a MIDI port instead of a USB host:
// keys become notes, media keys become controller changes.
type midiHID struct {
	out     drivers.Out
	send    func(msg gomidi.Message) error
	channel uint8
	media   uint8 // controller of the media key that is down
	logger  flogger
}

func openMIDIHID(settings configSettings) (*midiHID, error) {
	name := settings.GetString(sMIDIPort)
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, errors.Wrapf(err, "no midi port '%s'", name)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open midi port '%s'", name)
	}
	mh := &midiHID{
		out:     out,
		send:    send,
		channel: settings.GetByte(sMIDIChannel) & 0x0F,
		logger:  &ThreadLogger{name: "MIDI"},
	}
	mh.logger.Printf("sending to %s on channel %d", out, mh.channel)
	return mh, nil
}

func (mh *midiHID) press(code byte) error {
	return mh.send(gomidi.NoteOn(mh.channel, code&0x7F, midiVelocity))
}

func (mh *midiHID) release(code byte) error {
	return mh.send(gomidi.NoteOff(mh.channel, code&0x7F))
}

func (mh *midiHID) pressMedia(code uint16) error {
	mh.media = byte(code) & 0x7F
	return mh.send(gomidi.ControlChange(mh.channel, mh.media, 127))
}

func (mh *midiHID) releaseMedia() error {
	return mh.send(gomidi.ControlChange(mh.channel, mh.media, 0))
}

func (mh *midiHID) close() {
	mh.out.Close()
	gomidi.CloseDriver()
}
