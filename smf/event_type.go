package smf

import (
	"fmt"
	"io"
)

// Kind identifies the variant of an event.
type Kind uint8

const (
	// Channel voice messages
	NoteOff Kind = iota
	NoteOn
	PolyphonicKeyPressure
	ControlChange
	ProgramChange
	ChannelPressure
	PitchWheelChange

	// Channel mode messages
	ChannelModeMessages

	// System common messages
	SystemExclusive
	Undefined
	SongPositionPointer
	SongSelect
	TuneRequest
	EndOfExclusive

	// System real-time messages
	RTTimingClock
	RTStart
	RTContinue
	RTStop
	RTActiveSensing

	// Meta events
	MetaSequenceNumber
	MetaText
	MetaCopyrightNotice
	MetaSequenceOrTrackName
	MetaInstrumentName
	MetaLyricText
	MetaMarkerText
	MetaCuePoint
	MetaMIDIChannelPrefixAssignment
	MetaEndOfTrack
	MetaTempoSetting
	MetaSMPTEOffset
	MetaTimeSignature
	MetaKeySignature
	MetaSequencerSpecificEvent

	numKinds
)

var kindNames = [numKinds]string{
	NoteOff:                         "NoteOff",
	NoteOn:                          "NoteOn",
	PolyphonicKeyPressure:           "PolyphonicKeyPressure",
	ControlChange:                   "ControlChange",
	ProgramChange:                   "ProgramChange",
	ChannelPressure:                 "ChannelPressure",
	PitchWheelChange:                "PitchWheelChange",
	ChannelModeMessages:             "ChannelModeMessages",
	SystemExclusive:                 "SystemExclusive",
	Undefined:                       "Undefined",
	SongPositionPointer:             "SongPositionPointer",
	SongSelect:                      "SongSelect",
	TuneRequest:                     "TuneRequest",
	EndOfExclusive:                  "EndOfExclusive",
	RTTimingClock:                   "RTTimingClock",
	RTStart:                         "RTStart",
	RTContinue:                      "RTContinue",
	RTStop:                          "RTStop",
	RTActiveSensing:                 "RTActiveSensing",
	MetaSequenceNumber:              "MetaSequenceNumber",
	MetaText:                        "MetaText",
	MetaCopyrightNotice:             "MetaCopyrightNotice",
	MetaSequenceOrTrackName:         "MetaSequenceOrTrackName",
	MetaInstrumentName:              "MetaInstrumentName",
	MetaLyricText:                   "MetaLyricText",
	MetaMarkerText:                  "MetaMarkerText",
	MetaCuePoint:                    "MetaCuePoint",
	MetaMIDIChannelPrefixAssignment: "MetaMIDIChannelPrefixAssignment",
	MetaEndOfTrack:                  "MetaEndOfTrack",
	MetaTempoSetting:                "MetaTempoSetting",
	MetaSMPTEOffset:                 "MetaSMPTEOffset",
	MetaTimeSignature:               "MetaTimeSignature",
	MetaKeySignature:                "MetaKeySignature",
	MetaSequencerSpecificEvent:      "MetaSequencerSpecificEvent",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Status bytes
const (
	StatusMeta  byte = 0xFF
	StatusSysEx byte = 0xF0
	StatusEOX   byte = 0xF7
)

// channel voice kinds indexed by high nibble - 0x8
var voiceKinds = [...]Kind{
	NoteOff,
	NoteOn,
	PolyphonicKeyPressure,
	ControlChange,
	ProgramChange,
	ChannelPressure,
	PitchWheelChange,
}

var systemKinds = map[byte]Kind{
	0xF0: SystemExclusive,
	0xF2: SongPositionPointer,
	0xF3: SongSelect,
	0xF6: TuneRequest,
	0xF7: EndOfExclusive,
	0xF8: RTTimingClock,
	0xFA: RTStart,
	0xFB: RTContinue,
	0xFC: RTStop,
	0xFE: RTActiveSensing,
}

var metaKinds = map[byte]Kind{
	0x00: MetaSequenceNumber,
	0x01: MetaText,
	0x02: MetaCopyrightNotice,
	0x03: MetaSequenceOrTrackName,
	0x04: MetaInstrumentName,
	0x05: MetaLyricText,
	0x06: MetaMarkerText,
	0x07: MetaCuePoint,
	0x20: MetaMIDIChannelPrefixAssignment,
	0x2F: MetaEndOfTrack,
	0x51: MetaTempoSetting,
	0x54: MetaSMPTEOffset,
	0x58: MetaTimeSignature,
	0x59: MetaKeySignature,
	0x7F: MetaSequencerSpecificEvent,
}

// EventType is a classified event. Channel is only meaningful when
// HasChannel reports true.
type EventType struct {
	Kind    Kind
	Channel uint8
}

// Classify maps a status byte to an EventType. meta is the sub-type byte
// following a 0xFF status and is ignored for every other status.
// Classify never fails: anything unrecognised is Undefined.
func Classify(status, meta byte) EventType {
	if status >= 0x80 && status < 0xF0 {
		return EventType{Kind: voiceKinds[status>>4-0x8], Channel: status & 0x0F}
	}
	if status == StatusMeta {
		if k, ok := metaKinds[meta]; ok {
			return EventType{Kind: k}
		}
		return EventType{Kind: Undefined}
	}
	if k, ok := systemKinds[status]; ok {
		return EventType{Kind: k}
	}
	return EventType{Kind: Undefined}
}

// ReadEventType reads a status byte, plus the meta sub-type when the status
// is 0xFF, and classifies it. It returns the number of bytes consumed.
func ReadEventType(r io.ByteReader) (EventType, int, error) {
	status, err := r.ReadByte()
	if err != nil {
		return EventType{}, 0, err
	}
	if status != StatusMeta {
		return Classify(status, 0), 1, nil
	}
	meta, err := r.ReadByte()
	if err != nil {
		return EventType{}, 1, err
	}
	return Classify(status, meta), 2, nil
}

// HasChannel reports whether the event carries a channel number.
func (t EventType) HasChannel() bool {
	return t.Kind <= ChannelModeMessages
}

// IsMeta reports whether the event is a meta event.
func (t EventType) IsMeta() bool {
	return t.Kind >= MetaSequenceNumber && t.Kind < numKinds
}

// IsSystem reports whether the event is a system common or real-time message.
func (t EventType) IsSystem() bool {
	return t.Kind >= SystemExclusive && t.Kind <= RTActiveSensing
}

// Status returns the status byte that produces t. Undefined has no single
// status byte and returns 0.
func (t EventType) Status() byte {
	switch {
	case t.Kind <= PitchWheelChange:
		return 0x80 + byte(t.Kind)<<4 | t.Channel&0x0F
	case t.Kind == ChannelModeMessages:
		return 0xB0 | t.Channel&0x0F
	case t.IsMeta():
		return StatusMeta
	}
	for s, k := range systemKinds {
		if k == t.Kind {
			return s
		}
	}
	return 0
}

// MetaType returns the meta sub-type byte for meta events and 0 otherwise.
func (t EventType) MetaType() byte {
	if !t.IsMeta() {
		return 0
	}
	for m, k := range metaKinds {
		if k == t.Kind {
			return m
		}
	}
	return 0
}

// Mode refines a ControlChange into ChannelModeMessages when its controller
// number (the first data byte) is in the channel mode range 120-127.
func (t EventType) Mode(controller byte) EventType {
	if t.Kind == ControlChange && controller >= 120 && controller <= 127 {
		return EventType{Kind: ChannelModeMessages, Channel: t.Channel}
	}
	return t
}

func (t EventType) String() string {
	if t.HasChannel() {
		return fmt.Sprintf("%s(ch=%d)", t.Kind, t.Channel)
	}
	return t.Kind.String()
}
