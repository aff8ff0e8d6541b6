package smf

import "fmt"

// SizeKind is how the payload length of an event is determined.
type SizeKind uint8

const (
	// SizeFixed events carry exactly N payload bytes.
	SizeFixed SizeKind = iota
	// SizeVariable events are preceded by a VLQ payload length.
	SizeVariable
	// SizeSysExDelimited events run until a terminating 0xF7.
	SizeSysExDelimited
)

// Size is the payload size discipline for an event type.
type Size struct {
	Kind SizeKind
	N    int // only for SizeFixed
}

func fixed(n int) Size { return Size{Kind: SizeFixed, N: n} }

func (s Size) String() string {
	switch s.Kind {
	case SizeFixed:
		return fmt.Sprintf("Fixed(%d)", s.N)
	case SizeVariable:
		return "Variable"
	case SizeSysExDelimited:
		return "SysExDelimited"
	}
	return fmt.Sprintf("Size(%d)", uint8(s.Kind))
}

// SizeOf returns the size discipline for t.
func SizeOf(t EventType) Size {
	switch t.Kind {
	case NoteOff, NoteOn, PolyphonicKeyPressure, ControlChange, PitchWheelChange:
		return fixed(2)
	case ProgramChange, ChannelPressure:
		return fixed(1)
	case ChannelModeMessages:
		return fixed(2)

	case SystemExclusive:
		return Size{Kind: SizeSysExDelimited}
	case SongPositionPointer:
		return fixed(2)
	case SongSelect:
		return fixed(1)
	case Undefined, TuneRequest, EndOfExclusive:
		return fixed(0)

	case RTTimingClock, RTStart, RTContinue, RTStop, RTActiveSensing:
		return fixed(0)

	case MetaSequenceNumber, MetaText, MetaCopyrightNotice, MetaSequenceOrTrackName,
		MetaInstrumentName, MetaLyricText, MetaMarkerText, MetaCuePoint,
		MetaMIDIChannelPrefixAssignment, MetaEndOfTrack, MetaTempoSetting,
		MetaSMPTEOffset, MetaTimeSignature, MetaKeySignature, MetaSequencerSpecificEvent:
		return Size{Kind: SizeVariable}
	}
	return fixed(0)
}
