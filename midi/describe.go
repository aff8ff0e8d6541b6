package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-smf/smf"
)

// Message rebuilds the wire message for channel and system events. Meta
// events, Undefined and SysEx continuation packets return false.
func Message(ev smf.TrackEvent) (gomidi.Message, bool) {
	t := ev.Type
	switch {
	case t.HasChannel():
		return gomidi.Message(append([]byte{t.Status()}, ev.Data...)), true
	case t.Kind == smf.SystemExclusive:
		body, ok := sysexBody(ev.Data)
		if !ok {
			return nil, false
		}
		return gomidi.SysEx(body), true
	case t.IsSystem() && t.Kind != smf.Undefined && t.Kind != smf.EndOfExclusive:
		return gomidi.Message(append([]byte{t.Status()}, ev.Data...)), true
	}
	return nil, false
}

// sysexBody strips the SMF length prefix and the trailing 0xF7 from a
// scanned SysEx payload.
func sysexBody(data []byte) ([]byte, bool) {
	if len(data) == 0 || data[len(data)-1] != smf.StatusEOX {
		return nil, false
	}
	var buf [4]byte
	copy(buf[:], data)
	_, n := smf.DecodeVLQ(buf)
	if n > len(data)-1 {
		return nil, false
	}
	return data[n : len(data)-1], true
}

var metaText = map[smf.Kind]string{
	smf.MetaText:                "text",
	smf.MetaCopyrightNotice:     "copyright",
	smf.MetaSequenceOrTrackName: "track name",
	smf.MetaInstrumentName:      "instrument",
	smf.MetaLyricText:           "lyric",
	smf.MetaMarkerText:          "marker",
	smf.MetaCuePoint:            "cue point",
}

// Describe returns a one line description of ev.
func Describe(ev smf.TrackEvent, text *TextDecoder) string {
	if msg, ok := Message(ev); ok {
		return msg.String()
	}

	t := ev.Type
	if label, ok := metaText[t.Kind]; ok {
		return fmt.Sprintf("%s %q", label, text.Decode(ev.Data))
	}
	switch t.Kind {
	case smf.MetaEndOfTrack:
		return "end of track"
	case smf.Undefined:
		return "undefined"
	case smf.SystemExclusive:
		return fmt.Sprintf("sysex (%d bytes)", ev.DataLen)
	}
	if ev.DataLen == 0 {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s [% X]", t.Kind, ev.Data)
}

// Category groups event kinds for display.
type Category int

const (
	CategoryChannel Category = iota
	CategorySystem
	CategoryMeta
	CategoryUndefined
)

// CategoryOf returns the display category of t.
func CategoryOf(t smf.EventType) Category {
	switch {
	case t.Kind == smf.Undefined:
		return CategoryUndefined
	case t.HasChannel():
		return CategoryChannel
	case t.IsMeta():
		return CategoryMeta
	}
	return CategorySystem
}

func (c Category) String() string {
	switch c {
	case CategoryChannel:
		return "channel"
	case CategorySystem:
		return "system"
	case CategoryMeta:
		return "meta"
	}
	return "undefined"
}
