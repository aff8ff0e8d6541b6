package smf

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

var endOfTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

func stream(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func readAll(t *testing.T, tr *TrackReader) []TrackEvent {
	t.Helper()
	var events []TrackEvent
	for ev, err := range tr.All() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestTrackReader_OnlyEndOfTrack(t *testing.T) {
	tr := NewTrackReader(bytes.NewReader(endOfTrack), Options{})

	ev, err := tr.Next()
	require.NoError(t, err)
	require.Equal(t, MetaEndOfTrack, ev.Type.Kind)
	require.Zero(t, ev.DataLen)
	require.Empty(t, ev.Data)
	require.Equal(t, StateTerminated, tr.State())

	_, err = tr.Next()
	require.Equal(t, io.EOF, err)
}

func TestTrackReader_StopsAtEndOfTrack(t *testing.T) {
	in := stream(
		[]byte{0x00, 0x90, 0x3C, 0x40},
		endOfTrack,
		[]byte{0x00, 0x80, 0x3C, 0x00}, // must not be read
	)
	r := bytes.NewReader(in)
	tr := NewTrackReader(r, Options{})

	events := readAll(t, tr)
	require.Len(t, events, 2)
	require.Equal(t, EventType{Kind: NoteOn, Channel: 0}, events[0].Type)
	require.Equal(t, []byte{0x3C, 0x40}, events[0].Data)
	require.Equal(t, MetaEndOfTrack, events[1].Type.Kind)
	require.Equal(t, int64(8), tr.Consumed())
	require.Equal(t, 4, r.Len())
}

func TestTrackReader_FixedIgnoresContent(t *testing.T) {
	// program change payload that looks like a status byte
	in := stream([]byte{0x05, 0xC3, 0x90}, endOfTrack)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{}))

	require.Len(t, events, 2)
	require.Equal(t, EventType{Kind: ProgramChange, Channel: 3}, events[0].Type)
	require.Equal(t, uint32(5), events[0].Delta)
	require.Equal(t, []byte{0x90}, events[0].Data)
	require.Equal(t, 1, events[0].DataLen)
}

func TestTrackReader_VariableLength(t *testing.T) {
	text := bytes.Repeat([]byte("a"), 200)
	in := stream(
		[]byte{0x81, 0x00, 0xFF, 0x01, 0x81, 0x48}, // delta 128, text, length 200
		text,
		endOfTrack,
	)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{}))

	require.Len(t, events, 2)
	require.Equal(t, uint32(128), events[0].Delta)
	require.Equal(t, MetaText, events[0].Type.Kind)
	require.Equal(t, 200, events[0].DataLen)
	require.Equal(t, text, events[0].Data)
}

func TestTrackReader_DataLenInvariant(t *testing.T) {
	in := stream(
		[]byte{0x00, 0x90, 0x3C, 0x40},
		[]byte{0x00, 0xD2, 0x10},
		[]byte{0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20},
		[]byte{0x00, 0xF6},
		[]byte{0x00, 0xF2, 0x01, 0x02},
		endOfTrack,
	)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{}))
	require.Len(t, events, 6)

	wantLen := []int{2, 1, 3, 0, 2, 0}
	for i, ev := range events {
		require.Equal(t, wantLen[i], ev.DataLen, "event %d", i)
		require.Len(t, ev.Data, ev.DataLen, "event %d", i)
	}
}

func TestTrackReader_SysExScan(t *testing.T) {
	in := stream([]byte{0x00, 0xF0, 0x04, 0x43, 0x12, 0x00, 0xF7}, endOfTrack)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{}))

	require.Len(t, events, 2)
	require.Equal(t, SystemExclusive, events[0].Type.Kind)
	require.Equal(t, []byte{0x04, 0x43, 0x12, 0x00, 0xF7}, events[0].Data)
	require.Equal(t, 5, events[0].DataLen)
}

func TestTrackReader_SysExLengthContainsTerminator(t *testing.T) {
	// 0xF7 0x00 encodes 0x3B80: the first length byte equals the terminator
	body := append(bytes.Repeat([]byte{0x01}, 0x3B7F), 0xF7)
	in := stream([]byte{0x00, 0xF0, 0xF7, 0x00}, body, endOfTrack)

	tr := NewTrackReader(bytes.NewReader(in), Options{})
	events := readAll(t, tr)

	require.Len(t, events, 2)
	require.Equal(t, SystemExclusive, events[0].Type.Kind)
	require.Equal(t, 2+len(body), events[0].DataLen)
	require.Equal(t, []byte{0xF7, 0x00}, events[0].Data[:2])
	require.Equal(t, byte(0xF7), events[0].Data[events[0].DataLen-1])
	require.Equal(t, MetaEndOfTrack, events[1].Type.Kind)
	require.Equal(t, int64(len(in)), tr.Consumed())
}

func TestTrackReader_SysExTruncatedLength(t *testing.T) {
	_, err := NewTrackReader(bytes.NewReader([]byte{0x00, 0xF0, 0x81}), Options{}).Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var terr *TrackError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, StatePayload, terr.State)
}

func TestTrackReader_SysExLegacy(t *testing.T) {
	in := stream([]byte{0x00, 0xF0}, endOfTrack)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{SysEx: SysExLegacy}))

	require.Len(t, events, 2)
	require.Equal(t, SystemExclusive, events[0].Type.Kind)
	require.Zero(t, events[0].DataLen)
	require.Equal(t, MetaEndOfTrack, events[1].Type.Kind)
}

func TestTrackReader_RunningStatus(t *testing.T) {
	in := stream(
		[]byte{0x00, 0x91, 0x3C, 0x40},
		[]byte{0x10, 0x3E, 0x41}, // running status
		[]byte{0x00, 0xFF, 0x01, 0x00},
		[]byte{0x00, 0x3E}, // running status cleared by the meta event
		endOfTrack,
	)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{RunningStatus: true}))

	require.Len(t, events, 5)
	require.Equal(t, EventType{Kind: NoteOn, Channel: 1}, events[1].Type)
	require.Equal(t, uint32(0x10), events[1].Delta)
	require.Equal(t, []byte{0x3E, 0x41}, events[1].Data)
	require.Equal(t, MetaText, events[2].Type.Kind)
	require.Equal(t, Undefined, events[3].Type.Kind)
	require.Empty(t, events[3].Data)
}

func TestTrackReader_RunningStatusDisabled(t *testing.T) {
	in := stream(
		[]byte{0x00, 0x91, 0x3C, 0x40},
		[]byte{0x10, 0x3E, 0x41},
	)
	tr := NewTrackReader(bytes.NewReader(in), Options{})

	_, err := tr.Next()
	require.NoError(t, err)

	ev, err := tr.Next()
	require.NoError(t, err)
	require.Equal(t, Undefined, ev.Type.Kind)
	require.Zero(t, ev.DataLen)
}

func TestTrackReader_SplitChannelMode(t *testing.T) {
	in := stream([]byte{0x00, 0xB1, 0x7B, 0x00}, []byte{0x00, 0xB1, 0x07, 0x64}, endOfTrack)
	events := readAll(t, NewTrackReader(bytes.NewReader(in), Options{SplitChannelMode: true}))

	require.Len(t, events, 3)
	require.Equal(t, EventType{Kind: ChannelModeMessages, Channel: 1}, events[0].Type)
	require.Equal(t, EventType{Kind: ControlChange, Channel: 1}, events[1].Type)
}

func TestTrackReader_MissingEndOfTrack(t *testing.T) {
	in := []byte{0x00, 0x90, 0x3C, 0x40}
	tr := NewTrackReader(bytes.NewReader(in), Options{})

	_, err := tr.Next()
	require.NoError(t, err)

	_, err = tr.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var terr *TrackError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, 1, terr.Event)
	require.Equal(t, StateDeltaTime, terr.State)

	var rerr *ReadError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, "delta-time", rerr.Op)
	require.Equal(t, int64(4), rerr.Offset)

	// sticky
	_, err2 := tr.Next()
	require.Equal(t, err, err2)
}

func TestTrackReader_TruncatedPayload(t *testing.T) {
	tt := []struct {
		name  string
		in    []byte
		state State
	}{
		{"channel payload", []byte{0x00, 0x90, 0x3C}, StatePayload},
		{"meta type", []byte{0x00, 0xFF}, StateClassify},
		{"meta length", []byte{0x00, 0xFF, 0x03, 0x85}, StateResolveSize},
		{"meta payload", []byte{0x00, 0xFF, 0x03, 0x05, 'a', 'b'}, StatePayload},
		{"sysex without terminator", []byte{0x00, 0xF0, 0x01, 0x02}, StatePayload},
		{"delta-time", []byte{0x81}, StateDeltaTime},
	}

	for _, tc := range tt {
		t.Run(tc.name+" with running status", func(t *testing.T) {
			_, err := NewTrackReader(bytes.NewReader(tc.in), Options{RunningStatus: true}).Next()
			require.ErrorIs(t, err, io.ErrUnexpectedEOF)

			var terr *TrackError
			require.True(t, errors.As(err, &terr))
			require.Equal(t, tc.state, terr.State)
		})
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTrackReader(bytes.NewReader(tc.in), Options{}).Next()
			require.ErrorIs(t, err, io.ErrUnexpectedEOF)

			var terr *TrackError
			require.True(t, errors.As(err, &terr))
			require.Equal(t, tc.state, terr.State)
			require.Zero(t, terr.Event)
		})
	}
}

func TestTrackReader_AllStopsEarly(t *testing.T) {
	in := stream(
		[]byte{0x00, 0x90, 0x3C, 0x40},
		[]byte{0x00, 0x80, 0x3C, 0x00},
		endOfTrack,
	)
	tr := NewTrackReader(bytes.NewReader(in), Options{})
	for range tr.All() {
		break
	}

	ev, err := tr.Next()
	require.NoError(t, err)
	require.Equal(t, NoteOff, ev.Type.Kind)
}
