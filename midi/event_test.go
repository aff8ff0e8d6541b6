package midi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-smf/smf"
)

func at(delta uint32, kind smf.Kind, ch uint8, data ...byte) smf.TrackEvent {
	ev := event(kind, ch, data...)
	ev.Delta = delta
	return ev
}

func testFile(format smf.Format) *smf.File {
	return &smf.File{
		Header: smf.Header{Length: 6, Format: format, NumTracks: 2, Division: 96},
		Tracks: []smf.Track{
			{Events: []smf.TrackEvent{
				at(0, smf.MetaSequenceOrTrackName, 0, []byte("tempo")...),
				at(96, smf.MetaText, 0, 'x'),
				at(0, smf.MetaEndOfTrack, 0),
			}},
			{Events: []smf.TrackEvent{
				at(0, smf.MetaSequenceOrTrackName, 0, []byte("bass")...),
				at(48, smf.NoteOn, 1, 0x24, 0x64),
				at(48, smf.NoteOff, 1, 0x24, 0x00),
				at(0, smf.NoteOn, 3, 0x30, 0x64),
				at(0, smf.MetaEndOfTrack, 0),
			}},
		},
	}
}

func TestTrackEvents(t *testing.T) {
	f := testFile(smf.FormatParallel)
	events := TrackEvents(1, f.Tracks[1])

	require.Len(t, events, 5)
	ticks := []uint64{0, 48, 96, 96, 96}
	for i, ev := range events {
		require.Equal(t, ticks[i], ev.Tick)
		require.Equal(t, 1, ev.Track)
		require.Equal(t, i, ev.Index)
	}
}

func TestFlatten(t *testing.T) {
	events := Flatten(testFile(smf.FormatParallel))
	require.Len(t, events, 8)

	for i := 1; i < len(events); i++ {
		require.LessOrEqual(t, events[i-1].Tick, events[i].Tick)
	}
	// same tick keeps track order
	require.Equal(t, 0, events[0].Track)
	require.Equal(t, 1, events[1].Track)
	require.Equal(t, smf.MetaText, events[3].Type.Kind)
	require.Equal(t, 0, events[3].Track)
}

func TestFlatten_Format2(t *testing.T) {
	events := Flatten(testFile(smf.FormatSequence))
	require.Len(t, events, 8)
	require.Equal(t, 0, events[2].Track)
	require.Equal(t, 1, events[3].Track)
	require.Equal(t, uint64(0), events[3].Tick)
}

func TestSummarize(t *testing.T) {
	f := testFile(smf.FormatParallel)
	info := Summarize(1, f.Tracks[1], nil)

	require.Equal(t, "bass", info.Name)
	require.Equal(t, 5, info.Events)
	require.Equal(t, uint64(96), info.EndTick)
	require.Equal(t, []uint8{1, 3}, info.Channels)
	require.True(t, info.Complete)
}
