package midi

import (
	"cmp"
	"slices"

	"go-smf/smf"
)

// Event is a track event placed on an absolute timeline.
type Event struct {
	Tick  uint64 // absolute ticks from the start of the track
	Track int
	Index int // position within the track
	smf.TrackEvent
}

// TrackEvents returns the events of a single track with absolute ticks.
func TrackEvents(track int, t smf.Track) []Event {
	events := make([]Event, 0, len(t.Events))
	var tick uint64
	for i, ev := range t.Events {
		tick += uint64(ev.Delta)
		events = append(events, Event{Tick: tick, Track: track, Index: i, TrackEvent: ev})
	}
	return events
}

// Flatten merges all tracks into one list ordered by absolute tick. Events
// on the same tick keep track order. Format 2 tracks do not share a
// timeline, so they are concatenated instead.
func Flatten(f *smf.File) []Event {
	var all []Event
	for i, t := range f.Tracks {
		all = append(all, TrackEvents(i, t)...)
	}
	if f.Header.Format == smf.FormatSequence {
		return all
	}

	slices.SortStableFunc(all, func(a, b Event) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return all
}

// TrackInfo summarises a track for listings.
type TrackInfo struct {
	Index    int
	Name     string
	Events   int
	EndTick  uint64
	Channels []uint8 // channels used by channel messages, ascending
	Complete bool
}

// Summarize collects the listing info for a track. The name is taken from
// the first sequence/track name meta event.
func Summarize(index int, t smf.Track, text *TextDecoder) TrackInfo {
	info := TrackInfo{
		Index:    index,
		Events:   len(t.Events),
		Complete: t.Complete(),
	}

	var used [16]bool
	for _, ev := range t.Events {
		info.EndTick += uint64(ev.Delta)
		if ev.Type.HasChannel() {
			used[ev.Type.Channel&0x0F] = true
		}
		if ev.Type.Kind == smf.MetaSequenceOrTrackName && info.Name == "" {
			info.Name = text.Decode(ev.Data)
		}
	}
	for ch, ok := range used {
		if ok {
			info.Channels = append(info.Channels, uint8(ch))
		}
	}
	return info
}
