package smf

import (
	"fmt"

	"go-smf/debug"
)

const trackSignature = "MTrk"

// Track is one MTrk chunk.
type Track struct {
	Length uint32 // declared chunk length
	Events []TrackEvent
}

// Complete reports whether the track ends in an end-of-track event.
func (t *Track) Complete() bool {
	n := len(t.Events)
	return n > 0 && t.Events[n-1].Type.Kind == MetaEndOfTrack
}

// readTrack reads a track chunk header and its events.
func readTrack(src *source, idx int, opts Options) (Track, error) {
	if err := src.expectSignature(trackSignature); err != nil {
		return Track{}, fmt.Errorf("track %d: %w", idx, err)
	}
	length, err := src.readUint32("track length")
	if err != nil {
		return Track{}, fmt.Errorf("track %d: %w", idx, err)
	}
	debug.Log("smf", "track %d at offset %d, declared length %d", idx, src.off-8, length)

	tr := newTrackReader(src, idx, opts)
	var events []TrackEvent
	for ev, err := range tr.All() {
		if err != nil {
			return Track{}, err
		}
		events = append(events, ev)
	}

	if opts.VerifyTrackLength && tr.Consumed() != int64(length) {
		return Track{}, &TrackError{
			Track:  idx,
			Event:  len(events),
			State:  tr.State(),
			Offset: src.off,
			Err:    fmt.Errorf("%w: declared %d bytes, consumed %d", ErrTrackLength, length, tr.Consumed()),
		}
	}

	return Track{Length: length, Events: events}, nil
}
