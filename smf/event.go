package smf

import (
	"fmt"
	"io"
	"iter"

	"go-smf/debug"
)

// TrackEvent is a single decoded event. len(Data) == DataLen always holds.
type TrackEvent struct {
	Delta   uint32 // ticks since the previous event in the track
	Type    EventType
	DataLen int
	Data    []byte
}

func (e TrackEvent) String() string {
	return fmt.Sprintf("+%d %s % X", e.Delta, e.Type, e.Data)
}

// State is a step of the event stream decoder.
type State uint8

const (
	StateDeltaTime State = iota
	StateClassify
	StateResolveSize
	StatePayload
	StateComplete
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateDeltaTime:
		return "reading delta-time"
	case StateClassify:
		return "classifying event"
	case StateResolveSize:
		return "resolving size"
	case StatePayload:
		return "reading payload"
	case StateComplete:
		return "event complete"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// TrackReader decodes the event stream of one track chunk.
type TrackReader struct {
	src   *source
	opts  Options
	track int

	state   State
	index   int
	running byte // last channel status, 0 when none
	start   int64
	err     error
}

// NewTrackReader returns a reader for the event stream in r. r must be
// positioned at the first event, just past the MTrk chunk header.
func NewTrackReader(r io.Reader, opts Options) *TrackReader {
	return newTrackReader(newSource(r), 0, opts)
}

func newTrackReader(src *source, track int, opts Options) *TrackReader {
	return &TrackReader{
		src:   src,
		opts:  opts,
		track: track,
		start: src.off,
	}
}

// State returns where the reader is in the decode cycle.
func (tr *TrackReader) State() State {
	return tr.state
}

// Consumed returns the number of event bytes read so far.
func (tr *TrackReader) Consumed() int64 {
	return tr.src.off - tr.start
}

// Next decodes the next event. After the end-of-track event has been
// returned, Next returns io.EOF. Errors are sticky.
func (tr *TrackReader) Next() (TrackEvent, error) {
	if tr.err != nil {
		return TrackEvent{}, tr.err
	}
	if tr.state == StateTerminated {
		return TrackEvent{}, io.EOF
	}

	ev, err := tr.next()
	if err != nil {
		tr.err = &TrackError{
			Track:  tr.track,
			Event:  tr.index,
			State:  tr.state,
			Offset: tr.src.off,
			Err:    err,
		}
		return TrackEvent{}, tr.err
	}

	debug.LogEvery(256, "smf", "track=%d event=%d %s", tr.track, tr.index, ev.Type)
	tr.index++

	if ev.Type.Kind == MetaEndOfTrack {
		tr.state = StateTerminated
	} else {
		tr.state = StateDeltaTime
	}
	return ev, nil
}

// All returns the remaining events as a sequence. Iteration stops after the
// end-of-track event or after the first error.
func (tr *TrackReader) All() iter.Seq2[TrackEvent, error] {
	return func(yield func(TrackEvent, error) bool) {
		for {
			ev, err := tr.Next()
			if err == io.EOF {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

func (tr *TrackReader) next() (TrackEvent, error) {
	tr.state = StateDeltaTime
	start := tr.src.off
	delta, _, err := ReadVLQ(tr.src)
	if err != nil {
		return TrackEvent{}, &ReadError{Op: "delta-time", Offset: start, Err: err}
	}

	tr.state = StateClassify
	typ, prefix, err := tr.classify()
	if err != nil {
		return TrackEvent{}, err
	}

	tr.state = StateResolveSize
	size := SizeOf(typ)
	n := 0
	switch size.Kind {
	case SizeFixed:
		n = size.N
	case SizeVariable:
		start = tr.src.off
		l, _, err := ReadVLQ(tr.src)
		if err != nil {
			return TrackEvent{}, &ReadError{Op: "meta length", Offset: start, Err: err}
		}
		n = int(l)
	}

	tr.state = StatePayload
	start = tr.src.off
	var data []byte
	if size.Kind == SizeSysExDelimited && tr.opts.SysEx == SysExScan {
		data, err = tr.scanSysEx()
	} else {
		data, err = tr.src.readN(n - len(prefix))
		if len(prefix) > 0 {
			data = append(prefix, data...)
		}
	}
	if err != nil {
		return TrackEvent{}, &ReadError{Op: typ.Kind.String() + " payload", Offset: start, Err: err}
	}

	if tr.opts.SplitChannelMode && len(data) > 0 {
		typ = typ.Mode(data[0])
	}

	tr.state = StateComplete
	return TrackEvent{
		Delta:   delta,
		Type:    typ,
		DataLen: len(data),
		Data:    data,
	}, nil
}

// scanSysEx reads the SMF length prefix, then the message body through the
// terminating 0xF7. The prefix is kept at the front of the payload.
func (tr *TrackReader) scanSysEx() ([]byte, error) {
	prefix, err := tr.src.readVLQBytes()
	if err != nil {
		return prefix, err
	}
	body, err := tr.src.readThrough(StatusEOX)
	return append(prefix, body...), err
}

// classify reads the status byte (and meta sub-type). With running status
// enabled a data byte in status position is returned as payload prefix.
func (tr *TrackReader) classify() (EventType, []byte, error) {
	start := tr.src.off
	var r io.ByteReader = tr.src

	if tr.opts.RunningStatus {
		status, err := tr.src.ReadByte()
		if err != nil {
			return EventType{}, nil, &ReadError{Op: "status", Offset: start, Err: err}
		}
		if status < 0x80 && tr.running != 0 {
			return Classify(tr.running, 0), []byte{status}, nil
		}

		switch {
		case status >= 0x80 && status < 0xF0:
			tr.running = status
		case status >= 0xF0 && status <= 0xF7, status == StatusMeta:
			tr.running = 0
		}
		r = &replay{b: status, r: tr.src}
	}

	typ, n, err := ReadEventType(r)
	if err != nil {
		op := "status"
		if n > 0 {
			op = "meta type"
		}
		return EventType{}, nil, &ReadError{Op: op, Offset: start + int64(n), Err: err}
	}
	return typ, nil, nil
}

// replay yields b once before reading on from r.
type replay struct {
	b    byte
	done bool
	r    io.ByteReader
}

func (p *replay) ReadByte() (byte, error) {
	if !p.done {
		p.done = true
		return p.b, nil
	}
	return p.r.ReadByte()
}
