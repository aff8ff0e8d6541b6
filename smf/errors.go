package smf

import (
	"errors"
	"fmt"
)

var (
	ErrSignatureMismatch   = errors.New("chunk signature mismatch")
	ErrInvalidHeaderLength = errors.New("invalid header length")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrTrackLength         = errors.New("track length mismatch")
)

// ReadError is returned when the byte source cannot supply the bytes a
// field needs.
type ReadError struct {
	Op     string // field being read
	Offset int64  // source offset where the read started
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SignatureError is returned when a chunk does not start with the expected
// signature. It matches ErrSignatureMismatch with errors.Is.
type SignatureError struct {
	Want   string
	Got    string
	Offset int64
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("%v at offset %d: got %q, want %q", ErrSignatureMismatch, e.Offset, e.Got, e.Want)
}

func (e *SignatureError) Is(target error) bool {
	return target == ErrSignatureMismatch
}

// TrackError wraps a failure inside a track's event stream.
type TrackError struct {
	Track  int   // zero-based track index
	Event  int   // index of the event being decoded
	State  State // decoder state at the point of failure
	Offset int64
	Err    error
}

func (e *TrackError) Error() string {
	return fmt.Sprintf("track %d, event %d (%s, offset %d): %v", e.Track, e.Event, e.State, e.Offset, e.Err)
}

func (e *TrackError) Unwrap() error {
	return e.Err
}
