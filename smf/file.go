// Package smf decodes Standard MIDI Files into headers, tracks and
// classified track events.
package smf

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go-smf/debug"
)

const (
	headerSignature = "MThd"
	headerLength    = 6
)

// Format is the SMF file format from the header chunk.
type Format uint16

const (
	FormatSingle   Format = 0 // one track
	FormatParallel Format = 1 // simultaneous tracks
	FormatSequence Format = 2 // independent patterns
)

func (f Format) String() string {
	switch f {
	case FormatSingle:
		return "single track"
	case FormatParallel:
		return "multiple synchronous tracks"
	case FormatSequence:
		return "multiple independent tracks"
	}
	return fmt.Sprintf("Format(%d)", uint16(f))
}

// Division is the raw time division field.
type Division int16

// TicksPerQuarter returns the ticks per quarter note for metrical divisions.
func (d Division) TicksPerQuarter() (uint16, bool) {
	if d < 0 {
		return 0, false
	}
	return uint16(d), true
}

// SMPTE splits a negative division into frames per second and ticks per frame.
func (d Division) SMPTE() (fps uint8, ticksPerFrame uint8, ok bool) {
	if d >= 0 {
		return 0, 0, false
	}
	return uint8(-int8(uint16(d) >> 8)), uint8(uint16(d) & 0xFF), true
}

func (d Division) String() string {
	if tpq, ok := d.TicksPerQuarter(); ok {
		return fmt.Sprintf("%d ticks/quarter", tpq)
	}
	fps, tpf, _ := d.SMPTE()
	return fmt.Sprintf("SMPTE %d fps, %d ticks/frame", fps, tpf)
}

// Header is the MThd chunk.
type Header struct {
	Length    uint32
	Format    Format
	NumTracks uint16
	Division  Division
}

// File is a fully decoded SMF.
type File struct {
	Filename string
	Header   Header
	Tracks   []Track
}

// Decoder reads a File from a byte source.
type Decoder struct {
	src  *source
	opts Options
}

// NewDecoder returns a decoder reading from r. The decoder does no
// buffering of its own.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	return &Decoder{src: newSource(r), opts: opts}
}

// Decode reads the header chunk followed by exactly as many track chunks
// as the header declares. No File is returned on error.
func (d *Decoder) Decode() (*File, error) {
	hdr, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	debug.Log("smf", "header: format=%d tracks=%d division=%d", hdr.Format, hdr.NumTracks, hdr.Division)

	tracks := make([]Track, 0, hdr.NumTracks)
	for i := 0; i < int(hdr.NumTracks); i++ {
		t, err := readTrack(d.src, i, d.opts)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}

	return &File{Header: hdr, Tracks: tracks}, nil
}

func (d *Decoder) readHeader() (Header, error) {
	if err := d.src.expectSignature(headerSignature); err != nil {
		return Header{}, err
	}

	length, err := d.src.readUint32("header length")
	if err != nil {
		return Header{}, err
	}
	if length != headerLength {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidHeaderLength, length)
	}

	format, err := d.src.readUint16("format")
	if err != nil {
		return Header{}, err
	}
	if format > uint16(FormatSequence) {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidFormat, format)
	}

	ntracks, err := d.src.readUint16("track count")
	if err != nil {
		return Header{}, err
	}

	division, err := d.src.readUint16("division")
	if err != nil {
		return Header{}, err
	}

	return Header{
		Length:    length,
		Format:    Format(format),
		NumTracks: ntracks,
		Division:  Division(int16(division)),
	}, nil
}

// Read decodes a File from r with default options.
func Read(r io.Reader) (*File, error) {
	return NewDecoder(r, Options{}).Decode()
}

// ReadFile opens and decodes the file at path.
func ReadFile(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := NewDecoder(bufio.NewReader(f), opts).Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Filename = path
	return file, nil
}
