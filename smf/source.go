package smf

import (
	"bytes"
	"encoding/binary"
	"io"
)

// reads above this size are grown incrementally instead of allocated up front
const readChunk = 64 << 10

// source tracks the offset of every byte consumed from the underlying reader.
type source struct {
	r   io.Reader
	off int64
	one [1]byte
}

var _ io.ByteReader = (*source)(nil)

func newSource(r io.Reader) *source {
	return &source{r: r}
}

func (s *source) ReadByte() (byte, error) {
	n, err := io.ReadFull(s.r, s.one[:])
	s.off += int64(n)
	if err != nil {
		return 0, unexpected(err)
	}
	return s.one[0], nil
}

// readFull fills p or fails.
func (s *source) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.off += int64(n)
	return unexpected(err)
}

// readN reads exactly n bytes.
func (s *source) readN(n int) ([]byte, error) {
	if n <= readChunk {
		buf := make([]byte, n)
		return buf, s.readFull(buf)
	}

	var buf bytes.Buffer
	m, err := io.CopyN(&buf, s.r, int64(n))
	s.off += m
	return buf.Bytes(), unexpected(err)
}

// readVLQBytes reads a variable-length quantity and returns its encoded
// bytes.
func (s *source) readVLQBytes() ([]byte, error) {
	rec := &recorder{r: s}
	_, _, err := ReadVLQ(rec)
	return rec.buf, err
}

type recorder struct {
	r   io.ByteReader
	buf []byte
}

func (r *recorder) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == nil {
		r.buf = append(r.buf, b)
	}
	return b, err
}

// readThrough reads bytes up to and including delim.
func (s *source) readThrough(delim byte) ([]byte, error) {
	var out []byte
	for {
		b, err := s.ReadByte()
		if err != nil {
			return out, err
		}
		out = append(out, b)
		if b == delim {
			return out, nil
		}
	}
}

func (s *source) readUint32(op string) (uint32, error) {
	var buf [4]byte
	start := s.off
	if err := s.readFull(buf[:]); err != nil {
		return 0, &ReadError{Op: op, Offset: start, Err: err}
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (s *source) readUint16(op string) (uint16, error) {
	var buf [2]byte
	start := s.off
	if err := s.readFull(buf[:]); err != nil {
		return 0, &ReadError{Op: op, Offset: start, Err: err}
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// expectSignature reads a 4 byte chunk signature and compares it with want.
func (s *source) expectSignature(want string) error {
	var buf [4]byte
	start := s.off
	if err := s.readFull(buf[:]); err != nil {
		return &ReadError{Op: want + " signature", Offset: start, Err: err}
	}
	if string(buf[:]) != want {
		return &SignatureError{Want: want, Got: string(buf[:]), Offset: start}
	}
	return nil
}

// every read is for a required field, so running dry is never a clean EOF
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
