package smf

import "io"

// MaxVLQ is the largest value a 4 byte variable-length quantity can hold.
const MaxVLQ = 0x0FFFFFFF

// maxVLQBytes caps how many bytes ReadVLQ consumes.
const maxVLQBytes = 4

// ReadVLQ reads a variable-length quantity from r. It returns the decoded
// value and the number of bytes consumed. Reading stops at the first byte
// without the continuation bit, or after the 4th byte regardless of it.
func ReadVLQ(r io.ByteReader) (uint32, int, error) {
	var v uint32
	for n := 1; n <= maxVLQBytes; n++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, n - 1, err
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, n, nil
		}
	}
	return v, maxVLQBytes, nil
}

// DecodeVLQ decodes a variable-length quantity stored at the start of buf.
// Bytes after the terminating byte are ignored.
func DecodeVLQ(buf [4]byte) (uint32, int) {
	var v uint32
	for i, b := range buf {
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, i + 1
		}
	}
	return v, len(buf)
}
