/*
 * NETCAP - Traffic Analysis Framework
 * Copyright (c) 2017-2020 Philipp Mieden <dreadl0ck [at] protonmail [dot] ch>
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package wire

import (
	"encoding/binary"
	"math"
)

// Quaternion is a plain 4-float rotation quaternion, read off the byte
// stream for skeleton/corpse transforms.
type Quaternion struct {
	X, Y, Z, W float64
}

// ByteStream is a little-endian primitive reader with the engine's 7-bit
// varint length prefix for strings (the C# BinaryReader convention).
type ByteStream struct {
	buf []byte
	pos int
}

// NewByteStream wraps buf for little-endian reading starting at offset 0.
func NewByteStream(buf []byte) *ByteStream {
	return &ByteStream{buf: buf}
}

// Len returns the number of unread bytes.
func (s *ByteStream) Len() int { return len(s.buf) - s.pos }

// Pos returns the current read offset.
func (s *ByteStream) Pos() int { return s.pos }

// Seek repositions the read cursor.
func (s *ByteStream) Seek(pos int) { s.pos = pos }

func (s *ByteStream) require(n int) error {
	if n < 0 || s.Len() < n {
		return ErrShortBuffer
	}

	return nil
}

// ReadByte reads a single byte.
func (s *ByteStream) ReadByte() (byte, error) {
	if err := s.require(1); err != nil {
		return 0, err
	}

	b := s.buf[s.pos]
	s.pos++

	return b, nil
}

// ReadBytes reads n raw bytes.
func (s *ByteStream) ReadBytes(n int) ([]byte, error) {
	if err := s.require(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, s.buf[s.pos:s.pos+n])
	s.pos += n

	return out, nil
}

// ReadUInt16 reads a little-endian uint16.
func (s *ByteStream) ReadUInt16() (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// ReadUInt32 reads a little-endian uint32.
func (s *ByteStream) ReadUInt32() (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt16 reads a little-endian int16.
func (s *ByteStream) ReadInt16() (int16, error) {
	v, err := s.ReadUInt16()

	return int16(v), err
}

// ReadInt32 reads a little-endian int32.
func (s *ByteStream) ReadInt32() (int32, error) {
	v, err := s.ReadUInt32()

	return int32(v), err
}

// ReadInt64 reads a little-endian int64.
func (s *ByteStream) ReadInt64() (int64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return int64(binary.LittleEndian.Uint64(b)), nil
}

// ReadSingle reads a little-endian IEEE-754 float32, widened to float64.
func (s *ByteStream) ReadSingle() (float64, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
}

// ReadVector3 reads three consecutive little-endian floats.
func (s *ByteStream) ReadVector3() (Vector3, error) {
	x, err := s.ReadSingle()
	if err != nil {
		return Vector3{}, err
	}

	y, err := s.ReadSingle()
	if err != nil {
		return Vector3{}, err
	}

	z, err := s.ReadSingle()
	if err != nil {
		return Vector3{}, err
	}

	return Vector3{X: x, Y: y, Z: z}, nil
}

// ReadQuaternion reads four consecutive little-endian floats.
func (s *ByteStream) ReadQuaternion() (Quaternion, error) {
	x, err := s.ReadSingle()
	if err != nil {
		return Quaternion{}, err
	}

	y, err := s.ReadSingle()
	if err != nil {
		return Quaternion{}, err
	}

	z, err := s.ReadSingle()
	if err != nil {
		return Quaternion{}, err
	}

	w, err := s.ReadSingle()
	if err != nil {
		return Quaternion{}, err
	}

	return Quaternion{X: x, Y: y, Z: z, W: w}, nil
}

// Read7BitEncodedInt decodes the C# BinaryReader 7-bit variable-length
// integer: each byte contributes 7 bits, MSB signals "more bytes follow",
// capped at 5 bytes (35 bits) as the reference implementation is.
func (s *ByteStream) Read7BitEncodedInt() (int, error) {
	var result uint32

	for shift := 0; shift != 35; shift += 7 {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}

		result |= uint32(b&0x7f) << uint(shift)

		if b&0x80 == 0 {
			return int(result), nil
		}
	}

	return 0, nil
}

// ReadString reads a 7-bit-encoded length prefix followed by that many
// UTF-8 bytes (the engine's string convention for byte-stream payloads,
// distinct from the bit-stream's UTF-16 convention).
func (s *ByteStream) ReadString() (string, error) {
	n, err := s.Read7BitEncodedInt()
	if err != nil {
		return "", err
	}

	if n < 0 || n > s.Len() {
		return "", ErrStringTooLong
	}

	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadBytesAndSize reads a little-endian int32 length prefix followed by
// that many raw bytes (used for the zlib-compressed descriptor/profile
// blobs, which are length-prefixed rather than 7-bit-varint-prefixed).
func (s *ByteStream) ReadBytesAndSize() ([]byte, error) {
	n, err := s.ReadInt32()
	if err != nil {
		return nil, err
	}

	if n < 0 || int(n) > s.Len() {
		return nil, ErrShortBuffer
	}

	return s.ReadBytes(int(n))
}
