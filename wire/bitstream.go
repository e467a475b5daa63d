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
	"math"
	"unicode/utf16"
)

// BitStream layers the typed reads used by packet handlers (limited
// integers, quantized floats, length-prefixed strings) over a BitReader.
type BitStream struct {
	*BitReader
}

// NewBitStream wraps buf for typed bit-level reading.
func NewBitStream(buf []byte) *BitStream {
	return &BitStream{BitReader: NewBitReader(buf)}
}

// ReadBool reads a single bit as a boolean.
func (s *BitStream) ReadBool() bool {
	return s.ReadBits(1) != 0
}

// ReadLimitedInt32 reads ceil(log2(max-min))+1 bits and offsets them by
// min, the engine's compact representation for a bounded integer.
func (s *BitStream) ReadLimitedInt32(min, max int32) int32 {
	rangeVal := uint32(max - min)
	n := BitsRequired(rangeVal)

	return min + int32(s.ReadBits(n))
}

// ReadUInt8 reads one byte's worth of bits.
func (s *BitStream) ReadUInt8() uint8 { return uint8(s.ReadBits(8)) }

// ReadUInt16 reads two bytes' worth of bits.
func (s *BitStream) ReadUInt16() uint16 { return uint16(s.ReadBits(16)) }

// ReadUInt32 reads a full 32-bit value.
func (s *BitStream) ReadUInt32() uint32 { return s.ReadBits(32) }

// ReadInt32 reads a full 32-bit value as signed.
func (s *BitStream) ReadInt32() int32 { return int32(s.ReadBits(32)) }

// ReadQuantizedFloat dequantizes a float using a precomputed quantizer.
func (s *BitStream) ReadQuantizedFloat(q FloatQuantizer) float64 {
	if q.Bits == 0 {
		return q.Min
	}

	return q.Dequantize(s.ReadBits(q.Bits))
}

// ReadLimitedFloat builds a quantizer on the fly and dequantizes through
// it; used for one-off bounded floats that aren't part of a reused
// Vector3Quantizer.
func (s *BitStream) ReadLimitedFloat(min, max, resolution float64) float64 {
	return s.ReadQuantizedFloat(NewFloatQuantizer(min, max, resolution))
}

// ReadVector3 dequantizes three axes through a Vector3Quantizer.
func (s *BitStream) ReadVector3(q Vector3Quantizer) Vector3 {
	return Vector3{
		X: s.ReadQuantizedFloat(q.X),
		Y: s.ReadQuantizedFloat(q.Y),
		Z: s.ReadQuantizedFloat(q.Z),
	}
}

// ReadFloat32 reads a raw, unquantized 32-bit IEEE-754 float, used for the
// handful of fields (map bounds) the wire carries at full precision rather
// than through a quantizer.
func (s *BitStream) ReadFloat32() float64 {
	return float64(math.Float32frombits(s.ReadBits(32)))
}

// ReadRawVector3 reads three consecutive raw floats, unquantized.
func (s *BitStream) ReadRawVector3() Vector3 {
	return Vector3{X: s.ReadFloat32(), Y: s.ReadFloat32(), Z: s.ReadFloat32()}
}

// ReadBytes aligns to the next byte boundary and copies n raw bytes.
func (s *BitStream) ReadBytes(n int) []byte {
	return s.ReadAlignedBytes(n)
}

// ReadString reads a leading "is empty" bool; if false, aligns, reads a
// 32-bit length, then that many 16-bit code units, decoded as UTF-16
// (the engine's native string representation). maxChars bounds the length
// against corrupt input; exceeding it sets sticky overflow and returns "".
func (s *BitStream) ReadString(maxChars int) string {
	if s.ReadBool() {
		return ""
	}

	s.ReadAlign()

	length := s.ReadInt32()
	if length < 0 || int(length) > maxChars {
		s.overflow = true
		s.bitPos = s.numBits

		return ""
	}

	units := make([]uint16, length)
	for i := range units {
		units[i] = uint16(s.ReadBits(16))
	}

	return string(utf16.Decode(units))
}

// ReadLimitedString reads a string whose characters are each packed with
// ceil(log2(max-min))+1 bits offset by min, rather than full 16-bit units.
func (s *BitStream) ReadLimitedString(minChar, maxChar rune) string {
	if s.ReadBool() {
		return ""
	}

	s.ReadAlign()

	length := s.ReadInt32()
	if length < 0 || length > 4096 {
		s.overflow = true
		s.bitPos = s.numBits

		return ""
	}

	n := BitsRequired(uint32(maxChar - minChar))
	out := make([]rune, length)

	for i := range out {
		out[i] = minChar + rune(s.ReadBits(n))
	}

	return string(out)
}

// ReadChar reads a single UTF-16 code unit.
func (s *BitStream) ReadChar() rune { return rune(s.ReadBits(16)) }

// ReadCheck consumes nothing: on the wire these are diagnostic checkpoint
// markers the source occasionally asserts against. Field ordering around
// them matters; the assertion itself does not need reproducing.
func (s *BitStream) ReadCheck() {}
