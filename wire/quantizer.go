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

import "math/bits"

// Log2Ceil returns the smallest k such that 2^k >= n. Log2Ceil(0) and
// Log2Ceil(1) are both 0.
func Log2Ceil(n uint32) int {
	if n <= 1 {
		return 0
	}

	return bits.Len32(n - 1)
}

// BitsRequired returns the number of bits needed to represent any value in
// [0, rangeVal], i.e. ceil(log2(rangeVal)) + 1 — matching the engine's
// BitRequired helper used for both limited integers and quantized floats.
func BitsRequired(rangeVal uint32) int {
	return Log2Ceil(rangeVal) + 1
}

// FloatQuantizer is an immutable (min, max, resolution, bits, delta,
// max_integer) tuple describing how a float in [min, max] is packed into an
// integer of Bits width.
type FloatQuantizer struct {
	Min, Max   float64
	Resolution float64
	Bits       int
	Delta      float64
	MaxInteger uint32
}

// NewFloatQuantizer derives Bits, Delta and MaxInteger from min/max/res.
func NewFloatQuantizer(min, max, resolution float64) FloatQuantizer {
	delta := max - min

	var bitCount int

	if delta > 0 && resolution > 0 {
		steps := delta / resolution
		bitCount = BitsRequired(uint32(ceilPositive(steps)))
	}

	var maxInt uint32
	if bitCount > 0 {
		maxInt = (uint32(1) << uint(bitCount)) - 1
	}

	return FloatQuantizer{
		Min:        min,
		Max:        max,
		Resolution: resolution,
		Bits:       bitCount,
		Delta:      delta,
		MaxInteger: maxInt,
	}
}

func ceilPositive(v float64) float64 {
	i := float64(int64(v))
	if v > i {
		return i + 1
	}

	return i
}

// Dequantize maps an integer in [0, MaxInteger] back to a float in
// [Min, Max].
func (q FloatQuantizer) Dequantize(v uint32) float64 {
	if q.MaxInteger == 0 {
		return q.Min
	}

	return float64(v)/float64(q.MaxInteger)*q.Delta + q.Min
}

// Quantize maps a float in [Min, Max] to an integer in [0, MaxInteger],
// clamping out-of-range input. It is the inverse of Dequantize and is used
// by tests to verify the round-trip invariant, not by the wire decoder
// itself (the decoder only ever dequantizes).
func (q FloatQuantizer) Quantize(value float64) uint32 {
	if q.MaxInteger == 0 {
		return 0
	}

	if value < q.Min {
		value = q.Min
	}

	if value > q.Max {
		value = q.Max
	}

	ratio := (value - q.Min) / q.Delta

	return uint32(ratio*float64(q.MaxInteger) + 0.5)
}

// Vector3 is a plain 3-float vector; position/rotation payloads both decode
// into this type.
type Vector3 struct {
	X, Y, Z float64
}

// Vector3Add returns the component-wise sum of a and b, used to apply a
// decoded position delta to a previously tracked position.
func Vector3Add(a, b Vector3) Vector3 {
	return Vector3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Vector3Quantizer composes three independent FloatQuantizers, one per
// axis, matching the source's Vector3Quantizer.
type Vector3Quantizer struct {
	X, Y, Z FloatQuantizer
}

// NewVector3Quantizer builds a per-axis quantizer over the box [min, max]
// with independent per-axis resolutions.
func NewVector3Quantizer(min, max Vector3, resX, resY, resZ float64) Vector3Quantizer {
	return Vector3Quantizer{
		X: NewFloatQuantizer(min.X, max.X, resX),
		Y: NewFloatQuantizer(min.Y, max.Y, resY),
		Z: NewFloatQuantizer(min.Z, max.Z, resZ),
	}
}

// Position axis resolutions shared by every position quantizer variant.
const (
	PositionResX = 0.001953125
	PositionResY = 0.0009765625
	PositionResZ = 0.001953125
)

// NewPositionDeltaQuantizer builds the fixed [-1, 1] delta quantizer used
// for per-frame observer position updates (spec.md §4.7).
func NewPositionDeltaQuantizer() Vector3Quantizer {
	return NewVector3Quantizer(
		Vector3{X: -1, Y: -1, Z: -1},
		Vector3{X: 1, Y: 1, Z: 1},
		PositionResX, PositionResY, PositionResZ,
	)
}

// NewLootDeltaQuantizer builds the [-10, 10] delta quantizer used for the
// loot-position-sync section of a world GameUpdate frame (SPEC_FULL §3.2 /
// DESIGN.md OQ-1) — a wider range than observer motion because a loose item
// can be thrown or knocked further between sync frames.
func NewLootDeltaQuantizer() Vector3Quantizer {
	return NewVector3Quantizer(
		Vector3{X: -10, Y: -10, Z: -10},
		Vector3{X: 10, Y: 10, Z: 10},
		PositionResX, PositionResY, PositionResZ,
	)
}

// NewAbsolutePositionQuantizer builds the map-bounds quantizer used when a
// GameUpdate frame signals an absolute (non-delta) position, per spec.md
// §4.7 "Absolute" mode.
func NewAbsolutePositionQuantizer(min, max Vector3) Vector3Quantizer {
	return NewVector3Quantizer(min, max, PositionResX, PositionResY, PositionResZ)
}

// NewRotationQuantizer builds the fixed yaw/pitch quantizer: yaw in
// [0, 360], pitch in [-90, 90], both at 0.015625 resolution; Z is left as
// the zero quantizer.
func NewRotationQuantizer() Vector3Quantizer {
	return Vector3Quantizer{
		X: NewFloatQuantizer(0, 360, 0.015625),
		Y: NewFloatQuantizer(-90, 90, 0.015625),
	}
}
