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

import "testing"

func TestFloatQuantizerRoundTrip(t *testing.T) {
	q := NewFloatQuantizer(-100, 100, 0.001953125)

	if q.MaxInteger == 0 {
		t.Fatalf("MaxInteger = 0, want > 0")
	}

	for _, v := range []uint32{0, 1, q.MaxInteger / 2, q.MaxInteger} {
		value := q.Dequantize(v)
		got := q.Quantize(value)

		if got != v {
			t.Errorf("round trip %d -> %v -> %d, want %d", v, value, got, v)
		}
	}
}

func TestFloatQuantizerZeroRange(t *testing.T) {
	q := NewFloatQuantizer(5, 5, 0.1)

	if q.Bits != 0 {
		t.Errorf("Bits = %d, want 0 for zero-range quantizer", q.Bits)
	}

	if got := q.Dequantize(0); got != 5 {
		t.Errorf("Dequantize(0) = %v, want 5", got)
	}
}

func TestVector3QuantizerAxes(t *testing.T) {
	q := NewPositionDeltaQuantizer()

	if q.X.Min != -1 || q.X.Max != 1 {
		t.Errorf("X quantizer range = [%v,%v], want [-1,1]", q.X.Min, q.X.Max)
	}

	if q.Y.Resolution != PositionResY {
		t.Errorf("Y resolution = %v, want %v", q.Y.Resolution, PositionResY)
	}
}

func TestLootDeltaQuantizerWiderRange(t *testing.T) {
	obs := NewPositionDeltaQuantizer()
	loot := NewLootDeltaQuantizer()

	if loot.X.Max <= obs.X.Max {
		t.Errorf("loot delta range (%v) should exceed observer delta range (%v)", loot.X.Max, obs.X.Max)
	}
}
