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

func TestReadBitsAcrossByteBoundary(t *testing.T) {
	// 0xB4 0x2F = 1011_0100 0010_1111
	r := NewBitReader([]byte{0xB4, 0x2F})

	if got := r.ReadBits(4); got != 0xB {
		t.Errorf("ReadBits(4) = %#x, want %#x", got, 0xB)
	}

	if got := r.ReadBits(8); got != 0x42 {
		t.Errorf("ReadBits(8) = %#x, want %#x", got, 0x42)
	}

	if got := r.ReadBits(4); got != 0xF {
		t.Errorf("ReadBits(4) = %#x, want %#x", got, 0xF)
	}

	if r.Overflowed() {
		t.Errorf("Overflowed() = true, want false")
	}
}

func TestReadBitsOverflowSticky(t *testing.T) {
	r := NewBitReader([]byte{0xFF})

	if got := r.ReadBits(4); got != 0xF {
		t.Errorf("ReadBits(4) = %#x, want %#x", got, 0xF)
	}

	if got := r.ReadBits(8); got != 0 {
		t.Errorf("ReadBits(8) after overflow = %v, want 0", got)
	}

	if !r.Overflowed() {
		t.Errorf("Overflowed() = false, want true")
	}

	// overflow is sticky: further reads keep returning zero
	if got := r.ReadBits(1); got != 0 {
		t.Errorf("ReadBits(1) after overflow = %v, want 0", got)
	}
}

func TestReadAlignAndBytes(t *testing.T) {
	r := NewBitReader([]byte{0xFF, 0xAA, 0xBB, 0xCC})

	if got := r.ReadBits(3); got != 0b111 {
		t.Errorf("ReadBits(3) = %#b, want %#b", got, 0b111)
	}

	out := r.ReadAlignedBytes(3)
	want := []byte{0xAA, 0xBB, 0xCC}

	if len(out) != len(want) {
		t.Fatalf("ReadAlignedBytes len = %d, want %d", len(out), len(want))
	}

	for i := range want {
		if out[i] != want[i] {
			t.Errorf("ReadAlignedBytes[%d] = %#x, want %#x", i, out[i], want[i])
		}
	}
}

func TestLimitedInt32(t *testing.T) {
	// range 0..3 needs BitsRequired(3) = Log2Ceil(3)+1 = 2+1 = 3 bits.
	// encode value 2 as a 3-bit field: 010
	r := NewBitStream([]byte{0b010_00000})

	got := r.ReadLimitedInt32(0, 3)
	if got != 2 {
		t.Errorf("ReadLimitedInt32 = %d, want 2", got)
	}
}

func TestBitsRequired(t *testing.T) {
	cases := []struct {
		rangeVal uint32
		want     int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{2047, 12},
	}

	for _, c := range cases {
		if got := BitsRequired(c.rangeVal); got != c.want {
			t.Errorf("BitsRequired(%d) = %d, want %d", c.rangeVal, got, c.want)
		}
	}
}

func TestReadStringEmptyFlag(t *testing.T) {
	// leading bool = true (bit 1) means "empty string"
	r := NewBitStream([]byte{0b1_0000000})

	got := r.ReadString(256)
	if got != "" {
		t.Errorf("ReadString = %q, want empty", got)
	}
}
