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

func TestByteStreamLittleEndian(t *testing.T) {
	s := NewByteStream([]byte{0x01, 0x02, 0x03, 0x04})

	got, err := s.ReadUInt32()
	if err != nil {
		t.Fatalf("ReadUInt32 error: %v", err)
	}

	if want := uint32(0x04030201); got != want {
		t.Errorf("ReadUInt32 = %#x, want %#x", got, want)
	}
}

func TestByteStreamShortBuffer(t *testing.T) {
	s := NewByteStream([]byte{0x01})

	if _, err := s.ReadUInt32(); err != ErrShortBuffer {
		t.Errorf("ReadUInt32 error = %v, want %v", err, ErrShortBuffer)
	}
}

func TestRead7BitEncodedInt(t *testing.T) {
	// 300 = 0b1_00101100 -> low 7 bits 0101100 with continuation, then 0b10
	s := NewByteStream([]byte{0xAC, 0x02})

	got, err := s.Read7BitEncodedInt()
	if err != nil {
		t.Fatalf("Read7BitEncodedInt error: %v", err)
	}

	if got != 300 {
		t.Errorf("Read7BitEncodedInt = %d, want 300", got)
	}
}

func TestByteStreamReadString(t *testing.T) {
	// length-prefix 5, then "hello"
	s := NewByteStream([]byte{0x05, 'h', 'e', 'l', 'l', 'o'})

	got, err := s.ReadString()
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}

	if got != "hello" {
		t.Errorf("ReadString = %q, want %q", got, "hello")
	}
}

func TestReadBytesAndSize(t *testing.T) {
	s := NewByteStream([]byte{0x03, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC})

	got, err := s.ReadBytesAndSize()
	if err != nil {
		t.Fatalf("ReadBytesAndSize error: %v", err)
	}

	want := []byte{0xAA, 0xBB, 0xCC}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}
