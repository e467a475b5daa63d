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

package session

import "testing"

func TestAckCacheFirstReadIsNew(t *testing.T) {
	c := NewAckCache("TEST")

	if !c.ReadMessage(5) {
		t.Fatalf("ReadMessage(5) on fresh cache = false, want true")
	}
}

func TestAckCacheDuplicateRejected(t *testing.T) {
	c := NewAckCache("TEST")

	c.ReadMessage(5)

	if c.ReadMessage(5) {
		t.Errorf("ReadMessage(5) repeated = true, want false (duplicate)")
	}
}

func TestAckCacheWindowSlidesForward(t *testing.T) {
	c := NewAckCache("TEST")

	start := c.head

	if !c.ReadMessage(uint16(start + 10)) {
		t.Fatalf("ReadMessage ahead of head should be accepted")
	}

	if c.head != start+10 {
		t.Errorf("head = %d, want %d after sliding forward", c.head, start+10)
	}
}

func TestAckCacheFarBehindWindowRejected(t *testing.T) {
	c := NewAckCache("TEST")

	c.ReadMessage(uint16(c.head + 100))

	farBehind := uint16(c.tail - 10 + cacheSize)

	if c.ReadMessage(farBehind) {
		t.Errorf("ReadMessage far behind window = true, want false")
	}
}

func TestAckCacheReadOncePerID(t *testing.T) {
	c := NewAckCache("TEST")

	seen := map[uint16]bool{}

	for i := uint16(0); i < 50; i++ {
		id := uint16(c.head) + i
		if c.ReadMessage(id) == seen[id] {
			t.Fatalf("ReadMessage(%d) violated read-once invariant", id)
		}

		seen[id] = true
	}
}
