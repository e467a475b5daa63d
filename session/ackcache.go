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

// Package session owns the per-connection state that sits above the raw
// UNET wire format: the sliding-window ack cache and the tracker that
// resets everything on a fresh connect handshake.
package session

const cacheSize = 65536

// AckCache is a circular bitmap over the 16-bit message-id space with a
// sliding window bounded by head and tail, grounded on the engine's
// AcksCache. It records whether a reliable message id has already been
// delivered so the demultiplexer can drop duplicates.
type AckCache struct {
	label string
	acks  []bool

	windowSize int
	head       int
	tail       int
}

// NewAckCache constructs an empty cache. label is purely descriptive
// (mirrors the source's "INBOUND"/"OUTBOUND" constructor argument) and
// shows up in log fields.
func NewAckCache(label string) *AckCache {
	return &AckCache{
		label:      label,
		acks:       make([]bool, cacheSize),
		windowSize: cacheSize/2 - 1,
		head:       cacheSize/2 - 2,
		tail:       1,
	}
}

// Label returns the cache's descriptive direction label.
func (c *AckCache) Label() string { return c.label }

// distance returns the forward circular distance from a to b.
func distance(a, b int) int {
	d := b - a
	if d < 0 {
		d += cacheSize
	}

	return d
}

// ReadMessage records message id and reports whether it is new. It slides
// the window forward when id lands ahead of head, and rejects ids that
// fall more than windowSize behind the (possibly just-advanced) head.
// Returns true exactly once per id while the id remains inside the window.
func (c *AckCache) ReadMessage(id uint16) bool {
	idx := int(id)

	aheadOfHead := distance(c.head, idx)
	if aheadOfHead > 0 && aheadOfHead <= c.windowSize {
		// slide window forward, clearing the newly-entered slots so a
		// stale "seen" bit from a previous wrap can't falsely dedupe
		for i := (c.head + 1) % cacheSize; i != idx; i = (i + 1) % cacheSize {
			c.acks[i] = false
		}

		c.acks[idx] = false
		c.head = idx
		c.tail = (c.head - c.windowSize + cacheSize) % cacheSize
	}

	behindHead := distance(idx, c.head)
	if behindHead > c.windowSize {
		// too far behind the window to be meaningful; reject outright
		return false
	}

	if c.acks[idx] {
		return false
	}

	c.acks[idx] = true

	return true
}
