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

import (
	"encoding/binary"
	"sync"

	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/world"
)

// connectOpcode is the UNET SystemRequest::kConnect value that, paired
// with a zero connection id, signals a new session handshake.
const connectOpcode = 1

// Session is a per-capture logical connection: directional ack caches, a
// fragment table, the server address it is locked to, and the world it
// owns. Destroyed implicitly when a new session begins.
type Session struct {
	ServerIP  string
	Inbound   *AckCache
	Outbound  *AckCache
	Fragments *FragmentTable
	World     *world.Map

	// Encrypted is set once ServerInit reports its encryption flag; per
	// spec.md §4.6, GameUpdate frames are skipped for the rest of the
	// session once this is true.
	Encrypted bool
}

// Tracker detects session boundaries from connect handshakes and filters
// datagrams against the locked server address, per spec.md §4.1.
type Tracker struct {
	mu      sync.Mutex
	current *Session
	log     *zap.Logger
}

// NewTracker constructs a tracker with no active session.
func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}

	return &Tracker{log: log}
}

// Current returns the active session, or nil if none has started.
func (t *Tracker) Current() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.current
}

// Accept inspects a raw datagram payload and returns the session it
// belongs to plus whether it should proceed to the UNET demultiplexer.
// dstAddr/srcAddr are the IP addresses the capture adapter observed;
// replay is true when re-synthesizing from a dump file, which (per
// spec.md §4.1) bypasses the server-address filter.
func (t *Tracker) Accept(payload []byte, srcAddr, dstAddr string, replay bool) (*Session, bool) {
	if len(payload) <= 3 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	connID := binary.BigEndian.Uint16(payload[0:2])

	if connID == 0 {
		if payload[2] == connectOpcode {
			serverIP := dstAddr
			if serverIP == "" {
				serverIP = "LOCAL_REPLAY"
			}

			t.log.Info("new session",
				zap.String("server_ip", serverIP),
			)

			t.current = &Session{
				ServerIP:  serverIP,
				Inbound:   NewAckCache("INBOUND"),
				Outbound:  NewAckCache("OUTBOUND"),
				Fragments: NewFragmentTable(),
				World:     world.NewMap(),
			}
		}

		return nil, false
	}

	if t.current == nil {
		return nil, false
	}

	if !replay &&
		t.current.ServerIP != srcAddr &&
		t.current.ServerIP != dstAddr &&
		t.current.ServerIP != "LOCAL_REPLAY" {
		return nil, false
	}

	return t.current, true
}
