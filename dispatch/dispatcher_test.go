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

package dispatch

import (
	"encoding/binary"
	"testing"

	"github.com/ucectoplasm/eft-packet/session"
	"github.com/ucectoplasm/eft-packet/world"
)

// frame builds one TLV frame: 2-byte little-endian length (2 + len(body)),
// 2-byte little-endian signed code, then body, then two trailing bytes so
// that the next frame starts length+4 bytes after this one.
func frame(code int16, body []byte) []byte {
	out := make([]byte, 4+len(body)+2)
	binary.LittleEndian.PutUint16(out[0:2], uint16(2+len(body)))
	binary.LittleEndian.PutUint16(out[2:4], uint16(code))
	copy(out[4:], body)

	return out
}

// int32BE encodes v the way the bit stream's ReadInt32 reads it: most
// significant byte first.
func int32BE(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))

	return b
}

func newTestContext() Context {
	return Context{
		Session: &session.Session{World: world.NewMap()},
	}
}

func TestDispatchUnknownCodeIsIgnored(t *testing.T) {
	ctx := newTestContext()

	payload := frame(9999, []byte{1, 2, 3})

	if err := Dispatch(ctx, Inbound, payload); err != nil {
		t.Fatalf("Dispatch with an unrecognized code returned an error: %v", err)
	}
}

func TestDispatchMultipleFramesInOnePayload(t *testing.T) {
	ctx := newTestContext()
	ctx.Session.World.CreateObserver(4, &world.Observer{CID: 4, Kind: world.KindPlayer})

	unspawnBody := int32BE(4)

	payload := append(frame(codeBattleEye, nil), frame(codeObserverUnspawn, unspawnBody)...)

	if err := Dispatch(ctx, Inbound, payload); err != nil {
		t.Fatalf("Dispatch returned an error: %v", err)
	}

	obs, ok := ctx.Session.World.Observer(4)
	if !ok {
		t.Fatalf("observer 4 missing after Dispatch")
	}

	if !obs.IsUnspawned {
		t.Errorf("observer 4 IsUnspawned = false, want true after an ObserverUnspawn frame")
	}
}

func TestDispatchObserverUnspawnMissingCIDIsNoop(t *testing.T) {
	ctx := newTestContext()

	payload := frame(codePlayerUnspawn, int32BE(99))

	if err := Dispatch(ctx, Inbound, payload); err != nil {
		t.Fatalf("Dispatch returned an error for an unknown cid: %v", err)
	}
}

func TestDispatchNegativeBodyLengthIsRejected(t *testing.T) {
	ctx := newTestContext()

	payload := make([]byte, 4)
	binary.LittleEndian.PutUint16(payload[0:2], 0) // frameLen=0 => bodyLen=-2
	binary.LittleEndian.PutUint16(payload[2:4], uint16(codeBattleEye))

	if err := Dispatch(ctx, Inbound, payload); err == nil {
		t.Fatalf("Dispatch should reject a frame whose declared length is negative")
	}
}

func TestDispatchOverrunFrameIsRejected(t *testing.T) {
	ctx := newTestContext()

	payload := make([]byte, 4)
	binary.LittleEndian.PutUint16(payload[0:2], 200) // claims far more body than present
	binary.LittleEndian.PutUint16(payload[2:4], uint16(codeBattleEye))

	if err := Dispatch(ctx, Inbound, payload); err == nil {
		t.Fatalf("Dispatch should reject a frame whose body overruns the payload")
	}
}

func TestDispatchEmptyPayloadIsNoop(t *testing.T) {
	ctx := newTestContext()

	if err := Dispatch(ctx, Inbound, nil); err != nil {
		t.Errorf("Dispatch on an empty payload returned an error: %v", err)
	}
}
