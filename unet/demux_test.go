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

package unet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ucectoplasm/eft-packet/session"
)

func datagram(body []byte) []byte {
	header := make([]byte, headerSize)
	return append(header, body...)
}

func TestDemuxPlainUnreliableOrderedStripsHeader(t *testing.T) {
	// channel 4 (even, >2): unreliable-ordered, 3-byte header stripped.
	body := []byte{4, 5, 0xAA, 0xBB, 0xCC, 'A', 'B'}

	messages, err := Demux(datagram(body), nil, session.NewFragmentTable())
	if err != nil {
		t.Fatalf("Demux returned an error: %v", err)
	}

	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}

	if messages[0].Channel != 4 {
		t.Errorf("Channel = %d, want 4", messages[0].Channel)
	}

	if !bytes.Equal(messages[0].Payload, []byte("AB")) {
		t.Errorf("Payload = %q, want %q", messages[0].Payload, "AB")
	}
}

func TestDemuxFragmentReassembly(t *testing.T) {
	// channel 0 (<=2): fragmented, two parts of the same fragmented id.
	part0 := []byte{0, 5, 9, 0, 2, 'a', 'b'}
	part1 := []byte{0, 5, 9, 1, 2, 'c', 'd'}

	body := append(append([]byte{}, part0...), part1...)

	fragments := session.NewFragmentTable()

	messages, err := Demux(datagram(body), nil, fragments)
	if err != nil {
		t.Fatalf("Demux returned an error: %v", err)
	}

	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1 (only complete once both parts arrive)", len(messages))
	}

	if messages[0].Channel != 0 {
		t.Errorf("Channel = %d, want 0", messages[0].Channel)
	}

	if !bytes.Equal(messages[0].Payload, []byte("abcd")) {
		t.Errorf("Payload = %q, want %q", messages[0].Payload, "abcd")
	}

	if fragments.Len() != 0 {
		t.Errorf("fragment table still has %d entries, want 0 after reassembly", fragments.Len())
	}
}

func TestDemuxFragmentIncompleteYieldsNothing(t *testing.T) {
	// Only part 0 of a 2-part fragmented message arrives.
	body := []byte{0, 5, 9, 0, 2, 'a', 'b'}

	fragments := session.NewFragmentTable()

	messages, err := Demux(datagram(body), nil, fragments)
	if err != nil {
		t.Fatalf("Demux returned an error: %v", err)
	}

	if len(messages) != 0 {
		t.Errorf("len(messages) = %d, want 0 with a fragment still missing", len(messages))
	}

	if fragments.Len() != 1 {
		t.Errorf("fragment table has %d entries, want 1 in-flight entry", fragments.Len())
	}
}

func TestDemuxReliableOrderedGatesOnAckCache(t *testing.T) {
	// channel 5 (odd): reliable-ordered, 2-byte id + 1 header byte + body,
	// deduplicated through the per-direction AckCache.
	body := []byte{5, 5, 0x00, 0x01, 0x00, 'h', 'i'}

	cache := session.NewAckCache("TEST")

	messages, err := Demux(datagram(body), cache, session.NewFragmentTable())
	if err != nil {
		t.Fatalf("Demux returned an error: %v", err)
	}

	if len(messages) != 1 || !bytes.Equal(messages[0].Payload, []byte("hi")) {
		t.Fatalf("first delivery = %+v, want one message with payload %q", messages, "hi")
	}

	// A duplicate delivery of the same message id must be dropped.
	messages, err = Demux(datagram(body), cache, session.NewFragmentTable())
	if err != nil {
		t.Fatalf("Demux returned an error on redelivery: %v", err)
	}

	if len(messages) != 0 {
		t.Errorf("redelivered message id was not deduplicated: got %d messages", len(messages))
	}
}

func TestDemuxReliableOrderedNilDirectionIsSkipped(t *testing.T) {
	body := []byte{5, 5, 0x00, 0x01, 0x00, 'h', 'i'}

	messages, err := Demux(datagram(body), nil, session.NewFragmentTable())
	if err != nil {
		t.Fatalf("Demux returned an error: %v", err)
	}

	if len(messages) != 0 {
		t.Errorf("len(messages) = %d, want 0 without an ack cache to gate on", len(messages))
	}
}

func TestDemuxBadChannelIsRejected(t *testing.T) {
	body := []byte{byte(MaxChannel + 1), 0}

	_, err := Demux(datagram(body), nil, session.NewFragmentTable())
	if err == nil {
		t.Fatalf("Demux should reject a channel id past MaxChannel")
	}

	if !errors.Is(err, ErrBadChannel) {
		t.Errorf("error = %v, want it to wrap ErrBadChannel", err)
	}
}

func TestDemuxShortHeaderIsRejected(t *testing.T) {
	_, err := Demux([]byte{1, 2, 3}, nil, session.NewFragmentTable())
	if err == nil {
		t.Fatalf("Demux should reject a datagram shorter than the fixed header")
	}

	if !errors.Is(err, ErrShortSubMessage) {
		t.Errorf("error = %v, want it to wrap ErrShortSubMessage", err)
	}
}
