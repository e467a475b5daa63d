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

// Package unet implements the sub-message demultiplexer sitting on top of
// a session-bearing UDP datagram: packet/ack header parsing, the
// combined/reliable delimiter walk, and per-channel post-processing
// (fragment reassembly, reliable ack-gating, unreliable-ordered
// stripping). Grounded on unet.hpp's MessageExtractorBase/MessageExtractor
// and main.cpp's do_net channel dispatch.
package unet

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ucectoplasm/eft-packet/session"
)

// MaxChannel is the highest valid channel id: 3 reliable-fragmented
// channels plus 102 reliable/unreliable-ordered pairs.
const MaxChannel = 3 + 102*2

const (
	reliableDelimiter = 0xFF
	combinedDelimiter = 0xFE
)

// Header is the fixed packet/ack envelope preceding the sub-message
// stream, read after the session tracker has already consumed the
// 2-byte connection id.
type Header struct {
	PacketID     uint16
	SessionID    uint16
	AckMessageID uint16
	Acks         [4]uint32
}

const headerSize = 2 + 2 + 2 + 4*4

// ParseHeader reads the fixed envelope and returns the remaining
// sub-message bytes.
func ParseHeader(buf []byte) (Header, []byte, error) {
	if len(buf) < headerSize {
		return Header{}, nil, errors.Wrap(ErrShortSubMessage, "header")
	}

	h := Header{
		PacketID:     binary.BigEndian.Uint16(buf[0:2]),
		SessionID:    binary.BigEndian.Uint16(buf[2:4]),
		AckMessageID: binary.BigEndian.Uint16(buf[4:6]),
	}

	for i := 0; i < 4; i++ {
		off := 6 + i*4
		h.Acks[i] = binary.BigEndian.Uint32(buf[off : off+4])
	}

	return h, buf[headerSize:], nil
}

// emission is one sub-message as surfaced by the delimiter walk, before
// channel-specific post-processing strips its transport header.
type emission struct {
	channel int
	payload []byte
}

// walkSubMessages splits the post-header bytes into channel-tagged
// sub-messages per the combined/reliable delimiter rules, applying the
// reliable delimiter's own ack gate (duplicate UNET-transport-level
// deliveries) as it goes.
func walkSubMessages(buf []byte, direction *session.AckCache) ([]emission, error) {
	var out []emission

	pos := 0

	for pos < len(buf) {
		b := buf[pos]

		switch {
		case b == reliableDelimiter:
			if pos+2 > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "reliable delimiter channel")
			}

			channel := int(buf[pos+1])
			pos += 2

			if channel > MaxChannel {
				return nil, errors.Wrapf(ErrBadChannel, "channel %d", channel)
			}

			length, newPos, err := readLength(buf, pos)
			if err != nil {
				return nil, err
			}

			pos = newPos

			if pos+2 > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "reliable delimiter message id")
			}

			msgID := binary.BigEndian.Uint16(buf[pos : pos+2])
			pos += 2

			if pos+length > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "reliable delimiter body")
			}

			body := buf[pos : pos+length]
			pos += length

			if direction != nil && direction.ReadMessage(msgID) {
				out = append(out, emission{channel: channel, payload: body})
			}

		case b == combinedDelimiter:
			if pos+2 > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "combined delimiter channel")
			}

			channel := int(buf[pos+1])
			pos += 2

			if channel > MaxChannel {
				return nil, errors.Wrapf(ErrBadChannel, "channel %d", channel)
			}

			length, newPos, err := readLength(buf, pos)
			if err != nil {
				return nil, err
			}

			pos = newPos

			if pos+length > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "combined delimiter body")
			}

			out = append(out, emission{channel: channel, payload: buf[pos : pos+length]})
			pos += length

		default:
			channel := int(b)
			if channel > MaxChannel {
				return nil, errors.Wrapf(ErrBadChannel, "channel %d", channel)
			}

			pos++

			length, newPos, err := readLength(buf, pos)
			if err != nil {
				return nil, err
			}

			pos = newPos

			if pos+length > len(buf) {
				return nil, errors.Wrap(ErrShortSubMessage, "plain sub-message body")
			}

			out = append(out, emission{channel: channel, payload: buf[pos : pos+length]})
			pos += length
		}
	}

	return out, nil
}

// readLength decodes the 1-or-2-byte length prefix at pos: a high bit set
// on the first byte selects the 2-byte big-endian 15-bit form.
func readLength(buf []byte, pos int) (int, int, error) {
	if pos >= len(buf) {
		return 0, 0, errors.Wrap(ErrShortSubMessage, "length prefix")
	}

	if buf[pos]&0x80 != 0 {
		if pos+2 > len(buf) {
			return 0, 0, errors.Wrap(ErrShortSubMessage, "2-byte length prefix")
		}

		length := int(binary.BigEndian.Uint16(buf[pos:pos+2]) & 0x7FFF)

		return length, pos + 2, nil
	}

	return int(buf[pos]), pos + 1, nil
}

// channelHeaderSize is the fixed 3-byte header every non-delimiter-level
// channel payload carries: either {id, index, count} for fragmented
// channels, or a 2-byte ordering id plus one pad/flags byte for
// reliable/unreliable-ordered channels.
const channelHeaderSize = 3

// Message is one dispatch-ready payload surfaced by Demux, tagged with the
// UNET channel it arrived on. The channel is needed downstream to resolve
// which observer a player-frame GameUpdate belongs to (spec.md §4.2).
type Message struct {
	Channel int
	Payload []byte
}

// Demux parses a full session-bearing datagram and returns every
// dispatch-ready message: sub-messages whose channel post-processing
// completed (reliable ack-gate passed, or a fragment set finished
// reassembling).
func Demux(buf []byte, direction *session.AckCache, fragments *session.FragmentTable) ([]Message, error) {
	_, body, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	emissions, err := walkSubMessages(body, direction)
	if err != nil {
		return nil, err
	}

	var ready []Message

	for _, e := range emissions {
		switch {
		case e.channel <= 2:
			if len(e.payload) < channelHeaderSize {
				return nil, errors.Wrap(ErrShortSubMessage, "fragment header")
			}

			fragID := e.payload[0]
			index := int(e.payload[1])
			count := int(e.payload[2])
			rest := e.payload[channelHeaderSize:]

			key := session.FragmentKey(e.channel, fragID)

			entry := fragments.GetOrCreate(key, count)
			entry.SetPart(index, rest)

			if entry.Complete() {
				ready = append(ready, Message{Channel: e.channel, Payload: entry.Assemble()})
				fragments.Delete(key)
			}

		case e.channel%2 == 1:
			// Reliable, ordered: 2-byte id plus one header byte, all
			// stripped together once the per-channel ack gate passes.
			if len(e.payload) < channelHeaderSize {
				return nil, errors.Wrap(ErrShortSubMessage, "reliable channel header")
			}

			if direction == nil {
				continue
			}

			id := binary.BigEndian.Uint16(e.payload[0:2])
			if direction.ReadMessage(id) {
				ready = append(ready, Message{Channel: e.channel, Payload: e.payload[channelHeaderSize:]})
			}

		default:
			// Unreliable-ordered: same 3-byte header shape, no dedup.
			if len(e.payload) < channelHeaderSize {
				return nil, errors.Wrap(ErrShortSubMessage, "unreliable channel header")
			}

			ready = append(ready, Message{Channel: e.channel, Payload: e.payload[channelHeaderSize:]})
		}
	}

	return ready, nil
}
