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

// Package capture implements the three ways a datagram stream reaches the
// pipeline: a live adapter, an append-only dump writer, and a time-scaled
// dump replayer. Grounded on main.cpp's inline record read/write loop and
// its GetTickCount-based replay pacing.
package capture

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// DatagramRecord is one observed (or replayed) UDP datagram, matching the
// capture adapter contract in spec.md §6.
type DatagramRecord struct {
	TimestampMs int32
	Outbound    bool
	Src         string
	Dst         string
	Payload     []byte
}

// WriteDump appends rec to w in the on-disk record format:
//
//	u8 outbound, i32 timestamp_ms, i32 payload_len, u8[payload_len] payload
//
// Src/Dst are not persisted — replay mode re-establishes session identity
// from the connect handshake rather than from addressing.
func WriteDump(w io.Writer, rec DatagramRecord) error {
	var outbound uint8
	if rec.Outbound {
		outbound = 1
	}

	if _, err := w.Write([]byte{outbound}); err != nil {
		return errors.Wrap(err, "capture: write outbound flag")
	}

	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(rec.TimestampMs))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(rec.Payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "capture: write record header")
	}

	if _, err := w.Write(rec.Payload); err != nil {
		return errors.Wrap(err, "capture: write payload")
	}

	return nil
}

// ReadDump reads one record from r, returning io.EOF once the stream is
// exhausted at a record boundary.
func ReadDump(r io.Reader) (DatagramRecord, error) {
	var flag [1]byte

	if _, err := io.ReadFull(r, flag[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return DatagramRecord{}, io.EOF
		}

		return DatagramRecord{}, errors.Wrap(err, "capture: read outbound flag")
	}

	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return DatagramRecord{}, errors.Wrap(err, "capture: read record header")
	}

	timestampMs := int32(binary.LittleEndian.Uint32(hdr[0:4]))
	payloadLen := int32(binary.LittleEndian.Uint32(hdr[4:8]))

	if payloadLen < 0 {
		return DatagramRecord{}, errors.New("capture: negative payload length in dump")
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return DatagramRecord{}, errors.Wrap(err, "capture: read payload")
	}

	return DatagramRecord{
		TimestampMs: timestampMs,
		Outbound:    flag[0] != 0,
		Payload:     payload,
	}, nil
}
