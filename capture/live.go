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

package capture

import (
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Source is anything the pipeline can pull DatagramRecords from: a
// Replayer, or a live UDPAdapter. Both satisfy it with the same blocking
// Next() contract.
type Source interface {
	Next() (DatagramRecord, error)
}

// TeeSource wraps a Source and appends every record it yields to a dump
// file via WriteDump before returning it, letting a live capture run be
// recorded for later replay at the same time it feeds the pipeline —
// the original's `dump_packets` flag (main.cpp's argv[2]).
type TeeSource struct {
	Source
	w io.Writer
}

// NewTeeSource wraps src so every record is also appended to w.
func NewTeeSource(src Source, w io.Writer) *TeeSource {
	return &TeeSource{Source: src, w: w}
}

// Next reads the next record from the wrapped source and writes it to the
// dump before returning it.
func (t *TeeSource) Next() (DatagramRecord, error) {
	rec, err := t.Source.Next()
	if err != nil {
		return rec, err
	}

	if err := WriteDump(t.w, rec); err != nil {
		return rec, errors.Wrap(err, "capture: tee dump write")
	}

	return rec, nil
}

// UDPAdapter is a best-effort live source: it listens on a local UDP
// socket and surfaces every datagram it receives as inbound. True
// promiscuous link-layer capture needs a libpcap binding, which this
// module does not depend on (see DESIGN.md); this adapter instead fits
// the case where traffic is already being relayed or mirrored to a local
// port the process can bind.
type UDPAdapter struct {
	conn    *net.UDPConn
	started time.Time
}

// NewUDPAdapter binds addr (e.g. "0.0.0.0:0") and returns an adapter
// reading from it.
func NewUDPAdapter(addr string) (*UDPAdapter, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "capture: resolve udp address")
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, errors.Wrap(err, "capture: listen udp")
	}

	return &UDPAdapter{conn: conn, started: time.Now()}, nil
}

const maxDatagramSize = 65536

// Next blocks until a datagram arrives and returns it as an inbound
// record timestamped relative to adapter construction.
func (a *UDPAdapter) Next() (DatagramRecord, error) {
	buf := make([]byte, maxDatagramSize)

	n, remote, err := a.conn.ReadFromUDP(buf)
	if err != nil {
		return DatagramRecord{}, errors.Wrap(err, "capture: read udp datagram")
	}

	local := a.conn.LocalAddr().String()

	return DatagramRecord{
		TimestampMs: int32(time.Since(a.started).Milliseconds()),
		Outbound:    false,
		Src:         remote.String(),
		Dst:         local,
		Payload:     append([]byte(nil), buf[:n]...),
	}, nil
}

// Close releases the underlying socket.
func (a *UDPAdapter) Close() error {
	return a.conn.Close()
}
