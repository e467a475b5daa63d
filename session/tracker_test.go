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

func connectHandshake() []byte {
	return []byte{0x00, 0x00, connectOpcode, 0x00}
}

func TestTrackerIgnoresShortPayload(t *testing.T) {
	tr := NewTracker(nil)

	if _, ok := tr.Accept([]byte{1, 2}, "a", "b", false); ok {
		t.Errorf("Accept on a <=3 byte payload should be dropped")
	}
}

func TestTrackerStartsSessionOnConnect(t *testing.T) {
	tr := NewTracker(nil)

	if tr.Current() != nil {
		t.Fatalf("Current() before any connect should be nil")
	}

	if _, ok := tr.Accept(connectHandshake(), "10.0.0.1", "10.0.0.2", false); ok {
		t.Errorf("the connect handshake itself is never forwarded to the demultiplexer")
	}

	if tr.Current() == nil {
		t.Fatalf("Current() after a connect handshake should be non-nil")
	}
}

func TestTrackerFiltersUnrelatedServerIP(t *testing.T) {
	tr := NewTracker(nil)

	tr.Accept(connectHandshake(), "10.0.0.1", "10.0.0.2", false)

	payload := []byte{0x00, 0x01, 0x02, 0x03}

	if _, ok := tr.Accept(payload, "9.9.9.9", "8.8.8.8", false); ok {
		t.Errorf("Accept should filter datagrams unrelated to the locked server IP")
	}

	if _, ok := tr.Accept(payload, "10.0.0.1", "10.0.0.2", false); !ok {
		t.Errorf("Accept should pass datagrams matching the locked server IP")
	}
}

func TestTrackerReplayBypassesServerIPFilter(t *testing.T) {
	tr := NewTracker(nil)

	tr.Accept(connectHandshake(), "", "LOCAL_REPLAY", true)

	payload := []byte{0x00, 0x01, 0x02, 0x03}

	if _, ok := tr.Accept(payload, "", "", true); !ok {
		t.Errorf("replay mode should bypass the server-address filter")
	}
}

func TestTrackerResetsOnNewConnect(t *testing.T) {
	tr := NewTracker(nil)

	tr.Accept(connectHandshake(), "10.0.0.1", "10.0.0.2", false)
	first := tr.Current()

	tr.Accept(connectHandshake(), "10.0.0.5", "10.0.0.6", false)
	second := tr.Current()

	if first == second {
		t.Errorf("a new connect handshake should allocate a fresh session")
	}

	if second.ServerIP != "10.0.0.6" {
		t.Errorf("ServerIP = %q, want %q", second.ServerIP, "10.0.0.6")
	}
}
