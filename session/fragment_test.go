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
	"bytes"
	"testing"
)

func TestFragmentKeyPacksChannelAndID(t *testing.T) {
	got := FragmentKey(2, 7)

	want := 2<<8 | 7
	if got != want {
		t.Errorf("FragmentKey(2, 7) = %d, want %d", got, want)
	}
}

func TestFragmentEntryIncompleteUntilAllParts(t *testing.T) {
	e := NewFragmentEntry(3)

	e.SetPart(0, []byte("a"))
	e.SetPart(2, []byte("c"))

	if e.Complete() {
		t.Fatalf("Complete() = true, want false with index 1 missing")
	}

	e.SetPart(1, []byte("b"))

	if !e.Complete() {
		t.Fatalf("Complete() = false, want true once every index is set")
	}

	if got := e.Assemble(); !bytes.Equal(got, []byte("abc")) {
		t.Errorf("Assemble() = %q, want %q", got, "abc")
	}
}

func TestFragmentEntryOutOfRangeIndexDropped(t *testing.T) {
	e := NewFragmentEntry(2)

	e.SetPart(5, []byte("ignored"))
	e.SetPart(-1, []byte("ignored"))

	if e.Complete() {
		t.Fatalf("Complete() = true after only out-of-range writes, want false")
	}
}

func TestFragmentTableGetOrCreate(t *testing.T) {
	tbl := NewFragmentTable()

	key := FragmentKey(0, 3)

	e1 := tbl.GetOrCreate(key, 2)
	e2 := tbl.GetOrCreate(key, 2)

	if e1 != e2 {
		t.Errorf("GetOrCreate returned different entries for the same key")
	}

	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}

	tbl.Delete(key)

	if tbl.Len() != 0 {
		t.Errorf("Len() = %d after Delete, want 0", tbl.Len())
	}

	if _, ok := tbl.Get(key); ok {
		t.Errorf("Get(key) found an entry after Delete")
	}
}
