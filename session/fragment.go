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

// FragmentKey packs a channel id and fragmented-message id into the single
// key the fragment table is indexed by, per spec.md §3 ("keyed by
// (channel << 8) | fragmented-message-id").
func FragmentKey(channel int, fragmentedMessageID uint8) int {
	return int(fragmentedMessageID) | channel<<8
}

// FragmentEntry buffers the parts of a reliable-fragmented message until
// every index has arrived.
type FragmentEntry struct {
	Expected int
	Parts    [][]byte
}

// NewFragmentEntry allocates a sparse parts array sized to expected.
func NewFragmentEntry(expected int) *FragmentEntry {
	return &FragmentEntry{
		Expected: expected,
		Parts:    make([][]byte, expected),
	}
}

// SetPart stores the payload for index, dropping it silently if index is
// out of range (spec.md §7: "broken fragment ... drop fragment, keep
// others").
func (e *FragmentEntry) SetPart(index int, data []byte) {
	if index < 0 || index >= len(e.Parts) {
		return
	}

	e.Parts[index] = data
}

// Complete reports whether every part has arrived.
func (e *FragmentEntry) Complete() bool {
	for _, p := range e.Parts {
		if p == nil {
			return false
		}
	}

	return true
}

// Assemble concatenates parts in index order. Callers must check Complete
// first; Assemble does not itself verify completeness.
func (e *FragmentEntry) Assemble() []byte {
	total := 0
	for _, p := range e.Parts {
		total += len(p)
	}

	out := make([]byte, 0, total)
	for _, p := range e.Parts {
		out = append(out, p...)
	}

	return out
}

// FragmentTable is the per-session map of in-flight fragmented messages,
// single-writer (processing thread only) per spec.md §5.
type FragmentTable struct {
	entries map[int]*FragmentEntry
}

// NewFragmentTable returns an empty table.
func NewFragmentTable() *FragmentTable {
	return &FragmentTable{entries: make(map[int]*FragmentEntry)}
}

// Get returns the entry for key if present.
func (t *FragmentTable) Get(key int) (*FragmentEntry, bool) {
	e, ok := t.entries[key]

	return e, ok
}

// GetOrCreate returns the existing entry for key, or creates one sized to
// expected if absent.
func (t *FragmentTable) GetOrCreate(key int, expected int) *FragmentEntry {
	e, ok := t.entries[key]
	if !ok {
		e = NewFragmentEntry(expected)
		t.entries[key] = e
	}

	return e
}

// Delete removes an entry, used once it has been assembled and flushed.
func (t *FragmentTable) Delete(key int) {
	delete(t.entries, key)
}

// Len reports how many fragmented messages are currently in flight.
func (t *FragmentTable) Len() int {
	return len(t.entries)
}
