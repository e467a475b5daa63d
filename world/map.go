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

// Package world holds the live world model: bounds, observers, loot and
// static corpses, all mutated under one lock. Grounded on the original's
// tk::Map class; this module keeps its get_x_manual_lock naming discipline
// as an explicit Lock/Unlock embedded RWMutex rather than implicit
// global-mutex discipline, per spec.md §9 "Global state".
package world

import (
	"sync"

	"github.com/ucectoplasm/eft-packet/wire"
)

// Map is the single authoritative world snapshot for a session. Every
// method below assumes the caller already holds Map's lock (via Lock/RLock)
// — mirroring the original's *_manual_lock accessor convention — so that
// handlers can batch several mutations under one critical section and
// readers can walk tables without tearing.
type Map struct {
	sync.RWMutex

	Min, Max wire.Vector3

	observers     map[int]*Observer
	loot          map[string]*LootInstance
	staticCorpses []wire.Vector3
	temporaryLoot map[int]*TemporaryLoot
}

// NewMap returns an empty map with zero-valued (uninitialized) bounds,
// matching spec.md S1's expectation that a freshly created map has
// uninitialized bounds until ServerInit configures them.
func NewMap() *Map {
	return &Map{
		observers:     make(map[int]*Observer),
		loot:          make(map[string]*LootInstance),
		temporaryLoot: make(map[int]*TemporaryLoot),
	}
}

// SetBounds configures the map's quantization bounds from ServerInit.
func (m *Map) SetBounds(min, max wire.Vector3) {
	m.Min = min
	m.Max = max
}

// CreateObserver inserts or replaces the observer at cid.
func (m *Map) CreateObserver(cid int, obs *Observer) {
	m.observers[cid] = obs
}

// DestroyObserver removes the observer at cid and at cid-1, matching the
// original's destroy_observer (which clears both the primary and the
// off-by-one fallback slot).
func (m *Map) DestroyObserver(cid int) {
	delete(m.observers, cid)
	delete(m.observers, cid-1)
}

// Observer looks up an observer by channel id, falling back to cid-1 on
// miss (spec.md §9 "Observer identity ambiguity").
func (m *Map) Observer(cid int) (*Observer, bool) {
	if o, ok := m.observers[cid]; ok {
		return o, true
	}

	o, ok := m.observers[cid-1]

	return o, ok
}

// Observers returns every tracked observer in unspecified order.
func (m *Map) Observers() []*Observer {
	out := make([]*Observer, 0, len(m.observers))
	for _, o := range m.observers {
		out = append(out, o)
	}

	return out
}

// Player returns the local player (KindSelf), if spawned.
func (m *Map) Player() (*Observer, bool) {
	for _, o := range m.observers {
		if o.Kind == KindSelf {
			return o, true
		}
	}

	return nil, false
}

// AddLoot inserts or replaces a loot instance keyed by its id.
func (m *Map) AddLoot(item *LootInstance) {
	m.loot[item.ID] = item
}

// Loot looks up a loot instance by id.
func (m *Map) Loot(id string) (*LootInstance, bool) {
	l, ok := m.loot[id]

	return l, ok
}

// LootByHash scans for the instance whose CSharpHash matches, used by
// loot-position-sync frames that address items by hash rather than id.
func (m *Map) LootByHash(hash uint32) (*LootInstance, bool) {
	for _, l := range m.loot {
		if l.CSharpHash == hash {
			return l, true
		}
	}

	return nil, false
}

// RemoveLoot deletes a loot instance by id (e.g. on InventoryRemove).
func (m *Map) RemoveLoot(id string) {
	delete(m.loot, id)
}

// AllLoot returns every tracked loot instance in unspecified order.
func (m *Map) AllLoot() []*LootInstance {
	out := make([]*LootInstance, 0, len(m.loot))
	for _, l := range m.loot {
		out = append(out, l)
	}

	return out
}

// ResolveOwner walks parent pointers from id to the root and returns the
// root's owner sentinel (spec.md §8 invariant 4).
func (m *Map) ResolveOwner(id string) int {
	item, ok := m.loot[id]
	if !ok {
		return OwnerInvalid
	}

	seen := map[string]bool{}

	for item.ParentID != "" && !seen[item.ID] {
		seen[item.ID] = true

		parent, ok := m.loot[item.ParentID]
		if !ok {
			break
		}

		item = parent
	}

	return item.Owner
}

// IsInaccessible reports whether id or any ancestor has Inaccessible set
// (spec.md §8 invariant 5).
func (m *Map) IsInaccessible(id string) bool {
	item, ok := m.loot[id]
	if !ok {
		return false
	}

	seen := map[string]bool{}

	for {
		if item.Inaccessible {
			return true
		}

		if item.ParentID == "" || seen[item.ID] {
			return false
		}

		seen[item.ID] = true

		parent, ok := m.loot[item.ParentID]
		if !ok {
			return false
		}

		item = parent
	}
}

// AddStaticCorpse appends a corpse marker position.
func (m *Map) AddStaticCorpse(pos wire.Vector3) {
	m.staticCorpses = append(m.staticCorpses, pos)
}

// StaticCorpses returns every tracked corpse marker.
func (m *Map) StaticCorpses() []wire.Vector3 {
	return m.staticCorpses
}

// TemporaryLoot returns the temporary-loot entry for id, creating it
// lazily at the zero position on first reference.
func (m *Map) TemporaryLoot(id int) *TemporaryLoot {
	t, ok := m.temporaryLoot[id]
	if !ok {
		t = &TemporaryLoot{ID: id}
		m.temporaryLoot[id] = t
	}

	return t
}

// TemporaryLoots returns every tracked temporary-loot entry.
func (m *Map) TemporaryLoots() []*TemporaryLoot {
	out := make([]*TemporaryLoot, 0, len(m.temporaryLoot))
	for _, t := range m.temporaryLoot {
		out = append(out, t)
	}

	return out
}
