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

package world

import (
	"testing"

	"github.com/ucectoplasm/eft-packet/wire"
)

func TestMapSetBounds(t *testing.T) {
	m := NewMap()

	min := wire.Vector3{X: -100, Y: 0, Z: -100}
	max := wire.Vector3{X: 100, Y: 50, Z: 100}

	m.SetBounds(min, max)

	if m.Min != min || m.Max != max {
		t.Errorf("SetBounds did not stick: Min=%v Max=%v", m.Min, m.Max)
	}
}

func TestCreateDestroyObserver(t *testing.T) {
	m := NewMap()

	m.CreateObserver(4, &Observer{CID: 4, Kind: KindPlayer})

	if _, ok := m.Observer(4); !ok {
		t.Fatalf("observer 4 not found after CreateObserver")
	}

	m.DestroyObserver(4)

	if _, ok := m.Observer(4); ok {
		t.Errorf("observer 4 still present after DestroyObserver")
	}
}

func TestDestroyObserverAlsoClearsOffByOneFallback(t *testing.T) {
	m := NewMap()

	m.CreateObserver(3, &Observer{CID: 3, Kind: KindPlayer})
	m.CreateObserver(4, &Observer{CID: 4, Kind: KindPlayer})

	m.DestroyObserver(4)

	if _, ok := m.Observer(3); ok {
		t.Errorf("DestroyObserver(4) should also clear the cid-1 slot (3)")
	}

	if _, ok := m.Observer(4); ok {
		t.Errorf("observer 4 still present after DestroyObserver")
	}
}

func TestObserverLookupFallsBackToCIDMinusOne(t *testing.T) {
	m := NewMap()

	m.CreateObserver(5, &Observer{CID: 5, Kind: KindPlayer, Name: "scav-1"})

	got, ok := m.Observer(6)
	if !ok {
		t.Fatalf("Observer(6) should fall back to the cid-1 slot")
	}

	if got.Name != "scav-1" {
		t.Errorf("Observer(6) fallback returned %q, want %q", got.Name, "scav-1")
	}
}

func TestObserverExactMatchPreferredOverFallback(t *testing.T) {
	m := NewMap()

	m.CreateObserver(5, &Observer{CID: 5, Name: "five"})
	m.CreateObserver(6, &Observer{CID: 6, Name: "six"})

	got, ok := m.Observer(6)
	if !ok || got.Name != "six" {
		t.Errorf("Observer(6) = %+v, want the exact match at 6", got)
	}
}

func TestPlayerReturnsKindSelf(t *testing.T) {
	m := NewMap()

	m.CreateObserver(1, &Observer{CID: 1, Kind: KindScav})
	m.CreateObserver(2, &Observer{CID: 2, Kind: KindSelf, Name: "me"})

	p, ok := m.Player()
	if !ok {
		t.Fatalf("Player() not found")
	}

	if p.Name != "me" {
		t.Errorf("Player() = %+v, want the KindSelf observer", p)
	}
}

func TestPlayerAbsent(t *testing.T) {
	m := NewMap()

	m.CreateObserver(1, &Observer{CID: 1, Kind: KindScav})

	if _, ok := m.Player(); ok {
		t.Errorf("Player() found one when none is KindSelf")
	}
}

func TestAddLootAndRemoveLoot(t *testing.T) {
	m := NewMap()

	m.AddLoot(&LootInstance{ID: "a"})

	if _, ok := m.Loot("a"); !ok {
		t.Fatalf("loot 'a' not found after AddLoot")
	}

	m.RemoveLoot("a")

	if _, ok := m.Loot("a"); ok {
		t.Errorf("loot 'a' still present after RemoveLoot")
	}
}

func TestLootByHash(t *testing.T) {
	m := NewMap()

	m.AddLoot(&LootInstance{ID: "a", CSharpHash: 0xDEAD})
	m.AddLoot(&LootInstance{ID: "b", CSharpHash: 0xBEEF})

	got, ok := m.LootByHash(0xBEEF)
	if !ok || got.ID != "b" {
		t.Errorf("LootByHash(0xBEEF) = %+v, want loot 'b'", got)
	}

	if _, ok := m.LootByHash(0x1234); ok {
		t.Errorf("LootByHash found an entry for an unused hash")
	}
}

func TestAllLootCount(t *testing.T) {
	m := NewMap()

	m.AddLoot(&LootInstance{ID: "a"})
	m.AddLoot(&LootInstance{ID: "b"})

	if got := len(m.AllLoot()); got != 2 {
		t.Errorf("AllLoot() length = %d, want 2", got)
	}
}

func TestResolveOwnerStopsOnCycle(t *testing.T) {
	m := NewMap()

	m.AddLoot(&LootInstance{ID: "a", ParentID: "b", Owner: OwnerWorld})
	m.AddLoot(&LootInstance{ID: "b", ParentID: "a", Owner: 9})

	if got := m.ResolveOwner("a"); got != OwnerWorld && got != 9 {
		t.Errorf("ResolveOwner on a cyclic chain should terminate and return one sentinel, got %d", got)
	}
}

func TestIsInaccessibleMissingIDIsFalse(t *testing.T) {
	m := NewMap()

	if m.IsInaccessible("nope") {
		t.Errorf("IsInaccessible on an unknown id should be false")
	}
}

func TestStaticCorpses(t *testing.T) {
	m := NewMap()

	m.AddStaticCorpse(wire.Vector3{X: 1, Y: 2, Z: 3})
	m.AddStaticCorpse(wire.Vector3{X: 4, Y: 5, Z: 6})

	corpses := m.StaticCorpses()
	if len(corpses) != 2 {
		t.Fatalf("StaticCorpses() length = %d, want 2", len(corpses))
	}

	if corpses[0].X != 1 || corpses[1].X != 4 {
		t.Errorf("StaticCorpses() = %+v, unexpected order/content", corpses)
	}
}

func TestTemporaryLootLazyCreate(t *testing.T) {
	m := NewMap()

	t1 := m.TemporaryLoot(42)
	t1.Position = wire.Vector3{X: 9, Y: 9, Z: 9}

	t2 := m.TemporaryLoot(42)
	if t2.Position.X != 9 {
		t.Errorf("TemporaryLoot(42) returned a different instance on second call")
	}

	if len(m.TemporaryLoots()) != 1 {
		t.Errorf("TemporaryLoots() length = %d, want 1", len(m.TemporaryLoots()))
	}
}

func TestPlaceholderObserver(t *testing.T) {
	o := PlaceholderObserver(11)

	if o.CID != 11 || o.Kind != KindPlayer || o.Name != "UNKNOWN?!" || o.PlayerID != -1 {
		t.Errorf("PlaceholderObserver(11) = %+v, unexpected fields", o)
	}
}
