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

	"github.com/stretchr/testify/require"

	"github.com/ucectoplasm/eft-packet/descriptor"
)

// backpackWithSecuredContainer builds: backpack -> Scabbard slot -> knife,
// and backpack -> grid -> ammo, to exercise post-order insertion order and
// inaccessible-slot propagation in one tree.
func backpackWithSecuredContainer() *descriptor.ItemDescriptor {
	return &descriptor.ItemDescriptor{
		ID:         "backpack",
		TemplateID: "tpl-backpack",
		Slots: []descriptor.SlotDescriptor{
			{
				ID: "Scabbard",
				ContainedItem: &descriptor.ItemDescriptor{
					ID:         "knife",
					TemplateID: "tpl-knife",
				},
			},
		},
		Grids: []descriptor.GridDescriptor{
			{
				ID: "main",
				Items: []descriptor.ItemInGridDescriptor{
					{
						Item: &descriptor.ItemDescriptor{
							ID:         "ammo-box",
							TemplateID: "tpl-ammo",
						},
					},
				},
			},
		},
	}
}

func TestBuildLootTreeInsertsEveryNode(t *testing.T) {
	m := NewMap()

	BuildLootTree(m, backpackWithSecuredContainer(), OwnerWorld, nil)

	for _, id := range []string{"backpack", "knife", "ammo-box"} {
		if _, ok := m.Loot(id); !ok {
			t.Errorf("loot tree missing expected node %q", id)
		}
	}
}

func TestBuildLootTreeParentIDs(t *testing.T) {
	m := NewMap()

	BuildLootTree(m, backpackWithSecuredContainer(), OwnerWorld, nil)

	knife, ok := m.Loot("knife")
	require.True(t, ok)
	require.Equal(t, "backpack", knife.ParentID)

	backpack, ok := m.Loot("backpack")
	require.True(t, ok)
	require.Equal(t, "", backpack.ParentID)
}

func TestBuildLootTreeScabbardInaccessiblePropagates(t *testing.T) {
	m := NewMap()

	BuildLootTree(m, backpackWithSecuredContainer(), OwnerWorld, nil)

	knife, ok := m.Loot("knife")
	require.True(t, ok)
	require.True(t, knife.Inaccessible, "item in a Scabbard slot must be flagged inaccessible")

	ammo, ok := m.Loot("ammo-box")
	require.True(t, ok)
	require.False(t, ammo.Inaccessible, "grid-contained item should not inherit an unrelated sibling's inaccessible flag")
}

func TestBuildLootTreeOwnerPropagatesToEveryNode(t *testing.T) {
	m := NewMap()

	const observerCID = 7

	BuildLootTree(m, backpackWithSecuredContainer(), observerCID, nil)

	for _, id := range []string{"backpack", "knife", "ammo-box"} {
		item, ok := m.Loot(id)
		require.True(t, ok)
		require.Equal(t, observerCID, item.Owner)
		require.Equal(t, observerCID, m.ResolveOwner(id), "ResolveOwner must agree with the stored Owner sentinel")
	}
}

func TestResolveOwnerFollowsParentChain(t *testing.T) {
	m := NewMap()

	BuildLootTree(m, backpackWithSecuredContainer(), OwnerWorld, nil)

	if got := m.ResolveOwner("knife"); got != OwnerWorld {
		t.Errorf("ResolveOwner(knife) = %d, want %d", got, OwnerWorld)
	}
}

func TestResolveOwnerUnknownIDIsInvalid(t *testing.T) {
	m := NewMap()

	if got := m.ResolveOwner("does-not-exist"); got != OwnerInvalid {
		t.Errorf("ResolveOwner(unknown) = %d, want OwnerInvalid", got)
	}
}

func TestIsInaccessibleAncestorWalk(t *testing.T) {
	m := NewMap()

	BuildLootTree(m, backpackWithSecuredContainer(), OwnerWorld, nil)

	if !m.IsInaccessible("knife") {
		t.Errorf("IsInaccessible(knife) = false, want true")
	}

	if m.IsInaccessible("ammo-box") {
		t.Errorf("IsInaccessible(ammo-box) = true, want false")
	}
}

func TestCSharpStringHashStable(t *testing.T) {
	a := CSharpStringHash("backpack")
	b := CSharpStringHash("backpack")

	if a != b {
		t.Errorf("CSharpStringHash is not deterministic: %d != %d", a, b)
	}

	if a == CSharpStringHash("knife") {
		t.Errorf("CSharpStringHash collided for distinct inputs in this small sample")
	}
}

func TestLootInstanceValue(t *testing.T) {
	l := &LootInstance{
		StackCount: 3,
	}

	if got := l.Value(); got != 0 {
		t.Errorf("Value() with nil Template = %d, want 0", got)
	}
}
