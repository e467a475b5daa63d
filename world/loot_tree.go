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
	"github.com/ucectoplasm/eft-packet/descriptor"
	"github.com/ucectoplasm/eft-packet/lootdb"
)

// inaccessibleSlots are the slot ids whose contents are hidden from other
// observers regardless of container visibility — a securable pocket and
// the sheathed-weapon slot on a player's back (spec.md §4.5, §8 S6).
var inaccessibleSlots = map[string]bool{
	"SecuredContainer": true,
	"Scabbard":         true,
}

// BuildLootTree walks an ItemDescriptor in post-order — children before
// parents — and inserts one LootInstance per node into m, resolving each
// instance's parent id, owner sentinel and inaccessible flag as it goes.
// owner is the sentinel (OwnerWorld, an observer's cid, or OwnerInvalid)
// attributed to the tree; every node, nested or not, stores it in its own
// Owner field.
func BuildLootTree(m *Map, item *descriptor.ItemDescriptor, owner int, db *lootdb.Database) {
	buildLootNode(m, item, "", false, owner, db)
}

func buildLootNode(m *Map, item *descriptor.ItemDescriptor, parentID string, parentInaccessible bool, owner int, db *lootdb.Database) {
	if item == nil {
		return
	}

	for _, slot := range item.Slots {
		if slot.ContainedItem == nil {
			continue
		}

		childInaccessible := parentInaccessible || inaccessibleSlots[slot.ID]
		buildLootNode(m, slot.ContainedItem, item.ID, childInaccessible, owner, db)
	}

	for _, grid := range item.Grids {
		for _, placed := range grid.Items {
			if placed.Item == nil {
				continue
			}

			buildLootNode(m, placed.Item, item.ID, parentInaccessible, owner, db)
		}
	}

	for i := range item.StackSlots {
		for j := range item.StackSlots[i].Items {
			buildLootNode(m, &item.StackSlots[i].Items[j], item.ID, parentInaccessible, owner, db)
		}
	}

	inst := &LootInstance{
		ID:           item.ID,
		ParentID:     parentID,
		CSharpHash:   CSharpStringHash(item.ID),
		Owner:        owner,
		StackCount:   item.StackCount,
		Inaccessible: parentInaccessible,
	}

	if db != nil {
		if tpl, ok := db.QueryTemplate(item.TemplateID); ok {
			inst.Template = tpl
		}
	}

	m.AddLoot(inst)
}
