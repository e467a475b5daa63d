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
	"github.com/ucectoplasm/eft-packet/lootdb"
	"github.com/ucectoplasm/eft-packet/wire"
)

// Owner sentinels for loot instances not contained in an observer's
// inventory, per spec.md §3/§10.
const (
	OwnerWorld   = -1
	OwnerInvalid = -2
)

// LootInstance is a single item occurrence: built from a descriptor tree
// by post-order traversal (world/loot_tree.go), keyed by its engine id.
type LootInstance struct {
	ID           string
	ParentID     string
	CSharpHash   uint32
	Owner        int
	Template     *lootdb.Template
	Position     wire.Vector3
	StackCount   int32
	Highlighted  bool
	Inaccessible bool
}

// Value returns the instance's total credit value (template price * stack
// count); zero if the template is unknown.
func (l *LootInstance) Value() int64 {
	if l.Template == nil {
		return 0
	}

	return l.Template.Price * int64(l.StackCount)
}

// ValuePerSlot returns Value divided by the template's grid footprint.
func (l *LootInstance) ValuePerSlot() float64 {
	if l.Template == nil {
		return 0
	}

	slots := l.Template.Width * l.Template.Height
	if slots == 0 {
		return 0
	}

	return float64(l.Value()) / float64(slots)
}

// TemporaryLoot is a loose-loot entry that is not attached to an inventory
// tree, created lazily by Map.TemporaryLoot (SPEC_FULL §3.2). The
// GameUpdate loot-position sync does not write to it; that sync updates
// LootInstances found by hash.
type TemporaryLoot struct {
	ID       int
	Position wire.Vector3
}
