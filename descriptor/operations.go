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

package descriptor

import (
	"github.com/pkg/errors"

	"github.com/ucectoplasm/eft-packet/wire"
)

// The address descriptors below each name the container item id the
// address falls within. Field layouts are synthesized from spec.md §4.8's operation/address family
// description, since the upstream read() bodies for this group were not
// present in the recovered source excerpt (see DESIGN.md).

// InventoryContainerDescriptor addresses an item owned directly by the
// player's root container (no slot/grid/stack indirection).
type InventoryContainerDescriptor struct {
	ContainerID string
	Location    LocationInGrid
}

func readInventoryContainer(s *wire.BitStream) InventoryContainerDescriptor {
	return InventoryContainerDescriptor{
		ContainerID: s.ReadString(maxStringChars),
		Location: LocationInGrid{
			X:       s.ReadInt32(),
			Y:       s.ReadInt32(),
			Rotated: s.ReadBool(),
		},
	}
}

// InventorySlotItemAddress addresses an item by the named equipment slot
// that holds it (e.g. "Scabbard").
type InventorySlotItemAddress struct {
	ParentID string
	SlotID   string
}

func readInventorySlotItemAddress(s *wire.BitStream) InventorySlotItemAddress {
	return InventorySlotItemAddress{
		ParentID: s.ReadString(maxStringChars),
		SlotID:   s.ReadString(maxStringChars),
	}
}

// InventoryStackSlotItemAddress addresses an item by its position within
// a magazine-style stack slot.
type InventoryStackSlotItemAddress struct {
	ParentID string
	SlotID   string
	Index    int32
}

func readInventoryStackSlotItemAddress(s *wire.BitStream) InventoryStackSlotItemAddress {
	return InventoryStackSlotItemAddress{
		ParentID: s.ReadString(maxStringChars),
		SlotID:   s.ReadString(maxStringChars),
		Index:    s.ReadLimitedInt32(0, maxStackItems),
	}
}

// InventoryGridItemAddress addresses an item by its cell location within
// a container grid.
type InventoryGridItemAddress struct {
	ParentID string
	GridID   string
	Location LocationInGrid
}

func readInventoryGridItemAddress(s *wire.BitStream) InventoryGridItemAddress {
	return InventoryGridItemAddress{
		ParentID: s.ReadString(maxStringChars),
		GridID:   s.ReadString(maxStringChars),
		Location: LocationInGrid{
			X:       s.ReadInt32(),
			Y:       s.ReadInt32(),
			Rotated: s.ReadBool(),
		},
	}
}

// InventoryOwnerItself addresses the owning observer's inventory root
// directly, with no further indirection.
type InventoryOwnerItself struct {
	OwnerID string
}

func readInventoryOwnerItself(s *wire.BitStream) InventoryOwnerItself {
	return InventoryOwnerItself{OwnerID: s.ReadString(maxStringChars)}
}

// readAddress reads the one-byte address-kind tag and its payload as a
// Polymorph, used by operations that carry a "from"/"to" address.
func readAddress(s *wire.BitStream) (Polymorph, error) {
	return ReadPolymorph(s)
}

// InventoryRemoveOperationDescriptor removes the item at an address.
type InventoryRemoveOperationDescriptor struct {
	Address Polymorph
}

func readInventoryRemoveOp(s *wire.BitStream) (InventoryRemoveOperationDescriptor, error) {
	addr, err := readAddress(s)
	if err != nil {
		return InventoryRemoveOperationDescriptor{}, errors.Wrap(err, "remove: address")
	}

	return InventoryRemoveOperationDescriptor{Address: addr}, nil
}

// InventoryExamineOperationDescriptor marks an item as examined (no
// structural change, only a player-knowledge flag).
type InventoryExamineOperationDescriptor struct {
	Address Polymorph
}

func readInventoryExamineOp(s *wire.BitStream) (InventoryExamineOperationDescriptor, error) {
	addr, err := readAddress(s)
	if err != nil {
		return InventoryExamineOperationDescriptor{}, errors.Wrap(err, "examine: address")
	}

	return InventoryExamineOperationDescriptor{Address: addr}, nil
}

// InventoryCheckMagazineOperationDescriptor toggles a weapon's chambered
// round knowledge after a magazine check.
type InventoryCheckMagazineOperationDescriptor struct {
	ItemID string
}

func readInventoryCheckMagazineOp(s *wire.BitStream) InventoryCheckMagazineOperationDescriptor {
	return InventoryCheckMagazineOperationDescriptor{ItemID: s.ReadString(maxStringChars)}
}

// InventoryBindItemOperationDescriptor binds an item to a hotkey slot.
type InventoryBindItemOperationDescriptor struct {
	ItemID  string
	BindKey int32
}

func readInventoryBindItemOp(s *wire.BitStream) InventoryBindItemOperationDescriptor {
	return InventoryBindItemOperationDescriptor{
		ItemID:  s.ReadString(maxStringChars),
		BindKey: s.ReadLimitedInt32(0, 15),
	}
}

// InventoryMoveOperationDescriptor relocates an item from one address to
// another — the operation that drives most of the world loot tree's
// reparenting.
type InventoryMoveOperationDescriptor struct {
	ItemID string
	To     Polymorph
}

func readInventoryMoveOp(s *wire.BitStream) (InventoryMoveOperationDescriptor, error) {
	id := s.ReadString(maxStringChars)

	to, err := readAddress(s)
	if err != nil {
		return InventoryMoveOperationDescriptor{}, errors.Wrap(err, "move: to address")
	}

	return InventoryMoveOperationDescriptor{ItemID: id, To: to}, nil
}

// InventorySplitOperationDescriptor splits a stack, moving count items
// from ItemID to a new address.
type InventorySplitOperationDescriptor struct {
	ItemID string
	Count  int32
	To     Polymorph
}

func readInventorySplitOp(s *wire.BitStream) (InventorySplitOperationDescriptor, error) {
	id := s.ReadString(maxStringChars)
	count := s.ReadInt32()

	to, err := readAddress(s)
	if err != nil {
		return InventorySplitOperationDescriptor{}, errors.Wrap(err, "split: to address")
	}

	return InventorySplitOperationDescriptor{ItemID: id, Count: count, To: to}, nil
}

// InventoryMergeOperationDescriptor merges one stack into another.
type InventoryMergeOperationDescriptor struct {
	ItemID string
	WithID string
}

func readInventoryMergeOp(s *wire.BitStream) (InventoryMergeOperationDescriptor, error) {
	return InventoryMergeOperationDescriptor{
		ItemID: s.ReadString(maxStringChars),
		WithID: s.ReadString(maxStringChars),
	}, nil
}

// InventoryTransferOperationDescriptor transfers count items out of a
// stack into an existing stack at a different address, without creating
// a new item id (unlike split).
type InventoryTransferOperationDescriptor struct {
	ItemID string
	WithID string
	Count  int32
}

func readInventoryTransferOp(s *wire.BitStream) (InventoryTransferOperationDescriptor, error) {
	return InventoryTransferOperationDescriptor{
		ItemID: s.ReadString(maxStringChars),
		WithID: s.ReadString(maxStringChars),
		Count:  s.ReadInt32(),
	}, nil
}

// InventorySwapOperationDescriptor exchanges the addresses of two items.
type InventorySwapOperationDescriptor struct {
	ItemID  string
	To      Polymorph
	Item2ID string
	To2     Polymorph
}

func readInventorySwapOp(s *wire.BitStream) (InventorySwapOperationDescriptor, error) {
	id := s.ReadString(maxStringChars)

	to, err := readAddress(s)
	if err != nil {
		return InventorySwapOperationDescriptor{}, errors.Wrap(err, "swap: to address")
	}

	id2 := s.ReadString(maxStringChars)

	to2, err := readAddress(s)
	if err != nil {
		return InventorySwapOperationDescriptor{}, errors.Wrap(err, "swap: to2 address")
	}

	return InventorySwapOperationDescriptor{ItemID: id, To: to, Item2ID: id2, To2: to2}, nil
}

// InventoryThrowOperationDescriptor drops an item into the world at a
// quantized position, severing it from its container — the event that
// typically originates a freshly visible world loot instance.
type InventoryThrowOperationDescriptor struct {
	ItemID   string
	Position wire.Vector3
}

func readInventoryThrowOp(s *wire.BitStream) (InventoryThrowOperationDescriptor, error) {
	return InventoryThrowOperationDescriptor{
		ItemID:   s.ReadString(maxStringChars),
		Position: s.ReadVector3(wire.NewPositionDeltaQuantizer()),
	}, nil
}

// InventoryToggleOperationDescriptor flips a togglable component's state
// (flashlight on/off, etc).
type InventoryToggleOperationDescriptor struct {
	ItemID string
	On     bool
}

func readInventoryToggleOp(s *wire.BitStream) InventoryToggleOperationDescriptor {
	return InventoryToggleOperationDescriptor{
		ItemID: s.ReadString(maxStringChars),
		On:     s.ReadBool(),
	}
}

// InventoryFoldOperationDescriptor folds or unfolds a foldable stock.
type InventoryFoldOperationDescriptor struct {
	ItemID string
	Folded bool
}

func readInventoryFoldOp(s *wire.BitStream) InventoryFoldOperationDescriptor {
	return InventoryFoldOperationDescriptor{
		ItemID: s.ReadString(maxStringChars),
		Folded: s.ReadBool(),
	}
}

// InventoryShotOperationDescriptor records a weapon discharge, consuming
// ammunition from a magazine item.
type InventoryShotOperationDescriptor struct {
	WeaponID   string
	MagazineID string
	FireMode   int32
}

func readInventoryShotOp(s *wire.BitStream) InventoryShotOperationDescriptor {
	return InventoryShotOperationDescriptor{
		WeaponID:   s.ReadString(maxStringChars),
		MagazineID: s.ReadString(maxStringChars),
		FireMode:   s.ReadLimitedInt32(0, 7),
	}
}

// SetupItemOperationDescriptor initializes a newly spawned item's
// descriptor tree in place, used for session-start inventory hydration.
type SetupItemOperationDescriptor struct {
	Item *ItemDescriptor
}

func readSetupItemOp(s *wire.BitStream) (SetupItemOperationDescriptor, error) {
	item, err := ReadItemDescriptor(s)
	if err != nil {
		return SetupItemOperationDescriptor{}, errors.Wrap(err, "setup item: item")
	}

	return SetupItemOperationDescriptor{Item: item}, nil
}

// ApplyHealthOperationDescriptor applies a medical effect, consuming a
// fixed resource amount from a medkit-family item.
type ApplyHealthOperationDescriptor struct {
	ItemID string
	Amount float64
}

func readApplyHealthOp(s *wire.BitStream) ApplyHealthOperationDescriptor {
	return ApplyHealthOperationDescriptor{
		ItemID: s.ReadString(maxStringChars),
		Amount: s.ReadLimitedFloat(0, 2000, 1),
	}
}

// OperateStationaryWeaponOperationDescription enters or exits a mounted
// stationary weapon emplacement.
type OperateStationaryWeaponOperationDescription struct {
	WeaponID string
	Entering bool
}

func readOperateStationaryWeaponOp(s *wire.BitStream) OperateStationaryWeaponOperationDescription {
	return OperateStationaryWeaponOperationDescription{
		WeaponID: s.ReadString(maxStringChars),
		Entering: s.ReadBool(),
	}
}
