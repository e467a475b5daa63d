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

// Package descriptor implements the tagged polymorphic deserializer for
// item, component, inventory-address and inventory-operation descriptors.
// Grounded on the original's Polymorph::Type enum and per-variant read()
// bodies (tk_loot.hpp / tk_loot.cpp).
package descriptor

import "strconv"

// Tag is the one-byte discriminator selecting a concrete descriptor
// variant. Values are non-contiguous in [13, 65], matching the wire
// exactly matters more than the numbering being "clean".
type Tag uint8

const (
	TagFoodDrinkComponent    Tag = 13
	TagResourceItemComponent Tag = 14
	TagLightComponent        Tag = 15
	TagLockableComponent     Tag = 16
	TagLogicMapMarker        Tag = 17
	TagMapComponent          Tag = 18
	TagMedKitComponent       Tag = 19
	TagRepairableComponent   Tag = 21
	TagSightComponent        Tag = 22
	TagTogglableComponent    Tag = 23
	TagFaceShieldComponent   Tag = 24
	TagFoldableComponent     Tag = 25
	TagFireModeComponent     Tag = 26
	TagDogTagComponent       Tag = 28
	TagTagComponent          Tag = 29
	TagKeyComponent          Tag = 30

	TagJsonLootItemDescriptor Tag = 32
	TagClassTransformSync     Tag = 33
	TagJsonCorpseDescriptor   Tag = 34

	TagInventoryContainer        Tag = 36
	TagInventorySlotAddress      Tag = 37
	TagInventoryStackSlotAddress Tag = 38
	TagInventoryGridAddress      Tag = 39
	TagInventoryOwnerItself      Tag = 40

	TagInventoryRemoveOp         Tag = 42
	TagInventoryExamineOp        Tag = 43
	TagInventoryCheckMagazineOp  Tag = 44
	TagInventoryBindItemOp       Tag = 45
	TagInventoryMoveOp           Tag = 47
	TagInventorySplitOp          Tag = 48
	TagInventoryMergeOp          Tag = 49
	TagInventoryTransferOp       Tag = 50
	TagInventorySwapOp           Tag = 51
	TagInventoryThrowOp          Tag = 53
	TagInventoryToggleOp         Tag = 54
	TagInventoryFoldOp           Tag = 55
	TagInventoryShotOp           Tag = 56
	TagSetupItemOp               Tag = 58
	TagApplyHealthOp             Tag = 60
	TagOperateStationaryWeaponOp Tag = 65
)

// tagNames is used only for error messages and debug dumps.
var tagNames = map[Tag]string{
	TagFoodDrinkComponent:        "FoodDrinkComponentDescriptor",
	TagResourceItemComponent:     "ResourceItemComponentDescriptor",
	TagLightComponent:            "LightComponentDescriptor",
	TagLockableComponent:         "LockableComponentDescriptor",
	TagLogicMapMarker:            "InventoryLogicMapMarker",
	TagMapComponent:              "MapComponentDescriptor",
	TagMedKitComponent:           "MedKitComponentDescriptor",
	TagRepairableComponent:       "RepairableComponentDescriptor",
	TagSightComponent:            "SightComponentDescriptor",
	TagTogglableComponent:        "TogglableComponentDescriptor",
	TagFaceShieldComponent:       "FaceShieldComponentDescriptor",
	TagFoldableComponent:         "FoldableComponentDescriptor",
	TagFireModeComponent:         "FireModeComponentDescriptor",
	TagDogTagComponent:           "DogTagComponentDescriptor",
	TagTagComponent:              "TagComponentDescriptor",
	TagKeyComponent:              "KeyComponentDescriptor",
	TagJsonLootItemDescriptor:    "JsonLootItemDescriptor",
	TagClassTransformSync:        "ClassTransformSync",
	TagJsonCorpseDescriptor:      "JsonCorpseDescriptor",
	TagInventoryContainer:        "InventoryContainerDescriptor",
	TagInventorySlotAddress:      "InventorySlotItemAddressDescriptor",
	TagInventoryStackSlotAddress: "InventoryStackSlotItemAddress",
	TagInventoryGridAddress:      "InventoryGridItemAddressDescriptor",
	TagInventoryOwnerItself:      "InventoryOwnerItselfDescriptor",
	TagInventoryRemoveOp:         "InventoryRemoveOperationDescriptor",
	TagInventoryExamineOp:        "InventoryExamineOperationDescriptor",
	TagInventoryCheckMagazineOp:  "InventoryCheckMagazineOperationDescriptor",
	TagInventoryBindItemOp:       "InventoryBindItemOperationDescriptor",
	TagInventoryMoveOp:           "InventoryMoveOperationDescriptor",
	TagInventorySplitOp:          "InventorySplitOperationDescriptor",
	TagInventoryMergeOp:          "InventoryMergeOperationDescriptor",
	TagInventoryTransferOp:       "InventoryTransferOperationDescriptor",
	TagInventorySwapOp:           "InventorySwapOperationDescriptor",
	TagInventoryThrowOp:          "InventoryThrowOperationDescriptor",
	TagInventoryToggleOp:         "InventoryToggleOperationDescriptor",
	TagInventoryFoldOp:           "InventoryFoldOperationDescriptor",
	TagInventoryShotOp:           "InventoryShotOperationDescriptor",
	TagSetupItemOp:               "SetupItemOperationDescriptor",
	TagApplyHealthOp:             "ApplyHealthOperationDescriptor",
	TagOperateStationaryWeaponOp: "OperateStationaryWeaponOperationDescription",
}

// String renders a tag's variant name, or "unknown(N)" for an unmapped tag.
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}

	return "unknown(" + strconv.Itoa(int(t)) + ")"
}
