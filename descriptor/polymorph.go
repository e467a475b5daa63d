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

// Polymorph is a tagged union: the wire tag identifying which component,
// wrapper or operation variant follows, paired with its decoded value.
// Grounded on tk_loot.cpp's read_polymorph, which reads the one-byte tag
// and switches into the matching variant reader.
type Polymorph struct {
	Tag   Tag
	Value interface{}
}

// ReadPolymorph reads a tag byte and dispatches to the matching variant
// decoder. An unrecognized tag is a fatal parse error (spec.md §7): the
// wire format has drifted and the remaining stream can no longer be
// trusted to resync on a component boundary.
func ReadPolymorph(s *wire.BitStream) (Polymorph, error) {
	tag := Tag(s.ReadUInt8())

	switch tag {
	case TagFoodDrinkComponent:
		return Polymorph{Tag: tag, Value: readFoodDrinkComponent(s)}, nil
	case TagResourceItemComponent:
		return Polymorph{Tag: tag, Value: readResourceItemComponent(s)}, nil
	case TagLightComponent:
		return Polymorph{Tag: tag, Value: readLightComponent(s)}, nil
	case TagLockableComponent:
		return Polymorph{Tag: tag, Value: readLockableComponent(s)}, nil
	case TagLogicMapMarker:
		return Polymorph{Tag: tag, Value: readLogicMapMarker(s)}, nil
	case TagMapComponent:
		return Polymorph{Tag: tag, Value: readMapComponent(s)}, nil
	case TagMedKitComponent:
		return Polymorph{Tag: tag, Value: readMedKitComponent(s)}, nil
	case TagRepairableComponent:
		return Polymorph{Tag: tag, Value: readRepairableComponent(s)}, nil
	case TagSightComponent:
		return Polymorph{Tag: tag, Value: readSightComponent(s)}, nil
	case TagTogglableComponent:
		return Polymorph{Tag: tag, Value: readTogglableComponent(s)}, nil
	case TagFaceShieldComponent:
		return Polymorph{Tag: tag, Value: readFaceShieldComponent(s)}, nil
	case TagFoldableComponent:
		return Polymorph{Tag: tag, Value: readFoldableComponent(s)}, nil
	case TagFireModeComponent:
		return Polymorph{Tag: tag, Value: readFireModeComponent(s)}, nil
	case TagDogTagComponent:
		return Polymorph{Tag: tag, Value: readDogTagComponent(s)}, nil
	case TagTagComponent:
		return Polymorph{Tag: tag, Value: readTagComponent(s)}, nil
	case TagKeyComponent:
		return Polymorph{Tag: tag, Value: readKeyComponent(s)}, nil

	case TagJsonLootItemDescriptor:
		v, err := readJSONLootItemDescriptor(s)
		if err != nil {
			return Polymorph{}, errors.Wrap(err, "polymorph: json loot item descriptor")
		}

		return Polymorph{Tag: tag, Value: v}, nil
	case TagClassTransformSync:
		return Polymorph{Tag: tag, Value: readClassTransformSync(s)}, nil
	case TagJsonCorpseDescriptor:
		v, err := readJSONCorpseDescriptor(s)
		if err != nil {
			return Polymorph{}, errors.Wrap(err, "polymorph: json corpse descriptor")
		}

		return Polymorph{Tag: tag, Value: v}, nil

	case TagInventoryContainer:
		return Polymorph{Tag: tag, Value: readInventoryContainer(s)}, nil
	case TagInventorySlotAddress:
		return Polymorph{Tag: tag, Value: readInventorySlotItemAddress(s)}, nil
	case TagInventoryStackSlotAddress:
		return Polymorph{Tag: tag, Value: readInventoryStackSlotItemAddress(s)}, nil
	case TagInventoryGridAddress:
		return Polymorph{Tag: tag, Value: readInventoryGridItemAddress(s)}, nil
	case TagInventoryOwnerItself:
		return Polymorph{Tag: tag, Value: readInventoryOwnerItself(s)}, nil

	case TagInventoryRemoveOp:
		v, err := readInventoryRemoveOp(s)
		return wrapOp(tag, v, err, "remove")
	case TagInventoryExamineOp:
		v, err := readInventoryExamineOp(s)
		return wrapOp(tag, v, err, "examine")
	case TagInventoryCheckMagazineOp:
		return Polymorph{Tag: tag, Value: readInventoryCheckMagazineOp(s)}, nil
	case TagInventoryBindItemOp:
		return Polymorph{Tag: tag, Value: readInventoryBindItemOp(s)}, nil
	case TagInventoryMoveOp:
		v, err := readInventoryMoveOp(s)
		return wrapOp(tag, v, err, "move")
	case TagInventorySplitOp:
		v, err := readInventorySplitOp(s)
		return wrapOp(tag, v, err, "split")
	case TagInventoryMergeOp:
		v, err := readInventoryMergeOp(s)
		return wrapOp(tag, v, err, "merge")
	case TagInventoryTransferOp:
		v, err := readInventoryTransferOp(s)
		return wrapOp(tag, v, err, "transfer")
	case TagInventorySwapOp:
		v, err := readInventorySwapOp(s)
		return wrapOp(tag, v, err, "swap")
	case TagInventoryThrowOp:
		v, err := readInventoryThrowOp(s)
		return wrapOp(tag, v, err, "throw")
	case TagInventoryToggleOp:
		return Polymorph{Tag: tag, Value: readInventoryToggleOp(s)}, nil
	case TagInventoryFoldOp:
		return Polymorph{Tag: tag, Value: readInventoryFoldOp(s)}, nil
	case TagInventoryShotOp:
		return Polymorph{Tag: tag, Value: readInventoryShotOp(s)}, nil
	case TagSetupItemOp:
		v, err := readSetupItemOp(s)
		return wrapOp(tag, v, err, "setup item")
	case TagApplyHealthOp:
		return Polymorph{Tag: tag, Value: readApplyHealthOp(s)}, nil
	case TagOperateStationaryWeaponOp:
		return Polymorph{Tag: tag, Value: readOperateStationaryWeaponOp(s)}, nil
	}

	return Polymorph{}, errors.Wrapf(ErrUnknownTag, "tag %d", uint8(tag))
}

// wrapOp folds an (value, error) pair from an address-bearing operation
// reader into a Polymorph result, tagging the error with the operation
// name for easier triage.
func wrapOp(tag Tag, v interface{}, err error, name string) (Polymorph, error) {
	if err != nil {
		return Polymorph{}, errors.Wrapf(err, "polymorph: %s op", name)
	}

	return Polymorph{Tag: tag, Value: v}, nil
}
