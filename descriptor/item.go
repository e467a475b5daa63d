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

// Field-count caps bound list lengths against corrupt input; a genuine
// equipment tree never gets close to these.
const (
	maxComponents  = 64
	maxSlots       = 64
	maxGrids       = 16
	maxStackSlots  = 16
	maxGridItems   = 256
	maxStackItems  = 64
	maxStringChars = 256
)

// ItemDescriptor is the recursive item tree: a leaf item together with its
// attached components, equipped slots, container grids and magazine-style
// stack slots. Grounded on tk_loot.hpp ItemDescriptor / tk_loot.cpp's
// read() body.
type ItemDescriptor struct {
	ID               string
	TemplateID       string
	StackCount       int32
	SpawnedInSession bool
	Components       []Polymorph
	Slots            []SlotDescriptor
	Grids            []GridDescriptor
	StackSlots       []StackSlotDescriptor
}

// SlotDescriptor is a single equipped slot (e.g. "Scabbard",
// "SecuredContainer") holding at most one nested item.
type SlotDescriptor struct {
	ID            string
	ContainedItem *ItemDescriptor
}

// LocationInGrid is an item's cell position and rotation within a grid.
type LocationInGrid struct {
	X, Y    int32
	Rotated bool
}

// ItemInGridDescriptor pairs a grid-placed item with its cell location.
type ItemInGridDescriptor struct {
	Location LocationInGrid
	Item     *ItemDescriptor
}

// GridDescriptor is a container grid (e.g. a backpack's main compartment).
type GridDescriptor struct {
	ID    string
	Items []ItemInGridDescriptor
}

// StackSlotDescriptor is a magazine-style slot holding a homogeneous stack
// of items (e.g. ammo in a magazine).
type StackSlotDescriptor struct {
	ID    string
	Items []ItemDescriptor
}

// ReadItemDescriptor decodes an ItemDescriptor, recursing into every
// nested slot, grid and stack slot.
func ReadItemDescriptor(s *wire.BitStream) (*ItemDescriptor, error) {
	d := &ItemDescriptor{
		ID:               s.ReadString(maxStringChars),
		TemplateID:       s.ReadString(maxStringChars),
		StackCount:       s.ReadInt32(),
		SpawnedInSession: s.ReadBool(),
	}

	numComponents := int(s.ReadLimitedInt32(0, maxComponents))
	d.Components = make([]Polymorph, 0, numComponents)

	for i := 0; i < numComponents; i++ {
		p, err := ReadPolymorph(s)
		if err != nil {
			return nil, errors.Wrap(err, "item: component")
		}

		d.Components = append(d.Components, p)
	}

	numSlots := int(s.ReadLimitedInt32(0, maxSlots))
	d.Slots = make([]SlotDescriptor, 0, numSlots)

	for i := 0; i < numSlots; i++ {
		slot, err := readSlotDescriptor(s)
		if err != nil {
			return nil, errors.Wrap(err, "item: slot")
		}

		d.Slots = append(d.Slots, slot)
	}

	numGrids := int(s.ReadLimitedInt32(0, maxGrids))
	d.Grids = make([]GridDescriptor, 0, numGrids)

	for i := 0; i < numGrids; i++ {
		grid, err := readGridDescriptor(s)
		if err != nil {
			return nil, errors.Wrap(err, "item: grid")
		}

		d.Grids = append(d.Grids, grid)
	}

	numStackSlots := int(s.ReadLimitedInt32(0, maxStackSlots))
	d.StackSlots = make([]StackSlotDescriptor, 0, numStackSlots)

	for i := 0; i < numStackSlots; i++ {
		ss, err := readStackSlotDescriptor(s)
		if err != nil {
			return nil, errors.Wrap(err, "item: stack slot")
		}

		d.StackSlots = append(d.StackSlots, ss)
	}

	if s.Overflowed() {
		return nil, wire.ErrBitOverflow
	}

	return d, nil
}

func readSlotDescriptor(s *wire.BitStream) (SlotDescriptor, error) {
	slot := SlotDescriptor{ID: s.ReadString(maxStringChars)}

	if s.ReadBool() {
		item, err := ReadItemDescriptor(s)
		if err != nil {
			return slot, err
		}

		slot.ContainedItem = item
	}

	return slot, nil
}

func readGridDescriptor(s *wire.BitStream) (GridDescriptor, error) {
	grid := GridDescriptor{ID: s.ReadString(maxStringChars)}

	n := int(s.ReadLimitedInt32(0, maxGridItems))
	grid.Items = make([]ItemInGridDescriptor, 0, n)

	for i := 0; i < n; i++ {
		loc := LocationInGrid{
			X:       s.ReadInt32(),
			Y:       s.ReadInt32(),
			Rotated: s.ReadBool(),
		}

		item, err := ReadItemDescriptor(s)
		if err != nil {
			return grid, err
		}

		grid.Items = append(grid.Items, ItemInGridDescriptor{Location: loc, Item: item})
	}

	return grid, nil
}

func readStackSlotDescriptor(s *wire.BitStream) (StackSlotDescriptor, error) {
	ss := StackSlotDescriptor{ID: s.ReadString(maxStringChars)}

	n := int(s.ReadLimitedInt32(0, maxStackItems))
	ss.Items = make([]ItemDescriptor, 0, n)

	for i := 0; i < n; i++ {
		item, err := ReadItemDescriptor(s)
		if err != nil {
			return ss, err
		}

		ss.Items = append(ss.Items, *item)
	}

	return ss, nil
}
