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

package dispatch

import (
	"github.com/pkg/errors"

	"github.com/ucectoplasm/eft-packet/descriptor"
	"github.com/ucectoplasm/eft-packet/wire"
	"github.com/ucectoplasm/eft-packet/world"
)

// applyInventoryOperation decodes one entry of a player-frame's inventory
// operation list, per spec.md §4.8.
func applyInventoryOperation(ctx Context, dir Direction, s *wire.BitStream) error {
	if dir == Outbound {
		return applyCommand(ctx, s)
	}

	tag := s.ReadUInt8()
	if tag == 1 {
		return applyCommand(ctx, s)
	}

	return applyAckTrailer(s)
}

// applyCommand reads a command entry: a presence gate, a length-prefixed
// embedded polymorph blob, an 11-bit callback id, and a 32-bit hash. Only
// InventoryMove and InventoryThrow mutate the loot tree; every other
// operation is decoded (to keep the stream aligned) and otherwise
// ignored.
func applyCommand(ctx Context, s *wire.BitStream) error {
	if !s.ReadBool() {
		return checkOverflow(s)
	}

	s.ReadAlign()

	blobLen := int(s.ReadInt32())
	if blobLen < 0 || blobLen > 1<<16 {
		return errors.New("dispatch: implausible operation blob length")
	}

	blob := s.ReadBytes(blobLen)
	nested := wire.NewBitStream(blob)

	op, err := descriptor.ReadPolymorph(nested)
	if err != nil {
		return errors.Wrap(err, "inventory op: decode")
	}

	_ = s.ReadLimitedInt32(0, (1<<11)-1) // callback id
	_ = s.ReadUInt32()                   // hash

	w := ctx.Session.World
	w.Lock()
	defer w.Unlock()

	switch v := op.Value.(type) {
	case descriptor.InventoryMoveOperationDescriptor:
		if inst, ok := w.Loot(v.ItemID); ok {
			inst.ParentID = addressParentID(v.To)
			inst.Owner = world.OwnerInvalid
		}
	case descriptor.InventoryThrowOperationDescriptor:
		if inst, ok := w.Loot(v.ItemID); ok {
			inst.ParentID = ""
			inst.Owner = world.OwnerWorld
			inst.Position = v.Position
		}
	}

	return checkOverflow(s)
}

// addressParentID extracts the containing item id from whichever address
// descriptor variant a Move/Split/Swap operation's destination carries.
func addressParentID(addr descriptor.Polymorph) string {
	switch v := addr.Value.(type) {
	case descriptor.InventorySlotItemAddress:
		return v.ParentID
	case descriptor.InventoryStackSlotItemAddress:
		return v.ParentID
	case descriptor.InventoryGridItemAddress:
		return v.ParentID
	case descriptor.InventoryContainerDescriptor:
		return v.ContainerID
	case descriptor.InventoryOwnerItself:
		return ""
	default:
		return ""
	}
}

// applyAckTrailer decodes an inbound acknowledgment of a previously sent
// command: operation id, status, an optional status-2 message string, and
// an optional extra-data block.
func applyAckTrailer(s *wire.BitStream) error {
	_ = s.ReadUInt16() // operation id

	status := s.ReadLimitedInt32(0, 3)
	if status == 2 {
		_ = s.ReadString(256)
	}

	if s.ReadBool() {
		s.ReadAlign()

		extraLen := int(s.ReadInt32())
		if extraLen < 0 || extraLen > 1<<16 {
			return errors.New("dispatch: implausible extra-data length")
		}

		_ = s.ReadBytes(extraLen)
	}

	return checkOverflow(s)
}
