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

// SpawnFlags are the common one-off flags every top-level spawn wrapper
// carries alongside its position/rotation and embedded item tree.
type SpawnFlags struct {
	IsStatic       bool
	UseGravity     bool
	RandomRotation bool
	Shift          float64
	PlatformID     int32
}

func readSpawnFlags(s *wire.BitStream) SpawnFlags {
	return SpawnFlags{
		IsStatic:       s.ReadBool(),
		UseGravity:     s.ReadBool(),
		RandomRotation: s.ReadBool(),
		Shift:          s.ReadFloat32(),
		PlatformID:     s.ReadInt32(),
	}
}

func readOptionalID(s *wire.BitStream) string {
	if !s.ReadBool() {
		return ""
	}

	return s.ReadString(maxStringChars)
}

func readOptionalProfileIDs(s *wire.BitStream) []string {
	if !s.ReadBool() {
		return nil
	}

	n := int(s.ReadLimitedInt32(0, maxSlots))
	ids := make([]string, 0, n)

	for i := 0; i < n; i++ {
		ids = append(ids, s.ReadString(maxStringChars))
	}

	return ids
}

// JsonLootItemDescriptor is the top-level world-loot spawn wrapper: an
// outer position/rotation, an optional explicit id, an optional list of
// profile ids it is associated with, spawn flags, and the embedded item
// tree the loot instance is built from.
type JsonLootItemDescriptor struct {
	Position   wire.Vector3
	Rotation   wire.Vector3
	ID         string
	ProfileIDs []string
	Flags      SpawnFlags
	Item       *ItemDescriptor
}

func readJSONLootItemDescriptor(s *wire.BitStream) (JsonLootItemDescriptor, error) {
	d := JsonLootItemDescriptor{
		Position:   s.ReadRawVector3(),
		Rotation:   s.ReadRawVector3(),
		ID:         readOptionalID(s),
		ProfileIDs: readOptionalProfileIDs(s),
		Flags:      readSpawnFlags(s),
	}

	item, err := ReadItemDescriptor(s)
	if err != nil {
		return JsonLootItemDescriptor{}, errors.Wrap(err, "json loot item: item")
	}

	d.Item = item

	return d, nil
}

// ClassTransformSync is a quantized position/rotation update for an
// object whose identity is carried out of band (by the enclosing
// dispatch frame rather than this descriptor itself) — used both
// standalone and as a corpse's per-bone skeleton transform.
type ClassTransformSync struct {
	Position wire.Vector3
	Rotation wire.Vector3
}

func readClassTransformSync(s *wire.BitStream) ClassTransformSync {
	return ClassTransformSync{
		Position: s.ReadVector3(wire.NewPositionDeltaQuantizer()),
		Rotation: s.ReadVector3(wire.NewRotationQuantizer()),
	}
}

// JsonCorpseDescriptor is the top-level dead-player loot spawn wrapper:
// the same outer envelope as JsonLootItemDescriptor, plus the side and
// per-bone customization/skeleton data a corpse needs to render.
type JsonCorpseDescriptor struct {
	Position      wire.Vector3
	Rotation      wire.Vector3
	ID            string
	ProfileIDs    []string
	Flags         SpawnFlags
	Side          int32
	Customization map[int32]string
	SkeletonBones []ClassTransformSync
	Item          *ItemDescriptor
}

func readJSONCorpseDescriptor(s *wire.BitStream) (JsonCorpseDescriptor, error) {
	d := JsonCorpseDescriptor{
		Position:   s.ReadRawVector3(),
		Rotation:   s.ReadRawVector3(),
		ID:         readOptionalID(s),
		ProfileIDs: readOptionalProfileIDs(s),
		Flags:      readSpawnFlags(s),
		Side:       s.ReadLimitedInt32(0, 4),
	}

	numCustomizations := int(s.ReadLimitedInt32(0, maxSlots))
	d.Customization = make(map[int32]string, numCustomizations)

	for i := 0; i < numCustomizations; i++ {
		key := s.ReadInt32()
		d.Customization[key] = s.ReadString(maxStringChars)
	}

	numBones := int(s.ReadLimitedInt32(0, maxGridItems))
	d.SkeletonBones = make([]ClassTransformSync, 0, numBones)

	for i := 0; i < numBones; i++ {
		d.SkeletonBones = append(d.SkeletonBones, readClassTransformSync(s))
	}

	item, err := ReadItemDescriptor(s)
	if err != nil {
		return JsonCorpseDescriptor{}, errors.Wrap(err, "json corpse: item")
	}

	d.Item = item

	return d, nil
}
