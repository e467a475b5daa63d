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
	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/descriptor"
	"github.com/ucectoplasm/eft-packet/wire"
	"github.com/ucectoplasm/eft-packet/world"
)

const maxSubworldDescriptors = 4096

// handleSubworldSpawn decompresses the zlib-carried descriptor array and
// inserts one world-owned loot subtree per JsonLootItemDescriptor/
// JsonCorpseDescriptor it contains (spec.md §4.6).
func handleSubworldSpawn(ctx Context, body []byte) error {
	bs := wire.NewByteStream(body)

	compressed, err := bs.ReadBytesAndSize()
	if err != nil {
		return errors.Wrap(err, "subworld spawn: read compressed blob")
	}

	raw, err := wire.InflateZlib(compressed)
	if err != nil {
		return errors.Wrap(err, "subworld spawn: inflate")
	}

	s := wire.NewBitStream(raw)
	count := int(s.ReadLimitedInt32(0, maxSubworldDescriptors))

	w := ctx.Session.World
	w.Lock()
	defer w.Unlock()

	for i := 0; i < count; i++ {
		p, err := descriptor.ReadPolymorph(s)
		if err != nil {
			return errors.Wrapf(err, "subworld spawn: descriptor %d", i)
		}

		switch v := p.Value.(type) {
		case descriptor.JsonLootItemDescriptor:
			world.BuildLootTree(w, v.Item, world.OwnerWorld, ctx.LootDB)
		case descriptor.JsonCorpseDescriptor:
			world.BuildLootTree(w, v.Item, world.OwnerWorld, ctx.LootDB)
			w.AddStaticCorpse(v.Position)
		default:
			if ctx.Log != nil {
				ctx.Log.Warn("subworld spawn: unexpected descriptor variant", zap.Stringer("tag", p.Tag))
			}
		}
	}

	if s.Overflowed() {
		return wire.ErrBitOverflow
	}

	return nil
}

// handleObserverSpawn decodes a Player/ObserverSpawn frame: identity,
// position, and an embedded initial-state block carrying the equipment
// tree and a zlib-compressed profile blob. isPlayerSpawn distinguishes
// code 155 (PlayerSpawn, the local observer) from code 157
// (ObserverSpawn, any other entity).
func handleObserverSpawn(ctx Context, body []byte, isPlayerSpawn bool) error {
	s := wire.NewBitStream(body)

	playerID := int(s.ReadInt32())
	cid := int(s.ReadInt32())
	pos := s.ReadRawVector3()

	_ = s.ReadString(256) // preamble token; not presently surfaced

	item, err := descriptor.ReadItemDescriptor(s)
	if err != nil {
		return errors.Wrap(err, "observer spawn: equipment tree")
	}

	profileCompressed, err := readBitstreamBlob(s)
	if err != nil {
		return errors.Wrap(err, "observer spawn: profile blob")
	}

	profile, err := decodeProfile(profileCompressed)
	if err != nil {
		return errors.Wrap(err, "observer spawn: profile decode")
	}

	_ = readOptionalSearchInfo(s)

	if s.Overflowed() {
		return wire.ErrBitOverflow
	}

	kind := world.KindPlayer
	if isPlayerSpawn {
		kind = world.KindSelf
	}

	isNPC := false

	if profile.Side == "Savage" {
		kind = world.KindScav
		isNPC = profile.AccountID == "0"
	}

	obs := &world.Observer{
		PersistentID: profile.AccountID,
		CID:          cid,
		PlayerID:     playerID,
		Kind:         kind,
		Name:         profile.Nickname,
		GroupID:      profile.GroupID,
		Position:     pos,
		Level:        profile.Level,
		IsNPC:        isNPC,
	}

	w := ctx.Session.World
	w.Lock()
	w.CreateObserver(cid, obs)
	world.BuildLootTree(w, item, cid, ctx.LootDB)
	w.Unlock()

	return nil
}

func handleObserverUnspawn(ctx Context, body []byte) error {
	s := wire.NewBitStream(body)
	cid := int(s.ReadInt32())

	w := ctx.Session.World
	w.Lock()
	defer w.Unlock()

	if obs, ok := w.Observer(cid); ok {
		obs.IsUnspawned = true
	}

	return nil
}

// readBitstreamBlob aligns and reads a length-prefixed byte blob embedded
// in an otherwise bit-packed stream (the compressed profile JSON).
func readBitstreamBlob(s *wire.BitStream) ([]byte, error) {
	s.ReadAlign()

	length := int(s.ReadInt32())
	if length < 0 || length > 1<<20 {
		return nil, errors.New("dispatch: implausible blob length")
	}

	return s.ReadBytes(length), nil
}

func readOptionalSearchInfo(s *wire.BitStream) bool {
	return s.ReadBool()
}
