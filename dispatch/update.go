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
	"github.com/ucectoplasm/eft-packet/wire"
	"github.com/ucectoplasm/eft-packet/world"
)

const maxLootSync = 64

// observerChannelToCID maps a reassembled payload's UNET channel to the
// observer cid the channel pair was allotted to.
func observerChannelToCID(channel int) int {
	if channel < 3 {
		return -1
	}

	return (channel - 3) / 2
}

// handleGameUpdate decodes the nested bit stream carried by a GameUpdate
// frame: either a per-observer player-frame update or a world frame
// carrying the loot-position-sync section (spec.md §4.6, §4.7).
func handleGameUpdate(ctx Context, dir Direction, body []byte) error {
	if ctx.Session.Encrypted {
		return nil
	}

	s := wire.NewBitStream(body)

	if s.ReadBool() {
		return handlePlayerFrame(ctx, dir, s)
	}

	return handleWorldFrame(ctx, s)
}

func handlePlayerFrame(ctx Context, dir Direction, s *wire.BitStream) error {
	cid := observerChannelToCID(ctx.Channel)

	w := ctx.Session.World
	w.Lock()
	defer w.Unlock()

	obs, ok := w.Observer(cid)
	if !ok {
		obs = world.PlaceholderObserver(cid)
		w.CreateObserver(cid, obs)
	}

	_ = s.ReadInt32() // frame counter
	_ = s.ReadInt32() // time
	disconnected := s.ReadBool()

	if disconnected {
		obs.IsUnspawned = true
	}

	alive := s.ReadBool()
	if !alive {
		obs.IsDead = true

		return checkOverflow(s)
	}

	posQ := wire.NewPositionDeltaQuantizer()
	if w.Max != (wire.Vector3{}) || w.Min != (wire.Vector3{}) {
		posQ = wire.NewAbsolutePositionQuantizer(w.Min, w.Max)
	}

	if s.ReadBool() { // "no change" gate: 0 means unchanged
		absolute := s.ReadBool()

		q := posQ
		if !absolute {
			q = wire.NewPositionDeltaQuantizer()
		}

		delta := s.ReadVector3(q)

		if absolute {
			obs.Position = delta
		} else {
			obs.Position = wire.Vector3Add(obs.Position, delta)
		}

		obs.Rotation = s.ReadVector3(wire.NewRotationQuantizer())
	}

	// Miscellaneous per-frame state (stance, health tick, etc) is present
	// on the wire here but not part of the tracked world model. It is not
	// read or skipped: the operation count below is read from the bits
	// that directly follow the rotation, with no realignment.

	numOps := int(s.ReadUInt8())

	for i := 0; i < numOps; i++ {
		if err := applyInventoryOperation(ctx, dir, s); err != nil {
			return err
		}
	}

	return checkOverflow(s)
}

func handleWorldFrame(ctx Context, s *wire.BitStream) error {
	_ = s.ReadBool() // interactive objects gate
	_ = s.ReadBool() // spawn quest loot gate
	_ = s.ReadBool() // exfil gate
	_ = s.ReadBool() // lamp change gate

	count := int(s.ReadLimitedInt32(1, maxLootSync))

	w := ctx.Session.World
	w.Lock()
	defer w.Unlock()

	lootQ := wire.NewLootDeltaQuantizer()

	for i := 0; i < count; i++ {
		hash := s.ReadUInt32()
		isDelta := s.ReadBool()
		pos := s.ReadVector3(lootQ)

		inst, ok := w.LootByHash(hash)
		if !ok {
			continue
		}

		if isDelta {
			inst.Position = wire.Vector3Add(inst.Position, pos)
		} else {
			inst.Position = pos
		}
	}

	return checkOverflow(s)
}

func checkOverflow(s *wire.BitStream) error {
	if s.Overflowed() {
		return wire.ErrBitOverflow
	}

	return nil
}
