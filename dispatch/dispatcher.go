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

// Package dispatch parses the application-layer TLV frame stream inside a
// reassembled reliable payload and applies each recognized packet code to
// a session's world. Grounded on tk_net.cpp's process_packet frame loop
// and handler table.
package dispatch

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/lootdb"
	"github.com/ucectoplasm/eft-packet/session"
)

// Direction distinguishes inbound (server to client) from outbound frames
// — a handful of codes (GameUpdate, inventory acknowledgments) are
// interpreted differently per direction.
type Direction int

const (
	Inbound Direction = iota
	Outbound
)

// Packet codes recognized by the dispatcher; all others are ignored.
const (
	codeServerInit      = 147
	codeWorldSpawn      = 151
	codeWorldUnspawn    = 152
	codeSubworldSpawn   = 153
	codeSubworldUnspawn = 154
	codePlayerSpawn     = 155
	codePlayerUnspawn   = 156
	codeObserverSpawn   = 157
	codeObserverUnspawn = 158
	codeBattleEye       = 168
	codeGameUpdate      = 170
)

// Context bundles the state a frame handler needs: the owning session's
// world, the item template table, a logger scoped to this dispatch pass,
// and the UNET channel the reassembled payload arrived on. The channel
// identifies which observer a player-frame GameUpdate belongs to: per
// spec.md §4.2 channels 3.. are allotted in reliable/unreliable pairs,
// one pair per observer, so the observer's channel id is (channel-3)/2.
type Context struct {
	Session *session.Session
	LootDB  *lootdb.Database
	Log     *zap.Logger
	Channel int
}

// Dispatch walks the TLV frame stream and applies every recognized frame
// to ctx.Session.World. Frame format (spec.md §4.6):
//
//	repeat until end:
//	  len:u16le
//	  code:i16le
//	  body: len-2 bytes
//	  advance (len+4) from the frame start
func Dispatch(ctx Context, dir Direction, payload []byte) error {
	pos := 0

	for pos+4 <= len(payload) {
		frameLen := int(binary.LittleEndian.Uint16(payload[pos : pos+2]))
		code := int16(binary.LittleEndian.Uint16(payload[pos+2 : pos+4]))

		bodyLen := frameLen - 2
		if bodyLen < 0 {
			return errors.Errorf("dispatch: negative body length in frame at offset %d", pos)
		}

		bodyStart := pos + 4
		bodyEnd := bodyStart + bodyLen

		if bodyEnd > len(payload) {
			return errors.Errorf("dispatch: frame at offset %d overruns payload", pos)
		}

		body := payload[bodyStart:bodyEnd]

		if err := dispatchOne(ctx, dir, code, body); err != nil {
			return errors.Wrapf(err, "dispatch: code %d", code)
		}

		pos += frameLen + 4
	}

	return nil
}

func dispatchOne(ctx Context, dir Direction, code int16, body []byte) error {
	switch code {
	case codeServerInit:
		return handleServerInit(ctx, body)
	case codeWorldSpawn, codeWorldUnspawn, codeSubworldUnspawn:
		return nil
	case codeSubworldSpawn:
		return handleSubworldSpawn(ctx, body)
	case codePlayerSpawn:
		return handleObserverSpawn(ctx, body, true)
	case codePlayerUnspawn:
		return handleObserverUnspawn(ctx, body)
	case codeObserverSpawn:
		return handleObserverSpawn(ctx, body, false)
	case codeObserverUnspawn:
		return handleObserverUnspawn(ctx, body)
	case codeBattleEye:
		return nil
	case codeGameUpdate:
		return handleGameUpdate(ctx, dir, body)
	default:
		return nil
	}
}
