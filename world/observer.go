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

import "github.com/ucectoplasm/eft-packet/wire"

// Kind classifies the entity behind an Observer.
type Kind int

const (
	KindSelf Kind = iota
	KindPlayer
	KindScav
)

// String renders a Kind for logging.
func (k Kind) String() string {
	switch k {
	case KindSelf:
		return "self"
	case KindPlayer:
		return "player"
	case KindScav:
		return "scav"
	default:
		return "unknown"
	}
}

// Observer is an in-world entity: the local player (KindSelf), another
// human player, or a scav/bot. Channel id is the primary key in the
// Map's observer table; lookup also falls back to channel-1, an empirical
// off-by-one quirk in the server's channel encoding (spec.md §9).
type Observer struct {
	PersistentID string
	CID          int
	PlayerID     int
	Kind         Kind
	Name         string
	GroupID      string
	Position     wire.Vector3
	Rotation     wire.Vector3
	Level        int
	IsDead       bool
	IsNPC        bool
	IsUnspawned  bool
}

// PlaceholderObserver builds the "UNKNOWN?!" stand-in created when a
// GameUpdate frame references a channel id the world has never seen a
// spawn for (spec.md §4.6, §7, §9 "Phantom observers").
func PlaceholderObserver(cid int) *Observer {
	return &Observer{
		PlayerID: -1,
		CID:      cid,
		Kind:     KindPlayer,
		Name:     "UNKNOWN?!",
	}
}
