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
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/ucectoplasm/eft-packet/wire"
)

var profileJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// profile is the subset of the zlib-compressed player profile JSON the
// world model needs: nickname, level, side, group id and account id
// (spec.md §4.6 "used to extract nickname, level, side, group id, and
// role").
type profile struct {
	Nickname  string `json:"Nickname"`
	Level     int    `json:"Level"`
	Side      string `json:"Side"`
	GroupID   string `json:"GroupId"`
	AccountID string `json:"AccountId"`
}

// decodeProfile inflates a zlib-compressed JSON profile blob and decodes
// the fields the world model tracks.
func decodeProfile(compressed []byte) (profile, error) {
	raw, err := wire.InflateZlib(compressed)
	if err != nil {
		return profile{}, errors.Wrap(err, "profile: inflate")
	}

	var p profile
	if err := profileJSON.Unmarshal(raw, &p); err != nil {
		return profile{}, errors.Wrap(err, "profile: decode")
	}

	return p, nil
}
