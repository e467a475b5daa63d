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
	"go.uber.org/zap"

	"github.com/ucectoplasm/eft-packet/wire"
)

// handleServerInit reads the encryption flag and the map's quantization
// bounds (spec.md §4.6). Once the encryption flag is set, GameUpdate
// frames stop being parseable for the rest of the session.
func handleServerInit(ctx Context, body []byte) error {
	s := wire.NewBitStream(body)

	encrypted := s.ReadBool()
	min := s.ReadRawVector3()
	max := s.ReadRawVector3()

	if s.Overflowed() {
		return wire.ErrBitOverflow
	}

	w := ctx.Session.World
	w.Lock()
	w.SetBounds(min, max)
	w.Unlock()

	ctx.Session.Encrypted = encrypted

	if ctx.Log != nil {
		ctx.Log.Info("server init",
			zap.Bool("encrypted", encrypted),
			zap.Float64("min_x", min.X), zap.Float64("min_y", min.Y), zap.Float64("min_z", min.Z),
			zap.Float64("max_x", max.X), zap.Float64("max_y", max.Y), zap.Float64("max_z", max.Z),
		)
	}

	return nil
}
