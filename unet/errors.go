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

package unet

import "github.com/pkg/errors"

var (
	// ErrBadChannel is returned when a sub-message's channel id exceeds
	// MaxChannel — the engine's channel table has no such entry, so the
	// remainder of the datagram can no longer be trusted to resync.
	ErrBadChannel = errors.New("unet: channel id exceeds max channel")

	// ErrShortSubMessage is returned when a sub-message header or its
	// declared length runs past the end of the datagram.
	ErrShortSubMessage = errors.New("unet: truncated sub-message")
)
