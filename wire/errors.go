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

package wire

import "github.com/pkg/errors"

// ErrBitOverflow is returned (and sticks) once a BitReader is asked to read
// past the end of its buffer.
var ErrBitOverflow = errors.New("wire: bit reader overflow")

// ErrStringTooLong guards against a corrupt length prefix turning a string
// read into an unbounded allocation.
var ErrStringTooLong = errors.New("wire: string length exceeds limit")

// ErrShortBuffer is returned by the byte-stream reader when fewer bytes
// remain than requested.
var ErrShortBuffer = errors.New("wire: short buffer")
