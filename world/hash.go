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

import "unicode/utf16"

// csharpHashSeed is the legacy .NET string hash seed 0x15051505, i.e.
// (5381 << 16) + 5381.
const csharpHashSeed int32 = 0x15051505

// CSharpStringHash reproduces the engine's 32-bit string hash: a two-stream
// xor-shift-add over consecutive UTF-16 code units, combined as
// h1 + h2*1566083941. Loot-position-sync packets address items by this
// hash rather than by their string id, so it must match the engine exactly.
func CSharpStringHash(s string) uint32 {
	units := utf16.Encode([]rune(s))

	hash1 := csharpHashSeed
	hash2 := csharpHashSeed

	for i := 0; i < len(units); i += 2 {
		hash1 = ((hash1 << 5) + hash1 + (hash1 >> 27)) ^ int32(units[i])

		if i+1 >= len(units) {
			break
		}

		hash2 = ((hash2 << 5) + hash2 + (hash2 >> 27)) ^ int32(units[i+1])
	}

	return uint32(hash1 + hash2*1566083941)
}
