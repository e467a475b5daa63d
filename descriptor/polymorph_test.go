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
	"errors"
	"testing"

	"github.com/ucectoplasm/eft-packet/wire"
)

func TestReadPolymorphTogglableComponent(t *testing.T) {
	s := wire.NewBitStream([]byte{byte(TagTogglableComponent), 0x80})

	p, err := ReadPolymorph(s)
	if err != nil {
		t.Fatalf("ReadPolymorph returned an error: %v", err)
	}

	if p.Tag != TagTogglableComponent {
		t.Errorf("Tag = %v, want %v", p.Tag, TagTogglableComponent)
	}

	v, ok := p.Value.(TogglableComponentDescriptor)
	if !ok {
		t.Fatalf("Value has type %T, want TogglableComponentDescriptor", p.Value)
	}

	if !v.On {
		t.Errorf("On = false, want true")
	}
}

func TestReadPolymorphFaceShieldComponent(t *testing.T) {
	// HitCount is a 9-bit limited int (0..255): 3 = 000000011 after the tag byte.
	s := wire.NewBitStream([]byte{byte(TagFaceShieldComponent), 0x01, 0x80})

	p, err := ReadPolymorph(s)
	if err != nil {
		t.Fatalf("ReadPolymorph returned an error: %v", err)
	}

	v, ok := p.Value.(FaceShieldComponentDescriptor)
	if !ok {
		t.Fatalf("Value has type %T, want FaceShieldComponentDescriptor", p.Value)
	}

	if v.HitCount != 3 {
		t.Errorf("HitCount = %d, want 3", v.HitCount)
	}
}

func TestReadPolymorphUnknownTagIsFatal(t *testing.T) {
	s := wire.NewBitStream([]byte{0xFF})

	_, err := ReadPolymorph(s)
	if err == nil {
		t.Fatalf("ReadPolymorph with an unregistered tag should return an error")
	}

	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("error = %v, want it to wrap ErrUnknownTag", err)
	}
}
