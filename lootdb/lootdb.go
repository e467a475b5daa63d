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

// Package lootdb loads the immutable item template table: an id -> name,
// price, dimensions, rarity lookup consulted while building loot instance
// trees. Grounded on the original's LootDatabase JSON loader (json11 there,
// json-iterator here), lookups need no lock once loaded.
package lootdb

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Rarity mirrors the engine's item rarity enum.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RaritySuperRare
	RarityNotExist
)

func (r Rarity) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RaritySuperRare:
		return "superrare"
	case RarityNotExist:
		return "not_exist"
	default:
		return "common"
	}
}

// Template is one item's static data.
type Template struct {
	ID         string
	Name       string
	Price      int64
	Lootable   bool
	Rarity     Rarity
	BundlePath string
	Width      int
	Height     int
}

// Category assigns a display color and optional beam height to a rarity
// tier, consumed by the world snapshot contract's rendering collaborators.
type Category struct {
	Name       string
	Color      [3]uint8
	BeamHeight float64
}

// Database is the read-only, immutable-after-load item template table.
type Database struct {
	templates map[string]*Template
}

type rawItem struct {
	Props struct {
		Name      string `json:"Name"`
		ShortName string `json:"ShortName"`
		Width     int    `json:"Width"`
		Height    int    `json:"Height"`
	} `json:"_props"`
	Name         string `json:"_name"`
	CreditsPrice int64  `json:"CreditsPrice"`
	Unlootable   bool   `json:"Unlootable"`
	RarityRaw    string `json:"Rarity"`
	Prefab       struct {
		Path string `json:"path"`
	} `json:"Prefab"`
}

func (r rawItem) toTemplate(id string) *Template {
	name := r.Props.Name
	if name == "" {
		name = r.Props.ShortName
	}

	if name == "" {
		name = r.Name
	}

	var rarity Rarity

	switch r.RarityRaw {
	case "Rare":
		rarity = RarityRare
	case "Superrare":
		rarity = RaritySuperRare
	case "Not_exist":
		rarity = RarityNotExist
	default:
		rarity = RarityCommon
	}

	return &Template{
		ID:         id,
		Name:       name,
		Price:      r.CreditsPrice,
		Lootable:   !r.Unlootable,
		Rarity:     rarity,
		BundlePath: r.Prefab.Path,
		Width:      r.Props.Width,
		Height:     r.Props.Height,
	}
}

// Load reads and decodes the item table JSON file at path. The document is
// expected to carry a top-level "data" object keyed by template id, the
// same shape the original json11-based loader consumed.
func Load(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lootdb: read %q", path)
	}

	var doc struct {
		Data map[string]rawItem `json:"data"`
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "lootdb: decode item table")
	}

	db := &Database{templates: make(map[string]*Template, len(doc.Data))}

	for id, item := range doc.Data {
		db.templates[id] = item.toTemplate(id)
	}

	return db, nil
}

// QueryTemplate looks up a template by id.
func (db *Database) QueryTemplate(id string) (*Template, bool) {
	t, ok := db.templates[id]

	return t, ok
}

// CategoryFor resolves the display category for a template.
func (db *Database) CategoryFor(id string) (Category, bool) {
	t, ok := db.templates[id]
	if !ok {
		return Category{}, false
	}

	return categoryForRarity(t.Rarity), true
}

func categoryForRarity(r Rarity) Category {
	switch r {
	case RaritySuperRare:
		return Category{Name: "superrare", Color: [3]uint8{255, 215, 0}, BeamHeight: 200}
	case RarityRare:
		return Category{Name: "rare", Color: [3]uint8{153, 101, 21}, BeamHeight: 120}
	case RarityNotExist:
		return Category{Name: "not_exist"}
	default:
		return Category{Name: "common", Color: [3]uint8{255, 255, 255}}
	}
}
