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

// Package types holds the CSV/JSON-exportable records fed to the world
// snapshot contract's external surfaces (spec.md §6). Grounded on the
// teacher's audit-record CSVHeader()/CSVRecord() convention in
// types/vrrpv2.go, repurposed here from a per-packet audit row to a
// per-observer/per-loot-instance world snapshot row.
package types

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/ucectoplasm/eft-packet/wire"
	"github.com/ucectoplasm/eft-packet/world"
)

var snapshotJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var fieldsObserver = []string{
	"PersistentID",
	"CID",
	"PlayerID",
	"Kind",
	"Name",
	"GroupID",
	"PosX", "PosY", "PosZ",
	"RotX", "RotY",
	"Level",
	"IsDead",
	"IsNPC",
	"IsUnspawned",
}

// ObserverRow is one CSV/JSON row describing a tracked observer.
type ObserverRow struct {
	PersistentID string
	CID          int
	PlayerID     int
	Kind         string
	Name         string
	GroupID      string
	PosX, PosY, PosZ float64
	RotX, RotY       float64
	Level        int
	IsDead       bool
	IsNPC        bool
	IsUnspawned  bool
}

// ObserverRowFrom builds an ObserverRow from a live world.Observer.
func ObserverRowFrom(o *world.Observer) ObserverRow {
	return ObserverRow{
		PersistentID: o.PersistentID,
		CID:          o.CID,
		PlayerID:     o.PlayerID,
		Kind:         o.Kind.String(),
		Name:         o.Name,
		GroupID:      o.GroupID,
		PosX:         o.Position.X,
		PosY:         o.Position.Y,
		PosZ:         o.Position.Z,
		RotX:         o.Rotation.X,
		RotY:         o.Rotation.Y,
		Level:        o.Level,
		IsDead:       o.IsDead,
		IsNPC:        o.IsNPC,
		IsUnspawned:  o.IsUnspawned,
	}
}

// CSVHeader returns the CSV header for an observer row.
func (ObserverRow) CSVHeader() []string { return fieldsObserver }

// CSVRecord returns the CSV field values for this observer row.
func (r ObserverRow) CSVRecord() []string {
	return []string{
		r.PersistentID,
		strconv.Itoa(r.CID),
		strconv.Itoa(r.PlayerID),
		r.Kind,
		r.Name,
		r.GroupID,
		formatFloat(r.PosX), formatFloat(r.PosY), formatFloat(r.PosZ),
		formatFloat(r.RotX), formatFloat(r.RotY),
		strconv.Itoa(r.Level),
		strconv.FormatBool(r.IsDead),
		strconv.FormatBool(r.IsNPC),
		strconv.FormatBool(r.IsUnspawned),
	}
}

// JSON marshals the row via the shared jsoniter configuration.
func (r ObserverRow) JSON() (string, error) {
	return snapshotJSON.MarshalToString(r)
}

var fieldsLoot = []string{
	"ID",
	"ParentID",
	"CSharpHash",
	"Owner",
	"TemplateID",
	"TemplateName",
	"Rarity",
	"Price",
	"StackCount",
	"PosX", "PosY", "PosZ",
	"Highlighted",
	"Inaccessible",
}

// LootRow is one CSV/JSON row describing a tracked loot instance.
type LootRow struct {
	ID           string
	ParentID     string
	CSharpHash   uint32
	Owner        int
	TemplateID   string
	TemplateName string
	Rarity       string
	Price        int64
	StackCount   int32
	PosX, PosY, PosZ float64
	Highlighted  bool
	Inaccessible bool
}

// LootRowFrom builds a LootRow from a live world.LootInstance.
func LootRowFrom(l *world.LootInstance) LootRow {
	row := LootRow{
		ID:           l.ID,
		ParentID:     l.ParentID,
		CSharpHash:   l.CSharpHash,
		Owner:        l.Owner,
		StackCount:   l.StackCount,
		PosX:         l.Position.X,
		PosY:         l.Position.Y,
		PosZ:         l.Position.Z,
		Highlighted:  l.Highlighted,
		Inaccessible: l.Inaccessible,
	}

	if l.Template != nil {
		row.TemplateID = l.Template.ID
		row.TemplateName = l.Template.Name
		row.Rarity = l.Template.Rarity.String()
		row.Price = l.Template.Price
	}

	return row
}

// CSVHeader returns the CSV header for a loot row.
func (LootRow) CSVHeader() []string { return fieldsLoot }

// CSVRecord returns the CSV field values for this loot row.
func (r LootRow) CSVRecord() []string {
	return []string{
		r.ID,
		r.ParentID,
		strconv.FormatUint(uint64(r.CSharpHash), 10),
		strconv.Itoa(r.Owner),
		r.TemplateID,
		r.TemplateName,
		r.Rarity,
		strconv.FormatInt(r.Price, 10),
		strconv.Itoa(int(r.StackCount)),
		formatFloat(r.PosX), formatFloat(r.PosY), formatFloat(r.PosZ),
		strconv.FormatBool(r.Highlighted),
		strconv.FormatBool(r.Inaccessible),
	}
}

// JSON marshals the row via the shared jsoniter configuration.
func (r LootRow) JSON() (string, error) {
	return snapshotJSON.MarshalToString(r)
}

// Snapshot is the full external world-state projection (spec.md §6's
// "World snapshot contract"): bounds, observers, loot and static corpse
// markers as of the instant it was built.
type Snapshot struct {
	Min, Max  wire.Vector3
	Observers []ObserverRow
	Loot      []LootRow
	Corpses   [][3]float64
}

// BuildSnapshot copies m's current state into row form under m's read
// lock, so callers never hold the lock while serializing. Loot template
// metadata (name, rarity, price) is already resolved on each LootInstance
// at tree-build time, so no lootdb lookup happens here.
func BuildSnapshot(m *world.Map) Snapshot {
	m.RLock()
	defer m.RUnlock()

	min, max := m.Min, m.Max

	observers := m.Observers()
	obsRows := make([]ObserverRow, 0, len(observers))

	for _, o := range observers {
		obsRows = append(obsRows, ObserverRowFrom(o))
	}

	loot := m.AllLoot()
	lootRows := make([]LootRow, 0, len(loot))

	for _, l := range loot {
		lootRows = append(lootRows, LootRowFrom(l))
	}

	corpses := m.StaticCorpses()
	corpseRows := make([][3]float64, 0, len(corpses))

	for _, c := range corpses {
		corpseRows = append(corpseRows, [3]float64{c.X, c.Y, c.Z})
	}

	return Snapshot{
		Min:       min,
		Max:       max,
		Observers: obsRows,
		Loot:      lootRows,
		Corpses:   corpseRows,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
