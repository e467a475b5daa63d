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

import "github.com/ucectoplasm/eft-packet/wire"

// The following are the flat (non-recursive) per-component descriptors
// attached to an ItemDescriptor.Components list. Field layouts follow the
// variant's name semantics in the engine's item component model; grounded
// on tk_loot.cpp's matching read() bodies where available, synthesized
// from spec.md §4.4's description of the component family otherwise.

type FoodDrinkComponentDescriptor struct {
	HpPercent float64
}

func readFoodDrinkComponent(s *wire.BitStream) FoodDrinkComponentDescriptor {
	return FoodDrinkComponentDescriptor{HpPercent: s.ReadLimitedFloat(0, 1, 0.01)}
}

type ResourceItemComponentDescriptor struct {
	Resource float64
}

func readResourceItemComponent(s *wire.BitStream) ResourceItemComponentDescriptor {
	return ResourceItemComponentDescriptor{Resource: s.ReadLimitedFloat(0, 100, 0.01)}
}

type LightComponentDescriptor struct {
	IsActive     bool
	SelectedMode int32
}

func readLightComponent(s *wire.BitStream) LightComponentDescriptor {
	return LightComponentDescriptor{
		IsActive:     s.ReadBool(),
		SelectedMode: s.ReadLimitedInt32(0, 7),
	}
}

type LockableComponentDescriptor struct {
	Locked bool
}

func readLockableComponent(s *wire.BitStream) LockableComponentDescriptor {
	return LockableComponentDescriptor{Locked: s.ReadBool()}
}

// LogicMapMarker is a single marker placed on the in-raid map item.
type LogicMapMarker struct {
	X, Y  int32
	Note  string
	Color int32
}

type InventoryLogicMapMarker struct {
	Markers []LogicMapMarker
}

func readLogicMapMarker(s *wire.BitStream) InventoryLogicMapMarker {
	n := int(s.ReadLimitedInt32(0, 64))
	markers := make([]LogicMapMarker, 0, n)

	for i := 0; i < n; i++ {
		markers = append(markers, LogicMapMarker{
			X:     s.ReadInt32(),
			Y:     s.ReadInt32(),
			Note:  s.ReadString(maxStringChars),
			Color: s.ReadLimitedInt32(0, 15),
		})
	}

	return InventoryLogicMapMarker{Markers: markers}
}

type MapComponentDescriptor struct {
	Markers InventoryLogicMapMarker
}

func readMapComponent(s *wire.BitStream) MapComponentDescriptor {
	return MapComponentDescriptor{Markers: readLogicMapMarker(s)}
}

type MedKitComponentDescriptor struct {
	HpResource float64
}

func readMedKitComponent(s *wire.BitStream) MedKitComponentDescriptor {
	return MedKitComponentDescriptor{HpResource: s.ReadLimitedFloat(0, 2000, 1)}
}

type RepairableComponentDescriptor struct {
	Durability    float64
	MaxDurability float64
}

func readRepairableComponent(s *wire.BitStream) RepairableComponentDescriptor {
	return RepairableComponentDescriptor{
		Durability:    s.ReadLimitedFloat(0, 200, 0.01),
		MaxDurability: s.ReadLimitedFloat(0, 200, 0.01),
	}
}

type SightComponentDescriptor struct {
	ScopeIndex     int32
	ScopeZoomValue int32
}

func readSightComponent(s *wire.BitStream) SightComponentDescriptor {
	return SightComponentDescriptor{
		ScopeIndex:     s.ReadLimitedInt32(0, 3),
		ScopeZoomValue: s.ReadLimitedInt32(0, 3),
	}
}

type TogglableComponentDescriptor struct {
	On bool
}

func readTogglableComponent(s *wire.BitStream) TogglableComponentDescriptor {
	return TogglableComponentDescriptor{On: s.ReadBool()}
}

type FaceShieldComponentDescriptor struct {
	HitCount int32
}

func readFaceShieldComponent(s *wire.BitStream) FaceShieldComponentDescriptor {
	return FaceShieldComponentDescriptor{HitCount: s.ReadLimitedInt32(0, 255)}
}

type FoldableComponentDescriptor struct {
	Folded bool
}

func readFoldableComponent(s *wire.BitStream) FoldableComponentDescriptor {
	return FoldableComponentDescriptor{Folded: s.ReadBool()}
}

type FireModeComponentDescriptor struct {
	FireMode int32
}

func readFireModeComponent(s *wire.BitStream) FireModeComponentDescriptor {
	return FireModeComponentDescriptor{FireMode: s.ReadLimitedInt32(0, 7)}
}

type DogTagComponentDescriptor struct {
	AccountID       string
	Nickname        string
	Side            int32
	Level           int32
	Time            int32
	Status          string
	KillerAccountID string
	KillerName      string
	WeaponName      string
}

func readDogTagComponent(s *wire.BitStream) DogTagComponentDescriptor {
	return DogTagComponentDescriptor{
		AccountID:       s.ReadString(maxStringChars),
		Nickname:        s.ReadString(maxStringChars),
		Side:            s.ReadLimitedInt32(0, 4),
		Level:           s.ReadLimitedInt32(0, 100),
		Time:            s.ReadInt32(),
		Status:          s.ReadString(maxStringChars),
		KillerAccountID: s.ReadString(maxStringChars),
		KillerName:      s.ReadString(maxStringChars),
		WeaponName:      s.ReadString(maxStringChars),
	}
}

type TagComponentDescriptor struct {
	Name  string
	Color int32
}

func readTagComponent(s *wire.BitStream) TagComponentDescriptor {
	return TagComponentDescriptor{
		Name:  s.ReadString(maxStringChars),
		Color: s.ReadLimitedInt32(0, 15),
	}
}

type KeyComponentDescriptor struct {
	NumberOfUsages int32
}

func readKeyComponent(s *wire.BitStream) KeyComponentDescriptor {
	return KeyComponentDescriptor{NumberOfUsages: s.ReadLimitedInt32(0, 255)}
}
