// Package picker implements the per-slot equipment chooser: unique items
// from the price catalog, or a base item plus a set of desired affixes.
package picker

import "github.com/ziadkadry99/poe2genie/internal/build"

// Category groups base items by the slot they fit.
type Category string

const (
	CategoryWeapon  Category = "Weapon"
	CategoryOffhand Category = "Offhand"
	CategoryHelmet  Category = "Helmet"
	CategoryChest   Category = "Chest"
	CategoryGloves  Category = "Gloves"
	CategoryBoots   Category = "Boots"
	CategoryBelt    Category = "Belt"
	CategoryAmulet  Category = "Amulet"
	CategoryRing    Category = "Ring"
)

// Accepts reports whether a base of category c can go in a slot of this
// category. Offhand slots also take weapons.
func (c Category) Accepts(base Category) bool {
	if base == c {
		return true
	}
	return c == CategoryOffhand && base == CategoryWeapon
}

// SlotSpec describes how a slot is populated.
type SlotSpec struct {
	Slot     build.Slot `json:"slot"`
	Label    string     `json:"label"`
	ItemType string     `json:"itemType"`
	Category Category   `json:"category"`
}

// Specs lists every slot in display order.
var Specs = []SlotSpec{
	{build.SlotWeapon, "Weapon", "UniqueWeapon", CategoryWeapon},
	{build.SlotOffhand, "Offhand", "UniqueWeapon", CategoryOffhand},
	{build.SlotHelmet, "Helmet", "UniqueArmour", CategoryHelmet},
	{build.SlotChest, "Chest", "UniqueArmour", CategoryChest},
	{build.SlotGloves, "Gloves", "UniqueArmour", CategoryGloves},
	{build.SlotBoots, "Boots", "UniqueArmour", CategoryBoots},
	{build.SlotBelt, "Belt", "UniqueAccessory", CategoryBelt},
	{build.SlotAmulet, "Amulet", "UniqueAccessory", CategoryAmulet},
	{build.SlotRing1, "Ring 1", "UniqueAccessory", CategoryRing},
	{build.SlotRing2, "Ring 2", "UniqueAccessory", CategoryRing},
}

// SpecFor returns the spec of slot s.
func SpecFor(s build.Slot) (SlotSpec, bool) {
	for _, spec := range Specs {
		if spec.Slot == s {
			return spec, true
		}
	}
	return SlotSpec{}, false
}
