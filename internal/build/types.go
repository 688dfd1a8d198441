// Package build defines the saved character build and the reversible
// share-token encoding used to embed one inside a link.
package build

// CharacterClass is the starting class of a build.
type CharacterClass string

const (
	ClassWitch    CharacterClass = "Witch"
	ClassShadow   CharacterClass = "Shadow"
	ClassRanger   CharacterClass = "Ranger"
	ClassDuelist  CharacterClass = "Duelist"
	ClassMarauder CharacterClass = "Marauder"
	ClassTemplar  CharacterClass = "Templar"
	ClassScion    CharacterClass = "Scion"
)

// Classes lists the known classes in display order.
var Classes = []CharacterClass{
	ClassWitch, ClassShadow, ClassRanger, ClassDuelist, ClassMarauder, ClassTemplar, ClassScion,
}

// Known reports whether c is one of the seven playable classes.
func (c CharacterClass) Known() bool {
	for _, k := range Classes {
		if c == k {
			return true
		}
	}
	return false
}

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon  Slot = "weapon"
	SlotOffhand Slot = "offhand"
	SlotHelmet  Slot = "helmet"
	SlotChest   Slot = "chest"
	SlotGloves  Slot = "gloves"
	SlotBoots   Slot = "boots"
	SlotBelt    Slot = "belt"
	SlotAmulet  Slot = "amulet"
	SlotRing1   Slot = "ring1"
	SlotRing2   Slot = "ring2"
)

// Slots lists the ten equipment slots in display order.
var Slots = []Slot{
	SlotWeapon, SlotOffhand, SlotHelmet, SlotChest, SlotGloves,
	SlotBoots, SlotBelt, SlotAmulet, SlotRing1, SlotRing2,
}

// Equipment maps slots to the player's choice for that slot. A missing slot,
// a nil choice and an empty Unique all mean "not specified".
type Equipment map[Slot]Choice

// Build is a saved character configuration.
type Build struct {
	Name           string           `json:"name"`
	CharacterClass CharacterClass   `json:"characterClass"`
	Description    string           `json:"description,omitempty"`
	Equipment      Equipment        `json:"equipment"`
	Notes          string           `json:"notes,omitempty"`
	Passives       PassiveSelection `json:"passives"`
}

// New returns an empty build for the first class with every slot unset.
func New() Build {
	eq := make(Equipment, len(Slots))
	for _, s := range Slots {
		eq[s] = Unique{}
	}
	return Build{CharacterClass: Classes[0], Equipment: eq}
}

// Item returns the choice for a slot, or an empty Unique when unset.
func (b Build) Item(s Slot) Choice {
	if c, ok := b.Equipment[s]; ok && c != nil {
		return c
	}
	return Unique{}
}
