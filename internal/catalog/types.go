// Package catalog proxies the remote item-pricing provider and searches
// its item overviews.
package catalog

// ItemTypeAll is the pseudo item type that searches every entry in ItemTypes.
const ItemTypeAll = "All"

// ItemTypes lists the overview categories the provider serves, in the
// order search results are reported.
var ItemTypes = []string{
	"UniqueArmour",
	"UniqueWeapon",
	"UniqueFlask",
	"UniqueJewel",
	"UniqueAccessory",
	"Currency",
	"DivinationCard",
	"Map",
	"SkillGem",
	"Prophecy",
}

// Leagues lists the leagues offered in the search form.
var Leagues = []string{
	"Affliction",
	"Standard",
	"Hardcore",
	"Hardcore Affliction",
	"SSF Affliction",
	"SSF Standard",
	"SSF Hardcore",
	"SSF Hardcore Affliction",
}

// Modifier is one explicit modifier line of an item.
type Modifier struct {
	Text     string `json:"text"`
	Optional bool   `json:"optional,omitempty"`
}

// Item is one line of an item overview. Only the fields the application
// reads are modelled; the raw overview is forwarded verbatim elsewhere.
type Item struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Icon              string     `json:"icon,omitempty"`
	BaseType          string     `json:"baseType,omitempty"`
	TypeLine          string     `json:"typeLine,omitempty"`
	ItemClass         int        `json:"itemClass,omitempty"`
	LevelRequired     int        `json:"levelRequired,omitempty"`
	ChaosValue        float64    `json:"chaosValue"`
	DivineValue       float64    `json:"divineValue,omitempty"`
	ExplicitModifiers []Modifier `json:"explicitModifiers,omitempty"`
	FlavourText       string     `json:"flavourText,omitempty"`
	DetailsID         string     `json:"detailsId,omitempty"`
	ListingCount      int        `json:"listingCount,omitempty"`
	ItemType          string     `json:"itemType,omitempty"`
}

// Overview is the provider's response envelope.
type Overview struct {
	Lines []Item `json:"lines"`
}

// Meta describes the selectable item types and leagues.
type Meta struct {
	ItemTypes     []string `json:"itemTypes"`
	Leagues       []string `json:"leagues"`
	DefaultLeague string   `json:"defaultLeague"`
}

// KnownItemType reports whether t is one of ItemTypes.
func KnownItemType(t string) bool {
	for _, it := range ItemTypes {
		if it == t {
			return true
		}
	}
	return false
}
