package picker

// BaseItem is an archetype item that can roll affixes.
type BaseItem struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// BaseItems is the static archetype list offered in base mode.
var BaseItems = []BaseItem{
	{"Vaal Axe", CategoryWeapon},
	{"Karui Chopper", CategoryWeapon},
	{"Jewelled Foil", CategoryWeapon},
	{"Imperial Claw", CategoryWeapon},
	{"Ambusher", CategoryWeapon},
	{"Thicket Bow", CategoryWeapon},
	{"Imbued Wand", CategoryWeapon},
	{"Void Sceptre", CategoryWeapon},
	{"Eclipse Staff", CategoryWeapon},
	{"Coronal Maul", CategoryWeapon},
	{"Titanium Spirit Shield", CategoryOffhand},
	{"Pinnacle Tower Shield", CategoryOffhand},
	{"Archon Kite Shield", CategoryOffhand},
	{"Spike-Point Arrow Quiver", CategoryOffhand},
	{"Royal Burgonet", CategoryHelmet},
	{"Hubris Circlet", CategoryHelmet},
	{"Lion Pelt", CategoryHelmet},
	{"Bone Helmet", CategoryHelmet},
	{"Glorious Plate", CategoryChest},
	{"Vaal Regalia", CategoryChest},
	{"Astral Plate", CategoryChest},
	{"Assassin's Garb", CategoryChest},
	{"Carnal Armour", CategoryChest},
	{"Titan Gauntlets", CategoryGloves},
	{"Sorcerer Gloves", CategoryGloves},
	{"Slink Gloves", CategoryGloves},
	{"Spiked Gloves", CategoryGloves},
	{"Titan Greaves", CategoryBoots},
	{"Sorcerer Boots", CategoryBoots},
	{"Slink Boots", CategoryBoots},
	{"Two-Toned Boots", CategoryBoots},
	{"Leather Belt", CategoryBelt},
	{"Heavy Belt", CategoryBelt},
	{"Stygian Vise", CategoryBelt},
	{"Crystal Belt", CategoryBelt},
	{"Onyx Amulet", CategoryAmulet},
	{"Marble Amulet", CategoryAmulet},
	{"Citrine Amulet", CategoryAmulet},
	{"Agate Amulet", CategoryAmulet},
	{"Diamond Ring", CategoryRing},
	{"Two-Stone Ring", CategoryRing},
	{"Vermillion Ring", CategoryRing},
	{"Amethyst Ring", CategoryRing},
}
