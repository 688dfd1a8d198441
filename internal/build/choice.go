package build

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Affix is a modifier category a base item can roll.
type Affix string

const (
	AffixLife                Affix = "Life"
	AffixMana                Affix = "Mana"
	AffixEnergyShield        Affix = "Energy Shield"
	AffixArmour              Affix = "Armour"
	AffixEvasion             Affix = "Evasion"
	AffixFireResistance      Affix = "Fire Resistance"
	AffixColdResistance      Affix = "Cold Resistance"
	AffixLightningResistance Affix = "Lightning Resistance"
	AffixChaosResistance     Affix = "Chaos Resistance"
	AffixStrength            Affix = "Strength"
	AffixDexterity           Affix = "Dexterity"
	AffixIntelligence        Affix = "Intelligence"
	AffixAttackSpeed         Affix = "Attack Speed"
	AffixCastSpeed           Affix = "Cast Speed"
	AffixCritChance          Affix = "Critical Strike Chance"
	AffixCritMultiplier      Affix = "Critical Strike Multiplier"
	AffixPhysicalDamage      Affix = "Physical Damage"
	AffixElementalDamage     Affix = "Elemental Damage"
	AffixSpellDamage         Affix = "Spell Damage"
	AffixMovementSpeed       Affix = "Movement Speed"
	AffixAccuracy            Affix = "Accuracy Rating"
)

// Affixes lists every affix category in display order.
var Affixes = []Affix{
	AffixLife, AffixMana, AffixEnergyShield, AffixArmour, AffixEvasion,
	AffixFireResistance, AffixColdResistance, AffixLightningResistance, AffixChaosResistance,
	AffixStrength, AffixDexterity, AffixIntelligence,
	AffixAttackSpeed, AffixCastSpeed, AffixCritChance, AffixCritMultiplier,
	AffixPhysicalDamage, AffixElementalDamage, AffixSpellDamage,
	AffixMovementSpeed, AffixAccuracy,
}

// ChoiceKind tags the variant of a Choice.
type ChoiceKind string

const (
	KindUnique ChoiceKind = "unique"
	KindBase   ChoiceKind = "base"
)

// Choice is what a player picked for one equipment slot. It is either a
// Unique or a Base; no other implementations exist.
type Choice interface {
	Kind() ChoiceKind
	isChoice()
}

// Unique is a specific named item.
type Unique struct {
	Name string
}

// Base is an archetype item plus the affix categories the player wants on it.
type Base struct {
	BaseType string
	Affixes  []Affix
}

func (Unique) Kind() ChoiceKind { return KindUnique }
func (Base) Kind() ChoiceKind   { return KindBase }
func (Unique) isChoice()        {}
func (Base) isChoice()          {}

// NewBase returns a Base with its affixes sorted and deduplicated.
func NewBase(baseType string, affixes ...Affix) Base {
	return Base{BaseType: baseType, Affixes: normalizeAffixes(affixes)}
}

// HasAffix reports whether a is among the wanted affixes.
func (b Base) HasAffix(a Affix) bool {
	for _, x := range b.Affixes {
		if x == a {
			return true
		}
	}
	return false
}

// ToggleAffix returns a copy of b with a added or removed.
func (b Base) ToggleAffix(a Affix) Base {
	out := make([]Affix, 0, len(b.Affixes)+1)
	found := false
	for _, x := range b.Affixes {
		if x == a {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, a)
	}
	return Base{BaseType: b.BaseType, Affixes: normalizeAffixes(out)}
}

func normalizeAffixes(in []Affix) []Affix {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Affix]struct{}, len(in))
	out := make([]Affix, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsEmpty reports whether the choice leaves the slot unset.
func IsEmpty(c Choice) bool {
	switch v := c.(type) {
	case nil:
		return true
	case Unique:
		return v.Name == ""
	case Base:
		return v.BaseType == "" && len(v.Affixes) == 0
	default:
		panic(fmt.Sprintf("build: unknown choice %T", c))
	}
}

// Describe renders a choice as a single display line.
func Describe(c Choice) string {
	switch v := c.(type) {
	case nil:
		return ""
	case Unique:
		return v.Name
	case Base:
		if len(v.Affixes) == 0 {
			return v.BaseType
		}
		names := make([]string, len(v.Affixes))
		for i, a := range v.Affixes {
			names[i] = string(a)
		}
		return fmt.Sprintf("%s (%s)", v.BaseType, strings.Join(names, ", "))
	default:
		panic(fmt.Sprintf("build: unknown choice %T", c))
	}
}

// choiceJSON is the wire shape of a Choice. Affixes is a pointer so an
// empty affix list and an absent one encode differently.
type choiceJSON struct {
	Kind     ChoiceKind `json:"kind"`
	Name     string     `json:"name,omitempty"`
	BaseType string     `json:"baseType,omitempty"`
	Affixes  *[]Affix   `json:"affixes,omitempty"`
}

// encodeChoice returns nil for a nil choice, which is written as null.
func encodeChoice(c Choice) *choiceJSON {
	switch v := c.(type) {
	case nil:
		return nil
	case Unique:
		return &choiceJSON{Kind: KindUnique, Name: v.Name}
	case Base:
		cj := &choiceJSON{Kind: KindBase, BaseType: v.BaseType}
		if v.Affixes != nil {
			cj.Affixes = &v.Affixes
		}
		return cj
	default:
		panic(fmt.Sprintf("build: unknown choice %T", c))
	}
}

func decodeChoice(raw json.RawMessage) (Choice, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return nil, nil
	}
	// Links made before base items existed store the unique name directly.
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, err
		}
		return Unique{Name: name}, nil
	}

	var cj choiceJSON
	if err := json.Unmarshal(raw, &cj); err != nil {
		return nil, err
	}
	switch cj.Kind {
	case KindBase:
		b := Base{BaseType: cj.BaseType}
		if cj.Affixes != nil {
			b.Affixes = *cj.Affixes
		}
		return b, nil
	case KindUnique, "":
		return Unique{Name: cj.Name}, nil
	default:
		return nil, fmt.Errorf("unknown choice kind %q", cj.Kind)
	}
}

// MarshalJSON encodes each slot as a tagged object. A nil map is written as
// null so it stays distinct from an empty one.
func (e Equipment) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	out := make(map[Slot]*choiceJSON, len(e))
	for slot, c := range e {
		out[slot] = encodeChoice(c)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts tagged objects and plain unique-name strings.
func (e *Equipment) UnmarshalJSON(data []byte) error {
	var raw map[Slot]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*e = nil
		return nil
	}
	out := make(Equipment, len(raw))
	for slot, msg := range raw {
		c, err := decodeChoice(msg)
		if err != nil {
			return fmt.Errorf("slot %s: %w", slot, err)
		}
		out[slot] = c
	}
	*e = out
	return nil
}
