package picker

import (
	"fmt"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// Mode selects which kind of Choice a Picker produces.
type Mode string

const (
	ModeUnique Mode = "unique"
	ModeBase   Mode = "base"
)

// ParseMode accepts "unique", "base" or "" (unique).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeUnique:
		return ModeUnique, nil
	case ModeBase:
		return ModeBase, nil
	default:
		return "", fmt.Errorf("unknown picker mode %q", s)
	}
}

// Picker holds the editing state of one slot. Both modes keep their inputs
// while the other is active; only Choice decides what gets saved.
type Picker struct {
	Slot build.Slot
	Mode Mode

	UniqueQuery string
	UniqueName  string

	BaseQuery string
	BaseType  string
	Affixes   []build.Affix
}

// New returns a picker for slot seeded from an existing choice.
func New(slot build.Slot, current build.Choice) *Picker {
	p := &Picker{Slot: slot, Mode: ModeUnique}
	switch c := current.(type) {
	case nil:
	case build.Unique:
		p.UniqueName = c.Name
		p.UniqueQuery = c.Name
	case build.Base:
		p.Mode = ModeBase
		p.BaseType = c.BaseType
		p.BaseQuery = c.BaseType
		p.Affixes = append([]build.Affix(nil), c.Affixes...)
	default:
		panic(fmt.Sprintf("picker: unhandled choice %T", current))
	}
	return p
}

// SetMode switches the active mode without discarding either mode's state.
func (p *Picker) SetMode(m Mode) { p.Mode = m }

// SelectUnique commits a unique item name.
func (p *Picker) SelectUnique(name string) {
	p.UniqueName = name
	p.UniqueQuery = name
}

// SelectBase chooses the base type. The affix set is kept.
func (p *Picker) SelectBase(baseType string) {
	p.BaseType = baseType
	p.BaseQuery = baseType
}

// ToggleAffix adds a or removes it if already chosen.
func (p *Picker) ToggleAffix(a build.Affix) {
	p.Affixes = build.NewBase(p.BaseType, p.Affixes...).ToggleAffix(a).Affixes
}

// Choice returns the value to store for the slot. Only the active mode's
// committed selection is used; a typed but uncommitted unique query is not.
func (p *Picker) Choice() build.Choice {
	if p.Mode == ModeBase {
		return build.NewBase(p.BaseType, p.Affixes...)
	}
	return build.Unique{Name: p.UniqueName}
}
