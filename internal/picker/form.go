package picker

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// Form field names for a slot, e.g. "chest.mode".
func fieldMode(s build.Slot) string   { return string(s) + ".mode" }
func fieldUnique(s build.Slot) string { return string(s) + ".unique" }
func fieldBase(s build.Slot) string   { return string(s) + ".base" }
func fieldAffix(s build.Slot) string  { return string(s) + ".affix" }

// FromForm rebuilds a Build and the per-slot pickers from the planner form.
// The pickers keep both modes' inputs so the page can be re-rendered without
// losing anything; the Build holds only each slot's active choice.
func FromForm(form url.Values) (build.Build, map[build.Slot]*Picker) {
	b := build.New()
	b.Name = strings.TrimSpace(form.Get("name"))
	if c := form.Get("characterClass"); c != "" {
		b.CharacterClass = build.CharacterClass(c)
	}
	b.Description = form.Get("description")
	b.Notes = form.Get("notes")
	b.Passives.Note = form.Get("passiveNote")
	for _, raw := range strings.Split(form.Get("selectedNodes"), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && !b.Passives.Contains(id) {
			b.Passives.Toggle(id)
		}
	}

	pickers := make(map[build.Slot]*Picker, len(build.Slots))
	for _, slot := range build.Slots {
		mode, err := ParseMode(form.Get(fieldMode(slot)))
		if err != nil {
			mode = ModeUnique
		}
		p := &Picker{
			Slot:        slot,
			Mode:        mode,
			UniqueQuery: form.Get(fieldUnique(slot)),
			UniqueName:  strings.TrimSpace(form.Get(fieldUnique(slot))),
			BaseQuery:   form.Get(fieldBase(slot)),
			BaseType:    strings.TrimSpace(form.Get(fieldBase(slot))),
		}
		for _, a := range form[fieldAffix(slot)] {
			p.Affixes = append(p.Affixes, build.Affix(a))
		}
		p.Affixes = build.NewBase(p.BaseType, p.Affixes...).Affixes
		pickers[slot] = p
		b.Equipment[slot] = p.Choice()
	}
	return b, pickers
}

// ToForm is the inverse of FromForm for one picker.
func (p *Picker) ToForm(v url.Values) {
	v.Set(fieldMode(p.Slot), string(p.Mode))
	v.Set(fieldUnique(p.Slot), p.UniqueName)
	v.Set(fieldBase(p.Slot), p.BaseType)
	for _, a := range p.Affixes {
		v.Add(fieldAffix(p.Slot), string(a))
	}
}
