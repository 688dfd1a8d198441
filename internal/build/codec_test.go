package build

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuild() Build {
	b := New()
	b.Name = "Righteous Fire Juggernaut"
	b.CharacterClass = ClassMarauder
	b.Description = "Burn everything, stand in it."
	b.Equipment[SlotChest] = Unique{Name: "Kaom's Heart"}
	b.Equipment[SlotRing1] = NewBase("Two-Stone Ring", AffixLife, AffixFireResistance, AffixColdResistance)
	b.Notes = "Needs 90% fire res before mapping."
	b.Passives = PassiveSelection{SelectedNodes: []int{26725, 4940, 61834}, Note: "lvl 95"}
	return b
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build Build
	}{
		{"zero value", Build{}},
		{"fresh build", New()},
		{"full build", sampleBuild()},
		{"unicode", Build{
			Name:           "Ведьма ✨ 魔女",
			CharacterClass: ClassWitch,
			Notes:          "línea 1\nlínea 2 → <b>&</b>",
			Passives:       PassiveSelection{SelectedNodes: []int{}},
		}},
		{"unknown class and slot pass through", Build{
			Name:           "Odd",
			CharacterClass: "Necromancer",
			Equipment:      Equipment{"trinket": Unique{Name: "Thief's Torment"}},
		}},
		{"base without affixes", Build{
			Name:      "Crafter",
			Equipment: Equipment{SlotHelmet: Base{BaseType: "Hubris Circlet"}},
		}},
		{"base with empty affix set", Build{
			Name:      "Crafter",
			Equipment: Equipment{SlotHelmet: Base{BaseType: "Hubris Circlet", Affixes: []Affix{}}},
		}},
		{"empty equipment map", Build{Name: "Naked", Equipment: Equipment{}}},
		{"nil choice in slot", Build{Name: "Gap", Equipment: Equipment{SlotWeapon: nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Encode(tt.build)
			require.NoError(t, err)

			got, err := Decode(token)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.build, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeIsURLSafe(t *testing.T) {
	b := sampleBuild()
	b.Notes = strings.Repeat("?&=/+ ", 50)

	token, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, url.QueryEscape(token), token, "token must not need escaping")
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(sampleBuild())
	require.NoError(t, err)
	b, err := Encode(sampleBuild())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeLegacyToken(t *testing.T) {
	// Shape written by the first version of the planner: slots are plain
	// strings and the token is percent-escaped standard base64.
	legacy := `{"name":"Old Link","characterClass":"Witch","description":"",` +
		`"equipment":{"weapon":"Void Battery","offhand":"","helmet":"Crown of Eyes"},"notes":"hi"}`
	token := url.QueryEscape(base64.StdEncoding.EncodeToString([]byte(legacy)))

	got, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "Old Link", got.Name)
	assert.Equal(t, Unique{Name: "Void Battery"}, got.Item(SlotWeapon))
	assert.Equal(t, Unique{Name: "Crown of Eyes"}, got.Item(SlotHelmet))
	assert.True(t, IsEmpty(got.Item(SlotOffhand)))
	assert.True(t, IsEmpty(got.Item(SlotBoots)))
}

func TestDecodeLegacyLatin1Token(t *testing.T) {
	// Older links carry one byte per character for accented text.
	tests := []struct {
		name    string
		payload string
		want    string
		weapon  string
	}{
		{"unpadded", "{\"name\":\"Caf\xe9\",\"equipment\":{\"weapon\":\"Mj\xf6lner\"}}", "Café", "Mjölner"},
		{"padded", "{\"name\":\"Cr\xe8me\",\"equipment\":{\"weapon\":\"Br\xfbl\xe9\"}}", "Crème", "Brûlé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := url.QueryEscape(base64.StdEncoding.EncodeToString([]byte(tt.payload)))

			got, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, Unique{Name: tt.weapon}, got.Item(SlotWeapon))
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	valid, err := Encode(sampleBuild())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		stage Stage
	}{
		{"empty", "", StageEmpty},
		{"whitespace", "   ", StageEmpty},
		{"not base64", "%%%not-a-token%%%", StageEncoding},
		{"truncated", valid[:(len(valid)/2)&^3], StageStructure},
		{"invalid utf8", base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, '{', '}'}), StageUTF8},
		{"json null", base64.RawURLEncoding.EncodeToString([]byte("null")), StageStructure},
		{"json array", base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)), StageStructure},
		{"wrong field type", base64.RawURLEncoding.EncodeToString([]byte(`{"name":42}`)), StageStructure},
		{"bad choice kind", base64.RawURLEncoding.EncodeToString([]byte(`{"equipment":{"weapon":{"kind":"magic"}}}`)), StageStructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Build
			var err error
			require.NotPanics(t, func() { got, err = Decode(tt.token) })
			require.Error(t, err)
			assert.True(t, IsDecodeError(err))

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.stage, de.Stage)
			assert.Equal(t, Build{}, got)
		})
	}
}

func TestEquipmentJSONShape(t *testing.T) {
	eq := Equipment{
		SlotWeapon: Unique{Name: "Voidforge"},
		SlotBelt:   NewBase("Stygian Vise", AffixLife, AffixStrength),
	}
	data, err := json.Marshal(eq)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "unique", raw["weapon"]["kind"])
	assert.Equal(t, "Voidforge", raw["weapon"]["name"])
	assert.Equal(t, "base", raw["belt"]["kind"])
	assert.Equal(t, "Stygian Vise", raw["belt"]["baseType"])
	assert.Equal(t, []any{"Life", "Strength"}, raw["belt"]["affixes"])
}
