package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// QuestionSystemPrompt frames free-form questions.
const QuestionSystemPrompt = "You are a knowledgeable Path of Exile expert. Answer questions about PoE mechanics, items, builds, trading, and general gameplay. Be accurate, helpful, and concise. If you're not sure about something, say so rather than guessing."

var prompts = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"modifiers": func(mods []catalog.Modifier) string {
		texts := make([]string, len(mods))
		for i, m := range mods {
			texts[i] = m.Text
		}
		return strings.Join(texts, ", ")
	},
}).Parse(`
{{- define "item" -}}
Analyze this Path of Exile item and provide insights:

Item Name: {{.Name}}
Type: {{.TypeLine}}
Value: {{.ChaosValue}} chaos
{{- if .ExplicitModifiers}}
Modifiers: {{modifiers .ExplicitModifiers}}
{{- end}}
{{- if .FlavourText}}
Flavor Text: {{.FlavourText}}
{{- end}}

Please provide:
1. A clear description of what this item does
2. Build suggestions that would benefit from this item
3. Trade advice (is it worth the price?)
4. Meta analysis (how popular/useful is this item currently?)

Format your response in a clear, structured way.
{{- end}}

{{- define "build" -}}
Analyze this Path of Exile build and provide advice:

Class: {{.CharacterClass}}
Description: {{.Description}}
Equipment: {{json .Equipment}}
Notes: {{.Notes}}

Please provide:
1. Suggestions for improving this build
2. Alternative approaches or items to consider
3. Playstyle notes and tips
4. Any potential issues or weaknesses to address

Be constructive and specific in your advice.
{{- end}}

{{- define "search" -}}
Analyze this Path of Exile search query and enhance it:

Original Query: "{{.}}"

Please:
1. Suggest an enhanced search query
2. Identify potential item types to search
3. Suggest related search terms
4. Provide context about what the user might be looking for

Focus on making the search more effective and comprehensive.
{{- end}}

{{- define "suggest" -}}
Suggest a Path of Exile build based on this playstyle and preferences:

Playstyle: {{.Playstyle}}
Preferences: {{.Preferences}}

Please provide:
1. A suggested character class and ascendancy
2. Key items to aim for
3. Skill gem recommendations
4. Passive tree priorities
5. Leveling tips

Make the suggestions practical and achievable.
{{- end}}
`))

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := prompts.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", name, err)
	}
	return sb.String(), nil
}

// ItemAnalysisPrompt asks for a description, build fit, trade and meta
// view of an item.
func ItemAnalysisPrompt(item catalog.Item) (string, error) {
	return render("item", item)
}

// BuildAdvicePrompt asks for improvements to a build. Equipment is embedded
// as JSON.
func BuildAdvicePrompt(b build.Build) (string, error) {
	return render("build", b)
}

// SearchEnhancementPrompt asks for a better item search query.
func SearchEnhancementPrompt(query string) (string, error) {
	return render("search", query)
}

// BuildSuggestionPrompt asks for a build matching a playstyle.
func BuildSuggestionPrompt(playstyle, preferences string) (string, error) {
	return render("suggest", struct{ Playstyle, Preferences string }{playstyle, preferences})
}
