package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/picker"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "search", "item", "chat", "builds", "view", "error"}

var funcs = template.FuncMap{
	"describe": build.Describe,
	"chaos": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"hasAffix": func(p *picker.Picker, a build.Affix) bool {
		for _, x := range p.Affixes {
			if x == a {
				return true
			}
		}
		return false
	},
}

// parsePages pairs the shared layout with each page template.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}
