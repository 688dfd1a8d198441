// Package markdown renders assistant answers to HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to HTML. Raw HTML in the source is dropped, so
// model output can be embedded in pages as-is.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a renderer with GFM tables/lists and code highlighting.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
	}
}

// Render converts src to an HTML fragment.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
