package passives

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

const (
	colorBackground = "#1a102a"
	colorEdge       = "#6d28d9"
	colorNode       = "#a78bfa"
	colorSelected   = "#f59e42"
)

// RenderSVG writes the layout as a standalone SVG document. Selected nodes
// are drawn larger and highlighted; each node carries data-node-id so the
// page can toggle it.
func RenderSVG(w io.Writer, l Layout, sel build.PassiveSelection) error {
	bw := bufio.NewWriter(w)
	selected := sel.Set()

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g" style="background:%s">`+"\n",
		l.Width, l.Height, l.Width, l.Height, colorBackground)

	fmt.Fprintf(bw, `<g class="edges" stroke="%s" stroke-width="1" opacity="0.3">`+"\n", colorEdge)
	for _, e := range l.Edges {
		fmt.Fprintf(bw, `<line x1="%g" y1="%g" x2="%g" y2="%g"/>`+"\n", e.X1, e.Y1, e.X2, e.Y2)
	}
	bw.WriteString("</g>\n")

	bw.WriteString(`<g class="nodes" stroke="#fff">` + "\n")
	for _, n := range l.Nodes {
		r, fill, stroke, class := 10, colorNode, 1, "node"
		if selected[n.ID] {
			r, fill, stroke, class = 13, colorSelected, 3, "node selected"
		}
		fmt.Fprintf(bw, `<circle class="%s" data-node-id="%d" cx="%g" cy="%g" r="%d" fill="%s" stroke-width="%d"><title>%s</title></circle>`+"\n",
			class, n.ID, n.X, n.Y, r, fill, stroke, html.EscapeString(n.Name))
	}
	bw.WriteString("</g>\n</svg>\n")

	return bw.Flush()
}
