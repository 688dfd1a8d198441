package passives

import "math"

// DefaultMargin is the padding around the tree, in tree units.
const DefaultMargin = 50

// ComputeLayout translates the graph so its bounding box starts at
// (margin, margin) and collects one edge per out-reference whose target
// exists. Missing targets are skipped. An empty graph yields a square of
// side 2*margin.
func ComputeLayout(g *Graph, margin float64) Layout {
	l := Layout{
		Nodes: []PlacedNode{},
		Edges: []Edge{},
	}
	if g == nil || len(g.Nodes) == 0 {
		l.Width, l.Height = 2*margin, 2*margin
		return l
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	l.Width = maxX - minX + 2*margin
	l.Height = maxY - minY + 2*margin

	place := func(n Node) (float64, float64) {
		return n.X - minX + margin, n.Y - minY + margin
	}

	l.Nodes = make([]PlacedNode, len(g.Nodes))
	for i, n := range g.Nodes {
		x, y := place(n)
		l.Nodes[i] = PlacedNode{ID: n.ID, Name: n.Name, X: x, Y: y}
	}

	for _, n := range g.Nodes {
		x1, y1 := place(n)
		for _, to := range n.Out {
			target, ok := g.Node(to)
			if !ok {
				continue
			}
			x2, y2 := place(target)
			l.Edges = append(l.Edges, Edge{From: n.ID, To: to, X1: x1, Y1: y1, X2: x2, Y2: y2})
		}
	}
	return l
}
