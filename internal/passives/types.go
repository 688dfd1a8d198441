// Package passives loads the static passive skill tree and lays it out for
// drawing. Selection state lives in build.PassiveSelection.
package passives

// Node is one passive skill.
type Node struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Out  []int   `json:"out,omitempty"`
}

// Graph is the passive tree. Nodes are sorted by id; Out may reference ids
// that are not in the graph.
type Graph struct {
	Nodes []Node
	index map[int]int
}

// NewGraph builds a graph from nodes, which must already be sorted by id
// and unique.
func NewGraph(nodes []Node) *Graph {
	g := &Graph{Nodes: nodes, index: make(map[int]int, len(nodes))}
	for i, n := range nodes {
		g.index[n.ID] = i
	}
	return g
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// PlacedNode is a node translated into drawing coordinates.
type PlacedNode struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Edge is a segment between two existing nodes.
type Edge struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Layout is a drawable tree.
type Layout struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Nodes  []PlacedNode `json:"nodes"`
	Edges  []Edge       `json:"edges"`
}
