package passives

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// flexInt decodes a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer id: %s", data)
	}
	*f = flexInt(n)
	return nil
}

type rawNode struct {
	ID    *flexInt  `json:"id"`
	Skill *flexInt  `json:"skill"`
	DN    string    `json:"dn"`
	Name  string    `json:"name"`
	X     *float64  `json:"x"`
	Y     *float64  `json:"y"`
	Out   []flexInt `json:"out"`
}

type rawTree struct {
	Nodes json.RawMessage `json:"nodes"`
}

// LoadGraph reads a passive tree asset. The top-level "nodes" field may be
// an object keyed by id or an array. Each node's id is taken from "id",
// then "skill", then the object key; its name from "dn", then "name".
// Nodes without both coordinates (class starts, masteries) are skipped.
func LoadGraph(r io.Reader) (*Graph, error) {
	var tree rawTree
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding passive tree: %w", err)
	}

	raw := bytes.TrimSpace(tree.Nodes)
	if len(raw) == 0 {
		return nil, fmt.Errorf("passive tree has no nodes field")
	}

	type keyed struct {
		key string
		rawNode
	}
	var entries []keyed
	switch raw[0] {
	case '{':
		var m map[string]rawNode
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decoding passive nodes: %w", err)
		}
		for k, n := range m {
			entries = append(entries, keyed{k, n})
		}
	case '[':
		var list []rawNode
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decoding passive nodes: %w", err)
		}
		for _, n := range list {
			entries = append(entries, keyed{"", n})
		}
	default:
		return nil, fmt.Errorf("passive tree nodes must be an object or array")
	}

	seen := make(map[int]bool, len(entries))
	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		id, ok := e.idOr(e.key)
		if !ok || e.X == nil || e.Y == nil || seen[id] {
			continue
		}
		seen[id] = true

		name := e.DN
		if name == "" {
			name = e.Name
		}
		out := make([]int, len(e.Out))
		for i, o := range e.Out {
			out[i] = int(o)
		}
		nodes = append(nodes, Node{ID: id, Name: name, X: *e.X, Y: *e.Y, Out: out})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return NewGraph(nodes), nil
}

func (n rawNode) idOr(key string) (int, bool) {
	switch {
	case n.ID != nil:
		return int(*n.ID), true
	case n.Skill != nil:
		return int(*n.Skill), true
	}
	id, err := strconv.Atoi(key)
	return id, err == nil
}

// LoadGraphFile reads a passive tree asset from disk.
func LoadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening passive tree: %w", err)
	}
	defer f.Close()
	return LoadGraph(f)
}
