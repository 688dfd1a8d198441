package build

// PassiveSelection is the set of passive-tree nodes a build allocates plus a
// free-text note. SelectedNodes keeps insertion order and never holds the same
// id twice. Ids are not checked against any tree.
type PassiveSelection struct {
	SelectedNodes []int  `json:"selectedNodes"`
	Note          string `json:"note,omitempty"`
}

// Contains reports whether id is selected.
func (p PassiveSelection) Contains(id int) bool {
	for _, n := range p.SelectedNodes {
		if n == id {
			return true
		}
	}
	return false
}

// Toggle removes id when selected and appends it otherwise.
func (p *PassiveSelection) Toggle(id int) {
	for i, n := range p.SelectedNodes {
		if n == id {
			p.SelectedNodes = append(p.SelectedNodes[:i:i], p.SelectedNodes[i+1:]...)
			return
		}
	}
	p.SelectedNodes = append(p.SelectedNodes, id)
}

// Set returns the selection as a lookup map.
func (p PassiveSelection) Set() map[int]bool {
	m := make(map[int]bool, len(p.SelectedNodes))
	for _, n := range p.SelectedNodes {
		m[n] = true
	}
	return m
}
