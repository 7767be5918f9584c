package kinship

// Path is the result of a shortest-path query. People holds the full person
// chain including both endpoints; Types holds the edge-type chain, one entry
// per hop, read from the start side ("my parent's sibling" is
// [Parent, Sibling]). A self query yields a single-person, zero-hop path.
type Path struct {
	People []string  `json:"people"`
	Types  []RelType `json:"types"`
}

// Len returns the number of hops.
func (p Path) Len() int {
	return len(p.Types)
}

// Middle returns the person id at the midpoint of the chain, used to anchor
// "connected through X" phrasing. Empty for paths shorter than two hops.
func (p Path) Middle() string {
	if len(p.People) < 3 {
		return ""
	}
	return p.People[len(p.People)/2]
}

// searchNode is one BFS queue entry carrying its path-so-far.
type searchNode struct {
	id    string
	chain []RelType
	trail []string
}

// ShortestPath runs a breadth-first search from one person to another.
// maxDepth is the edge-chain ceiling: a frontier node already at maxDepth is
// not expanded further, though it may still be the destination. An edge whose
// type is terminal (per RelType.Terminal) is followed only when its
// destination is exactly `to`.
//
// The second return value is false when no route exists within the
// constraints. Callers must treat that as "no describable relationship",
// not an error.
func (g *Graph) ShortestPath(from, to string, maxDepth int) (Path, bool) {
	if from == to {
		return Path{People: []string{from}}, true
	}

	visited := map[string]bool{from: true}
	queue := []searchNode{{id: from, trail: []string{from}}}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if len(node.chain) >= maxDepth {
			continue
		}

		for _, e := range g.Neighbors(node.id) {
			if visited[e.To] {
				continue
			}
			// A terminal edge may end the path but never routes through.
			if e.Type.Terminal() && e.To != to {
				continue
			}

			chain := make([]RelType, len(node.chain), len(node.chain)+1)
			copy(chain, node.chain)
			chain = append(chain, e.Type)

			trail := make([]string, len(node.trail), len(node.trail)+1)
			copy(trail, node.trail)
			trail = append(trail, e.To)

			if e.To == to {
				return Path{People: trail, Types: chain}, true
			}

			visited[e.To] = true
			queue = append(queue, searchNode{id: e.To, chain: chain, trail: trail})
		}
	}

	return Path{}, false
}
