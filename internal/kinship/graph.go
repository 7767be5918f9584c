package kinship

// Edge is one adjacency entry. An entry (from X, to Y, type T) reads
// "Y is X's T": for a stored Parent(A,B) fact, A gets an entry to B typed
// Child (B is A's child) and B gets an entry to A typed Parent.
type Edge struct {
	To    string  `json:"to"`
	Type  RelType `json:"type"`
	RelID string  `json:"relId"`
}

// Graph is the adjacency index over recorded relationship facts. Every fact
// materializes two directed entries, one per traversal direction, with the
// edge type inverted on the A side.
//
// Neighbor order is insertion order and is the tie-break for path search,
// so search outcomes are deterministic for a given insertion history but not
// invariant under graph-equivalent re-insertion order. Callers that need
// reproducible results across reloads must feed edges in a stable order.
type Graph struct {
	adj map[string][]Edge
}

// NewGraph creates an empty kinship graph.
func NewGraph() *Graph {
	return &Graph{
		adj: make(map[string][]Edge),
	}
}

// AddEdge inserts both adjacency entries for a relationship.
func (g *Graph) AddEdge(rel Relationship) {
	g.adj[rel.PersonA] = append(g.adj[rel.PersonA], Edge{
		To:    rel.PersonB,
		Type:  rel.Type.Inverse(),
		RelID: rel.ID,
	})
	g.adj[rel.PersonB] = append(g.adj[rel.PersonB], Edge{
		To:    rel.PersonA,
		Type:  rel.Type,
		RelID: rel.ID,
	})
}

// RemoveEdge deletes both adjacency entries for a relationship id.
func (g *Graph) RemoveEdge(relID string) {
	for person, edges := range g.adj {
		kept := edges[:0]
		for _, e := range edges {
			if e.RelID != relID {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.adj, person)
		} else {
			g.adj[person] = kept
		}
	}
}

// RemovePerson drops a person's adjacency list and every entry pointing at
// them. The directory removes incident relationships via RemoveEdge first;
// this catches the empty list left behind.
func (g *Graph) RemovePerson(personID string) {
	delete(g.adj, personID)
	for person, edges := range g.adj {
		kept := edges[:0]
		for _, e := range edges {
			if e.To != personID {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.adj, person)
		} else {
			g.adj[person] = kept
		}
	}
}

// Neighbors returns the adjacency entries for a person in insertion order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Neighbors(personID string) []Edge {
	return g.adj[personID]
}

// NumPeople returns the number of people with at least one edge.
func (g *Graph) NumPeople() int {
	return len(g.adj)
}

// NumEdges returns the number of recorded facts (each fact contributes two
// adjacency entries).
func (g *Graph) NumEdges() int {
	total := 0
	for _, edges := range g.adj {
		total += len(edges)
	}
	return total / 2
}

// GraphStats holds summary statistics about the graph.
type GraphStats struct {
	ConnectedPeople int             `json:"connectedPeople"`
	TotalEdges      int             `json:"totalEdges"`
	EdgesByType     map[RelType]int `json:"edgesByType"`
	AvgDegree       float64         `json:"avgDegree"`
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() GraphStats {
	stats := GraphStats{
		ConnectedPeople: g.NumPeople(),
		TotalEdges:      g.NumEdges(),
		EdgesByType:     make(map[RelType]int),
	}

	// Count each fact once, from the B side (the side carrying the stored
	// type). Symmetric facts carry the same type on both sides, so halve.
	seen := make(map[string]bool)
	for _, edges := range g.adj {
		for _, e := range edges {
			if seen[e.RelID] {
				continue
			}
			seen[e.RelID] = true
			t := e.Type
			if t == Child {
				t = Parent
			}
			stats.EdgesByType[t]++
		}
	}

	if stats.ConnectedPeople > 0 {
		stats.AvgDegree = float64(stats.TotalEdges*2) / float64(stats.ConnectedPeople)
	}

	return stats
}
