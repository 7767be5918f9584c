package kinship

import (
	"testing"
)

func rel(id, a, b string, t RelType) Relationship {
	return Relationship{ID: id, PersonA: a, PersonB: b, Type: t}
}

func TestRelTypeInverse(t *testing.T) {
	tests := []struct {
		in   RelType
		want RelType
	}{
		{Parent, Child},
		{Child, Parent},
		{Sibling, Sibling},
		{Spouse, Spouse},
		{Friend, Friend},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Inverse(); got != tt.want {
				t.Errorf("Inverse(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRelType(t *testing.T) {
	if _, err := ParseRelType("SPOUSE"); err != nil {
		t.Errorf("expected case-insensitive parse, got error: %v", err)
	}
	if _, err := ParseRelType("cousin"); err == nil {
		t.Error("expected error for derived type 'cousin', got nil")
	}
}

func TestAddEdge_InverseLabels(t *testing.T) {
	g := NewGraph()
	// alice is parent of bob
	g.AddEdge(rel("r1", "alice", "bob", Parent))

	aliceEdges := g.Neighbors("alice")
	if len(aliceEdges) != 1 {
		t.Fatalf("expected 1 edge for alice, got %d", len(aliceEdges))
	}
	// From alice's side, bob is her child
	if aliceEdges[0].To != "bob" || aliceEdges[0].Type != Child {
		t.Errorf("alice edge = %+v, want bob via child", aliceEdges[0])
	}

	bobEdges := g.Neighbors("bob")
	if len(bobEdges) != 1 {
		t.Fatalf("expected 1 edge for bob, got %d", len(bobEdges))
	}
	// From bob's side, alice is his parent (the stored type)
	if bobEdges[0].To != "alice" || bobEdges[0].Type != Parent {
		t.Errorf("bob edge = %+v, want alice via parent", bobEdges[0])
	}
}

func TestAddEdge_ChildEnteredDirectly(t *testing.T) {
	g := NewGraph()
	// carol is child of dave: same adjacency shape as dave parent-of carol
	g.AddEdge(rel("r1", "carol", "dave", Child))

	carolEdges := g.Neighbors("carol")
	if carolEdges[0].To != "dave" || carolEdges[0].Type != Parent {
		t.Errorf("carol edge = %+v, want dave via parent", carolEdges[0])
	}
	daveEdges := g.Neighbors("dave")
	if daveEdges[0].To != "carol" || daveEdges[0].Type != Child {
		t.Errorf("dave edge = %+v, want carol via child", daveEdges[0])
	}
}

func TestAddEdge_SymmetricTypes(t *testing.T) {
	for _, typ := range []RelType{Sibling, Spouse, Friend} {
		t.Run(string(typ), func(t *testing.T) {
			g := NewGraph()
			g.AddEdge(rel("r1", "a", "b", typ))

			if e := g.Neighbors("a")[0]; e.To != "b" || e.Type != typ {
				t.Errorf("a edge = %+v, want b via %s", e, typ)
			}
			if e := g.Neighbors("b")[0]; e.To != "a" || e.Type != typ {
				t.Errorf("b edge = %+v, want a via %s", e, typ)
			}
		})
	}
}

func TestRemoveEdge(t *testing.T) {
	g := NewGraph()
	g.AddEdge(rel("r1", "a", "b", Sibling))
	g.AddEdge(rel("r2", "b", "c", Parent))

	g.RemoveEdge("r1")

	if len(g.Neighbors("a")) != 0 {
		t.Errorf("expected no edges for a after removal, got %v", g.Neighbors("a"))
	}
	bEdges := g.Neighbors("b")
	if len(bEdges) != 1 || bEdges[0].RelID != "r2" {
		t.Errorf("expected only r2 left for b, got %v", bEdges)
	}

	// No path may subsequently traverse the removed edge
	if _, found := g.ShortestPath("a", "c", 5); found {
		t.Error("expected no path from a to c after removing the a-b edge")
	}
}

func TestRemovePerson(t *testing.T) {
	g := NewGraph()
	g.AddEdge(rel("r1", "a", "b", Sibling))
	g.AddEdge(rel("r2", "b", "c", Spouse))

	g.RemoveEdge("r1")
	g.RemovePerson("a")

	if g.Neighbors("a") != nil {
		t.Error("expected a's adjacency list to be gone")
	}
	for _, e := range g.Neighbors("b") {
		if e.To == "a" {
			t.Errorf("expected no edges pointing at a, got %+v", e)
		}
	}
}

func TestNeighbors_InsertionOrder(t *testing.T) {
	g := NewGraph()
	g.AddEdge(rel("r1", "me", "first", Friend))
	g.AddEdge(rel("r2", "me", "second", Sibling))
	g.AddEdge(rel("r3", "third", "me", Parent))

	edges := g.Neighbors("me")
	want := []string{"first", "second", "third"}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %d", len(want), len(edges))
	}
	for i, e := range edges {
		if e.To != want[i] {
			t.Errorf("edge %d = %s, want %s", i, e.To, want[i])
		}
	}
}

func TestGraphStats(t *testing.T) {
	g := NewGraph()
	g.AddEdge(rel("r1", "a", "b", Parent))
	g.AddEdge(rel("r2", "c", "b", Child))
	g.AddEdge(rel("r3", "a", "d", Spouse))
	g.AddEdge(rel("r4", "a", "e", Friend))

	stats := g.Stats()
	if stats.TotalEdges != 4 {
		t.Errorf("TotalEdges = %d, want 4", stats.TotalEdges)
	}
	if stats.ConnectedPeople != 5 {
		t.Errorf("ConnectedPeople = %d, want 5", stats.ConnectedPeople)
	}
	// Parent and Child facts both count under parent
	if stats.EdgesByType[Parent] != 2 {
		t.Errorf("parent facts = %d, want 2", stats.EdgesByType[Parent])
	}
	if stats.EdgesByType[Spouse] != 1 || stats.EdgesByType[Friend] != 1 {
		t.Errorf("unexpected type counts: %v", stats.EdgesByType)
	}
}
