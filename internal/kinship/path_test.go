package kinship

import (
	"reflect"
	"testing"
)

// threeGenerations builds alice -> bob -> carol (parent chains).
func threeGenerations() *Graph {
	g := NewGraph()
	g.AddEdge(rel("r1", "alice", "bob", Parent))
	g.AddEdge(rel("r2", "bob", "carol", Parent))
	return g
}

func TestShortestPath_Self(t *testing.T) {
	g := threeGenerations()

	path, found := g.ShortestPath("alice", "alice", 5)
	if !found {
		t.Fatal("self path must never be NotFound")
	}
	if path.Len() != 0 {
		t.Errorf("self path should have zero hops, got %d", path.Len())
	}
	if !reflect.DeepEqual(path.People, []string{"alice"}) {
		t.Errorf("self path people = %v, want [alice]", path.People)
	}
}

func TestShortestPath_Grandchild(t *testing.T) {
	g := threeGenerations()

	path, found := g.ShortestPath("alice", "carol", 5)
	if !found {
		t.Fatal("expected path from alice to carol")
	}
	if !reflect.DeepEqual(path.Types, []RelType{Child, Child}) {
		t.Errorf("edge chain = %v, want [child child]", path.Types)
	}
	if !reflect.DeepEqual(path.People, []string{"alice", "bob", "carol"}) {
		t.Errorf("person chain = %v", path.People)
	}
}

func TestShortestPath_Grandparent(t *testing.T) {
	g := threeGenerations()

	path, found := g.ShortestPath("carol", "alice", 5)
	if !found {
		t.Fatal("expected path from carol to alice")
	}
	if !reflect.DeepEqual(path.Types, []RelType{Parent, Parent}) {
		t.Errorf("edge chain = %v, want [parent parent]", path.Types)
	}
}

func TestShortestPath_PrefersShortestRoute(t *testing.T) {
	g := NewGraph()
	// Long route a -> b -> c -> d plus a direct a -> d spouse edge added last.
	g.AddEdge(rel("r1", "a", "b", Parent))
	g.AddEdge(rel("r2", "b", "c", Parent))
	g.AddEdge(rel("r3", "c", "d", Parent))
	g.AddEdge(rel("r4", "a", "d", Spouse))

	path, found := g.ShortestPath("a", "d", 5)
	if !found {
		t.Fatal("expected path")
	}
	if path.Len() != 1 {
		t.Errorf("expected the 1-hop route, got %d hops (%v)", path.Len(), path.Types)
	}
}

func TestShortestPath_DepthCeiling(t *testing.T) {
	g := threeGenerations()

	// carol is two hops away; a ceiling of 1 must yield NotFound even though
	// a longer route exists.
	if _, found := g.ShortestPath("alice", "carol", 1); found {
		t.Error("expected NotFound when only routes exceed maxDepth")
	}
	// The frontier at maxDepth may still be the destination.
	if _, found := g.ShortestPath("alice", "carol", 2); !found {
		t.Error("expected path at exactly maxDepth hops")
	}
}

func TestShortestPath_FriendIsTerminal(t *testing.T) {
	g := NewGraph()
	g.AddEdge(rel("r1", "a", "b", Friend))
	g.AddEdge(rel("r2", "b", "c", Parent))

	// The friend edge may end a path...
	path, found := g.ShortestPath("a", "b", 5)
	if !found || path.Len() != 1 || path.Types[0] != Friend {
		t.Errorf("expected 1-hop friend path to b, got %v found=%v", path, found)
	}

	// ...but never routes through to a third party.
	if _, found := g.ShortestPath("a", "c", 5); found {
		t.Error("expected NotFound: explanations must not route through a friend")
	}
}

func TestShortestPath_NotFoundDisconnected(t *testing.T) {
	g := threeGenerations()
	g.AddEdge(rel("r9", "x", "y", Spouse))

	if _, found := g.ShortestPath("alice", "x", 10); found {
		t.Error("expected NotFound across disconnected components")
	}
}

func TestShortestPath_InsertionOrderTieBreak(t *testing.T) {
	// Two equal-length routes from a to d; the one through the
	// first-inserted neighbor wins.
	g := NewGraph()
	g.AddEdge(rel("r1", "a", "b", Sibling))
	g.AddEdge(rel("r2", "a", "c", Sibling))
	g.AddEdge(rel("r3", "b", "d", Spouse))
	g.AddEdge(rel("r4", "c", "d", Spouse))

	path, found := g.ShortestPath("a", "d", 5)
	if !found {
		t.Fatal("expected path")
	}
	if !reflect.DeepEqual(path.People, []string{"a", "b", "d"}) {
		t.Errorf("expected tie-break through b (inserted first), got %v", path.People)
	}
}

func TestShortestPath_SymmetricReachability(t *testing.T) {
	for _, typ := range []RelType{Sibling, Spouse, Friend} {
		t.Run(string(typ), func(t *testing.T) {
			g := NewGraph()
			g.AddEdge(rel("r1", "a", "b", typ))

			ab, foundAB := g.ShortestPath("a", "b", 3)
			ba, foundBA := g.ShortestPath("b", "a", 3)
			if !foundAB || !foundBA {
				t.Fatal("symmetric edge must be reachable from both endpoints")
			}
			if ab.Types[0] != typ || ba.Types[0] != typ {
				t.Errorf("expected %s from both sides, got %v / %v", typ, ab.Types, ba.Types)
			}
		})
	}
}

func TestPathMiddle(t *testing.T) {
	g := threeGenerations()
	path, _ := g.ShortestPath("alice", "carol", 5)
	if path.Middle() != "bob" {
		t.Errorf("Middle() = %s, want bob", path.Middle())
	}

	short, _ := g.ShortestPath("alice", "bob", 5)
	if short.Middle() != "" {
		t.Errorf("Middle() of 1-hop path = %s, want empty", short.Middle())
	}
}
