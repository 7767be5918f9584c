package testutil

import (
	"testing"

	"kin/internal/directory"
	"kin/internal/kinship"
	"kin/internal/slogutil"
)

// OpenDirectory opens a directory over a fresh in-memory store with a
// discard logger.
func OpenDirectory(t *testing.T) (*directory.Directory, *MemStore) {
	t.Helper()
	store := NewMemStore()
	d, err := directory.Open(store, slogutil.NewDiscardLogger(), directory.Options{})
	if err != nil {
		t.Fatalf("failed to open directory: %v", err)
	}
	return d, store
}

// Family is the standard three-generation fixture, keyed by first name.
//
//	Alice = Dave        (spouses)
//	  |
//	 Bob = Eve          (Bob is Alice's child)
//	  |
//	Carol               (Bob's child)
//	Frank               (Bob's friend)
type Family map[string]kinship.Person

// SeedFamily populates the directory with the standard fixture.
func SeedFamily(t *testing.T, d *directory.Directory) Family {
	t.Helper()

	add := func(name string, g kinship.Gender) kinship.Person {
		p, err := d.AddPerson(name, g, "", "")
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		return p
	}
	relate := func(a, b kinship.Person, typ kinship.RelType) {
		if _, _, err := d.Relate(a.ID, b.ID, typ); err != nil {
			t.Fatalf("failed to relate %s-%s: %v", a.Name, b.Name, err)
		}
	}

	alice := add("Alice", kinship.GenderFemale)
	dave := add("Dave", kinship.GenderMale)
	bob := add("Bob", kinship.GenderMale)
	eve := add("Eve", kinship.GenderFemale)
	carol := add("Carol", kinship.GenderFemale)
	frank := add("Frank", kinship.GenderMale)

	relate(alice, dave, kinship.Spouse)
	relate(alice, bob, kinship.Parent)
	relate(bob, eve, kinship.Spouse)
	relate(bob, carol, kinship.Parent)
	relate(bob, frank, kinship.Friend)

	return Family{
		"Alice": alice,
		"Dave":  dave,
		"Bob":   bob,
		"Eve":   eve,
		"Carol": carol,
		"Frank": frank,
	}
}
