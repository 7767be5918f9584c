// Package kinship holds the relationship fact model and the in-memory
// kinship graph the rest of the engine queries.
package kinship

import (
	"fmt"
	"strings"
	"time"
)

// RelType is the closed enumeration of relationship facts a user may record.
// Everything else (grandparent, aunt, in-law, ...) is derived, never stored.
type RelType string

const (
	// Parent means person A is a parent of person B.
	Parent RelType = "parent"
	// Child means person A is a child of person B. Inverse of Parent but may
	// also be entered directly.
	Child RelType = "child"
	// Sibling is symmetric.
	Sibling RelType = "sibling"
	// Spouse is symmetric.
	Spouse RelType = "spouse"
	// Friend is symmetric and terminal: it may end a path but is never
	// traversed through to reach a third party.
	Friend RelType = "friend"
)

// RelTypes lists all valid relationship types in display order.
var RelTypes = []RelType{Parent, Child, Sibling, Spouse, Friend}

// ParseRelType converts a string to a RelType.
func ParseRelType(s string) (RelType, error) {
	switch RelType(strings.ToLower(strings.TrimSpace(s))) {
	case Parent:
		return Parent, nil
	case Child:
		return Child, nil
	case Sibling:
		return Sibling, nil
	case Spouse:
		return Spouse, nil
	case Friend:
		return Friend, nil
	default:
		return "", fmt.Errorf("unknown relationship type %q (want parent, child, sibling, spouse, or friend)", s)
	}
}

// Inverse returns the type as seen from the other endpoint.
func (t RelType) Inverse() RelType {
	switch t {
	case Parent:
		return Child
	case Child:
		return Parent
	default:
		// sibling, spouse, friend are their own inverses
		return t
	}
}

// Symmetric reports whether the type reads identically from either endpoint.
func (t RelType) Symmetric() bool {
	return t == Sibling || t == Spouse || t == Friend
}

// Terminal reports whether the type may only be the final edge of a path.
func (t RelType) Terminal() bool {
	return t == Friend
}

// Gender is used only to pick gendered label variants. The empty value is
// the neutral form.
type Gender string

const (
	GenderNeutral Gender = ""
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
)

// ParseGender converts a string to a Gender. Empty and "neutral" map to the
// neutral form.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neutral", "unspecified":
		return GenderNeutral, nil
	case "female", "f", "woman":
		return GenderFemale, nil
	case "male", "m", "man":
		return GenderMale, nil
	default:
		return GenderNeutral, fmt.Errorf("unknown gender %q (want female, male, or neutral)", s)
	}
}

// Person is a directory entry. Owned by the directory; callers treat it as
// a value.
type Person struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Gender    Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
	Photo     string    `json:"photo,omitempty" yaml:"photo,omitempty"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Relationship is a single recorded fact between an ordered pair of people.
// For Type Parent, PersonA is the parent of PersonB.
type Relationship struct {
	ID        string    `json:"id" yaml:"id"`
	PersonA   string    `json:"personA" yaml:"personA"`
	PersonB   string    `json:"personB" yaml:"personB"`
	Type      RelType   `json:"type" yaml:"type"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}
