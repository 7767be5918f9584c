package explain

import (
	"strings"

	"kin/internal/kinship"
)

// Label holds the gendered variants for one edge-type chain. Neutral is used
// when the target's gender is absent or unresolved.
type Label struct {
	Neutral string
	Female  string
	Male    string
}

// For returns the variant for a gender.
func (l Label) For(g kinship.Gender) string {
	switch g {
	case kinship.GenderFemale:
		if l.Female != "" {
			return l.Female
		}
	case kinship.GenderMale:
		if l.Male != "" {
			return l.Male
		}
	}
	return l.Neutral
}

// chainKey builds the lookup key for an edge-type chain. The type tags are a
// closed enum with no separator characters, so exact-length, exact-order
// matching holds.
func chainKey(chain []kinship.RelType) string {
	parts := make([]string, len(chain))
	for i, t := range chain {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func key(types ...kinship.RelType) string {
	return chainKey(types)
}

// labelTable maps ordered edge-type chains (read from the viewer outward) to
// familiar relationship words. It is finite and does not generalize
// arithmetically: unmapped chains fall back to name-chain phrasing.
//
// Note: "parent,spouse" covers both a step-parent and a parent's actual
// spouse; the recorded facts cannot distinguish remarriage from the original
// partnership, so the ambiguity is preserved here. The reference-people pass
// usually supplies the cleaner "<parent>'s husband/wife" phrasing.
var labelTable = map[string]Label{
	// Single hops
	key(kinship.Parent):  {Neutral: "parent", Female: "mom", Male: "dad"},
	key(kinship.Child):   {Neutral: "child", Female: "daughter", Male: "son"},
	key(kinship.Sibling): {Neutral: "sibling", Female: "sister", Male: "brother"},
	key(kinship.Spouse):  {Neutral: "spouse", Female: "wife", Male: "husband"},
	key(kinship.Friend):  {Neutral: "friend"},

	// Grandparent family
	key(kinship.Parent, kinship.Parent):                 {Neutral: "grandparent", Female: "grandma", Male: "grandpa"},
	key(kinship.Parent, kinship.Parent, kinship.Parent): {Neutral: "great-grandparent", Female: "great-grandma", Male: "great-grandpa"},
	key(kinship.Child, kinship.Child):                   {Neutral: "grandchild", Female: "granddaughter", Male: "grandson"},
	key(kinship.Child, kinship.Child, kinship.Child):    {Neutral: "great-grandchild", Female: "great-granddaughter", Male: "great-grandson"},

	// Aunt/uncle family
	key(kinship.Parent, kinship.Sibling):                 {Neutral: "aunt or uncle", Female: "aunt", Male: "uncle"},
	key(kinship.Parent, kinship.Parent, kinship.Sibling): {Neutral: "great-aunt or great-uncle", Female: "great-aunt", Male: "great-uncle"},
	key(kinship.Sibling, kinship.Child):                  {Neutral: "niece or nephew", Female: "niece", Male: "nephew"},
	key(kinship.Sibling, kinship.Child, kinship.Child):   {Neutral: "great-niece or great-nephew", Female: "great-niece", Male: "great-nephew"},
	key(kinship.Parent, kinship.Sibling, kinship.Child):  {Neutral: "cousin"},

	// A parent's child who isn't you is a sibling (covers half-siblings
	// recorded only through the shared parent)
	key(kinship.Parent, kinship.Child): {Neutral: "sibling", Female: "sister", Male: "brother"},

	// In-laws
	key(kinship.Spouse, kinship.Parent):  {Neutral: "parent-in-law", Female: "mother-in-law", Male: "father-in-law"},
	key(kinship.Spouse, kinship.Sibling): {Neutral: "sibling-in-law", Female: "sister-in-law", Male: "brother-in-law"},
	key(kinship.Sibling, kinship.Spouse): {Neutral: "sibling-in-law", Female: "sister-in-law", Male: "brother-in-law"},
	key(kinship.Child, kinship.Spouse):   {Neutral: "child-in-law", Female: "daughter-in-law", Male: "son-in-law"},

	// Step family
	key(kinship.Parent, kinship.Spouse): {Neutral: "step-parent", Female: "stepmom", Male: "stepdad"},
	key(kinship.Spouse, kinship.Child):  {Neutral: "step-child", Female: "stepdaughter", Male: "stepson"},
}

// Resolve collapses an edge-type chain into a single familiar word for the
// target's gender. Lookup is by exact match on the full chain; a miss returns
// ok=false and callers fall back to name-chain phrasing.
func Resolve(chain []kinship.RelType, gender kinship.Gender) (string, bool) {
	if len(chain) == 0 {
		return "", false
	}
	label, ok := labelTable[chainKey(chain)]
	if !ok {
		return "", false
	}
	return label.For(gender), true
}

// hopWord returns the single-hop relationship word for a type. Every type
// has a single-hop table entry, so this cannot miss.
func hopWord(t kinship.RelType, gender kinship.Gender) string {
	if word, ok := Resolve([]kinship.RelType{t}, gender); ok {
		return word
	}
	return string(t)
}
