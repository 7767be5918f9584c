package explain

import (
	"kin/internal/kinship"
)

// nametagLabel picks the phrasing for a summary line from the subject's own
// gender (the nametag wearer, not the people listed).
func nametagLabel(g kinship.Gender, female, male, neutral string) string {
	switch g {
	case kinship.GenderFemale:
		return female
	case kinship.GenderMale:
		return male
	default:
		return neutral
	}
}

// Summarize groups a person's direct edges into reunion-style nametag lines,
// in fixed order: spouse, children, grandchildren, parents, siblings. Only
// non-empty groups are emitted; friend edges are excluded. Grandchildren are
// not stored directly: they are each child's own children, aggregated under
// a single line.
func (e *Explainer) Summarize(personID string) []NametagLine {
	subject, ok := e.people.Person(personID)
	if !ok {
		return nil
	}

	var spouses, children, parents, siblings []string
	var childIDs []string

	for _, edge := range e.graph.Neighbors(personID) {
		name, known := e.name(edge.To)
		if !known {
			continue
		}
		switch edge.Type {
		case kinship.Spouse:
			spouses = append(spouses, name)
		case kinship.Child:
			children = append(children, name)
			childIDs = append(childIDs, edge.To)
		case kinship.Parent:
			parents = append(parents, name)
		case kinship.Sibling:
			siblings = append(siblings, name)
		}
	}

	// One extra hop for grandchildren, de-duplicated across children.
	var grandchildren []string
	seen := map[string]bool{personID: true}
	for _, childID := range childIDs {
		for _, edge := range e.graph.Neighbors(childID) {
			if edge.Type != kinship.Child || seen[edge.To] {
				continue
			}
			seen[edge.To] = true
			if name, known := e.name(edge.To); known {
				grandchildren = append(grandchildren, name)
			}
		}
	}

	g := subject.Gender
	var lines []NametagLine
	appendLine := func(label string, names []string) {
		if len(names) > 0 {
			lines = append(lines, NametagLine{Label: label, Names: names})
		}
	}

	appendLine(nametagLabel(g, "Wife of", "Husband of", "Married to"), spouses)
	appendLine(nametagLabel(g, "Mother of", "Father of", "Parent of"), children)
	appendLine(nametagLabel(g, "Grandma to", "Grandpa to", "Grandparent to"), grandchildren)
	appendLine(nametagLabel(g, "Daughter of", "Son of", "Child of"), parents)
	appendLine(nametagLabel(g, "Sister of", "Brother of", "Sibling of"), siblings)

	return lines
}

func (e *Explainer) name(id string) (string, bool) {
	p, ok := e.people.Person(id)
	if !ok {
		return "", false
	}
	return p.Name, true
}
