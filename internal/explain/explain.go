package explain

import (
	"fmt"
	"sort"

	"kin/internal/kinship"
)

// Confidence tiers. Exact label on the direct path ranks highest, name
// chains on the direct path next, reference-derived phrases lower, and the
// direct-relationship fallback listing lowest.
const (
	confSelf       = 1.0
	confLabel      = 0.95
	confOneHop     = 0.85
	confNameChain  = 0.75
	confConnected  = 0.5
	confReference  = 0.6
	confRefChain   = 0.45
	confFallback   = 0.3
	maxFallbackRef = 3
)

// Explain produces ranked, de-duplicated sentences describing the target
// from the given perspective, most confident first. perspectiveID may be
// empty, in which case the target's direct relationships are listed instead.
// An empty result means the target has no describable relationships at all.
func (e *Explainer) Explain(targetID, perspectiveID string) []Explanation {
	target, ok := e.people.Person(targetID)
	if !ok {
		return nil
	}

	if perspectiveID != "" && targetID == perspectiveID {
		return []Explanation{{Text: "this is you", Confidence: confSelf}}
	}

	var results []Explanation
	directFound := false

	if perspectiveID != "" {
		if path, found := e.graph.ShortestPath(perspectiveID, targetID, e.opts.MaxDepth); found && path.Len() > 0 {
			directFound = true
			results = append(results, e.directPhrase(path, target))
			results = append(results, e.referencePhrases(perspectiveID, targetID, target)...)
		}
	}

	if !directFound {
		results = append(results, e.fallbackPhrases(targetID, target)...)
	}

	results = dedupe(results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > e.opts.MaxResults {
		results = results[:e.opts.MaxResults]
	}

	if e.logger != nil {
		e.logger.Debug("Explanation computed",
			"target", targetID,
			"perspective", perspectiveID,
			"sentences", len(results))
	}
	return results
}

// directPhrase turns the perspective-to-target path into a sentence. Shortcut
// label first; name chain for short unlabeled paths; "connected through" for
// anything longer.
func (e *Explainer) directPhrase(path kinship.Path, target kinship.Person) Explanation {
	if label, ok := Resolve(path.Types, target.Gender); ok {
		return Explanation{Text: "your " + label, Confidence: confLabel}
	}

	switch path.Len() {
	case 1:
		return Explanation{
			Text:       "your " + hopWord(path.Types[0], target.Gender),
			Confidence: confOneHop,
		}
	case 2:
		mid := e.personOrPlaceholder(path.People[1])
		first := hopWord(path.Types[0], mid.Gender)
		second := hopWord(path.Types[1], target.Gender)
		return Explanation{
			Text:       fmt.Sprintf("your %s's %s", first, second),
			Confidence: confNameChain,
		}
	default:
		mid := e.personOrPlaceholder(path.Middle())
		conf := confConnected - 0.05*float64(path.Len()-3)
		if conf < 0.2 {
			conf = 0.2
		}
		return Explanation{
			Text:       "connected through " + mid.Name,
			Confidence: conf,
		}
	}
}

// referencePhrases describes the target relative to people the viewer knows
// well: parents, siblings, spouse, children, grandparents, and children's
// spouses. Each gets a short path to the target and a "<name>'s <word>"
// sentence.
func (e *Explainer) referencePhrases(perspectiveID, targetID string, target kinship.Person) []Explanation {
	var results []Explanation

	for _, refID := range e.referencePeople(perspectiveID) {
		if refID == targetID || refID == perspectiveID {
			continue
		}
		path, found := e.graph.ShortestPath(refID, targetID, e.opts.ReferenceDepth)
		if !found || path.Len() == 0 {
			continue
		}
		// Skip circular phrasings that loop back through the viewer
		// ("your spouse's spouse" style).
		if e.passesThrough(path, perspectiveID) {
			continue
		}

		ref, ok := e.people.Person(refID)
		if !ok {
			continue
		}

		if label, ok := Resolve(path.Types, target.Gender); ok {
			conf := confReference - 0.1*float64(path.Len()-1)
			results = append(results, Explanation{
				Text:       fmt.Sprintf("%s's %s", ref.Name, label),
				Confidence: conf,
			})
			continue
		}
		if path.Len() == 2 {
			mid := e.personOrPlaceholder(path.People[1])
			results = append(results, Explanation{
				Text: fmt.Sprintf("%s's %s's %s", ref.Name,
					hopWord(path.Types[0], mid.Gender),
					hopWord(path.Types[1], target.Gender)),
				Confidence: confRefChain,
			})
		}
	}

	return results
}

// referencePeople returns the viewer's well-known reference people in a
// stable order: direct parents, siblings, spouse, and children first, then
// grandparents and children's spouses.
func (e *Explainer) referencePeople(perspectiveID string) []string {
	var refs []string
	seen := map[string]bool{perspectiveID: true}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			refs = append(refs, id)
		}
	}

	var parents, children []string
	for _, edge := range e.graph.Neighbors(perspectiveID) {
		switch edge.Type {
		case kinship.Parent:
			parents = append(parents, edge.To)
			add(edge.To)
		case kinship.Sibling, kinship.Spouse:
			add(edge.To)
		case kinship.Child:
			children = append(children, edge.To)
			add(edge.To)
		}
	}

	// Grandparents: parents of parents.
	for _, p := range parents {
		for _, edge := range e.graph.Neighbors(p) {
			if edge.Type == kinship.Parent {
				add(edge.To)
			}
		}
	}
	// In-law children: spouses of children.
	for _, c := range children {
		for _, edge := range e.graph.Neighbors(c) {
			if edge.Type == kinship.Spouse {
				add(edge.To)
			}
		}
	}

	return refs
}

// fallbackPhrases lists the target's direct relationships when there is no
// perspective or no route from it: "<neighbor>'s <word>".
func (e *Explainer) fallbackPhrases(targetID string, target kinship.Person) []Explanation {
	var results []Explanation
	for i, edge := range e.graph.Neighbors(targetID) {
		if i >= maxFallbackRef {
			break
		}
		neighbor, ok := e.people.Person(edge.To)
		if !ok {
			continue
		}
		// The edge reads "edge.To is target's edge.Type", so the target is
		// the neighbor's inverse of that.
		word := hopWord(edge.Type.Inverse(), target.Gender)
		results = append(results, Explanation{
			Text:       fmt.Sprintf("%s's %s", neighbor.Name, word),
			Confidence: confFallback - 0.02*float64(i),
		})
	}
	return results
}

// passesThrough reports whether any intermediate person on the path is id.
func (e *Explainer) passesThrough(path kinship.Path, id string) bool {
	for i := 1; i < len(path.People)-1; i++ {
		if path.People[i] == id {
			return true
		}
	}
	return false
}

// personOrPlaceholder resolves an id, substituting a placeholder record for
// dangling references so phrasing never panics mid-sentence.
func (e *Explainer) personOrPlaceholder(id string) kinship.Person {
	if p, ok := e.people.Person(id); ok {
		return p
	}
	return kinship.Person{ID: id, Name: "someone"}
}

func dedupe(in []Explanation) []Explanation {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, ex := range in {
		if seen[ex.Text] {
			continue
		}
		seen[ex.Text] = true
		out = append(out, ex)
	}
	return out
}
