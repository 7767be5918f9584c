package explain

import (
	"reflect"
	"testing"

	"kin/internal/kinship"
)

func TestSummarize_FixedOrderAndGroups(t *testing.T) {
	w := newWorld()
	george := w.person("George", kinship.GenderMale)
	mary := w.person("Mary", kinship.GenderFemale)
	bob := w.person("Bob", kinship.GenderMale)
	sue := w.person("Sue", kinship.GenderFemale)
	kid := w.person("Kid", kinship.GenderNeutral)
	walt := w.person("Walt", kinship.GenderMale)
	rita := w.person("Rita", kinship.GenderFemale)
	pal := w.person("Pal", kinship.GenderNeutral)

	w.relate(george, mary, kinship.Spouse)
	w.relate(george, bob, kinship.Parent)
	w.relate(george, sue, kinship.Parent)
	w.relate(bob, kid, kinship.Parent)
	w.relate(walt, george, kinship.Parent)
	w.relate(rita, george, kinship.Sibling)
	w.relate(george, pal, kinship.Friend)

	lines := w.explainer().Summarize(george)

	want := []NametagLine{
		{Label: "Husband of", Names: []string{"Mary"}},
		{Label: "Father of", Names: []string{"Bob", "Sue"}},
		{Label: "Grandpa to", Names: []string{"Kid"}},
		{Label: "Son of", Names: []string{"Walt"}},
		{Label: "Brother of", Names: []string{"Rita"}},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Summarize = %+v, want %+v", lines, want)
	}
}

func TestSummarize_GenderedSubjectLabels(t *testing.T) {
	tests := []struct {
		gender     kinship.Gender
		spouseWant string
		childWant  string
	}{
		{kinship.GenderFemale, "Wife of", "Mother of"},
		{kinship.GenderMale, "Husband of", "Father of"},
		{kinship.GenderNeutral, "Married to", "Parent of"},
	}

	for _, tt := range tests {
		t.Run(string(tt.gender)+"-labels", func(t *testing.T) {
			w := newWorld()
			subject := w.person("Subject", tt.gender)
			other := w.person("Other", kinship.GenderNeutral)
			child := w.person("Junior", kinship.GenderNeutral)
			w.relate(subject, other, kinship.Spouse)
			w.relate(subject, child, kinship.Parent)

			lines := w.explainer().Summarize(subject)
			if len(lines) != 2 {
				t.Fatalf("expected 2 lines, got %+v", lines)
			}
			if lines[0].Label != tt.spouseWant {
				t.Errorf("spouse label = %q, want %q", lines[0].Label, tt.spouseWant)
			}
			if lines[1].Label != tt.childWant {
				t.Errorf("children label = %q, want %q", lines[1].Label, tt.childWant)
			}
		})
	}
}

func TestSummarize_ExcludesFriendsAndEmptyGroups(t *testing.T) {
	w := newWorld()
	loner := w.person("Loner", kinship.GenderNeutral)
	pal := w.person("Pal", kinship.GenderNeutral)
	w.relate(loner, pal, kinship.Friend)

	if lines := w.explainer().Summarize(loner); len(lines) != 0 {
		t.Errorf("expected no nametag lines for friend-only edges, got %+v", lines)
	}
}

func TestSummarize_GrandchildrenDeduped(t *testing.T) {
	// Both parents of the grandchild are the subject's children: the
	// grandchild must appear once.
	w := newWorld()
	gran := w.person("Gran", kinship.GenderFemale)
	a := w.person("Ann", kinship.GenderFemale)
	b := w.person("Ben", kinship.GenderMale)
	kid := w.person("Kid", kinship.GenderNeutral)
	w.relate(gran, a, kinship.Parent)
	w.relate(gran, b, kinship.Parent)
	w.relate(a, kid, kinship.Parent)
	w.relate(b, kid, kinship.Parent)

	lines := w.explainer().Summarize(gran)
	for _, line := range lines {
		if line.Label == "Grandma to" {
			if !reflect.DeepEqual(line.Names, []string{"Kid"}) {
				t.Errorf("grandchildren = %v, want [Kid]", line.Names)
			}
			return
		}
	}
	t.Error("expected a 'Grandma to' line")
}

func TestSummarize_UnknownPerson(t *testing.T) {
	w := newWorld()
	if lines := w.explainer().Summarize("nobody"); lines != nil {
		t.Errorf("expected nil for unknown person, got %+v", lines)
	}
}
