package main

import (
	"encoding/json"
	"strings"
	"testing"

	"kin/internal/directory"
	"kin/internal/explain"
	"kin/internal/kinship"
)

func TestFormatResponseJSON(t *testing.T) {
	resp := &PersonResponse{Person: kinship.Person{ID: "p1", Name: "Alice"}}

	output, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}

	var decoded PersonResponse
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Person.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", decoded.Person.Name)
	}
}

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(&MessageResponse{}, OutputFormat("xml")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormatPersonListHuman(t *testing.T) {
	empty := &PersonListResponse{}
	output, err := FormatResponse(empty, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(output, "No people recorded") {
		t.Errorf("Empty list output missing hint: %q", output)
	}

	list := &PersonListResponse{
		People: []kinship.Person{
			{ID: "p1", Name: "Alice", Gender: kinship.GenderFemale},
			{ID: "p2", Name: "Bob"},
		},
		Count: 2,
	}
	output, err = FormatResponse(list, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(output, "2 people") {
		t.Errorf("Missing count header: %q", output)
	}
	if !strings.Contains(output, "Alice") || !strings.Contains(output, "(female)") {
		t.Errorf("Missing person line: %q", output)
	}
}

func TestFormatWhoisHuman(t *testing.T) {
	resp := &WhoisResponse{
		Person: kinship.Person{ID: "p1", Name: "June"},
		Explanations: []explain.Explanation{
			{Text: "your grandma", Confidence: 0.95},
			{Text: "Alice's mom", Confidence: 0.6},
		},
	}

	output, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(output, "June is:") {
		t.Errorf("Missing header: %q", output)
	}
	if !strings.Contains(output, "your grandma") || !strings.Contains(output, "Alice's mom") {
		t.Errorf("Missing explanations: %q", output)
	}

	// An unconnected person gets a friendly fallback
	lonely := &WhoisResponse{Person: kinship.Person{Name: "Zed"}}
	output, err = FormatResponse(lonely, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(output, "no known connections") {
		t.Errorf("Missing fallback: %q", output)
	}
}

func TestFormatNametagHuman(t *testing.T) {
	resp := &NametagResponse{
		Person: kinship.Person{Name: "June"},
		Lines: []explain.NametagLine{
			{Label: "Wife of", Names: []string{"Hank"}},
			{Label: "Grandma to", Names: []string{"Alice", "Bob"}},
		},
	}

	output, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.Contains(output, "HELLO, I'm June") {
		t.Errorf("Missing header: %q", output)
	}
	if !strings.Contains(output, "Grandma to Alice, Bob") {
		t.Errorf("Missing grouped line: %q", output)
	}
}

func TestFormatRelateHuman(t *testing.T) {
	created := &RelateResponse{
		Relationship: kinship.Relationship{Type: kinship.Parent},
		Created:      true,
		PersonAName:  "June",
		PersonBName:  "Alice",
	}
	output, err := FormatResponse(created, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if output != "Recorded: June is a parent of Alice" {
		t.Errorf("Unexpected output: %q", output)
	}

	// Symmetric types phrase both sides at once
	spouses := &RelateResponse{
		Relationship: kinship.Relationship{Type: kinship.Spouse},
		Created:      true,
		PersonAName:  "Alice",
		PersonBName:  "Dave",
	}
	output, err = FormatResponse(spouses, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if output != "Recorded: Alice and Dave are spouses" {
		t.Errorf("Unexpected output: %q", output)
	}

	// Re-recording an existing fact is called out
	duplicate := *created
	duplicate.Created = false
	output, err = FormatResponse(&duplicate, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	if !strings.HasPrefix(output, "Already recorded:") {
		t.Errorf("Unexpected output: %q", output)
	}
}

func TestFormatStatsHuman(t *testing.T) {
	resp := &StatsResponse{
		Stats: directory.Stats{
			People:        3,
			Relationships: 2,
			Graph: kinship.GraphStats{
				ConnectedPeople: 3,
				TotalEdges:      2,
				EdgesByType:     map[kinship.RelType]int{kinship.Parent: 1, kinship.Spouse: 1},
				AvgDegree:       1.3,
			},
		},
		PerspectiveName: "Alice",
	}

	output, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse failed: %v", err)
	}
	for _, want := range []string{"People:        3", "Perspective:   Alice", "parent", "spouse"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q: %q", want, output)
		}
	}
}
