package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"kin/internal/directory"
	"kin/internal/explain"
	"kin/internal/kinship"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// PersonResponse wraps a single person record
type PersonResponse struct {
	Person kinship.Person `json:"person"`
}

// PersonListResponse wraps the people listing
type PersonListResponse struct {
	People []kinship.Person `json:"people"`
	Count  int              `json:"count"`
}

// PersonDetailResponse is a person plus their direct relationships
type PersonDetailResponse struct {
	Person    kinship.Person       `json:"person"`
	Neighbors []directory.Neighbor `json:"neighbors"`
}

// RelateResponse reports a recorded (or re-recorded) relationship fact
type RelateResponse struct {
	Relationship kinship.Relationship `json:"relationship"`
	Created      bool                 `json:"created"`
	PersonAName  string               `json:"personAName"`
	PersonBName  string               `json:"personBName"`
}

// WhoisResponse carries ranked explanations for a person
type WhoisResponse struct {
	Person       kinship.Person        `json:"person"`
	Explanations []explain.Explanation `json:"explanations"`
}

// NametagResponse carries reunion-style nametag lines
type NametagResponse struct {
	Person kinship.Person        `json:"person"`
	Lines  []explain.NametagLine `json:"lines"`
}

// PerspectiveResponse reports the current point of view
type PerspectiveResponse struct {
	Person *kinship.Person `json:"person,omitempty"`
}

// StatsResponse wraps directory statistics
type StatsResponse struct {
	Stats           directory.Stats `json:"stats"`
	PerspectiveName string          `json:"perspectiveName,omitempty"`
}

// MessageResponse is a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// printResponse formats a response and writes it to stdout
func printResponse(resp interface{}, format string) error {
	output, err := FormatResponse(resp, OutputFormat(format))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *PersonResponse:
		return formatPersonHuman(v)
	case *PersonListResponse:
		return formatPersonListHuman(v)
	case *PersonDetailResponse:
		return formatPersonDetailHuman(v)
	case *RelateResponse:
		return formatRelateHuman(v)
	case *WhoisResponse:
		return formatWhoisHuman(v)
	case *NametagResponse:
		return formatNametagHuman(v)
	case *PerspectiveResponse:
		return formatPerspectiveHuman(v)
	case *StatsResponse:
		return formatStatsHuman(v)
	case *MessageResponse:
		return v.Message, nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatPersonHuman(resp *PersonResponse) (string, error) {
	var b strings.Builder
	writePersonCard(&b, resp.Person)
	return strings.TrimRight(b.String(), "\n"), nil
}

func writePersonCard(b *strings.Builder, p kinship.Person) {
	b.WriteString(fmt.Sprintf("%s\n", p.Name))
	b.WriteString(fmt.Sprintf("  id:     %s\n", p.ID))
	if p.Gender != kinship.GenderNeutral {
		b.WriteString(fmt.Sprintf("  gender: %s\n", p.Gender))
	}
	if p.Photo != "" {
		b.WriteString(fmt.Sprintf("  photo:  %s\n", p.Photo))
	}
	if p.Notes != "" {
		b.WriteString(fmt.Sprintf("  notes:  %s\n", p.Notes))
	}
}

func formatPersonListHuman(resp *PersonListResponse) (string, error) {
	if resp.Count == 0 {
		return "No people recorded yet. Add one with: kin person add <name>", nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d people\n\n", resp.Count))
	for _, p := range resp.People {
		line := fmt.Sprintf("  %-24s %s", p.Name, p.ID)
		if p.Gender != kinship.GenderNeutral {
			line += fmt.Sprintf("  (%s)", p.Gender)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatPersonDetailHuman(resp *PersonDetailResponse) (string, error) {
	var b strings.Builder
	writePersonCard(&b, resp.Person)

	if len(resp.Neighbors) > 0 {
		b.WriteString("\nRelationships:\n")
		for _, n := range resp.Neighbors {
			b.WriteString(fmt.Sprintf("  %-8s %s\n", n.Type, n.Person.Name))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatRelateHuman(resp *RelateResponse) (string, error) {
	fact := fmt.Sprintf("%s is a %s of %s",
		resp.PersonAName, resp.Relationship.Type, resp.PersonBName)
	if resp.Relationship.Type.Symmetric() {
		fact = fmt.Sprintf("%s and %s are %ss",
			resp.PersonAName, resp.PersonBName, resp.Relationship.Type)
	}
	if !resp.Created {
		return fmt.Sprintf("Already recorded: %s", fact), nil
	}
	return fmt.Sprintf("Recorded: %s", fact), nil
}

func formatWhoisHuman(resp *WhoisResponse) (string, error) {
	if len(resp.Explanations) == 0 {
		return fmt.Sprintf("%s (no known connections)", resp.Person.Name), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s is:\n", resp.Person.Name))
	for _, e := range resp.Explanations {
		b.WriteString(fmt.Sprintf("  - %s\n", e.Text))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatNametagHuman(resp *NametagResponse) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("HELLO, I'm %s\n", resp.Person.Name))
	for _, line := range resp.Lines {
		b.WriteString(fmt.Sprintf("  %s %s\n", line.Label, strings.Join(line.Names, ", ")))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func formatPerspectiveHuman(resp *PerspectiveResponse) (string, error) {
	if resp.Person == nil {
		return "No perspective set. Set one with: kin perspective <person>", nil
	}
	return fmt.Sprintf("Looking at the directory as %s (%s)", resp.Person.Name, resp.Person.ID), nil
}

func formatStatsHuman(resp *StatsResponse) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("People:        %d\n", resp.Stats.People))
	b.WriteString(fmt.Sprintf("Relationships: %d\n", resp.Stats.Relationships))
	if resp.PerspectiveName != "" {
		b.WriteString(fmt.Sprintf("Perspective:   %s\n", resp.PerspectiveName))
	}

	if len(resp.Stats.Graph.EdgesByType) > 0 {
		b.WriteString("\nBy type:\n")
		for _, t := range kinship.RelTypes {
			if count, ok := resp.Stats.Graph.EdgesByType[t]; ok {
				b.WriteString(fmt.Sprintf("  %-8s %d\n", t, count))
			}
		}
	}
	b.WriteString(fmt.Sprintf("\nAverage connections per person: %.1f", resp.Stats.Graph.AvgDegree))
	return b.String(), nil
}
