package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kin/internal/kinship"
)

var relateFormat string

var relateCmd = &cobra.Command{
	Use:   "relate <person> <type> <person>",
	Short: "Record a relationship fact",
	Long: `Record a relationship fact between two people. The inverse is derived
automatically: recording "june parent alice" also means Alice is June's child.

Types: parent, child, sibling, spouse, friend

Examples:
  kin relate "Grandma June" parent "Alice"
  kin relate Alice spouse Dave
  kin relate Bob friend Frank`,
	Args: cobra.ExactArgs(3),
	RunE: runRelate,
}

var unrelateCmd = &cobra.Command{
	Use:   "unrelate <person> <type> <person>",
	Short: "Remove a recorded relationship fact",
	Args:  cobra.ExactArgs(3),
	RunE:  runUnrelate,
}

func init() {
	relateCmd.Flags().StringVar(&relateFormat, "format", "human", "Output format (json, human)")
	unrelateCmd.Flags().StringVar(&relateFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(relateCmd)
	rootCmd.AddCommand(unrelateCmd)
}

func runRelate(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	a, relType, b, err := resolveFact(args)
	if err != nil {
		return err
	}

	rel, created, err := dir.Relate(a.ID, b.ID, relType)
	if err != nil {
		return err
	}

	return printResponse(&RelateResponse{
		Relationship: rel,
		Created:      created,
		PersonAName:  a.Name,
		PersonBName:  b.Name,
	}, relateFormat)
}

func runUnrelate(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	a, relType, b, err := resolveFact(args)
	if err != nil {
		return err
	}

	// Find the recorded fact in either orientation
	neighbors, err := dir.Neighbors(a.ID)
	if err != nil {
		return err
	}
	for _, n := range neighbors {
		if n.Person.ID != b.ID {
			continue
		}
		rel, ok := dir.Relationship(n.RelID)
		if !ok {
			continue
		}
		if !factMatches(rel, a.ID, b.ID, relType) {
			continue
		}
		if err := dir.Unrelate(n.RelID); err != nil {
			return err
		}
		return printResponse(&MessageResponse{
			Message: fmt.Sprintf("Removed: %s %s %s", a.Name, relType, b.Name),
		}, relateFormat)
	}

	return fmt.Errorf("no %s relationship recorded between %s and %s", relType, a.Name, b.Name)
}

func resolveFact(args []string) (a kinship.Person, t kinship.RelType, b kinship.Person, err error) {
	dir, err := mustGetDirectory()
	if err != nil {
		return
	}

	t, err = kinship.ParseRelType(args[1])
	if err != nil {
		return
	}

	a, err = resolvePerson(dir, args[0])
	if err != nil {
		return
	}
	b, err = resolvePerson(dir, args[2])
	return
}

// factMatches reports whether a stored relationship expresses the fact
// "a is t of b", accounting for the stored orientation.
func factMatches(rel kinship.Relationship, aID, bID string, t kinship.RelType) bool {
	if rel.PersonA == aID && rel.PersonB == bID {
		return rel.Type == t
	}
	if rel.PersonA == bID && rel.PersonB == aID {
		return rel.Type == t.Inverse()
	}
	return false
}
