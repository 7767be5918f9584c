package main

import (
	"github.com/spf13/cobra"
)

var nametagFormat string

var nametagCmd = &cobra.Command{
	Use:   "nametag <person>",
	Short: "Generate a reunion-style nametag",
	Long: `Generate a reunion-style nametag: who this person is married to, parent
of, grandparent to, child of, and sibling of.

Example:
  kin nametag "Grandma June"`,
	Args: cobra.ExactArgs(1),
	RunE: runNametag,
}

func init() {
	nametagCmd.Flags().StringVar(&nametagFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(nametagCmd)
}

func runNametag(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	person, err := resolvePerson(dir, args[0])
	if err != nil {
		return err
	}

	lines, err := dir.Summarize(person.ID)
	if err != nil {
		return err
	}

	return printResponse(&NametagResponse{Person: person, Lines: lines}, nametagFormat)
}
