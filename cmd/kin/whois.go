package main

import (
	"github.com/spf13/cobra"
)

var whoisFormat string

var whoisCmd = &cobra.Command{
	Use:   "whois <person>",
	Short: "Explain who someone is",
	Long: `Explain who someone is in plain language, ranked by how useful the
phrasing is. With a perspective set, answers are relative to that point of
view ("your grandma"); without one, they lean on well-known people
("Alice's husband").

Examples:
  kin whois "Grandma June"
  kin whois bob --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runWhois,
}

func init() {
	whoisCmd.Flags().StringVar(&whoisFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(whoisCmd)
}

func runWhois(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	person, err := resolvePerson(dir, args[0])
	if err != nil {
		return err
	}

	explanations, err := dir.Explain(person.ID)
	if err != nil {
		return err
	}

	return printResponse(&WhoisResponse{
		Person:       person,
		Explanations: explanations,
	}, whoisFormat)
}
