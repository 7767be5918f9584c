package main

import (
	"github.com/spf13/cobra"
)

var (
	perspectiveFormat string
	perspectiveClear  bool
)

var perspectiveCmd = &cobra.Command{
	Use:   "perspective [person]",
	Short: "Show or set the point of view",
	Long: `Show or set whose point of view explanations use. With a perspective
set, "kin whois june" can answer "your grandma".

Examples:
  kin perspective            # show current perspective
  kin perspective Alice      # look at the directory as Alice
  kin perspective --clear    # forget the perspective`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPerspective,
}

func init() {
	perspectiveCmd.Flags().StringVar(&perspectiveFormat, "format", "human", "Output format (json, human)")
	perspectiveCmd.Flags().BoolVar(&perspectiveClear, "clear", false, "Clear the perspective")
	rootCmd.AddCommand(perspectiveCmd)
}

func runPerspective(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	if perspectiveClear {
		if err := dir.ClearPerspective(); err != nil {
			return err
		}
		return printResponse(&MessageResponse{Message: "Perspective cleared"}, perspectiveFormat)
	}

	if len(args) == 1 {
		person, err := resolvePerson(dir, args[0])
		if err != nil {
			return err
		}
		if err := dir.SetPerspective(person.ID); err != nil {
			return err
		}
		return printResponse(&PerspectiveResponse{Person: &person}, perspectiveFormat)
	}

	if person, ok := dir.Perspective(); ok {
		return printResponse(&PerspectiveResponse{Person: &person}, perspectiveFormat)
	}
	return printResponse(&PerspectiveResponse{}, perspectiveFormat)
}
