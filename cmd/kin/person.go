package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kin/internal/directory"
	"kin/internal/kinship"
)

var (
	personAddGender string
	personAddPhoto  string
	personAddNotes  string
	personFormat    string

	personUpdateName   string
	personUpdateGender string
	personUpdatePhoto  string
	personUpdateNotes  string
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage people in the directory",
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a person",
	Long: `Add a person to the directory.

Examples:
  kin person add "Grandma June"
  kin person add Bob --gender male --notes "my cousin"`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonAdd,
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all people",
	Args:  cobra.NoArgs,
	RunE:  runPersonList,
}

var personShowCmd = &cobra.Command{
	Use:   "show <person>",
	Short: "Show a person and their relationships",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonShow,
}

var personUpdateCmd = &cobra.Command{
	Use:   "update <person>",
	Short: "Update a person's details",
	Long: `Update a person's details. Only the given flags change.

Examples:
  kin person update Bob --name "Robert"
  kin person update Alice --gender female --photo alice.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonUpdate,
}

var personRmCmd = &cobra.Command{
	Use:   "rm <person>",
	Short: "Remove a person and all their relationships",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonRm,
}

func init() {
	personCmd.PersistentFlags().StringVar(&personFormat, "format", "human", "Output format (json, human)")

	personAddCmd.Flags().StringVar(&personAddGender, "gender", "", "Gender for label phrasing (female, male, neutral)")
	personAddCmd.Flags().StringVar(&personAddPhoto, "photo", "", "Photo reference")
	personAddCmd.Flags().StringVar(&personAddNotes, "notes", "", "Free-form notes")

	personUpdateCmd.Flags().StringVar(&personUpdateName, "name", "", "New name")
	personUpdateCmd.Flags().StringVar(&personUpdateGender, "gender", "", "New gender (female, male, neutral)")
	personUpdateCmd.Flags().StringVar(&personUpdatePhoto, "photo", "", "New photo reference")
	personUpdateCmd.Flags().StringVar(&personUpdateNotes, "notes", "", "New notes")

	personCmd.AddCommand(personAddCmd)
	personCmd.AddCommand(personListCmd)
	personCmd.AddCommand(personShowCmd)
	personCmd.AddCommand(personUpdateCmd)
	personCmd.AddCommand(personRmCmd)
	rootCmd.AddCommand(personCmd)
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	gender, err := kinship.ParseGender(personAddGender)
	if err != nil {
		return err
	}

	person, err := dir.AddPerson(args[0], gender, personAddPhoto, personAddNotes)
	if err != nil {
		return err
	}

	return printResponse(&PersonResponse{Person: person}, personFormat)
}

func runPersonList(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	people := dir.People()
	return printResponse(&PersonListResponse{People: people, Count: len(people)}, personFormat)
}

func runPersonShow(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	person, err := resolvePerson(dir, args[0])
	if err != nil {
		return err
	}

	neighbors, err := dir.Neighbors(person.ID)
	if err != nil {
		return err
	}

	return printResponse(&PersonDetailResponse{Person: person, Neighbors: neighbors}, personFormat)
}

func runPersonUpdate(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	person, err := resolvePerson(dir, args[0])
	if err != nil {
		return err
	}

	var upd directory.PersonUpdate
	if cmd.Flags().Changed("name") {
		upd.Name = &personUpdateName
	}
	if cmd.Flags().Changed("gender") {
		gender, err := kinship.ParseGender(personUpdateGender)
		if err != nil {
			return err
		}
		upd.Gender = &gender
	}
	if cmd.Flags().Changed("photo") {
		upd.Photo = &personUpdatePhoto
	}
	if cmd.Flags().Changed("notes") {
		upd.Notes = &personUpdateNotes
	}

	updated, err := dir.UpdatePerson(person.ID, upd)
	if err != nil {
		return err
	}

	return printResponse(&PersonResponse{Person: updated}, personFormat)
}

func runPersonRm(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	person, err := resolvePerson(dir, args[0])
	if err != nil {
		return err
	}

	if err := dir.DeletePerson(person.ID); err != nil {
		return err
	}

	return printResponse(&MessageResponse{
		Message: fmt.Sprintf("Removed %s and their relationships", person.Name),
	}, personFormat)
}
