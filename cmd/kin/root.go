package main

import (
	"github.com/spf13/cobra"

	"kin/internal/version"
)

var (
	// dataDirFlag is the CLI --data-dir flag value
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "kin",
	Short: "kin - personal relationship directory",
	Long: `kin is a personal relationship directory. It records who is related to
whom, finds the shortest chain of relationships between two people, and turns
that chain into plain language: "your grandma", "Alice's husband", or a
reunion-style nametag.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("kin version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"Data directory (default: $KIN_DATA_DIR or ~/.kin)")
}
