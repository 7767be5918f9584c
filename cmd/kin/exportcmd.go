package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kin/internal/directory"
	"kin/internal/export"
)

var (
	exportFormatFlag string
	exportCompress   bool
	exportPassphrase string
	importPassphrase string
	clearYes         bool
	snapshotFormat   string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the directory to a snapshot file",
	Long: `Export the directory to a snapshot file. The encoding follows the file
extension (.json, .yaml, .yml; add .gz to compress) unless --encoding is set.
With --passphrase the file is sealed and unreadable without it.

Examples:
  kin export family.json
  kin export family.yaml.gz
  kin export family.json --passphrase "long secret"`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot file, replacing all current data",
	Long: `Import a snapshot file, replacing all current data. Accepts files
written by "kin export" and .toml seed files describing people and facts.

The import is all or nothing: an invalid file leaves the directory untouched.

Examples:
  kin import family.json
  kin import family.json --passphrase "long secret"
  kin import starter.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all people and relationships",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormatFlag, "encoding", "", "Snapshot encoding (json, yaml); default follows the file extension")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Gzip the snapshot; implied by a .gz extension")
	exportCmd.Flags().StringVar(&exportPassphrase, "passphrase", "", "Seal the snapshot with a passphrase")
	exportCmd.Flags().StringVar(&snapshotFormat, "format", "human", "Output format (json, human)")

	importCmd.Flags().StringVar(&importPassphrase, "passphrase", "", "Passphrase for sealed snapshots")
	importCmd.Flags().StringVar(&snapshotFormat, "format", "human", "Output format (json, human)")

	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Skip the confirmation prompt")
	clearCmd.Flags().StringVar(&snapshotFormat, "format", "human", "Output format (json, human)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	path := args[0]

	format := export.FormatForPath(path)
	if exportFormatFlag != "" {
		format, err = export.ParseFormat(exportFormatFlag)
		if err != nil {
			return err
		}
	}

	opts := export.Options{
		Format:     format,
		Compress:   exportCompress || strings.HasSuffix(strings.ToLower(path), ".gz"),
		Passphrase: exportPassphrase,
	}

	snap := dir.Export()
	if err := export.WriteFile(path, snap, opts); err != nil {
		return err
	}

	return printResponse(&MessageResponse{
		Message: fmt.Sprintf("Exported %d people and %d relationships to %s",
			len(snap.People), len(snap.Relationships), path),
	}, snapshotFormat)
}

func runImport(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	path := args[0]

	var snap *directory.Snapshot
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snap, err = directory.DecodeSeed(data)
		if err != nil {
			return err
		}
	} else {
		snap, err = export.ReadFile(path, importPassphrase)
		if err != nil {
			return err
		}
	}

	if err := dir.Import(snap); err != nil {
		return err
	}

	return printResponse(&MessageResponse{
		Message: fmt.Sprintf("Imported %d people and %d relationships from %s",
			len(snap.People), len(snap.Relationships), path),
	}, snapshotFormat)
}

func runClear(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	if !clearYes {
		stats := dir.Stats()
		fmt.Printf("This deletes %d people and %d relationships. Continue? [y/N] ",
			stats.People, stats.Relationships)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return printResponse(&MessageResponse{Message: "Aborted"}, snapshotFormat)
		}
	}

	if err := dir.Clear(); err != nil {
		return err
	}
	return printResponse(&MessageResponse{Message: "Directory cleared"}, snapshotFormat)
}
