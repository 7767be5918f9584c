package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kin/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(dataDir)
	if err != nil {
		return err
	}

	output, err := formatJSON(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Data directory: %s\n%s\n", dataDir, output)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	if err := config.DefaultConfig().Save(dataDir); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s/config.json\n", dataDir)
	return nil
}
