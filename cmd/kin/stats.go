package main

import (
	"github.com/spf13/cobra"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show directory statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dir, err := mustGetDirectory()
	if err != nil {
		return err
	}

	stats := dir.Stats()
	resp := &StatsResponse{Stats: stats}
	if stats.Perspective != "" {
		if p, ok := dir.Person(stats.Perspective); ok {
			resp.PerspectiveName = p.Name
		}
	}

	return printResponse(resp, statsFormat)
}
