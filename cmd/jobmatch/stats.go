package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobmatch/internal/matching"
)

var (
	statsUserID        string
	statsSkillGapLimit int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a user's match statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsUserID, "user", "", "User UUID (required)")
	statsCmd.Flags().IntVar(&statsSkillGapLimit, "skill-gap-limit", 0, "Cap on the top-skill-gaps list")
	_ = statsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(statsUserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", statsUserID, err)
	}

	d, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	stats, err := d.matches.Stats(cmd.Context(), userID, matching.StatsOptions{
		SkillGapLimit: statsSkillGapLimit,
	})
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
