package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var refreshUserID string

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one match refresh cycle for a user",
	Long:  `Score every active listing the user has no match for yet and persist the qualifying matches.`,
	RunE:  runRefresh,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshUserID, "user", "", "User UUID (required)")
	_ = refreshCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(refreshUserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", refreshUserID, err)
	}

	d, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	result, err := d.matches.Refresh(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
