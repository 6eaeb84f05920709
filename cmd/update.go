package cmd

import (
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/homeinfogmbh/backlight/internal/version"
)

const repositorySlug = "homeinfogmbh/backlight"

// CreateUpdateCmd creates the update command.
func CreateUpdateCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update to the latest release",
		Long:  `Replaces the running binary with the latest GitHub release.`,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			repo := selfupdate.ParseSlug(repositorySlug)

			latest, found, err := selfupdate.DetectLatest(ctx, repo)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to check for updates: %v\n", err)
				os.Exit(1)
			}
			if !found || latest.LessOrEqual(version.String()) {
				fmt.Printf("Already up to date (%s).\n", version.String())
				return
			}

			if check {
				fmt.Printf("Update available: %s -> %s\n", version.String(), latest.Version())
				return
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Cannot locate executable: %v\n", err)
				os.Exit(1)
			}
			if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
				fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Updated to %s.\n", latest.Version())
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only check whether an update is available")
	return cmd
}
