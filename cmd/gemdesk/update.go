package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/gemdesk/gemdesk/internal/update"
)

var updateOpts struct {
	download bool
}

// updateCmd checks for a new release from the command line.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a new gemdesk release",
	Long: `Check the releases endpoint for a version newer than this build.

With --download, also fetch the release asset for this platform into a
temporary file and print its path.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateOpts.download, "download", false,
		"Download the release asset for this platform")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	checker := update.NewChecker(cfg.Update.ReleasesURL, version, nil)
	result, err := checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	if !result.Available {
		fmt.Printf("gemdesk %s is up to date\n", result.CurrentVersion)
		return nil
	}

	fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
	if result.ReleaseURL != "" {
		fmt.Printf("  %s\n", result.ReleaseURL)
	}

	if !updateOpts.download {
		return nil
	}

	assetName := fmt.Sprintf("gemdesk-%s-%s", runtime.GOOS, runtime.GOARCH)
	asset := update.FindAsset(result.Release, assetName)
	if asset == nil {
		return fmt.Errorf("release %s has no asset %q", result.LatestVersion, assetName)
	}

	fmt.Printf("Downloading %s...\n", asset.Name)
	path, err := checker.DownloadAsset(ctx, asset, nil)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("Downloaded to %s\n", path)
	return nil
}
