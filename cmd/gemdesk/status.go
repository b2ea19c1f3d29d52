package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statusOpts struct {
	jsonOutput bool
}

// statusCmd reports the state of a running gemdesk instance.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the running shell",
	Long: `Show the state of a running gemdesk instance: version, toast
counts, and window statuses.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.jsonOutput, "json", false,
		"Output status as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	status, err := newControlClient().status(ctx)
	if err != nil {
		return err
	}

	if statusOpts.jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}

	fmt.Printf("gemdesk %s\n", status.Version)
	fmt.Printf("  Toasts: %d (%d visible, %d queued)\n",
		status.ToastCount, status.Visible, status.Queued)
	fmt.Printf("  Windows: %d open\n", status.OpenWindows)

	labels := make([]string, 0, len(status.Windows))
	for label := range status.Windows {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("    %-12s %s\n", label, status.Windows[label])
	}
	return nil
}
