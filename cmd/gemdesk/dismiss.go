package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dismissOpts struct {
	all bool
}

// dismissCmd dismisses toasts in a running gemdesk instance.
var dismissCmd = &cobra.Command{
	Use:   "dismiss [TOAST_ID]",
	Short: "Dismiss a toast in the running shell",
	Long: `Dismiss a toast by ID, or every toast with --all.

Dismissing an unknown ID is not an error; the shell treats it as a
no-op.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDismiss,
}

func init() {
	rootCmd.AddCommand(dismissCmd)

	dismissCmd.Flags().BoolVar(&dismissOpts.all, "all", false,
		"Dismiss every toast")
}

func runDismiss(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	client := newControlClient()

	if dismissOpts.all {
		if err := client.dismissAll(ctx); err != nil {
			return err
		}
		fmt.Println("All toasts dismissed")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a toast ID or use --all")
	}

	if err := client.dismiss(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Dismissed %s\n", args[0])
	return nil
}
