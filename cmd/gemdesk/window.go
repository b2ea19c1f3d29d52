package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// windowCmd manages windows of a running gemdesk instance.
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Manage shell windows",
	Long: `Manage windows of a running gemdesk instance.

Known labels are "main" and "quick-chat". Valid statuses are "open",
"hidden", and "closed".`,
}

// windowSetCmd sets a window's status.
var windowSetCmd = &cobra.Command{
	Use:   "set LABEL STATUS",
	Short: "Set a window's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runWindowSet,
}

// windowToggleCmd toggles a window between open and hidden.
var windowToggleCmd = &cobra.Command{
	Use:   "toggle LABEL",
	Short: "Toggle a window between open and hidden",
	Args:  cobra.ExactArgs(1),
	RunE:  runWindowToggle,
}

func init() {
	windowCmd.AddCommand(windowSetCmd)
	windowCmd.AddCommand(windowToggleCmd)
	rootCmd.AddCommand(windowCmd)
}

func runWindowSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	resp, err := newControlClient().setWindow(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", resp.Label, resp.Status)
	return nil
}

func runWindowToggle(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	resp, err := newControlClient().toggleWindow(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", resp.Label, resp.Status)
	return nil
}
