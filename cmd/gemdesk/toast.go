package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gemdesk/gemdesk/internal/server"
)

var toastOpts struct {
	id         string
	toastType  string
	title      string
	progress   int
	persistent bool
	actions    []string
}

// toastCmd shows a toast in a running gemdesk instance.
var toastCmd = &cobra.Command{
	Use:   "toast MESSAGE",
	Short: "Show a toast in the running shell",
	Long: `Show a toast notification in a running gemdesk instance.

At most five toasts are visible at once; further toasts queue and are
promoted as earlier ones are dismissed. Reusing an --id updates the
existing toast in place without changing its position.

Examples:
  gemdesk toast "Build finished"
  gemdesk toast --type error --title "Deploy" "Deploy to staging failed"
  gemdesk toast --id sync --type progress --progress 40 "Syncing..."`,
	Args: cobra.ExactArgs(1),
	RunE: runToast,
}

// toastListCmd lists the toasts of a running instance.
var toastListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active toasts",
	Long:  `List every toast of the running instance in insertion order, visible first.`,
	Args:  cobra.NoArgs,
	RunE:  runToastList,
}

func init() {
	rootCmd.AddCommand(toastCmd)
	toastCmd.AddCommand(toastListCmd)

	toastCmd.Flags().StringVar(&toastOpts.id, "id", "",
		"Stable toast ID (reusing an ID updates in place)")
	toastCmd.Flags().StringVar(&toastOpts.toastType, "type", "info",
		"Toast type (info, success, warning, error, progress)")
	toastCmd.Flags().StringVar(&toastOpts.title, "title", "",
		"Toast title")
	toastCmd.Flags().IntVar(&toastOpts.progress, "progress", 0,
		"Progress percentage for progress toasts (0-100)")
	toastCmd.Flags().BoolVar(&toastOpts.persistent, "persistent", false,
		"Keep the toast until dismissed explicitly")
	toastCmd.Flags().StringArrayVar(&toastOpts.actions, "action", nil,
		"Action button label (repeatable; the first one is primary)")
}

func runToast(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	id, err := newControlClient().showToast(ctx, server.ToastRequest{
		ID:         toastOpts.id,
		Type:       toastOpts.toastType,
		Title:      toastOpts.title,
		Message:    args[0],
		Progress:   toastOpts.progress,
		Persistent: toastOpts.persistent,
		Actions:    toastOpts.actions,
	})
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}

func runToastList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	toasts, err := newControlClient().listToasts(ctx)
	if err != nil {
		return err
	}

	if len(toasts) == 0 {
		fmt.Println("No active toasts")
		return nil
	}

	for i, t := range toasts {
		marker := " "
		if i < cfg.Toast.MaxVisible {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-28s %-8s %s", marker, t.ID, t.Type, t.Message)
		if t.Title != "" {
			line = fmt.Sprintf("%s %-28s %-8s %s: %s", marker, t.ID, t.Type, t.Title, t.Message)
		}
		fmt.Println(strings.TrimRight(line, " "))
	}
	return nil
}
