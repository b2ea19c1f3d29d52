package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gemdesk/gemdesk/internal/config"
	"github.com/gemdesk/gemdesk/internal/notify"
	"github.com/gemdesk/gemdesk/internal/proxy"
	"github.com/gemdesk/gemdesk/internal/server"
	"github.com/gemdesk/gemdesk/internal/shell"
	"github.com/gemdesk/gemdesk/internal/toast"
	"github.com/gemdesk/gemdesk/internal/tui"
	"github.com/gemdesk/gemdesk/internal/update"
)

// runShell starts every background component and then blocks in the
// shell interface until the user quits.
func runShell(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	toasts := toast.NewManager(toast.Options{
		MaxVisible:  cfg.Toast.MaxVisible,
		AutoDismiss: cfg.Toast.AutoDismiss.Duration(),
	}, logger)
	defer toasts.Close()

	windows := shell.NewWindowRegistry()
	windows.Register(shell.MainWindowLabel)

	// Frame-embedding proxy for the wrapped web app
	geminiProxy, err := proxy.New(cfg.Proxy.Upstream, logger)
	if err != nil {
		return fmt.Errorf("failed to create proxy: %w", err)
	}
	go func() {
		if err := geminiProxy.ListenAndServe(cfg.Proxy.Listen); err != nil {
			logger.Error("proxy stopped", "error", err)
		}
	}()

	// Local control API for subcommands and scripts
	controlServer := server.New(version, toasts, windows, logger)
	go func() {
		if err := controlServer.ListenAndServe(ctx, cfg.Control.Listen); err != nil {
			logger.Error("control api stopped", "error", err)
		}
	}()

	// Background update checks
	if cfg.Update.Enabled {
		install := func() {
			logger.Info("update staged, will apply on next launch")
		}
		checker := update.NewChecker(cfg.Update.ReleasesURL, version, nil)
		notifier := update.NewNotifier(toasts, install, logger)
		poller := update.NewPoller(checker, notifier, cfg.Update.Interval.Duration(), logger)
		poller.SetAssetName(fmt.Sprintf("gemdesk-%s-%s", runtime.GOOS, runtime.GOARCH))
		go poller.Run(ctx)
	}

	// Mirror error and success toasts to the OS notification center
	if cfg.Notify.Enabled {
		mirror := notify.NewMirror(toasts, logger)
		go mirror.Run(ctx)
	}

	// Hot-reload toast settings on config file changes
	configPath := globalOpts.configPath
	if configPath == "" {
		if configPath, err = config.Path(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	watcher, err := config.NewWatcher(configPath, func(newCfg *config.Config) {
		toasts.SetMaxVisible(newCfg.Toast.MaxVisible)
		cfg = newCfg
	}, logger)
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else {
		if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	logger.Info("gemdesk ready",
		"version", version,
		"proxy", cfg.Proxy.Listen,
		"control", cfg.Control.Listen,
	)

	return tui.Run(tui.RunOptions{
		Config:  cfg,
		Toasts:  toasts,
		Windows: windows,
		Version: version,
	})
}
