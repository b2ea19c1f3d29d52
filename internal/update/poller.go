package update

import (
	"context"
	"log/slog"
	"time"
)

// Poller runs periodic update checks and reports results to a Notifier.
type Poller struct {
	checker  *Checker
	notifier *Notifier
	interval time.Duration
	logger   *slog.Logger

	// assetName, when set, enables automatic download of the matching
	// release asset after an update is found.
	assetName         string
	downloadedVersion string
}

// NewPoller creates a Poller.
func NewPoller(checker *Checker, notifier *Notifier, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		checker:  checker,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// SetAssetName enables auto-download of the named release asset once
// an update is found.
func (p *Poller) SetAssetName(name string) {
	p.assetName = name
}

// Run checks immediately, then on every interval tick until the
// context is cancelled. It blocks; run it in a goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.checkOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.checkOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// checkOnce performs a single check and routes the outcome to the notifier.
func (p *Poller) checkOnce(ctx context.Context) {
	result, err := p.checker.Check(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.notifier.Error(err)
		return
	}

	if !result.Available {
		p.logger.Debug("no update available", "current", result.CurrentVersion)
		p.notifier.NotAvailable()
		return
	}

	p.logger.Info("update available",
		"current", result.CurrentVersion,
		"latest", result.LatestVersion,
	)
	p.notifier.Available(result.LatestVersion)

	if p.assetName == "" || result.Release == nil {
		return
	}
	if p.downloadedVersion == result.LatestVersion {
		// Already downloaded this version on a previous tick
		p.notifier.Downloaded(result.LatestVersion)
		return
	}
	p.download(ctx, result)
}

// download fetches the release asset, reporting progress through the
// notifier. Failures keep the "update available" toast so the next
// tick can retry.
func (p *Poller) download(ctx context.Context, result *Result) {
	asset := FindAsset(result.Release, p.assetName)
	if asset == nil {
		p.logger.Warn("release has no matching asset",
			"asset", p.assetName,
			"version", result.LatestVersion,
		)
		return
	}

	path, err := p.checker.DownloadAsset(ctx, asset, p.notifier.Progress)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("update download failed", "error", err)
		}
		return
	}

	p.logger.Info("update downloaded", "version", result.LatestVersion, "path", path)
	p.downloadedVersion = result.LatestVersion
	p.notifier.Downloaded(result.LatestVersion)
}
