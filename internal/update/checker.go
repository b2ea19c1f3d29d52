// Package update checks for new gemdesk releases and drives the
// update notification toast.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ReleaseInfo contains information about a published release.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a downloadable file in a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Result contains the result of an update check.
type Result struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Release        *ReleaseInfo
}

// Checker queries a GitHub-style latest-release endpoint.
type Checker struct {
	releasesURL    string
	currentVersion string
	client         *http.Client
}

// NewChecker creates a Checker. A nil client uses http.DefaultClient.
func NewChecker(releasesURL, currentVersion string, client *http.Client) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Checker{
		releasesURL:    releasesURL,
		currentVersion: currentVersion,
		client:         client,
	}
}

// Check queries the releases endpoint for a newer version.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releasesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "gemdesk/"+c.currentVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return &Result{
			Available:      false,
			CurrentVersion: c.currentVersion,
		}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("releases endpoint returned %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	current, err := ParseSemver(c.currentVersion)
	if err != nil {
		// A "dev" or otherwise unparseable build is treated as older
		return &Result{
			Available:      true,
			CurrentVersion: c.currentVersion,
			LatestVersion:  latestVersion,
			ReleaseURL:     release.HTMLURL,
			Release:        &release,
		}, nil
	}

	latest, err := ParseSemver(latestVersion)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", latestVersion, err)
	}

	return &Result{
		Available:      current.LessThan(latest),
		CurrentVersion: c.currentVersion,
		LatestVersion:  latestVersion,
		ReleaseURL:     release.HTMLURL,
		Release:        &release,
	}, nil
}

// FindAsset finds an asset by name in a release.
func FindAsset(release *ReleaseInfo, name string) *Asset {
	for _, a := range release.Assets {
		if a.Name == name {
			return &a
		}
	}
	return nil
}

// ProgressFunc reports download progress. total is 0 when unknown.
type ProgressFunc func(done, total int64)

// DownloadAsset downloads a release asset to a temp file and returns
// the path. progress, when non-nil, is called as bytes arrive.
func (c *Checker) DownloadAsset(ctx context.Context, asset *Asset, progress ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.BrowserDownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "gemdesk-update-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	total := asset.Size
	if total == 0 {
		total = resp.ContentLength
	}

	reader := io.Reader(resp.Body)
	if progress != nil {
		reader = &progressReader{r: resp.Body, total: total, report: progress}
	}

	if _, err := io.Copy(tmpFile, reader); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return tmpFile.Name(), nil
}

// progressReader reports cumulative bytes read.
type progressReader struct {
	r      io.Reader
	done   int64
	total  int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		p.report(p.done, p.total)
	}
	return n, err
}
