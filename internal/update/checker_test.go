package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_NewerVersionAvailable(t *testing.T) {
	srv := releaseServer(t, http.StatusOK,
		`{"tag_name":"v2.0.0","html_url":"https://example.com/r/2.0.0","assets":[{"name":"gemdesk-linux-amd64","browser_download_url":"https://example.com/a","size":1024}]}`)

	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	result, err := c.Check(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Available)
	assert.Equal(t, "1.0.0", result.CurrentVersion)
	assert.Equal(t, "2.0.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/r/2.0.0", result.ReleaseURL)
	require.NotNil(t, result.Release)
	assert.NotNil(t, FindAsset(result.Release, "gemdesk-linux-amd64"))
	assert.Nil(t, FindAsset(result.Release, "missing"))
}

func TestChecker_AlreadyCurrent(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.0.0"}`)

	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestChecker_DevBuildTreatedAsOlder(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.0.0"}`)

	c := NewChecker(srv.URL, "dev", srv.Client())
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, "dev", result.CurrentVersion)
}

func TestChecker_NoReleases(t *testing.T) {
	srv := releaseServer(t, http.StatusNotFound, `{}`)

	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	result, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestChecker_ServerError(t *testing.T) {
	srv := releaseServer(t, http.StatusInternalServerError, "boom")

	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	_, err := c.Check(context.Background())
	assert.ErrorContains(t, err, "500")
}

func TestChecker_BadLatestVersion(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"nightly"}`)

	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	_, err := c.Check(context.Background())
	assert.ErrorContains(t, err, "parse latest version")
}

func TestChecker_DownloadAsset(t *testing.T) {
	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	asset := &Asset{
		Name:               "gemdesk-linux-amd64",
		BrowserDownloadURL: srv.URL,
		Size:               int64(len(payload)),
	}

	var lastDone, lastTotal int64
	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	path, err := c.DownloadAsset(context.Background(), asset, func(done, total int64) {
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, int64(len(payload)), lastDone)
	assert.Equal(t, int64(len(payload)), lastTotal)
}

func TestChecker_DownloadAssetFailure(t *testing.T) {
	srv := releaseServer(t, http.StatusForbidden, "nope")

	asset := &Asset{BrowserDownloadURL: srv.URL}
	c := NewChecker(srv.URL, "1.0.0", srv.Client())
	_, err := c.DownloadAsset(context.Background(), asset, nil)
	assert.ErrorContains(t, err, "403")
}
