package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/toast"
)

func TestPollerNoUpdateClearsToast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ReleaseInfo{TagName: "v1.0.0"})
	}))
	defer srv.Close()

	mgr := toast.NewManager(toast.Options{AutoDismiss: -1}, slog.Default())
	defer mgr.Close()
	mgr.Show(model.Toast{ID: ToastID, Type: model.ToastInfo, Message: "stale"})

	checker := NewChecker(srv.URL, "1.0.0", nil)
	p := NewPoller(checker, NewNotifier(mgr, nil, nil), 0, nil)
	p.checkOnce(context.Background())

	_, ok := mgr.Get(ToastID)
	assert.False(t, ok, "stale update toast should be cleared")
}

func TestPollerDownloadsAssetOnce(t *testing.T) {
	payload := []byte("new binary contents")

	mux := http.NewServeMux()
	downloads := 0
	var srv *httptest.Server
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ReleaseInfo{
			TagName: "v2.0.0",
			Assets: []Asset{
				{
					Name:               "gemdesk-linux-amd64",
					BrowserDownloadURL: srv.URL + "/assets/gemdesk-linux-amd64",
					Size:               int64(len(payload)),
				},
			},
		})
	})
	mux.HandleFunc("/assets/gemdesk-linux-amd64", func(w http.ResponseWriter, r *http.Request) {
		downloads++
		w.Write(payload)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	mgr := toast.NewManager(toast.Options{AutoDismiss: -1}, slog.Default())
	defer mgr.Close()

	checker := NewChecker(srv.URL+"/releases/latest", "1.0.0", nil)
	p := NewPoller(checker, NewNotifier(mgr, nil, nil), 0, nil)
	p.SetAssetName("gemdesk-linux-amd64")

	p.checkOnce(context.Background())

	got, ok := mgr.Get(ToastID)
	require.True(t, ok)
	assert.Equal(t, model.ToastSuccess, got.Type)
	assert.Contains(t, got.Message, "2.0.0")
	assert.Equal(t, 1, downloads)

	// Re-check does not download again but keeps the ready toast.
	p.checkOnce(context.Background())
	assert.Equal(t, 1, downloads)

	got, ok = mgr.Get(ToastID)
	require.True(t, ok)
	assert.Equal(t, model.ToastSuccess, got.Type)
}

func TestPollerCheckFailureShowsErrorToast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	mgr := toast.NewManager(toast.Options{AutoDismiss: -1}, slog.Default())
	defer mgr.Close()

	checker := NewChecker(srv.URL, "1.0.0", nil)
	p := NewPoller(checker, NewNotifier(mgr, nil, nil), 0, nil)
	p.checkOnce(context.Background())

	got, ok := mgr.Get(ToastID)
	require.True(t, ok)
	assert.Equal(t, model.ToastError, got.Type)
}
