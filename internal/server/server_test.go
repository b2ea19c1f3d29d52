package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/shell"
	"github.com/gemdesk/gemdesk/internal/toast"
)

func newTestServer(t *testing.T) (*Server, *toast.Manager, *shell.WindowRegistry) {
	t.Helper()
	toasts := toast.NewManager(toast.Options{MaxVisible: 5, AutoDismiss: -1}, nil)
	t.Cleanup(toasts.Close)
	windows := shell.NewWindowRegistry()
	return New("test", toasts, windows, nil), toasts, windows
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_ShowToast(t *testing.T) {
	s, toasts, _ := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/v1/toasts",
		`{"type":"success","title":"Saved","message":"Chat exported","actions":["Open","Dismiss"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ToastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)

	got, ok := toasts.Get(resp.ID)
	require.True(t, ok)
	assert.Equal(t, model.ToastSuccess, got.Type)
	assert.Equal(t, "Chat exported", got.Message)
	require.Len(t, got.Actions, 2)
	assert.True(t, got.Actions[0].Primary)
}

func TestServer_ShowToastStableID(t *testing.T) {
	s, toasts, _ := newTestServer(t)
	router := s.Router()

	doJSON(t, router, http.MethodPost, "/v1/toasts",
		`{"id":"update-notification","message":"Version 2.0.0 is available"}`)
	doJSON(t, router, http.MethodPost, "/v1/toasts",
		`{"id":"update-notification","type":"success","message":"Update downloaded"}`)

	assert.Equal(t, 1, toasts.Count())
	got, _ := toasts.Get("update-notification")
	assert.Equal(t, model.ToastSuccess, got.Type)
}

func TestServer_ShowToastValidation(t *testing.T) {
	s, _, _ := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/v1/toasts", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/toasts", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Bad type and progress are normalized, not rejected
	rec = doJSON(t, router, http.MethodPost, "/v1/toasts",
		`{"message":"x","type":"bogus","progress":150}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_ListToasts(t *testing.T) {
	s, toasts, _ := newTestServer(t)
	toasts.Show(model.Toast{ID: "a", Message: "first"})
	toasts.Show(model.Toast{ID: "b", Message: "second"})

	rec := doJSON(t, s.Router(), http.MethodGet, "/v1/toasts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.Toast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestServer_Dismiss(t *testing.T) {
	s, toasts, _ := newTestServer(t)
	router := s.Router()
	toasts.Show(model.Toast{ID: "gone", Message: "x"})

	rec := doJSON(t, router, http.MethodDelete, "/v1/toasts/gone", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, toasts.Count())

	// Unknown IDs are a silent no-op
	rec = doJSON(t, router, http.MethodDelete, "/v1/toasts/ghost", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_DismissAll(t *testing.T) {
	s, toasts, _ := newTestServer(t)
	toasts.Show(model.Toast{Message: "one"})
	toasts.Show(model.Toast{Message: "two"})

	rec := doJSON(t, s.Router(), http.MethodDelete, "/v1/toasts", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, toasts.Count())
}

func TestServer_Status(t *testing.T) {
	s, toasts, windows := newTestServer(t)
	windows.Register(shell.MainWindowLabel)
	for i := 0; i < 7; i++ {
		toasts.Show(model.Toast{Message: "m"})
	}

	rec := doJSON(t, s.Router(), http.MethodGet, "/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "test", status.Version)
	assert.Equal(t, 7, status.ToastCount)
	assert.Equal(t, 5, status.Visible)
	assert.Equal(t, 2, status.Queued)
	assert.Equal(t, 1, status.OpenWindows)
	assert.Equal(t, "open", status.Windows[shell.MainWindowLabel])
}

func TestServer_WindowStatus(t *testing.T) {
	s, _, windows := newTestServer(t)
	router := s.Router()
	windows.Register(shell.MainWindowLabel)

	rec := doJSON(t, router, http.MethodPost, "/v1/windows/main/hidden", "")
	require.Equal(t, http.StatusOK, rec.Code)

	state, _ := windows.Get(shell.MainWindowLabel)
	assert.Equal(t, shell.WindowHidden, state.Status)

	rec = doJSON(t, router, http.MethodPost, "/v1/windows/main/minimized", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/v1/windows/ghost/open", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_WindowToggle(t *testing.T) {
	s, _, windows := newTestServer(t)
	router := s.Router()

	rec := doJSON(t, router, http.MethodPost, "/v1/windows/quick-chat/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WindowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "open", resp.Status)

	rec = doJSON(t, router, http.MethodPost, "/v1/windows/quick-chat/toggle", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hidden", resp.Status)

	state, _ := windows.Get(shell.QuickChatWindowLabel)
	assert.Equal(t, shell.WindowHidden, state.Status)
}
