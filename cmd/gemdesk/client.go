package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/server"
)

// controlClient talks to the control API of a running gemdesk instance.
type controlClient struct {
	baseURL string
	http    *http.Client
}

// newControlClient creates a client for the configured control address.
func newControlClient() *controlClient {
	return &controlClient{
		baseURL: "http://" + cfg.Control.Listen,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// do issues a request and decodes the JSON reply into out (when non-nil).
func (c *controlClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("is gemdesk running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s (%d)", method, path, bytes.TrimSpace(msg), resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *controlClient) showToast(ctx context.Context, req server.ToastRequest) (string, error) {
	var resp server.ToastResponse
	if err := c.do(ctx, http.MethodPost, "/v1/toasts", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *controlClient) listToasts(ctx context.Context) ([]model.Toast, error) {
	var toasts []model.Toast
	if err := c.do(ctx, http.MethodGet, "/v1/toasts", nil, &toasts); err != nil {
		return nil, err
	}
	return toasts, nil
}

func (c *controlClient) dismiss(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/toasts/"+id, nil, nil)
}

func (c *controlClient) dismissAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/toasts", nil, nil)
}

func (c *controlClient) status(ctx context.Context) (*server.StatusResponse, error) {
	var resp server.StatusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *controlClient) setWindow(ctx context.Context, label, status string) (*server.WindowResponse, error) {
	var resp server.WindowResponse
	if err := c.do(ctx, http.MethodPost, "/v1/windows/"+label+"/"+status, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *controlClient) toggleWindow(ctx context.Context, label string) (*server.WindowResponse, error) {
	var resp server.WindowResponse
	if err := c.do(ctx, http.MethodPost, "/v1/windows/"+label+"/toggle", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
