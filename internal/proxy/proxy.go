// Package proxy serves the wrapped web app through a local endpoint
// that strips the response headers preventing embedded display.
package proxy

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// headersToStrip are removed from proxied responses so the upstream
// page can be embedded in the shell.
var headersToStrip = []string{
	"X-Frame-Options",
	"Content-Security-Policy",
	"X-Content-Type-Options",
}

// Proxy is a reverse proxy to the wrapped web app's origin.
type Proxy struct {
	upstream *url.URL
	logger   *slog.Logger
	inner    *httputil.ReverseProxy
}

// New creates a Proxy for the given upstream origin URL.
func New(upstream string, logger *slog.Logger) (*Proxy, error) {
	if logger == nil {
		logger = slog.Default()
	}

	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("upstream url %q must be absolute", upstream)
	}

	p := &Proxy{
		upstream: target,
		logger:   logger,
	}

	p.inner = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = target.Host
		},
		ModifyResponse: p.stripHeaders,
		ErrorHandler:   p.handleError,
	}

	return p, nil
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.logger.Debug("proxying request", "path", r.URL.Path, "upstream", p.upstream.Host)
	p.inner.ServeHTTP(w, r)
}

// stripHeaders removes the embed-blocking headers from the upstream
// response. Everything else passes through untouched.
func (p *Proxy) stripHeaders(resp *http.Response) error {
	for _, h := range headersToStrip {
		resp.Header.Del(h)
	}
	p.logger.Debug("proxied response",
		"status", resp.StatusCode,
		"path", resp.Request.URL.Path,
	)
	return nil
}

// handleError turns upstream failures into a plain-text 502.
func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("proxy request failed", "path", r.URL.Path, "error", err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	fmt.Fprintln(w, "Failed to fetch from upstream")
}

// ListenAndServe serves the proxy on addr until the server fails.
func (p *Proxy) ListenAndServe(addr string) error {
	p.logger.Info("embed proxy listening", "addr", addr, "upstream", p.upstream.String())
	return http.ListenAndServe(addr, p)
}
