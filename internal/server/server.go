// Package server exposes the local control API for a running gemdesk
// instance. A second gemdesk invocation (or any local script) uses it
// to show toasts, dismiss them, and coordinate window lifecycle.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/shell"
	"github.com/gemdesk/gemdesk/internal/toast"
)

// ToastRequest is the JSON body for showing a toast.
type ToastRequest struct {
	ID         string   `json:"id,omitempty"`
	Type       string   `json:"type,omitempty"`
	Title      string   `json:"title,omitempty"`
	Message    string   `json:"message"`
	Icon       string   `json:"icon,omitempty"`
	Progress   int      `json:"progress,omitempty"`
	Actions    []string `json:"actions,omitempty"` // labels only; handlers stay in-process
	Persistent bool     `json:"persistent,omitempty"`
}

// ToastResponse is the JSON reply to a show request.
type ToastResponse struct {
	ID string `json:"id"`
}

// StatusResponse describes the running instance.
type StatusResponse struct {
	Version     string            `json:"version"`
	ToastCount  int               `json:"toast_count"`
	Visible     int               `json:"visible"`
	Queued      int               `json:"queued"`
	Windows     map[string]string `json:"windows"`
	OpenWindows int               `json:"open_windows"`
}

// WindowResponse is the JSON reply to a window status change.
type WindowResponse struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// Server is the control API server.
type Server struct {
	version string
	toasts  *toast.Manager
	windows *shell.WindowRegistry
	logger  *slog.Logger

	httpServer *http.Server
}

// New creates a Server around the given collaborators.
func New(version string, toasts *toast.Manager, windows *shell.WindowRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		version: version,
		toasts:  toasts,
		windows: windows,
		logger:  logger,
	}
}

// Router builds the chi router for the control API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Route("/toasts", func(r chi.Router) {
			r.Get("/", s.handleListToasts)
			r.Post("/", s.handleShowToast)
			r.Delete("/", s.handleDismissAll)
			r.Delete("/{id}", s.handleDismiss)
		})

		r.Post("/windows/{label}/{status}", s.handleWindowStatus)
		r.Post("/windows/{label}/toggle", s.handleWindowToggle)
	})

	return r
}

// ListenAndServe serves the control API on addr until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	s.logger.Info("control api listening", "addr", listener.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	windows := make(map[string]string)
	for _, label := range s.windows.Labels() {
		if state, ok := s.windows.Get(label); ok {
			windows[label] = state.Status.String()
		}
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Version:     s.version,
		ToastCount:  s.toasts.Count(),
		Visible:     s.toasts.VisibleCount(),
		Queued:      s.toasts.QueuedCount(),
		Windows:     windows,
		OpenWindows: s.windows.OpenCount(),
	})
}

func (s *Server) handleListToasts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.toasts.List())
}

func (s *Server) handleShowToast(w http.ResponseWriter, r *http.Request) {
	var req ToastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	actions := make([]model.Action, 0, len(req.Actions))
	for i, label := range req.Actions {
		actions = append(actions, model.Action{Label: label, Primary: i == 0})
	}

	id := s.toasts.Show(model.Toast{
		ID:         req.ID,
		Type:       model.NormalizeType(req.Type),
		Title:      req.Title,
		Message:    req.Message,
		Icon:       req.Icon,
		Progress:   req.Progress,
		Actions:    actions,
		Persistent: req.Persistent,
	})

	writeJSON(w, http.StatusOK, ToastResponse{ID: id})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	// Unknown IDs are a silent no-op by contract, so this always succeeds.
	s.toasts.Dismiss(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissAll(w http.ResponseWriter, r *http.Request) {
	s.toasts.DismissAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWindowStatus(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	status, ok := shell.ParseWindowStatus(chi.URLParam(r, "status"))
	if !ok {
		http.Error(w, "unknown window status", http.StatusBadRequest)
		return
	}

	if !s.windows.SetStatus(label, status) {
		http.Error(w, "unknown window label", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, WindowResponse{Label: label, Status: status.String()})
}

func (s *Server) handleWindowToggle(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	status := s.windows.Toggle(label)
	writeJSON(w, http.StatusOK, WindowResponse{Label: label, Status: status.String()})
}

// logRequests logs each request through the shell's structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("control request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
