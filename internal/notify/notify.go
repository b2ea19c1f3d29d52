// Package notify mirrors selected toasts to the native desktop
// notification system, so alerts reach the user while the shell
// window is unfocused.
package notify

import (
	"context"
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/toast"
)

// sender is swapped out in tests.
type sender func(title, message, icon string) error

// Mirror forwards error and success toasts to the OS.
type Mirror struct {
	toasts *toast.Manager
	logger *slog.Logger
	send   sender
}

// NewMirror creates a Mirror over the given toast manager.
func NewMirror(toasts *toast.Manager, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		toasts: toasts,
		logger: logger,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Run subscribes to the toast manager and forwards qualifying toasts
// until the context is cancelled. It blocks; run it in a goroutine.
func (m *Mirror) Run(ctx context.Context) {
	events, dispose := m.toasts.Subscribe()
	defer dispose()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != toast.EventShow {
				continue
			}
			if t, exists := m.toasts.Get(ev.ID); exists {
				m.forward(t)
			}
		case <-ctx.Done():
			return
		}
	}
}

// forward delivers one toast to the OS. Only error and success toasts
// qualify; delivery failures are logged, never fatal.
func (m *Mirror) forward(t model.Toast) {
	if t.Type != model.ToastError && t.Type != model.ToastSuccess {
		return
	}

	title := t.Title
	if title == "" {
		title = "gemdesk"
	}

	if err := m.send(title, t.Message, t.Icon); err != nil {
		m.logger.Warn("failed to deliver os notification", "id", t.ID, "error", err)
	}
}
