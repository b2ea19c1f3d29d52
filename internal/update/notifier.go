package update

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/toast"
)

// ToastID is the stable toast identifier reused across every update
// state transition, so the whole flow occupies a single toast slot.
const ToastID = "update-notification"

// Notifier translates update lifecycle events into toast updates.
// Each transition is a Show call with the fixed ToastID, which updates
// the toast in place without disturbing its queue position.
type Notifier struct {
	toasts  *toast.Manager
	logger  *slog.Logger
	install func() // invoked by the "Install Now" action
}

// NewNotifier creates a Notifier. install is called when the user picks
// "Install Now" on the downloaded toast; it may be nil.
func NewNotifier(toasts *toast.Manager, install func(), logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		toasts:  toasts,
		logger:  logger,
		install: install,
	}
}

// Available shows the initial "update available" toast.
func (n *Notifier) Available(version string) {
	n.toasts.Show(model.Toast{
		ID:         ToastID,
		Type:       model.ToastInfo,
		Title:      "Update available",
		Message:    fmt.Sprintf("Version %s is available", version),
		Persistent: true,
	})
}

// Progress updates the toast with download progress.
func (n *Notifier) Progress(done, total int64) {
	percent := 0
	msg := fmt.Sprintf("Downloading update... %s", humanize.Bytes(uint64(done)))
	if total > 0 {
		percent = int(done * 100 / total)
		msg = fmt.Sprintf("Downloading update... %s of %s",
			humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
	}

	n.toasts.Show(model.Toast{
		ID:         ToastID,
		Type:       model.ToastProgress,
		Title:      "Downloading update",
		Message:    msg,
		Progress:   percent,
		Persistent: true,
	})
}

// Downloaded shows the success toast with install/later actions.
func (n *Notifier) Downloaded(version string) {
	n.toasts.Show(model.Toast{
		ID:         ToastID,
		Type:       model.ToastSuccess,
		Title:      "Update ready",
		Message:    fmt.Sprintf("Version %s downloaded. Restart to apply.", version),
		Persistent: true,
		Actions: []model.Action{
			{Label: "Install Now", Primary: true, Handler: n.install},
			{Label: "Later"},
		},
	})
}

// Error replaces the toast with a generic failure message. The raw
// error goes to the log only; technical detail is never surfaced in
// the toast message.
func (n *Notifier) Error(err error) {
	n.logger.Warn("update check failed", "error", err)
	n.toasts.Show(model.Toast{
		ID:      ToastID,
		Type:    model.ToastError,
		Title:   "Update check failed",
		Message: "Could not check for updates. Will retry later.",
	})
}

// NotAvailable clears any lingering update toast. Running the latest
// version produces no notification.
func (n *Notifier) NotAvailable() {
	n.toasts.Dismiss(ToastID)
}
