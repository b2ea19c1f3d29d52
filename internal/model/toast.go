// Package model defines the core data structures for gemdesk.
package model

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ToastType classifies a toast for styling and default behaviour.
type ToastType string

const (
	ToastInfo     ToastType = "info"
	ToastSuccess  ToastType = "success"
	ToastWarning  ToastType = "warning"
	ToastError    ToastType = "error"
	ToastProgress ToastType = "progress"
)

// ValidToastTypes returns all valid toast type values.
func ValidToastTypes() []ToastType {
	return []ToastType{ToastInfo, ToastSuccess, ToastWarning, ToastError, ToastProgress}
}

// NormalizeType maps an arbitrary type string onto a valid ToastType.
// Unknown or empty values fall back to info; bad input is never rejected.
func NormalizeType(s string) ToastType {
	switch ToastType(strings.ToLower(strings.TrimSpace(s))) {
	case ToastSuccess:
		return ToastSuccess
	case ToastWarning:
		return ToastWarning
	case ToastError:
		return ToastError
	case ToastProgress:
		return ToastProgress
	default:
		return ToastInfo
	}
}

// ClampProgress clamps a progress percentage to [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Action is a button attached to a toast. The handler is opaque to the
// toast manager; the rendering or control layer invokes it.
type Action struct {
	Label   string `json:"label"`
	Primary bool   `json:"primary,omitempty"`
	Handler func() `json:"-"`
}

// Toast is a single notification record.
type Toast struct {
	ID         string    `json:"id"`
	Type       ToastType `json:"type"`
	Title      string    `json:"title,omitempty"`
	Message    string    `json:"message"`
	Icon       string    `json:"icon,omitempty"`
	Progress   int       `json:"progress,omitempty"` // 0-100, meaningful for ToastProgress
	Actions    []Action  `json:"actions,omitempty"`
	Persistent bool      `json:"persistent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewID generates a fresh unique toast ID.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Normalize sanitizes the toast in place: type falls back to info,
// progress is clamped. It never fails.
func (t *Toast) Normalize() {
	t.Type = NormalizeType(string(t.Type))
	t.Progress = ClampProgress(t.Progress)
}

// Clone creates a deep copy of the toast.
func (t *Toast) Clone() Toast {
	clone := *t
	if t.Actions != nil {
		clone.Actions = make([]Action, len(t.Actions))
		copy(clone.Actions, t.Actions)
	}
	return clone
}

// PrimaryAction returns the first action marked primary, or the first
// action if none is marked. Returns nil when the toast has no actions.
func (t *Toast) PrimaryAction() *Action {
	if len(t.Actions) == 0 {
		return nil
	}
	for i := range t.Actions {
		if t.Actions[i].Primary {
			return &t.Actions[i]
		}
	}
	return &t.Actions[0]
}

// RelativeTime returns a human-readable relative age string.
// Examples: "just now", "5m ago", "2h ago", "1d ago".
func (t *Toast) RelativeTime() string {
	diff := int64(time.Since(t.CreatedAt).Seconds())

	if diff < 0 {
		return "in the future"
	}
	if diff < 60 {
		return "just now"
	}
	if diff < 3600 {
		return fmt.Sprintf("%dm ago", diff/60)
	}
	if diff < 86400 {
		return fmt.Sprintf("%dh ago", diff/3600)
	}
	return fmt.Sprintf("%dd ago", diff/86400)
}

// MessageTruncated returns the message truncated to maxLen characters.
// If the message is longer, it is truncated and "..." is appended.
func (t *Toast) MessageTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	msg := strings.Join(strings.Fields(t.Message), " ")

	if len(msg) <= maxLen {
		return msg
	}
	if maxLen <= 3 {
		return msg[:maxLen]
	}
	return msg[:maxLen-3] + "..."
}
