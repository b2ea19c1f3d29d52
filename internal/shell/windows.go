package shell

import (
	"sync"
	"time"
)

// WindowStatus represents the lifecycle state of a shell window.
type WindowStatus int

const (
	// WindowOpen means the window exists and is shown.
	WindowOpen WindowStatus = iota
	// WindowHidden means the window exists but is not shown.
	WindowHidden
	// WindowClosed means the window has been destroyed.
	WindowClosed
)

// String returns the string representation of WindowStatus.
func (s WindowStatus) String() string {
	switch s {
	case WindowOpen:
		return "open"
	case WindowHidden:
		return "hidden"
	case WindowClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseWindowStatus maps a status string onto a WindowStatus.
func ParseWindowStatus(s string) (WindowStatus, bool) {
	switch s {
	case "open":
		return WindowOpen, true
	case "hidden":
		return WindowHidden, true
	case "closed":
		return WindowClosed, true
	default:
		return WindowClosed, false
	}
}

// WindowState tracks one labelled window.
type WindowState struct {
	Label     string
	Status    WindowStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WindowRegistry coordinates the lifecycle of labelled windows (main,
// quick-chat). Platform code and the control API both mutate it, so
// every operation is mutex-guarded.
type WindowRegistry struct {
	mu      sync.RWMutex
	byLabel map[string]*WindowState
}

// NewWindowRegistry creates an empty WindowRegistry.
func NewWindowRegistry() *WindowRegistry {
	return &WindowRegistry{
		byLabel: make(map[string]*WindowState),
	}
}

// Register adds a window in the open state. Re-registering an existing
// label reopens it, keeping the original creation time.
func (r *WindowRegistry) Register(label string) *WindowState {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if state, exists := r.byLabel[label]; exists {
		state.Status = WindowOpen
		state.UpdatedAt = now
		return state
	}

	state := &WindowState{
		Label:     label,
		Status:    WindowOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byLabel[label] = state
	return state
}

// SetStatus updates the status of a labelled window. Unknown labels
// are a no-op; returns whether the label was known.
func (r *WindowRegistry) SetStatus(label string, status WindowStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, exists := r.byLabel[label]
	if !exists {
		return false
	}
	state.Status = status
	state.UpdatedAt = time.Now()
	return true
}

// Get returns a copy of the state for a label.
func (r *WindowRegistry) Get(label string) (WindowState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.byLabel[label]
	if !exists {
		return WindowState{}, false
	}
	return *state, true
}

// Labels returns all registered window labels.
func (r *WindowRegistry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, 0, len(r.byLabel))
	for label := range r.byLabel {
		labels = append(labels, label)
	}
	return labels
}

// OpenCount returns the number of windows currently open.
func (r *WindowRegistry) OpenCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, state := range r.byLabel {
		if state.Status == WindowOpen {
			count++
		}
	}
	return count
}

// Toggle flips a window between open and hidden, registering it if
// needed. Returns the resulting status. Used by the quick-chat hotkey
// and the control API.
func (r *WindowRegistry) Toggle(label string) WindowStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	state, exists := r.byLabel[label]
	if !exists {
		state = &WindowState{
			Label:     label,
			Status:    WindowOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.byLabel[label] = state
		return WindowOpen
	}

	if state.Status == WindowOpen {
		state.Status = WindowHidden
	} else {
		state.Status = WindowOpen
	}
	state.UpdatedAt = now
	return state.Status
}
