// Package toast implements the toast queue manager for gemdesk.
//
// The manager owns an ordered collection of toast records and decides
// which subset is presented. At most MaxVisible toasts are visible at a
// time; the rest wait in the same ordered collection and are promoted
// in insertion order as space opens up.
package toast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gemdesk/gemdesk/internal/model"
)

// Default values used when Options fields are zero.
const (
	DefaultMaxVisible  = 5
	DefaultAutoDismiss = 8 * time.Second
)

// EventType indicates the type of manager change.
type EventType int

const (
	// EventShow indicates a new toast was appended.
	EventShow EventType = iota
	// EventUpdate indicates an existing toast was replaced in place.
	EventUpdate
	// EventDismiss indicates a toast was removed.
	EventDismiss
	// EventDismissAll indicates the whole collection was cleared.
	EventDismissAll
)

// Event signals a change to the toast collection.
type Event struct {
	Type EventType
	ID   string // empty for EventDismissAll
}

// Options configures a Manager.
type Options struct {
	MaxVisible  int           // maximum simultaneously presented toasts (0 = default)
	AutoDismiss time.Duration // lifetime of non-persistent toasts (0 = default, <0 = never)
}

// Manager manages the ordered toast collection with thread-safe operations.
// Create one per shell instance; there is no package-level singleton.
type Manager struct {
	mu     sync.Mutex
	logger *slog.Logger

	toasts []model.Toast  // insertion order, visible prefix first
	index  map[string]int // toast ID -> slice index

	maxVisible  int
	autoDismiss time.Duration

	timers map[string]*time.Timer

	subscribers []chan Event
	closed      bool
}

// NewManager creates a new Manager.
func NewManager(opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultMaxVisible
	}
	if opts.AutoDismiss == 0 {
		opts.AutoDismiss = DefaultAutoDismiss
	}

	return &Manager{
		logger:      logger,
		toasts:      make([]model.Toast, 0),
		index:       make(map[string]int),
		maxVisible:  opts.MaxVisible,
		autoDismiss: opts.AutoDismiss,
		timers:      make(map[string]*time.Timer),
	}
}

// MaxVisible returns the configured visibility limit.
func (m *Manager) MaxVisible() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxVisible
}

// SetMaxVisible changes the visibility limit. Existing toasts are not
// removed; the visible prefix simply grows or shrinks.
func (m *Manager) SetMaxVisible(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	m.maxVisible = n
	m.mu.Unlock()
}

// Show inserts or updates a toast and returns its ID.
//
// If the request carries an ID that already exists, the entry's fields
// are replaced in place without changing its position in insertion
// order; otherwise the toast is appended to the end of the collection.
// Bad type or progress values are normalized, never rejected.
func (m *Manager) Show(req model.Toast) string {
	req.Normalize()
	if req.ID == "" {
		req.ID = model.NewID()
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return req.ID
	}

	event := Event{Type: EventShow, ID: req.ID}
	if idx, exists := m.index[req.ID]; exists {
		// Update in place: keep the original position and insertion time.
		req.CreatedAt = m.toasts[idx].CreatedAt
		m.toasts[idx] = req
		event.Type = EventUpdate
	} else {
		req.CreatedAt = time.Now()
		m.index[req.ID] = len(m.toasts)
		m.toasts = append(m.toasts, req)
	}

	m.resetTimerLocked(req.ID, req.Persistent)
	m.notifyLocked(event)

	m.logger.Debug("toast shown",
		"id", req.ID,
		"type", req.Type,
		"update", event.Type == EventUpdate,
		"total", len(m.toasts),
	)

	m.mu.Unlock()
	return req.ID
}

// Dismiss removes the toast with the given ID. Unknown IDs are a
// silent no-op. If the removed toast was visible, the earliest queued
// toast takes its place in the visible prefix.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if !m.removeLocked(id) {
		m.mu.Unlock()
		return
	}

	m.notifyLocked(Event{Type: EventDismiss, ID: id})
	m.logger.Debug("toast dismissed", "id", id, "total", len(m.toasts))
	m.mu.Unlock()
}

// DismissAll empties the entire collection, visible and queued.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	for id, tmr := range m.timers {
		tmr.Stop()
		delete(m.timers, id)
	}
	count := len(m.toasts)
	m.toasts = m.toasts[:0]
	m.index = make(map[string]int)

	m.notifyLocked(Event{Type: EventDismissAll})
	m.logger.Debug("all toasts dismissed", "count", count)
	m.mu.Unlock()
}

// List returns a snapshot of the whole collection in insertion order.
func (m *Manager) List() []model.Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]model.Toast, 0, len(m.toasts))
	for i := range m.toasts {
		result = append(result, m.toasts[i].Clone())
	}
	return result
}

// Visible returns a snapshot of the presented subset: the first
// MaxVisible entries of the collection. The visible set is derived
// from the full ordered collection on every call rather than
// maintained incrementally, so it can never drift.
func (m *Manager) Visible() []model.Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := min(m.maxVisible, len(m.toasts))
	result := make([]model.Toast, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, m.toasts[i].Clone())
	}
	return result
}

// Get returns a copy of the toast with the given ID.
func (m *Manager) Get(id string) (model.Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, exists := m.index[id]
	if !exists {
		return model.Toast{}, false
	}
	return m.toasts[idx].Clone(), true
}

// Count returns the total number of toasts, visible and queued.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// VisibleCount returns the number of currently presented toasts.
func (m *Manager) VisibleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return min(m.maxVisible, len(m.toasts))
}

// QueuedCount returns the number of toasts held back from presentation.
func (m *Manager) QueuedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) <= m.maxVisible {
		return 0
	}
	return len(m.toasts) - m.maxVisible
}

// InvokeAction runs the handler of the named action on the given toast
// and dismisses the toast afterwards. Returns false if the toast or
// action does not exist.
func (m *Manager) InvokeAction(id, label string) bool {
	m.mu.Lock()
	idx, exists := m.index[id]
	if !exists {
		m.mu.Unlock()
		return false
	}

	var handler func()
	found := false
	for _, a := range m.toasts[idx].Actions {
		if a.Label == label {
			handler = a.Handler
			found = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		return false
	}
	// Run outside the lock: handlers may call back into the manager.
	if handler != nil {
		handler()
	}
	m.Dismiss(id)
	return true
}

// Subscribe registers an observer and returns its event channel along
// with a disposer that unregisters it. Observers receive events in an
// unspecified order relative to each other; slow observers miss events
// rather than block mutations.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, 16)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	m.subscribers = append(m.subscribers, ch)

	var once sync.Once
	dispose := func() {
		once.Do(func() { m.unsubscribe(ch) })
	}
	return ch, dispose
}

// Close stops all timers and closes all observer channels. The manager
// is inert afterwards; further mutations are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	for id, tmr := range m.timers {
		tmr.Stop()
		delete(m.timers, id)
	}
	for _, ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = nil
}

// removeLocked removes a toast and rebuilds the index. Caller must
// hold the lock. Returns false if the ID is unknown.
func (m *Manager) removeLocked(id string) bool {
	idx, exists := m.index[id]
	if !exists {
		return false
	}

	if tmr, ok := m.timers[id]; ok {
		tmr.Stop()
		delete(m.timers, id)
	}

	m.toasts = append(m.toasts[:idx], m.toasts[idx+1:]...)
	m.index = make(map[string]int, len(m.toasts))
	for i := range m.toasts {
		m.index[m.toasts[i].ID] = i
	}
	return true
}

// resetTimerLocked cancels any pending auto-dismiss timer for the ID
// and schedules a new one unless the toast is persistent. Caller must
// hold the lock.
func (m *Manager) resetTimerLocked(id string, persistent bool) {
	if tmr, ok := m.timers[id]; ok {
		tmr.Stop()
		delete(m.timers, id)
	}
	if persistent || m.autoDismiss <= 0 {
		return
	}

	var tmr *time.Timer
	tmr = time.AfterFunc(m.autoDismiss, func() {
		m.expire(id, tmr)
	})
	m.timers[id] = tmr
}

// expire handles an auto-dismiss timer firing. The timer identity
// check discards callbacks from timers that were replaced after the
// callback was already scheduled.
func (m *Manager) expire(id string, tmr *time.Timer) {
	m.mu.Lock()
	if m.closed || m.timers[id] != tmr {
		m.mu.Unlock()
		return
	}
	delete(m.timers, id)

	if !m.removeLocked(id) {
		m.mu.Unlock()
		return
	}
	m.notifyLocked(Event{Type: EventDismiss, ID: id})
	m.logger.Debug("toast expired", "id", id, "total", len(m.toasts))
	m.mu.Unlock()
}

// unsubscribe removes a subscription and closes its channel.
func (m *Manager) unsubscribe(ch chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// notifyLocked sends an event to all subscribers without blocking.
// Caller must hold the lock.
func (m *Manager) notifyLocked(event Event) {
	for _, ch := range m.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}
