// Package tui provides the BubbleTea-based shell interface: the
// titlebar, the embedded-content placeholder, and the toast overlay.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gemdesk/gemdesk/internal/config"
	"github.com/gemdesk/gemdesk/internal/model"
	"github.com/gemdesk/gemdesk/internal/shell"
	"github.com/gemdesk/gemdesk/internal/theme"
	"github.com/gemdesk/gemdesk/internal/toast"
)

// toastWidth is the rendered width of a toast card.
const toastWidth = 44

// toastEventMsg wraps a toast manager event for the update loop.
type toastEventMsg toast.Event

// eventsClosedMsg signals that the manager was closed.
type eventsClosedMsg struct{}

// tickMsg refreshes relative timestamps.
type tickMsg time.Time

// Model is the main shell TUI model.
type Model struct {
	cfg     *config.Config
	toasts  *toast.Manager
	windows *shell.WindowRegistry
	version string

	events  <-chan toast.Event
	dispose func()

	// Snapshots refreshed on every toast event
	visible []model.Toast
	queued  int
	total   int

	selected int
	width    int
	height   int

	keys     KeyMap
	help     help.Model
	progress progress.Model
}

// New creates the shell TUI model.
func New(cfg *config.Config, toasts *toast.Manager, windows *shell.WindowRegistry, version string) Model {
	events, dispose := toasts.Subscribe()

	return Model{
		cfg:      cfg,
		toasts:   toasts,
		windows:  windows,
		version:  version,
		events:   events,
		dispose:  dispose,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(toastWidth-4)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(listenForEvents(m.events), tick())
}

// listenForEvents waits for the next toast manager event.
func listenForEvents(events <-chan toast.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return toastEventMsg(ev)
	}
}

// tick refreshes the view once a second for relative timestamps.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case toastEventMsg:
		m.refresh()
		return m, listenForEvents(m.events)

	case eventsClosedMsg:
		return m, tea.Quit

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if t, ok := m.selectedToast(); ok {
			m.toasts.Dismiss(t.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
		return m, nil

	case key.Matches(msg, m.keys.Invoke):
		if t, ok := m.selectedToast(); ok {
			if action := t.PrimaryAction(); action != nil {
				m.toasts.InvokeAction(t.ID, action.Label)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.QuickChat):
		m.windows.Toggle(shell.QuickChatWindowLabel)
		return m, nil
	}

	return m, nil
}

// refresh pulls fresh snapshots from the toast manager.
func (m *Model) refresh() {
	m.visible = m.toasts.Visible()
	m.queued = m.toasts.QueuedCount()
	m.total = m.toasts.Count()

	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// selectedToast returns the currently selected visible toast.
func (m Model) selectedToast() (model.Toast, bool) {
	if len(m.visible) == 0 || m.selected >= len(m.visible) {
		return model.Toast{}, false
	}
	return m.visible[m.selected], true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	titlebar := theme.TitlebarStyle.Width(m.width).Render(
		fmt.Sprintf("gemdesk %s · %s", m.version, m.cfg.Shell.URL))

	overlay := m.renderToasts()
	content := m.renderContent(lipgloss.Height(overlay))

	body := content
	if overlay != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, content, overlay)
	}

	status := theme.StatusBarStyle.Width(m.width).Render(m.statusLine())
	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, titlebar, body, status, helpView)
}

// renderContent renders the embedded-content placeholder panel.
func (m Model) renderContent(minHeight int) string {
	width := m.width - toastWidth - 4
	if len(m.visible) == 0 {
		width = m.width - 2
	}
	if width < 20 {
		width = 20
	}

	height := m.height - 5
	if height < minHeight {
		height = minHeight
	}
	if height < 3 {
		height = 3
	}

	msg := fmt.Sprintf("content served at http://%s", m.cfg.Proxy.Listen)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(msg)
}

// renderToasts renders the visible toast stack plus the queued count.
func (m Model) renderToasts() string {
	if len(m.visible) == 0 {
		return ""
	}

	cards := make([]string, 0, len(m.visible)+1)
	for i, t := range m.visible {
		cards = append(cards, m.renderToast(t, i == m.selected))
	}
	if m.queued > 0 {
		cards = append(cards, theme.QueuedStyle.Render(fmt.Sprintf("  +%d queued", m.queued)))
	}

	return lipgloss.JoinVertical(lipgloss.Right, cards...)
}

// renderToast renders a single toast card.
func (m Model) renderToast(t model.Toast, selected bool) string {
	var b strings.Builder

	title := t.Title
	if title == "" {
		title = string(t.Type)
	}
	b.WriteString(theme.TitleStyle(t.Type).Render(
		fmt.Sprintf("%s %s", theme.TypeIcon(t.Type), title)))
	b.WriteString("\n")
	b.WriteString(t.MessageTruncated(toastWidth - 4))

	if t.Type == model.ToastProgress {
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(float64(t.Progress) / 100))
	}

	if len(t.Actions) > 0 {
		b.WriteString("\n")
		labels := make([]string, 0, len(t.Actions))
		for _, a := range t.Actions {
			style := theme.ActionStyle
			if a.Primary {
				style = theme.PrimaryActionStyle
			}
			labels = append(labels, style.Render("["+a.Label+"]"))
		}
		b.WriteString(strings.Join(labels, " "))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(t.RelativeTime()))

	style := theme.BorderForType(t.Type).Width(toastWidth)
	if selected {
		style = style.BorderForeground(theme.ColorWhite)
	}
	return style.Render(b.String())
}

// statusLine builds the bottom status bar text.
func (m Model) statusLine() string {
	parts := []string{
		fmt.Sprintf("toasts: %d visible, %d queued", len(m.visible), m.queued),
	}
	if state, ok := m.windows.Get(shell.QuickChatWindowLabel); ok && state.Status == shell.WindowOpen {
		parts = append(parts, "quick chat: open")
	}
	return strings.Join(parts, " │ ")
}
