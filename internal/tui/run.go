package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gemdesk/gemdesk/internal/config"
	"github.com/gemdesk/gemdesk/internal/shell"
	"github.com/gemdesk/gemdesk/internal/toast"
)

// RunOptions bundles the collaborators the shell interface needs.
type RunOptions struct {
	Config  *config.Config
	Toasts  *toast.Manager
	Windows *shell.WindowRegistry
	Version string
}

// Run starts the shell interface and blocks until the user quits.
func Run(opts RunOptions) error {
	m := New(opts.Config, opts.Toasts, opts.Windows, opts.Version)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
