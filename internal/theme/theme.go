// Package theme provides the color palette and toast styles for the
// gemdesk shell.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gemdesk/gemdesk/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// TitlebarStyle is used for the shell's titlebar line.
var TitlebarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ToastStyle wraps a rendered toast in a rounded border.
var ToastStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// QueuedStyle renders the "+N queued" line under the toast stack.
var QueuedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// HelpStyle is used for keyboard shortcut hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ActionStyle renders a toast action button label.
var ActionStyle = lipgloss.NewStyle().
	Foreground(ColorBlue)

// PrimaryActionStyle renders the primary action label.
var PrimaryActionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// TypeColor returns the accent color for a toast type.
func TypeColor(t model.ToastType) lipgloss.AdaptiveColor {
	switch t {
	case model.ToastSuccess:
		return ColorGreen
	case model.ToastWarning:
		return ColorYellow
	case model.ToastError:
		return ColorRed
	case model.ToastProgress:
		return ColorBlue
	default:
		return ColorGray
	}
}

// TypeIcon returns the glyph shown before a toast title.
func TypeIcon(t model.ToastType) string {
	switch t {
	case model.ToastSuccess:
		return "✓"
	case model.ToastWarning:
		return "!"
	case model.ToastError:
		return "✗"
	case model.ToastProgress:
		return "↓"
	default:
		return "i"
	}
}

// TitleStyle returns the title style for a toast type.
func TitleStyle(t model.ToastType) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(TypeColor(t))
}

// BorderForType returns the bordered toast style accented for a type.
func BorderForType(t model.ToastType) lipgloss.Style {
	return ToastStyle.BorderForeground(TypeColor(t))
}
