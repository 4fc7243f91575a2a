package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/config"
)

// ------- minimal styling helpers (Lip Gloss) -------
type styles struct {
	name string

	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	errorMsg lipgloss.Style

	selected lipgloss.Style
	dragging lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	border   lipgloss.Color

	boxChecked   string
	boxUnchecked string
}

func newStyles(theme string) styles {
	if theme == config.ThemeDark {
		return styles{
			name:         config.ThemeDark,
			title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			success:      lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
			pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
			muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			errorMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
			dragging:     lipgloss.NewStyle().Bold(true).Reverse(true),
			done:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
			help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			border:       lipgloss.Color("240"),
			boxChecked:   "◼",
			boxUnchecked: "◻",
		}
	}
	return styles{
		name:         config.ThemeLight,
		title:        lipgloss.NewStyle().Bold(true),
		success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		muted:        lipgloss.NewStyle().Faint(true),
		errorMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		dragging:     lipgloss.NewStyle().Bold(true).Underline(true),
		done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:         lipgloss.NewStyle().Faint(true),
		border:       lipgloss.Color("8"),
		boxChecked:   "☑",
		boxUnchecked: "☐",
	}
}

func (s styles) panel(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.border).
		Padding(0, 1).
		Render(inner)
}
