package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending *color.Color
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
}

var current Theme

func init() { SetTheme("light") }

// SetTheme selects "light" or "dark"; anything else means light.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "dark":
		current = Theme{
			Name:    "dark",
			Title:   color.New(color.FgHiMagenta, color.Bold),
			Muted:   color.New(color.FgHiBlack),
			Accent:  color.New(color.FgHiCyan),
			Success: color.New(color.FgHiGreen),
			Error:   color.New(color.FgHiRed),
			Pending: color.New(color.FgHiYellow),

			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	default:
		current = Theme{
			Name:    "light",
			Title:   color.New(color.Bold),
			Muted:   color.New(color.FgHiBlack),
			Accent:  color.New(color.FgBlue),
			Success: color.New(color.FgGreen),
			Error:   color.New(color.FgRed),
			Pending: color.New(color.FgYellow),

			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
