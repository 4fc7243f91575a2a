package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

const emptyState = "No notes yet. Press a to add one."

func (m Model) View() string {
	s := m.styles
	notes := m.order()
	d, p := stats(notes)

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		s.title.Render("Notes"),
		s.success.Render("✔"), d,
		s.pending.Render("•"), p,
		s.accent.Render("Total"), len(notes),
	)
	lines := []string{header, s.muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	lines = append(lines, m.rows(notes)...)

	if m.mode != modeList {
		title := "Add note"
		if m.mode == modeImport {
			title = "Import notes (replaces all)"
		}
		if m.status != "" && m.statusErr {
			title += "  " + s.errorMsg.Render(m.status)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.border).Padding(0, 1)
		lines = append(lines, bar.Render(title+"\n"+m.input.View()))
	}

	lines = append(lines, "", m.statusLine(), s.help.Render(m.help.View(m.keys)))
	return s.panel(strings.Join(lines, "\n"))
}

// rows renders the visible window of the list, one note per row.
func (m Model) rows(notes []model.Note) []string {
	s := m.styles
	if len(notes) == 0 {
		return []string{s.muted.Render(emptyState)}
	}

	textWidth := max(m.width-8, 10) // border, padding, cursor, box
	end := min(m.offset+m.listHeight(), len(notes))
	var dragged string
	if m.drag != nil && m.drag.Active() {
		dragged = m.drag.Dragged()
	}

	out := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := notes[i]
		box := s.muted.Render(s.boxUnchecked)
		text := runewidth.Truncate(n.Text, textWidth, "…")
		if n.IsDone {
			box = s.success.Render(s.boxChecked)
			text = s.done.Render(text)
		}
		prefix := "  "
		switch {
		case n.ID == dragged:
			prefix = s.dragging.Render("≡ ")
			text = s.dragging.Render(text)
		case i == m.cursor:
			prefix = s.selected.Render("> ")
		}
		out = append(out, prefix+box+" "+text)
	}
	return out
}

func (m Model) statusLine() string {
	s := m.styles
	if m.status != "" && m.mode == modeList {
		if m.statusErr {
			return s.errorMsg.Render("✖ " + m.status)
		}
		return s.success.Render("✔ " + m.status)
	}
	used, limit := m.app.Usage()
	usage := humanize.Bytes(uint64(used))
	if limit > 0 {
		usage += " of " + humanize.Bytes(uint64(limit))
	}
	return s.muted.Render(usage + " · " + s.name + " theme")
}

func stats(notes []model.Note) (done, pending int) {
	for _, n := range notes {
		if n.IsDone {
			done++
		} else {
			pending++
		}
	}
	return
}
