package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/registry"
	"github.com/idilsaglam/tada/internal/reorder"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/transfer"
)

// listTop is the screen row of the first note: border, header, progress bar, blank line.
const listTop = 4

type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeImport
)

// Model is the interactive note list.
type Model struct {
	app    *app.App
	keys   keyMap
	help   help.Model
	input  textinput.Model
	mode   inputMode
	styles styles
	logger *slog.Logger

	cursor int
	offset int // index of the first visible note
	width  int
	height int

	drag *reorder.Session

	status    string
	statusErr bool

	watcher *fsnotify.Watcher
	copy    func(string) error
}

func newModel(ap *app.App) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500

	return Model{
		app:    ap,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ti,
		styles: newStyles(ap.Theme()),
		logger: slog.Default().With("component", "tui"),
		width:  80,
		height: 24,
		copy:   clipboard.WriteAll,
	}
}

// Run starts the full-screen list and blocks until the user quits.
// Every change is persisted as it happens, so there is nothing to save on exit.
func Run(ap *app.App) error {
	m := newModel(ap)

	w, err := watchStore(ap.StorePath())
	if err != nil {
		m.logger.Warn("store watch disabled", "err", err)
	} else {
		m.watcher = w
		defer w.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.watcher, m.app.StorePath())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clamp()
		return m, nil

	case storeChangedMsg:
		// An in-flight drag owns the order until release.
		if m.drag == nil {
			m.app.Reload()
			m.clamp()
		}
		return m, waitForChange(m.watcher, m.app.StorePath())

	case watchErrMsg:
		m.logger.Warn("store watch", "err", msg.err)
		return m, waitForChange(m.watcher, m.app.StorePath())

	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}

	if m.mode != modeList {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return m.updateKey(k)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			value := m.input.Value()
			switch m.mode {
			case modeAdd:
				if _, err := m.app.Registry().Add(value); err != nil {
					if errors.Is(err, registry.ErrEmptyText) {
						m.setError("Note text cannot be empty")
						return m, nil
					}
					m.setError(saveMessage(err))
					return m, nil
				}
				m.cursor = m.app.Registry().Len() - 1
				m.setStatus("added")
			case modeImport:
				path := strings.TrimSpace(value)
				if path == "" {
					m.closeInput()
					return m, nil
				}
				if err := m.app.Import(path); err != nil {
					m.setError(importMessage(err))
				} else {
					m.cursor = 0
					m.setStatus(fmt.Sprintf("imported %d notes", m.app.Registry().Len()))
				}
			}
			m.closeInput()
			m.clamp()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	reg := m.app.Registry()

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(k, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(k, m.keys.Down):
		if m.cursor < reg.Len()-1 {
			m.cursor++
		}

	case key.Matches(k, m.keys.Toggle):
		if n, ok := m.current(); ok {
			if _, err := reg.Toggle(n.ID); err != nil {
				m.setError(saveMessage(err))
			}
		}

	case key.Matches(k, m.keys.Delete):
		if n, ok := m.current(); ok {
			if err := reg.Remove(n.ID); err != nil {
				m.setError(saveMessage(err))
			} else {
				m.setStatus("removed")
			}
		}

	case key.Matches(k, m.keys.MoveUp):
		ids := reg.IDs()
		if m.cursor > 0 && m.cursor < len(ids) {
			if err := reg.Move(ids[m.cursor], ids[m.cursor-1]); err != nil {
				m.setError(saveMessage(err))
			} else {
				m.cursor--
			}
		}

	case key.Matches(k, m.keys.MoveDown):
		ids := reg.IDs()
		if m.cursor < len(ids)-1 {
			before := ""
			if m.cursor+2 < len(ids) {
				before = ids[m.cursor+2]
			}
			if err := reg.Move(ids[m.cursor], before); err != nil {
				m.setError(saveMessage(err))
			} else {
				m.cursor++
			}
		}

	case key.Matches(k, m.keys.Add):
		m.openInput(modeAdd, "New note...")
		return m, textinput.Blink

	case key.Matches(k, m.keys.Import):
		m.openInput(modeImport, "Path to backup file...")
		return m, textinput.Blink

	case key.Matches(k, m.keys.Export):
		path, err := m.app.Export("")
		switch {
		case errors.Is(err, transfer.ErrNothingToExport):
			m.setError("No notes to export!")
		case err != nil:
			m.setError("export: " + err.Error())
		default:
			m.setStatus("exported to " + path)
		}

	case key.Matches(k, m.keys.Theme):
		name, err := m.app.ToggleTheme()
		if err != nil {
			m.setError("theme: " + err.Error())
		}
		m.styles = newStyles(name)

	case key.Matches(k, m.keys.Copy):
		if n, ok := m.current(); ok {
			if err := m.copy(n.Text); err != nil {
				m.setError("copy: " + err.Error())
			} else {
				m.setStatus("copied")
			}
		}

	case key.Matches(k, m.keys.Reload):
		m.app.Reload()
		m.setStatus("reloaded")
	}

	m.clamp()
	return m, nil
}

// updateMouse drives a reorder session: press on a row grabs it, motion
// reorders live, release commits the final order once.
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	reg := m.app.Registry()
	layout := m.layout()
	x, y := float64(msg.X), float64(msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if m.cursor < reg.Len()-1 {
			m.cursor++
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.mode != modeList {
			return m
		}
		ids := reg.IDs()
		i := layout.RowAt(y, len(ids))
		if i < 0 {
			return m
		}
		m.cursor = i
		m.drag = reorder.Start(m.app.DragMode(), ids, ids[i], x, y, m.app.TouchThreshold())

	case msg.Action == tea.MouseActionMotion && m.drag != nil:
		if m.drag.Move(x, y, layout) {
			m.cursor = indexOf(m.drag.Order(), m.drag.Dragged())
		}

	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		dragged := m.drag.Dragged()
		order, changed := m.drag.Finish()
		m.drag = nil
		if changed {
			if err := reg.Reorder(order); err != nil {
				m.setError(saveMessage(err))
			} else {
				m.setStatus("moved")
			}
		}
		m.cursor = max(0, indexOf(reg.IDs(), dragged))
	}

	m.clamp()
	return m
}

// layout maps visible rows to reorder boxes.
func (m Model) layout() reorder.RowLayout {
	return reorder.RowLayout{Top: listTop, RowHeight: 1, Offset: m.offset}
}

// order is what the list shows: the live drag order while dragging.
func (m Model) order() []model.Note {
	reg := m.app.Registry()
	if m.drag == nil {
		return reg.Notes()
	}
	ids := m.drag.Order()
	notes := make([]model.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := reg.Get(id); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

func (m Model) current() (model.Note, bool) {
	notes := m.app.Registry().Notes()
	if m.cursor < 0 || m.cursor >= len(notes) {
		return model.Note{}, false
	}
	return notes[m.cursor], true
}

func (m *Model) openInput(mode inputMode, placeholder string) {
	m.mode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.status = ""
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

// listHeight is how many note rows fit on screen.
func (m Model) listHeight() int {
	h := m.height - listTop - 4 // blank, status, help, bottom border
	if m.mode != modeList {
		h -= 4
	}
	if m.help.ShowAll {
		h -= 3
	}
	return max(h, 1)
}

// clamp keeps the cursor on a note and the cursor row on screen.
func (m *Model) clamp() {
	n := m.app.Registry().Len()
	if m.drag != nil {
		n = len(m.drag.Order())
	}
	m.cursor = min(m.cursor, n-1)
	m.cursor = max(m.cursor, 0)

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(min(m.offset, n-h), 0)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func saveMessage(err error) string {
	if errors.Is(err, store.ErrQuotaExceeded) {
		return "Storage is full: " + err.Error()
	}
	return "save: " + err.Error()
}

func importMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNotArray), errors.Is(err, model.ErrInvalidDocument),
		errors.Is(err, model.ErrInvalidRecord), errors.Is(err, model.ErrDuplicateID):
		return "Error importing notes. Please check the file format."
	case errors.Is(err, store.ErrQuotaExceeded):
		return saveMessage(err)
	}
	return "import: " + err.Error()
}
