package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()
	cfg.Export.Dir = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

func openApp(t *testing.T, cfg *config.Config, texts ...string) *app.App {
	t.Helper()
	ap, err := app.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ap.Close() })
	for _, txt := range texts {
		_, err := ap.Registry().Add(txt)
		require.NoError(t, err)
	}
	return ap
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func texts(ap *app.App) []string {
	var out []string
	for _, n := range ap.Registry().Notes() {
		out = append(out, n.Text)
	}
	return out
}

func newTestModel(ap *app.App) Model {
	m := newModel(ap)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func TestEmptyStateShownAfterDeletingLastNote(t *testing.T) {
	ap := openApp(t, testConfig(t), "only")
	m := newTestModel(ap)
	assert.NotContains(t, m.View(), emptyState)

	m = send(t, m, runes("d"))

	assert.True(t, ap.Registry().Empty())
	assert.Contains(t, m.View(), emptyState)
}

func TestAddThroughInput(t *testing.T) {
	ap := openApp(t, testConfig(t))
	m := newTestModel(ap)

	m = send(t, m, runes("a"), runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeAdd, m.mode, "input stays open on empty text")
	assert.True(t, m.statusErr)
	assert.True(t, ap.Registry().Empty())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("a"), runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, []string{"Buy milk"}, texts(ap))
	assert.Contains(t, m.View(), "Buy milk")
}

func TestToggleAndKeyboardMove(t *testing.T) {
	ap := openApp(t, testConfig(t), "A", "B", "C")
	m := newTestModel(ap)

	m = send(t, m, runes(" "))
	assert.True(t, ap.Registry().Notes()[0].IsDone)

	m = send(t, m, runes("J"))
	assert.Equal(t, []string{"B", "A", "C"}, texts(ap))
	assert.Equal(t, 1, m.cursor)

	m = send(t, m, runes("J"))
	assert.Equal(t, []string{"B", "C", "A"}, texts(ap))

	m = send(t, m, runes("K"), runes("K"))
	assert.Equal(t, []string{"A", "B", "C"}, texts(ap))
	assert.Equal(t, 0, m.cursor)
}

func TestPointerDragReordersAndPersists(t *testing.T) {
	cfg := testConfig(t)
	ap := openApp(t, cfg, "A", "B", "C")
	m := newTestModel(ap)

	// A sits on row listTop; below every other midpoint means "end".
	m = send(t, m, press(10, listTop), motion(10, listTop+1))
	require.NotNil(t, m.drag)
	assert.Equal(t, []string{"A", "B", "C"}, texts(ap), "nothing committed mid-drag")

	m = send(t, m, motion(10, listTop+3))
	assert.Equal(t, 2, m.cursor)

	m = send(t, m, release(10, listTop+3))
	assert.Nil(t, m.drag)
	assert.Equal(t, []string{"B", "C", "A"}, texts(ap))

	reopened := openApp(t, cfg)
	assert.Equal(t, []string{"B", "C", "A"}, texts(reopened))
}

func TestPressOutsideListStartsNothing(t *testing.T) {
	ap := openApp(t, testConfig(t), "A", "B")
	m := newTestModel(ap)

	m = send(t, m, press(10, 1), release(10, 1))
	assert.Nil(t, m.drag)

	m = send(t, m, press(10, listTop+5))
	assert.Nil(t, m.drag)
}

func TestTouchDragNeedsThreshold(t *testing.T) {
	cfg := testConfig(t)
	cfg.Drag.Mode = config.DragTouch
	ap := openApp(t, cfg, "A", "B", "C")
	m := newTestModel(ap)

	m = send(t, m, press(10, listTop), motion(10, listTop+3), release(10, listTop+3))
	assert.Equal(t, []string{"A", "B", "C"}, texts(ap), "short touch is a tap")

	m = send(t, m, press(10, listTop), motion(10, listTop+11), release(10, listTop+11))
	assert.Equal(t, []string{"B", "C", "A"}, texts(ap))
	assert.Nil(t, m.drag)
}

func TestExportWithNoNotes(t *testing.T) {
	ap := openApp(t, testConfig(t))
	m := newTestModel(ap)

	m = send(t, m, runes("e"))
	assert.True(t, m.statusErr)
	assert.Equal(t, "No notes to export!", m.status)
}

func TestThemeToggle(t *testing.T) {
	ap := openApp(t, testConfig(t), "A")
	m := newTestModel(ap)
	require.Equal(t, config.ThemeLight, m.styles.name)

	m = send(t, m, runes("t"))
	assert.Equal(t, config.ThemeDark, m.styles.name)
	assert.Equal(t, config.ThemeDark, ap.Theme())
}

func TestCopyCurrentNote(t *testing.T) {
	ap := openApp(t, testConfig(t), "A", "B")
	m := newTestModel(ap)
	var copied string
	m.copy = func(s string) error { copied = s; return nil }

	send(t, m, runes("j"), runes("y"))
	assert.Equal(t, "B", copied)
}

func TestImportRejectsBadFile(t *testing.T) {
	ap := openApp(t, testConfig(t), "keep")
	m := newTestModel(ap)

	m = send(t, m, runes("i"), runes("/does/not/exist.json"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusErr)
	assert.Equal(t, []string{"keep"}, texts(ap))
}

func TestStoreChangeReloads(t *testing.T) {
	cfg := testConfig(t)
	ap := openApp(t, cfg, "A")
	m := newTestModel(ap)

	other := openApp(t, cfg)
	_, err := other.Registry().Add("B")
	require.NoError(t, err)

	next, _ := m.Update(storeChangedMsg{})
	m = next.(Model)
	assert.Equal(t, []string{"A", "B"}, texts(ap))
	assert.Contains(t, m.View(), "B")
}
