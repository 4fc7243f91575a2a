package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/registry"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/transfer"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group  bool // plain list grouped by pending/done
	Plain  bool // print the list instead of starting the TUI
	Config *config.Config
	Logger *slog.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return withApp(opt, func(ap *app.App) int { return doList(ap, opt) })

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: notes add <text...>")
			return 2
		}
		return withApp(opt, func(ap *app.App) int { return doAdd(ap, strings.Join(a, " ")) })

	case "done":
		n, code := oneIndex("done", a)
		if code != 0 {
			return code
		}
		return withApp(opt, func(ap *app.App) int { return doToggle(ap, n) })

	case "rm":
		n, code := oneIndex("rm", a)
		if code != 0 {
			return code
		}
		return withApp(opt, func(ap *app.App) int { return doRemove(ap, n) })

	case "mv":
		if len(a) != 2 {
			ui.Fail("usage: notes mv <from> <to>")
			return 2
		}
		from, err1 := strconv.Atoi(a[0])
		to, err2 := strconv.Atoi(a[1])
		if err1 != nil || err2 != nil {
			ui.Fail("mv: not a number: " + strings.Join(a, " "))
			return 2
		}
		return withApp(opt, func(ap *app.App) int { return doMove(ap, from, to) })

	case "export":
		if len(a) > 1 {
			ui.Fail("usage: notes export [dir|-]")
			return 2
		}
		dir := ""
		if len(a) == 1 {
			dir = a[0]
		}
		return withApp(opt, func(ap *app.App) int { return doExport(ap, dir) })

	case "import":
		if len(a) != 1 {
			ui.Fail("usage: notes import <file>")
			return 2
		}
		return withApp(opt, func(ap *app.App) int { return doImport(ap, a[0]) })

	case "theme":
		if len(a) > 1 {
			ui.Fail("usage: notes theme [light|dark]")
			return 2
		}
		return withApp(opt, func(ap *app.App) int { return doTheme(ap, a) })

	case "info":
		return withApp(opt, doInfo)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout, `notes - a tiny note list

Usage:
  notes [flags] <subcommand> [args]

Subcommands:
  add <text...>      Add a new note (text can be multiple words)
  ls                 List notes (interactive TUI; -plain prints instead)
  done <index>       Toggle done for note at 1-based index
  rm <index>         Remove note at 1-based index
  mv <from> <to>     Move note at index <from> to index <to>
  export [dir|-]     Write notes-backup.json (to stdout with -)
  import <file>      Replace all notes with a backup file
  theme [light|dark] Show or set the theme
  info               Show storage location and usage

Examples:
  notes add "Buy milk"
  notes ls
  notes done 2
  notes mv 3 1
  notes export ~/backups
`)
}

func oneIndex(cmd string, a []string) (int, int) {
	if len(a) != 1 {
		ui.Fail(fmt.Sprintf("usage: notes %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

func withApp(opt Options, fn func(*app.App) int) int {
	ap, err := app.Open(opt.Config, opt.Logger)
	if err != nil {
		ui.Fail("open: " + err.Error())
		return 1
	}
	defer ap.Close()
	ui.SetTheme(ap.Theme())
	return fn(ap)
}

// -------------- subcommand impls ----------------

func doList(ap *app.App, opt Options) int {
	if !opt.Plain {
		if err := tui.Run(ap); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	}

	notes := ap.Registry().Notes()
	t := ui.Current()
	d, p := stats(notes)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Notes"),
		ui.C(t.Success, "✔"), d,
		ui.C(t.Pending, "•"), p,
		ui.C(t.Accent, "Total"), len(notes),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(notes)...)
	} else {
		lines = append(lines, flatLines(notes)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `notes add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(ap *app.App, text string) int {
	if _, err := ap.Registry().Add(text); err != nil {
		if errors.Is(err, registry.ErrEmptyText) {
			ui.Fail("add: empty text")
			return 2
		}
		return failSave(err)
	}
	ui.OK("added")
	return 0
}

func doToggle(ap *app.App, userIndex int) int {
	id, code := idAt(ap, userIndex)
	if code != 0 {
		return code
	}
	if _, err := ap.Registry().Toggle(id); err != nil {
		return failSave(err)
	}
	ui.OK("toggled")
	return 0
}

func doRemove(ap *app.App, userIndex int) int {
	id, code := idAt(ap, userIndex)
	if code != 0 {
		return code
	}
	if err := ap.Registry().Remove(id); err != nil {
		return failSave(err)
	}
	if ap.Registry().Empty() {
		ui.OK("removed; no notes left")
		return 0
	}
	ui.OK("removed")
	return 0
}

func doMove(ap *app.App, from, to int) int {
	id, code := idAt(ap, from)
	if code != 0 {
		return code
	}
	if _, code := idAt(ap, to); code != 0 {
		return code
	}
	ids := ap.Registry().IDs()
	ids = slices.Delete(ids, from-1, from)
	ids = slices.Insert(ids, to-1, id)
	if err := ap.Registry().Reorder(ids); err != nil {
		return failSave(err)
	}
	ui.OK("moved")
	return 0
}

func doExport(ap *app.App, dir string) int {
	if dir == "-" {
		if err := ap.ExportTo(ui.Stdout); err != nil {
			return failExport(err)
		}
		return 0
	}
	path, err := ap.Export(dir)
	if err != nil {
		return failExport(err)
	}
	ui.OK("exported to " + path)
	return 0
}

func failExport(err error) int {
	if errors.Is(err, transfer.ErrNothingToExport) {
		ui.Fail("No notes to export!")
		return 1
	}
	ui.Fail("export: " + err.Error())
	return 1
}

func doImport(ap *app.App, path string) int {
	if err := ap.Import(path); err != nil {
		switch {
		case errors.Is(err, model.ErrNotArray), errors.Is(err, model.ErrInvalidDocument),
			errors.Is(err, model.ErrInvalidRecord), errors.Is(err, model.ErrDuplicateID):
			ui.Fail("Error importing notes. Please check the file format.")
			ui.Hint(err.Error())
			return 1
		}
		return failSave(err)
	}
	ui.OK(fmt.Sprintf("imported %d notes", ap.Registry().Len()))
	return 0
}

func doTheme(ap *app.App, a []string) int {
	if len(a) == 0 {
		fmt.Fprintln(ui.Stdout, ap.Theme())
		return 0
	}
	if err := ap.SetTheme(a[0]); err != nil {
		ui.Fail("theme: " + err.Error())
		return 2
	}
	ui.SetTheme(a[0])
	ui.OK("theme set to " + a[0])
	return 0
}

func doInfo(ap *app.App) int {
	used, limit := ap.Usage()
	cfg := ap.Config()
	fmt.Fprintf(ui.Stdout, "backend: %s\n", cfg.Storage.Backend)
	fmt.Fprintf(ui.Stdout, "store:   %s\n", ap.StorePath())
	fmt.Fprintf(ui.Stdout, "notes:   %d\n", ap.Registry().Len())
	if limit > 0 {
		fmt.Fprintf(ui.Stdout, "usage:   %s of %s\n", humanize.Bytes(uint64(used)), humanize.Bytes(uint64(limit)))
	} else {
		fmt.Fprintf(ui.Stdout, "usage:   %s\n", humanize.Bytes(uint64(used)))
	}
	fmt.Fprintf(ui.Stdout, "theme:   %s\n", ap.Theme())
	return 0
}

// idAt resolves a 1-based index to a note id.
func idAt(ap *app.App, userIndex int) (string, int) {
	ids := ap.Registry().IDs()
	if userIndex < 1 || userIndex > len(ids) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(ids), userIndex))
		ui.Hint("Hint: run `notes -plain ls` to see valid indexes")
		return "", 2
	}
	return ids[userIndex-1], 0
}

func failSave(err error) int {
	if errors.Is(err, store.ErrQuotaExceeded) {
		ui.Fail("storage full: " + err.Error())
		return 1
	}
	ui.Fail("save: " + err.Error())
	return 1
}

// -------------- rendering helpers --------------

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

func flatLines(notes []model.Note) []string {
	t := ui.Current()
	if len(notes) == 0 {
		return []string{ui.C(t.Muted, "No notes yet. Add one to get started!")}
	}
	out := make([]string, 0, len(notes))
	for i, n := range notes {
		out = append(out, noteLine(i+1, n))
	}
	return out
}

// noteLine renders one row; pos is the 1-based index that done/rm/mv accept.
func noteLine(pos int, n model.Note) string {
	t := ui.Current()
	idx := fmt.Sprintf("%2d.", pos)
	box, c := t.BoxUnchecked, t.Muted
	if n.IsDone {
		box, c = t.BoxChecked, t.Success
	}
	text := runewidth.Truncate(n.Text, 80, "...")
	return fmt.Sprintf("%s %s %s", ui.C(t.Muted, idx), ui.C(c, box), text)
}

// groupLines splits pending from done but keeps each note's list position.
func groupLines(notes []model.Note) []string {
	t := ui.Current()
	var pend, done []string
	for i, n := range notes {
		if n.IsDone {
			done = append(done, noteLine(i+1, n))
		} else {
			pend = append(pend, noteLine(i+1, n))
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, pend...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, done...)
	}
	return lines
}
