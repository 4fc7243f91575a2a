package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	symCheck = "✔"
	symCross = "✖"
)

// Stdout and Stderr receive all plain output; tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		color.NoColor = true
	case force:
		color.NoColor = false
	}
}

// C paints s with c unless colour is off.
func C(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func OK(msg string)   { fmt.Fprintln(Stdout, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, C(current.Error, symCross+" "+msg)) }

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) { fmt.Fprintln(Stderr, C(current.Muted, msg)) }
