package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	SetColorForcing(false, true)
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.True(t, strings.HasPrefix(ProgressBar(9, 3, 5), "█████ "), "overflow clamps the bar")
}

func TestPanel_PadsToWidestLine(t *testing.T) {
	out, _ := capture(t)
	SetTheme("light")

	Panel([]string{"ab", "[x] wide line", C(Current().Success, "x")})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "┌"+strings.Repeat("─", 15)+"┐", lines[0])
	assert.Equal(t, "│ ab"+strings.Repeat(" ", 11)+" │", lines[1])
	assert.Equal(t, "│ x"+strings.Repeat(" ", 12)+" │", lines[3])
	assert.Equal(t, "└"+strings.Repeat("─", 15)+"┘", lines[4])
}

func TestSetTheme(t *testing.T) {
	SetTheme("dark")
	assert.Equal(t, "dark", Current().Name)
	assert.Equal(t, "╭", Current().CornerTL)

	SetTheme("whatever")
	assert.Equal(t, "light", Current().Name)
}

func TestOKFail(t *testing.T) {
	out, errOut := capture(t)
	OK("added")
	Fail("nope")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ nope\n", errOut.String())
}
