package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NeverVane/pickline/internal/config"
	"github.com/NeverVane/pickline/internal/menu"
)

func newTestFormatter() (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewFormatter(config.DefaultConfig(), &out, &errOut), &out, &errOut
}

func TestFormatter_NoColorOnPipes(t *testing.T) {
	f, _, _ := newTestFormatter()
	assert.False(t, f.colors.IsEnabled())
	assert.False(t, f.errColors.IsEnabled())
}

func TestFormatter_StatusGoesToErrOut(t *testing.T) {
	f, out, errOut := newTestFormatter()
	f.Success("recorded %d entries", 3)
	f.Warning("careful")
	f.Error("broken: %s", "pipe")

	assert.Empty(t, out.String())
	assert.Equal(t, "[OK] recorded 3 entries\n[WARN] careful\n[FAIL] broken: pipe\n", errOut.String())
}

func TestFormatter_Quiet(t *testing.T) {
	f, _, errOut := newTestFormatter()
	f.SetFlags(false, true, false)
	f.Success("hidden")
	f.Info("hidden")
	f.Error("shown")
	assert.Equal(t, "[FAIL] shown\n", errOut.String())
}

func TestFormatter_Verbose(t *testing.T) {
	f, _, errOut := newTestFormatter()
	f.Verbose("hidden")
	assert.Empty(t, errOut.String())

	f.SetFlags(true, false, false)
	f.Verbose("shown")
	assert.Equal(t, "[INFO] shown\n", errOut.String())
}

func TestFormatter_Items(t *testing.T) {
	f, out, _ := newTestFormatter()
	f.Item("foo", menu.TierExact, false)
	f.Item("foobar", menu.TierPrefix, true)
	f.Numbered(2, "entry")
	f.Line("plain")

	assert.Equal(t, "foo\nprefix   \tfoobar\n  2 entry\nplain\n", out.String())
}

func TestColorFormatter_Section(t *testing.T) {
	var buf bytes.Buffer
	cf := NewColorFormatter(&buf, config.DefaultAppearance())
	assert.Equal(t, "History\n=======", cf.Section("History"))
}

func TestTerminalHelpers(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	w, h := TerminalSize(&buf, 80, 24)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}
