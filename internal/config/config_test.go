package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Menu.MaxTokens)
	assert.Equal(t, 20, cfg.History.Capacity)
	assert.True(t, cfg.Menu.Tokenize)
	assert.True(t, cfg.Menu.Topbar)
	assert.False(t, cfg.Sentry.Enabled)
	assert.Equal(t, "#00FF00", cfg.Appearance.SelectedBG)
	assert.Equal(t, filepath.Join(cfg.DataDir, "pickline.log"), cfg.Logging.Output)
}

func TestLoad_PartialFile(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[menu]
case_insensitive = true
vertical = true
lines = 12
prompt = "run:"

[history]
path = "/tmp/pickline-hist"

[appearance]
selected_bg = "blue"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Menu.CaseInsensitive)
	assert.True(t, cfg.Menu.Vertical)
	assert.Equal(t, 12, cfg.Menu.Lines)
	assert.Equal(t, "run:", cfg.Menu.Prompt)
	assert.Equal(t, "/tmp/pickline-hist", cfg.History.Path)
	assert.Equal(t, 20, cfg.History.Capacity, "unset values keep their defaults")
	assert.Equal(t, "blue", cfg.Appearance.SelectedBG)
	assert.Equal(t, "#000000", cfg.Appearance.NormalBG)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"bad toml", "[menu\nlines = ", "failed to parse config file"},
		{"negative lines", "[menu]\nlines = -1", "menu.lines must be non-negative"},
		{"bad color", "[appearance]\nlast_bg = \"#12\"", "appearance.last_bg"},
		{"sentry without dsn", "[sentry]\nenabled = true", "sentry.dsn is required"},
		{"bad level", "[logging]\nlevel = \"chatty\"", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_DataDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "pickline.log"), cfg.Logging.Output)

	t.Setenv(DataDirEnv, "relative/dir")
	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "must be an absolute path")
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Menu.MarkLast = true
	cfg.Menu.ItemSpacing = 4
	cfg.History.Capacity = 50
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Menu.MarkLast)
	assert.Equal(t, 4, loaded.Menu.ItemSpacing)
	assert.Equal(t, 50, loaded.History.Capacity)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.History.Path = filepath.Join(root, "hist", "recent")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.DataDir)
	assert.DirExists(t, filepath.Join(root, "hist"))
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"green", "#00FF00", true},
		{"Cyan", "#00FFFF", true},
		{"#abc", "#ABC", true},
		{"#00ff88", "#00FF88", true},
		{"#00ff8", "", false},
		{"00ff88", "", false},
		{"#zzzzzz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
