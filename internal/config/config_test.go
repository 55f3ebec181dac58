package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"metadata.yaml", "characters.yaml", "ui.yaml"}, cfg.Layout.RequiredRootFiles)
	assert.Equal(t, 64, cfg.Layout.MaxDepth)
	assert.Contains(t, cfg.Workbook.LikelySubdirs, "dialogues")
	assert.Equal(t, []string{"metadata", "characters", "ui", "terms"}, cfg.Workbook.StandardNames)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: /data/localization
layout:
  required_root_files: [metadata.yaml, characters.yaml, ui.yaml, terms.yaml]
  max_depth: 8
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/localization", cfg.Root)
	assert.Equal(t, []string{"metadata.yaml", "characters.yaml", "ui.yaml", "terms.yaml"}, cfg.Layout.RequiredRootFiles)
	assert.Equal(t, 8, cfg.Layout.MaxDepth)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Contains(t, cfg.Workbook.LikelySubdirs, "quests")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  max_depth: 8\n"), 0o644))
	t.Setenv("LOCEDIT_LAYOUT_MAX_DEPTH", "3")
	t.Setenv("LOCEDIT_ROOT", "/env/root")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Layout.MaxDepth)
	assert.Equal(t, "/env/root", cfg.Root)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Layout.MaxDepth = 0
	assert.ErrorContains(t, cfg.Validate(), "max_depth")

	cfg = Default()
	cfg.Layout.RequiredRootFiles = nil
	assert.ErrorContains(t, cfg.Validate(), "required_root_files")

	cfg = Default()
	cfg.Layout.RequiredRootFiles = []string{"sub/ui.yaml"}
	assert.ErrorContains(t, cfg.Validate(), "invalid file name")

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log.format")

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "log.level")
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
	assert.True(t, l.Core().Enabled(1))

	_, err = NewLogger(LogConfig{Level: "nope", Format: "console"})
	assert.Error(t, err)
}
