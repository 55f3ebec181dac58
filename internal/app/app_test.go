package app

import (
	"testing"

	"github.com/agentic-research/locedit/internal/config"
	"github.com/agentic-research/locedit/internal/manifest"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/agentic-research/locedit/internal/writeback"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestApp(t *testing.T) (*App, billy.Filesystem, *notify.Recorder) {
	t.Helper()
	fs := memfs.New()
	files := map[string]string{
		"/loc/en/metadata.yaml":        "language: English\n",
		"/loc/en/characters.yaml":      "hero:\n  name: Ada\n",
		"/loc/en/ui.yaml":              "menu:\n  start: Start\n",
		"/loc/en/dialogues/intro.yaml": "lines:\n  - Hello\n",
		"/loc/ru/metadata.yaml":        "language: Russian\n",
		"/loc/ru/broken.yaml":          "a: b\nc: d: e\n",
	}
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Root = "/loc"
	a := New(cfg, fs, zaptest.NewLogger(t))
	rec := &notify.Recorder{}
	a.SetSinks(rec, rec)
	return a, fs, rec
}

func lastMessage(t *testing.T, rec *notify.Recorder) notify.Message {
	t.Helper()
	m, ok := rec.Last()
	require.True(t, ok, "expected a notification")
	return m
}

func TestOpenFolder(t *testing.T) {
	a, _, rec := newTestApp(t)

	res, vr := a.OpenFolder("/loc/en")
	assert.True(t, vr.Valid)
	assert.Equal(t, 4, res.Structure.FileCount())
	assert.Equal(t, "Structure loaded and validated from: en", lastMessage(t, rec).Text)

	_, vr = a.OpenFolder("/loc/ru")
	assert.False(t, vr.Valid)
	m := lastMessage(t, rec)
	assert.Equal(t, "Validation failed for ru: Missing required files in root: characters.yaml, ui.yaml", m.Text)
	assert.Equal(t, notify.Long, m.Duration)
}

func TestValidateFolder(t *testing.T) {
	a, _, rec := newTestApp(t)

	assert.True(t, a.ValidateFolder("/loc/en").Valid)
	assert.Equal(t, "Structure validation passed.", lastMessage(t, rec).Text)

	assert.False(t, a.ValidateFolder("/loc/ru").Valid)
	assert.Equal(t, notify.Error, lastMessage(t, rec).Severity)
}

func TestLanguagesAndAggregate(t *testing.T) {
	a, _, rec := newTestApp(t)

	langs := a.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "en", langs[0].Code)

	got := a.Aggregate()
	assert.Len(t, got, 1)
	assert.Contains(t, got, "en")
	assert.Equal(t, notify.Warning, lastMessage(t, rec).Severity)
}

func TestConfiguredRequiredFiles(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/loc/fr/strings.yaml", []byte("a: 1\n"), 0o644))
	cfg := config.Default()
	cfg.Root = "/loc"
	cfg.Layout.RequiredRootFiles = []string{"strings.yaml"}

	a := New(cfg, fs, nil)
	assert.Contains(t, a.Aggregate(), "fr")
}

func TestExportImportWorkbook(t *testing.T) {
	a, fs, rec := newTestApp(t)

	require.True(t, a.ExportWorkbook("/loc/en", "/exports/en.xlsx"))
	assert.Equal(t, "Exported 4/4 YAML files to Excel", lastMessage(t, rec).Text)

	require.True(t, a.ImportWorkbook("/exports/en.xlsx", "/loc/de"))
	assert.Equal(t, "Successfully imported 4/4 files from Excel", lastMessage(t, rec).Text)

	data, err := util.ReadFile(fs, "/loc/de/dialogues/intro.yaml")
	require.NoError(t, err)
	assert.Equal(t, "lines:\n  - Hello\n", string(data))

	assert.True(t, a.ValidateFolder("/loc/de").Valid)
}

func TestRegenerateManifest(t *testing.T) {
	a, fs, _ := newTestApp(t)
	require.True(t, a.RegenerateManifest())

	data, err := util.ReadFile(fs, "/loc/"+manifest.FileName)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Code": "en"`)
	assert.Contains(t, string(data), `"Code": "ru"`)

	a.Config.Root = ""
	assert.False(t, a.RegenerateManifest())
}

func TestCheckDocument(t *testing.T) {
	a, _, rec := newTestApp(t)

	assert.NoError(t, a.CheckDocument("ui.yaml", "a: 1\n"))
	_, notified := rec.Last()
	assert.False(t, notified)

	err := a.CheckDocument("ui.yaml", "a: b\nc: d: e\n")
	var ve *writeback.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, uint32(1), ve.Line)
	assert.Equal(t, "YAML Syntax Error in ui.yaml!", lastMessage(t, rec).Text)
}

func TestSaveDocument(t *testing.T) {
	a, fs, _ := newTestApp(t)

	require.NoError(t, a.SaveDocument("/loc/en/ui.yaml", "menu:\n    start:   Begin\n"))
	data, err := util.ReadFile(fs, "/loc/en/ui.yaml")
	require.NoError(t, err)
	assert.Equal(t, "menu:\n  start: Begin\n", string(data))

	assert.Error(t, a.SaveDocument("/loc/en/ui.yaml", "a: b\nc: d: e\n"))
	data, err = util.ReadFile(fs, "/loc/en/ui.yaml")
	require.NoError(t, err)
	assert.Equal(t, "menu:\n  start: Begin\n", string(data), "invalid text must not be written")
}

func TestCheckFolder(t *testing.T) {
	a, _, _ := newTestApp(t)

	n, problems := a.CheckFolder("/loc/ru")
	assert.Equal(t, 2, n)
	require.Len(t, problems, 1)
	assert.Equal(t, "broken.yaml", problems[0].File)
	assert.Equal(t, uint32(1), problems[0].Problems[0].Line)

	n, problems = a.CheckFolder("/loc/en")
	assert.Equal(t, 4, n)
	assert.Empty(t, problems)
}

func TestGet(t *testing.T) {
	a, _, _ := newTestApp(t)

	got, err := a.Get("/loc/en/characters.yaml", "hero.name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Ada"}, got)

	_, err = a.Get("/loc/ru/broken.yaml", "a")
	assert.Error(t, err)

	_, err = a.Get("/loc/missing.yaml", "a")
	assert.Error(t, err)
}
