package manifest

import (
	"errors"
	"os"
	"testing"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/notify"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localizationRoot(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for _, d := range []string{"/loc/en", "/loc/ru", "/loc/es"} {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	require.NoError(t, util.WriteFile(fs, "/loc/readme.txt", []byte("x"), 0o644))
	return fs
}

func TestEmit(t *testing.T) {
	fs := localizationRoot(t)
	e := NewEmitter(fs)
	rec := &notify.Recorder{}
	e.Notifier = rec

	require.True(t, e.Emit("/loc"))

	got, err := util.ReadFile(fs, "/loc/"+FileName)
	require.NoError(t, err)
	assert.Equal(t, `{
    "Languages": [
        {
            "Code": "en"
        },
        {
            "Code": "es"
        },
        {
            "Code": "ru"
        }
    ]
}`, string(got))

	msg, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Language manifest generated successfully in: loc", msg.Text)
	assert.Equal(t, notify.Success, msg.Severity)
}

func TestEmit_RegenerateIgnoresOwnFile(t *testing.T) {
	fs := localizationRoot(t)
	e := NewEmitter(fs)
	require.True(t, e.Emit("/loc"))
	first, err := util.ReadFile(fs, "/loc/"+FileName)
	require.NoError(t, err)

	require.True(t, e.Emit("/loc"))
	second, err := util.ReadFile(fs, "/loc/"+FileName)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmit_NotADirectory(t *testing.T) {
	fs := localizationRoot(t)
	e := NewEmitter(fs)
	rec := &notify.Recorder{}
	e.Notifier = rec

	assert.False(t, e.Emit("/loc/readme.txt"))
	assert.False(t, e.Emit("/missing"))
	assert.False(t, e.Emit(""))
	for _, m := range rec.Messages() {
		assert.Equal(t, "Cannot generate language manifest: No root localization path selected.", m.Text)
		assert.Equal(t, notify.Error, m.Severity)
	}
	assert.Len(t, rec.Messages(), 3)
}

type failingFS struct {
	billy.Filesystem
}

func (failingFS) TempFile(string, string) (billy.File, error) {
	return nil, &os.PathError{Op: "open", Path: "tmp", Err: os.ErrPermission}
}

func TestEmit_WriteFailure(t *testing.T) {
	e := NewEmitter(failingFS{localizationRoot(t)})
	rec := &notify.Recorder{}
	e.Notifier = rec

	assert.False(t, e.Emit("/loc"))
	msg, _ := rec.Last()
	assert.Equal(t, "Failed to generate language manifest in: loc", msg.Text)
}

func TestBuild_EmptyRoot(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/loc", 0o755))
	m, err := NewEmitter(fs).Build("/loc")
	require.NoError(t, err)
	assert.NotNil(t, m.Languages)

	data, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"Languages\": []\n}", string(data))
}

func TestBuild_MissingRoot(t *testing.T) {
	_, err := NewEmitter(memfs.New()).Build("/nope")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMarshal_Unescaped(t *testing.T) {
	data, err := Marshal(&api.LanguageManifest{Languages: []api.LanguageEntry{{Code: "中文"}, {Code: "a<b>&"}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Code": "中文"`)
	assert.Contains(t, string(data), `"Code": "a<b>&"`)
}
