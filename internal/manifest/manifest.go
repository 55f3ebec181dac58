// Package manifest writes language_manifest.json, the list of language
// folders the game offers at startup.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/layout"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/agentic-research/locedit/internal/writeback"
	billy "github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// FileName is written directly inside the localization root.
const FileName = "language_manifest.json"

// Emitter builds and writes the manifest for a localization root.
type Emitter struct {
	FS       billy.Filesystem
	Scanner  *layout.Scanner
	Log      *zap.Logger
	Notifier notify.Notifier
}

// NewEmitter returns an emitter writing to fs with a default scanner.
func NewEmitter(fs billy.Filesystem) *Emitter {
	return &Emitter{
		FS:       fs,
		Scanner:  layout.NewScanner(fs),
		Log:      zap.NewNop(),
		Notifier: notify.Nop{},
	}
}

// Build lists every immediate subdirectory of root, in listing order, as a
// language. No name filtering is applied.
func (e *Emitter) Build(root string) (*api.LanguageManifest, error) {
	dirs, err := e.Scanner.Subdirs(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	m := &api.LanguageManifest{Languages: make([]api.LanguageEntry, 0, len(dirs))}
	for _, d := range dirs {
		m.Languages = append(m.Languages, api.LanguageEntry{Code: d})
	}
	return m, nil
}

// Marshal renders m with 4-space indentation, leaving non-ASCII and HTML
// characters unescaped and no trailing newline.
func Marshal(m *api.LanguageManifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Emit writes <root>/language_manifest.json and notifies the outcome.
// It returns false when root is not a directory or the write fails.
func (e *Emitter) Emit(root string) bool {
	if root == "" || !e.isDir(root) {
		e.Log.Warn("manifest root missing", zap.String("root", root))
		e.Notifier.Notify("Cannot generate language manifest: No root localization path selected.",
			notify.Error, notify.Long)
		return false
	}

	target := e.FS.Join(root, FileName)
	if err := e.write(root, target); err != nil {
		e.Log.Error("generate manifest", zap.String("path", target), zap.Error(err))
		e.Notifier.Notify("Failed to generate language manifest in: "+path.Base(root), notify.Error, notify.Long)
		return false
	}
	e.Notifier.Notify("Language manifest generated successfully in: "+path.Base(root), notify.Success, notify.Short)
	return true
}

func (e *Emitter) write(root, target string) error {
	m, err := e.Build(root)
	if err != nil {
		return err
	}
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := writeback.Save(e.FS, target, data); err != nil {
		return err
	}
	e.Log.Info("manifest generated",
		zap.String("path", target),
		zap.Int("languages", len(m.Languages)))
	return nil
}

func (e *Emitter) isDir(p string) bool {
	fi, err := e.FS.Stat(p)
	return err == nil && fi.IsDir()
}
