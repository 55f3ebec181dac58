// Package app holds the application context: configuration, filesystem,
// logger, notification sinks and the components built from them. It is
// created once at startup and exposes the operations an editor front end
// calls.
package app

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/config"
	"github.com/agentic-research/locedit/internal/layout"
	"github.com/agentic-research/locedit/internal/manifest"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/agentic-research/locedit/internal/workbook"
	"github.com/agentic-research/locedit/internal/writeback"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// App is the application context shared by every front-end operation.
type App struct {
	Config   *config.Config
	FS       billy.Filesystem
	Log      *zap.Logger
	Notifier notify.Notifier
	Progress notify.Progress

	Scanner    *layout.Scanner
	Validator  *layout.Validator
	Aggregator *layout.Aggregator
	Transcoder *workbook.Transcoder
	Manifest   *manifest.Emitter
}

// New wires every component from cfg. Notifications and progress go to
// the logger until SetSinks replaces them.
func New(cfg *config.Config, fs billy.Filesystem, log *zap.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	scanner := layout.NewScanner(fs)
	scanner.MaxDepth = cfg.Layout.MaxDepth
	scanner.Log = log.Named("layout")

	validator := layout.NewValidator(cfg.Layout.RequiredRootFiles...)

	agg := layout.NewAggregator(scanner, validator)
	agg.Log = log.Named("layout")

	tr := workbook.NewTranscoder(fs)
	tr.Scanner = scanner
	tr.Naming = workbook.Naming{
		StandardNames: cfg.Workbook.StandardNames,
		LikelySubdirs: cfg.Workbook.LikelySubdirs,
	}
	tr.Log = log.Named("workbook")

	em := manifest.NewEmitter(fs)
	em.Scanner = scanner
	em.Log = log.Named("manifest")

	a := &App{
		Config:     cfg,
		FS:         fs,
		Log:        log,
		Scanner:    scanner,
		Validator:  validator,
		Aggregator: agg,
		Transcoder: tr,
		Manifest:   em,
	}
	sink := notify.NewLogger(log.Named("notify"))
	a.SetSinks(sink, sink)
	return a
}

// SetSinks routes notifications and progress of every component to n and p.
func (a *App) SetSinks(n notify.Notifier, p notify.Progress) {
	a.Notifier, a.Progress = n, p
	a.Aggregator.Notifier = n
	a.Transcoder.Notifier = n
	a.Transcoder.Progress = p
	a.Manifest.Notifier = n
}

// OpenFolder scans and validates a language folder for display. Invalid
// or missing folders are reported through the notifier.
func (a *App) OpenFolder(folder string) (layout.ScanResult, api.ValidationResult) {
	res := a.Scanner.Scan(folder)
	for _, s := range res.Skipped {
		a.Log.Warn("subtree skipped", zap.String("path", s.Path), zap.Error(s.Err))
	}

	vr := a.Validator.Validate(res.Structure)
	name := baseName(folder)
	switch {
	case !vr.Valid:
		a.Notifier.Notify(fmt.Sprintf("Validation failed for %s: %s", name, vr.Message()), notify.Error, notify.Long)
	case len(res.Structure.Entries) == 0:
		a.Notifier.Notify("Failed to load structure. Folder not found or empty.", notify.Error, notify.Short)
	default:
		a.Notifier.Notify("Structure loaded and validated from: "+name, notify.Success, notify.Short)
	}
	return res, vr
}

// ValidateFolder re-checks the required root files of folder.
func (a *App) ValidateFolder(folder string) api.ValidationResult {
	vr := a.Validator.Validate(a.Scanner.Scan(folder).Structure)
	if vr.Valid {
		a.Notifier.Notify("Structure validation passed.", notify.Info, notify.Short)
	} else {
		a.Notifier.Notify("Structure validation failed: "+vr.Message(), notify.Error, notify.Long)
	}
	return vr
}

// Languages lists the language folders under the configured root.
func (a *App) Languages() []layout.Language {
	return a.Aggregator.Languages(a.Config.Root)
}

// Aggregate scans and validates every language under the configured root.
func (a *App) Aggregate() map[string]api.Structure {
	return a.Aggregator.Aggregate(a.Config.Root)
}

// ExportWorkbook writes every YAML file under folder to the xlsx file dest.
func (a *App) ExportWorkbook(folder, dest string) bool {
	return a.Transcoder.Export(folder, dest)
}

// ImportWorkbook restores the sheets of the xlsx file source into folder.
func (a *App) ImportWorkbook(source, folder string) bool {
	return a.Transcoder.Import(source, folder)
}

// RegenerateManifest rewrites the manifest of the configured root.
func (a *App) RegenerateManifest() bool {
	return a.Manifest.Emit(a.Config.Root)
}

// CheckDocument validates editor text for the file at name. A syntax
// problem is returned as a *writeback.ValidationError and notified.
func (a *App) CheckDocument(name, text string) error {
	err := writeback.Validate([]byte(text), name)
	if err != nil {
		a.Log.Warn("yaml syntax error", zap.String("file", name), zap.Error(err))
		a.Notifier.Notify(fmt.Sprintf("YAML Syntax Error in %s!", name), notify.Warning, notify.Short)
	}
	return err
}

// SaveDocument validates text, formats it and writes it to name atomically.
// Text that does not validate is not written.
func (a *App) SaveDocument(name, text string) error {
	if err := a.CheckDocument(name, text); err != nil {
		return err
	}
	data := writeback.Format([]byte(text), name)
	if err := writeback.Save(a.FS, name, data); err != nil {
		a.Log.Error("save document", zap.String("file", name), zap.Error(err))
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// FileProblems is the set of diagnostics for one file.
type FileProblems struct {
	File     string
	Problems []writeback.ValidationError
}

// CheckFolder validates every YAML file under folder and returns the files
// with problems, in path order, plus the number of files checked.
func (a *App) CheckFolder(folder string) (int, []FileProblems) {
	files, skipped := a.Scanner.Files(folder)
	for _, s := range skipped {
		a.Log.Warn("subtree skipped", zap.String("path", s.Path), zap.Error(s.Err))
	}

	var out []FileProblems
	for i, rel := range files {
		if errs := a.checkFile(a.FS.Join(folder, rel)); len(errs) > 0 {
			out = append(out, FileProblems{File: rel, Problems: errs})
		}
		a.Progress.Report(notify.Percent(i+1, len(files)))
	}
	return len(files), out
}

func (a *App) checkFile(name string) []writeback.ValidationError {
	data, err := util.ReadFile(a.FS, name)
	if err != nil {
		return []writeback.ValidationError{{FilePath: name, Message: err.Error()}}
	}
	return writeback.Errors(data, name)
}

// Get resolves a leaf path inside the YAML file at name.
func (a *App) Get(name, leafPath string) ([]any, error) {
	data, err := util.ReadFile(a.FS, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	doc, err := workbook.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return workbook.Lookup(doc, leafPath)
}

func baseName(p string) string {
	return path.Base(filepath.ToSlash(p))
}
