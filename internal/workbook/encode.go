// Package workbook converts language folders to spreadsheet workbooks and
// back. Each YAML file becomes one sheet holding a row per leaf plus a
// sentinel row with the whole document, which is what an import restores.
package workbook

import (
	"bytes"
	"fmt"
	"path"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/layout"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/agentic-research/locedit/internal/writeback"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Transcoder moves documents between a filesystem and workbooks.
type Transcoder struct {
	FS       billy.Filesystem
	Scanner  *layout.Scanner
	Naming   Naming
	Log      *zap.Logger
	Notifier notify.Notifier
	Progress notify.Progress
}

// NewTranscoder returns a transcoder over fs with the default naming rules.
func NewTranscoder(fs billy.Filesystem) *Transcoder {
	return &Transcoder{
		FS:       fs,
		Scanner:  layout.NewScanner(fs),
		Naming:   DefaultNaming(),
		Log:      zap.NewNop(),
		Notifier: notify.Nop{},
		Progress: notify.Nop{},
	}
}

// Encode builds a workbook from every YAML file under folder, one sheet
// per file in relative-path order. Files that cannot be read or parsed are
// left out and recorded in the report. When nothing was encoded the
// workbook holds a single placeholder sheet.
func (t *Transcoder) Encode(folder string) (*api.Workbook, BatchReport) {
	files, skipped := t.Scanner.Files(folder)
	for _, s := range skipped {
		t.Log.Warn("export skipped directory", zap.String("path", s.Path), zap.Error(s.Err))
	}

	var (
		wb     api.Workbook
		report = BatchReport{Total: len(files)}
		taken  = make(map[string]bool)
		base   = path.Base(layout.Normalize(folder))
	)
	for i, rel := range files {
		sheet, err := t.encodeFile(folder, rel)
		t.Progress.Report(notify.Percent(i+1, len(files)))
		if err != nil {
			t.Log.Warn("file skipped", zap.String("file", rel), zap.Error(err))
			report.fail(rel, err)
			continue
		}
		sheet.Name = uniqueSheetName(SanitizeSheetName(SheetName(rel, base)), taken)
		wb.Sheets = append(wb.Sheets, sheet)
		report.Success++
	}

	if report.Success == 0 {
		wb.Sheets = []api.Sheet{{Name: PlaceholderSheet, Rows: []api.Row{{PlaceholderText}}}}
	}
	return &wb, report
}

func (t *Transcoder) encodeFile(folder, rel string) (api.Sheet, error) {
	data, err := util.ReadFile(t.FS, t.FS.Join(folder, rel))
	if err != nil {
		return api.Sheet{}, fmt.Errorf("read: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return api.Sheet{}, err
	}
	leaves, err := Flatten(doc)
	if err != nil {
		return api.Sheet{}, fmt.Errorf("flatten: %w", err)
	}
	raw, err := writeback.Encode(doc)
	if err != nil {
		return api.Sheet{}, fmt.Errorf("encode: %w", err)
	}

	rows := make([]api.Row, 0, len(leaves)+2)
	rows = append(rows, api.Row{HeaderKey, HeaderValue, HeaderType})
	rows = append(rows, leaves...)
	rows = append(rows, api.Row{SentinelTag, string(raw), SentinelKind})
	return api.Sheet{Rows: rows}, nil
}

// ParseDocument parses the first YAML document in data. An empty or null
// document is an empty mapping.
func ParseDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if n := contentOf(&doc); n == nil || n.ShortTag() == "!!null" {
		return documentOf(mappingNode()), nil
	}
	return &doc, nil
}

// Export writes the workbook for folder to dest as xlsx. It notifies the
// outcome and returns true when at least one file was exported.
func (t *Transcoder) Export(folder, dest string) bool {
	wb, report := t.Encode(folder)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, wb); err != nil {
		return t.exportFailed(dest, err)
	}
	if err := writeback.Save(t.FS, dest, buf.Bytes()); err != nil {
		return t.exportFailed(dest, err)
	}
	t.Progress.Report(100)

	t.Log.Info("export finished",
		zap.String("folder", folder),
		zap.String("dest", dest),
		zap.Int("success", report.Success),
		zap.Int("total", report.Total))
	t.Notifier.Notify(fmt.Sprintf("Exported %d/%d YAML files to Excel", report.Success, report.Total),
		notify.Success, notify.Short)
	return report.OK()
}

func (t *Transcoder) exportFailed(dest string, err error) bool {
	t.Log.Error("export failed", zap.String("dest", dest), zap.Error(err))
	t.Notifier.Notify("Error exporting to Excel: "+err.Error(), notify.Error, notify.Long)
	return false
}
