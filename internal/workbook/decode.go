package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/notify"
	"github.com/agentic-research/locedit/internal/writeback"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateTarget is recorded when two sheets restore to the same file.
var ErrDuplicateTarget = errors.New("another sheet already restores to this file")

// Document is one sheet decoded back into YAML.
type Document struct {
	Sheet string
	// Path is slash separated and relative to the import destination.
	Path string
	Node *yaml.Node
}

// Decode turns every non-empty sheet of wb into a document, in sheet order.
func (t *Transcoder) Decode(wb *api.Workbook) ([]Document, BatchReport) {
	var (
		docs   []Document
		report BatchReport
		owners = make(map[string]string)
	)
	for _, sheet := range wb.Sheets {
		variant := Classify(sheet)
		if variant == VariantEmpty || variant == VariantPlaceholder {
			continue
		}
		report.Total++

		rel, err := t.Naming.FileName(sheet.Name)
		if err != nil {
			t.Log.Warn("sheet skipped", zap.String("sheet", sheet.Name), zap.Error(err))
			report.fail(sheet.Name, err)
			continue
		}
		key := strings.ToLower(rel)
		if owner, dup := owners[key]; dup {
			err := fmt.Errorf("%w: %s (sheet %s)", ErrDuplicateTarget, rel, owner)
			t.Log.Warn("sheet skipped", zap.String("sheet", sheet.Name), zap.Error(err))
			report.fail(sheet.Name, err)
			continue
		}
		owners[key] = sheet.Name

		t.Log.Debug("decode sheet",
			zap.String("sheet", sheet.Name),
			zap.Stringer("variant", variant),
			zap.String("path", rel))
		docs = append(docs, Document{
			Sheet: sheet.Name,
			Path:  rel,
			Node:  documentOf(t.decodeSheet(sheet, variant)),
		})
		report.Success++
	}
	return docs, report
}

func (t *Transcoder) decodeSheet(sheet api.Sheet, variant Variant) *yaml.Node {
	switch variant {
	case VariantFlattened:
		if payload, ok := sentinelPayload(sheet.Rows[1:], SentinelTag, SentinelKind); ok {
			return t.parsePayload(sheet.Name, payload)
		}
		return decodeLeafRows(sheet.Rows[1:], true)
	case VariantLegacy:
		if payload, ok := sentinelPayload(sheet.Rows[1:], LegacySentinelTag, ""); ok {
			return t.parsePayload(sheet.Name, payload)
		}
		return decodeLeafRows(sheet.Rows[1:], false)
	default:
		return decodeHeuristic(sheet.Rows)
	}
}

// sentinelPayload finds the sentinel row tagged tag and joins its payload:
// the second cell, then every cell from the fourth on. The sentinel is
// written last, so rows are searched from the end; a document key equal to
// the tag yields an earlier row. When kind is set, a row whose third cell
// holds anything else is a leaf row, not the sentinel.
func sentinelPayload(rows []api.Row, tag, kind string) (string, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if strings.TrimSpace(r.Cell(0)) != tag {
			continue
		}
		if c := strings.TrimSpace(r.Cell(2)); kind != "" && c != "" && c != kind {
			continue
		}
		var b strings.Builder
		b.WriteString(r.Cell(1))
		for j := 3; j < len(r); j++ {
			b.WriteString(r[j])
		}
		return b.String(), true
	}
	return "", false
}

// parsePayload reads sentinel text as YAML, then as JSON, and settles for
// an empty mapping when neither parses. Non-mapping documents are wrapped
// as {data: ...}.
func (t *Transcoder) parsePayload(sheet, payload string) *yaml.Node {
	var doc yaml.Node
	yamlErr := yaml.Unmarshal([]byte(payload), &doc)
	if yamlErr == nil {
		return asMapping(contentOf(&doc))
	}

	v, jsonErr := oj.ParseString(payload)
	if jsonErr == nil {
		var n yaml.Node
		if err := n.Encode(v); err == nil {
			t.Log.Debug("sentinel parsed as JSON", zap.String("sheet", sheet), zap.NamedError("yaml_error", yamlErr))
			return asMapping(&n)
		}
	}

	t.Log.Warn("sentinel payload unreadable, using empty document",
		zap.String("sheet", sheet),
		zap.NamedError("yaml_error", yamlErr),
		zap.NamedError("json_error", jsonErr))
	return mappingNode()
}

// decodeLeafRows rebuilds a flat key -> value mapping from data rows.
// With typed set, the third cell restores the scalar type.
func decodeLeafRows(rows []api.Row, typed bool) *yaml.Node {
	result := newMapBuilder()
	for _, r := range rows {
		key := r.Cell(0)
		if key == "" {
			continue
		}
		if typed {
			result.set(key, typedScalar(r.Cell(1), strings.TrimSpace(r.Cell(2))))
		} else {
			result.set(key, cellValue(r.Cell(1)))
		}
	}
	return result.node
}

// Import reads the xlsx file at source and writes one YAML file per sheet
// under folder. It reports progress per file, notifies the outcome, and
// returns true when at least one file was written.
func (t *Transcoder) Import(source, folder string) bool {
	data, err := util.ReadFile(t.FS, source)
	if err != nil {
		return t.importFailed(source, fmt.Errorf("read %s: %w", source, err))
	}
	wb, err := ReadXLSX(bytes.NewReader(data))
	if err != nil {
		return t.importFailed(source, err)
	}
	report := t.ImportWorkbook(wb, folder)

	if report.OK() {
		t.Notifier.Notify(fmt.Sprintf("Successfully imported %d/%d files from Excel", report.Success, report.Total),
			notify.Success, notify.Short)
		return true
	}
	t.Notifier.Notify("No files were imported from Excel", notify.Error, notify.Long)
	return false
}

// ImportWorkbook decodes wb and saves the documents under folder.
func (t *Transcoder) ImportWorkbook(wb *api.Workbook, folder string) BatchReport {
	docs, decoded := t.Decode(wb)
	report := BatchReport{Total: decoded.Total, Failures: decoded.Failures}

	for i, doc := range docs {
		target := t.FS.Join(folder, doc.Path)
		if err := writeback.SaveDocument(t.FS, target, doc.Node); err != nil {
			t.Log.Error("write imported file", zap.String("sheet", doc.Sheet), zap.String("path", target), zap.Error(err))
			report.fail(doc.Sheet, err)
		} else {
			report.Success++
		}
		t.Progress.Report(notify.Percent(i+1, len(docs)))
	}

	t.Log.Info("import finished",
		zap.String("folder", folder),
		zap.Int("success", report.Success),
		zap.Int("total", report.Total))
	return report
}

func (t *Transcoder) importFailed(source string, err error) bool {
	t.Log.Error("import failed", zap.String("source", source), zap.Error(err))
	t.Notifier.Notify("Error importing Excel file: "+err.Error(), notify.Error, notify.Long)
	return false
}
