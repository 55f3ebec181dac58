package workbook

import (
	"strings"

	"github.com/agentic-research/locedit/api"
)

// Header and sentinel cells of the sheet layouts this package reads and writes.
const (
	HeaderKey   = "Key"
	HeaderValue = "Value"
	HeaderType  = "Original YAML Type"

	HeaderLegacyType    = "Type"
	HeaderLegacyContent = "Content"

	// SentinelTag opens the row carrying the whole document as YAML text.
	SentinelTag = "RAW_YAML_DATA"
	// SentinelKind fills the third cell of the sentinel row.
	SentinelKind = "YAML_STRUCTURE"
	// LegacySentinelTag is the sentinel of the older two-column layout.
	LegacySentinelTag = "YAML_DATA"

	// PlaceholderSheet is written when an export found nothing to export.
	PlaceholderSheet = "Empty"
	PlaceholderText  = "No YAML files were found in the selected folder"
)

// Variant identifies how a sheet's rows encode a document.
type Variant int

const (
	// VariantEmpty has no non-blank cell.
	VariantEmpty Variant = iota
	// VariantFlattened has the Key / Value / Original YAML Type header,
	// one row per leaf and a RAW_YAML_DATA sentinel.
	VariantFlattened
	// VariantLegacy has the Type / Content header and a YAML_DATA sentinel.
	VariantLegacy
	// VariantHeuristic is any other hand-made layout.
	VariantHeuristic
	// VariantPlaceholder is the sheet written for an empty export.
	VariantPlaceholder
)

func (v Variant) String() string {
	switch v {
	case VariantEmpty:
		return "empty"
	case VariantFlattened:
		return "flattened"
	case VariantLegacy:
		return "legacy"
	case VariantHeuristic:
		return "heuristic"
	case VariantPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Classify decides which decoder applies to s.
func Classify(s api.Sheet) Variant {
	if s.Empty() {
		return VariantEmpty
	}
	first := s.Rows[0]
	switch {
	case cellIs(first, 0, HeaderKey) && cellIs(first, 1, HeaderValue) && cellIs(first, 2, HeaderType):
		return VariantFlattened
	case cellIs(first, 0, HeaderLegacyType) && cellIs(first, 1, HeaderLegacyContent):
		return VariantLegacy
	case isPlaceholder(s):
		return VariantPlaceholder
	default:
		return VariantHeuristic
	}
}

func isPlaceholder(s api.Sheet) bool {
	if !strings.EqualFold(s.Name, PlaceholderSheet) {
		return false
	}
	var cells []string
	for _, r := range s.Rows {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				cells = append(cells, c)
			}
		}
	}
	return len(cells) == 1 && strings.TrimSpace(cells[0]) == PlaceholderText
}

func cellIs(r api.Row, i int, want string) bool {
	return strings.TrimSpace(r.Cell(i)) == want
}
